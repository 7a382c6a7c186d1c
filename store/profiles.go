package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"water-monitor-system/models"
)

// GetProfile loads a profile by user id. Returns (nil, nil) when the profile
// does not exist or, in cloud mode, when no identity is resolved; reads are
// never an auth error.
func (s *DataStore) GetProfile(userID string) (*models.Profile, error) {
	if !s.useCloud() {
		profiles, err := s.localProfiles()
		if err != nil {
			return nil, err
		}
		if len(profiles) == 0 {
			return nil, nil
		}
		p := profiles[0]
		return &p, nil
	}

	if userID == "" {
		return nil, nil
	}

	var row ProfileRow
	if err := s.db.Where("id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return transformProfile(&row, s.CloudConfigured()), nil
}

// CreateProfile registers a profile on first sign-in (cloud) or first local
// run (the local singleton).
func (s *DataStore) CreateProfile(userID, username, avatarEmoji string) (*models.Profile, error) {
	if avatarEmoji == "" {
		avatarEmoji = "👤"
	}
	now := s.now()

	if !s.useCloud() {
		profiles, err := s.localProfiles()
		if err != nil {
			return nil, err
		}
		p := models.Profile{
			ID:          DemoUserID,
			Username:    username,
			AvatarEmoji: avatarEmoji,
			Region:      "ZW",
			Badges:      []models.Badge{},
			AlertPrefs:  models.DefaultAlertPreferences(),
			Flags:       models.DefaultFeatureFlags(s.CloudConfigured()),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if len(profiles) == 0 {
			profiles = []models.Profile{p}
		} else {
			profiles[0] = p
		}
		if err := s.local.Put(keyProfiles, profiles); err != nil {
			return nil, err
		}
		return &p, nil
	}

	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	row := ProfileRow{
		ID:               userID,
		Username:         username,
		AvatarEmoji:      avatarEmoji,
		Region:           "ZW",
		Badges:           mustJSON([]models.Badge{}),
		AlertPreferences: mustJSON(models.DefaultAlertPreferences()),
		FeatureFlags:     mustJSON(models.DefaultFeatureFlags(true)),
	}
	if err := s.db.Create(&row).Error; err != nil {
		return nil, err
	}
	return transformProfile(&row, s.CloudConfigured()), nil
}

// UpdateProfile is the single choke point for profile mutation: it merges a
// partial field set into the current record and always refreshes updated_at.
// Plain read-modify-write, no optimistic locking: two concurrent updates
// race and the last writer wins (known limitation, single-writer locally).
func (s *DataStore) UpdateProfile(userID string, up models.ProfileUpdate) (*models.Profile, error) {
	now := s.now()

	if !s.useCloud() {
		profiles, err := s.localProfiles()
		if err != nil {
			return nil, err
		}
		if len(profiles) == 0 {
			return nil, gorm.ErrRecordNotFound
		}
		p := profiles[0]
		applyUpdate(&p, up)
		p.UpdatedAt = now
		profiles[0] = p
		if err := s.local.Put(keyProfiles, profiles); err != nil {
			return nil, err
		}
		return &p, nil
	}

	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	var row ProfileRow
	if err := s.db.Where("id = ?", userID).First(&row).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"updated_at": now}
	if up.Username != nil {
		updates["username"] = *up.Username
	}
	if up.AvatarEmoji != nil {
		updates["avatar_emoji"] = *up.AvatarEmoji
	}
	if up.Region != nil {
		updates["region"] = *up.Region
	}
	if up.Points != nil {
		updates["points"] = *up.Points
	}
	if up.StreakDays != nil {
		updates["streak_days"] = *up.StreakDays
	}
	if up.Badges != nil {
		updates["badges"] = mustJSON(up.Badges)
	}
	if up.AlertPrefs != nil {
		updates["alert_preferences"] = mustJSON(*up.AlertPrefs)
	}
	if up.Flags != nil {
		updates["feature_flags"] = mustJSON(*up.Flags)
	}

	if err := s.db.Model(&ProfileRow{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := s.db.Where("id = ?", userID).First(&row).Error; err != nil {
		return nil, err
	}
	return transformProfile(&row, s.CloudConfigured()), nil
}

func applyUpdate(p *models.Profile, up models.ProfileUpdate) {
	if up.Username != nil {
		p.Username = *up.Username
	}
	if up.AvatarEmoji != nil {
		p.AvatarEmoji = *up.AvatarEmoji
	}
	if up.Region != nil {
		p.Region = *up.Region
	}
	if up.Points != nil {
		p.Points = *up.Points
	}
	if up.StreakDays != nil {
		p.StreakDays = *up.StreakDays
	}
	if up.Badges != nil {
		p.Badges = up.Badges
	}
	if up.AlertPrefs != nil {
		p.AlertPrefs = *up.AlertPrefs
	}
	if up.Flags != nil {
		p.Flags = *up.Flags
	}
}

// AwardXP adds points and announces the gain as a toast. A missing profile is
// a silent no-op, never an error.
func (s *DataStore) AwardXP(userID string, amount int, reason string) error {
	profile, err := s.GetProfile(userID)
	if err != nil {
		return err
	}
	if profile == nil {
		return nil
	}

	points := profile.Points + amount
	if _, err := s.UpdateProfile(userID, models.ProfileUpdate{Points: &points}); err != nil {
		return err
	}

	if s.hub != nil {
		s.hub.Toast(fmt.Sprintf("+%d XP: %s", amount, reason), "success")
	}
	return nil
}

// GetAlertPreferences returns the user's thresholds, or the documented
// defaults when there is no profile.
func (s *DataStore) GetAlertPreferences(userID string) (models.AlertPreferences, error) {
	profile, err := s.GetProfile(userID)
	if err != nil {
		return models.AlertPreferences{}, err
	}
	if profile == nil {
		return models.DefaultAlertPreferences(), nil
	}
	return profile.AlertPrefs, nil
}

func (s *DataStore) SaveAlertPreferences(userID string, prefs models.AlertPreferences) error {
	_, err := s.UpdateProfile(userID, models.ProfileUpdate{AlertPrefs: &prefs})
	return err
}

// GetFeatureFlags returns the user's flags, or defaults when profileless.
func (s *DataStore) GetFeatureFlags(userID string) (models.FeatureFlags, error) {
	profile, err := s.GetProfile(userID)
	if err != nil {
		return models.FeatureFlags{}, err
	}
	if profile == nil {
		return models.DefaultFeatureFlags(s.CloudConfigured()), nil
	}
	return profile.Flags, nil
}

// SaveFeatureFlags persists flags on the profile AND in the settings blob, so
// a backend switch is honored by the very next data call.
func (s *DataStore) SaveFeatureFlags(userID string, flags models.FeatureFlags) error {
	if _, err := s.UpdateProfile(userID, models.ProfileUpdate{Flags: &flags}); err != nil {
		return err
	}
	return s.SaveBackendSettings(BackendSettings{UseCloudBackend: flags.UseCloudBackend})
}
