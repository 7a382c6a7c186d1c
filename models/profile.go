package models

import (
	"time"
)

// Profile is the application-level view of a community member. One row per
// user in cloud mode; exactly one record in local/demo mode.
type Profile struct {
	ID          string           `json:"id"`
	Username    string           `json:"username"`
	AvatarEmoji string           `json:"avatar_emoji"`
	Region      string           `json:"region"`
	Points      int              `json:"points"`      // XP total, never decreased by this service
	StreakDays  int              `json:"streak_days"` // consecutive-day engagement, maintained by the scheduler
	Badges      []Badge          `json:"badges"`      // append-only, at most one entry per achievement code
	AlertPrefs  AlertPreferences `json:"alert_preferences"`
	Flags       FeatureFlags     `json:"feature_flags"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// Badge is the earned instance of an achievement. Created once at award time,
// never mutated or removed.
type Badge struct {
	Code        string    `json:"code"`
	Title       string    `json:"title"`
	Emoji       string    `json:"emoji"`
	Description string    `json:"description"`
	EarnedAt    time.Time `json:"earnedAt"`
}

// HasBadge reports whether a badge with the given achievement code is present.
func (p *Profile) HasBadge(code string) bool {
	for _, b := range p.Badges {
		if b.Code == code {
			return true
		}
	}
	return false
}

// AlertPreferences are per-user water quality alert thresholds.
type AlertPreferences struct {
	PHMin              float64 `json:"phMin"`
	PHMax              float64 `json:"phMax"`
	TurbidityMax       float64 `json:"turbidityMax"`
	DissolvedOxygenMin float64 `json:"dissolvedOxygenMin"`
	AlertRadius        float64 `json:"alertRadius"`
}

// FeatureFlags toggle optional UI/backend behavior per user.
// UseCloudBackend is the switch the data layer re-reads on every call.
type FeatureFlags struct {
	Gamification    bool `json:"gamification"`
	Community       bool `json:"community"`
	AnimatedCharts  bool `json:"animatedCharts"`
	Heatmap         bool `json:"heatmap"`
	CrazyDemo       bool `json:"crazyDemo"`
	UseCloudBackend bool `json:"useCloudBackend"`
}

// DefaultAlertPreferences are substituted when a profile row carries no (or
// malformed) preferences.
func DefaultAlertPreferences() AlertPreferences {
	return AlertPreferences{
		PHMin:              6.5,
		PHMax:              8.5,
		TurbidityMax:       5.0,
		DissolvedOxygenMin: 5.0,
		AlertRadius:        5.0,
	}
}

// DefaultFeatureFlags are substituted when a profile row carries no (or
// malformed) flags. cloudConfigured should reflect whether a relational
// backend is reachable at all.
func DefaultFeatureFlags(cloudConfigured bool) FeatureFlags {
	return FeatureFlags{
		Gamification:    true,
		Community:       true,
		AnimatedCharts:  true,
		Heatmap:         true,
		CrazyDemo:       false,
		UseCloudBackend: cloudConfigured,
	}
}

// ProfileUpdate is the partial field set UpdateProfile merges into the stored
// row. Nil pointers leave the stored value untouched.
type ProfileUpdate struct {
	Username    *string           `json:"username,omitempty"`
	AvatarEmoji *string           `json:"avatar_emoji,omitempty"`
	Region      *string           `json:"region,omitempty"`
	Points      *int              `json:"points,omitempty"`
	StreakDays  *int              `json:"streak_days,omitempty"`
	Badges      []Badge           `json:"badges,omitempty"`
	AlertPrefs  *AlertPreferences `json:"alert_preferences,omitempty"`
	Flags       *FeatureFlags     `json:"feature_flags,omitempty"`
}
