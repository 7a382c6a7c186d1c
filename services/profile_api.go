package services

import (
	"errors"

	"gorm.io/gorm"

	"water-monitor-system/models"
	"water-monitor-system/store"

	"github.com/gofiber/fiber/v2"
)

type ProfileService struct {
	Store *store.DataStore
}

func NewProfileService(ds *store.DataStore) *ProfileService {
	return &ProfileService{Store: ds}
}

// GetProfile returns the caller's profile, or 404 when none exists yet.
func (s *ProfileService) GetProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	profile, err := s.Store.GetProfile(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch profile"})
	}
	if profile == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "profile not found"})
	}
	return c.JSON(profile)
}

// CreateProfile sets up a profile for a first-time user.
func (s *ProfileService) CreateProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	username, _ := c.Locals("username").(string)

	var body struct {
		Username    string `json:"username"`
		AvatarEmoji string `json:"avatarEmoji"`
	}
	_ = c.BodyParser(&body)
	if body.Username != "" {
		username = body.Username
	}

	profile, err := s.Store.CreateProfile(userID, username, body.AvatarEmoji)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create profile"})
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

// UpdateProfile applies a partial update of the identity fields; absent
// fields keep their values. Points, streaks and badges are not writable over
// HTTP: they belong to the gamification engine and the streak scheduler.
func (s *ProfileService) UpdateProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var body struct {
		Username    *string `json:"username"`
		AvatarEmoji *string `json:"avatar_emoji"`
		Region      *string `json:"region"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	profile, err := s.Store.UpdateProfile(userID, models.ProfileUpdate{
		Username:    body.Username,
		AvatarEmoji: body.AvatarEmoji,
		Region:      body.Region,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "profile not found"})
		}
		if errors.Is(err, store.ErrNotAuthenticated) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "sign in to update your profile"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update profile"})
	}
	return c.JSON(profile)
}

func (s *ProfileService) GetAlertPreferences(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	prefs, err := s.Store.GetAlertPreferences(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch preferences"})
	}
	return c.JSON(prefs)
}

func (s *ProfileService) SaveAlertPreferences(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var prefs models.AlertPreferences
	if err := c.BodyParser(&prefs); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if err := s.Store.SaveAlertPreferences(userID, prefs); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save preferences"})
	}
	return c.JSON(prefs)
}

func (s *ProfileService) GetFeatureFlags(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	flags, err := s.Store.GetFeatureFlags(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch flags"})
	}
	return c.JSON(flags)
}

// SaveFeatureFlags persists the flag set. Flipping useCloudBackend here is
// what switches the whole data layer between cloud and local mode.
func (s *ProfileService) SaveFeatureFlags(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var flags models.FeatureFlags
	if err := c.BodyParser(&flags); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if err := s.Store.SaveFeatureFlags(userID, flags); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save flags"})
	}
	return c.JSON(flags)
}

// GetLeaderboard ranks profiles by points, flagging the caller's row.
func (s *ProfileService) GetLeaderboard(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	entries, err := s.Store.GetLeaderboard(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch leaderboard"})
	}
	return c.JSON(entries)
}
