package handlers

import (
	"water-monitor-system/middleware"
	"water-monitor-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupProfileRoutes(app *fiber.App, profileService *services.ProfileService) {
	withUser := app.Group("/", middleware.UserContextMiddleware())

	withUser.Get("/profile", profileService.GetProfile)
	withUser.Post("/profile", profileService.CreateProfile)
	withUser.Patch("/profile", profileService.UpdateProfile)

	withUser.Get("/profile/alert-preferences", profileService.GetAlertPreferences)
	withUser.Put("/profile/alert-preferences", profileService.SaveAlertPreferences)
	withUser.Get("/profile/feature-flags", profileService.GetFeatureFlags)
	withUser.Put("/profile/feature-flags", profileService.SaveFeatureFlags)

	withUser.Get("/leaderboard", profileService.GetLeaderboard)
}
