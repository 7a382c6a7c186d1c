package handlers

import (
	"water-monitor-system/middleware"
	"water-monitor-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupGamificationRoutes(app *fiber.App, game *services.GamificationService) {
	// Public, the catalog is static
	app.Get("/achievements", game.ListAchievements)

	withUser := app.Group("/", middleware.UserContextMiddleware())

	// Client-observed triggers for visit-counting achievements
	withUser.Post("/gamification/dashboard-visit", game.VisitDashboard)
	withUser.Post("/gamification/map-visit", game.VisitMap)
	withUser.Post("/gamification/location-enabled", game.EnableLocation)

	// SSE stream for toasts, XP gains and celebrations
	withUser.Get("/events/stream", game.StreamEvents)
}
