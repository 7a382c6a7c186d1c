package handlers

import (
	"water-monitor-system/middleware"
	"water-monitor-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupReportRoutes(app *fiber.App, reportService *services.ReportService) {
	// Public, anyone can browse the report feed
	app.Get("/reports", reportService.GetAllReports)

	// User context attached but not required: in local mode anonymous
	// callers act as the demo user, in cloud mode the store rejects
	// unauthenticated writes itself.
	withUser := app.Group("/", middleware.UserContextMiddleware())

	withUser.Post("/reports", reportService.CreateReport)
	withUser.Post("/reports/:id/verify", reportService.VerifyReport)
	withUser.Post("/reports/:id/react", reportService.ReactToReport)
	withUser.Post("/reports/:id/share", reportService.ShareReport)
	// Moderation action, never anonymous (demo mode included).
	withUser.Patch("/reports/:id/status", middleware.RequireUser(), reportService.UpdateReportStatus)
}
