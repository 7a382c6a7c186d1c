package handlers

import (
	"water-monitor-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupSensorRoutes(app *fiber.App, sensorService *services.SensorService) {
	// Public, readings are community data, no user context needed
	app.Get("/readings/latest", sensorService.GetLatestReadings)
	app.Get("/readings/history", sensorService.GetHistory)
	app.Get("/predictions", sensorService.GetPredictions)
}
