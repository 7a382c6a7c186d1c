package services

import (
	"strconv"

	"water-monitor-system/store"

	"github.com/gofiber/fiber/v2"
)

type SensorService struct {
	Store *store.DataStore
}

func NewSensorService(ds *store.DataStore) *SensorService {
	return &SensorService{Store: ds}
}

// GetLatestReadings returns the five most recent readings, newest first.
func (s *SensorService) GetLatestReadings(c *fiber.Ctx) error {
	readings, err := s.Store.GetLatestReadings()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch readings"})
	}
	return c.JSON(readings)
}

// GetHistory returns readings from the trailing window, ?hours= (default 24).
func (s *SensorService) GetHistory(c *fiber.Ctx) error {
	hours, err := strconv.Atoi(c.Query("hours", "24"))
	if err != nil || hours <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "hours must be a positive integer"})
	}

	readings, err := s.Store.GetHistory(hours)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch history"})
	}
	return c.JSON(readings)
}

// GetPredictions returns the forecast series, ?hours= (default 24).
func (s *SensorService) GetPredictions(c *fiber.Ctx) error {
	hours, err := strconv.Atoi(c.Query("hours", "24"))
	if err != nil || hours <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "hours must be a positive integer"})
	}

	predictions, err := s.Store.GetPredictions(hours)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch predictions"})
	}
	return c.JSON(predictions)
}
