package services

import (
	"errors"
	"strconv"

	"water-monitor-system/logger"
	"water-monitor-system/models"
	"water-monitor-system/store"
	"water-monitor-system/utils"

	"github.com/gofiber/fiber/v2"
)

type ReportService struct {
	Store *store.DataStore
	Game  *GamificationService
}

func NewReportService(ds *store.DataStore, game *GamificationService) *ReportService {
	return &ReportService{Store: ds, Game: game}
}

// GetAllReports lists community reports, newest first.
func (s *ReportService) GetAllReports(c *fiber.Ctx) error {
	reports, err := s.Store.ListReports()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch reports"})
	}
	return c.JSON(reports)
}

// CreateReport accepts a multipart form: title, description, location,
// latitude/longitude, is_anomaly, plus photo files under photos[0..n].
// Photos go to R2 when it is configured, local disk otherwise.
func (s *ReportService) CreateReport(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	title := c.FormValue("title")
	if title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
	}

	report := models.Report{
		Title:       title,
		Description: c.FormValue("description"),
		Location:    c.FormValue("location"),
	}
	if lat, err := strconv.ParseFloat(c.FormValue("latitude"), 64); err == nil {
		report.Latitude = &lat
	}
	if lng, err := strconv.ParseFloat(c.FormValue("longitude"), 64); err == nil {
		report.Longitude = &lng
	}

	for i := 0; ; i++ {
		file, err := c.FormFile("photos[" + strconv.Itoa(i) + "]")
		if err != nil {
			break
		}
		key := utils.ReportPhotoKey(title, file.Filename)
		var url string
		if utils.R2Configured() {
			url, err = utils.UploadReportPhoto(file, key)
		} else {
			url, err = utils.SavePhotoLocally(file, key)
		}
		if err != nil {
			logger.Error().Err(err).Str("key", key).Msg("report photo upload failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store photo"})
		}
		report.Images = append(report.Images, url)
	}

	created, err := s.Store.CreateReport(userID, report)
	if err != nil {
		if errors.Is(err, store.ErrNotAuthenticated) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "sign in to submit reports"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create report"})
	}

	isAnomaly := c.FormValue("is_anomaly") == "true"
	earned := s.Game.OnReportSubmitted(orDemoUser(userID), isAnomaly)
	if report.Latitude != nil && report.Longitude != nil {
		earned = append(earned, s.Game.OnLocationEnabled(orDemoUser(userID))...)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"report":       created,
		"achievements": earned,
	})
}

// VerifyReport appends a community accuracy judgment.
func (s *ReportService) VerifyReport(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	username, _ := c.Locals("username").(string)

	var body struct {
		IsAccurate bool   `json:"isAccurate"`
		Notes      string `json:"notes"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	if err := s.Store.VerifyReport(c.Params("id"), userID, username, body.IsAccurate, body.Notes); err != nil {
		if errors.Is(err, store.ErrNotAuthenticated) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "sign in to verify reports"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to verify report"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReactToReport toggles a reaction for the calling user.
func (s *ReportService) ReactToReport(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	username, _ := c.Locals("username").(string)

	var body struct {
		Type models.ReactionType `json:"type"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	switch body.Type {
	case models.ReactionHelpful, models.ReactionConcerning, models.ReactionThankful, models.ReactionVerified:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown reaction type"})
	}

	if err := s.Store.ReactToReport(c.Params("id"), userID, username, body.Type); err != nil {
		if errors.Is(err, store.ErrNotAuthenticated) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "sign in to react"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save reaction"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateReportStatus moves a report through the review workflow.
func (s *ReportService) UpdateReportStatus(c *fiber.Ctx) error {
	var body struct {
		Status models.ReportStatus `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	switch body.Status {
	case models.ReportStatusSubmitted, models.ReportStatusReviewing, models.ReportStatusResolved, models.ReportStatusClosed:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown status"})
	}

	if err := s.Store.UpdateReportStatus(c.Params("id"), body.Status); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update status"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ShareReport records that the user shared a report externally and awards XP.
func (s *ReportService) ShareReport(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	earned := s.Game.OnReportShared(orDemoUser(userID))
	return c.JSON(fiber.Map{"achievements": earned})
}

// orDemoUser maps an anonymous caller onto the demo profile so gamification
// still works against the local store.
func orDemoUser(userID string) string {
	if userID == "" {
		return store.DemoUserID
	}
	return userID
}
