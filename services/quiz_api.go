package services

import (
	"water-monitor-system/store"

	"github.com/gofiber/fiber/v2"
)

type QuizService struct {
	Store *store.DataStore
	Game  *GamificationService
}

func NewQuizService(ds *store.DataStore, game *GamificationService) *QuizService {
	return &QuizService{Store: ds, Game: game}
}

// GetTodaysAttempt returns today's quiz attempt, or 204 if none yet.
func (s *QuizService) GetTodaysAttempt(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	attempt, err := s.Store.GetTodaysQuizAttempt(orDemoUser(userID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch attempt"})
	}
	if attempt == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(attempt)
}

// SaveAttempt records a finished quiz and runs the gamification triggers.
// One attempt per calendar day: the store appends unconditionally, so the
// existence check lives here.
func (s *QuizService) SaveAttempt(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var body struct {
		Correct           int   `json:"correct"`
		Total             int   `json:"total"`
		QuestionsAnswered []int `json:"questionsAnswered"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if body.Total <= 0 || body.Correct < 0 || body.Correct > body.Total {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "correct/total out of range"})
	}

	uid := orDemoUser(userID)

	existing, err := s.Store.GetTodaysQuizAttempt(uid)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to check today's attempt"})
	}
	if existing != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "today's quiz is already completed"})
	}

	if err := s.Store.SaveQuizAttempt(uid, body.Correct, body.Total, body.QuestionsAnswered); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save attempt"})
	}

	score := float64(body.Correct) / float64(body.Total)
	earned := s.Game.OnQuizCompleted(uid, score, body.Correct == body.Total)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"achievements": earned})
}
