package handlers

import (
	"water-monitor-system/middleware"
	"water-monitor-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupQuizRoutes(app *fiber.App, quizService *services.QuizService) {
	withUser := app.Group("/", middleware.UserContextMiddleware())

	withUser.Get("/quiz/today", quizService.GetTodaysAttempt)
	withUser.Post("/quiz/attempts", quizService.SaveAttempt)
}
