package models

// QuizAttempt records one daily quiz run. Date is the calendar-day key
// ("2006-01-02"); at most one attempt per (user, date); the caller checks
// GetTodaysQuizAttempt before saving, the store appends unconditionally.
type QuizAttempt struct {
	ID                string `json:"id"`
	UserID            string `json:"user_id"`
	Date              string `json:"date"`
	Correct           int    `json:"correct"`
	Total             int    `json:"total"`
	QuestionsAnswered []int  `json:"questions_answered"`
}
