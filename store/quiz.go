package store

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"water-monitor-system/models"
)

const dayFormat = "2006-01-02"

// GetTodaysQuizAttempt returns the attempt stored under today's date key, or
// nil when the user has not played yet.
func (s *DataStore) GetTodaysQuizAttempt(userID string) (*models.QuizAttempt, error) {
	today := s.now().Format(dayFormat)

	if !s.useCloud() {
		attempts, err := s.localAttempts()
		if err != nil {
			return nil, err
		}
		for _, a := range attempts {
			if a.Date == today {
				attempt := a
				return &attempt, nil
			}
		}
		return nil, nil
	}

	if userID == "" {
		return nil, nil
	}

	var row QuizAttemptRow
	err := s.db.Where("user_id = ? AND date = ?", userID, today).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return transformAttempt(&row), nil
}

// HasQuizAttemptOn reports whether the user played on the given calendar day
// ("2006-01-02"). Used by the streak maintenance job.
func (s *DataStore) HasQuizAttemptOn(userID, date string) (bool, error) {
	if !s.useCloud() {
		attempts, err := s.localAttempts()
		if err != nil {
			return false, err
		}
		for _, a := range attempts {
			if a.Date == date {
				return true, nil
			}
		}
		return false, nil
	}

	var count int64
	if err := s.db.Model(&QuizAttemptRow{}).
		Where("user_id = ? AND date = ?", userID, date).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveQuizAttempt appends today's attempt unconditionally. The one-per-day
// invariant belongs to the caller: check GetTodaysQuizAttempt first.
func (s *DataStore) SaveQuizAttempt(userID string, correct, total int, questionsAnswered []int) error {
	today := s.now().Format(dayFormat)
	if questionsAnswered == nil {
		questionsAnswered = []int{}
	}

	if !s.useCloud() {
		attempts, err := s.localAttempts()
		if err != nil {
			return err
		}
		attempts = append(attempts, models.QuizAttempt{
			ID:                uuid.NewString(),
			UserID:            DemoUserID,
			Date:              today,
			Correct:           correct,
			Total:             total,
			QuestionsAnswered: questionsAnswered,
		})
		return s.local.Put(keyAttempts, attempts)
	}

	if userID == "" {
		return ErrNotAuthenticated
	}

	row := QuizAttemptRow{
		ID:                uuid.NewString(),
		UserID:            userID,
		Date:              today,
		Correct:           correct,
		Total:             total,
		QuestionsAnswered: mustJSON(questionsAnswered),
	}
	return s.db.Create(&row).Error
}
