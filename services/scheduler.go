// services/scheduler.go
package services

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"

	"water-monitor-system/logger"
	"water-monitor-system/models"
	"water-monitor-system/store"
)

// MaintenanceService runs the periodic jobs the core engine deliberately
// stays out of: streaks are maintained here, not by the award path.
type MaintenanceService struct {
	DB    *gorm.DB // nil when running purely on the local backend
	Store *store.DataStore
}

func NewMaintenanceService(db *gorm.DB, ds *store.DataStore) *MaintenanceService {
	return &MaintenanceService{DB: db, Store: ds}
}

// StartScheduler kicks off the hourly streak sweep. The job is idempotent, so
// running it more often than the daily boundary is harmless.
func (s *MaintenanceService) StartScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			if err := s.ResetLapsedStreaks(); err != nil {
				logger.Error().Err(err).Msg("[Scheduler] streak sweep failed")
			}
		}),
	)
}

// ResetLapsedStreaks zeroes streak_days for everyone who has not taken the
// daily quiz today or yesterday.
func (s *MaintenanceService) ResetLapsedStreaks() error {
	now := time.Now()
	today := now.Format("2006-01-02")
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")

	if s.DB != nil {
		active := s.DB.Model(&store.QuizAttemptRow{}).
			Select("user_id").
			Where("date IN ?", []string{today, yesterday})

		res := s.DB.Model(&store.ProfileRow{}).
			Where("streak_days > 0").
			Where("id NOT IN (?)", active).
			Updates(map[string]interface{}{"streak_days": 0, "updated_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			logger.Info().Int64("profiles", res.RowsAffected).Msg("✅ reset lapsed streaks")
		}
		return nil
	}

	// Local mode: the single demo profile.
	profile, err := s.Store.GetProfile("")
	if err != nil || profile == nil || profile.StreakDays == 0 {
		return err
	}
	for _, date := range []string{today, yesterday} {
		ok, err := s.Store.HasQuizAttemptOn(profile.ID, date)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	zero := 0
	_, err = s.Store.UpdateProfile(profile.ID, models.ProfileUpdate{StreakDays: &zero})
	return err
}
