package store

import (
	"fmt"
	"math/rand"
	"time"

	"water-monitor-system/models"
)

// demoSeed makes the generated sample data reproducible: seeding the same
// empty store twice yields the same dataset.
const demoSeed = 424242

// DemoUserID identifies the built-in local profile. Anonymous callers act as
// this user when the cloud backend is off.
const DemoUserID = "demo-user"

type demoDataset struct {
	Readings    []models.SensorReading
	Predictions []models.Prediction
	Reports     []models.Report
	Profiles    []models.Profile
	Attempts    []models.QuizAttempt
}

func ptr[T any](v T) *T { return &v }

// generateDemoDataset builds the sample data the local backend is seeded with
// on first access: 24h of hourly readings (10% anomalous), 24h of hourly
// predictions, two reports with community activity, and two profiles.
func generateDemoDataset(now time.Time) demoDataset {
	rng := rand.New(rand.NewSource(demoSeed))

	readings := make([]models.SensorReading, 0, 24)
	for i := 0; i < 24; i++ {
		ts := now.Add(-time.Duration(i) * time.Hour)
		isAnomaly := rng.Float64() < 0.1

		r := models.SensorReading{
			ID:            fmt.Sprintf("reading-%d", i),
			Timestamp:     ts,
			EColi:         5 + rng.Intn(20),
			TotalColiform: 40 + rng.Intn(80),
			BacteriaATP:   250 + rng.Intn(500),
			Latitude:      ptr(-17.8292 + (rng.Float64()-0.5)*0.1),
			Longitude:     ptr(31.0522 + (rng.Float64()-0.5)*0.1),
			LocationName:  "Lake Chivero",
			IsAnomaly:     isAnomaly,
		}
		if isAnomaly {
			r.Temperature = 15 + rng.Float64()*30
			r.PHLevel = 4 + rng.Float64()*6
			r.DissolvedOxygen = 2 + rng.Float64()*3
			r.Turbidity = 8 + rng.Float64()*12
		} else {
			r.Temperature = 22 + rng.Float64()*6
			r.PHLevel = 6.5 + rng.Float64()*2
			r.DissolvedOxygen = 6 + rng.Float64()*3
			r.Turbidity = 1 + rng.Float64()*4
		}
		readings = append(readings, r)
	}

	predictions := make([]models.Prediction, 0, 24)
	for i := 1; i <= 24; i++ {
		predictions = append(predictions, models.Prediction{
			ID:              fmt.Sprintf("prediction-%d", i),
			Timestamp:       now.Add(time.Duration(i) * time.Hour),
			Temperature:     23 + rng.Float64()*4,
			PHLevel:         6.8 + rng.Float64(),
			DissolvedOxygen: 7 + rng.Float64()*2,
			Turbidity:       2 + rng.Float64()*3,
			IsAnomaly:       rng.Float64() < 0.05,
		})
	}

	reports := []models.Report{
		{
			ID:          "report-1",
			UserID:      DemoUserID,
			Timestamp:   now.Add(-2 * time.Hour),
			Title:       "Unusual water color observed",
			Description: "Water appears more brown than usual near the eastern shore. Possible sediment disturbance.",
			Location:    "Eastern Shore, Lake Chivero",
			Latitude:    ptr(-17.8295),
			Longitude:   ptr(31.0535),
			Images:      []string{},
			Status:      models.ReportStatusSubmitted,
			Verifications: []models.Verification{},
			Reactions:     []models.Reaction{},
		},
		{
			ID:          "report-2",
			UserID:      "other-user",
			Timestamp:   now.Add(-6 * time.Hour),
			Title:       "Fish kill event",
			Description: "Found several dead fish floating near the dam. Water quality may be compromised.",
			Location:    "Near Dam Wall",
			Latitude:    ptr(-17.8280),
			Longitude:   ptr(31.0510),
			Images:      []string{},
			Status:      models.ReportStatusReviewing,
			Verifications: []models.Verification{
				{
					ID:         "verify-1",
					UserID:     "verifier-1",
					Username:   "WaterGuardian",
					IsAccurate: true,
					Notes:      "Confirmed similar observations in the area",
					Timestamp:  now.Add(-4 * time.Hour),
				},
			},
			Reactions: []models.Reaction{
				{
					ID:        "react-1",
					UserID:    "reactor-1",
					Username:  "EcoWatcher",
					Type:      models.ReactionConcerning,
					Timestamp: now.Add(-5 * time.Hour),
				},
			},
		},
	}

	profiles := []models.Profile{
		{
			ID:          DemoUserID,
			Username:    "Demo User",
			AvatarEmoji: "🌊",
			Region:      "ZW",
			Points:      450,
			StreakDays:  7,
			Badges: []models.Badge{
				{
					Code:        "ecoStarter",
					Title:       "Eco Starter",
					Emoji:       "🌱",
					Description: "Submitted your first report",
					EarnedAt:    now.Add(-7 * 24 * time.Hour),
				},
				{
					Code:        "waterGuardian",
					Title:       "Water Guardian",
					Emoji:       "🛡️",
					Description: "Maintained a 7-day streak",
					EarnedAt:    now,
				},
			},
			AlertPrefs: models.DefaultAlertPreferences(),
			Flags:      models.DefaultFeatureFlags(false),
			CreatedAt:  now.Add(-30 * 24 * time.Hour),
			UpdatedAt:  now,
		},
		{
			ID:          "user-2",
			Username:    "AquaExpert",
			AvatarEmoji: "🔬",
			Region:      "ZW",
			Points:      820,
			StreakDays:  15,
			Badges: []models.Badge{
				{
					Code:        "ecoStarter",
					Title:       "Eco Starter",
					Emoji:       "🌱",
					Description: "Submitted your first report",
					EarnedAt:    now.Add(-20 * 24 * time.Hour),
				},
				{
					Code:        "waveWatcher",
					Title:       "Wave Watcher",
					Emoji:       "👁️",
					Description: "Verified 10 reports",
					EarnedAt:    now.Add(-10 * 24 * time.Hour),
				},
				{
					Code:        "waterGuardian",
					Title:       "Water Guardian",
					Emoji:       "🛡️",
					Description: "Maintained a 15-day streak",
					EarnedAt:    now.Add(-24 * time.Hour),
				},
			},
			AlertPrefs: func() models.AlertPreferences {
				p := models.DefaultAlertPreferences()
				p.AlertRadius = 10.0
				return p
			}(),
			Flags:     models.DefaultFeatureFlags(false),
			CreatedAt: now.Add(-45 * 24 * time.Hour),
			UpdatedAt: now,
		},
	}

	return demoDataset{
		Readings:    readings,
		Predictions: predictions,
		Reports:     reports,
		Profiles:    profiles,
		Attempts:    []models.QuizAttempt{},
	}
}
