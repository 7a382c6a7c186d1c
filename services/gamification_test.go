package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"water-monitor-system/models"
	"water-monitor-system/notify"
	"water-monitor-system/store"
)

// newTestGame builds a gamification service on a throwaway local store with a
// zeroed profile, so point math starts from a known state.
func newTestGame(t *testing.T) (*GamificationService, *notify.Hub) {
	t.Helper()

	local, err := store.OpenLocal(t.TempDir())
	require.NoError(t, err)
	hub := notify.NewHub()
	ds := store.New(nil, local, nil, hub)

	zero := 0
	_, err = ds.UpdateProfile("", models.ProfileUpdate{
		Points:     &zero,
		StreakDays: &zero,
		Badges:     []models.Badge{},
	})
	require.NoError(t, err)

	g := NewGamificationService(ds, hub)
	g.AnnounceDelay = time.Millisecond
	return g, hub
}

func earnedCodes(achievements []models.Achievement) []string {
	out := make([]string, len(achievements))
	for i, a := range achievements {
		out[i] = a.Code
	}
	return out
}

func TestOnReportSubmitted(t *testing.T) {
	g, _ := newTestGame(t)

	earned := g.OnReportSubmitted("", false)
	assert.Equal(t, []string{"first_report", "early_adopter"}, earnedCodes(earned))

	// 25 report XP + 25 + 10 badge XP, all in one profile write.
	profile, err := g.Store.GetProfile("")
	require.NoError(t, err)
	assert.Equal(t, 60, profile.Points)
	assert.True(t, profile.HasBadge("first_report"))
	assert.True(t, profile.HasBadge("early_adopter"))
}

func TestOnReportSubmittedIsIdempotentPerBadge(t *testing.T) {
	g, _ := newTestGame(t)

	g.OnReportSubmitted("", false)
	earned := g.OnReportSubmitted("", false)
	assert.Empty(t, earned) // nothing new on the second report

	profile, _ := g.Store.GetProfile("")
	assert.Equal(t, 85, profile.Points) // 60 + plain report XP
	assert.Len(t, profile.Badges, 2)

	// A third report pushes past 100 points and unlocks the threshold badge.
	earned = g.OnReportSubmitted("", false)
	assert.Equal(t, []string{"points_100"}, earnedCodes(earned))
	profile, _ = g.Store.GetProfile("")
	assert.Equal(t, 135, profile.Points)
}

func TestAnomalyReportPaysMore(t *testing.T) {
	g, _ := newTestGame(t)

	earned := g.OnReportSubmitted("", true)
	assert.Equal(t, []string{"first_report", "anomaly_finder", "early_adopter"}, earnedCodes(earned))

	profile, _ := g.Store.GetProfile("")
	assert.Equal(t, 160, profile.Points) // 50 + 25 + 75 + 10
}

func TestOnQuizCompletedScoring(t *testing.T) {
	g, _ := newTestGame(t)

	// Imperfect scores earn round(score * 20).
	earned := g.OnQuizCompleted("", 0.8, false)
	assert.Equal(t, []string{"first_quiz", "early_adopter"}, earnedCodes(earned))

	profile, _ := g.Store.GetProfile("")
	assert.Equal(t, 46, profile.Points) // 16 + 20 + 10
}

func TestOnQuizCompletedPerfect(t *testing.T) {
	g, _ := newTestGame(t)

	earned := g.OnQuizCompleted("", 1.0, true)
	assert.Equal(t, []string{"first_quiz", "perfect_quiz", "early_adopter"}, earnedCodes(earned))

	profile, _ := g.Store.GetProfile("")
	assert.Equal(t, 110, profile.Points) // 30 + 20 + 50 + 10

	// Another perfect run re-awards nothing quiz-related, only the base XP
	// (plus the 100-point threshold the first run pushed past).
	earned = g.OnQuizCompleted("", 1.0, true)
	assert.Equal(t, []string{"points_100"}, earnedCodes(earned))

	earned = g.OnQuizCompleted("", 1.0, true)
	assert.Empty(t, earned)
	profile, _ = g.Store.GetProfile("")
	assert.Equal(t, 195, profile.Points) // +30 +25, then +30
	assert.Len(t, profile.Badges, 4)
}

func TestVisitTriggers(t *testing.T) {
	g, _ := newTestGame(t)

	earned := g.OnDashboardVisit("")
	assert.Equal(t, []string{"early_adopter"}, earnedCodes(earned))

	// Single visits never satisfy the counted achievements.
	assert.Empty(t, g.OnMapVisit(""))
}

func TestOnReportShared(t *testing.T) {
	g, _ := newTestGame(t)

	earned := g.OnReportShared("")
	assert.Equal(t, []string{"early_adopter", "social_butterfly"}, earnedCodes(earned))

	profile, _ := g.Store.GetProfile("")
	assert.Equal(t, 65, profile.Points) // 15 + 10 + 40
}

func TestAnnouncementsDrainThroughHub(t *testing.T) {
	g, hub := newTestGame(t)

	events, cancel := hub.Subscribe()
	defer cancel()

	earned := g.OnReportSubmitted("", false)
	require.Len(t, earned, 2)

	// The XP toast and feedback fire synchronously, the unlock announcements
	// drain from the queue shortly after.
	var got []string
	deadline := time.After(2 * time.Second)
	for len(got) < 2 {
		select {
		case evt := <-events:
			if evt.Kind == notify.EventAchievementEarned {
				got = append(got, evt.Achievement.Code)
			}
		case <-deadline:
			t.Fatalf("timed out, announced so far: %v", got)
		}
	}
	assert.Equal(t, []string{"first_report", "early_adopter"}, got)
}

func TestAwardXPPublishesFeedback(t *testing.T) {
	g, hub := newTestGame(t)

	events, cancel := hub.Subscribe()
	defer cancel()

	g.AwardXP("", 25, "Water Quality Report", true)

	kinds := map[notify.EventKind]bool{}
	deadline := time.After(time.Second)
	for len(kinds) < 3 {
		select {
		case evt := <-events:
			kinds[evt.Kind] = true
		case <-deadline:
			t.Fatalf("missing feedback events, got %v", kinds)
		}
	}
	assert.True(t, kinds[notify.EventToast])
	assert.True(t, kinds[notify.EventXPGained])
	assert.True(t, kinds[notify.EventCelebration])
}
