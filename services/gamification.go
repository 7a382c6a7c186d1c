package services

import (
	"math"
	"sync"
	"time"

	"water-monitor-system/logger"
	"water-monitor-system/models"
	"water-monitor-system/notify"
	"water-monitor-system/store"
)

// Base XP for the convenience triggers.
const (
	xpAnomalyReport = 50
	xpReport        = 25
	xpPerfectQuiz   = 30
	xpReportShared  = 15
)

// announceDelay paces back-to-back unlocks so announcements don't overlap.
const announceDelay = 3 * time.Second

type pendingAward struct {
	userID      string
	achievement models.Achievement
}

// GamificationService orchestrates XP awarding, achievement evaluation and
// paced announcement. Construct one per process and inject it; there is no
// package-level instance, so tests can run isolated copies.
type GamificationService struct {
	Store *store.DataStore
	Hub   *notify.Hub

	// AnnounceDelay defaults to announceDelay; tests shorten it.
	AnnounceDelay time.Duration

	mu       sync.Mutex
	queue    []pendingAward
	draining bool
}

func NewGamificationService(ds *store.DataStore, hub *notify.Hub) *GamificationService {
	return &GamificationService{
		Store:         ds,
		Hub:           hub,
		AnnounceDelay: announceDelay,
	}
}

// AwardXP grants points and, when asked, announces the gain. Best-effort:
// failures are logged and swallowed so a flaky backend never breaks the
// triggering user action.
func (g *GamificationService) AwardXP(userID string, amount int, reason string, showFeedback bool) {
	if err := g.Store.AwardXP(userID, amount, reason); err != nil {
		logger.Error().Err(err).Str("reason", reason).Int("amount", amount).Msg("failed to award XP")
		return
	}
	if showFeedback {
		g.Hub.XPGained(amount, reason)
		g.Hub.Celebrate(notify.CelebrationXP, amount)
	}
}

// CheckAchievements evaluates the rule catalog against the user's profile and
// the event context, persists any new badges plus their XP in a single
// profile update, queues the announcements, and returns the new achievements
// immediately; callers never wait for the announcement pacing.
func (g *GamificationService) CheckAchievements(userID string, ctx *models.GamificationContext) []models.Achievement {
	profile, err := g.Store.GetProfile(userID)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load profile for achievement check")
		return nil
	}
	if profile == nil {
		return nil
	}

	earned := models.CheckAchievements(profile, ctx)
	if len(earned) == 0 {
		return nil
	}

	now := time.Now()
	badges := make([]models.Badge, 0, len(profile.Badges)+len(earned))
	badges = append(badges, profile.Badges...)

	totalXP := 0
	for _, a := range earned {
		totalXP += a.XPReward
		badges = append(badges, models.Badge{
			Code:        a.Code,
			Title:       a.Title,
			Emoji:       a.Emoji,
			Description: a.Description,
			EarnedAt:    now,
		})
	}

	// One update call carries both the badge list and the bonus XP, so a
	// badge can never land without its points. The read above and this
	// write still race against concurrent checks in cloud mode.
	points := profile.Points + totalXP
	if _, err := g.Store.UpdateProfile(userID, models.ProfileUpdate{
		Badges: badges,
		Points: &points,
	}); err != nil {
		logger.Error().Err(err).Msg("failed to persist earned achievements")
		return nil
	}

	g.enqueue(userID, earned)
	return earned
}

func (g *GamificationService) enqueue(userID string, earned []models.Achievement) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, a := range earned {
		g.queue = append(g.queue, pendingAward{userID: userID, achievement: a})
	}
	if !g.draining {
		g.draining = true
		go g.drainQueue()
	}
}

// drainQueue announces queued achievements one at a time with a fixed pause
// between them. Single-flight: the draining flag guarantees at most one loop;
// once started it always runs until the queue empties (no cancellation).
func (g *GamificationService) drainQueue() {
	for {
		g.mu.Lock()
		if len(g.queue) == 0 {
			g.draining = false
			g.mu.Unlock()
			return
		}
		item := g.queue[0]
		g.queue = g.queue[1:]
		g.mu.Unlock()

		g.announce(item)
		time.Sleep(g.AnnounceDelay)
	}
}

func (g *GamificationService) announce(item pendingAward) {
	a := item.achievement
	g.Hub.AchievementEarned(a)

	switch a.Rarity {
	case models.RarityLegendary:
		g.Hub.Celebrate(notify.CelebrationFirework, 0)
	case models.RarityEpic:
		g.Hub.Celebrate(notify.CelebrationBurst, 0)
	case models.RarityRare:
		streak := 1
		if profile, err := g.Store.GetProfile(item.userID); err == nil && profile != nil && profile.StreakDays > 0 {
			streak = profile.StreakDays
		}
		g.Hub.Celebrate(notify.CelebrationStreak, streak)
	default:
		g.Hub.Celebrate(notify.CelebrationXP, a.XPReward)
	}
}

// Convenience triggers, the only sanctioned entry points from handlers.

func (g *GamificationService) OnReportSubmitted(userID string, isAnomaly bool) []models.Achievement {
	ctx := &models.GamificationContext{ReportsCount: 1}
	xp, reason := xpReport, "Water Quality Report"
	if isAnomaly {
		ctx.AnomaliesReported = 1
		xp, reason = xpAnomalyReport, "Anomaly Report"
	}
	g.AwardXP(userID, xp, reason, true)
	return g.CheckAchievements(userID, ctx)
}

// OnQuizCompleted takes the score as a fraction in [0,1].
func (g *GamificationService) OnQuizCompleted(userID string, score float64, perfectScore bool) []models.Achievement {
	ctx := &models.GamificationContext{
		QuizzesCompleted: 1,
		HasPerfectQuiz:   perfectScore,
	}
	if score >= 0.9 {
		ctx.HighScoreQuizzes = 1
	}

	xp := xpPerfectQuiz
	if !perfectScore {
		xp = int(math.Round(score * 20))
	}
	g.AwardXP(userID, xp, "Quiz Completion", true)
	return g.CheckAchievements(userID, ctx)
}

func (g *GamificationService) OnDashboardVisit(userID string) []models.Achievement {
	return g.CheckAchievements(userID, &models.GamificationContext{DashboardViews: 1})
}

func (g *GamificationService) OnMapVisit(userID string) []models.Achievement {
	return g.CheckAchievements(userID, &models.GamificationContext{MapViews: 1})
}

func (g *GamificationService) OnReportShared(userID string) []models.Achievement {
	g.AwardXP(userID, xpReportShared, "Report Shared", true)
	return g.CheckAchievements(userID, &models.GamificationContext{SharedReports: 1})
}

func (g *GamificationService) OnLocationEnabled(userID string) []models.Achievement {
	return g.CheckAchievements(userID, &models.GamificationContext{HasLocationReports: true})
}
