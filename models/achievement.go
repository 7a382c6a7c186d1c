package models

// Rarity controls how loud the celebration is, nothing else.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// AchievementCategory groups achievements for display.
type AchievementCategory string

const (
	CategoryReporting  AchievementCategory = "reporting"
	CategoryLearning   AchievementCategory = "learning"
	CategoryEngagement AchievementCategory = "engagement"
	CategoryExpert     AchievementCategory = "expert"
	CategoryCommunity  AchievementCategory = "community"
)

// GamificationContext describes what just happened, per triggering event.
// All fields are optional counters/flags; the zero value means "nothing of
// that kind". It is never persisted.
type GamificationContext struct {
	ReportsCount       int  `json:"reports_count,omitempty"`
	QuizzesCompleted   int  `json:"quizzes_completed,omitempty"`
	AnomaliesReported  int  `json:"anomalies_reported,omitempty"`
	HasPerfectQuiz     bool `json:"has_perfect_quiz,omitempty"`
	HighScoreQuizzes   int  `json:"high_score_quizzes,omitempty"`
	DashboardViews     int  `json:"dashboard_views,omitempty"`
	MapViews           int  `json:"map_views,omitempty"`
	SharedReports      int  `json:"shared_reports,omitempty"`
	HasLocationReports bool `json:"has_location_reports,omitempty"`
}

// Achievement is a static, code-defined rule. Condition must be pure: it may
// read profile scalars and context counters only.
type Achievement struct {
	Code        string              `json:"code"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Emoji       string              `json:"emoji"`
	Category    AchievementCategory `json:"category"`
	XPReward    int                 `json:"xp_reward"`
	Rarity      Rarity              `json:"rarity"`
	Condition   func(p *Profile, ctx *GamificationContext) bool `json:"-"`
}

// Achievements is the full catalog, loaded once. Order matters: it is the
// tie-break for achievements earned in the same evaluation.
var Achievements = []Achievement{
	// Reporting
	{
		Code:        "first_report",
		Title:       "First Reporter",
		Description: "Submit your first water quality report",
		Emoji:       "📝",
		Category:    CategoryReporting,
		XPReward:    25,
		Rarity:      RarityCommon,
		Condition:   func(p *Profile, ctx *GamificationContext) bool { return ctx.ReportsCount >= 1 },
	},
	{
		Code:        "reporter_5",
		Title:       "Active Reporter",
		Description: "Submit 5 water quality reports",
		Emoji:       "📊",
		Category:    CategoryReporting,
		XPReward:    50,
		Rarity:      RarityUncommon,
		Condition:   func(p *Profile, ctx *GamificationContext) bool { return ctx.ReportsCount >= 5 },
	},
	{
		Code:        "reporter_10",
		Title:       "Dedicated Reporter",
		Description: "Submit 10 water quality reports",
		Emoji:       "🏆",
		Category:    CategoryReporting,
		XPReward:    100,
		Rarity:      RarityRare,
		Condition:   func(p *Profile, ctx *GamificationContext) bool { return ctx.ReportsCount >= 10 },
	},
	{
		Code:        "anomaly_finder",
		Title:       "Anomaly Detector",
		Description: "Report a confirmed water quality anomaly",
		Emoji:       "🔍",
		Category:    CategoryReporting,
		XPReward:    75,
		Rarity:      RarityUncommon,
		Condition:   func(p *Profile, ctx *GamificationContext) bool { return ctx.AnomaliesReported >= 1 },
	},

	// Learning
	{
		Code:        "first_quiz",
		Title:       "Knowledge Seeker",
		Description: "Complete your first daily quiz",
		Emoji:       "🧠",
		Category:    CategoryLearning,
		XPReward:    20,
		Rarity:      RarityCommon,
		Condition:   func(p *Profile, ctx *GamificationContext) bool { return ctx.QuizzesCompleted >= 1 },
	},
	{
		Code:        "perfect_quiz",
		Title:       "Perfect Score",
		Description: "Get 100% on a daily quiz",
		Emoji:       "🎯",
		Category:    CategoryLearning,
		XPReward:    50,
		Rarity:      RarityUncommon,
		Condition:   func(p *Profile, ctx *GamificationContext) bool { return ctx.HasPerfectQuiz },
	},
	{
		Code:        "quiz_streak_7",
		Title:       "Learning Streak",
		Description: "Complete 7 daily quizzes in a row",
		Emoji:       "🔥",
		Category:    CategoryLearning,
		XPReward:    100,
		Rarity:      RarityRare,
		Condition:   func(p *Profile, ctx *GamificationContext) bool { return p.StreakDays >= 7 },
	},
	{
		Code:        "quiz_streak_30",
		Title:       "Knowledge Master",
		Description: "Complete 30 daily quizzes in a row",
		Emoji:       "🌟",
		Category:    CategoryLearning,
		XPReward:    300,
		Rarity:      RarityEpic,
		Condition:   func(p *Profile, ctx *GamificationContext) bool { return p.StreakDays >= 30 },
	},

	// Engagement
	{
		Code:        "points_100",
		Title:       "Rising Star",
		Description: "Earn your first 100 points",
		Emoji:       "⭐",
		Category:    CategoryEngagement,
		XPReward:    25,
		Rarity:      RarityCommon,
		Condition:   func(p *Profile, ctx *GamificationContext) bool { return p.Points >= 100 },
	},
	{
		Code:        "points_500",
		Title:       "Community Champion",
		Description: "Earn 500 points",
		Emoji:       "🏅",
		Category:    CategoryEngagement,
		XPReward:    75,
		Rarity:      RarityUncommon,
		Condition:   func(p *Profile, ctx *GamificationContext) bool { return p.Points >= 500 },
	},
	{
		Code:        "points_1000",
		Title:       "Lake Guardian",
		Description: "Earn 1000 points",
		Emoji:       "🛡️",
		Category:    CategoryEngagement,
		XPReward:    150,
		Rarity:      RarityRare,
		Condition:   func(p *Profile, ctx *GamificationContext) bool { return p.Points >= 1000 },
	},
	{
		Code:        "early_adopter",
		Title:       "Early Adopter",
		Description: "Join the community",
		Emoji:       "🚀",
		Category:    CategoryEngagement,
		XPReward:    10,
		Rarity:      RarityCommon,
		Condition:   func(p *Profile, ctx *GamificationContext) bool { return true }, // granted on first evaluation
	},

	// Expert
	{
		Code:        "water_expert",
		Title:       "Water Quality Expert",
		Description: "Score 90%+ on 5 different quizzes",
		Emoji:       "💧",
		Category:    CategoryExpert,
		XPReward:    200,
		Rarity:      RarityEpic,
		Condition:   func(p *Profile, ctx *GamificationContext) bool { return ctx.HighScoreQuizzes >= 5 },
	},
	{
		Code:        "data_analyst",
		Title:       "Data Analyst",
		Description: "View the dashboard 10 times",
		Emoji:       "📈",
		Category:    CategoryExpert,
		XPReward:    50,
		Rarity:      RarityUncommon,
		Condition:   func(p *Profile, ctx *GamificationContext) bool { return ctx.DashboardViews >= 10 },
	},
	{
		Code:        "map_explorer",
		Title:       "Map Explorer",
		Description: "Explore the water quality map 5 times",
		Emoji:       "🗺️",
		Category:    CategoryExpert,
		XPReward:    30,
		Rarity:      RarityCommon,
		Condition:   func(p *Profile, ctx *GamificationContext) bool { return ctx.MapViews >= 5 },
	},

	// Community
	{
		Code:        "social_butterfly",
		Title:       "Social Butterfly",
		Description: "Share a report with the community",
		Emoji:       "🦋",
		Category:    CategoryCommunity,
		XPReward:    40,
		Rarity:      RarityUncommon,
		Condition:   func(p *Profile, ctx *GamificationContext) bool { return ctx.SharedReports >= 1 },
	},
	{
		Code:        "helpful_citizen",
		Title:       "Helpful Citizen",
		Description: "Enable location sharing for reports",
		Emoji:       "📍",
		Category:    CategoryCommunity,
		XPReward:    20,
		Rarity:      RarityCommon,
		Condition:   func(p *Profile, ctx *GamificationContext) bool { return ctx.HasLocationReports },
	},
}

// CheckAchievements returns the achievements the profile newly qualifies for,
// in catalog order. Already-earned codes are skipped, so a persisted award is
// never returned twice.
func CheckAchievements(p *Profile, ctx *GamificationContext) []Achievement {
	if ctx == nil {
		ctx = &GamificationContext{}
	}

	earned := make(map[string]bool, len(p.Badges))
	for _, b := range p.Badges {
		earned[b.Code] = true
	}

	var out []Achievement
	for _, a := range Achievements {
		if earned[a.Code] {
			continue
		}
		if a.Condition(p, ctx) {
			out = append(out, a)
		}
	}
	return out
}

// AchievementByCode looks a rule up in the catalog.
func AchievementByCode(code string) (Achievement, bool) {
	for _, a := range Achievements {
		if a.Code == code {
			return a, true
		}
	}
	return Achievement{}, false
}
