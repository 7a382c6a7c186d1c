package models

// LeaderboardEntry is a profile annotated with its 1-based rank by points.
// Ties keep the underlying sort order (stable).
type LeaderboardEntry struct {
	ID            string  `json:"id"`
	Username      string  `json:"username"`
	AvatarEmoji   string  `json:"avatar_emoji"`
	Points        int     `json:"points"`
	Badges        []Badge `json:"badges"`
	Rank          int     `json:"rank"`
	IsCurrentUser bool    `json:"is_current_user"`
}
