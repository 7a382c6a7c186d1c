package store

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"water-monitor-system/logger"
	"water-monitor-system/models"
)

const (
	leaderboardCacheKey = "leaderboard:points"
	leaderboardCacheTTL = 10 * time.Second
	leaderboardLimit    = 50
)

// GetLeaderboard returns all profiles ordered by points descending, each with
// a 1-based rank (ties keep the stable sort order) and an isCurrentUser flag
// for the caller. The cloud path is cached briefly in Redis when available.
func (s *DataStore) GetLeaderboard(userID string) ([]models.LeaderboardEntry, error) {
	if !s.useCloud() {
		profiles, err := s.localProfiles()
		if err != nil {
			return nil, err
		}
		sort.SliceStable(profiles, func(i, j int) bool {
			return profiles[i].Points > profiles[j].Points
		})
		entries := make([]models.LeaderboardEntry, len(profiles))
		for i, p := range profiles {
			entries[i] = models.LeaderboardEntry{
				ID:            p.ID,
				Username:      p.Username,
				AvatarEmoji:   p.AvatarEmoji,
				Points:        p.Points,
				Badges:        p.Badges,
				Rank:          i + 1,
				IsCurrentUser: p.ID == DemoUserID, // the demo user is always the local player
			}
		}
		return entries, nil
	}

	entries, err := s.cloudLeaderboard()
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].IsCurrentUser = userID != "" && entries[i].ID == userID
	}
	return entries, nil
}

// cloudLeaderboard serves ranked entries from Redis when the cached copy is
// fresh, falling back to Postgres. Cache failures are logged, never fatal.
func (s *DataStore) cloudLeaderboard() ([]models.LeaderboardEntry, error) {
	ctx := context.Background()

	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, leaderboardCacheKey).Result(); err == nil {
			var cached []models.LeaderboardEntry
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
			logger.Warn().Msg("discarding undecodable leaderboard cache entry")
		}
	}

	var rows []ProfileRow
	if err := s.db.
		Order("points DESC").
		Limit(leaderboardLimit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, len(rows))
	for i := range rows {
		entries[i] = models.LeaderboardEntry{
			ID:          rows[i].ID,
			Username:    rows[i].Username,
			AvatarEmoji: rows[i].AvatarEmoji,
			Points:      rows[i].Points,
			Badges:      decodeBadges(rows[i].Badges, rows[i].ID),
			Rank:        i + 1,
		}
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(entries); err == nil {
			if err := s.rdb.Set(ctx, leaderboardCacheKey, raw, leaderboardCacheTTL).Err(); err != nil {
				logger.Warn().Err(err).Msg("failed to cache leaderboard")
			}
		}
	}
	return entries, nil
}
