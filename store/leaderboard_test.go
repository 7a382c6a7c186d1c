package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardLocalRanking(t *testing.T) {
	s := newTestStore(t)

	entries, err := s.GetLeaderboard("")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// AquaExpert (820) outranks the demo user (450).
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "AquaExpert", entries[0].Username)
	assert.False(t, entries[0].IsCurrentUser)

	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, DemoUserID, entries[1].ID)
	assert.True(t, entries[1].IsCurrentUser)
}

func TestLeaderboardTracksPointChanges(t *testing.T) {
	s := newTestStore(t)

	// Push the demo user past AquaExpert.
	require.NoError(t, s.AwardXP("", 500, "test"))

	entries, err := s.GetLeaderboard("")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, DemoUserID, entries[0].ID)
	assert.Equal(t, 950, entries[0].Points)
	assert.True(t, entries[0].IsCurrentUser)
}
