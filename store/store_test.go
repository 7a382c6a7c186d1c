package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"water-monitor-system/notify"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

// newTestStore builds a DataStore with no cloud backend, a throwaway local
// dir and a fixed clock.
func newTestStore(t *testing.T) *DataStore {
	t.Helper()
	local, err := OpenLocal(t.TempDir())
	require.NoError(t, err)

	s := New(nil, local, nil, notify.NewHub())
	s.now = func() time.Time { return testNow }
	return s
}

func TestLocalSeedingIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	first, err := s.localReadings()
	require.NoError(t, err)
	require.Len(t, first, 24)

	second, err := s.localReadings()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDemoDatasetIsDeterministic(t *testing.T) {
	a := generateDemoDataset(testNow)
	b := generateDemoDataset(testNow)
	assert.Equal(t, a, b)
}

func TestUseCloudWithoutDatabase(t *testing.T) {
	s := newTestStore(t)

	// No cloud configured: local regardless of the persisted flag.
	assert.False(t, s.useCloud())
	require.NoError(t, s.SaveBackendSettings(BackendSettings{UseCloudBackend: true}))
	assert.False(t, s.useCloud())
	assert.False(t, s.CloudConfigured())
}

func TestGetLatestReadingsReturnsFive(t *testing.T) {
	s := newTestStore(t)

	readings, err := s.GetLatestReadings()
	require.NoError(t, err)
	assert.Len(t, readings, 5)
}

func TestGetHistoryWindow(t *testing.T) {
	s := newTestStore(t)

	// The seeded series spans the trailing 24h, so a 6h window trims it.
	all, err := s.GetHistory(24)
	require.NoError(t, err)
	require.Len(t, all, 24)

	recent, err := s.GetHistory(6)
	require.NoError(t, err)
	assert.Len(t, recent, 7) // hours 0..6 inclusive
	for _, r := range recent {
		assert.False(t, r.Timestamp.Before(testNow.Add(-6*time.Hour)))
	}

	// Non-positive falls back to the default window.
	defaulted, err := s.GetHistory(0)
	require.NoError(t, err)
	assert.Equal(t, all, defaulted)
}

func TestGetPredictionsCapped(t *testing.T) {
	s := newTestStore(t)

	predictions, err := s.GetPredictions(6)
	require.NoError(t, err)
	assert.Len(t, predictions, 6)

	predictions, err = s.GetPredictions(0)
	require.NoError(t, err)
	assert.Len(t, predictions, 24)
}
