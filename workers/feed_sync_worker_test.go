package workers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"water-monitor-system/store"
)

func boolPtr(v bool) *bool { return &v }

func TestFlagAnomalies(t *testing.T) {
	readings := []store.SensorReadingRow{
		{ID: "ok", PHLevel: 7.2, Turbidity: 2.0, DissolvedOxygen: 8.0},
		{ID: "acidic", PHLevel: 5.9, Turbidity: 2.0, DissolvedOxygen: 8.0},
		{ID: "murky", PHLevel: 7.2, Turbidity: 9.5, DissolvedOxygen: 8.0},
		{ID: "hypoxic", PHLevel: 7.2, Turbidity: 2.0, DissolvedOxygen: 3.1},
		// Already flagged upstream: left alone even though values look fine.
		{ID: "preflagged", PHLevel: 7.2, Turbidity: 2.0, DissolvedOxygen: 8.0, IsAnomaly: boolPtr(true)},
	}

	flagAnomalies(readings)

	assert.False(t, *readings[0].IsAnomaly)
	assert.True(t, *readings[1].IsAnomaly)
	assert.True(t, *readings[2].IsAnomaly)
	assert.True(t, *readings[3].IsAnomaly)
	assert.True(t, *readings[4].IsAnomaly)
}

func TestGetNewReadings(t *testing.T) {
	since := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/readings", r.URL.Path)
		assert.Equal(t, since.Format(time.RFC3339), r.URL.Query().Get("since"))
		assert.Equal(t, "secret-token", r.Header.Get("X-Service-Token"))

		json.NewEncoder(w).Encode(map[string]any{
			"readings": []store.SensorReadingRow{
				{ID: "feed-1", Timestamp: since.Add(time.Hour), PHLevel: 7.1},
			},
		})
	}))
	defer srv.Close()

	client := NewFeedSyncClient(nil, srv.URL, "secret-token")
	readings, err := client.GetNewReadings(context.Background(), since)
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, "feed-1", readings[0].ID)
}

func TestGetNewReadingsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "feed offline", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewFeedSyncClient(nil, srv.URL, "")
	_, err := client.GetNewReadings(context.Background(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}
