package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"water-monitor-system/logger"
	"water-monitor-system/store"
)

// FeedSyncClient pulls sensor readings from the upstream station feed and
// mirrors them into the cloud store.
type FeedSyncClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	DB         *gorm.DB
}

func NewFeedSyncClient(db *gorm.DB, baseURL, token string) *FeedSyncClient {
	return &FeedSyncClient{
		BaseURL: baseURL,
		Token:   token,
		DB:      db,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *FeedSyncClient) GetNewReadings(ctx context.Context, since time.Time) ([]store.SensorReadingRow, error) {
	since = since.UTC()

	u, err := url.Parse(fmt.Sprintf("%s/api/v1/readings", c.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed URL: %w", err)
	}

	q := u.Query()
	q.Set("since", since.Format(time.RFC3339))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Service-Token", c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call sensor feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("sensor feed returned status %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		Readings []store.SensorReadingRow `json:"readings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode feed response: %w", err)
	}

	return response.Readings, nil
}

// flagAnomalies applies the static threshold check to readings the feed left
// unflagged. Not a model, just limits.
func flagAnomalies(readings []store.SensorReadingRow) {
	for i := range readings {
		if readings[i].IsAnomaly != nil {
			continue
		}
		anomalous := readings[i].PHLevel < 6.5 || readings[i].PHLevel > 8.5 ||
			readings[i].Turbidity > 5.0 ||
			readings[i].DissolvedOxygen < 5.0
		readings[i].IsAnomaly = &anomalous
	}
}

// PollFeed mirrors new readings into sensor_readings on an interval.
// The sync window only advances after a successful upsert, so a failed batch
// is retried next tick.
func PollFeed(ctx context.Context, client *FeedSyncClient, pollInterval time.Duration) {
	logger.Info().Msg("Starting sensor feed polling...")
	lastSyncTime := time.Now().UTC().Add(-24 * time.Hour)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Sensor feed polling stopped.")
			return
		case <-ticker.C:
			tickTime := time.Now().UTC()

			readings, err := client.GetNewReadings(ctx, lastSyncTime)
			if err != nil {
				logger.Error().Err(err).Msg("❌ Error polling sensor feed")
				continue
			}

			count := len(readings)
			if count == 0 {
				continue
			}

			flagAnomalies(readings)

			if err := client.DB.Clauses(
				clause.OnConflict{
					Columns: []clause.Column{{Name: "id"}},
					DoUpdates: clause.AssignmentColumns([]string{
						"timestamp",
						"temperature",
						"ph_level",
						"dissolved_oxygen",
						"turbidity",
						"e_coli",
						"total_coliform",
						"bacteria_atp",
						"latitude",
						"longitude",
						"location_name",
						"is_anomaly",
					}),
				},
			).Create(&readings).Error; err != nil {
				logger.Error().Err(err).Int("count", count).Msg("❌ Failed to upsert readings")
				// Do NOT advance lastSyncTime on failure, retry same window next tick
				continue
			}

			lastSyncTime = tickTime
			logger.Info().Int("count", count).Msg("✅ Upserted sensor readings from feed")
		}
	}
}
