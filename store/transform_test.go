package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"water-monitor-system/models"
)

func TestDecodeBadgesFallsBackOnGarbage(t *testing.T) {
	assert.Empty(t, decodeBadges(json.RawMessage(`{not json`), "p1"))
	assert.Empty(t, decodeBadges(nil, "p1"))

	// Decodes but lacks the required shape: treated the same as garbage.
	assert.Empty(t, decodeBadges(json.RawMessage(`[{"points": 5}]`), "p1"))

	raw := mustJSON([]models.Badge{{Code: "first_report", Title: "First Reporter", EarnedAt: time.Now()}})
	badges := decodeBadges(raw, "p1")
	require.Len(t, badges, 1)
	assert.Equal(t, "first_report", badges[0].Code)
}

func TestDecodeAlertPrefsFallsBackToDefaults(t *testing.T) {
	defaults := models.DefaultAlertPreferences()

	assert.Equal(t, defaults, decodeAlertPrefs(json.RawMessage(`garbage`), "p1"))
	assert.Equal(t, defaults, decodeAlertPrefs(nil, "p1"))

	// All-zero thresholds carry no information; defaults win.
	assert.Equal(t, defaults, decodeAlertPrefs(json.RawMessage(`{}`), "p1"))

	custom := defaults
	custom.PHMax = 9.0
	assert.Equal(t, custom, decodeAlertPrefs(mustJSON(custom), "p1"))
}

func TestDecodeFlagsFallsBackToDefaults(t *testing.T) {
	assert.Equal(t, models.DefaultFeatureFlags(true), decodeFlags(json.RawMessage(`]`), "p1", true))
	assert.Equal(t, models.DefaultFeatureFlags(false), decodeFlags(nil, "p1", false))
}

func TestTransformReportEmptyBlobs(t *testing.T) {
	row := &ReportRow{
		ID:        "r1",
		Timestamp: testNow,
		Title:     "Foam on the surface",
		Status:    "submitted",
	}
	report := transformReport(row)

	// Nil blobs become empty slices, never nil JSON arrays.
	assert.NotNil(t, report.Images)
	assert.NotNil(t, report.Verifications)
	assert.NotNil(t, report.Reactions)
	assert.Equal(t, models.ReportStatusSubmitted, report.Status)
	assert.Empty(t, report.UserID)
	assert.Empty(t, report.Location)
}

func TestLocalStoreGetMissingKey(t *testing.T) {
	local, err := OpenLocal(t.TempDir())
	require.NoError(t, err)

	var out []string
	ok, err := local.Get("nothing-here", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}
