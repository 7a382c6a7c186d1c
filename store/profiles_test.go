package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"water-monitor-system/models"
	"water-monitor-system/notify"
)

func TestGetProfileLocalReturnsDemoUser(t *testing.T) {
	s := newTestStore(t)

	profile, err := s.GetProfile("whoever")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, DemoUserID, profile.ID)
	assert.Equal(t, 450, profile.Points)
	assert.Equal(t, 7, profile.StreakDays)
	assert.Len(t, profile.Badges, 2)
}

func TestUpdateProfilePartialMerge(t *testing.T) {
	s := newTestStore(t)

	points := 999
	updated, err := s.UpdateProfile("", models.ProfileUpdate{Points: &points})
	require.NoError(t, err)

	// Only the given field changed, updated_at always refreshes.
	assert.Equal(t, 999, updated.Points)
	assert.Equal(t, "Demo User", updated.Username)
	assert.Equal(t, 7, updated.StreakDays)
	assert.Equal(t, testNow, updated.UpdatedAt)

	// The merge persisted.
	reloaded, err := s.GetProfile("")
	require.NoError(t, err)
	assert.Equal(t, 999, reloaded.Points)
}

func TestAwardXPAddsPointsAndToasts(t *testing.T) {
	local, err := OpenLocal(t.TempDir())
	require.NoError(t, err)
	hub := notify.NewHub()
	s := New(nil, local, nil, hub)
	s.now = func() time.Time { return testNow }

	events, cancel := hub.Subscribe()
	defer cancel()

	require.NoError(t, s.AwardXP("", 50, "Anomaly Report"))

	profile, err := s.GetProfile("")
	require.NoError(t, err)
	assert.Equal(t, 500, profile.Points) // seeded 450 + 50

	select {
	case evt := <-events:
		assert.Equal(t, notify.EventToast, evt.Kind)
		assert.Equal(t, "+50 XP: Anomaly Report", evt.Toast.Message)
	case <-time.After(time.Second):
		t.Fatal("no toast published")
	}
}

func TestAlertPreferencesRoundTrip(t *testing.T) {
	s := newTestStore(t)

	prefs, err := s.GetAlertPreferences("")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultAlertPreferences(), prefs)

	prefs.AlertRadius = 12.5
	require.NoError(t, s.SaveAlertPreferences("", prefs))

	reloaded, err := s.GetAlertPreferences("")
	require.NoError(t, err)
	assert.Equal(t, 12.5, reloaded.AlertRadius)
}

func TestSaveFeatureFlagsPersistsBackendChoice(t *testing.T) {
	s := newTestStore(t)

	flags, err := s.GetFeatureFlags("")
	require.NoError(t, err)
	flags.UseCloudBackend = true
	require.NoError(t, s.SaveFeatureFlags("", flags))

	// The settings blob was written alongside the profile.
	var settings BackendSettings
	ok, err := s.local.Get(keySettings, &settings)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, settings.UseCloudBackend)

	// Still local: the flag cannot force cloud mode without a database.
	assert.False(t, s.useCloud())
}
