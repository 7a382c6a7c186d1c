package services

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"water-monitor-system/models"
	"water-monitor-system/notify"
	"water-monitor-system/store"
)

func newProfileTestApp(t *testing.T) (*fiber.App, *store.DataStore, *store.LocalStore) {
	t.Helper()

	local, err := store.OpenLocal(t.TempDir())
	require.NoError(t, err)
	ds := store.New(nil, local, nil, notify.NewHub())

	svc := NewProfileService(ds)
	app := fiber.New()
	app.Patch("/profile", svc.UpdateProfile)
	return app, ds, local
}

func patchProfile(t *testing.T, app *fiber.App, body string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPatch, "/profile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestUpdateProfileIgnoresGamificationFields(t *testing.T) {
	app, ds, _ := newProfileTestApp(t)

	// Points, streaks and badges ride along in the body; only the identity
	// fields may take effect.
	status := patchProfile(t, app, `{"username":"Renamed","points":1,"streak_days":0,"badges":[]}`)
	assert.Equal(t, fiber.StatusOK, status)

	profile, err := ds.GetProfile("")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", profile.Username)
	assert.Equal(t, 450, profile.Points) // untouched seeded value
	assert.Equal(t, 7, profile.StreakDays)
	assert.Len(t, profile.Badges, 2)
}

func TestUpdateProfileIdentityFields(t *testing.T) {
	app, ds, _ := newProfileTestApp(t)

	status := patchProfile(t, app, `{"avatar_emoji":"🐟","region":"ZA"}`)
	assert.Equal(t, fiber.StatusOK, status)

	profile, err := ds.GetProfile("")
	require.NoError(t, err)
	assert.Equal(t, "🐟", profile.AvatarEmoji)
	assert.Equal(t, "ZA", profile.Region)
	assert.Equal(t, "Demo User", profile.Username) // absent field kept
}

func TestUpdateProfileMissingProfileIs404(t *testing.T) {
	app, _, local := newProfileTestApp(t)

	// Pre-write an empty collection so seeding does not repopulate it.
	require.NoError(t, local.Put("profiles", []models.Profile{}))

	status := patchProfile(t, app, `{"username":"Ghost"}`)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestUpdateProfileResponseCarriesProfile(t *testing.T) {
	app, _, _ := newProfileTestApp(t)

	req := httptest.NewRequest(fiber.MethodPatch, "/profile", strings.NewReader(`{"username":"Renamed"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var profile models.Profile
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&profile))
	assert.Equal(t, "Renamed", profile.Username)
	assert.Equal(t, 450, profile.Points)
}
