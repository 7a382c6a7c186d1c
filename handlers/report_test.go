package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"water-monitor-system/models"
	"water-monitor-system/notify"
	"water-monitor-system/services"
	"water-monitor-system/store"
)

func newReportTestApp(t *testing.T) (*fiber.App, *store.DataStore) {
	t.Helper()

	local, err := store.OpenLocal(t.TempDir())
	require.NoError(t, err)
	hub := notify.NewHub()
	ds := store.New(nil, local, nil, hub)

	game := services.NewGamificationService(ds, hub)
	game.AnnounceDelay = time.Millisecond

	app := fiber.New()
	SetupReportRoutes(app, services.NewReportService(ds, game))
	return app, ds
}

func TestReportStatusRequiresUser(t *testing.T) {
	app, ds := newReportTestApp(t)

	req := httptest.NewRequest(fiber.MethodPatch, "/reports/report-1/status", strings.NewReader(`{"status":"resolved"}`))
	req.Header.Set("Content-Type", "application/json")

	// Anonymous: moderation is refused even in demo mode.
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// With gateway identity the same request goes through.
	req = httptest.NewRequest(fiber.MethodPatch, "/reports/report-1/status", strings.NewReader(`{"status":"resolved"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "moderator-1")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	reports, err := ds.ListReports()
	require.NoError(t, err)
	for _, r := range reports {
		if r.ID == "report-1" {
			assert.Equal(t, models.ReportStatusResolved, r.Status)
		}
	}
}
