package services

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"water-monitor-system/notify"
	"water-monitor-system/store"
)

func newQuizTestApp(t *testing.T) (*fiber.App, *store.DataStore) {
	t.Helper()

	local, err := store.OpenLocal(t.TempDir())
	require.NoError(t, err)
	hub := notify.NewHub()
	ds := store.New(nil, local, nil, hub)

	game := NewGamificationService(ds, hub)
	game.AnnounceDelay = time.Millisecond

	svc := NewQuizService(ds, game)
	app := fiber.New()
	app.Post("/quiz/attempts", svc.SaveAttempt)
	return app, ds
}

func postAttempt(t *testing.T, app *fiber.App, body string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/quiz/attempts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestSaveAttemptOncePerDay(t *testing.T) {
	app, ds := newQuizTestApp(t)

	body := `{"correct":3,"total":3,"questionsAnswered":[1,2,3]}`
	assert.Equal(t, fiber.StatusCreated, postAttempt(t, app, body))

	profile, err := ds.GetProfile("")
	require.NoError(t, err)
	pointsAfterFirst := profile.Points

	// Same day again: rejected, no duplicate attempt, no second XP payout.
	assert.Equal(t, fiber.StatusConflict, postAttempt(t, app, body))

	profile, err = ds.GetProfile("")
	require.NoError(t, err)
	assert.Equal(t, pointsAfterFirst, profile.Points)

	attempt, err := ds.GetTodaysQuizAttempt(store.DemoUserID)
	require.NoError(t, err)
	require.NotNil(t, attempt)
	assert.Equal(t, 3, attempt.Correct)
}

func TestSaveAttemptValidatesScore(t *testing.T) {
	app, _ := newQuizTestApp(t)

	assert.Equal(t, fiber.StatusBadRequest, postAttempt(t, app, `{"correct":4,"total":3}`))
	assert.Equal(t, fiber.StatusBadRequest, postAttempt(t, app, `{"correct":0,"total":0}`))
}
