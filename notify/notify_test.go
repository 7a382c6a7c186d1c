package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeReceivesPublishedEvents(t *testing.T) {
	hub := NewHub()
	events, cancel := hub.Subscribe()
	defer cancel()

	hub.Toast("+25 XP: Water Quality Report", "success")

	evt := <-events
	assert.Equal(t, EventToast, evt.Kind)
	require.NotNil(t, evt.Toast)
	assert.Equal(t, "success", evt.Toast.Level)
}

func TestCancelClosesChannel(t *testing.T) {
	hub := NewHub()
	events, cancel := hub.Subscribe()

	cancel()
	_, open := <-events
	assert.False(t, open)

	// Cancelling twice is safe, as is publishing afterwards.
	cancel()
	hub.XPGained(10, "test")
}

func TestSlowSubscriberNeverBlocksPublisher(t *testing.T) {
	hub := NewHub()
	_, cancel := hub.Subscribe() // nobody ever reads
	defer cancel()

	// Overflow the buffer; Publish must drop rather than block.
	for i := 0; i < 100; i++ {
		hub.XPGained(i, "flood")
	}
}

func TestEventsAreFannedOut(t *testing.T) {
	hub := NewHub()
	a, cancelA := hub.Subscribe()
	defer cancelA()
	b, cancelB := hub.Subscribe()
	defer cancelB()

	hub.Celebrate(CelebrationFirework, 0)

	evtA := <-a
	evtB := <-b
	assert.Equal(t, EventCelebration, evtA.Kind)
	assert.Equal(t, evtA, evtB)
}
