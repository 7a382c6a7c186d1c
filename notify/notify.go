// Package notify is the in-process feedback channel between the data layer,
// the gamification engine and whatever UI transport is attached (SSE here).
// Publishing is fire-and-forget: no acknowledgment, no backpressure.
package notify

import (
	"sync"

	"water-monitor-system/models"
)

// EventKind names the events UI subscribers can receive.
type EventKind string

const (
	EventToast             EventKind = "toast"
	EventXPGained          EventKind = "xp-gained"
	EventAchievementEarned EventKind = "achievement-earned"
	EventCelebration       EventKind = "celebration"
)

// CelebrationStyle maps achievement rarity to a visual effect. Rendering is
// the UI's problem; we only name the effect and its intensity.
type CelebrationStyle string

const (
	CelebrationFirework CelebrationStyle = "firework" // legendary
	CelebrationBurst    CelebrationStyle = "burst"    // epic
	CelebrationStreak   CelebrationStyle = "streak"   // rare, scaled by streak days
	CelebrationXP       CelebrationStyle = "xp"       // everything else, scaled by xp
)

// Event is one hub message. Exactly one payload field is set, matching Kind.
type Event struct {
	Kind        EventKind           `json:"kind"`
	Toast       *ToastPayload       `json:"toast,omitempty"`
	XP          *XPPayload          `json:"xp,omitempty"`
	Achievement *models.Achievement `json:"achievement,omitempty"`
	Celebration *CelebrationPayload `json:"celebration,omitempty"`
}

type ToastPayload struct {
	Message string `json:"message"`
	Level   string `json:"level"` // success | error | info
}

type XPPayload struct {
	Amount int    `json:"amount"`
	Reason string `json:"reason"`
}

type CelebrationPayload struct {
	Style     CelebrationStyle `json:"style"`
	Intensity int              `json:"intensity"`
}

// Hub fans events out to subscribers. Slow subscribers lose events rather
// than blocking a publisher.
type Hub struct {
	mu   sync.RWMutex
	subs map[int]chan Event
	next int
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan Event)}
}

// Subscribe returns a buffered event channel and a cancel func. The channel
// is closed on cancel.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	ch := make(chan Event, 16)
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if c, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// Publish delivers evt to every current subscriber without blocking.
func (h *Hub) Publish(evt Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- evt:
		default:
		}
	}
}

// Convenience publishers.

func (h *Hub) Toast(message, level string) {
	h.Publish(Event{Kind: EventToast, Toast: &ToastPayload{Message: message, Level: level}})
}

func (h *Hub) XPGained(amount int, reason string) {
	h.Publish(Event{Kind: EventXPGained, XP: &XPPayload{Amount: amount, Reason: reason}})
}

func (h *Hub) AchievementEarned(a models.Achievement) {
	h.Publish(Event{Kind: EventAchievementEarned, Achievement: &a})
}

func (h *Hub) Celebrate(style CelebrationStyle, intensity int) {
	h.Publish(Event{Kind: EventCelebration, Celebration: &CelebrationPayload{Style: style, Intensity: intensity}})
}
