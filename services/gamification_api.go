package services

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"water-monitor-system/models"

	"github.com/gofiber/fiber/v2"
)

// HTTP surface of the gamification engine. The view triggers exist because
// some achievements count screen visits, which only the client can observe.

// ListAchievements returns the full catalog so the UI can render locked and
// unlocked states side by side.
func (g *GamificationService) ListAchievements(c *fiber.Ctx) error {
	return c.JSON(models.Achievements)
}

func (g *GamificationService) VisitDashboard(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	earned := g.OnDashboardVisit(orDemoUser(userID))
	return c.JSON(fiber.Map{"achievements": earned})
}

func (g *GamificationService) VisitMap(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	earned := g.OnMapVisit(orDemoUser(userID))
	return c.JSON(fiber.Map{"achievements": earned})
}

func (g *GamificationService) EnableLocation(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	earned := g.OnLocationEnabled(orDemoUser(userID))
	return c.JSON(fiber.Map{"achievements": earned})
}

// StreamEvents pushes hub events (toasts, XP gains, achievement unlocks,
// celebrations) to the client over SSE.
func (g *GamificationService) StreamEvents(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no") // nginx

	events, cancel := g.Hub.Subscribe()

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()

		keepalive := time.NewTicker(15 * time.Second)
		defer keepalive.Stop()

		// Initial keepalive (comment event)
		w.WriteString(":\n\n")
		if err := w.Flush(); err != nil {
			return
		}

		for {
			select {
			case evt, ok := <-events:
				if !ok {
					return
				}
				payload, _ := json.Marshal(evt)
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", evt.Kind, payload)
				if err := w.Flush(); err != nil {
					// Client disconnected
					return
				}

			case <-keepalive.C:
				w.WriteString(":\n\n")
				if err := w.Flush(); err != nil {
					return
				}

			case <-c.Context().Done():
				return
			}
		}
	})

	return nil
}
