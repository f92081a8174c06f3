package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	ws "github.com/wunderfolk/studio_booking/websocket"
)

// RealtimeRoutes exposes the slot-event stream calendar widgets subscribe to
// for live availability refreshes.
func RealtimeRoutes(app *fiber.App) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/slots", websocket.New(ws.ServeSlots))
}
