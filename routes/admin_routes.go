package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wunderfolk/studio_booking/handlers"
	"github.com/wunderfolk/studio_booking/middleware"
)

func AdminRoutes(app *fiber.App, admin *handlers.AdminHandler) {
	api := app.Group("/api/v1")

	api.Post("/auth/login", handlers.LoginUser)

	protected := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	protected.Get("/bookings", admin.ListBookings)
	protected.Post("/bookings/:meetingId/cancel", admin.CancelMeeting)
}
