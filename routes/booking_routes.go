package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wunderfolk/studio_booking/handlers"
)

func BookingRoutes(app *fiber.App, bookings *handlers.BookingHandler, availability *handlers.AvailabilityHandler) {
	api := app.Group("/api/v1")

	api.Get("/availability", availability.GetAvailability)
	api.Post("/bookings", bookings.CreateBooking)
}
