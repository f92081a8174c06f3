package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/wunderfolk/studio_booking/store"
)

type AdminHandler struct {
	bookings *store.BookingStore
}

func NewAdminHandler(bookings *store.BookingStore) *AdminHandler {
	return &AdminHandler{bookings: bookings}
}

// ListBookings returns all bookings, newest meetings first, optionally
// restricted to a start_time window via ?from= and ?to= (RFC3339).
func (h *AdminHandler) ListBookings(c *fiber.Ctx) error {
	var from, to *time.Time

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "from must be a valid RFC3339 timestamp"})
		}
		from = &parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "to must be a valid RFC3339 timestamp"})
		}
		to = &parsed
	}

	bookings, err := h.bookings.ListBookings(from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load bookings"})
	}

	return c.JSON(fiber.Map{"bookings": bookings})
}

// CancelMeeting flips every confirmed row of a meeting to cancelled, freeing
// the slot for all its members. Rows are kept for the audit trail.
func (h *AdminHandler) CancelMeeting(c *fiber.Ctx) error {
	meetingID, err := uuid.Parse(c.Params("meetingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "meetingId must be a valid UUID"})
	}

	cancelled, err := h.bookings.CancelMeeting(meetingID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to cancel meeting"})
	}
	if cancelled == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No confirmed meeting with that id"})
	}

	return c.JSON(fiber.Map{"message": "Meeting cancelled", "cancelled_bookings": cancelled})
}
