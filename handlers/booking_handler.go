package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	config "github.com/wunderfolk/studio_booking/configs"
	"github.com/wunderfolk/studio_booking/notifications"
	"github.com/wunderfolk/studio_booking/services"
	"github.com/wunderfolk/studio_booking/websocket"
)

type CreateBookingRequest struct {
	Datetime string   `json:"datetime" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	Phone    string   `json:"phone,omitempty"`
	LeadID   string   `json:"lead_id,omitempty" validate:"omitempty,uuid"`
	Budget   string   `json:"budget,omitempty"`
	Notes    string   `json:"notes,omitempty"`
	Members  []string `json:"members,omitempty"`
	Topic    string   `json:"topic,omitempty"`
}

// Reserver commits a meeting or explains why it cannot.
type Reserver interface {
	Reserve(req services.ReservationRequest) (*services.Meeting, error)
}

// ConfirmationMarker stamps a meeting after its confirmation email went out.
type ConfirmationMarker interface {
	MarkConfirmationSent(meetingID uuid.UUID, at time.Time) error
}

// BookingHandler is the request boundary for creating meetings: it validates
// the payload, derives the required member set, invokes the coordinator and,
// only after a commit, fires the best-effort collaborators.
type BookingHandler struct {
	coordinator   Reserver
	confirmations ConfirmationMarker
	schedule      *config.Schedule
}

func NewBookingHandler(coordinator Reserver, confirmations ConfirmationMarker, schedule *config.Schedule) *BookingHandler {
	return &BookingHandler{
		coordinator:   coordinator,
		confirmations: confirmations,
		schedule:      schedule,
	}
}

func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	startTime, err := time.Parse(time.RFC3339, req.Datetime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "datetime must be a valid RFC3339 timestamp"})
	}

	members := config.EffectiveMembers(req.Members, req.Topic)
	for _, member := range members {
		if !config.IsTeamMember(member) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown team member: " + member})
		}
	}

	var leadID *uuid.UUID
	if req.LeadID != "" {
		parsed, err := uuid.Parse(req.LeadID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "lead_id must be a valid UUID"})
		}
		leadID = &parsed
	}

	meeting, err := h.coordinator.Reserve(services.ReservationRequest{
		StartTime:     startTime,
		Members:       members,
		AttendeeEmail: req.Email,
		AttendeePhone: req.Phone,
		LeadID:        leadID,
		Budget:        req.Budget,
		Notes:         req.Notes,
	})
	if err != nil {
		var invalid services.InvalidRequestError
		if errors.As(err, &invalid) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": invalid.Reason})
		}
		var taken services.SlotTakenError
		if errors.As(err, &taken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "That time is no longer available, please pick another slot"})
		}
		log.Printf("🔥 Reservation failed for %s: %v", req.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong, please try again"})
	}

	localStart := meeting.StartTime.In(h.schedule.Location)
	formattedDate := localStart.Format("Monday, 2 January 2006")
	formattedTime := localStart.Format("15:04")

	go h.sendConfirmation(meeting, req.Email, formattedDate, formattedTime)
	websocket.PublishSlotTaken(websocket.SlotEvent{
		Datetime: meeting.StartTime,
		Members:  meeting.Members,
	})

	return c.JSON(fiber.Map{
		"success": true,
		"meeting": fiber.Map{
			"id":             meeting.ID,
			"datetime":       meeting.StartTime.Format(time.RFC3339),
			"formatted_date": formattedDate,
			"formatted_time": formattedTime,
			"members":        meeting.Members,
		},
	})
}

// sendConfirmation is fire-and-forget: a notification failure is logged and
// never affects the committed booking.
func (h *BookingHandler) sendConfirmation(meeting *services.Meeting, email, formattedDate, formattedTime string) {
	err := notifications.SendBookingConfirmation(email, formattedDate, formattedTime, h.schedule.TimezoneLabel)
	if err != nil {
		log.Printf("🔥 Failed to send booking confirmation to %s: %v", email, err)
		return
	}

	if h.confirmations != nil {
		if err := h.confirmations.MarkConfirmationSent(meeting.ID, time.Now()); err != nil {
			log.Printf("Failed to mark confirmation sent for meeting %s: %v", meeting.ID, err)
		}
	}
}
