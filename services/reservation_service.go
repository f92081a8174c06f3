package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	config "github.com/wunderfolk/studio_booking/configs"
	"github.com/wunderfolk/studio_booking/models"
	"gorm.io/gorm"
)

// SlotStore is the storage contract the coordinator commits through. The
// implementation must make CreateMeeting all-or-nothing and must report a
// lost race as SlotTakenError.
type SlotStore interface {
	FindActiveBooking(member string, at time.Time) (*models.Booking, error)
	CreateMeeting(bookings []*models.Booking) error
}

// LeadLinker attaches a committed meeting to the lead it came from. Linking
// is best-effort; its failure never undoes a booking.
type LeadLinker interface {
	LinkMeeting(leadID, meetingID uuid.UUID) error
}

// ReservationRequest is a validated-shape request to commit one meeting
// across every listed member at StartTime.
type ReservationRequest struct {
	StartTime     time.Time
	Members       []string
	AttendeeEmail string
	AttendeePhone string
	LeadID        *uuid.UUID
	Budget        string
	Notes         string
}

// Meeting is the committed result: one booking row per member, identified by
// the first row's id.
type Meeting struct {
	ID        uuid.UUID
	StartTime time.Time
	Members   []string
}

// ReservationCoordinator commits a meeting or fails without side effects.
// The per-member pre-check only exists to reject the common non-racing case
// quickly; the unique index behind SlotStore.CreateMeeting is what actually
// decides concurrent attempts.
type ReservationCoordinator struct {
	store    SlotStore
	leads    LeadLinker
	schedule *config.Schedule
	now      func() time.Time
}

func NewReservationCoordinator(store SlotStore, leads LeadLinker, schedule *config.Schedule) *ReservationCoordinator {
	return &ReservationCoordinator{
		store:    store,
		leads:    leads,
		schedule: schedule,
		now:      time.Now,
	}
}

// Reserve runs the full booking attempt: validate, pre-check, commit, link.
// It returns InvalidRequestError, SlotTakenError, or a wrapped storage error;
// none of them are retried here.
func (rc *ReservationCoordinator) Reserve(req ReservationRequest) (*Meeting, error) {
	members, err := rc.validate(&req)
	if err != nil {
		return nil, err
	}

	// Fast pre-check. Racy by nature, so a miss here is fine — the unique
	// index catches whatever slips through.
	for _, member := range members {
		_, err := rc.store.FindActiveBooking(member, req.StartTime)
		if err == nil {
			return nil, SlotTakenError{Member: member, StartTime: req.StartTime}
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("checking availability for %s: %w", member, err)
		}
	}

	bookings := rc.buildBookings(&req, members)
	if err := rc.store.CreateMeeting(bookings); err != nil {
		var taken SlotTakenError
		if errors.As(err, &taken) {
			return nil, taken
		}
		return nil, fmt.Errorf("committing meeting: %w", err)
	}

	meeting := &Meeting{
		ID:        bookings[0].ID,
		StartTime: req.StartTime,
		Members:   members,
	}

	if req.LeadID != nil && rc.leads != nil {
		if err := rc.leads.LinkMeeting(*req.LeadID, meeting.ID); err != nil {
			log.Printf("Failed to link lead %s to meeting %s: %v", req.LeadID, meeting.ID, err)
		}
	}

	return meeting, nil
}

func (rc *ReservationCoordinator) validate(req *ReservationRequest) ([]string, error) {
	if req.StartTime.IsZero() {
		return nil, InvalidRequestError{Reason: "datetime is required"}
	}
	if !req.StartTime.After(rc.now()) {
		return nil, InvalidRequestError{Reason: "datetime must be in the future"}
	}
	if !rc.schedule.IsValidSlot(req.StartTime) {
		return nil, InvalidRequestError{Reason: "datetime is not a bookable slot"}
	}
	if !strings.Contains(req.AttendeeEmail, "@") {
		return nil, InvalidRequestError{Reason: "a valid email is required"}
	}

	members := req.Members
	if len(members) == 0 {
		members = []string{rc.schedule.DefaultMember}
	}

	seen := make(map[string]bool, len(members))
	deduped := make([]string, 0, len(members))
	for _, member := range members {
		if !config.IsTeamMember(member) {
			return nil, InvalidRequestError{Reason: "unknown team member: " + member}
		}
		if seen[member] {
			continue
		}
		seen[member] = true
		deduped = append(deduped, member)
	}

	return deduped, nil
}

func (rc *ReservationCoordinator) buildBookings(req *ReservationRequest, members []string) []*models.Booking {
	meetingID := uuid.New()

	bookings := make([]*models.Booking, 0, len(members))
	for i, member := range members {
		booking := &models.Booking{
			ID:            uuid.New(),
			MeetingID:     meetingID,
			TeamMember:    member,
			StartTime:     req.StartTime,
			Status:        models.BookingStatusConfirmed,
			AttendeeEmail: req.AttendeeEmail,
		}
		if i == 0 {
			// The meeting is identified by its first row.
			booking.ID = meetingID
		}
		if req.AttendeePhone != "" {
			booking.AttendeePhone = &req.AttendeePhone
		}
		if req.Budget != "" {
			booking.Budget = &req.Budget
		}
		if req.Notes != "" {
			booking.Notes = &req.Notes
		}
		booking.LeadID = req.LeadID
		bookings = append(bookings, booking)
	}
	return bookings
}
