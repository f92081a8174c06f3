package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking reserves one hour for one team member. A meeting with several
// required members produces one row per member, all sharing the same
// MeetingID and StartTime. The partial unique index is the race-safe guard
// against double-booking; cancelled rows do not occupy the slot.
type Booking struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID  uuid.UUID `gorm:"type:uuid;not null;index" json:"meeting_id"`
	TeamMember string    `gorm:"size:50;not null;uniqueIndex:ux_bookings_member_start,where:status <> 'cancelled'" json:"team_member"`
	StartTime  time.Time `gorm:"not null;uniqueIndex:ux_bookings_member_start,where:status <> 'cancelled'" json:"start_time"`
	Status     string    `gorm:"size:20;not null;default:'confirmed'" json:"status"`

	AttendeeEmail string     `gorm:"size:255;not null" json:"attendee_email"`
	AttendeePhone *string    `gorm:"size:50" json:"attendee_phone,omitempty"`
	LeadID        *uuid.UUID `gorm:"type:uuid" json:"lead_id,omitempty"`
	Budget        *string    `gorm:"size:100" json:"budget,omitempty"`
	Notes         *string    `gorm:"type:text" json:"notes,omitempty"`

	ConfirmationSentAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
