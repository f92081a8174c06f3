package models

import (
	"time"

	"github.com/google/uuid"
)

// Lead is the contact-form record a booking may originate from. MeetingID is a
// soft link set after a successful reservation; a failed link never undoes the
// booking.
type Lead struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name      string     `gorm:"size:255" json:"name"`
	Email     string     `gorm:"size:255;not null" json:"email"`
	Message   *string    `gorm:"type:text" json:"message,omitempty"`
	MeetingID *uuid.UUID `gorm:"type:uuid" json:"meeting_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
