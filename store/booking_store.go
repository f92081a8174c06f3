package store

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/wunderfolk/studio_booking/models"
	"github.com/wunderfolk/studio_booking/services"
	"gorm.io/gorm"
)

// BookingStore is the persistence layer for bookings. Conflict detection
// happens here: the partial unique index on (team_member, start_time) is the
// single source of truth for who won a racing slot, and CreateMeeting
// translates its violation into services.SlotTakenError.
type BookingStore struct {
	db *gorm.DB
}

func NewBookingStore(db *gorm.DB) *BookingStore {
	return &BookingStore{db: db}
}

// FindActiveBooking returns the non-cancelled booking for that member and
// time, or gorm.ErrRecordNotFound.
func (s *BookingStore) FindActiveBooking(member string, at time.Time) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.
		Where("team_member = ? AND start_time = ? AND status <> ?", member, at, models.BookingStatusCancelled).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListBookingsInRange returns all active bookings for the given members with
// start_time in [from, to), chronologically.
func (s *BookingStore) ListBookingsInRange(members []string, from, to time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.
		Where("team_member IN ? AND start_time >= ? AND start_time < ? AND status <> ?",
			members, from, to, models.BookingStatusCancelled).
		Order("start_time asc").
		Find(&bookings).Error
	return bookings, err
}

// CreateMeeting inserts every row of a meeting in one transaction. If any
// insert loses the race against the unique index, the whole transaction rolls
// back and SlotTakenError names the member that was taken — no row of a
// failed meeting ever survives.
func (s *BookingStore) CreateMeeting(bookings []*models.Booking) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, booking := range bookings {
			if err := tx.Create(booking).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return services.SlotTakenError{
						Member:    booking.TeamMember,
						StartTime: booking.StartTime,
					}
				}
				return err
			}
		}
		return nil
	})
}

// ListBookings returns all bookings, newest meetings first, optionally
// restricted to a start_time window. Cancelled rows are included; the admin
// surface wants the full audit trail.
func (s *BookingStore) ListBookings(from, to *time.Time) ([]models.Booking, error) {
	query := s.db.Model(&models.Booking{}).Order("start_time desc, meeting_id")
	if from != nil {
		query = query.Where("start_time >= ?", *from)
	}
	if to != nil {
		query = query.Where("start_time < ?", *to)
	}

	var bookings []models.Booking
	err := query.Find(&bookings).Error
	return bookings, err
}

// CancelMeeting flips every confirmed row of a meeting to cancelled and
// returns how many rows it touched. Rows are never hard-deleted.
func (s *BookingStore) CancelMeeting(meetingID uuid.UUID) (int64, error) {
	res := s.db.Model(&models.Booking{}).
		Where("meeting_id = ? AND status = ?", meetingID, models.BookingStatusConfirmed).
		Update("status", models.BookingStatusCancelled)
	return res.RowsAffected, res.Error
}

// MarkConfirmationSent stamps the meeting's rows after the confirmation email
// went out. This is bookkeeping, not part of the reservation invariant.
func (s *BookingStore) MarkConfirmationSent(meetingID uuid.UUID, at time.Time) error {
	return s.db.Model(&models.Booking{}).
		Where("meeting_id = ?", meetingID).
		Update("confirmation_sent_at", at).Error
}
