package store

import (
	"github.com/google/uuid"
	"github.com/wunderfolk/studio_booking/models"
	"gorm.io/gorm"
)

type LeadStore struct {
	db *gorm.DB
}

func NewLeadStore(db *gorm.DB) *LeadStore {
	return &LeadStore{db: db}
}

// LinkMeeting attaches a committed meeting to the lead it originated from.
func (s *LeadStore) LinkMeeting(leadID, meetingID uuid.UUID) error {
	res := s.db.Model(&models.Lead{}).
		Where("id = ?", leadID).
		Update("meeting_id", meetingID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
