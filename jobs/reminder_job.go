package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/wunderfolk/studio_booking/database"
	"github.com/wunderfolk/studio_booking/models"
	"github.com/wunderfolk/studio_booking/notifications"
)

// SendMeetingReminders emails attendees of confirmed meetings starting in
// roughly 24 hours. One reminder per meeting, not per booking row.
func SendMeetingReminders() {
	log.Println("Running job: SendMeetingReminders...")

	now := time.Now()
	lowerBound := now.Add(24 * time.Hour)
	upperBound := now.Add(24*time.Hour + 5*time.Minute)

	var upcomingBookings []models.Booking
	err := database.DB.
		Where("status = ? AND start_time BETWEEN ? AND ?", models.BookingStatusConfirmed, lowerBound, upperBound).
		Order("start_time asc").
		Find(&upcomingBookings).Error
	if err != nil {
		log.Printf("Error checking for upcoming meetings: %v", err)
		return
	}

	if len(upcomingBookings) == 0 {
		return
	}

	reminded := make(map[uuid.UUID]bool)
	for _, booking := range upcomingBookings {
		if reminded[booking.MeetingID] {
			continue
		}
		reminded[booking.MeetingID] = true

		log.Printf("Sending reminder for meeting ID: %s", booking.MeetingID)

		emailSubject := "Reminder: Your Meeting is Tomorrow!"
		emailBody := fmt.Sprintf(
			"<h1>Meeting Reminder</h1><p>Hi there,</p><p>This is a friendly reminder that your meeting with us is scheduled for %s.</p>",
			booking.StartTime.Format("Monday, 2 January 2006 at 15:04"),
		)

		go notifications.SendEmail("", booking.AttendeeEmail, emailSubject, emailBody)
	}
}
