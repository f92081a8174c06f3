package services

import (
	"time"

	config "github.com/wunderfolk/studio_booking/configs"
	"github.com/wunderfolk/studio_booking/models"
)

// BookingLister is the read side of the booking store the calculator needs.
type BookingLister interface {
	ListBookingsInRange(members []string, from, to time.Time) ([]models.Booking, error)
}

// TimeSlot is one bookable hour, rendered for the calendar widget.
type TimeSlot struct {
	StartTime time.Time `json:"datetime"`
	Label     string    `json:"time"`
}

// DayAvailability groups a day's open slots for presentation.
type DayAvailability struct {
	Date    string     `json:"date"`
	DayName string     `json:"day_name"`
	Slots   []TimeSlot `json:"slots"`
}

// AvailabilityCalculator computes which cadence points are open for a set of
// required members. A point is open iff no required member has an active
// booking at exactly that time; since a meeting reserves the same time across
// all its members, occupancy of any one member blocks the point.
type AvailabilityCalculator struct {
	store    BookingLister
	schedule *config.Schedule
	now      func() time.Time
}

func NewAvailabilityCalculator(store BookingLister, schedule *config.Schedule) *AvailabilityCalculator {
	return &AvailabilityCalculator{
		store:    store,
		schedule: schedule,
		now:      time.Now,
	}
}

// Horizon returns the window availability is offered over: from now to the
// end of the configured number of business days.
func (calc *AvailabilityCalculator) Horizon() (time.Time, time.Time) {
	start := calc.now().In(calc.schedule.Location)
	end := start
	days := 0
	for days < calc.schedule.HorizonBusinessDays {
		end = end.AddDate(0, 0, 1)
		if calc.schedule.IsBusinessDay(end) {
			days++
		}
	}
	// Include the whole final day.
	end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, calc.schedule.Location)
	return start, end
}

// OpenSlots returns every open cadence point in [horizonStart, horizonEnd]
// for the given members, grouped by day in chronological order. An empty
// member set falls back to the configured default member.
func (calc *AvailabilityCalculator) OpenSlots(members []string, horizonStart, horizonEnd time.Time) ([]DayAvailability, error) {
	if len(members) == 0 {
		members = []string{calc.schedule.DefaultMember}
	}

	booked, err := calc.bookedTimes(members, horizonStart, horizonEnd)
	if err != nil {
		return nil, err
	}

	now := calc.now().In(calc.schedule.Location)
	start := horizonStart.In(calc.schedule.Location)
	end := horizonEnd.In(calc.schedule.Location)

	availability := []DayAvailability{}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if !calc.schedule.IsBusinessDay(day) {
			continue
		}
		if !calc.schedule.AllowSameDay && sameDay(day, now) {
			continue
		}

		slots := []TimeSlot{}
		for _, hour := range calc.schedule.SlotHours {
			at := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, calc.schedule.Location)
			if at.Before(horizonStart) || at.After(horizonEnd) {
				continue
			}
			if !at.After(now) {
				continue
			}
			if booked[at.Unix()] {
				continue
			}
			slots = append(slots, TimeSlot{StartTime: at, Label: at.Format("15:04")})
		}

		if len(slots) > 0 {
			availability = append(availability, DayAvailability{
				Date:    day.Format("2006-01-02"),
				DayName: day.Format("Monday"),
				Slots:   slots,
			})
		}
	}

	return availability, nil
}

// bookedTimes collapses the members' active bookings into the set of occupied
// cadence points, keyed by unix time.
func (calc *AvailabilityCalculator) bookedTimes(members []string, from, to time.Time) (map[int64]bool, error) {
	bookings, err := calc.store.ListBookingsInRange(members, from, to.Add(time.Second))
	if err != nil {
		return nil, err
	}

	booked := make(map[int64]bool, len(bookings))
	for _, b := range bookings {
		booked[b.StartTime.Unix()] = true
	}
	return booked, nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
