package config

import (
	"fmt"
	"time"
)

// Schedule describes the booking cadence: which hours on which days are
// offered, in which timezone, and how far ahead clients may book. Every
// offered slot is exactly one hour starting on the hour.
type Schedule struct {
	Location            *time.Location
	TimezoneLabel       string
	SlotHours           []int
	HorizonBusinessDays int
	AllowSameDay        bool
	DefaultMember       string
}

// LoadSchedule builds the schedule from the environment with studio defaults.
// Only the timezone is read from env; the cadence itself is a product
// constant, not an ops knob.
func LoadSchedule() (*Schedule, error) {
	tzName := Config("BOOKING_TIMEZONE")
	if tzName == "" {
		tzName = "Europe/Berlin"
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_TIMEZONE %q: %w", tzName, err)
	}

	label := Config("BOOKING_TIMEZONE_LABEL")
	if label == "" {
		label = "CET"
	}

	defaultMember := Config("BOOKING_DEFAULT_MEMBER")
	if defaultMember == "" {
		defaultMember = PrimaryMember
	}

	return &Schedule{
		Location:            loc,
		TimezoneLabel:       label,
		SlotHours:           []int{9, 10, 11, 12, 14, 15, 16, 17},
		HorizonBusinessDays: 14,
		AllowSameDay:        false,
		DefaultMember:       defaultMember,
	}, nil
}

// IsBusinessDay reports whether the studio takes meetings on that weekday.
func (s *Schedule) IsBusinessDay(t time.Time) bool {
	wd := t.In(s.Location).Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// IsValidSlot reports whether t lands exactly on an offered cadence point.
func (s *Schedule) IsValidSlot(t time.Time) bool {
	local := t.In(s.Location)
	if !s.IsBusinessDay(local) {
		return false
	}
	if local.Minute() != 0 || local.Second() != 0 || local.Nanosecond() != 0 {
		return false
	}
	for _, h := range s.SlotHours {
		if local.Hour() == h {
			return true
		}
	}
	return false
}
