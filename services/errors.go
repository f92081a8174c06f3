package services

import (
	"fmt"
	"time"
)

// InvalidRequestError rejects a reservation before any storage work happens.
// The caller must correct the request; nothing is retried.
type InvalidRequestError struct {
	Reason string
}

func (e InvalidRequestError) Error() string {
	return "invalid reservation request: " + e.Reason
}

// SlotTakenError reports that a required member already holds a confirmed
// booking at the requested time. It is returned both by the fast pre-check
// and, authoritatively, when the unique index rejects an insert.
type SlotTakenError struct {
	Member    string
	StartTime time.Time
}

func (e SlotTakenError) Error() string {
	return fmt.Sprintf("%s is already booked at %s", e.Member, e.StartTime.Format(time.RFC3339))
}
