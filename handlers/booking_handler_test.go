package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	config "github.com/wunderfolk/studio_booking/configs"
	"github.com/wunderfolk/studio_booking/services"
)

func testSchedule(t *testing.T) *config.Schedule {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return &config.Schedule{
		Location:            loc,
		TimezoneLabel:       "CET",
		SlotHours:           []int{9, 10, 11, 12, 14, 15, 16, 17},
		HorizonBusinessDays: 14,
		AllowSameDay:        false,
		DefaultMember:       "miguel",
	}
}

type fakeReserver struct {
	calls   int
	lastReq services.ReservationRequest
	meeting *services.Meeting
	err     error
}

func (f *fakeReserver) Reserve(req services.ReservationRequest) (*services.Meeting, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.meeting, nil
}

type fakeConfirmations struct{}

func (fakeConfirmations) MarkConfirmationSent(uuid.UUID, time.Time) error { return nil }

func newBookingApp(t *testing.T, reserver *fakeReserver) *fiber.App {
	t.Helper()
	app := fiber.New()
	handler := NewBookingHandler(reserver, fakeConfirmations{}, testSchedule(t))
	app.Post("/api/v1/bookings", handler.CreateBooking)
	return app
}

func postBooking(t *testing.T, app *fiber.App, body map[string]interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestCreateBooking_Success(t *testing.T) {
	meetingID := uuid.New()
	start, _ := time.Parse(time.RFC3339, "2025-03-10T14:00:00Z")
	reserver := &fakeReserver{meeting: &services.Meeting{
		ID:        meetingID,
		StartTime: start,
		Members:   []string{"miguel"},
	}}
	app := newBookingApp(t, reserver)

	resp := postBooking(t, app, map[string]interface{}{
		"datetime": "2025-03-10T14:00:00Z",
		"email":    "client@example.com",
		"members":  []string{"miguel"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Success bool `json:"success"`
		Meeting struct {
			ID            string   `json:"id"`
			Datetime      string   `json:"datetime"`
			FormattedDate string   `json:"formatted_date"`
			FormattedTime string   `json:"formatted_time"`
			Members       []string `json:"members"`
		} `json:"meeting"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Success {
		t.Error("expected success=true")
	}
	if body.Meeting.ID != meetingID.String() {
		t.Errorf("expected meeting id %s, got %s", meetingID, body.Meeting.ID)
	}
	// 14:00 UTC is 15:00 in Berlin during CET.
	if body.Meeting.FormattedTime != "15:00" {
		t.Errorf("expected formatted time 15:00, got %s", body.Meeting.FormattedTime)
	}
	if body.Meeting.FormattedDate != "Monday, 10 March 2025" {
		t.Errorf("unexpected formatted date: %s", body.Meeting.FormattedDate)
	}
}

func TestCreateBooking_DerivesMembersFromTopic(t *testing.T) {
	reserver := &fakeReserver{meeting: &services.Meeting{
		ID:        uuid.New(),
		StartTime: time.Now().Add(48 * time.Hour),
		Members:   []string{"miguel", "sebastian", "yannick"},
	}}
	app := newBookingApp(t, reserver)

	resp := postBooking(t, app, map[string]interface{}{
		"datetime": "2025-03-10T14:00:00Z",
		"email":    "client@example.com",
		"topic":    "design",
		"members":  []string{"yannick"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	want := []string{"miguel", "sebastian", "yannick"}
	got := reserver.lastReq.Members
	if len(got) != len(want) {
		t.Fatalf("expected members %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected members %v, got %v", want, got)
		}
	}
}

func TestCreateBooking_MalformedDatetime(t *testing.T) {
	reserver := &fakeReserver{}
	app := newBookingApp(t, reserver)

	resp := postBooking(t, app, map[string]interface{}{
		"datetime": "not-a-date",
		"email":    "client@example.com",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if reserver.calls != 0 {
		t.Error("a malformed datetime must never reach the coordinator")
	}
}

func TestCreateBooking_MissingEmail(t *testing.T) {
	reserver := &fakeReserver{}
	app := newBookingApp(t, reserver)

	resp := postBooking(t, app, map[string]interface{}{
		"datetime": "2025-03-10T14:00:00Z",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if reserver.calls != 0 {
		t.Error("a request without email must never reach the coordinator")
	}
}

func TestCreateBooking_UnknownMember(t *testing.T) {
	reserver := &fakeReserver{}
	app := newBookingApp(t, reserver)

	resp := postBooking(t, app, map[string]interface{}{
		"datetime": "2025-03-10T14:00:00Z",
		"email":    "client@example.com",
		"members":  []string{"nobody"},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if reserver.calls != 0 {
		t.Error("an unknown member must never reach the coordinator")
	}
}

func TestCreateBooking_BadLeadID(t *testing.T) {
	reserver := &fakeReserver{}
	app := newBookingApp(t, reserver)

	resp := postBooking(t, app, map[string]interface{}{
		"datetime": "2025-03-10T14:00:00Z",
		"email":    "client@example.com",
		"lead_id":  "not-a-uuid",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCreateBooking_SlotTakenMapsTo409(t *testing.T) {
	reserver := &fakeReserver{err: services.SlotTakenError{Member: "miguel"}}
	app := newBookingApp(t, reserver)

	resp := postBooking(t, app, map[string]interface{}{
		"datetime": "2025-03-10T14:00:00Z",
		"email":    "client@example.com",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestCreateBooking_InvalidRequestMapsTo400(t *testing.T) {
	reserver := &fakeReserver{err: services.InvalidRequestError{Reason: "datetime must be in the future"}}
	app := newBookingApp(t, reserver)

	resp := postBooking(t, app, map[string]interface{}{
		"datetime": "2020-01-06T14:00:00Z",
		"email":    "client@example.com",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCreateBooking_StorageFailureMapsTo500(t *testing.T) {
	reserver := &fakeReserver{err: fmt.Errorf("committing meeting: connection reset")}
	app := newBookingApp(t, reserver)

	resp := postBooking(t, app, map[string]interface{}{
		"datetime": "2025-03-10T14:00:00Z",
		"email":    "client@example.com",
	})
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
}
