package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/wunderfolk/studio_booking/services"
)

type fakeAvailability struct {
	lastMembers []string
	days        []services.DayAvailability
	err         error
}

func (f *fakeAvailability) OpenSlots(members []string, from, to time.Time) ([]services.DayAvailability, error) {
	f.lastMembers = members
	if f.err != nil {
		return nil, f.err
	}
	return f.days, nil
}

func (f *fakeAvailability) Horizon() (time.Time, time.Time) {
	now := time.Now()
	return now, now.AddDate(0, 0, 20)
}

func newAvailabilityApp(calc AvailabilityLister) *fiber.App {
	app := fiber.New()
	handler := NewAvailabilityHandler(calc)
	app.Get("/api/v1/availability", handler.GetAvailability)
	return app
}

func getAvailability(t *testing.T, app *fiber.App, query string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability"+query, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestGetAvailability_ReturnsGroupedDays(t *testing.T) {
	fake := &fakeAvailability{days: []services.DayAvailability{
		{
			Date:    "2025-03-10",
			DayName: "Monday",
			Slots: []services.TimeSlot{
				{StartTime: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), Label: "09:00"},
			},
		},
	}}
	app := newAvailabilityApp(fake)

	resp := getAvailability(t, app, "?members=yannick,miguel")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Availability []struct {
			Date    string `json:"date"`
			DayName string `json:"day_name"`
			Slots   []struct {
				Datetime string `json:"datetime"`
				Time     string `json:"time"`
			} `json:"slots"`
		} `json:"availability"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Availability) != 1 {
		t.Fatalf("expected one day, got %d", len(body.Availability))
	}
	if body.Availability[0].Date != "2025-03-10" || body.Availability[0].DayName != "Monday" {
		t.Errorf("unexpected day: %+v", body.Availability[0])
	}
	if len(body.Availability[0].Slots) != 1 || body.Availability[0].Slots[0].Time != "09:00" {
		t.Errorf("unexpected slots: %+v", body.Availability[0].Slots)
	}

	want := []string{"yannick", "miguel"}
	if len(fake.lastMembers) != len(want) {
		t.Fatalf("expected members %v, got %v", want, fake.lastMembers)
	}
	for i := range want {
		if fake.lastMembers[i] != want[i] {
			t.Fatalf("expected members %v, got %v", want, fake.lastMembers)
		}
	}
}

func TestGetAvailability_NormalizesMemberNames(t *testing.T) {
	fake := &fakeAvailability{}
	app := newAvailabilityApp(fake)

	resp := getAvailability(t, app, "?members=%20Miguel%20,SEBASTIAN")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	want := []string{"miguel", "sebastian"}
	for i := range want {
		if fake.lastMembers[i] != want[i] {
			t.Fatalf("expected members %v, got %v", want, fake.lastMembers)
		}
	}
}

func TestGetAvailability_UnknownMember(t *testing.T) {
	fake := &fakeAvailability{}
	app := newAvailabilityApp(fake)

	resp := getAvailability(t, app, "?members=nobody")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGetAvailability_NoMembersParam(t *testing.T) {
	fake := &fakeAvailability{}
	app := newAvailabilityApp(fake)

	resp := getAvailability(t, app, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if len(fake.lastMembers) != 0 {
		t.Errorf("expected no members passed through, got %v", fake.lastMembers)
	}
}
