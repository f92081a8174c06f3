package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	config "github.com/wunderfolk/studio_booking/configs"
	"github.com/wunderfolk/studio_booking/services"
)

// AvailabilityLister is what the handler needs from the calculator.
type AvailabilityLister interface {
	OpenSlots(members []string, horizonStart, horizonEnd time.Time) ([]services.DayAvailability, error)
	Horizon() (time.Time, time.Time)
}

type AvailabilityHandler struct {
	calculator AvailabilityLister
}

func NewAvailabilityHandler(calculator AvailabilityLister) *AvailabilityHandler {
	return &AvailabilityHandler{calculator: calculator}
}

// GetAvailability returns the open slots over the booking horizon for the
// members named in ?members=a,b. With no members the configured default
// member's calendar is shown.
func (h *AvailabilityHandler) GetAvailability(c *fiber.Ctx) error {
	members, err := parseMembers(c.Query("members"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	from, to := h.calculator.Horizon()
	availability, err := h.calculator.OpenSlots(members, from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load availability"})
	}

	return c.JSON(fiber.Map{"availability": availability})
}

func parseMembers(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var members []string
	for _, part := range strings.Split(raw, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if !config.IsTeamMember(name) {
			return nil, errors.New("unknown team member: " + name)
		}
		members = append(members, name)
	}
	return members, nil
}
