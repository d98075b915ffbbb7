package session

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ValidateCreateInput validates fields required to create a session.
func ValidateCreateInput(req CreateRequest) error {
	if req.Rate <= 0 {
		return fmt.Errorf("%w: rate must be greater than 0", ErrInvalidInput)
	}
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: start time is required", ErrInvalidInput)
	}
	for _, code := range req.RepeatDays {
		if _, ok := weekdayCodes[code]; !ok {
			return fmt.Errorf("%w: unknown weekday code %q", ErrInvalidInput, code)
		}
	}
	return nil
}

// ValidatePatch validates only the fields a patch carries.
func ValidatePatch(patch Patch) error {
	if patch.Rate != nil && *patch.Rate <= 0 {
		return fmt.Errorf("%w: rate must be greater than 0", ErrInvalidInput)
	}
	if patch.StartTime != nil && patch.StartTime.IsZero() {
		return fmt.Errorf("%w: start time cannot be cleared", ErrInvalidInput)
	}
	return nil
}

// ValidateScheduleInput validates a schedule fan-out request.
func ValidateScheduleInput(req ScheduleRequest) error {
	if req.Rate <= 0 {
		return fmt.Errorf("%w: rate must be greater than 0", ErrInvalidInput)
	}
	if len(req.Dates) == 0 && len(req.RepeatDays) == 0 {
		return fmt.Errorf("%w: select at least one date", ErrInvalidInput)
	}
	start, err := parseClock(req.StartClock)
	if err != nil {
		return fmt.Errorf("%w: bad start time: %v", ErrInvalidInput, err)
	}
	end, err := parseClock(req.EndClock)
	if err != nil {
		return fmt.Errorf("%w: bad end time: %v", ErrInvalidInput, err)
	}
	if end <= start {
		return fmt.Errorf("%w: end time must be after start time", ErrInvalidInput)
	}
	for _, code := range req.RepeatDays {
		if _, ok := weekdayCodes[code]; !ok {
			return fmt.Errorf("%w: unknown weekday code %q", ErrInvalidInput, code)
		}
	}
	return nil
}

// parseClock parses "HH:MM" into minutes since midnight.
func parseClock(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("expected HH:MM, got %q", clock)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("bad hour in %q", clock)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("bad minute in %q", clock)
	}
	return hours*60 + minutes, nil
}

// atClock returns the given date with its clock set to minutes since midnight.
func atClock(date time.Time, minutes int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, date.Location())
}
