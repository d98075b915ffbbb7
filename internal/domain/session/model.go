package session

import "time"

// Weekday codes accepted in RepeatDays, matching time.Weekday order.
var weekdayCodes = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// Session represents a single work interval: a running timer, a completed
// historical entry, or a pre-created scheduled shift.
type Session struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"userId,omitempty"`
	JobName     string     `json:"jobName"`
	Rate        float64    `json:"rate"`
	StartTime   time.Time  `json:"startTime"`
	EndTime     *time.Time `json:"endTime,omitempty"`
	IsActive    bool       `json:"isActive"`
	IsScheduled bool       `json:"isScheduled"`
	RepeatDays  []string   `json:"repeatDays,omitempty"`
}

// CreateRequest describes a new session. StartTime is required and Rate
// must be positive; everything else defaults to the zero value.
type CreateRequest struct {
	JobName     string
	Rate        float64
	StartTime   time.Time
	EndTime     *time.Time
	IsActive    bool
	IsScheduled bool
	RepeatDays  []string
}

// Patch lists the fields an update may change. Nil means "leave as is".
// Cross-field ordering (end after start) is a form-level concern and is
// deliberately not re-checked here.
type Patch struct {
	JobName     *string
	Rate        *float64
	StartTime   *time.Time
	EndTime     *time.Time
	IsActive    *bool
	IsScheduled *bool
}

// ScheduleRequest fans out one scheduled session per selected date, plus
// one per weekday code matched within the following Weeks weeks.
type ScheduleRequest struct {
	JobName    string
	Rate       float64
	StartClock string // "HH:MM"
	EndClock   string // "HH:MM"
	Dates      []time.Time
	RepeatDays []string
	Weeks      int
}
