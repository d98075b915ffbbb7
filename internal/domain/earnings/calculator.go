// Package earnings derives durations and monetary amounts from session
// records. Everything here is a pure function over ledger data; the
// ledger never depends on this package.
package earnings

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pzaremba/worklog/internal/domain/session"
)

// Duration returns the elapsed time of a session at the given instant.
// A set end time wins; an active session runs until now; an inactive
// session without an end time counts as zero rather than growing forever.
func Duration(s session.Session, now time.Time) time.Duration {
	switch {
	case s.EndTime != nil:
		return s.EndTime.Sub(s.StartTime)
	case s.IsActive:
		return now.Sub(s.StartTime)
	default:
		return 0
	}
}

// Earnings returns duration in hours times the session rate, in the
// currency the rate was recorded in. The amount keeps full precision;
// round only at display.
func Earnings(s session.Session, now time.Time) decimal.Decimal {
	hours := decimal.New(Duration(s, now).Milliseconds(), 0).
		Div(decimal.New(int64(time.Hour/time.Millisecond), 0))
	return hours.Mul(decimal.NewFromFloat(s.Rate))
}

// Totals is the aggregate over a set of sessions.
type Totals struct {
	Duration time.Duration
	Earnings decimal.Decimal
}

// Aggregate sums duration and earnings over a collection. Sum first,
// round last: rounding per member would drift.
func Aggregate(sessions []session.Session, now time.Time) Totals {
	t := Totals{Earnings: decimal.Zero}
	for _, s := range sessions {
		t.Duration += Duration(s, now)
		t.Earnings = t.Earnings.Add(Earnings(s, now))
	}
	return t
}

// GroupBy buckets sessions by a key function. Grouping is stable within
// a bucket; bucket order is up to the caller.
func GroupBy(sessions []session.Session, keyFn func(session.Session) string) map[string][]session.Session {
	groups := make(map[string][]session.Session)
	for _, s := range sessions {
		key := keyFn(s)
		groups[key] = append(groups[key], s)
	}
	return groups
}

// ByDay keys a session by its start date.
func ByDay(s session.Session) string {
	return s.StartTime.Format("2006-01-02")
}

// ByMonth keys a session by its start month.
func ByMonth(s session.Session) string {
	return s.StartTime.Format("2006-01")
}

// ByJob keys a session by job name.
func ByJob(s session.Session) string {
	return s.JobName
}

// FormatDuration renders a duration as HH:MM:SS, truncating fractions.
func FormatDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, total/3600, (total%3600)/60, total%60)
}
