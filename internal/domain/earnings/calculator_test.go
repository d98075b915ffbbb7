package earnings_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pzaremba/worklog/internal/domain/earnings"
	"github.com/pzaremba/worklog/internal/domain/session"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestDuration(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	start := now.Add(-90 * time.Minute)

	finished := session.Session{StartTime: start, EndTime: timePtr(start.Add(time.Hour))}
	require.Equal(t, time.Hour, earnings.Duration(finished, now))

	active := session.Session{StartTime: start, IsActive: true}
	require.Equal(t, 90*time.Minute, earnings.Duration(active, now))

	// End time wins even while the session is still flagged active.
	activeWithEnd := session.Session{StartTime: start, EndTime: timePtr(start.Add(time.Hour)), IsActive: true}
	require.Equal(t, time.Hour, earnings.Duration(activeWithEnd, now))

	openEnded := session.Session{StartTime: start}
	require.Equal(t, time.Duration(0), earnings.Duration(openEnded, now))
}

func TestEarnings(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	start := now.Add(-2 * time.Hour)

	sess := session.Session{Rate: 60.5, StartTime: start, EndTime: timePtr(now)}
	require.Equal(t, "121.00", earnings.Earnings(sess, now).StringFixed(2))

	halfHour := session.Session{Rate: 100, StartTime: start, EndTime: timePtr(start.Add(30 * time.Minute))}
	require.Equal(t, "50.00", earnings.Earnings(halfHour, now).StringFixed(2))

	zero := session.Session{Rate: 100, StartTime: start}
	require.True(t, earnings.Earnings(zero, now).IsZero())
}

func TestActiveDurationGrowsWithClock(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	active := session.Session{StartTime: start, IsActive: true}

	earlier := earnings.Duration(active, start.Add(time.Hour))
	later := earnings.Duration(active, start.Add(2*time.Hour))
	require.Greater(t, later, earlier)
}

func TestStoppedSessionEarningsAreFixed(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	stopped := session.Session{Rate: 100, StartTime: start, EndTime: timePtr(start.Add(time.Hour))}

	atStop := earnings.Earnings(stopped, start.Add(time.Hour))
	muchLater := earnings.Earnings(stopped, start.Add(24*time.Hour))
	require.True(t, atStop.Equal(muchLater))
	require.Equal(t, "100.00", muchLater.StringFixed(2))
}

func TestAggregateSumsBeforeRounding(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	// 20 minutes at 10/h is 3.333..., which rounds to 3.33. Summing the
	// rounded value three times gives 9.99; summing first gives 10.00.
	var sessions []session.Session
	for i := 0; i < 3; i++ {
		sessions = append(sessions, session.Session{
			Rate:      10,
			StartTime: start,
			EndTime:   timePtr(start.Add(20 * time.Minute)),
		})
	}

	totals := earnings.Aggregate(sessions, now)
	require.Equal(t, time.Hour, totals.Duration)
	require.Equal(t, "10.00", totals.Earnings.StringFixed(2))
}

func TestGroupBy(t *testing.T) {
	day1 := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
	sessions := []session.Session{
		{ID: 1, JobName: "consulting", StartTime: day1},
		{ID: 2, JobName: "tutoring", StartTime: day1.Add(4 * time.Hour)},
		{ID: 3, JobName: "consulting", StartTime: day2},
	}

	byDay := earnings.GroupBy(sessions, earnings.ByDay)
	require.Len(t, byDay, 2)
	require.Len(t, byDay["2026-03-02"], 2)
	require.Len(t, byDay["2026-03-03"], 1)

	byMonth := earnings.GroupBy(sessions, earnings.ByMonth)
	require.Len(t, byMonth, 1)
	require.Len(t, byMonth["2026-03"], 3)

	byJob := earnings.GroupBy(sessions, earnings.ByJob)
	require.Len(t, byJob["consulting"], 2)
	require.Len(t, byJob["tutoring"], 1)
}

func TestFormatDuration(t *testing.T) {
	require.Equal(t, "00:00:00", earnings.FormatDuration(0))
	require.Equal(t, "01:30:05", earnings.FormatDuration(time.Hour+30*time.Minute+5*time.Second))
	require.Equal(t, "27:00:00", earnings.FormatDuration(27*time.Hour))
	require.Equal(t, "-00:00:30", earnings.FormatDuration(-30*time.Second))
	// Fractional seconds truncate rather than round.
	require.Equal(t, "00:00:01", earnings.FormatDuration(1900*time.Millisecond))
}
