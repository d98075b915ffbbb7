package mcp

import (
	"context"
	"fmt"
	"sort"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pzaremba/worklog/internal/domain/earnings"
	"github.com/pzaremba/worklog/internal/domain/session"
)

type startTimerInput struct {
	JobName string  `json:"job_name,omitempty"`
	Rate    float64 `json:"rate"`
}

type emptyInput struct{}

type logSessionInput struct {
	JobName   string  `json:"job_name,omitempty"`
	Rate      float64 `json:"rate"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
}

type summaryInput struct {
	Currency string `json:"currency,omitempty"`
	Group    string `json:"group,omitempty"`
}

type sessionView struct {
	ID       int64   `json:"id"`
	JobName  string  `json:"job_name"`
	Rate     float64 `json:"rate"`
	Start    string  `json:"start_time"`
	End      string  `json:"end_time,omitempty"`
	Active   bool    `json:"is_active"`
	Duration string  `json:"duration"`
	Earnings string  `json:"earnings"`
}

type sessionListOutput struct {
	Sessions []sessionView `json:"sessions"`
}

type summaryGroupView struct {
	Key      string `json:"key"`
	Sessions int    `json:"sessions"`
	Duration string `json:"duration"`
	Earnings string `json:"earnings"`
}

type summaryOutput struct {
	Currency string             `json:"currency"`
	Duration string             `json:"duration"`
	Earnings string             `json:"earnings"`
	Groups   []summaryGroupView `json:"groups,omitempty"`
}

type jobView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type jobListOutput struct {
	Jobs []jobView `json:"jobs"`
}

func registerTools(server *sdkmcp.Server, cfg Config) {
	svc := cfg.Services

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "start_timer",
		Description: "Start tracking a work session now at the given hourly rate. Stops any session that is still running.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in startTimerInput) (*sdkmcp.CallToolResult, sessionView, error) {
		sess, err := svc.Sessions.StartTimer(ctx, getUserID(ctx), in.JobName, in.Rate)
		if err != nil {
			return nil, sessionView{}, err
		}
		return nil, toSessionView(*sess, time.Now()), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "stop_timer",
		Description: "Stop the running work session and return it with its final duration and earnings.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in emptyInput) (*sdkmcp.CallToolResult, sessionView, error) {
		sess, err := svc.Sessions.StopTimer(ctx, getUserID(ctx))
		if err != nil {
			return nil, sessionView{}, err
		}
		return nil, toSessionView(*sess, time.Now()), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "log_session",
		Description: "Record a finished work session with explicit RFC 3339 start and end times.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in logSessionInput) (*sdkmcp.CallToolResult, sessionView, error) {
		start, err := time.Parse(time.RFC3339, in.StartTime)
		if err != nil {
			return nil, sessionView{}, fmt.Errorf("start_time: %w", err)
		}
		end, err := time.Parse(time.RFC3339, in.EndTime)
		if err != nil {
			return nil, sessionView{}, fmt.Errorf("end_time: %w", err)
		}
		sess, err := svc.Sessions.Create(ctx, getUserID(ctx), session.CreateRequest{
			JobName:   in.JobName,
			Rate:      in.Rate,
			StartTime: start,
			EndTime:   &end,
		})
		if err != nil {
			return nil, sessionView{}, err
		}
		return nil, toSessionView(*sess, time.Now()), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_sessions",
		Description: "List all recorded work sessions with their durations and earnings.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in emptyInput) (*sdkmcp.CallToolResult, sessionListOutput, error) {
		sessions, err := svc.Sessions.List(ctx, getUserID(ctx))
		if err != nil {
			return nil, sessionListOutput{}, err
		}
		now := time.Now()
		out := sessionListOutput{Sessions: make([]sessionView, 0, len(sessions))}
		for _, sess := range sessions {
			out.Sessions = append(out.Sessions, toSessionView(sess, now))
		}
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_summary",
		Description: "Total duration and earnings across all sessions, optionally grouped by day, month or job, in the requested currency.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in summaryInput) (*sdkmcp.CallToolResult, summaryOutput, error) {
		sessions, err := svc.Sessions.List(ctx, getUserID(ctx))
		if err != nil {
			return nil, summaryOutput{}, err
		}

		code := in.Currency
		if code == "" {
			code = cfg.BaseCurrency
		}
		base, err := cfg.Rates.Lookup(cfg.BaseCurrency)
		if err != nil {
			return nil, summaryOutput{}, err
		}
		target, err := cfg.Rates.Lookup(code)
		if err != nil {
			return nil, summaryOutput{}, err
		}

		now := time.Now()
		totals := earnings.Aggregate(sessions, now)
		out := summaryOutput{
			Currency: target.Code,
			Duration: earnings.FormatDuration(totals.Duration),
			Earnings: earnings.Convert(totals.Earnings, base, target).StringFixed(2),
		}

		var keyFn func(session.Session) string
		switch in.Group {
		case "":
		case "day":
			keyFn = earnings.ByDay
		case "month":
			keyFn = earnings.ByMonth
		case "job":
			keyFn = earnings.ByJob
		default:
			return nil, summaryOutput{}, fmt.Errorf("unknown group %q", in.Group)
		}
		if keyFn != nil {
			grouped := earnings.GroupBy(sessions, keyFn)
			keys := make([]string, 0, len(grouped))
			for key := range grouped {
				keys = append(keys, key)
			}
			sort.Sort(sort.Reverse(sort.StringSlice(keys)))
			for _, key := range keys {
				groupTotals := earnings.Aggregate(grouped[key], now)
				out.Groups = append(out.Groups, summaryGroupView{
					Key:      key,
					Sessions: len(grouped[key]),
					Duration: earnings.FormatDuration(groupTotals.Duration),
					Earnings: earnings.Convert(groupTotals.Earnings, base, target).StringFixed(2),
				})
			}
		}
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_jobs",
		Description: "List the predefined jobs available when starting or logging a session.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in emptyInput) (*sdkmcp.CallToolResult, jobListOutput, error) {
		jobs, err := svc.Jobs.List(ctx, getUserID(ctx))
		if err != nil {
			return nil, jobListOutput{}, err
		}
		out := jobListOutput{Jobs: make([]jobView, 0, len(jobs))}
		for _, j := range jobs {
			out.Jobs = append(out.Jobs, jobView{ID: j.ID, Name: j.Name})
		}
		return nil, out, nil
	})
}

func toSessionView(sess session.Session, now time.Time) sessionView {
	view := sessionView{
		ID:       sess.ID,
		JobName:  sess.JobName,
		Rate:     sess.Rate,
		Start:    sess.StartTime.Format(time.RFC3339),
		Active:   sess.IsActive,
		Duration: earnings.FormatDuration(earnings.Duration(sess, now)),
		Earnings: earnings.Earnings(sess, now).StringFixed(2),
	}
	if sess.EndTime != nil {
		view.End = sess.EndTime.Format(time.RFC3339)
	}
	return view
}
