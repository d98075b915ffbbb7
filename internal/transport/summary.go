package transport

import (
	"net/http"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pzaremba/worklog/internal/domain/earnings"
	"github.com/pzaremba/worklog/internal/domain/session"
)

type summaryGroup struct {
	Key      string `json:"key"`
	Duration string `json:"duration"`
	Earnings string `json:"earnings"`
	Count    int    `json:"count"`
}

type summaryResponse struct {
	Currency      string         `json:"currency"`
	TotalDuration string         `json:"totalDuration"`
	TotalEarnings string         `json:"totalEarnings"`
	Groups        []summaryGroup `json:"groups,omitempty"`
}

// handleSummary aggregates duration and earnings over the user's sessions,
// optionally grouped by day, month, or job, converted to a display currency.
// Amounts are summed at full precision and rounded once, here.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())

	code := r.URL.Query().Get("currency")
	if code == "" {
		code = s.baseCurrency
	}
	target, err := s.rates.Lookup(code)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	base, err := s.rates.Lookup(s.baseCurrency)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var keyFn func(session.Session) string
	switch group := r.URL.Query().Get("group"); group {
	case "":
	case "day":
		keyFn = earnings.ByDay
	case "month":
		keyFn = earnings.ByMonth
	case "job":
		keyFn = earnings.ByJob
	default:
		writeError(w, http.StatusBadRequest, "group must be day, month, or job")
		return
	}

	sessions, err := s.sessions.List(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	now := time.Now()
	totals := earnings.Aggregate(sessions, now)

	resp := summaryResponse{
		Currency:      target.Code,
		TotalDuration: earnings.FormatDuration(totals.Duration),
		TotalEarnings: display(totals.Earnings, base, target),
	}

	if keyFn != nil {
		grouped := earnings.GroupBy(sessions, keyFn)
		keys := make([]string, 0, len(grouped))
		for key := range grouped {
			keys = append(keys, key)
		}
		sort.Sort(sort.Reverse(sort.StringSlice(keys)))

		for _, key := range keys {
			bucket := grouped[key]
			t := earnings.Aggregate(bucket, now)
			resp.Groups = append(resp.Groups, summaryGroup{
				Key:      key,
				Duration: earnings.FormatDuration(t.Duration),
				Earnings: display(t.Earnings, base, target),
				Count:    len(bucket),
			})
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func display(amount decimal.Decimal, from, to earnings.Currency) string {
	return earnings.Convert(amount, from, to).StringFixed(2)
}
