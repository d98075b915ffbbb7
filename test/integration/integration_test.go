package integration_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pzaremba/worklog/internal/testserver"
)

func call(t *testing.T, client *http.Client, method, url string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, payload
}

// TestWeekOfWork walks a full user journey against the SQLite-backed
// stack: register, predefine a job, track and log sessions, then check
// the earnings summary.
func TestWeekOfWork(t *testing.T) {
	ts := testserver.New(t)
	client := ts.Client(t)
	base := ts.Server.URL

	resp, _ := call(t, client, http.MethodPost, base+"/api/register", map[string]any{
		"email":    "anna@example.com",
		"password": "secret-password",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = call(t, client, http.MethodPost, base+"/api/predefined-jobs", map[string]any{
		"name": "consulting",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Two logged working days.
	for _, day := range []string{"2026-03-02", "2026-03-03"} {
		resp, _ = call(t, client, http.MethodPost, base+"/api/sessions", map[string]any{
			"jobName":   "consulting",
			"rate":      60,
			"startTime": day + "T09:00:00Z",
			"endTime":   day + "T13:00:00Z",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	// Plus a live timer, started and stopped immediately.
	resp, _ = call(t, client, http.MethodPost, base+"/api/sessions/start", map[string]any{
		"jobName": "consulting",
		"rate":    60,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, payload := call(t, client, http.MethodPost, base+"/api/sessions/stop", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stopped struct {
		ID       int64 `json:"id"`
		IsActive bool  `json:"isActive"`
	}
	require.NoError(t, json.Unmarshal(payload, &stopped))
	require.False(t, stopped.IsActive)

	resp, payload = call(t, client, http.MethodGet, base+"/api/sessions", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sessions []json.RawMessage
	require.NoError(t, json.Unmarshal(payload, &sessions))
	require.Len(t, sessions, 3)

	resp, payload = call(t, client, http.MethodGet, base+"/api/summary?group=day", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summary struct {
		Currency      string `json:"currency"`
		TotalEarnings string `json:"totalEarnings"`
		Groups        []struct {
			Key      string `json:"key"`
			Earnings string `json:"earnings"`
		} `json:"groups"`
	}
	require.NoError(t, json.Unmarshal(payload, &summary))
	require.Equal(t, "USD", summary.Currency)
	// Two 4-hour days at 60/h plus a near-zero timer session.
	require.Len(t, summary.Groups, 3)

	// The logged days are exact.
	byKey := map[string]string{}
	for _, g := range summary.Groups {
		byKey[g.Key] = g.Earnings
	}
	require.Equal(t, "240.00", byKey["2026-03-02"])
	require.Equal(t, "240.00", byKey["2026-03-03"])

	resp, payload = call(t, client, http.MethodGet, base+"/api/summary?currency=PLN", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(payload, &summary))
	require.Equal(t, "PLN", summary.Currency)
}

func TestScheduleThenEdit(t *testing.T) {
	ts := testserver.New(t)
	client := ts.Client(t)
	base := ts.Server.URL

	resp, _ := call(t, client, http.MethodPost, base+"/api/register", map[string]any{
		"email":    "anna@example.com",
		"password": "secret-password",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, payload := call(t, client, http.MethodPost, base+"/api/schedule", map[string]any{
		"jobName":   "tutoring",
		"rate":      45,
		"startTime": "09:30",
		"endTime":   "11:00",
		"dates":     []string{"2026-03-02", "2026-03-04", "2026-03-06"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created []struct {
		ID          int64 `json:"id"`
		IsScheduled bool  `json:"isScheduled"`
	}
	require.NoError(t, json.Unmarshal(payload, &created))
	require.Len(t, created, 3)
	require.True(t, created[0].IsScheduled)

	// Bump the rate on one entry and drop another.
	resp, _ = call(t, client, http.MethodPatch, fmt.Sprintf("%s/api/sessions/%d", base, created[0].ID), map[string]any{
		"rate": 50,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = call(t, client, http.MethodDelete, fmt.Sprintf("%s/api/sessions/%d", base, created[1].ID), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, payload = call(t, client, http.MethodGet, base+"/api/sessions", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sessions []json.RawMessage
	require.NoError(t, json.Unmarshal(payload, &sessions))
	require.Len(t, sessions, 2)
}
