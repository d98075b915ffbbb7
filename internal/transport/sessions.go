package transport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pzaremba/worklog/internal/domain/session"
	"github.com/pzaremba/worklog/internal/metrics"
)

// createSessionRequest is the POST /api/sessions body. Timestamps arrive
// as RFC 3339 strings and are parsed here, at the boundary.
type createSessionRequest struct {
	JobName     string   `json:"jobName"`
	Rate        float64  `json:"rate"`
	StartTime   string   `json:"startTime"`
	EndTime     *string  `json:"endTime"`
	IsActive    bool     `json:"isActive"`
	IsScheduled bool     `json:"isScheduled"`
	RepeatDays  []string `json:"repeatDays"`
}

type patchSessionRequest struct {
	JobName     *string  `json:"jobName"`
	Rate        *float64 `json:"rate"`
	StartTime   *string  `json:"startTime"`
	EndTime     *string  `json:"endTime"`
	IsActive    *bool    `json:"isActive"`
	IsScheduled *bool    `json:"isScheduled"`
}

type startTimerRequest struct {
	JobName string  `json:"jobName"`
	Rate    float64 `json:"rate"`
}

type scheduleRequest struct {
	JobName    string   `json:"jobName"`
	Rate       float64  `json:"rate"`
	StartTime  string   `json:"startTime"` // "HH:MM"
	EndTime    string   `json:"endTime"`   // "HH:MM"
	Dates      []string `json:"dates"`     // "2006-01-02"
	RepeatDays []string `json:"repeatDays"`
	Weeks      int      `json:"weeks"`
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())

	sessions, err := s.sessions.List(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	// Newest first for display.
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartTime.After(sessions[j].StartTime)
	})
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	sess, err := s.sessions.Get(r.Context(), userID, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())

	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	create, err := req.toCreateRequest()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := s.sessions.Create(r.Context(), userID, create)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	metrics.SessionsCreated.Inc()
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req patchSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := s.sessions.Update(r.Context(), userID, id, patch)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := s.sessions.Delete(r.Context(), userID, id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStartTimer(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())

	var req startTimerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, err := s.sessions.StartTimer(r.Context(), userID, req.JobName, req.Rate)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	metrics.TimersStarted.Inc()
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleStopTimer(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())

	sess, err := s.sessions.StopTimer(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	metrics.TimersStopped.Inc()
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleCreateSchedule(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dates := make([]time.Time, 0, len(req.Dates))
	for _, raw := range req.Dates {
		d, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("bad date %q", raw))
			return
		}
		dates = append(dates, d)
	}

	created, err := s.sessions.CreateSchedule(r.Context(), userID, session.ScheduleRequest{
		JobName:    req.JobName,
		Rate:       req.Rate,
		StartClock: req.StartTime,
		EndClock:   req.EndTime,
		Dates:      dates,
		RepeatDays: req.RepeatDays,
		Weeks:      req.Weeks,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (req createSessionRequest) toCreateRequest() (session.CreateRequest, error) {
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return session.CreateRequest{}, fmt.Errorf("bad startTime: %v", err)
	}

	create := session.CreateRequest{
		JobName:     req.JobName,
		Rate:        req.Rate,
		StartTime:   start,
		IsActive:    req.IsActive,
		IsScheduled: req.IsScheduled,
		RepeatDays:  req.RepeatDays,
	}
	if req.EndTime != nil {
		end, err := time.Parse(time.RFC3339, *req.EndTime)
		if err != nil {
			return session.CreateRequest{}, fmt.Errorf("bad endTime: %v", err)
		}
		create.EndTime = &end
	}
	return create, nil
}

func (req patchSessionRequest) toPatch() (session.Patch, error) {
	patch := session.Patch{
		JobName:     req.JobName,
		Rate:        req.Rate,
		IsActive:    req.IsActive,
		IsScheduled: req.IsScheduled,
	}
	if req.StartTime != nil {
		start, err := time.Parse(time.RFC3339, *req.StartTime)
		if err != nil {
			return session.Patch{}, fmt.Errorf("bad startTime: %v", err)
		}
		patch.StartTime = &start
	}
	if req.EndTime != nil {
		end, err := time.Parse(time.RFC3339, *req.EndTime)
		if err != nil {
			return session.Patch{}, fmt.Errorf("bad endTime: %v", err)
		}
		patch.EndTime = &end
	}
	return patch, nil
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
