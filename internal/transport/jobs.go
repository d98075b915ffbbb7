package transport

import (
	"encoding/json"
	"net/http"
)

type createJobRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())

	jobs, err := s.jobs.List(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())

	var req createJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	j, err := s.jobs.Create(r.Context(), userID, req.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, j)
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := s.jobs.Delete(r.Context(), userID, id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
