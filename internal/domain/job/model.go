package job

// Job is a reusable job name selectable when starting or logging a session.
// Uniqueness of names is a user convention, not enforced.
type Job struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"userId,omitempty"`
	Name   string `json:"name"`
}
