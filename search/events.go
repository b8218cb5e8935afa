package search

import "github.com/jobha/backend/models"

// Stream event statuses. Every stream begins with started, ends with exactly
// one of completed, timeout, or error, and may carry any number of searching,
// sufficient, and job events in between.
const (
	StatusStarted    = "started"
	StatusSearching  = "searching"
	StatusSufficient = "sufficient"
	StatusCompleted  = "completed"
	StatusTimeout    = "timeout"
	StatusError      = "error"
)

// StatusEvent is a non-job stream message keyed by its status discriminant.
type StatusEvent struct {
	Status   string   `json:"status"`
	Message  string   `json:"message,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// TerminalEvent closes a stream. Total is always serialized, including zero,
// so clients can distinguish "no matches" from a missing field.
type TerminalEvent struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Total   int    `json:"total"`
	Error   string `json:"error,omitempty"`
}

// JobEvent delivers one deduplicated, scored posting.
type JobEvent struct {
	Job          *models.JobPosting `json:"job"`
	JobsCount    int                `json:"jobs_count"`
	Source       string             `json:"source"`
	MatchScore   int                `json:"match_score"`
	MatchQuality string             `json:"match_quality"`
}
