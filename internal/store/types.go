package store

import "time"

// RunRecord captures the result of one test run.
type RunRecord struct {
	ID        string    `json:"id"`
	Board     string    `json:"board"`
	Test      string    `json:"test"`
	Outcome   string    `json:"outcome"`
	Reason    string    `json:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Duration  string    `json:"duration"`
	LogFile   string    `json:"log_file,omitempty"`
}
