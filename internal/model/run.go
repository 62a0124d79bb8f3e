package model

import "time"

// RunStatus represents the outcome of an allocation run.
type RunStatus string

const (
	RunStatusComplete  RunStatus = "complete"
	RunStatusCancelled RunStatus = "cancelled"
	RunStatusFailed    RunStatus = "failed"
)

// Run is a persisted allocation run.
type Run struct {
	ID          string       `json:"id"`
	Status      RunStatus    `json:"status"`
	Assignments []Assignment `json:"assignments"`
	Officers    []Officer    `json:"officers"`
	Unassigned  []Site       `json:"unassigned,omitempty"`
	InputErrors []InputError `json:"input_errors,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// RunSummary is the listing view of a Run.
type RunSummary struct {
	ID          string    `json:"id"`
	Status      RunStatus `json:"status"`
	Assignments int       `json:"assignments"`
	Officers    int       `json:"officers"`
	CreatedAt   time.Time `json:"created_at"`
}
