package domain

import "time"

type CycleStatus string

const (
	StatusSubmitted    CycleStatus = "submitted"
	StatusNoArticle    CycleStatus = "no_article"
	StatusFetchFailed  CycleStatus = "fetch_failed"
	StatusSubmitFailed CycleStatus = "submit_failed"
)

// CycleResult describes one fetch, extract and submit pass.
type CycleResult struct {
	Status     CycleStatus   `json:"status" bson:"status"`
	Article    *Article      `json:"article,omitempty" bson:"article,omitempty"`
	Submission *Submission   `json:"submission,omitempty" bson:"submission,omitempty"`
	Output     string        `json:"output,omitempty" bson:"output,omitempty"`
	Error      string        `json:"error,omitempty" bson:"error,omitempty"`
	StartedAt  time.Time     `json:"started_at" bson:"started_at"`
	Duration   time.Duration `json:"duration" bson:"duration"`

	Err error `json:"-" bson:"-"`
}

// Submitted reports whether the external call succeeded.
func (r CycleResult) Submitted() bool {
	return r.Status == StatusSubmitted
}
