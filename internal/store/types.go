package store

import (
	"math"
	"time"

	"github.com/cwbudde/linefit/internal/fit"
	"github.com/google/uuid"
)

// RunRecord is the persisted summary of one generate-and-fit run.
type RunRecord struct {
	// RunID is the unique identifier for this run
	RunID string `json:"runId"`

	// Config is the full configuration the run was started with
	Config fit.Config `json:"config"`

	// Params are the learned slope and intercept
	Params fit.Params `json:"params"`

	// InitialCost is the cost at w = 0, b = 0
	InitialCost float64 `json:"initialCost"`

	// FinalCost is the last recorded cost
	FinalCost float64 `json:"finalCost"`

	// Iterations is the number of completed iterations
	Iterations int `json:"iterations"`

	// Converged is true when the run stopped on the cost-change tolerance
	Converged bool `json:"converged"`

	// RSquared is the coefficient of determination of the learned line
	RSquared float64 `json:"rSquared"`

	// Artifacts lists plot files or remote locations produced by the run
	Artifacts []string `json:"artifacts,omitempty"`

	// Timestamp records when the run finished
	Timestamp time.Time `json:"timestamp"`
}

// RunInfo contains metadata about a run without the artifact list.
type RunInfo struct {
	RunID        string    `json:"runId"`
	FinalCost    float64   `json:"finalCost"`
	Iterations   int       `json:"iterations"`
	Converged    bool      `json:"converged"`
	Samples      int       `json:"samples"`
	LearningRate float64   `json:"learningRate"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewRunID returns a fresh random run identifier.
func NewRunID() string {
	return uuid.New().String()
}

// NewRunRecord creates a record from a finished fit.
func NewRunRecord(runID string, cfg fit.Config, res *fit.Result, rSquared float64) *RunRecord {
	var initial float64
	if len(res.CostHistory) > 0 {
		initial = res.CostHistory[0]
	}
	return &RunRecord{
		RunID:       runID,
		Config:      cfg,
		Params:      res.Params,
		InitialCost: initial,
		FinalCost:   res.FinalCost(),
		Iterations:  res.Iterations,
		Converged:   res.Converged,
		RSquared:    rSquared,
		Timestamp:   time.Now(),
	}
}

// ToInfo converts a full RunRecord to RunInfo (metadata only).
func (r *RunRecord) ToInfo() RunInfo {
	return RunInfo{
		RunID:        r.RunID,
		FinalCost:    r.FinalCost,
		Iterations:   r.Iterations,
		Converged:    r.Converged,
		Samples:      r.Config.Samples,
		LearningRate: r.Config.LearningRate,
		Timestamp:    r.Timestamp,
	}
}

// Validate checks if the record has valid data.
// JSON cannot carry NaN or Inf, so a diverged run fails validation.
func (r *RunRecord) Validate() error {
	if r.RunID == "" {
		return &ValidationError{Field: "RunID", Reason: "cannot be empty"}
	}
	if err := r.Config.Validate(); err != nil {
		return &ValidationError{Field: "Config", Reason: err.Error()}
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"Params.W", r.Params.W},
		{"Params.B", r.Params.B},
		{"InitialCost", r.InitialCost},
		{"FinalCost", r.FinalCost},
		{"RSquared", r.RSquared},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return &ValidationError{Field: f.name, Reason: "must be finite"}
		}
	}
	if r.FinalCost < 0 || r.InitialCost < 0 {
		return &ValidationError{Field: "FinalCost", Reason: "cannot be negative"}
	}
	if r.Iterations <= 0 || r.Iterations > r.Config.MaxIterations {
		return &ValidationError{Field: "Iterations", Reason: "must be within 1 and Config.MaxIterations"}
	}
	if r.Timestamp.IsZero() {
		return &ValidationError{Field: "Timestamp", Reason: "cannot be zero"}
	}
	return nil
}

// ValidationError represents a run record validation error.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + " " + e.Reason
}
