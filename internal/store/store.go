// Package store provides the alignment run storage interface and SQLite implementation.
package store

import (
	"context"
	"errors"

	"github.com/lascivaroma/lasla-apn-converter/internal/model"
)

// ErrRunNotFound is returned when no run matches an id.
var ErrRunNotFound = errors.New("run not found")

// SaveRunParams holds parameters for recording an alignment run.
type SaveRunParams struct {
	Run         model.Run
	Outcomes    []model.Outcome
	Synthesized []model.Outcome
}

// OutcomesParams holds parameters for listing the outcomes of a run.
type OutcomesParams struct {
	RunID      string
	Unmatched  bool   // only unmatched keys
	Provenance string // filter by provenance
}

// Store defines the run storage interface.
type Store interface {
	// SaveRun records a run with its outcomes. Returns the stored run with
	// its id and creation time set.
	SaveRun(ctx context.Context, p SaveRunParams) (*model.Run, error)

	// GetRun retrieves a run by id or unique id prefix.
	GetRun(ctx context.Context, id string) (*model.Run, error)

	// ListRuns lists the most recent runs first.
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)

	// Outcomes lists the outcomes of a run in key order.
	Outcomes(ctx context.Context, p OutcomesParams) ([]model.Outcome, error)

	// DeleteRun removes a run and everything recorded with it.
	DeleteRun(ctx context.Context, id string) error

	// Close closes the store.
	Close() error
}
