package store

import (
	"context"

	"github.com/lascivaroma/lasla-apn-converter/internal/model"
)

// RunExport is the portable form of a recorded run.
type RunExport struct {
	Run         model.Run       `json:"run"`
	Outcomes    []model.Outcome `json:"outcomes"`
	Synthesized []model.Outcome `json:"synthesized,omitempty"`
}

// ExportRun returns a run with all its outcomes and synthesized entries.
func (s *SQLiteStore) ExportRun(ctx context.Context, id string) (*RunExport, error) {
	run, err := s.GetRun(ctx, id)
	if err != nil {
		return nil, err
	}

	outcomes, err := s.Outcomes(ctx, OutcomesParams{RunID: run.ID})
	if err != nil {
		return nil, err
	}
	synthesized, err := s.Synthesized(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	return &RunExport{Run: *run, Outcomes: outcomes, Synthesized: synthesized}, nil
}

// Import stores runs from an export. Each imported run gets a new id.
func (s *SQLiteStore) Import(ctx context.Context, runs []RunExport) (int, error) {
	imported := 0
	for _, r := range runs {
		_, err := s.SaveRun(ctx, SaveRunParams{
			Run:         r.Run,
			Outcomes:    r.Outcomes,
			Synthesized: r.Synthesized,
		})
		if err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}
