package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath         string            `json:"db_path"`
	DBSizeBytes    int64             `json:"db_size_bytes"`
	Runs           int               `json:"runs"`
	Outcomes       int               `json:"outcomes"`
	DistinctLemmas int               `json:"distinct_lemmas"`
	Synthesized    int               `json:"synthesized"`
	Provenances    []ProvenanceStats `json:"provenances"`
}

// ProvenanceStats holds per-provenance counts across all runs.
type ProvenanceStats struct {
	Provenance string `json:"provenance"`
	Count      int    `json:"count"`
	Lemmas     int    `json:"lemmas"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	// DB file size
	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&st.Runs)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM outcomes`).Scan(&st.Outcomes)
	s.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT lemma) FROM outcomes`).Scan(&st.DistinctLemmas)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM synthesized`).Scan(&st.Synthesized)

	rows, err := s.db.QueryContext(ctx, `
		SELECT provenance, COUNT(*) as cnt, COUNT(DISTINCT lemma) as lemmas
		FROM outcomes
		GROUP BY provenance ORDER BY cnt DESC, provenance`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var ps ProvenanceStats
		rows.Scan(&ps.Provenance, &ps.Count, &ps.Lemmas)
		st.Provenances = append(st.Provenances, ps)
	}

	return st, nil
}
