package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lascivaroma/lasla-apn-converter/internal/model"
)

// LookupParams holds parameters for searching outcomes across runs.
type LookupParams struct {
	Query      string
	Provenance string
	Limit      int
}

// LookupResult wraps an outcome with the run it belongs to.
type LookupResult struct {
	model.Outcome
	RunID     string    `json:"run_id"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// Lookup finds outcomes whose lemma or target contains the query
// substring, newest run first.
func (s *SQLiteStore) Lookup(ctx context.Context, p LookupParams) ([]LookupResult, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	query := "%" + strings.ToLower(p.Query) + "%"

	where := []string{"(o.lemma LIKE ? OR o.target LIKE ?)"}
	args := []interface{}{query, query}

	if p.Provenance != "" {
		where = append(where, "o.provenance = ?")
		args = append(args, p.Provenance)
	}

	q := fmt.Sprintf(`
		SELECT o.lemma, o.target, o.gender, o.provenance, r.id, r.source, r.created_at
		FROM outcomes o
		INNER JOIN runs r ON r.id = o.run_id
		WHERE %s
		ORDER BY r.id DESC, o.lemma
		LIMIT ?`, strings.Join(where, " AND "))
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []LookupResult
	for rows.Next() {
		var res LookupResult
		var target, gender sql.NullString
		var prov, createdAt string
		if err := rows.Scan(&res.Key, &target, &gender, &prov, &res.RunID, &res.Source, &createdAt); err != nil {
			return nil, err
		}
		res.Target = target.String
		res.Gender = gender.String
		res.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		res.Provenance = model.Provenance(prov)
		results = append(results, res)
	}

	return results, rows.Err()
}
