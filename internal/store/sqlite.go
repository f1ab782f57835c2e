package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/lascivaroma/lasla-apn-converter/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy io.Reader
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id             TEXT PRIMARY KEY,
		source         TEXT NOT NULL,
		dictionary     TEXT NOT NULL,
		created_at     TEXT NOT NULL,
		total          INTEGER NOT NULL DEFAULT 0,
		matched        INTEGER NOT NULL DEFAULT 0,
		unmatched      INTEGER NOT NULL DEFAULT 0,
		skipped        INTEGER NOT NULL DEFAULT 0,
		secondary_hits INTEGER NOT NULL DEFAULT 0,
		synthesized    INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);

	CREATE TABLE IF NOT EXISTS outcomes (
		run_id     TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		lemma      TEXT NOT NULL,
		target     TEXT,
		gender     TEXT,
		provenance TEXT NOT NULL,
		PRIMARY KEY (run_id, lemma)
	);
	CREATE INDEX IF NOT EXISTS idx_outcomes_lemma ON outcomes(lemma);
	CREATE INDEX IF NOT EXISTS idx_outcomes_provenance ON outcomes(run_id, provenance);

	CREATE TABLE IF NOT EXISTS synthesized (
		run_id     TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		seq        INTEGER NOT NULL,
		lemma      TEXT NOT NULL,
		gender     TEXT NOT NULL,
		provenance TEXT NOT NULL,
		PRIMARY KEY (run_id, seq)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) SaveRun(ctx context.Context, p SaveRunParams) (*model.Run, error) {
	run := p.Run
	run.ID = s.newID()
	run.CreatedAt = time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, source, dictionary, created_at, total, matched, unmatched, skipped, secondary_hits, synthesized)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.Dictionary, run.CreatedAt.Format(time.RFC3339),
		run.Total, run.Matched, run.Unmatched, run.Skipped, run.SecondaryHits, run.Synthesized)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}

	for _, o := range p.Outcomes {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO outcomes (run_id, lemma, target, gender, provenance) VALUES (?, ?, ?, ?, ?)`,
			run.ID, o.Key, nullable(o.Target), nullable(o.Gender), string(o.Provenance))
		if err != nil {
			return nil, fmt.Errorf("insert outcome %s: %w", o.Key, err)
		}
	}

	for i, o := range p.Synthesized {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO synthesized (run_id, seq, lemma, gender, provenance) VALUES (?, ?, ?, ?, ?)`,
			run.ID, i, o.Key, o.Gender, string(o.Provenance))
		if err != nil {
			return nil, fmt.Errorf("insert synthesized %s: %w", o.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &run, nil
}

const runColumns = `id, source, dictionary, created_at, total, matched, unmatched, skipped, secondary_hits, synthesized`

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*model.Run, error) {
	id = strings.ToUpper(strings.TrimSpace(id))
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrRunNotFound)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id LIKE ? ORDER BY id LIMIT 2`, id+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(runs) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case 1:
		return &runs[0], nil
	}
	return nil, fmt.Errorf("ambiguous run id prefix %q", id)
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *SQLiteStore) Outcomes(ctx context.Context, p OutcomesParams) ([]model.Outcome, error) {
	where := []string{"run_id = ?"}
	args := []interface{}{p.RunID}

	if p.Unmatched {
		where = append(where, "provenance = ?")
		args = append(args, string(model.ProvUnmatched))
	} else if p.Provenance != "" {
		where = append(where, "provenance = ?")
		args = append(args, p.Provenance)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT lemma, target, gender, provenance FROM outcomes WHERE `+
			strings.Join(where, " AND ")+` ORDER BY lemma`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Outcome
	for rows.Next() {
		o, err := scanOutcome(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// Synthesized lists the entries synthesized during a run, in creation order.
func (s *SQLiteStore) Synthesized(ctx context.Context, runID string) ([]model.Outcome, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT lemma, gender, provenance FROM synthesized WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Outcome
	for rows.Next() {
		var o model.Outcome
		var prov string
		if err := rows.Scan(&o.Key, &o.Gender, &prov); err != nil {
			return nil, err
		}
		o.Provenance = model.Provenance(prov)
		out = append(out, o)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) DeleteRun(ctx context.Context, id string) error {
	run, err := s.GetRun(ctx, id)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM outcomes WHERE run_id = ?`,
		`DELETE FROM synthesized WHERE run_id = ?`,
		`DELETE FROM runs WHERE id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, q, run.ID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row scanner) (model.Run, error) {
	var r model.Run
	var createdAt string

	err := row.Scan(
		&r.ID, &r.Source, &r.Dictionary, &createdAt,
		&r.Total, &r.Matched, &r.Unmatched, &r.Skipped, &r.SecondaryHits, &r.Synthesized,
	)
	if err != nil {
		return r, err
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return r, nil
}

func scanOutcome(row scanner) (model.Outcome, error) {
	var o model.Outcome
	var target, gender sql.NullString
	var prov string

	if err := row.Scan(&o.Key, &target, &gender, &prov); err != nil {
		return o, err
	}
	o.Target = target.String
	o.Gender = gender.String
	o.Provenance = model.Provenance(prov)
	return o, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
