// Package align resolves corpus lemma keys against gendered dictionaries
// through an ordered cascade of matching strategies.
package align

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/lascivaroma/lasla-apn-converter/internal/dictionary"
	"github.com/lascivaroma/lasla-apn-converter/internal/lemmatizer"
	"github.com/lascivaroma/lasla-apn-converter/internal/model"
)

// Engine aligns lemma keys. It is not safe for concurrent Align calls.
type Engine struct {
	log  *slog.Logger
	dict *dictionary.Dictionary
	lem  lemmatizer.Lemmatizer
}

// NewEngine creates an Engine. lem may be nil.
func NewEngine(log *slog.Logger, dict *dictionary.Dictionary, lem lemmatizer.Lemmatizer) *Engine {
	return &Engine{log: log, dict: dict, lem: lem}
}

// run is the state of one Align call.
type run struct {
	*Engine
	acc           *Accumulator
	secondaryHits int
}

// Align normalizes, de-duplicates and sorts the hint keys, then resolves
// them in order. Keys whose every hint is undetermined are skipped.
func (e *Engine) Align(ctx context.Context, hints []model.LemmaHint) (*Report, error) {
	start := time.Now()

	determined := make(map[string]bool, len(hints))
	for _, h := range hints {
		key := dictionary.NormalizeKey(h.Key)
		if key == "" {
			continue
		}
		determined[key] = determined[key] || h.Gender != model.GenderUndetermined
	}

	keys := make([]string, 0, len(determined))
	skipped := 0
	for k, ok := range determined {
		if !ok {
			skipped++
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	r := &run{Engine: e, acc: NewAccumulator()}
	report := newReport()
	report.Skipped = skipped

	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report.add(r.resolve(ctx, key))
	}
	report.SecondaryHits = r.secondaryHits
	report.Synthesized = r.acc.Entries()

	e.log.Info("alignment finished",
		slog.Int("total", report.Total),
		slog.Int("skipped", report.Skipped),
		slog.Int("unmatched", report.Counts[model.ProvUnmatched]),
		slog.Int("synthesized", len(report.Synthesized)),
		slog.String("matched", formatPercent(report.MatchedPercent())),
		slog.Duration("duration", time.Since(start)),
	)
	return report, nil
}

func (r *run) resolve(ctx context.Context, key string) model.Outcome {
	for _, s := range cascade {
		if o, ok := s(ctx, r, key); ok {
			o.Key = key
			r.log.Debug("lemma resolved",
				slog.String("key", key),
				slog.String("target", o.Target),
				slog.String("gender", o.Gender),
				slog.String("provenance", string(o.Provenance)),
			)
			return o
		}
	}
	return model.Outcome{Key: key, Provenance: model.ProvUnmatched}
}

// secondary looks key up in the secondary table, then in the entries
// synthesized earlier in the run.
func (r *run) secondary(key string) (model.Entry, bool) {
	if e, ok := r.dict.Secondary(key); ok {
		return e, true
	}
	return r.acc.Lookup(key)
}

// lookup consults both dictionary tables, then the synthesized entries.
func (r *run) lookup(key string) (e model.Entry, primary, ok bool) {
	if e, primary, ok = r.dict.Lookup(key); ok {
		return e, primary, true
	}
	e, ok = r.acc.Lookup(key)
	return e, false, ok
}
