package align

import (
	"strconv"

	"github.com/lascivaroma/lasla-apn-converter/internal/model"
)

// Report is the result of one alignment run.
type Report struct {
	// Outcomes holds one outcome per processed key, in key order.
	Outcomes      []model.Outcome
	Counts        map[model.Provenance]int
	Total         int
	Skipped       int
	SecondaryHits int
	Synthesized   []Synthesized
}

func newReport() *Report {
	return &Report{Counts: make(map[model.Provenance]int)}
}

func (r *Report) add(o model.Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	r.Counts[o.Provenance]++
	r.Total++
}

// Matches returns the matched outcomes.
func (r *Report) Matches() []model.Outcome {
	var out []model.Outcome
	for _, o := range r.Outcomes {
		if o.Matched() {
			out = append(out, o)
		}
	}
	return out
}

// Unmatched returns the keys left unresolved.
func (r *Report) Unmatched() []string {
	var out []string
	for _, o := range r.Outcomes {
		if !o.Matched() {
			out = append(out, o.Key)
		}
	}
	return out
}

// Percent returns the share of processed keys with provenance p.
func (r *Report) Percent(p model.Provenance) float64 {
	if r.Total == 0 {
		return 0
	}
	return 100 * float64(r.Counts[p]) / float64(r.Total)
}

// MatchedPercent returns the share of processed keys that matched.
func (r *Report) MatchedPercent() float64 {
	if r.Total == 0 {
		return 0
	}
	return 100 * float64(r.Total-r.Counts[model.ProvUnmatched]) / float64(r.Total)
}

// Summary is the JSON view of a report.
type Summary struct {
	Total         int                `json:"total"`
	Matched       int                `json:"matched"`
	Unmatched     int                `json:"unmatched"`
	Skipped       int                `json:"skipped"`
	SecondaryHits int                `json:"secondary_hits"`
	Synthesized   int                `json:"synthesized"`
	MatchedPct    float64            `json:"matched_pct"`
	Counts        map[string]int     `json:"counts"`
	Percentages   map[string]float64 `json:"percentages"`
}

// Summary returns counts and percentages for every provenance.
func (r *Report) Summary() Summary {
	s := Summary{
		Total:         r.Total,
		Unmatched:     r.Counts[model.ProvUnmatched],
		Skipped:       r.Skipped,
		SecondaryHits: r.SecondaryHits,
		Synthesized:   len(r.Synthesized),
		MatchedPct:    r.MatchedPercent(),
		Counts:        make(map[string]int, len(model.Provenances)),
		Percentages:   make(map[string]float64, len(model.Provenances)),
	}
	s.Matched = s.Total - s.Unmatched
	for _, p := range model.Provenances {
		s.Counts[string(p)] = r.Counts[p]
		s.Percentages[string(p)] = r.Percent(p)
	}
	return s
}

// Run converts the report into a run record.
func (r *Report) Run(source, dictionary string) *model.Run {
	return &model.Run{
		Source:        source,
		Dictionary:    dictionary,
		Total:         r.Total,
		Matched:       r.Total - r.Counts[model.ProvUnmatched],
		Unmatched:     r.Counts[model.ProvUnmatched],
		Skipped:       r.Skipped,
		SecondaryHits: r.SecondaryHits,
		Synthesized:   len(r.Synthesized),
	}
}

func formatPercent(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64) + "%"
}
