package align

import (
	"github.com/lascivaroma/lasla-apn-converter/internal/dictionary"
	"github.com/lascivaroma/lasla-apn-converter/internal/model"
)

// Synthesized is a secondary entry created during a run.
type Synthesized struct {
	Key        string           `json:"key"`
	Gender     string           `json:"gender"`
	Provenance model.Provenance `json:"provenance"`
}

// Accumulator holds the entries synthesized during one run. They overlay
// the secondary table and are never written back to dictionary files.
type Accumulator struct {
	entries map[string]model.Entry
	order   []Synthesized
}

// NewAccumulator returns an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{entries: make(map[string]model.Entry)}
}

// Add records key with gender unless it is already present.
func (a *Accumulator) Add(key, gender string, p model.Provenance) {
	key = dictionary.NormalizeKey(key)
	if _, ok := a.entries[key]; ok {
		return
	}
	a.entries[key] = model.Entry{Lemma: key, Gender: gender}
	a.order = append(a.order, Synthesized{Key: key, Gender: gender, Provenance: p})
}

// Lookup returns the synthesized entry for key.
func (a *Accumulator) Lookup(key string) (model.Entry, bool) {
	e, ok := a.entries[dictionary.NormalizeKey(key)]
	return e, ok
}

// Entries returns the synthesized entries in creation order.
func (a *Accumulator) Entries() []Synthesized {
	return a.order
}
