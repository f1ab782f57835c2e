package model

import "time"

// Gender codes used by dictionaries and alignment results.
const (
	Masculine = "m"
	Feminine  = "f"
	Neuter    = "n"
	Common    = "c" // masculine or feminine
)

// GenderUndetermined is the noun gender hint for an annotation whose gender
// slot exists but is blank or flagged as an error. Such keys are not aligned.
const GenderUndetermined = "_"

// Provenance names the cascade step that produced an alignment outcome.
type Provenance string

const (
	ProvDirect        Provenance = "direct"
	ProvSecondary     Provenance = "secondary"
	ProvProperNoun    Provenance = "proper-noun"
	ProvStripped      Provenance = "disambiguation-stripped"
	ProvRelemmatized  Provenance = "relemmatized"
	ProvSubstVerb     Provenance = "substantived-verb"
	ProvSubstAdj      Provenance = "substantived-adjective"
	ProvSuffixDeduced Provenance = "suffix-deduced"
	ProvUnmatched     Provenance = "unmatched"
)

// Provenances lists every outcome category in reporting order.
var Provenances = []Provenance{
	ProvDirect,
	ProvSecondary,
	ProvProperNoun,
	ProvStripped,
	ProvRelemmatized,
	ProvSubstVerb,
	ProvSubstAdj,
	ProvSuffixDeduced,
	ProvUnmatched,
}

// Entry is a dictionary headword with its gender.
type Entry struct {
	Lemma  string `json:"lemma"`
	Gender string `json:"gender"`
	POS    string `json:"pos,omitempty"`
}

// LemmaHint is an alignment input: a lemma key and the gender slot observed
// on its annotations (empty when the format has no gender slot).
type LemmaHint struct {
	Key    string `json:"key"`
	Gender string `json:"gender,omitempty"`
}

// Outcome is the alignment decision for one lemma key.
type Outcome struct {
	Key        string     `json:"key"`
	Target     string     `json:"target,omitempty"`
	Gender     string     `json:"gender,omitempty"`
	Provenance Provenance `json:"provenance"`
}

// Matched reports whether the outcome resolved to a dictionary entry.
func (o Outcome) Matched() bool {
	return o.Provenance != "" && o.Provenance != ProvUnmatched
}

// Run is a recorded alignment run.
type Run struct {
	ID            string    `json:"id"`
	Source        string    `json:"source"`
	Dictionary    string    `json:"dictionary"`
	CreatedAt     time.Time `json:"created_at"`
	Total         int       `json:"total"`
	Matched       int       `json:"matched"`
	Unmatched     int       `json:"unmatched"`
	Skipped       int       `json:"skipped"`
	SecondaryHits int       `json:"secondary_hits"`
	Synthesized   int       `json:"synthesized"`
}
