// Package lemmatizer provides a pluggable interface for external Latin
// lemmatizers used to re-analyse unmatched lemmas.
package lemmatizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/lascivaroma/lasla-apn-converter/internal/config"
)

// Analysis is one reading of a surface form.
type Analysis struct {
	Lemma string `json:"lemma"`
	POS   string `json:"pos"`   // coarse tag: NOM, VER, ADJ...
	Morph string `json:"morph"` // pipe-joined features, e.g. Case=Nom|Numb=Sing|Gend=Fem
}

// Lemmatizer returns every reading of a form. A form with no reading yields
// an empty slice and no error.
type Lemmatizer interface {
	Lemmatize(ctx context.Context, form string) ([]Analysis, error)
}

// New creates a lemmatizer from cfg. It returns nil when the provider is
// empty or "none".
func New(cfg config.LemmatizerConfig) (Lemmatizer, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", config.ProviderNone:
		return nil, nil
	case config.ProviderTable:
		t, err := LoadTable(cfg.Table)
		if err != nil {
			return nil, err
		}
		return t, nil
	case config.ProviderHTTP:
		return NewHTTP(cfg.URL, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown lemmatizer provider %q", cfg.Provider)
	}
}
