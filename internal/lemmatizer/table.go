package lemmatizer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/lascivaroma/lasla-apn-converter/internal/block"
	"github.com/lascivaroma/lasla-apn-converter/internal/dictionary"
	"github.com/lascivaroma/lasla-apn-converter/internal/model"
)

// Table is an offline lemmatizer backed by a form/lemma/morph/pos table,
// typically the output of a transcoding run.
type Table struct {
	forms map[string][]Analysis
}

// LoadTable reads a table file.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lemmatizer table: %w", err)
	}
	defer f.Close()

	t, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("read lemmatizer table %s: %w", path, err)
	}
	return t, nil
}

// ReadTable builds a Table from a rendered block. Identical readings of
// the same form are kept once.
func ReadTable(r io.Reader) (*Table, error) {
	segments, err := block.Parse(r)
	if err != nil {
		return nil, err
	}

	t := &Table{forms: make(map[string][]Analysis)}
	seen := make(map[string]map[Analysis]bool)
	for _, s := range segments {
		for _, row := range s.Rows {
			form := dictionary.NormalizeKey(row.Form)
			a := Analysis{
				Lemma: model.BaseLemma(row.Lemma),
				POS:   row.POS,
				Morph: row.Morph,
			}
			if seen[form] == nil {
				seen[form] = make(map[Analysis]bool)
			}
			if seen[form][a] {
				continue
			}
			seen[form][a] = true
			t.forms[form] = append(t.forms[form], a)
		}
	}
	return t, nil
}

// Lemmatize returns the readings recorded for form.
func (t *Table) Lemmatize(_ context.Context, form string) ([]Analysis, error) {
	return t.forms[dictionary.NormalizeKey(form)], nil
}
