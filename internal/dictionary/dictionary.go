// Package dictionary loads gendered lemma dictionaries into a primary and a
// secondary lookup table.
package dictionary

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/lascivaroma/lasla-apn-converter/internal/model"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeKey returns the lookup key of a lemma: lowercase, v folded to u,
// vowel quantity marks removed. It is idempotent.
func NormalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}
	return strings.ReplaceAll(s, "v", "u")
}

// Dictionary holds the primary and secondary tables. Lookups consult the
// primary table first.
type Dictionary struct {
	primary   map[string]model.Entry
	secondary map[string]model.Entry
}

// New returns an empty Dictionary.
func New() *Dictionary {
	return &Dictionary{
		primary:   make(map[string]model.Entry),
		secondary: make(map[string]model.Entry),
	}
}

// AddPrimary stores e under its normalized lemma unless the key exists.
func (d *Dictionary) AddPrimary(e model.Entry) bool {
	return add(d.primary, e)
}

// AddSecondary stores e under its normalized lemma unless the key exists.
func (d *Dictionary) AddSecondary(e model.Entry) bool {
	return add(d.secondary, e)
}

func add(table map[string]model.Entry, e model.Entry) bool {
	key := NormalizeKey(e.Lemma)
	if key == "" {
		return false
	}
	if _, ok := table[key]; ok {
		return false
	}
	table[key] = e
	return true
}

// Primary looks key up in the primary table.
func (d *Dictionary) Primary(key string) (model.Entry, bool) {
	e, ok := d.primary[NormalizeKey(key)]
	return e, ok
}

// Secondary looks key up in the secondary table.
func (d *Dictionary) Secondary(key string) (model.Entry, bool) {
	e, ok := d.secondary[NormalizeKey(key)]
	return e, ok
}

// Lookup consults the primary table, then the secondary one.
func (d *Dictionary) Lookup(key string) (e model.Entry, primary, ok bool) {
	if e, ok := d.Primary(key); ok {
		return e, true, true
	}
	e, ok = d.Secondary(key)
	return e, false, ok
}

// Len returns the sizes of the primary and secondary tables.
func (d *Dictionary) Len() (primary, secondary int) {
	return len(d.primary), len(d.secondary)
}
