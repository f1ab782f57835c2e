// Package model defines the core corpus and alignment data types.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// Variant selects the column layout of an annotation file.
type Variant string

const (
	// Compact is the APN layout.
	Compact Variant = "compact"
	// Extended is the BPN layout, with a connection sign column.
	Extended Variant = "extended"
)

// ErrUnknownVariant is returned when a variant name is not recognised.
var ErrUnknownVariant = errors.New("unknown format variant")

// ParseVariant accepts "compact"/"apn" and "extended"/"bpn" (case-insensitive).
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "compact", "apn":
		return Compact, nil
	case "extended", "bpn":
		return Extended, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// Extension returns the file extension used by corpus files of this variant.
func (v Variant) Extension() string {
	if v == Extended {
		return "BPN"
	}
	return "APN"
}

// Token is the decoded content of one annotation line.
type Token struct {
	Lemma         string `json:"lemma"`
	Disambiguator string `json:"disambiguator,omitempty"`
	Form          string `json:"form"`
	Morph         string `json:"morph"`
	POS           string `json:"pos"`
	Segment       string `json:"segment"`
	Composite     bool   `json:"composite,omitempty"`
}

// LemmaKey joins lemma and disambiguator with "_". Surrounding spaces and
// underscores are trimmed so an empty disambiguator leaves no separator.
func (t Token) LemmaKey() string {
	return strings.Trim(strings.TrimSpace(t.Lemma+"_"+t.Disambiguator), "_")
}

// BaseLemma returns the part of a lemma key before the first separator.
func BaseLemma(key string) string {
	base, _, _ := strings.Cut(key, "_")
	return base
}
