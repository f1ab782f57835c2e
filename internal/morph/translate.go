package morph

import (
	"fmt"
	"strings"

	"github.com/lascivaroma/lasla-apn-converter/internal/model"
)

// Translation is the canonical form of a raw morph code.
type Translation struct {
	POS      string `json:"pos"`
	Features string `json:"features"`
}

// DecodeError reports a morph code that translated with losses: an unknown
// part-of-speech letter or a reserved error marker in a slot. The
// Translation returned alongside it is still usable.
type DecodeError struct {
	Code    string
	Reasons []string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("morph code %q: %s", e.Code, strings.Join(e.Reasons, "; "))
}

// Translate converts raw into a POS tag and a pipe-joined feature string.
// Characters past the variant's slot count are ignored; missing trailing
// characters count as blank.
func Translate(raw string, v model.Variant) (Translation, error) {
	var reasons []string

	posCode := strings.TrimSpace(columns(raw, 0, 2))
	pos, ok := POSTag(posCode)
	if !ok {
		reasons = append(reasons, fmt.Sprintf("unknown part of speech %q", posCode))
	}

	n := Slots(v)
	codes := columns(raw, 2, 2+n)
	features := make([]string, 0, n)
	for i := 0; i < len(codes); i++ {
		c := codes[i]
		if c == ' ' {
			continue
		}
		f := Feature(v, Category(i), c)
		if f == "" {
			continue
		}
		if f == ErrorMarker {
			reasons = append(reasons, fmt.Sprintf("error marker in %s slot", Category(i)))
			continue
		}
		features = append(features, f)
	}

	tr := Translation{POS: pos, Features: Empty}
	if len(features) > 0 {
		tr.Features = strings.Join(features, "|")
	}
	if len(reasons) > 0 {
		return tr, &DecodeError{Code: raw, Reasons: reasons}
	}
	return tr, nil
}

// columns returns s[start:end] clipped to the length of s.
func columns(s string, start, end int) string {
	if start >= len(s) {
		return ""
	}
	if end > len(s) {
		end = len(s)
	}
	return s[start:end]
}

// HasFeature reports whether a pipe-joined feature string contains f.
func HasFeature(features, f string) bool {
	for _, x := range strings.Split(features, "|") {
		if x == f {
			return true
		}
	}
	return false
}

// FeatureValue returns the value of the first "name=value" element of a
// pipe-joined feature string.
func FeatureValue(features, name string) string {
	for _, x := range strings.Split(features, "|") {
		if k, v, ok := strings.Cut(x, "="); ok && k == name {
			return v
		}
	}
	return ""
}

// GenderCode maps a Gend feature value to a dictionary gender code.
// Gend=MascNeut has no single code.
func GenderCode(value string) string {
	switch value {
	case "Masc":
		return model.Masculine
	case "Fem":
		return model.Feminine
	case "Neut":
		return model.Neuter
	case "Com", "MascFem":
		return model.Common
	}
	return ""
}
