package decoder

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var betaLetters = map[byte]rune{
	'a': 'α', 'b': 'β', 'g': 'γ', 'd': 'δ', 'e': 'ε', 'z': 'ζ', 'h': 'η',
	'q': 'θ', 'i': 'ι', 'k': 'κ', 'l': 'λ', 'm': 'μ', 'n': 'ν', 'c': 'ξ',
	'o': 'ο', 'p': 'π', 'r': 'ρ', 's': 'σ', 't': 'τ', 'u': 'υ', 'f': 'φ',
	'x': 'χ', 'y': 'ψ', 'w': 'ω', 'v': 'ϝ',
}

var betaMarks = map[byte]rune{
	')':  '\u0313', // smooth breathing
	'(':  '\u0314', // rough breathing
	'/':  '\u0301', // acute
	'\\': '\u0300', // grave
	'=':  '\u0342', // circumflex
	'+':  '\u0308', // diaeresis
	'|':  '\u0345', // iota subscript
}

var betaPunct = map[byte]string{
	':':  "·",
	'\'': "’",
}

// BetaCode converts Beta Code transliteration into NFC-normalized Greek.
// Letters are case-insensitive; "*" marks a capital, whose diacritics may
// precede the letter. Unknown bytes are copied through.
func BetaCode(s string) string {
	var b strings.Builder
	capital := false
	var pending []rune

	for i := 0; i < len(s); i++ {
		c := s[i]
		lc := lower(c)

		if c == '*' {
			capital = true
			continue
		}
		if mark, ok := betaMarks[c]; ok {
			if capital {
				pending = append(pending, mark)
			} else {
				b.WriteRune(mark)
			}
			continue
		}
		r, ok := betaLetters[lc]
		if !ok {
			if p, ok := betaPunct[c]; ok {
				b.WriteString(p)
			} else {
				b.WriteByte(c)
			}
			continue
		}

		if lc == 's' {
			var skip bool
			r, skip = sigma(s, i)
			if skip {
				i++
			}
		}
		if capital {
			r = unicode.ToUpper(r)
			capital = false
		}
		b.WriteRune(r)
		for _, m := range pending {
			b.WriteRune(m)
		}
		pending = pending[:0]
	}
	for _, m := range pending {
		b.WriteRune(m)
	}
	return norm.NFC.String(b.String())
}

// sigma picks the sigma shape for the s at index i. An explicit digit
// selects medial (1), final (2) or lunate (3) and is consumed; otherwise
// the sigma is final unless a letter follows its diacritics.
func sigma(s string, i int) (rune, bool) {
	if i+1 < len(s) {
		switch s[i+1] {
		case '1':
			return 'σ', true
		case '2':
			return 'ς', true
		case '3':
			return 'ϲ', true
		}
	}
	for j := i + 1; j < len(s); j++ {
		if _, ok := betaMarks[s[j]]; ok {
			continue
		}
		if _, ok := betaLetters[lower(s[j])]; ok {
			return 'σ', false
		}
		break
	}
	return 'ς', false
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
