// Package decoder turns fixed-column LASLA annotation lines into tokens.
package decoder

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/lascivaroma/lasla-apn-converter/internal/model"
)

var (
	ErrNoMatch        = errors.New("no lemma/segment pattern in columns 0-30")
	ErrShortLine      = errors.New("line shorter than 30 columns")
	ErrEmptyLemma     = errors.New("empty lemma")
	ErrNoMorph        = errors.New("no morph code and no part of speech")
	ErrConnectionSign = errors.New("unknown connection sign")
)

// FormatError is a structural failure on one annotation line.
type FormatError struct {
	Line string
	Err  error
}

func (e *FormatError) Error() string { return e.Err.Error() }
func (e *FormatError) Unwrap() error { return e.Err }

func formatErr(line string, err error) *FormatError {
	return &FormatError{Line: line, Err: err}
}

var (
	compactLemma   = regexp.MustCompile(`^\w{3}[&=]\d+([A-Z]+)\s+(\w?)`)
	compactSegment = regexp.MustCompile(`^\w{3}[&=](\d+)`)
	compactToken   = regexp.MustCompile(`(<\w+>\s)?(?P<token>(in )?[\w.]+)(\s[<(]\w+[>)])?`)
	inlineTag      = regexp.MustCompile(`\s?[<(]\w+[>)]\s?`)
)

const (
	// fillerSuffix ends extended-layout lines that carry no annotation.
	fillerSuffix = "#            "
	// greekLemma marks a lemma whose form is Greek written in Beta Code.
	greekLemma = "#"

	extendedFullWidth = 80
)

// Decode reads one annotation line. It returns (nil, nil) for lines that
// carry no token: blanks, filler lines and continuation lines.
func Decode(line string, v model.Variant) (*model.Token, error) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return nil, nil
	}
	if v == model.Extended {
		return decodeExtended(line)
	}
	return decodeCompact(line)
}

func decodeCompact(line string) (*model.Token, error) {
	head := cols(line, 0, 30)
	m := compactLemma.FindStringSubmatch(head)
	if m == nil {
		return nil, formatErr(line, ErrNoMatch)
	}
	seg := compactSegment.FindStringSubmatch(head)

	form := compactToken.ReplaceAllString(strings.TrimSpace(cols(line, 30, 55)), "${token}")
	morph := cols(line, 67, 78)
	pos := strings.ReplaceAll(cols(line, 78, len(line)), " ", "")
	if pos == "" {
		if strings.TrimSpace(morph) == "" {
			return nil, formatErr(line, ErrNoMorph)
		}
		pos = morph[:1]
	}

	return &model.Token{
		Lemma:         m[1],
		Disambiguator: m[2],
		Form:          form,
		Morph:         morph,
		POS:           pos,
		Segment:       seg[1],
		Composite:     strings.Contains(form, " "),
	}, nil
}

func decodeExtended(line string) (*model.Token, error) {
	if strings.HasSuffix(line, fillerSuffix) {
		return nil, nil
	}
	if len(line) < 4 {
		return nil, formatErr(line, ErrShortLine)
	}
	switch sign := line[3]; sign {
	case '#', '=':
		// contraction and enclisis continuations
		return nil, nil
	case '&':
	default:
		return nil, formatErr(line, fmt.Errorf("%w %q", ErrConnectionSign, sign))
	}
	if len(line) < 30 {
		return nil, formatErr(line, ErrShortLine)
	}

	lemma := strings.TrimSpace(cols(line, 8, 29))
	if lemma == "" {
		return nil, formatErr(line, ErrEmptyLemma)
	}
	tok := &model.Token{
		Lemma:         lemma,
		Disambiguator: strings.TrimSpace(cols(line, 29, 30)),
		Segment:       strings.TrimSpace(cols(line, 4, 8)),
		Form:          inlineTag.ReplaceAllString(strings.TrimSpace(cols(line, 30, 55)), ""),
	}

	if lemma == greekLemma {
		tok.Form = BetaCode(tok.Form)
		tok.Lemma = tok.Form
		tok.Disambiguator = ""
	} else {
		tok.Morph = cols(line, 67, 76)
		if len(line) == extendedFullWidth {
			tok.Morph += line[79:]
		}
		tok.POS = strings.ReplaceAll(cols(line, 77, 79), " ", "")
		if tok.POS == "" {
			tok.POS = strings.TrimSpace(cols(tok.Morph, 0, 1))
		}
		if tok.POS == "" && strings.TrimSpace(tok.Morph) == "" {
			return nil, formatErr(line, ErrNoMorph)
		}
	}
	tok.Composite = strings.Contains(tok.Form, " ")
	return tok, nil
}

// cols returns s[start:end] clipped to the length of s.
func cols(s string, start, end int) string {
	if start >= len(s) {
		return ""
	}
	if end > len(s) {
		end = len(s)
	}
	return s[start:end]
}
