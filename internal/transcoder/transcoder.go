// Package transcoder converts LASLA annotation files into segment-grouped TSV
// and collects the lemma inventory of a corpus.
package transcoder

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lascivaroma/lasla-apn-converter/internal/block"
	"github.com/lascivaroma/lasla-apn-converter/internal/decoder"
	"github.com/lascivaroma/lasla-apn-converter/internal/model"
	"github.com/lascivaroma/lasla-apn-converter/internal/morph"
)

// errorSeparator sits between the rejected line and its cause in error entries.
const errorSeparator = "\t----\t"

// Options configures a Transcoder.
type Options struct {
	Variant model.Variant
	// RawMorph keeps raw morph and POS codes instead of translating them.
	RawMorph bool
	// NoDisambiguation drops the "_N" suffix from the output lemma column.
	// Lemma sets keep it.
	NoDisambiguation bool
	// Lowercase lowercases the output lemma column.
	Lowercase bool
}

// Stats counts what happened to the lines of one file.
type Stats struct {
	Lines    int `json:"lines"`
	Rows     int `json:"rows"`
	Skipped  int `json:"skipped"`
	Errors   int `json:"errors"`
	Segments int `json:"segments"`
}

// Result is the transcoding of one file.
type Result struct {
	Path       string
	Block      *block.Builder
	Errors     []string
	Lemmas     map[string]struct{}
	Nouns      map[string]string // lemma key -> gender hint
	Composites map[string]struct{}
	Stats      Stats
	// Err is set when the file could not be read; no table is written.
	Err error
}

func newResult(path string) *Result {
	return &Result{
		Path:       path,
		Block:      &block.Builder{},
		Lemmas:     make(map[string]struct{}),
		Nouns:      make(map[string]string),
		Composites: make(map[string]struct{}),
	}
}

func failedResult(path string, err error) *Result {
	res := newResult(path)
	res.Err = err
	res.Errors = append(res.Errors, err.Error())
	res.Stats.Errors++
	return res
}

func (r *Result) addError(line string, err error) {
	r.Errors = append(r.Errors, line+errorSeparator+err.Error())
	r.Stats.Errors++
}

// Transcoder decodes annotation files one line at a time.
type Transcoder struct {
	log  *slog.Logger
	opts Options
}

// New creates a Transcoder. A zero Variant means compact.
func New(log *slog.Logger, opts Options) *Transcoder {
	if opts.Variant == "" {
		opts.Variant = model.Compact
	}
	return &Transcoder{log: log, opts: opts}
}

// File transcodes the file at path.
func (t *Transcoder) File(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return t.Reader(ctx, path, f)
}

// Reader transcodes the lines of r; name is recorded as the result path.
// Line-level failures land in Result.Errors. Only read failures and
// cancellation are returned as errors.
func (t *Transcoder) Reader(ctx context.Context, name string, r io.Reader) (*Result, error) {
	start := time.Now()
	res := newResult(name)
	br := bufio.NewReader(r)

	for lineNum := 1; ; lineNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, err := br.ReadString('\n')
		if raw != "" {
			res.Stats.Lines++
			t.line(res, strings.TrimRight(raw, "\r\n"), lineNum)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
	}

	res.Stats.Rows = res.Block.Len()
	res.Stats.Segments = len(res.Block.Segments())
	t.log.Info("transcoded file",
		slog.String("path", name),
		slog.Int("rows", res.Stats.Rows),
		slog.Int("errors", res.Stats.Errors),
		slog.Int("lemmas", len(res.Lemmas)),
		slog.Duration("duration", time.Since(start)),
	)
	return res, nil
}

func (t *Transcoder) line(res *Result, line string, lineNum int) {
	tok, err := decoder.Decode(line, t.opts.Variant)
	if err != nil {
		res.addError(line, err)
		return
	}
	if tok == nil {
		res.Stats.Skipped++
		return
	}

	features, pos := tok.Morph, tok.POS
	tag, _ := morph.POSTag(tok.POS)
	switch {
	case strings.TrimSpace(tok.Morph) != "":
		tr, err := morph.Translate(tok.Morph, t.opts.Variant)
		if err != nil {
			res.addError(line, err)
		}
		tag = tr.POS
		if !t.opts.RawMorph {
			features, pos = tr.Features, tr.POS
		}
	case tok.POS != "" && !t.opts.RawMorph:
		// blank morph region: the annotated POS column still names the tag
		features, pos = morph.Empty, tag
	}

	key := tok.LemmaKey()
	res.Lemmas[key] = struct{}{}
	if strings.HasPrefix(tag, morph.NounTag) {
		addNoun(res.Nouns, key, genderHint(tok, t.opts.Variant))
	}
	if tok.Composite {
		res.Composites[tok.Form] = struct{}{}
	}

	lemma := key
	if t.opts.NoDisambiguation {
		lemma = model.BaseLemma(lemma)
	}
	if t.opts.Lowercase {
		lemma = strings.ToLower(lemma)
	}

	res.Block.Add(block.Row{
		Form:    tok.Form,
		Lemma:   lemma,
		Morph:   features,
		POS:     pos,
		Segment: tok.Segment,
		Line:    lineNum,
	})
}

// genderHint reads the gender slot of a noun annotation. The compact layout
// has no gender slot and yields "".
func genderHint(tok *model.Token, v model.Variant) string {
	if v != model.Extended {
		return ""
	}
	slot := 2 + int(morph.Gender)
	if len(tok.Morph) <= slot {
		return model.GenderUndetermined
	}
	switch c := tok.Morph[slot]; c {
	case ' ', '0':
		return model.GenderUndetermined
	default:
		return string(c)
	}
}

// addNoun records a noun key, keeping the first determined hint.
func addNoun(nouns map[string]string, key, hint string) {
	prev, ok := nouns[key]
	if !ok || (prev == model.GenderUndetermined && hint != model.GenderUndetermined) {
		nouns[key] = hint
	}
}
