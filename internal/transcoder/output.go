package transcoder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lascivaroma/lasla-apn-converter/internal/model"
)

// Output file names written next to the per-file tables.
const (
	ErrorLogName  = "_error.txt"
	LemmaFileName = "_lemma.txt"
	NounFileName  = "_noun_lemma.txt"
)

// TableName maps a corpus file path to its output table name.
func TableName(path string, v model.Variant) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, "."+v.Extension()) + ".tsv"
}

// ResetErrorLog truncates the error log of dir.
func ResetErrorLog(dir string) error {
	if err := os.WriteFile(filepath.Join(dir, ErrorLogName), nil, 0o644); err != nil {
		return fmt.Errorf("reset error log: %w", err)
	}
	return nil
}

// WriteResult writes the table of res into dir and appends its errors to
// the error log. A failed result only adds its error.
func WriteResult(dir string, res *Result, v model.Variant) error {
	if res.Err != nil {
		return WriteErrorLog(dir, filepath.Base(res.Path), res.Errors)
	}
	name := TableName(res.Path, v)
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	if _, err := res.Block.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write table %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close table %s: %w", name, err)
	}
	return WriteErrorLog(dir, name, res.Errors)
}

// WriteErrorLog appends one "filename\t\terror" line per entry.
func WriteErrorLog(dir, filename string, errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	f, err := os.OpenFile(filepath.Join(dir, ErrorLogName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open error log: %w", err)
	}
	var sb strings.Builder
	for _, e := range errs {
		sb.WriteString("\n" + filename + "\t\t" + strings.TrimSpace(e))
	}
	if _, err := f.WriteString(sb.String()); err != nil {
		f.Close()
		return fmt.Errorf("write error log: %w", err)
	}
	return f.Close()
}

// WriteLemmaFiles writes the sorted lemma keys and the sorted noun keys with
// their gender hints.
func WriteLemmaFiles(dir string, c *Corpus) error {
	lemmas := strings.Join(c.SortedLemmas(), "\n")
	if err := os.WriteFile(filepath.Join(dir, LemmaFileName), []byte(lemmas), 0o644); err != nil {
		return fmt.Errorf("write lemma file: %w", err)
	}

	hints := c.NounHints()
	lines := make([]string, len(hints))
	for i, h := range hints {
		lines[i] = h.Key
		if h.Gender != "" {
			lines[i] += "\t" + h.Gender
		}
	}
	if err := os.WriteFile(filepath.Join(dir, NounFileName), []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return fmt.Errorf("write noun lemma file: %w", err)
	}
	return nil
}
