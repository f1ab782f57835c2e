package align

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/lascivaroma/lasla-apn-converter/internal/model"
)

// ReadHints reads a lemma list file: one "key" or "key\thint" per line.
func ReadHints(path string) ([]model.LemmaHint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lemma list: %w", err)
	}
	defer f.Close()

	hints, err := parseHints(f)
	if err != nil {
		return nil, fmt.Errorf("read lemma list %s: %w", path, err)
	}
	return hints, nil
}

func parseHints(r io.Reader) ([]model.LemmaHint, error) {
	var hints []model.LemmaHint
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, hint, _ := strings.Cut(line, "\t")
		hints = append(hints, model.LemmaHint{Key: strings.TrimSpace(key), Gender: strings.TrimSpace(hint)})
	}
	return hints, sc.Err()
}

// WriteTable writes "lemma\tgender" for every matched outcome, sorted by key.
func WriteTable(w io.Writer, outcomes []model.Outcome) error {
	matched := make([]model.Outcome, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Matched() {
			matched = append(matched, o)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Key < matched[j].Key })

	bw := bufio.NewWriter(w)
	for _, o := range matched {
		if _, err := fmt.Fprintf(bw, "%s\t%s\n", o.Key, o.Gender); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteTableFile writes the result table to path.
func WriteTableFile(path string, outcomes []model.Outcome) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create result table: %w", err)
	}
	if err := WriteTable(f, outcomes); err != nil {
		f.Close()
		return fmt.Errorf("write result table: %w", err)
	}
	return f.Close()
}
