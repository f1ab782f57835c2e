package dictionary

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode"

	"github.com/lascivaroma/lasla-apn-converter/internal/model"
)

// ErrMissingColumn is returned when a TSV dictionary lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// primarySource marks rows of the TSV dictionary that go to the primary table.
const primarySource = "O"

// LoadTSV reads a tab-separated dictionary into d. The header must name the
// lemma, gen, upostag and src columns; extra columns are ignored.
func (d *Dictionary) LoadTSV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()

	if err := d.parseTSV(f); err != nil {
		return fmt.Errorf("parse dictionary %s: %w", path, err)
	}
	return nil
}

func (d *Dictionary) parseTSV(r io.Reader) error {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	idx := make(map[string]int, 4)
	for _, name := range []string{"lemma", "gen", "upostag", "src"} {
		i, ok := cols[name]
		if !ok {
			return fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
		idx[name] = i
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read row: %w", err)
		}
		field := func(name string) string {
			if i := idx[name]; i < len(rec) {
				return strings.TrimSpace(rec[i])
			}
			return ""
		}

		e := model.Entry{Lemma: field("lemma"), Gender: field("gen"), POS: field("upostag")}
		if field("src") == primarySource {
			d.AddPrimary(e)
		} else {
			d.AddSecondary(e)
		}
	}
}

// flatGender matches the gender note of a flat dictionary record:
// "-ae, f." or "-is, m. et f.".
var flatGender = regexp.MustCompile(`,\s*([mfnc])\.(?:\s*et\s*([mf])\.)?`)

// LoadFlat reads a "|"-delimited dictionary (key=form|model|…|-i, m.|…)
// and seeds the secondary table with every record carrying a gender note.
// It returns the number of entries added.
func (d *Dictionary) LoadFlat(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open flat dictionary: %w", err)
	}
	defer f.Close()

	n, err := d.parseFlat(f)
	if err != nil {
		return n, fmt.Errorf("parse flat dictionary %s: %w", path, err)
	}
	return n, nil
}

func (d *Dictionary) parseFlat(r io.Reader) (int, error) {
	added := 0
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}
		fields := strings.Split(line, "|")
		key, _, _ := strings.Cut(fields[0], "=")
		key = stripHomonym(strings.TrimSpace(key))
		if key == "" {
			continue
		}

		gender := ""
		for i := len(fields) - 1; i > 0 && gender == ""; i-- {
			gender = GenderNote(fields[i])
		}
		if gender == "" {
			continue
		}
		if d.AddSecondary(model.Entry{Lemma: key, Gender: gender, POS: "NOUN"}) {
			added++
		}
	}
	if err := sc.Err(); err != nil {
		return added, err
	}
	return added, nil
}

// GenderNote extracts the gender code from a dictionary note such as
// "-ae, f." ("f") or "-is, m. et f." ("c"). It returns "" when field has none.
func GenderNote(field string) string {
	m := flatGender.FindStringSubmatch(field)
	if m == nil {
		return ""
	}
	if m[2] != "" && m[2] != m[1] {
		return model.Common
	}
	return m[1]
}

// stripHomonym drops a trailing homonym digit (rosa2 -> rosa).
func stripHomonym(s string) string {
	r := []rune(s)
	if len(r) > 1 && unicode.IsDigit(r[len(r)-1]) && r[len(r)-1] != '0' {
		return string(r[:len(r)-1])
	}
	return s
}
