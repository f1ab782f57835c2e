// Package block builds and reads the segment-grouped TSV output of a
// transcoded corpus file.
package block

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Header is the first line of every block.
const Header = "form\tlemma\tmorph\tpos\tindex"

// Row is one token row.
type Row struct {
	Form    string
	Lemma   string
	Morph   string
	POS     string
	Segment string
	Line    int // 1-based line in the source file, 0 when unknown
}

func (r Row) String() string {
	return strings.Join([]string{r.Form, r.Lemma, r.Morph, r.POS, r.Segment}, "\t")
}

// Segment is a run of consecutive rows sharing a segment id.
type Segment struct {
	ID        string
	Rows      []Row
	StartLine int
	EndLine   int
}

// Builder accumulates rows and opens a new segment whenever the segment id
// changes.
type Builder struct {
	segments []Segment
	rows     int
}

// Add appends a row.
func (b *Builder) Add(r Row) {
	n := len(b.segments)
	if n == 0 || b.segments[n-1].ID != r.Segment {
		b.segments = append(b.segments, Segment{ID: r.Segment, StartLine: r.Line})
		n++
	}
	s := &b.segments[n-1]
	s.Rows = append(s.Rows, r)
	s.EndLine = r.Line
	b.rows++
}

// Segments returns the segments built so far.
func (b *Builder) Segments() []Segment {
	return b.segments
}

// Len returns the number of rows.
func (b *Builder) Len() int {
	return b.rows
}

// String renders the header, then each segment's rows, with exactly one
// blank line between segments.
func (b *Builder) String() string {
	var sb strings.Builder
	b.WriteTo(&sb)
	return sb.String()
}

// WriteTo writes the rendered block to w.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	write := func(s string) {
		m, _ := bw.WriteString(s)
		n += int64(m)
	}

	write(Header + "\n")
	for i, s := range b.segments {
		if i > 0 {
			write("\n")
		}
		for _, r := range s.Rows {
			write(r.String() + "\n")
		}
	}
	return n, bw.Flush()
}

// Parse reads a rendered block back into segments. Blank lines separate
// segments; the header line is optional. Rows with fewer than five columns
// are rejected.
func Parse(r io.Reader) ([]Segment, error) {
	var segments []Segment
	var current *Segment

	flush := func() {
		if current != nil && len(current.Rows) > 0 {
			segments = append(segments, *current)
		}
		current = nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimRight(sc.Text(), "\r")
		if lineNum == 1 && line == Header {
			continue
		}
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		cols := strings.Split(line, "\t")
		if len(cols) < 5 {
			return nil, fmt.Errorf("line %d: expected 5 columns, got %d", lineNum, len(cols))
		}
		row := Row{Form: cols[0], Lemma: cols[1], Morph: cols[2], POS: cols[3], Segment: cols[4], Line: lineNum}
		if current == nil {
			current = &Segment{ID: row.Segment, StartLine: lineNum}
		}
		current.Rows = append(current.Rows, row)
		current.EndLine = lineNum
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan block: %w", err)
	}
	flush()
	return segments, nil
}
