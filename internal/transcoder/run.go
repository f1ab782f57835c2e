package transcoder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/lascivaroma/lasla-apn-converter/internal/model"
)

// Discover lists the corpus files under source: source itself when it is a
// file, otherwise the files with the variant's extension directly inside it.
func Discover(source string, v model.Variant) ([]string, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("stat source: %w", err)
	}
	if !info.IsDir() {
		return []string{source}, nil
	}

	matches, err := filepath.Glob(filepath.Join(source, "*."+v.Extension()))
	if err != nil {
		return nil, fmt.Errorf("glob source: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}

// RunAll transcodes paths on at most workers goroutines. Results come back
// in path order. A file that cannot be read yields a failed Result and does
// not stop its siblings; only cancellation aborts the run.
func (t *Transcoder) RunAll(ctx context.Context, paths []string, workers int) ([]*Result, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]*Result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			res, err := t.File(gctx, path)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return fmt.Errorf("transcode: %w", ctxErr)
				}
				t.log.Warn("file failed", slog.String("path", path), slog.String("error", err.Error()))
				res = failedResult(path, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Corpus is the union of the lemma inventories of several files.
type Corpus struct {
	Lemmas     map[string]struct{}
	Nouns      map[string]string
	Composites map[string]struct{}
	Rows       int
	Errors     int
}

// Merge unions the inventories of results.
func Merge(results []*Result) *Corpus {
	c := &Corpus{
		Lemmas:     make(map[string]struct{}),
		Nouns:      make(map[string]string),
		Composites: make(map[string]struct{}),
	}
	for _, r := range results {
		if r == nil {
			continue
		}
		for k := range r.Lemmas {
			c.Lemmas[k] = struct{}{}
		}
		for k, hint := range r.Nouns {
			addNoun(c.Nouns, k, hint)
		}
		for k := range r.Composites {
			c.Composites[k] = struct{}{}
		}
		c.Rows += r.Stats.Rows
		c.Errors += r.Stats.Errors
	}
	return c
}

// SortedLemmas returns the lemma keys in byte order.
func (c *Corpus) SortedLemmas() []string {
	return sortedKeys(c.Lemmas)
}

// SortedComposites returns the composite forms in byte order.
func (c *Corpus) SortedComposites() []string {
	return sortedKeys(c.Composites)
}

// NounHints returns the noun keys with their gender hints, sorted by key.
func (c *Corpus) NounHints() []model.LemmaHint {
	keys := make([]string, 0, len(c.Nouns))
	for k := range c.Nouns {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	hints := make([]model.LemmaHint, len(keys))
	for i, k := range keys {
		hints[i] = model.LemmaHint{Key: k, Gender: c.Nouns[k]}
	}
	return hints
}

// CompositeReport renders the composite-token listing printed after a run.
func (c *Corpus) CompositeReport() string {
	return strings.Join(append([]string{"Composed tokens"}, c.SortedComposites()...), "\n\t")
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
