package align

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lascivaroma/lasla-apn-converter/internal/dictionary"
	"github.com/lascivaroma/lasla-apn-converter/internal/lemmatizer"
	"github.com/lascivaroma/lasla-apn-converter/internal/logging"
	"github.com/lascivaroma/lasla-apn-converter/internal/model"
)

type fakeLemmatizer struct {
	readings map[string][]lemmatizer.Analysis
	err      error
	calls    []string
}

func (f *fakeLemmatizer) Lemmatize(_ context.Context, form string) ([]lemmatizer.Analysis, error) {
	f.calls = append(f.calls, form)
	if f.err != nil {
		return nil, f.err
	}
	return f.readings[form], nil
}

func newDict(t *testing.T, primary, secondary map[string]string) *dictionary.Dictionary {
	t.Helper()
	d := dictionary.New()
	for k, g := range primary {
		d.AddPrimary(model.Entry{Lemma: k, Gender: g, POS: "NOUN"})
	}
	for k, g := range secondary {
		d.AddSecondary(model.Entry{Lemma: k, Gender: g, POS: "NOUN"})
	}
	return d
}

func hints(keys ...string) []model.LemmaHint {
	out := make([]model.LemmaHint, len(keys))
	for i, k := range keys {
		out[i] = model.LemmaHint{Key: k}
	}
	return out
}

func alignOne(t *testing.T, e *Engine, key string) model.Outcome {
	t.Helper()
	report, err := e.Align(context.Background(), hints(key))
	require.NoError(t, err)
	require.Len(t, report.Outcomes, 1)
	return report.Outcomes[0]
}

func TestAlign_SuffixDeduced(t *testing.T) {
	e := NewEngine(logging.Discard(), newDict(t, nil, nil), nil)

	o := alignOne(t, e, "romanus_a")
	assert.Equal(t, model.ProvSuffixDeduced, o.Provenance)
	assert.Equal(t, "romanus", o.Target)
	assert.Equal(t, model.Masculine, o.Gender)

	o = alignOne(t, e, "albina")
	assert.Equal(t, model.ProvSuffixDeduced, o.Provenance)
	assert.Equal(t, model.Feminine, o.Gender)
}

func TestSuffixGender(t *testing.T) {
	tests := map[string]string{
		"lupus":   model.Masculine,
		"rosa":    model.Feminine,
		"athenae": model.Feminine,
		"liberi":  model.Common,
		"miles":   model.Common,
		"aedes":   "",
		"templum": "",
	}
	for base, want := range tests {
		assert.Equal(t, want, suffixGender(base), base)
	}
}

func TestAlign_PrimaryBeatsSecondary(t *testing.T) {
	d := newDict(t, map[string]string{"dies": model.Masculine}, map[string]string{"dies": model.Feminine})
	e := NewEngine(logging.Discard(), d, nil)

	o := alignOne(t, e, "Dies")
	assert.Equal(t, model.ProvDirect, o.Provenance)
	assert.Equal(t, "dies", o.Key)
	assert.Equal(t, model.Masculine, o.Gender)
}

func TestAlign_Secondary(t *testing.T) {
	d := newDict(t, nil, map[string]string{"ciuis": model.Common})
	e := NewEngine(logging.Discard(), d, nil)

	o := alignOne(t, e, "civis")
	assert.Equal(t, model.ProvSecondary, o.Provenance)
	assert.Equal(t, model.Common, o.Gender)
}

func TestAlign_ProperNoun(t *testing.T) {
	d := newDict(t,
		map[string]string{"roma": model.Feminine},
		map[string]string{"caesar": model.Masculine},
	)
	e := NewEngine(logging.Discard(), d, nil)

	report, err := e.Align(context.Background(), hints("Roma_N", "Caesar_N"))
	require.NoError(t, err)
	require.Len(t, report.Outcomes, 2)

	for _, o := range report.Outcomes {
		assert.Equal(t, model.ProvProperNoun, o.Provenance, o.Key)
	}
	assert.Equal(t, "caesar", report.Outcomes[0].Target)
	assert.Equal(t, "roma", report.Outcomes[1].Target)
	assert.Equal(t, 1, report.SecondaryHits)
}

func TestAlign_DisambiguationStripped(t *testing.T) {
	d := newDict(t, map[string]string{"uirtus": model.Feminine}, nil)
	e := NewEngine(logging.Discard(), d, nil)

	o := alignOne(t, e, "virtus_2")
	assert.Equal(t, model.ProvStripped, o.Provenance)
	assert.Equal(t, "uirtus", o.Target)
	assert.Equal(t, model.Feminine, o.Gender)
}

func TestAlign_Relemmatized(t *testing.T) {
	lem := &fakeLemmatizer{readings: map[string][]lemmatizer.Analysis{
		"flumen": {
			{Lemma: "flumen", POS: "NOM", Morph: "Case=Nom|Numb=Sing|Gend=Neut"},
			{Lemma: "flumen", POS: "NOM", Morph: "Case=Acc|Numb=Sing|Gend=Neut"},
		},
	}}
	e := NewEngine(logging.Discard(), newDict(t, nil, nil), lem)

	o := alignOne(t, e, "flumen")
	assert.Equal(t, model.ProvRelemmatized, o.Provenance)
	assert.Equal(t, "flumen", o.Target)
	assert.Equal(t, model.Neuter, o.Gender)
	assert.Equal(t, []string{"flumen"}, lem.calls)
}

func TestAlign_RelemmatizedPrefersDictionaryGender(t *testing.T) {
	lem := &fakeLemmatizer{readings: map[string][]lemmatizer.Analysis{
		"corpora": {{Lemma: "corpus", POS: "NOM", Morph: "Case=Nom|Numb=Plur"}},
	}}
	d := newDict(t, map[string]string{"corpus": model.Neuter}, nil)
	e := NewEngine(logging.Discard(), d, lem)

	o := alignOne(t, e, "corpora")
	assert.Equal(t, model.ProvRelemmatized, o.Provenance)
	assert.Equal(t, "corpus", o.Target)
	assert.Equal(t, model.Neuter, o.Gender)
}

func TestAlign_RelemmatizedSharedSecondary(t *testing.T) {
	lem := &fakeLemmatizer{readings: map[string][]lemmatizer.Analysis{
		"sorte": {
			{Lemma: "sors", POS: "NOM", Morph: "Case=Nom|Numb=Sing"},
			{Lemma: "sortis", POS: "NOM", Morph: "Case=Nom|Numb=Sing"},
		},
	}}
	d := newDict(t, nil, map[string]string{"sors": model.Feminine, "sortis": model.Feminine})
	e := NewEngine(logging.Discard(), d, lem)

	o := alignOne(t, e, "sorte")
	assert.Equal(t, model.ProvRelemmatized, o.Provenance)
	assert.Equal(t, "sorte", o.Target)
	assert.Equal(t, model.Feminine, o.Gender)
}

func TestAlign_SubstantivedVerb(t *testing.T) {
	lem := &fakeLemmatizer{readings: map[string][]lemmatizer.Analysis{
		"posse": {{Lemma: "possum", POS: "VER", Morph: "Mood=Inf|Tense=Pres|Voice=Act"}},
	}}
	e := NewEngine(logging.Discard(), newDict(t, nil, nil), lem)

	report, err := e.Align(context.Background(), hints("posse"))
	require.NoError(t, err)
	o := report.Outcomes[0]
	assert.Equal(t, model.ProvSubstVerb, o.Provenance)
	assert.Equal(t, model.Neuter, o.Gender)
	require.Len(t, report.Synthesized, 1)
	assert.Equal(t, Synthesized{Key: "posse", Gender: model.Neuter, Provenance: model.ProvSubstVerb}, report.Synthesized[0])
}

func TestAlign_SubstantivedAdjective(t *testing.T) {
	lem := &fakeLemmatizer{readings: map[string][]lemmatizer.Analysis{
		"bonum": {
			{Lemma: "bonus", POS: "ADJqua", Morph: "Case=Nom|Numb=Sing|Gend=Neut|Deg=Pos"},
			{Lemma: "bonus", POS: "ADJqua", Morph: "Case=Acc|Numb=Sing|Gend=Masc|Deg=Pos"},
		},
	}}
	e := NewEngine(logging.Discard(), newDict(t, nil, nil), lem)

	o := alignOne(t, e, "bonum")
	assert.Equal(t, model.ProvSubstAdj, o.Provenance)
	assert.Equal(t, model.Neuter, o.Gender)
}

func TestAlign_LemmatizerErrorFallsThrough(t *testing.T) {
	lem := &fakeLemmatizer{err: errors.New("connection refused")}
	e := NewEngine(logging.Discard(), newDict(t, nil, nil), lem)

	o := alignOne(t, e, "templum")
	assert.Equal(t, model.ProvUnmatched, o.Provenance)
	assert.False(t, o.Matched())
}

func TestAlign_SynthesizedVisibleToLaterKeys(t *testing.T) {
	e := NewEngine(logging.Discard(), newDict(t, nil, nil), nil)

	// "agricola" synthesizes itself; "agricola_n" then finds it through
	// the proper-noun strip.
	report, err := e.Align(context.Background(), hints("agricola_n", "agricola"))
	require.NoError(t, err)
	require.Len(t, report.Outcomes, 2)

	assert.Equal(t, model.ProvSuffixDeduced, report.Outcomes[0].Provenance)
	assert.Equal(t, model.ProvProperNoun, report.Outcomes[1].Provenance)
	assert.Equal(t, 1, report.SecondaryHits)
}

func TestAlign_SkipsUndetermined(t *testing.T) {
	d := newDict(t, map[string]string{"rosa": model.Feminine}, nil)
	e := NewEngine(logging.Discard(), d, nil)

	report, err := e.Align(context.Background(), []model.LemmaHint{
		{Key: "rosa", Gender: "f"},
		{Key: "nescio", Gender: model.GenderUndetermined},
		{Key: "Rosa", Gender: model.GenderUndetermined},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Total)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 100.0, report.MatchedPercent())
}

func TestReport_PercentagesSumTo100(t *testing.T) {
	d := newDict(t, map[string]string{"rosa": model.Feminine}, map[string]string{"ciuis": model.Common})
	e := NewEngine(logging.Discard(), d, nil)

	report, err := e.Align(context.Background(), hints("rosa", "civis", "lupus", "templum", "rosa_2", "nemo"))
	require.NoError(t, err)
	assert.Equal(t, 6, report.Total)

	var sum float64
	for _, p := range model.Provenances {
		sum += report.Percent(p)
	}
	assert.InDelta(t, 100.0, sum, 1e-9)
	assert.ElementsMatch(t, []string{"templum", "nemo"}, report.Unmatched())
	assert.Len(t, report.Matches(), 4)

	s := report.Summary()
	assert.Equal(t, 4, s.Matched)
	assert.Equal(t, 2, s.Unmatched)
	assert.Equal(t, 1, s.Counts[string(model.ProvDirect)])
}

func TestReport_Empty(t *testing.T) {
	e := NewEngine(logging.Discard(), newDict(t, nil, nil), nil)

	report, err := e.Align(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Total)
	assert.Equal(t, 0.0, report.MatchedPercent())
	assert.Equal(t, 0.0, report.Percent(model.ProvUnmatched))
}

func TestAlign_Cancelled(t *testing.T) {
	e := NewEngine(logging.Discard(), newDict(t, nil, nil), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Align(ctx, hints("rosa"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadHints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "_noun_lemma.txt")
	require.NoError(t, os.WriteFile(path, []byte("rosa\tf\n\nuirtus_2\n\ndies\t_\r\n"), 0o644))

	got, err := ReadHints(path)
	require.NoError(t, err)
	assert.Equal(t, []model.LemmaHint{
		{Key: "rosa", Gender: "f"},
		{Key: "uirtus_2"},
		{Key: "dies", Gender: "_"},
	}, got)
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTable(&buf, []model.Outcome{
		{Key: "uirtus", Gender: "f", Provenance: model.ProvDirect},
		{Key: "nemo", Provenance: model.ProvUnmatched},
		{Key: "lupus", Gender: "m", Provenance: model.ProvSuffixDeduced},
	})
	require.NoError(t, err)
	assert.Equal(t, "lupus\tm\nuirtus\tf\n", buf.String())
	assert.False(t, strings.Contains(buf.String(), "nemo"))
}
