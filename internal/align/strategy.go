package align

import (
	"context"
	"log/slog"
	"strings"

	"github.com/lascivaroma/lasla-apn-converter/internal/dictionary"
	"github.com/lascivaroma/lasla-apn-converter/internal/lemmatizer"
	"github.com/lascivaroma/lasla-apn-converter/internal/model"
	"github.com/lascivaroma/lasla-apn-converter/internal/morph"
)

// strategy tries to resolve a normalized key. The first strategy that
// reports ok decides the outcome.
type strategy func(ctx context.Context, r *run, key string) (model.Outcome, bool)

var cascade = []strategy{
	matchDirect,
	matchSecondary,
	matchProperNoun,
	matchStripped,
	matchRelemmatized,
	matchSuffix,
}

// properNounSuffix is the disambiguator LASLA gives proper nouns.
const properNounSuffix = "_n"

func matchDirect(_ context.Context, r *run, key string) (model.Outcome, bool) {
	e, ok := r.dict.Primary(key)
	if !ok {
		return model.Outcome{}, false
	}
	return model.Outcome{Target: key, Gender: e.Gender, Provenance: model.ProvDirect}, true
}

func matchSecondary(_ context.Context, r *run, key string) (model.Outcome, bool) {
	e, ok := r.secondary(key)
	if !ok {
		return model.Outcome{}, false
	}
	return model.Outcome{Target: key, Gender: e.Gender, Provenance: model.ProvSecondary}, true
}

func matchProperNoun(_ context.Context, r *run, key string) (model.Outcome, bool) {
	if !strings.HasSuffix(key, properNounSuffix) {
		return model.Outcome{}, false
	}
	stripped := strings.TrimSuffix(key, properNounSuffix)
	e, primary, ok := r.lookup(stripped)
	if !ok {
		return model.Outcome{}, false
	}
	if !primary {
		r.secondaryHits++
	}
	return model.Outcome{Target: stripped, Gender: e.Gender, Provenance: model.ProvProperNoun}, true
}

func matchStripped(_ context.Context, r *run, key string) (model.Outcome, bool) {
	if !strings.Contains(key, "_") {
		return model.Outcome{}, false
	}
	base := model.BaseLemma(key)
	e, _, ok := r.lookup(base)
	if !ok {
		return model.Outcome{}, false
	}
	return model.Outcome{Target: base, Gender: e.Gender, Provenance: model.ProvStripped}, true
}

func matchRelemmatized(ctx context.Context, r *run, key string) (model.Outcome, bool) {
	if r.lem == nil {
		return model.Outcome{}, false
	}
	base := model.BaseLemma(key)
	analyses, err := r.lem.Lemmatize(ctx, base)
	if err != nil {
		r.log.Warn("lemmatizer failed", slog.String("form", base), slog.String("error", err.Error()))
		analyses = nil
	}
	if len(analyses) == 0 {
		return model.Outcome{}, false
	}

	nouns := filter(analyses, "NOM", "Case=Nom")
	candidates := distinctLemmas(nouns)

	switch {
	case len(candidates) == 1:
		cand := candidates[0]
		gender := ""
		if e, _, ok := r.lookup(cand); ok {
			gender = e.Gender
		}
		if gender == "" {
			gender = readingGender(nouns, cand)
		}
		if gender != "" {
			return model.Outcome{Target: cand, Gender: gender, Provenance: model.ProvRelemmatized}, true
		}
	case len(candidates) > 1:
		if gender, ok := sharedSecondaryGender(r, candidates); ok {
			r.acc.Add(base, gender, model.ProvRelemmatized)
			return model.Outcome{Target: base, Gender: gender, Provenance: model.ProvRelemmatized}, true
		}
	}

	if len(filter(analyses, "NOM", "")) == 0 && len(filter(analyses, "VER", "Mood=Inf")) > 0 {
		r.acc.Add(base, model.Neuter, model.ProvSubstVerb)
		return model.Outcome{Target: base, Gender: model.Neuter, Provenance: model.ProvSubstVerb}, true
	}

	genders := make(map[string]bool)
	for _, a := range filter(analyses, "ADJ", "Case=Nom") {
		if g := morph.GenderCode(morph.FeatureValue(a.Morph, "Gend")); g != "" {
			genders[g] = true
		}
	}
	if len(genders) == 1 {
		for g := range genders {
			r.acc.Add(base, g, model.ProvSubstAdj)
			return model.Outcome{Target: base, Gender: g, Provenance: model.ProvSubstAdj}, true
		}
	}
	return model.Outcome{}, false
}

// suffixGender guesses a gender from a Latin headword ending.
func suffixGender(base string) string {
	switch {
	case strings.HasSuffix(base, "i"),
		strings.HasSuffix(base, "es") && !strings.HasSuffix(base, "des"):
		return model.Common
	case strings.HasSuffix(base, "us"):
		return model.Masculine
	case strings.HasSuffix(base, "a"), strings.HasSuffix(base, "ae"):
		return model.Feminine
	}
	return ""
}

func matchSuffix(_ context.Context, r *run, key string) (model.Outcome, bool) {
	base := model.BaseLemma(key)
	g := suffixGender(base)
	if g == "" {
		return model.Outcome{}, false
	}
	r.acc.Add(key, g, model.ProvSuffixDeduced)
	return model.Outcome{Target: base, Gender: g, Provenance: model.ProvSuffixDeduced}, true
}

// filter keeps the readings whose POS starts with pos and, when feature is
// set, whose morph carries it.
func filter(analyses []lemmatizer.Analysis, pos, feature string) []lemmatizer.Analysis {
	var out []lemmatizer.Analysis
	for _, a := range analyses {
		if !strings.HasPrefix(a.POS, pos) {
			continue
		}
		if feature != "" && !morph.HasFeature(a.Morph, feature) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func distinctLemmas(analyses []lemmatizer.Analysis) []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range analyses {
		k := dictionary.NormalizeKey(a.Lemma)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// readingGender returns the gender carried by the first reading of lemma
// that has a single-code gender feature.
func readingGender(analyses []lemmatizer.Analysis, lemma string) string {
	for _, a := range analyses {
		if dictionary.NormalizeKey(a.Lemma) != lemma {
			continue
		}
		if g := morph.GenderCode(morph.FeatureValue(a.Morph, "Gend")); g != "" {
			return g
		}
	}
	return ""
}

// sharedSecondaryGender reports the gender common to every candidate when
// all of them are in the secondary table.
func sharedSecondaryGender(r *run, candidates []string) (string, bool) {
	gender := ""
	for i, c := range candidates {
		e, ok := r.secondary(c)
		if !ok || e.Gender == "" {
			return "", false
		}
		if i > 0 && e.Gender != gender {
			return "", false
		}
		gender = e.Gender
	}
	return gender, true
}
