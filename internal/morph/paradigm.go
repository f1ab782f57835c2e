package morph

import (
	"sort"
	"strings"

	"github.com/lascivaroma/lasla-apn-converter/internal/model"
)

// readable holds the French label of every verbal feature.
var readable = map[string]string{
	"Numb=Sing": "Singulier",
	"Numb=Plur": "Pluriel",

	"Mood=Ind":   "Indicatif",
	"Mood=Sub":   "Subjonctif",
	"Mood=Imp":   "Impératif",
	"Mood=Par":   "Participe",
	"Mood=Inf":   "Infinitif",
	"Mood=Adj":   "Adjectif verbal",
	"Mood=Ger":   "Gérondif",
	"Mood=SupUm": "Supin en -UM",
	"Mood=SupU":  "Supin en -U",

	"Tense=Pres":     "Présent",
	"Tense=Impa":     "Imparfait",
	"Tense=Fut":      "Futur",
	"Tense=Perf":     "Parfait",
	"Tense=Pqp":      "Plus-que-parfait",
	"Tense=FutAnt":   "Futur antérieur",
	"Tense=PeriPerf": "Périphrase au parfait",
	"Tense=PeriPqp":  "Périphrase au plus-que-parfait",
	"Tense=PeriFut":  "Périphrase au futur antérieur",

	"Voice=Act":    "Actif",
	"Voice=Pass":   "Passif",
	"Voice=Dep":    "Déponent",
	"Voice=SemDep": "Semi-déponent",

	"Person=1": "1re pers",
	"Person=2": "2e pers",
	"Person=3": "3e pers",
}

// ParadigmRow pairs a verbal feature combination with its French reading.
type ParadigmRow struct {
	Features string `json:"features"`
	Readable string `json:"readable"`
}

// Paradigm enumerates number × mood × tense × voice × person for variant v,
// in code order. Reserved and placeholder codes are left out.
func Paradigm(v model.Variant) []ParadigmRow {
	axes := [][]string{
		labelled(numberCodes),
		labelled(tables(v)[Mood]),
		labelled(tenseCodes),
		labelled(voiceCodes),
		labelled(personCodes),
	}

	var rows []ParadigmRow
	var walk func(depth int, feats []string)
	walk = func(depth int, feats []string) {
		if depth == len(axes) {
			labels := make([]string, len(feats))
			for i, f := range feats {
				labels[i] = readable[f]
			}
			rows = append(rows, ParadigmRow{
				Features: strings.Join(feats, "|"),
				Readable: strings.Join(labels, " "),
			})
			return
		}
		for _, f := range axes[depth] {
			walk(depth+1, append(feats[:depth:depth], f))
		}
	}
	walk(0, make([]string, 0, len(axes)))
	return rows
}

// labelled returns the features of a code table that have a French label,
// ordered by code.
func labelled(table map[byte]string) []string {
	codes := make([]byte, 0, len(table))
	for c := range table {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	var out []string
	for _, c := range codes {
		if _, ok := readable[table[c]]; ok {
			out = append(out, table[c])
		}
	}
	return out
}
