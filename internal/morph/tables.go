// Package morph translates LASLA positional morphology codes into canonical
// part-of-speech tags and feature strings.
package morph

import "github.com/lascivaroma/lasla-apn-converter/internal/model"

// Category is a positional slot of a morph code, after the two POS characters.
type Category int

const (
	Case Category = iota
	Number
	Degree
	Mood
	Tense
	Voice
	Person
	Gender
)

var categoryNames = [...]string{"case", "number", "degree", "mood", "tense", "voice", "person", "gender"}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[c]
}

const (
	// Empty is the feature string of a code whose category slots are all blank.
	Empty = "MORPH=EMPTY"
	// ErrorMarker is the reserved value of an annotation error in a slot.
	ErrorMarker = "ERROR"
)

var caseCodes = map[byte]string{
	'1': "Case=Nom",
	'2': "Case=Voc",
	'3': "Case=Acc",
	'4': "Case=Gen",
	'5': "Case=Dat",
	'6': "Case=Abl",
	'7': "Case=Loc",
	'8': "Case=Ind",
}

var numberCodes = map[byte]string{
	'1': "Numb=Sing",
	'2': "Numb=Plur",
}

var degreeCodes = map[byte]string{
	'1': "Deg=Pos",
	'2': "Deg=Comp",
	'3': "Deg=Sup",
}

// The two file generations disagree on digits 2 and 3 of the mood slot.
var moodCompact = map[byte]string{
	'0': ErrorMarker,
	'1': "Mood=Ind",
	'2': "Mood=Imp",
	'3': "Mood=Sub",
	'4': "Mood=Par",
	'5': "Mood=Adj",
	'6': "Mood=Ger",
	'7': "Mood=Inf",
	'8': "Mood=SupU",
	'9': "Mood=SupUm",
}

var moodExtended = map[byte]string{
	'0': ErrorMarker,
	'1': "Mood=Ind",
	'2': "Mood=Sub",
	'3': "Mood=Imp",
	'4': "Mood=Par",
	'5': "Mood=Adj",
	'6': "Mood=Ger",
	'7': "Mood=Inf",
	'8': "Mood=SupU",
	'9': "Mood=SupUm",
}

var tenseCodes = map[byte]string{
	'0': "Tense=_",
	'1': "Tense=Pres",
	'2': "Tense=Impa",
	'3': "Tense=Fut",
	'4': "Tense=Perf",
	'5': "Tense=Pqp",
	'6': "Tense=FutAnt",
	'7': "Tense=PeriPerf",
	'8': "Tense=PeriPqp",
	'9': "Tense=PeriFut",
}

var voiceCodes = map[byte]string{
	'1': "Voice=Act",
	'2': "Voice=Pass",
	'3': "Voice=Dep",
	'4': "Voice=SemDep",
}

var personCodes = map[byte]string{
	'1': "Person=1",
	'2': "Person=2",
	'3': "Person=3",
}

var genderCodes = map[byte]string{
	'0': ErrorMarker,
	'1': "Gend=Com",
	'2': "Gend=Fem",
	'3': "Gend=MascFem",
	'4': "Gend=Masc",
	'5': "Gend=MascNeut",
	'6': "Gend=Neut",
}

var (
	compactTables  = []map[byte]string{caseCodes, numberCodes, degreeCodes, moodCompact, tenseCodes, voiceCodes, personCodes}
	extendedTables = []map[byte]string{caseCodes, numberCodes, degreeCodes, moodExtended, tenseCodes, voiceCodes, personCodes, genderCodes}
)

// tables returns the per-slot code tables of a variant. The compact layout
// has no gender slot.
func tables(v model.Variant) []map[byte]string {
	if v == model.Extended {
		return extendedTables
	}
	return compactTables
}

// Slots returns the number of category slots following the POS sub-code.
func Slots(v model.Variant) int {
	return len(tables(v))
}

// Feature returns the canonical feature for code c in category cat, or ""
// when the slot does not exist in v or the code is unmapped.
func Feature(v model.Variant, cat Category, c byte) string {
	t := tables(v)
	if int(cat) >= len(t) {
		return ""
	}
	return t[cat][c]
}

// posEntry is one row of the POS table: a coarse tag, an optional constant
// suffix, and an optional refinement keyed by the second code letter.
type posEntry struct {
	tag    string
	suffix string
	sub    map[byte]string
}

var numeralSub = map[byte]string{
	'1': "car",
	'2': "ord",
	'3': "dis",
	'4': "mul",
	'5': "adv.ord",
	'6': "adv.mul",
}

var posTable = map[byte]posEntry{
	'A': {tag: "NOM"},
	'B': {tag: "VER"},
	'C': {tag: "ADJ", suffix: "qua"},
	'D': {tag: "ADJ", sub: numeralSub},
	'E': {tag: "PROper"},
	'F': {tag: "PROpos"},
	'G': {tag: "PROref"},
	'H': {tag: "PROpos.ref"},
	'I': {tag: "PROdem"},
	'J': {tag: "PROrel"},
	'K': {tag: "PROint"},
	'L': {tag: "PROind"},
	'M': {tag: "ADV"},
	'N': {tag: "ADVrel"},
	'O': {tag: "ADVint"},
	'P': {tag: "ADVneg"},
	'Q': {tag: "ADVint.neg"},
	'R': {tag: "PRE"},
	'S': {tag: "CONcoo"},
	'T': {tag: "CONsub"},
	'U': {tag: "INJ"},
	'#': {tag: "VERaux"},
	'0': {tag: ""},
}

// NounTag is the coarse tag of nouns.
const NounTag = "NOM"

// POSTag converts a one- or two-letter POS code. ok is false when the first
// letter is not in the table.
func POSTag(code string) (tag string, ok bool) {
	if code == "" {
		return "", true
	}
	e, ok := posTable[code[0]]
	if !ok {
		return "", false
	}
	tag = e.tag + e.suffix
	if e.sub != nil && len(code) > 1 {
		tag += e.sub[code[1]]
	}
	return tag, true
}
