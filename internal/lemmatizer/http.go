package lemmatizer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lascivaroma/lasla-apn-converter/internal/dictionary"
)

// HTTP queries a Collatinus-style JSON API:
// GET {base}/api/lemmatize?form=<word>.
type HTTP struct {
	baseURL string
	client  *http.Client
}

type lemmatizeResponse struct {
	Form     string `json:"form"`
	Analyses []struct {
		Lemma struct {
			Key        string `json:"key"`
			Form       string `json:"form"`
			POS        string `json:"pos"`
			MorphoInfo string `json:"morpho_info"`
		} `json:"lemma"`
		Forms []struct {
			FormWithMarks     string `json:"form_with_marks"`
			MorphoDescription string `json:"morpho_description"`
		} `json:"forms"`
	} `json:"analyses"`
}

// NewHTTP creates a client for the server at baseURL.
func NewHTTP(baseURL string, timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTP{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (h *HTTP) Lemmatize(ctx context.Context, form string) ([]Analysis, error) {
	u := h.baseURL + "/api/lemmatize?form=" + url.QueryEscape(form)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lemmatizer request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("lemmatizer error %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var result lemmatizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode lemmatizer response: %w", err)
	}

	var out []Analysis
	for _, a := range result.Analyses {
		lemma := a.Lemma.Form
		if lemma == "" {
			lemma = a.Lemma.Key
		}
		pos := posTag(a.Lemma.POS)
		gender := dictionary.GenderNote(a.Lemma.MorphoInfo)
		for _, f := range a.Forms {
			out = append(out, Analysis{
				Lemma: strings.ToLower(lemma),
				POS:   pos,
				Morph: describe(f.MorphoDescription, gender),
			})
		}
	}
	return out, nil
}

var posTags = map[string]string{
	"noun":         "NOM",
	"verb":         "VER",
	"adjective":    "ADJ",
	"pronoun":      "PRO",
	"adverb":       "ADV",
	"conjunction":  "CON",
	"preposition":  "PRE",
	"interjection": "INJ",
	"exclamation":  "INJ",
	"numeral":      "ADJcar",
}

func posTag(name string) string {
	return posTags[strings.ToLower(name)]
}

// descriptionFeatures maps words of a French morpho description to features.
var descriptionFeatures = map[string]string{
	"nominatif":  "Case=Nom",
	"vocatif":    "Case=Voc",
	"accusatif":  "Case=Acc",
	"génitif":    "Case=Gen",
	"datif":      "Case=Dat",
	"ablatif":    "Case=Abl",
	"locatif":    "Case=Loc",
	"singulier":  "Numb=Sing",
	"pluriel":    "Numb=Plur",
	"positif":    "Deg=Pos",
	"comparatif": "Deg=Comp",
	"superlatif": "Deg=Sup",
	"indicatif":  "Mood=Ind",
	"subjonctif": "Mood=Sub",
	"impératif":  "Mood=Imp",
	"participe":  "Mood=Par",
	"infinitif":  "Mood=Inf",
	"gérondif":   "Mood=Ger",
	"adjectif":   "Mood=Adj",
	"supin":      "Mood=SupUm",
	"actif":      "Voice=Act",
	"passif":     "Voice=Pass",
	"masculin":   "Gend=Masc",
	"féminin":    "Gend=Fem",
	"neutre":     "Gend=Neut",
}

var noteFeatures = map[string]string{
	"m": "Gend=Masc",
	"f": "Gend=Fem",
	"n": "Gend=Neut",
	"c": "Gend=Com",
}

// describe converts a description such as "nominatif féminin singulier"
// into features. A gender note from the lemma applies when the
// description names no gender.
func describe(desc, genderNote string) string {
	var feats []string
	hasGender := false
	for _, w := range strings.Fields(strings.ToLower(desc)) {
		f, ok := descriptionFeatures[w]
		if !ok {
			continue
		}
		if strings.HasPrefix(f, "Gend=") {
			hasGender = true
		}
		feats = append(feats, f)
	}
	if !hasGender {
		if f, ok := noteFeatures[genderNote]; ok {
			feats = append(feats, f)
		}
	}
	return strings.Join(feats, "|")
}
