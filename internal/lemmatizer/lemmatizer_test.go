package lemmatizer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lascivaroma/lasla-apn-converter/internal/config"
)

const collatinusRosam = `{
  "form": "rosam",
  "analyses": [
    {
      "lemma": {"key": "rosa", "form": "rosa", "pos": "noun", "morpho_info": "-ae, f."},
      "forms": [{"form_with_marks": "rŏsăm", "morpho_description": "accusatif singulier", "morpho_index": 3}]
    }
  ]
}`

const collatinusAmare = `{
  "form": "amare",
  "analyses": [
    {
      "lemma": {"key": "amo", "form": "amo", "pos": "verb", "morpho_info": "as, are"},
      "forms": [
        {"form_with_marks": "ămārĕ", "morpho_description": "infinitif présent actif", "morpho_index": 120},
        {"form_with_marks": "ămārĕ", "morpho_description": "2ème singulier impératif présent passif", "morpho_index": 140}
      ]
    }
  ]
}`

func newCollatinus(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/lemmatize" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("form") {
		case "rosam":
			w.Write([]byte(collatinusRosam))
		case "amare":
			w.Write([]byte(collatinusAmare))
		case "boom":
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"broken"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"form":"x","analyses":[]}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTP_NounGenderFromMorphoInfo(t *testing.T) {
	srv := newCollatinus(t)
	h := NewHTTP(srv.URL+"/", time.Second)

	got, err := h.Lemmatize(context.Background(), "rosam")
	if err != nil {
		t.Fatalf("Lemmatize: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 analysis, got %d", len(got))
	}
	want := Analysis{Lemma: "rosa", POS: "NOM", Morph: "Case=Acc|Numb=Sing|Gend=Fem"}
	if got[0] != want {
		t.Errorf("expected %+v, got %+v", want, got[0])
	}
}

func TestHTTP_VerbReadings(t *testing.T) {
	srv := newCollatinus(t)
	h := NewHTTP(srv.URL, time.Second)

	got, err := h.Lemmatize(context.Background(), "amare")
	if err != nil {
		t.Fatalf("Lemmatize: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 analyses, got %d", len(got))
	}
	if got[0].POS != "VER" || got[0].Morph != "Mood=Inf|Voice=Act" {
		t.Errorf("unexpected first reading %+v", got[0])
	}
	if !strings.Contains(got[1].Morph, "Mood=Imp") {
		t.Errorf("expected imperative reading, got %q", got[1].Morph)
	}
}

func TestHTTP_NotFoundIsEmpty(t *testing.T) {
	srv := newCollatinus(t)
	got, err := NewHTTP(srv.URL, time.Second).Lemmatize(context.Background(), "qwerty")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no analyses, got %v", got)
	}
}

func TestHTTP_ServerError(t *testing.T) {
	srv := newCollatinus(t)
	_, err := NewHTTP(srv.URL, time.Second).Lemmatize(context.Background(), "boom")
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("expected status in error, got %v", err)
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		desc, note, want string
	}{
		{"nominatif singulier", "m", "Case=Nom|Numb=Sing|Gend=Masc"},
		{"nominatif féminin pluriel", "m", "Case=Nom|Gend=Fem|Numb=Plur"},
		{"infinitif présent actif", "", "Mood=Inf|Voice=Act"},
		{"", "", ""},
	}
	for _, tt := range tests {
		if got := describe(tt.desc, tt.note); got != tt.want {
			t.Errorf("describe(%q, %q) = %q, want %q", tt.desc, tt.note, got, tt.want)
		}
	}
}

func TestReadTable(t *testing.T) {
	data := "form\tlemma\tmorph\tpos\tindex\n" +
		"Rosa\tROSA\tCase=Nom|Numb=Sing\tNOM\t1\n" +
		"rosa\tROSA\tCase=Nom|Numb=Sing\tNOM\t1\n" +
		"rosa\tROSA\tCase=Abl|Numb=Sing\tNOM\t1\n" +
		"\n" +
		"est\tSVM_1\tMood=Ind\tVER\t2\n"

	tbl, err := ReadTable(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if len(tbl.forms) != 2 {
		t.Errorf("expected 2 forms, got %d", len(tbl.forms))
	}

	got, _ := tbl.Lemmatize(context.Background(), "ROSA")
	if len(got) != 2 {
		t.Fatalf("expected 2 readings for rosa, got %d", len(got))
	}

	got, _ = tbl.Lemmatize(context.Background(), "est")
	if len(got) != 1 || got[0].Lemma != "SVM" {
		t.Errorf("expected disambiguator stripped, got %+v", got)
	}
}

func TestNew(t *testing.T) {
	l, err := New(config.LemmatizerConfig{})
	if err != nil || l != nil {
		t.Errorf("expected disabled lemmatizer, got %v, %v", l, err)
	}

	if _, err := New(config.LemmatizerConfig{Provider: "pie"}); err == nil {
		t.Error("expected error for unknown provider")
	}

	path := filepath.Join(t.TempDir(), "table.tsv")
	if err := os.WriteFile(path, []byte("form\tlemma\tmorph\tpos\tindex\nrosa\tROSA\tCase=Nom\tNOM\t1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l, err = New(config.LemmatizerConfig{Provider: "table", Table: path})
	if err != nil {
		t.Fatalf("New table: %v", err)
	}
	if _, ok := l.(*Table); !ok {
		t.Errorf("expected *Table, got %T", l)
	}

	l, err = New(config.LemmatizerConfig{Provider: "http", URL: "http://localhost:1", Timeout: time.Second})
	if err != nil {
		t.Fatalf("New http: %v", err)
	}
	if _, ok := l.(*HTTP); !ok {
		t.Errorf("expected *HTTP, got %T", l)
	}
}
