package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lascivaroma/lasla-apn-converter/internal/align"
	"github.com/lascivaroma/lasla-apn-converter/internal/dictionary"
	"github.com/lascivaroma/lasla-apn-converter/internal/lemmatizer"
	"github.com/lascivaroma/lasla-apn-converter/internal/model"
	"github.com/lascivaroma/lasla-apn-converter/internal/store"
	"github.com/lascivaroma/lasla-apn-converter/internal/transcoder"
)

func init() {
	cmd := &cobra.Command{
		Use:   "align",
		Short: "Align noun lemmas with a gendered dictionary",
		Long: "Resolves every lemma of a lemma list (the _noun_lemma.txt written by transcode) against a " +
			"dictionary TSV, prints the summary as JSON and the unmatched lemmas on stderr, and records the run.",
		Run: runAlign,
	}

	cmd.Flags().String("dict", "", "Dictionary TSV with lemma, gen, upostag and src columns (required unless configured)")
	cmd.Flags().String("flat", "", "Flat |-delimited dictionary seeding secondary entries")
	cmd.Flags().StringP("lemmas", "l", transcoder.NounFileName, "Lemma list: one key or key<TAB>hint per line")
	cmd.Flags().String("lemmatizer", "", "Lemmatizer provider: none, table or http")
	cmd.Flags().String("lemmatizer-table", "", "Table file for the table lemmatizer")
	cmd.Flags().String("lemmatizer-url", "", "Base URL of the http lemmatizer")
	cmd.Flags().StringP("out", "o", "", "Write the lemma<TAB>gender result table to this file")
	cmd.Flags().Bool("no-record", false, "Do not record the run in the database")

	RootCmd.AddCommand(cmd)
}

func runAlign(cmd *cobra.Command, args []string) {
	cfg, log := loadConfig()

	dictPath, _ := cmd.Flags().GetString("dict")
	if dictPath == "" {
		dictPath = cfg.Align.Dictionary
	}
	if dictPath == "" {
		exitErr("align", fmt.Errorf("--dict is required"))
	}
	flatPath, _ := cmd.Flags().GetString("flat")
	if flatPath == "" {
		flatPath = cfg.Align.FlatDictionary
	}
	lemmasPath, _ := cmd.Flags().GetString("lemmas")
	outPath, _ := cmd.Flags().GetString("out")
	noRecord, _ := cmd.Flags().GetBool("no-record")

	lemCfg := cfg.Align.Lemmatizer
	if p, _ := cmd.Flags().GetString("lemmatizer"); p != "" {
		lemCfg.Provider = p
	}
	if p, _ := cmd.Flags().GetString("lemmatizer-table"); p != "" {
		lemCfg.Table = p
	}
	if u, _ := cmd.Flags().GetString("lemmatizer-url"); u != "" {
		lemCfg.URL = u
	}
	if err := lemCfg.Validate(); err != nil {
		exitErr("lemmatizer", err)
	}

	dict := dictionary.New()
	if err := dict.LoadTSV(dictPath); err != nil {
		exitErr("load dictionary", err)
	}
	if flatPath != "" {
		n, err := dict.LoadFlat(flatPath)
		if err != nil {
			exitErr("load flat dictionary", err)
		}
		log.Info("flat dictionary loaded", slog.String("path", flatPath), slog.Int("entries", n))
	}
	primary, secondary := dict.Len()
	log.Info("dictionary loaded",
		slog.String("path", dictPath),
		slog.Int("primary", primary),
		slog.Int("secondary", secondary),
	)

	lem, err := lemmatizer.New(lemCfg)
	if err != nil {
		exitErr("lemmatizer", err)
	}

	hints, err := align.ReadHints(lemmasPath)
	if err != nil {
		exitErr("read lemmas", err)
	}

	report, err := align.NewEngine(log, dict, lem).Align(cmd.Context(), hints)
	if err != nil {
		exitErr("align", err)
	}

	if outPath != "" {
		if err := align.WriteTableFile(outPath, report.Outcomes); err != nil {
			exitErr("write table", err)
		}
	}

	for _, key := range report.Unmatched() {
		fmt.Fprintln(cmd.ErrOrStderr(), key)
	}

	out := struct {
		RunID string `json:"run_id,omitempty"`
		align.Summary
	}{Summary: report.Summary()}

	if !noRecord {
		s, err := openStore(cfg)
		if err != nil {
			exitErr("open store", err)
		}
		defer s.Close()

		synthesized := make([]model.Outcome, len(report.Synthesized))
		for i, e := range report.Synthesized {
			synthesized[i] = model.Outcome{Key: e.Key, Gender: e.Gender, Provenance: e.Provenance}
		}
		run, err := s.SaveRun(cmd.Context(), store.SaveRunParams{
			Run:         *report.Run(absPath(lemmasPath), absPath(dictPath)),
			Outcomes:    report.Outcomes,
			Synthesized: synthesized,
		})
		if err != nil {
			exitErr("record run", err)
		}
		out.RunID = run.ID
	}

	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(b))
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
