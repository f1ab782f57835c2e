package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lascivaroma/lasla-apn-converter/internal/model"
	"github.com/lascivaroma/lasla-apn-converter/internal/transcoder"
)

func init() {
	cmd := &cobra.Command{
		Use:   "transcode <source> <output>",
		Short: "Convert APN/BPN files into TSV tables",
		Long: "Converts one annotation file, or every *.APN (*.BPN with --bpn) file of a directory, into " +
			"form/lemma/morph/pos tables. Writes _error.txt, _lemma.txt and _noun_lemma.txt into the output directory.",
		Args: cobra.ExactArgs(2),
		Run:  runTranscode,
	}

	cmd.Flags().Bool("bpn", false, "Read the extended BPN layout")
	cmd.Flags().IntP("workers", "w", 0, "Files converted in parallel (default from config)")
	cmd.Flags().Bool("raw-morph", false, "Keep raw morph and POS codes")
	cmd.Flags().Bool("no-disambiguation", false, "Drop the lemma disambiguator from the output")
	cmd.Flags().Bool("lowercase", false, "Lowercase output lemmas")

	RootCmd.AddCommand(cmd)
}

func runTranscode(cmd *cobra.Command, args []string) {
	cfg, log := loadConfig()
	source, outDir := args[0], args[1]

	opts, workers := transcodeOptions(cmd, cfg.Transcode.Variant, cfg.Transcode.Workers)
	if !cmd.Flags().Changed("raw-morph") {
		opts.RawMorph = cfg.Transcode.RawMorph
	}
	if !cmd.Flags().Changed("no-disambiguation") {
		opts.NoDisambiguation = cfg.Transcode.NoDisambiguation
	}
	if !cmd.Flags().Changed("lowercase") {
		opts.Lowercase = cfg.Transcode.Lowercase
	}

	paths, err := transcoder.Discover(source, opts.Variant)
	if err != nil {
		exitErr("discover", err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		exitErr("create output dir", err)
	}
	if err := transcoder.ResetErrorLog(outDir); err != nil {
		exitErr("transcode", err)
	}

	t := transcoder.New(log, opts)
	results, err := t.RunAll(cmd.Context(), paths, workers)
	if err != nil {
		exitErr("transcode", err)
	}
	for _, res := range results {
		if err := transcoder.WriteResult(outDir, res, opts.Variant); err != nil {
			exitErr("write result", err)
		}
	}

	corpus := transcoder.Merge(results)
	if err := transcoder.WriteLemmaFiles(outDir, corpus); err != nil {
		exitErr("write lemma files", err)
	}

	log.Info("transcoding finished",
		slog.Int("files", len(results)),
		slog.Int("rows", corpus.Rows),
		slog.Int("errors", corpus.Errors),
		slog.Int("lemmas", len(corpus.Lemmas)),
		slog.Int("nouns", len(corpus.Nouns)),
	)

	fmt.Fprintln(cmd.ErrOrStderr(), corpus.CompositeReport())

	b, _ := json.MarshalIndent(map[string]any{
		"files":      len(results),
		"rows":       corpus.Rows,
		"errors":     corpus.Errors,
		"lemmas":     len(corpus.Lemmas),
		"nouns":      len(corpus.Nouns),
		"composites": len(corpus.Composites),
		"output":     outDir,
	}, "", "  ")
	fmt.Println(string(b))
}

// transcodeOptions resolves the variant and worker count from flags, falling
// back to the configured values.
func transcodeOptions(cmd *cobra.Command, variant string, workers int) (transcoder.Options, int) {
	v, err := model.ParseVariant(variant)
	if err != nil {
		exitErr("variant", err)
	}
	if bpn, _ := cmd.Flags().GetBool("bpn"); bpn {
		v = model.Extended
	}
	if w, _ := cmd.Flags().GetInt("workers"); w > 0 {
		workers = w
	}

	raw, _ := cmd.Flags().GetBool("raw-morph")
	noDis, _ := cmd.Flags().GetBool("no-disambiguation")
	lower, _ := cmd.Flags().GetBool("lowercase")
	return transcoder.Options{
		Variant:          v,
		RawMorph:         raw,
		NoDisambiguation: noDis,
		Lowercase:        lower,
	}, workers
}
