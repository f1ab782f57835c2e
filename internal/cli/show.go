package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lascivaroma/lasla-apn-converter/internal/model"
	"github.com/lascivaroma/lasla-apn-converter/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show a recorded run and its outcomes",
		Long:  "Shows a run and its outcomes. The id may be abbreviated to any unique prefix.",
		Args:  cobra.ExactArgs(1),
		Run:   runShow,
	}

	cmd.Flags().Bool("unmatched", false, "Only show unmatched lemmas")
	cmd.Flags().StringP("provenance", "p", "", "Only show outcomes with this provenance")
	cmd.Flags().Bool("synthesized", false, "Include the entries synthesized during the run")

	RootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) {
	unmatched, _ := cmd.Flags().GetBool("unmatched")
	provenance, _ := cmd.Flags().GetString("provenance")
	withSynth, _ := cmd.Flags().GetBool("synthesized")

	cfg, _ := loadConfig()
	s, err := openStore(cfg)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	run, err := s.GetRun(cmd.Context(), args[0])
	if err != nil {
		exitErr("show", err)
	}

	outcomes, err := s.Outcomes(cmd.Context(), store.OutcomesParams{
		RunID:      run.ID,
		Unmatched:  unmatched,
		Provenance: provenance,
	})
	if err != nil {
		exitErr("outcomes", err)
	}

	out := struct {
		*model.Run
		Outcomes    []model.Outcome `json:"outcomes"`
		Synthesized []model.Outcome `json:"synthesized_entries,omitempty"`
	}{Run: run, Outcomes: outcomes}

	if withSynth {
		out.Synthesized, err = s.Synthesized(cmd.Context(), run.ID)
		if err != nil {
			exitErr("synthesized", err)
		}
	}

	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(b))
}
