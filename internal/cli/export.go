package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lascivaroma/lasla-apn-converter/internal/align"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export <run-id>",
		Short: "Export a recorded run",
		Long:  "Writes the lemma<TAB>gender table of a run's matched lemmas, or the whole run as JSON with --json.",
		Args:  cobra.ExactArgs(1),
		Run:   runExport,
	}

	cmd.Flags().Bool("json", false, "Export the run with all outcomes as JSON (readable by import)")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	asJSON, _ := cmd.Flags().GetBool("json")

	cfg, _ := loadConfig()
	s, err := openStore(cfg)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	exp, err := s.ExportRun(cmd.Context(), args[0])
	if err != nil {
		exitErr("export", err)
	}

	if asJSON {
		b, _ := json.MarshalIndent(exp, "", "  ")
		fmt.Println(string(b))
		return
	}

	if err := align.WriteTable(os.Stdout, exp.Outcomes); err != nil {
		exitErr("export", err)
	}
}
