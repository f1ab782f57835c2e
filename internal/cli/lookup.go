package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lascivaroma/lasla-apn-converter/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "lookup <lemma>",
		Short: "Find a lemma's outcomes across recorded runs",
		Args:  cobra.ExactArgs(1),
		Run:   runLookup,
	}

	cmd.Flags().StringP("provenance", "p", "", "Filter by provenance")
	cmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

func runLookup(cmd *cobra.Command, args []string) {
	provenance, _ := cmd.Flags().GetString("provenance")
	limit, _ := cmd.Flags().GetInt("limit")

	cfg, _ := loadConfig()
	s, err := openStore(cfg)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	results, err := s.Lookup(cmd.Context(), store.LookupParams{
		Query:      args[0],
		Provenance: provenance,
		Limit:      limit,
	})
	if err != nil {
		exitErr("lookup", err)
	}

	b, _ := json.MarshalIndent(results, "", "  ")
	fmt.Println(string(b))
}
