package cli

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lascivaroma/lasla-apn-converter/internal/model"
	"github.com/lascivaroma/lasla-apn-converter/internal/morph"
)

func init() {
	cmd := &cobra.Command{
		Use:   "morphtable",
		Short: "Print the verb paradigm feature table",
		Long:  "Prints every number, mood, tense, voice and person combination as features<TAB>readable label.",
		Run:   runMorphTable,
	}

	cmd.Flags().Bool("bpn", false, "Use the extended BPN mood table")

	RootCmd.AddCommand(cmd)
}

func runMorphTable(cmd *cobra.Command, args []string) {
	v := model.Compact
	if bpn, _ := cmd.Flags().GetBool("bpn"); bpn {
		v = model.Extended
	}

	w := bufio.NewWriter(os.Stdout)
	for _, row := range morph.Paradigm(v) {
		fmt.Fprintf(w, "%s\t%s\n", row.Features, row.Readable)
	}
	if err := w.Flush(); err != nil {
		exitErr("morphtable", err)
	}
}
