package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lascivaroma/lasla-apn-converter/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import runs from JSON",
		Long:  "Import runs from JSON on stdin. Accepts one run or an array of runs as produced by export --json.",
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		exitErr("read stdin", err)
	}

	var runs []store.RunExport
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		var one store.RunExport
		if err := json.Unmarshal(trimmed, &one); err != nil {
			exitErr("parse json", err)
		}
		runs = append(runs, one)
	} else if err := json.Unmarshal(data, &runs); err != nil {
		exitErr("parse json", err)
	}

	cfg, _ := loadConfig()
	s, err := openStore(cfg)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	imported, err := s.Import(cmd.Context(), runs)
	if err != nil {
		exitErr("import", err)
	}

	fmt.Printf(`{"ok":true,"imported":%d}`+"\n", imported)
}
