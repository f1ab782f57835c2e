package main

import (
	"os"

	"github.com/lascivaroma/lasla-apn-converter/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
