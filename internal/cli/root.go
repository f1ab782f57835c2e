// Package cli implements the lasla CLI commands.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lascivaroma/lasla-apn-converter/internal/config"
	"github.com/lascivaroma/lasla-apn-converter/internal/logging"
	"github.com/lascivaroma/lasla-apn-converter/internal/store"
)

var (
	dbPath     string
	configPath string
	logLevel   string
	logFormat  string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "lasla",
	Short: "Convert LASLA annotation files and align their lemmas",
	Long: "Converts LASLA APN/BPN annotation files into tab-separated tables and " +
		"aligns the noun lemmas they use with a gendered dictionary. Alignment runs are recorded in SQLite.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $LASLA_DB or ~/.lasla/runs.db)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	RootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json")
}

// loadConfig reads the config file and environment, then applies the
// persistent flags. It also installs the default logger.
func loadConfig() (*config.Config, *slog.Logger) {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitErr("load config", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	return cfg, logging.New(cfg.Log)
}

func getDBPath(cfg *config.Config) string {
	if dbPath != "" {
		return dbPath
	}
	if cfg != nil && cfg.Store.Path != "" {
		return cfg.Store.Path
	}
	if env := os.Getenv("LASLA_DB"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".lasla", "runs.db")
}

func openStore(cfg *config.Config) (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath(cfg))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
