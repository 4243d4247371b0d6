// Command photofix resizes and recompresses photos for exam upload forms
// from the command line.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/photo-fixer/internal/profiles"
	"github.com/JaimeStill/photo-fixer/pkg/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "photofix",
		Short:         "Fit photos to exam upload dimensions and file-size limits",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("catalog", "", "Catalog file (.toml, .yaml, .json) merged over the built-in exam profiles")
	root.PersistentFlags().BoolP("verbose", "v", false, "Log each encoding attempt to stderr")

	root.AddCommand(newFixCmd(), newProfilesCmd(), newIdentifyCmd())
	return root
}

// Logging is off unless --verbose or PHOTOFIX_LOG_LEVEL is set. Records go to stderr.
const (
	EnvLogLevel  = "PHOTOFIX_LOG_LEVEL"
	EnvLogFormat = "PHOTOFIX_LOG_FORMAT"
)

var loggingEnv = &logging.Env{Level: EnvLogLevel, Format: EnvLogFormat}

func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose && os.Getenv(EnvLogLevel) == "" {
		return logging.Discard(), nil
	}

	cfg := &logging.Config{}
	if err := cfg.Finalize(loggingEnv); err != nil {
		return nil, err
	}
	if verbose {
		cfg.Level = logging.LevelDebug
	}
	return logging.NewWriter(cfg, cmd.ErrOrStderr()), nil
}

func loadCatalog(cmd *cobra.Command, logger *slog.Logger) (*profiles.Catalog, error) {
	file, _ := cmd.Flags().GetString("catalog")
	return profiles.NewCatalog(profiles.CatalogOptions{File: file}, logger)
}

func printf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
