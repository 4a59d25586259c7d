// Package cli implements the command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/tldrgen/internal/config"
	"github.com/aidanlsb/tldrgen/internal/ui"
)

var (
	// Global flags
	configPath     string
	timeoutSeconds int

	// Resolved config
	cfg *config.Config
)

// errReported signals that the failure was already rendered (JSON envelope
// or summary block); Execute only needs to propagate the exit code.
var errReported = errors.New("reported")

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tldrgen",
	Short: "tldrgen - documentation and compliance tooling for TLDR-speaking CLIs",
	Long: `tldrgen introspects any CLI that implements the TLDR self-description
standard and turns the response into documentation artifacts, compliance
reports and dependency analytics.

The target CLI only needs to answer '<cli> --tldr' on stdout; both the v0.1
ASCII format and the v0.2 NDJSON format are detected automatically.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "completion", "help", "version":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		ui.ConfigureTheme(cfg.UI.Accent)
		ui.ConfigureMarkdownCodeTheme(cfg.UI.CodeTheme)
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output machine-readable JSON")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().IntVar(&timeoutSeconds, "timeout", 0, "Per-call probe timeout in seconds (overrides config)")
}
