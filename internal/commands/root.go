package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yqhr/mfrecon/internal/buildinfo"
	"github.com/yqhr/mfrecon/internal/config"
)

// configFile is the project configuration file name.
const configFile = "mfrecon.yaml"

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "mfrecon",
		Short:   "Reconcile refunds against expenses in MoneyForward CSV exports",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newReconcileCommand())
	rootCmd.AddCommand(newSummaryCommand())

	return rootCmd
}

// loadConfig reads <root>/mfrecon.yaml, falling back to defaults when the
// file does not exist.
func loadConfig(root string) (*config.Config, error) {
	path := filepath.Join(root, configFile)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return config.Load(path)
}
