// Package cmd implements the dionysius CLI commands.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/archmagece/dionysius-go/internal/diag"
	"github.com/archmagece/dionysius-go/pkg/cliutil"
)

var (
	appVersion string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "dionysius",
	Short: "Directory-tree-driven backup and trigger orchestration",
	Long: `dionysius walks a directory tree of dionysius.toml files and runs the
git save, borg archive, and trigger tasks it finds.
` + cliutil.QuickStartHelp(`  # Preview what a git push run would do
  dionysius push git -d . --preview

  # Actually run it
  dionysius push git -d . --execute

  # Inspect a config file after default-filling
  dionysius conf -i ./dionysius.toml`),
	Version:       appVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and runs it.
// Called once by main.main().
func Execute(version string) {
	appVersion = version
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostic logging")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose {
			diag.SetLevel(slog.LevelDebug)
		}
	}
}
