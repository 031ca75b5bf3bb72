package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archmagece/dionysius-go/pkg/dconfig"
)

var confInputFile string

var confCmd = &cobra.Command{
	Use:   "conf",
	Short: "Inspect a dionysius.toml after default-filling",
	RunE:  runConf,
}

func init() {
	rootCmd.AddCommand(confCmd)
	confCmd.Flags().StringVarP(&confInputFile, "input", "i", "", "dionysius.toml file to load and complete")
	confCmd.MarkFlagRequired("input")
}

func runConf(cmd *cobra.Command, args []string) error {
	cfg, err := dconfig.Load(confInputFile)
	if err != nil {
		return fmt.Errorf("conf: %w", err)
	}
	dump, err := dconfig.DebugDump(cfg)
	if err != nil {
		return fmt.Errorf("conf: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), dump)
	return nil
}
