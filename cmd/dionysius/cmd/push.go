package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archmagece/dionysius-go/internal/gitcmd"
	"github.com/archmagece/dionysius-go/pkg/collect"
	"github.com/archmagece/dionysius-go/pkg/dconfig"
	"github.com/archmagece/dionysius-go/pkg/drivers"
	"github.com/archmagece/dionysius-go/pkg/pattern"
	"github.com/archmagece/dionysius-go/pkg/tasks"
	"github.com/archmagece/dionysius-go/pkg/uiprint"
)

var (
	pushDir          string
	pushPreview      bool
	pushExecute      bool
	pushExcludeRaw   []string
	pushSearchHidden bool
)

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Collect and run push tasks for one handler kind",
}

func init() {
	rootCmd.AddCommand(pushCmd)

	pushCmd.PersistentFlags().StringVarP(&pushDir, "directory", "d", ".", "root directory to walk")
	pushCmd.PersistentFlags().BoolVarP(&pushPreview, "preview", "p", false, "print what would run, without running it")
	pushCmd.PersistentFlags().BoolVarP(&pushExecute, "execute", "e", false, "actually run the collected tasks")
	pushCmd.PersistentFlags().StringArrayVarP(&pushExcludeRaw, "exclude-pattern", "x", nil, "extra exclude pattern (borg pattern syntax), repeatable")
	pushCmd.PersistentFlags().BoolVarP(&pushSearchHidden, "search-hidden", "H", false, "also traverse dot-prefixed directories")

	pushCmd.AddCommand(
		&cobra.Command{Use: "git", Short: "Run the git save handler", RunE: runPush(dconfig.HandlerGit)},
		&cobra.Command{Use: "borg", Short: "Run the borg archive handler", RunE: runPush(dconfig.HandlerBorg)},
		&cobra.Command{Use: "trigger", Short: "Run the trigger handler", RunE: runPush(dconfig.HandlerTrigger)},
	)
}

func parseExcludePatterns(raw []string) ([]pattern.BorgPattern, error) {
	out := make([]pattern.BorgPattern, 0, len(raw))
	for _, s := range raw {
		p, err := pattern.ParseBorgPattern(s)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", s, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func runPush(handler dconfig.HandlerName) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if !pushPreview && !pushExecute {
			return fmt.Errorf("push: one of --preview or --execute is required")
		}

		extra, err := parseExcludePatterns(pushExcludeRaw)
		if err != nil {
			return err
		}

		gitExec := gitcmd.NewExecutor()
		opts := collect.Options{
			SearchHidden:         pushSearchHidden,
			ExtraExcludePatterns: extra,
			GitDriver:            drivers.NewGitExecutor(gitExec, uiprint.ConfirmUnsave),
			BorgDriver:           drivers.NewBorgExecutor(""),
			BorgOptions:          tasks.DefaultBorgCreateOptions(),
		}

		ctx := context.Background()
		collected, err := collect.Collect(ctx, pushDir, handler, opts)
		if err != nil {
			return fmt.Errorf("push: collecting tasks: %w", err)
		}

		printer := uiprint.NewPrinter()

		if pushPreview {
			printer.PrintHeader(fmt.Sprintf("Preview: %s push (%d tasks)", handler, len(collected)))
			for _, t := range collected {
				line, err := t.Preview()
				if err != nil {
					printer.PrintError(err.Error())
					continue
				}
				printer.PrintTask(line)
			}
		}

		if !pushExecute {
			return nil
		}

		if pushPreview {
			printer.PrintDivider()
		}
		printer.PrintHeader(fmt.Sprintf("Executing: %s push (%d tasks)", handler, len(collected)))

		var failed int
		for _, t := range collected {
			if err := t.Execute(ctx, nil); err != nil {
				printer.PrintError(err.Error())
				failed++
				continue
			}
			line, _ := t.Preview()
			printer.PrintSuccess(line)
		}
		if failed > 0 {
			return fmt.Errorf("push: %d of %d tasks failed", failed, len(collected))
		}
		return nil
	}
}
