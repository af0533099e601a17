package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/portrait"
	"github.com/aretw0/portrait/internal/presentation/tui"
	"github.com/aretw0/portrait/pkg/runner"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Walk the questionnaire in the terminal",
	Long: `Plays the questionnaire on standard input and output.
With --json every view is written as one JSON line and every input line is
read as a command, which makes the flow scriptable.`,
	Run: func(cmd *cobra.Command, args []string) {
		jsonMode, _ := cmd.Flags().GetBool("json")

		cfg, logger, err := loadConfig(cmd)
		exitOnError("invalid configuration", err)

		sm := runner.NewSignalManager()
		defer sm.Stop()

		a, err := newApp(sm.Context(), cfg, logger)
		exitOnError("failed to start", err)
		defer a.Close()

		interactive := !jsonMode && term.IsTerminal(int(os.Stdout.Fd()))
		opts := []runner.Option{
			runner.WithLogger(logger),
			runner.WithTexts(a.engine.Texts()),
			runner.WithLinks(a.links()),
			runner.WithHeadless(!interactive),
		}
		if jsonMode {
			opts = append(opts, runner.WithInputHandler(runner.NewJSONHandler(os.Stdin, os.Stdout)))
		}
		if interactive {
			tui.PrintBanner(os.Stdout, portrait.Version)
			if render, err := tui.NewRenderer(); err == nil {
				opts = append(opts, runner.WithRenderer(render))
			} else {
				logger.Warn("markdown rendering disabled", "err", err)
			}
		}

		err = runner.NewRunner(opts...).Run(sm.Context(), a.sessions)
		if err != nil {
			if sm.Interrupted() {
				fmt.Println("\nInterrupted.")
				return
			}
			exitOnError("session failed", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
}
