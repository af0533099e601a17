package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/portrait/internal/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the question graph for broken links",
	Long:  `Loads the questions and texts and walks every branch, reporting broken links, dead ends and unreachable questions.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger, err := loadConfig(cmd)
		exitOnError("invalid configuration", err)

		graph, _, err := loadGraph(cmd.Context(), cfg, logger)
		exitOnError("failed to load", err)

		report := validator.Check(graph, cfg.EntryBranches)
		for _, w := range report.Warnings {
			fmt.Printf("warning: %s\n", w)
		}
		if err := report.Err(); err != nil {
			fmt.Printf("Graph is invalid: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Graph is valid! ✅ (%d questions in %d branches)\n", graph.Len(), len(graph.Branches()))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
