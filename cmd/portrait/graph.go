package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/portrait/internal/presentation/graph"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print a branch as a Mermaid flowchart",
	Long:  `Prints the questions of one branch and the options linking them as a Mermaid flowchart.`,
	Run: func(cmd *cobra.Command, args []string) {
		branch, _ := cmd.Flags().GetInt("branch")

		cfg, logger, err := loadConfig(cmd)
		exitOnError("invalid configuration", err)

		g, _, err := loadGraph(cmd.Context(), cfg, logger)
		exitOnError("failed to load", err)
		if !g.HasBranch(branch) {
			exitOnError("invalid flag", fmt.Errorf("branch %d not found", branch))
		}

		fmt.Println(graph.GenerateMermaid(g, branch, nil))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().IntP("branch", "b", 1, "Branch to draw")
}
