package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "portrait",
	Short: "Portrait is a branching questionnaire served over Telegram",
	Long: `Portrait walks users through a question graph loaded from CSV or YAML
and answers with a personal portrait. The same engine can be played in the
terminal, served over HTTP or exposed to agents through MCP.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to the YAML config file (default portrait.yaml)")
	rootCmd.PersistentFlags().String("env-file", "", "Path to the .env file (default .env)")
	rootCmd.PersistentFlags().String("log-level", "", "Override the configured log level")
}

func exitOnError(msg string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}
