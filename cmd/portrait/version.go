package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/portrait"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of portrait",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("portrait version %s\n", strings.TrimSpace(portrait.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
