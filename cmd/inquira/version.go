package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mbarros/inquira"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of inquira",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("inquira version %s\n", strings.TrimSpace(inquira.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
