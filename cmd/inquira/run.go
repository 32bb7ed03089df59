package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mbarros/inquira/internal/cli"
	"github.com/mbarros/inquira/internal/presentation/tui"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [workflow]",
	Short: "Run a questionnaire interactively",
	Long:  `Walks a stored workflow question by question, following its branching. Without an argument the most recently saved workflow is used.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		workflow := ""
		if len(args) > 0 {
			workflow = args[0]
		}
		jsonMode, _ := cmd.Flags().GetBool("json")

		if !jsonMode {
			tui.PrintBanner()
		}

		session := cli.NewSession(newService(cmd), os.Stdin, os.Stdout, jsonMode)
		if err := session.Run(cmd.Context(), workflow); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")

	// Make 'run' the default when no command is provided.
	rootCmd.Run = runCmd.Run
}
