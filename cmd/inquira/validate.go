package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mbarros/inquira/internal/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file-or-name>",
	Short: "Check a workflow graph for consistency",
	Long:  `Validates a graph file (JSON or YAML) or a stored workflow: dangling edges, duplicate question ids and condition edges without a matching condition are reported.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args[0]); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Graph is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// runValidate treats the argument as a file when it exists on disk, and as a
// stored workflow name otherwise.
func runValidate(cmd *cobra.Command, arg string) error {
	if _, err := os.Stat(arg); err == nil {
		graph, err := readGraphFile(arg)
		if err != nil {
			return fmt.Errorf("read graph: %w", err)
		}
		return validator.ValidateGraph(graph)
	}

	snap, err := newService(cmd).Workflow(cmd.Context(), arg)
	if err != nil {
		return err
	}
	return validator.ValidateGraph(snap.Graph)
}
