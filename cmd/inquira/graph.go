package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mbarros/inquira/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [workflow]",
	Short: "Export the workflow graph visualization",
	Long:  `Loads a stored workflow and outputs a Mermaid diagram (graph TD) representing its branching logic.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		workflow := ""
		if len(args) > 0 {
			workflow = args[0]
		}

		svc := newService(cmd)
		snap, err := svc.Workflow(cmd.Context(), workflow)
		if err != nil {
			fmt.Printf("Error loading workflow: %v\n", err)
			os.Exit(1)
		}

		fmt.Print(graph.GenerateMermaid(snap.Graph, nil))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
