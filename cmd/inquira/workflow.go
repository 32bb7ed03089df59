package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mbarros/inquira/internal/validator"
	"github.com/mbarros/inquira/pkg/domain"
)

// workflowCmd groups workflow management subcommands.
var workflowCmd = &cobra.Command{
	Use:   "workflow",
	Short: "Manage stored workflows",
}

var workflowListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored workflows, most recent first",
	Run: func(cmd *cobra.Command, args []string) {
		snaps, err := newService(cmd).Workflows(cmd.Context())
		if err != nil {
			fmt.Printf("Error listing workflows: %v\n", err)
			os.Exit(1)
		}
		for _, snap := range snaps {
			fmt.Printf("%s\t%s\t%d nodes\n", snap.Name, snap.SavedAt.Format("2006-01-02 15:04:05"), len(snap.Graph.Nodes))
		}
	},
}

var workflowImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a workflow graph from a JSON or YAML file",
	Long:  `Reads a graph (or full snapshot) exported by the designer and stores it under the given name. The name defaults to the file basename.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]
		name, _ := cmd.Flags().GetString("name")
		formName, _ := cmd.Flags().GetString("form-name")
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}

		graph, err := readGraphFile(path)
		if err != nil {
			fmt.Printf("Error reading graph: %v\n", err)
			os.Exit(1)
		}

		if err := validator.ValidateGraph(graph); err != nil {
			fmt.Printf("Invalid graph: %v\n", err)
			os.Exit(1)
		}

		if err := newService(cmd).SaveWorkflow(cmd.Context(), name, graph, formName); err != nil {
			fmt.Printf("Error saving workflow: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Workflow %q saved (%d nodes, %d edges)\n", name, len(graph.Nodes), len(graph.Edges))
	},
}

var workflowDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored workflow",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := newService(cmd).DeleteWorkflow(cmd.Context(), args[0]); err != nil {
			fmt.Printf("Error deleting workflow: %v\n", err)
			os.Exit(1)
		}
	},
}

// readGraphFile accepts either a bare graph document or a full snapshot
// wrapper, in JSON or YAML depending on the file extension.
func readGraphFile(path string) (domain.GraphModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.GraphModel{}, err
	}

	unmarshal := json.Unmarshal
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".yaml" || ext == ".yml" {
		unmarshal = yaml.Unmarshal
	}

	var snap domain.WorkflowSnapshot
	if err := unmarshal(data, &snap); err == nil && len(snap.Graph.Nodes) > 0 {
		return snap.Graph, nil
	}

	var graph domain.GraphModel
	if err := unmarshal(data, &graph); err != nil {
		return domain.GraphModel{}, err
	}
	return graph, nil
}

func init() {
	rootCmd.AddCommand(workflowCmd)
	workflowCmd.AddCommand(workflowListCmd)
	workflowCmd.AddCommand(workflowImportCmd)
	workflowCmd.AddCommand(workflowDeleteCmd)

	workflowImportCmd.Flags().String("name", "", "Name to store the workflow under")
	workflowImportCmd.Flags().String("form-name", "", "Form name for the compiled output")
}
