package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mbarros/inquira/pkg/forms"
)

// evaluateCmd represents the evaluate command
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a form's rules against an answer set",
	Long:  `Reads a compiled form definition and an answer set from JSON files, then prints the final score and every triggered action.`,
	Run: func(cmd *cobra.Command, args []string) {
		formPath, _ := cmd.Flags().GetString("form")
		answersPath, _ := cmd.Flags().GetString("answers")

		var form forms.FormDefinition
		if err := readJSONFile(formPath, &form); err != nil {
			fmt.Printf("Error reading form: %v\n", err)
			os.Exit(1)
		}
		var answers map[string]any
		if err := readJSONFile(answersPath, &answers); err != nil {
			fmt.Printf("Error reading answers: %v\n", err)
			os.Exit(1)
		}

		score, actions := newService(cmd).Evaluate(form, answers)
		if actions == nil {
			actions = []forms.RuleAction{}
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]any{"score": score, "actions": actions}); err != nil {
			fmt.Printf("Error encoding result: %v\n", err)
			os.Exit(1)
		}
	},
}

func readJSONFile(path string, out any) error {
	if path == "" {
		return fmt.Errorf("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
	evaluateCmd.Flags().String("form", "", "Path to the compiled form definition JSON")
	evaluateCmd.Flags().String("answers", "", "Path to the answers JSON object")
	_ = evaluateCmd.MarkFlagRequired("form")
	_ = evaluateCmd.MarkFlagRequired("answers")
}
