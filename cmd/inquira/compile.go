package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mbarros/inquira/pkg/forms"
)

// compileCmd represents the compile command
var compileCmd = &cobra.Command{
	Use:   "compile [workflow]",
	Short: "Compile a workflow graph into a form definition",
	Long:  `Flattens a stored workflow into its form definition: the question list plus per-answer and final-score rules, as JSON on stdout.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		workflow := ""
		if len(args) > 0 {
			workflow = args[0]
		}
		formName, _ := cmd.Flags().GetString("name")

		svc := newService(cmd)
		form, err := svc.Compile(cmd.Context(), workflow, forms.FormDefinition{Name: formName})
		if err != nil {
			fmt.Printf("Error compiling workflow: %v\n", err)
			os.Exit(1)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(form); err != nil {
			fmt.Printf("Error encoding form: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().String("name", "", "Form name override")
}
