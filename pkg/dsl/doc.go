/*
Package dsl provides a fluent Go builder for constructing workflow graphs
programmatically, as an alternative to importing designer-exported JSON or
YAML files. This is particularly useful for dynamic graph generation, unit
testing, and leveraging IDE autocompletion and type checking.

Example usage:

	package main

	import (
		"github.com/mbarros/inquira/pkg/dsl"
	)

	func main() {
		b := dsl.New()

		b.Question("n1").ID("q1").Boolean().Label("Sente dor?").To("c1")
		b.Question("n2").SingleChoice().Label("Qual a intensidade?").
			ScoredOption("leve", "Leve", 1).
			ScoredOption("grave", "Grave", 5)
		b.Question("n3").Label("Observações")

		b.Condition("c1").
			WhenQuestion("cond-pain", "q1", "==", true).
			Then("cond-pain", "n2").
			Then("cond-pain", "a1").
			Else("n3")

		b.Action("a1").EmitAlert("DOR")

		graph, err := b.Build()
		// ... save the graph through an inquira.Service
		_ = graph
		_ = err
	}
*/
package dsl
