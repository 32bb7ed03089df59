/*
Package inquira is a form logic engine: it walks branching questionnaire
graphs interactively, compiles them into flat form definitions and evaluates
rule triggers over completed answer sets.

It separates the authored graph (Logic) from run state (Answers) and
side-effects (Actions). The engine manages traversal, answer normalization
and scoring, while your application ("Host") manages the I/O and executes
the actions the rules select. This hexagonal layout lets Inquira be embedded
in any interface: CLI, HTTP server, or batch pipeline.

# Concept

A workflow is a directed graph of question, condition, action, score gate
and end nodes. During a run the engine resolves the next question after each
answer by scanning the current node's outgoing edges: condition nodes route
through the edge carrying the first true condition's id, with a fallback
edge for the false path. The same graph compiles into a FormDefinition whose
rules fire on answers or on the final score.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/mbarros/inquira"
	)

	func main() {
		svc := inquira.New()

		ctx := context.Background()
		if err := svc.SaveWorkflow(ctx, "triagem", graph, "Triagem"); err != nil {
			log.Fatal(err)
		}

		run, err := svc.StartRun(ctx, "triagem")
		if err != nil {
			log.Fatal(err)
		}

		run, err = svc.Answer(ctx, run.ID, "sim")
		if err != nil {
			log.Fatal(err)
		}

		resp, err := svc.Finish(ctx, run.ID)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("score=%v actions=%d", resp.Score, len(resp.TriggeredActions))
	}

Persistence is pluggable through the ports package: in-memory by default,
with filesystem and Redis adapters under pkg/adapters.
*/
package inquira
