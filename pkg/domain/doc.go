// Package domain contains the questionnaire graph model: nodes, edges,
// conditions, and the per-run execution state.
//
// The graph is authored elsewhere (a visual designer, a YAML file) and is
// treated as an immutable snapshot by the engine. All runtime state lives in
// Run; nothing here mutates the graph.
package domain
