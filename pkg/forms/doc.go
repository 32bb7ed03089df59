// Package forms defines the compiled form artifact (FormDefinition with its
// flat trigger/action rules), the score resolver and the one-shot rule
// trigger evaluator that runs after a questionnaire completes.
//
// The shape of FormDefinition is the hand-off contract to downstream
// submission and alerting systems and is kept stable field for field.
package forms
