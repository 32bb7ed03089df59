package forms

import "github.com/mbarros/inquira/pkg/domain"

// EvaluateOnAnswers evaluates the per-answer rules of a form against a
// completed answer set and returns every action of every matched rule, in
// rule declaration order, without deduplication.
func EvaluateOnAnswers(form FormDefinition, answers map[string]any) []RuleAction {
	var fired []RuleAction
	for _, rule := range form.Rules {
		if checkRule(rule, answers, nil) {
			fired = append(fired, rule.Actions...)
		}
	}
	return fired
}

// EvaluateOnFinalScore evaluates the final-score rules of a form against
// the aggregate score. Answers are available to mixed-trigger rules.
func EvaluateOnFinalScore(form FormDefinition, score float64, answers map[string]any) []RuleAction {
	var fired []RuleAction
	for _, rule := range form.FinalScoreRules {
		if checkRule(rule, answers, &score) {
			fired = append(fired, rule.Actions...)
		}
	}
	return fired
}

// checkRule combines the rule's trigger results under its policy:
// ALL requires every trigger true (vacuously true with no triggers),
// ANY (the default) at least one.
func checkRule(rule Rule, answers map[string]any, score *float64) bool {
	if rule.TriggerPolicy == domain.PolicyAll {
		for _, t := range rule.Triggers {
			if !checkTrigger(t, answers, score) {
				return false
			}
		}
		return true
	}
	for _, t := range rule.Triggers {
		if checkTrigger(t, answers, score) {
			return true
		}
	}
	return false
}

// checkTrigger applies the shared loose operator table to one trigger.
// Expression triggers carry an opaque predicate evaluated by an external
// sub-component; here they never match.
func checkTrigger(t RuleTrigger, answers map[string]any, score *float64) bool {
	switch t.Kind {
	case TriggerOnAnswer:
		return domain.Compare(t.Operator, answers[t.QuestionID], t.Value)
	case TriggerOnFinalScore:
		if score == nil {
			return false
		}
		if t.Operator == domain.OpBetween {
			return t.Range != nil && *score >= t.Range[0] && *score <= t.Range[1]
		}
		var threshold float64
		if t.Value != nil {
			threshold = domain.ToNumber(t.Value)
		}
		return domain.Compare(t.Operator, *score, threshold)
	default:
		return false
	}
}
