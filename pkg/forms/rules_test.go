package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mbarros/inquira/pkg/domain"
)

func alert(code string) RuleAction {
	return RuleAction{Type: domain.ActionEmitAlert, AlertCode: code}
}

func TestEvaluateOnAnswers(t *testing.T) {
	form := FormDefinition{
		Rules: []Rule{
			{
				ID:       "r1",
				Triggers: []RuleTrigger{{Kind: TriggerOnAnswer, QuestionID: "q1", Operator: domain.OpEqual, Value: "sim"}},
				Actions:  []RuleAction{alert("A1")},
			},
			{
				ID:       "r2",
				Triggers: []RuleTrigger{{Kind: TriggerOnAnswer, QuestionID: "q2", Operator: domain.OpGreater, Value: 5}},
				Actions:  []RuleAction{alert("A2"), alert("A3")},
			},
		},
	}

	fired := EvaluateOnAnswers(form, map[string]any{"q1": "sim", "q2": 3})
	assert.Equal(t, []RuleAction{alert("A1")}, fired)

	fired = EvaluateOnAnswers(form, map[string]any{"q1": "nao", "q2": "7"})
	assert.Equal(t, []RuleAction{alert("A2"), alert("A3")}, fired, "numeric strings satisfy ordering triggers")
}

func TestTriggerPolicy(t *testing.T) {
	rule := Rule{
		ID: "r1",
		Triggers: []RuleTrigger{
			{Kind: TriggerOnAnswer, QuestionID: "q1", Operator: domain.OpEqual, Value: "sim"},
			{Kind: TriggerOnAnswer, QuestionID: "q2", Operator: domain.OpEqual, Value: "sim"},
		},
		Actions: []RuleAction{alert("A")},
	}

	oneOfTwo := map[string]any{"q1": "sim", "q2": "nao"}

	rule.TriggerPolicy = domain.PolicyAll
	form := FormDefinition{Rules: []Rule{rule}}
	assert.Empty(t, EvaluateOnAnswers(form, oneOfTwo), "ALL requires every trigger")

	rule.TriggerPolicy = domain.PolicyAny
	form = FormDefinition{Rules: []Rule{rule}}
	assert.Len(t, EvaluateOnAnswers(form, oneOfTwo), 1)

	rule.TriggerPolicy = ""
	form = FormDefinition{Rules: []Rule{rule}}
	assert.Len(t, EvaluateOnAnswers(form, oneOfTwo), 1, "empty policy defaults to ANY")
}

func TestRuleWithoutTriggers(t *testing.T) {
	rule := Rule{ID: "r1", Actions: []RuleAction{alert("A")}}

	form := FormDefinition{Rules: []Rule{rule}}
	assert.Empty(t, EvaluateOnAnswers(form, map[string]any{"q1": "sim"}), "ANY over no triggers matches nothing")

	rule.TriggerPolicy = domain.PolicyAll
	form = FormDefinition{Rules: []Rule{rule}}
	assert.Len(t, EvaluateOnAnswers(form, map[string]any{"q1": "sim"}), 1, "ALL over no triggers is vacuously true")
}

func TestEvaluateOnFinalScore(t *testing.T) {
	form := FormDefinition{
		FinalScoreRules: []Rule{
			{
				ID:       "ge10",
				Triggers: []RuleTrigger{{Kind: TriggerOnFinalScore, Operator: domain.OpGreaterEqual, Value: 10}},
				Actions:  []RuleAction{alert("HIGH")},
			},
			{
				ID:       "lt5",
				Triggers: []RuleTrigger{{Kind: TriggerOnFinalScore, Operator: domain.OpLess, Value: 5}},
				Actions:  []RuleAction{alert("LOW")},
			},
		},
	}

	assert.Equal(t, []RuleAction{alert("HIGH")}, EvaluateOnFinalScore(form, 12, nil))
	assert.Equal(t, []RuleAction{alert("LOW")}, EvaluateOnFinalScore(form, 3, nil))
	assert.Empty(t, EvaluateOnFinalScore(form, 7, nil))
}

func TestBetweenTriggerInclusive(t *testing.T) {
	form := FormDefinition{
		FinalScoreRules: []Rule{
			{
				ID:       "band",
				Triggers: []RuleTrigger{{Kind: TriggerOnFinalScore, Operator: domain.OpBetween, Range: &[2]float64{10, 20}}},
				Actions:  []RuleAction{alert("BAND")},
			},
		},
	}

	assert.Len(t, EvaluateOnFinalScore(form, 15, nil), 1)
	assert.Len(t, EvaluateOnFinalScore(form, 10, nil), 1, "lower bound inclusive")
	assert.Len(t, EvaluateOnFinalScore(form, 20, nil), 1, "upper bound inclusive")
	assert.Empty(t, EvaluateOnFinalScore(form, 9, nil))
	assert.Empty(t, EvaluateOnFinalScore(form, 21, nil))
}

func TestBetweenWithoutRangeNeverFires(t *testing.T) {
	form := FormDefinition{
		FinalScoreRules: []Rule{
			{
				ID:       "broken",
				Triggers: []RuleTrigger{{Kind: TriggerOnFinalScore, Operator: domain.OpBetween}},
				Actions:  []RuleAction{alert("X")},
			},
		},
	}
	assert.Empty(t, EvaluateOnFinalScore(form, 15, nil))
}

func TestActionsNotDeduplicated(t *testing.T) {
	form := FormDefinition{
		Rules: []Rule{
			{
				ID:       "r1",
				Triggers: []RuleTrigger{{Kind: TriggerOnAnswer, QuestionID: "q1", Operator: domain.OpEqual, Value: "sim"}},
				Actions:  []RuleAction{alert("SAME")},
			},
			{
				ID:       "r2",
				Triggers: []RuleTrigger{{Kind: TriggerOnAnswer, QuestionID: "q1", Operator: domain.OpEqual, Value: "sim"}},
				Actions:  []RuleAction{alert("SAME")},
			},
		},
	}

	fired := EvaluateOnAnswers(form, map[string]any{"q1": "sim"})
	assert.Len(t, fired, 2, "matched rules fire all their actions, duplicates included")
}

func TestExpressionTriggerNeverMatches(t *testing.T) {
	form := FormDefinition{
		Rules: []Rule{
			{
				ID:       "expr",
				Triggers: []RuleTrigger{{Kind: TriggerOnExpression, Expression: "$q1 == 'sim'"}},
				Actions:  []RuleAction{alert("X")},
			},
		},
	}
	assert.Empty(t, EvaluateOnAnswers(form, map[string]any{"q1": "sim"}))
}
