// Package compiler flattens a questionnaire graph into a FormDefinition:
// the question list plus per-answer and final-score rules. The transform is
// pure and one-shot; it never mutates the graph and performs no I/O.
package compiler

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mbarros/inquira/pkg/domain"
	"github.com/mbarros/inquira/pkg/forms"
)

// ToFormDefinition compiles a graph into a form. Zero fields of base are
// filled with defaults (fresh id, version 1, draft status, sum scoring);
// UpdatedAt is always stamped with the compile time.
//
// Rules referencing missing nodes are dropped entirely rather than emitted
// partially: a per-answer rule needs both an incoming question node and at
// least one connected action node.
func ToFormDefinition(graph domain.GraphModel, base forms.FormDefinition) forms.FormDefinition {
	form := applyDefaults(base)

	for _, node := range graph.NodesByKind(domain.NodeKindQuestion) {
		data, err := node.QuestionData()
		if err != nil {
			continue
		}
		form.Questions = append(form.Questions, forms.QuestionFromData(data))
	}

	form.Rules = append(form.Rules, answerRules(graph)...)
	form.FinalScoreRules = append(form.FinalScoreRules, scoreGateRules(graph)...)
	form.FinalScoreRules = append(form.FinalScoreRules, endNodeRules(graph)...)

	return form
}

// answerRules emits one rule per condition node, using its first condition
// only: the incoming question node is the trigger subject and the directly
// connected action nodes are the consequents.
func answerRules(graph domain.GraphModel) []forms.Rule {
	var rules []forms.Rule
	for _, node := range graph.NodesByKind(domain.NodeKindCondition) {
		data, err := node.ConditionData()
		if err != nil || len(data.Conditions) == 0 {
			continue
		}
		first := data.Conditions[0]

		source, ok := incomingQuestion(graph, node.ID)
		if !ok {
			continue
		}
		actions := connectedActions(graph, node.ID, "")
		if len(actions) == 0 {
			continue
		}

		var trigger forms.RuleTrigger
		if data.ConditionType == domain.ConditionExpression {
			trigger = forms.RuleTrigger{Kind: forms.TriggerOnExpression, Expression: first.Expression}
		} else {
			op := first.Operator
			if op == "" {
				op = domain.OpEqual
			}
			// The comparand is the fixed right-hand term; older designer
			// exports carry it in the flat value field instead.
			value := first.CompareValue
			if value == nil {
				value = first.Value
			}
			trigger = forms.RuleTrigger{
				Kind:       forms.TriggerOnAnswer,
				QuestionID: source.ID,
				Operator:   op,
				Value:      value,
			}
		}

		policy := data.Policy
		if policy == "" {
			policy = domain.PolicyAny
		}

		rules = append(rules, forms.Rule{
			ID:            uuid.NewString(),
			Name:          "Rule " + node.ID,
			Triggers:      []forms.RuleTrigger{trigger},
			TriggerPolicy: policy,
			Actions:       actions,
		})
	}
	return rules
}

// scoreGateRules emits one final-score rule per score gate node. Gate
// actions always degrade to alerts; the alert code comes from the action
// params when present.
func scoreGateRules(graph domain.GraphModel) []forms.Rule {
	var rules []forms.Rule
	for _, node := range graph.NodesByKind(domain.NodeKindScoreGate) {
		data, err := node.ScoreGateData()
		if err != nil {
			continue
		}
		op := data.Operator
		if op == "" {
			op = domain.OpGreaterEqual
		}

		var actions []forms.RuleAction
		for _, target := range actionTargets(graph, node.ID, "") {
			actions = append(actions, forms.RuleAction{
				Type:      domain.ActionEmitAlert,
				AlertCode: target.StringParam("alertCode", "SCORE_TRIGGER"),
			})
		}
		if len(actions) == 0 {
			continue
		}

		rules = append(rules, forms.Rule{
			ID:       uuid.NewString(),
			Name:     "ScoreGate " + node.ID,
			Triggers: []forms.RuleTrigger{{Kind: forms.TriggerOnFinalScore, Operator: op, Value: data.Value}},
			Actions:  actions,
		})
	}
	return rules
}

// endNodeRules emits one final-score rule per named score condition of
// every end node. Each condition is wired to its own action set through the
// edges carrying its id; a "between" condition emits a range instead of a
// value.
func endNodeRules(graph domain.GraphModel) []forms.Rule {
	var rules []forms.Rule
	for _, node := range graph.NodesByKind(domain.NodeKindEnd) {
		data, err := node.EndData()
		if err != nil {
			continue
		}
		for i, cond := range data.Conditions {
			actions := connectedActions(graph, node.ID, cond.ID)
			if len(actions) == 0 {
				continue
			}

			var trigger forms.RuleTrigger
			if cond.Operator == domain.OpBetween {
				trigger = forms.RuleTrigger{Kind: forms.TriggerOnFinalScore, Operator: domain.OpBetween, Range: cond.Range}
			} else {
				op := cond.Operator
				if op == "" {
					op = domain.OpGreaterEqual
				}
				trigger = forms.RuleTrigger{Kind: forms.TriggerOnFinalScore, Operator: op, Value: cond.Value}
			}

			rules = append(rules, forms.Rule{
				ID:       uuid.NewString(),
				Name:     fmt.Sprintf("EndScore %s #%d", node.ID, i+1),
				Triggers: []forms.RuleTrigger{trigger},
				Actions:  actions,
			})
		}
	}
	return rules
}

// incomingQuestion finds the first question node with an edge into nodeID.
func incomingQuestion(graph domain.GraphModel, nodeID string) (domain.QuestionData, bool) {
	for _, edge := range graph.EdgesTo(nodeID) {
		source, ok := graph.NodeByID(edge.From)
		if !ok || source.Kind != domain.NodeKindQuestion {
			continue
		}
		data, err := source.QuestionData()
		if err != nil {
			continue
		}
		return data, true
	}
	return domain.QuestionData{}, false
}

// actionTargets returns the decoded action nodes reachable over the node's
// outgoing edges, optionally restricted to edges carrying conditionID.
func actionTargets(graph domain.GraphModel, nodeID, conditionID string) []domain.ActionData {
	var out []domain.ActionData
	for _, edge := range graph.EdgesFrom(nodeID) {
		if conditionID != "" && edge.ConditionID != conditionID {
			continue
		}
		target, ok := graph.NodeByID(edge.To)
		if !ok || target.Kind != domain.NodeKindAction {
			continue
		}
		data, err := target.ActionData()
		if err != nil {
			continue
		}
		out = append(out, data)
	}
	return out
}

// connectedActions maps the node's connected action nodes to rule actions.
func connectedActions(graph domain.GraphModel, nodeID, conditionID string) []forms.RuleAction {
	var out []forms.RuleAction
	for _, data := range actionTargets(graph, nodeID, conditionID) {
		out = append(out, mapAction(data))
	}
	return out
}

// mapAction is the fixed switch from action node kinds to rule action
// variants. Unrecognized kinds degrade to a sentinel alert so that every
// action-connected rule keeps at least one action.
func mapAction(a domain.ActionData) forms.RuleAction {
	switch a.Type {
	case domain.ActionOpenForm:
		return forms.RuleAction{Type: domain.ActionOpenForm, FormID: a.StringParam("formId", "")}
	case domain.ActionEmitAlert:
		return forms.RuleAction{Type: domain.ActionEmitAlert, AlertCode: a.StringParam("alertCode", "ALERTA")}
	case domain.ActionWebhook:
		return forms.RuleAction{Type: domain.ActionWebhook, URL: a.StringParam("url", ""), Method: "POST"}
	case domain.ActionSetTag:
		return forms.RuleAction{Type: domain.ActionSetTag, Tag: a.StringParam("tag", "")}
	case domain.ActionSetField:
		return forms.RuleAction{Type: domain.ActionSetField, FieldPath: a.StringParam("fieldPath", ""), Value: a.Param("value")}
	default:
		return forms.RuleAction{Type: domain.ActionEmitAlert, AlertCode: "UNSPEC"}
	}
}

// applyDefaults fills zero fields of base and stamps the compile time.
func applyDefaults(base forms.FormDefinition) forms.FormDefinition {
	now := time.Now().UTC()
	form := base
	if form.ID == "" {
		form.ID = uuid.NewString()
	}
	if form.Name == "" {
		form.Name = "Novo Formulário"
	}
	if form.Version == 0 {
		form.Version = 1
	}
	if form.Status == "" {
		form.Status = forms.StatusDraft
	}
	if form.CreatedAt.IsZero() {
		form.CreatedAt = now
	}
	form.UpdatedAt = now
	if form.ScoringPolicy == "" {
		form.ScoringPolicy = forms.ScoringSum
	}
	form.Questions = nil
	form.Rules = nil
	form.FinalScoreRules = nil
	return form
}
