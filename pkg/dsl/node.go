package dsl

import "github.com/mbarros/inquira/pkg/domain"

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	nodeID  string
	kind    domain.NodeKind
	data    map[string]any
	builder *Builder
}

// ID sets the business identifier of a question, distinct from the graph
// node id. Without it the node id doubles as the business id.
func (n *NodeBuilder) ID(businessID string) *NodeBuilder {
	n.data["id"] = businessID
	return n
}

// Label sets the question text shown to the respondent.
func (n *NodeBuilder) Label(label string) *NodeBuilder {
	n.data["label"] = label
	return n
}

// Help sets the question's help text.
func (n *NodeBuilder) Help(text string) *NodeBuilder {
	n.data["helpText"] = text
	return n
}

// Seq overrides the question's position in declared order.
func (n *NodeBuilder) Seq(seq int) *NodeBuilder {
	n.data["seq"] = seq
	return n
}

// Type sets the question's presentation type id.
func (n *NodeBuilder) Type(typeID int) *NodeBuilder {
	n.data["type"] = map[string]any{"id": typeID}
	return n
}

// Boolean marks the question as a yes/no question.
func (n *NodeBuilder) Boolean() *NodeBuilder {
	return n.Type(domain.QuestionTypeBoolean)
}

// Number marks the question as numeric.
func (n *NodeBuilder) Number() *NodeBuilder {
	return n.Type(domain.QuestionTypeNumber)
}

// SingleChoice marks the question as a single-select over declared options.
func (n *NodeBuilder) SingleChoice() *NodeBuilder {
	return n.Type(domain.QuestionTypeSingle)
}

// MultiChoice marks the question as a multi-select over declared options.
func (n *NodeBuilder) MultiChoice() *NodeBuilder {
	return n.Type(domain.QuestionTypeMulti)
}

// Required makes an answer mandatory before the run can advance.
func (n *NodeBuilder) Required() *NodeBuilder {
	n.data["required"] = true
	return n
}

// Labels sets the display labels of a boolean question's two answers.
func (n *NodeBuilder) Labels(trueLabel, falseLabel string) *NodeBuilder {
	n.data["trueLabel"] = trueLabel
	n.data["falseLabel"] = falseLabel
	return n
}

// Weight sets the question's fixed score contribution, used when no option
// of the question carries its own score.
func (n *NodeBuilder) Weight(score float64) *NodeBuilder {
	n.data["score"] = score
	return n
}

// Option adds an unscored choice.
func (n *NodeBuilder) Option(value any, label string) *NodeBuilder {
	return n.appendOption(map[string]any{"value": value, "label": label})
}

// ScoredOption adds a choice that contributes to the final score.
func (n *NodeBuilder) ScoredOption(value any, label string, score float64) *NodeBuilder {
	return n.appendOption(map[string]any{"value": value, "label": label, "score": score})
}

func (n *NodeBuilder) appendOption(opt map[string]any) *NodeBuilder {
	opts, _ := n.data["options"].([]any)
	n.data["options"] = append(opts, opt)
	return n
}

// WhenQuestion adds a comparison condition against a question's answer.
func (n *NodeBuilder) WhenQuestion(conditionID, questionID string, operator domain.Operator, compare any) *NodeBuilder {
	return n.appendCondition(map[string]any{
		"id":                conditionID,
		"type":              string(domain.ConditionComparison),
		"valueType":         string(domain.TermQuestion),
		"questionId":        questionID,
		"questionValueType": string(domain.QuestionValue),
		"operator":          string(operator),
		"compareValueType":  string(domain.TermFixed),
		"compareValue":      compare,
	})
}

// WhenScore adds a comparison condition against a question's computed score.
func (n *NodeBuilder) WhenScore(conditionID, questionID string, operator domain.Operator, compare any) *NodeBuilder {
	return n.appendCondition(map[string]any{
		"id":                conditionID,
		"type":              string(domain.ConditionComparison),
		"valueType":         string(domain.TermQuestion),
		"questionId":        questionID,
		"questionValueType": string(domain.QuestionScore),
		"operator":          string(operator),
		"compareValueType":  string(domain.TermFixed),
		"compareValue":      compare,
	})
}

// WhenCondition adds a comparison condition over another condition's cached
// result. Only conditions evaluated earlier in the same node resolve.
func (n *NodeBuilder) WhenCondition(conditionID, refConditionID string, operator domain.Operator, compare any) *NodeBuilder {
	return n.appendCondition(map[string]any{
		"id":               conditionID,
		"type":             string(domain.ConditionComparison),
		"valueType":        string(domain.TermCondition),
		"conditionId":      refConditionID,
		"operator":         string(operator),
		"compareValueType": string(domain.TermFixed),
		"compareValue":     compare,
	})
}

// WhenExpression adds an expression condition, evaluated by the host's
// pluggable predicate.
func (n *NodeBuilder) WhenExpression(conditionID, expression string) *NodeBuilder {
	return n.appendCondition(map[string]any{
		"id":         conditionID,
		"type":       string(domain.ConditionExpression),
		"expression": expression,
	})
}

func (n *NodeBuilder) appendCondition(cond map[string]any) *NodeBuilder {
	if _, ok := n.data["conditionType"]; !ok {
		n.data["conditionType"] = string(domain.ConditionComparison)
	}
	conds, _ := n.data["conditions"].([]any)
	n.data["conditions"] = append(conds, cond)
	return n
}

// EmitAlert configures the action node to raise an alert with the given
// code.
func (n *NodeBuilder) EmitAlert(code string) *NodeBuilder {
	n.data["type"] = string(domain.ActionEmitAlert)
	n.param("alertCode", code)
	return n
}

// Webhook configures the action node to call a URL.
func (n *NodeBuilder) Webhook(url, method string) *NodeBuilder {
	n.data["type"] = string(domain.ActionWebhook)
	n.param("url", url)
	if method != "" {
		n.param("method", method)
	}
	return n
}

// OpenForm configures the action node to chain into another form.
func (n *NodeBuilder) OpenForm(formID string) *NodeBuilder {
	n.data["type"] = string(domain.ActionOpenForm)
	n.param("formId", formID)
	return n
}

// SetField configures the action node to write a response field.
func (n *NodeBuilder) SetField(fieldPath string, value any) *NodeBuilder {
	n.data["type"] = string(domain.ActionSetField)
	n.param("fieldPath", fieldPath)
	n.param("value", value)
	return n
}

// SetTag configures the action node to tag the response.
func (n *NodeBuilder) SetTag(tag string) *NodeBuilder {
	n.data["type"] = string(domain.ActionSetTag)
	n.param("tag", tag)
	return n
}

func (n *NodeBuilder) param(key string, value any) {
	params, _ := n.data["params"].(map[string]any)
	if params == nil {
		params = make(map[string]any)
		n.data["params"] = params
	}
	params[key] = value
}

// Threshold sets a score gate's final-score cut.
func (n *NodeBuilder) Threshold(operator domain.Operator, value float64) *NodeBuilder {
	n.data["operator"] = string(operator)
	n.data["value"] = value
	return n
}

// ScoreCondition adds a named final-score condition to an end node.
func (n *NodeBuilder) ScoreCondition(conditionID, name string, operator domain.Operator, value float64) *NodeBuilder {
	return n.appendEndCondition(map[string]any{
		"id":       conditionID,
		"name":     name,
		"operator": string(operator),
		"value":    value,
	})
}

// ScoreBetween adds a named final-score range condition to an end node,
// inclusive on both ends.
func (n *NodeBuilder) ScoreBetween(conditionID, name string, low, high float64) *NodeBuilder {
	return n.appendEndCondition(map[string]any{
		"id":       conditionID,
		"name":     name,
		"operator": string(domain.OpBetween),
		"range":    []any{low, high},
	})
}

func (n *NodeBuilder) appendEndCondition(cond map[string]any) *NodeBuilder {
	conds, _ := n.data["conditions"].([]any)
	n.data["conditions"] = append(conds, cond)
	return n
}

// To adds an unconditional edge from this node to the target.
func (n *NodeBuilder) To(target string) *NodeBuilder {
	n.builder.edge(n.nodeID, target, "")
	return n
}

// Then adds an edge taken when the named condition of this node holds.
func (n *NodeBuilder) Then(conditionID, target string) *NodeBuilder {
	n.builder.edge(n.nodeID, target, conditionID)
	return n
}

// Else adds the fallback edge taken when no condition of this node holds.
func (n *NodeBuilder) Else(target string) *NodeBuilder {
	return n.To(target)
}
