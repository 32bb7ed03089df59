package domain

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// decodeData decodes a node's raw data map into a typed record. Weak typing
// is intentional: graphs arrive from JSON/YAML designers where numbers may
// be floats or strings depending on the serializer.
func decodeData(raw map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// QuestionData decodes the node's data as a question record.
// The business question id falls back to the node id when unset.
func (n GraphNode) QuestionData() (QuestionData, error) {
	if n.Kind != NodeKindQuestion {
		return QuestionData{}, fmt.Errorf("node %s is %s, not a question", n.ID, n.Kind)
	}
	var data QuestionData
	if err := decodeData(n.Data, &data); err != nil {
		return QuestionData{}, fmt.Errorf("decode question node %s: %w", n.ID, err)
	}
	if data.ID == "" {
		data.ID = n.ID
	}
	return data, nil
}

// ConditionData decodes the node's data as a condition record.
func (n GraphNode) ConditionData() (ConditionNodeData, error) {
	if n.Kind != NodeKindCondition {
		return ConditionNodeData{}, fmt.Errorf("node %s is %s, not a condition", n.ID, n.Kind)
	}
	var data ConditionNodeData
	if err := decodeData(n.Data, &data); err != nil {
		return ConditionNodeData{}, fmt.Errorf("decode condition node %s: %w", n.ID, err)
	}
	return data, nil
}

// ActionData decodes the node's data as an action record.
func (n GraphNode) ActionData() (ActionData, error) {
	if n.Kind != NodeKindAction {
		return ActionData{}, fmt.Errorf("node %s is %s, not an action", n.ID, n.Kind)
	}
	var data ActionData
	if err := decodeData(n.Data, &data); err != nil {
		return ActionData{}, fmt.Errorf("decode action node %s: %w", n.ID, err)
	}
	return data, nil
}

// ScoreGateData decodes the node's data as a score gate record.
func (n GraphNode) ScoreGateData() (ScoreGateData, error) {
	if n.Kind != NodeKindScoreGate {
		return ScoreGateData{}, fmt.Errorf("node %s is %s, not a score gate", n.ID, n.Kind)
	}
	var data ScoreGateData
	if err := decodeData(n.Data, &data); err != nil {
		return ScoreGateData{}, fmt.Errorf("decode score gate node %s: %w", n.ID, err)
	}
	return data, nil
}

// EndData decodes the node's data as an end record.
func (n GraphNode) EndData() (EndData, error) {
	if n.Kind != NodeKindEnd {
		return EndData{}, fmt.Errorf("node %s is %s, not an end node", n.ID, n.Kind)
	}
	var data EndData
	if err := decodeData(n.Data, &data); err != nil {
		return EndData{}, fmt.Errorf("decode end node %s: %w", n.ID, err)
	}
	return data, nil
}
