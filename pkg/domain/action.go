package domain

// ActionKind names the side effect an action node requests. Unrecognized
// kinds are preserved through serialization and degrade to a sentinel alert
// at compile time.
type ActionKind string

const (
	ActionOpenForm         ActionKind = "openForm"
	ActionEmitAlert        ActionKind = "emitAlert"
	ActionWebhook          ActionKind = "webhook"
	ActionSetTag           ActionKind = "setTag"
	ActionSetField         ActionKind = "setField"
	ActionSendNotification ActionKind = "sendNotification"
)

// ActionData is the data record of an action node.
type ActionData struct {
	Type   ActionKind     `json:"type" yaml:"type" mapstructure:"type"`
	Params map[string]any `json:"params,omitempty" yaml:"params,omitempty" mapstructure:"params"`
	Seq    int            `json:"seq,omitempty" yaml:"seq,omitempty" mapstructure:"seq"`
}

// StringParam returns a string parameter of the action, or fallback when
// missing or not a string.
func (a ActionData) StringParam(key, fallback string) string {
	if v, ok := a.Params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fallback
}

// Param returns a raw parameter value, nil when absent.
func (a ActionData) Param(key string) any {
	if a.Params == nil {
		return nil
	}
	return a.Params[key]
}
