package domain

// Question presentation type ids. These match the designer's type table and
// are stable across serialization; branching logic only cares about a few of
// them (boolean for truthy normalization, the choice types for option
// normalization and score maps).
const (
	QuestionTypeText       = 0
	QuestionTypeNumber     = 1
	QuestionTypeDate       = 2
	QuestionTypeTime       = 3
	QuestionTypeDateTime   = 4
	QuestionTypeBoolean    = 5
	QuestionTypeImage      = 6
	QuestionTypeFile       = 7
	QuestionTypeOptionList = 8
	QuestionTypeSingle     = 9
	QuestionTypeMulti      = 10
)

// QuestionType is the id/label pair selecting a presentation type.
type QuestionType struct {
	ID    int    `json:"id" yaml:"id" mapstructure:"id"`
	Label string `json:"label" yaml:"label" mapstructure:"label"`
}

// QuestionTypes is the canonical presentation type table.
var QuestionTypes = []QuestionType{
	{ID: QuestionTypeText, Label: "Texto"},
	{ID: QuestionTypeNumber, Label: "Número"},
	{ID: QuestionTypeDate, Label: "Data"},
	{ID: QuestionTypeTime, Label: "Hora"},
	{ID: QuestionTypeDateTime, Label: "Data e Hora"},
	{ID: QuestionTypeBoolean, Label: "Booleano"},
	{ID: QuestionTypeImage, Label: "Imagem"},
	{ID: QuestionTypeFile, Label: "Arquivo"},
	{ID: QuestionTypeOptionList, Label: "Lista de Opções"},
	{ID: QuestionTypeSingle, Label: "Seleção Única"},
	{ID: QuestionTypeMulti, Label: "Seleção Múltipla"},
}

// IsChoiceType reports whether a type id selects among declared options
// (option list, single select, multi select).
func IsChoiceType(typeID int) bool {
	return typeID == QuestionTypeOptionList || typeID == QuestionTypeSingle || typeID == QuestionTypeMulti
}

// Option is one selectable choice of a choice-type question. Score, when
// set, feeds the question's derived score map.
type Option struct {
	Value any      `json:"value" yaml:"value" mapstructure:"value"`
	Label string   `json:"label" yaml:"label" mapstructure:"label"`
	Score *float64 `json:"score,omitempty" yaml:"score,omitempty" mapstructure:"score"`
}

// QuestionData is the data record of a question node. ID is the stable
// business identifier of the question, distinct from the graph node id.
type QuestionData struct {
	ID         string       `json:"id" yaml:"id" mapstructure:"id"`
	Label      string       `json:"label" yaml:"label" mapstructure:"label"`
	Type       QuestionType `json:"type" yaml:"type" mapstructure:"type"`
	HelpText   string       `json:"helpText,omitempty" yaml:"helpText,omitempty" mapstructure:"helpText"`
	Seq        int          `json:"seq" yaml:"seq" mapstructure:"seq"`
	Score      float64      `json:"score,omitempty" yaml:"score,omitempty" mapstructure:"score"`
	TrueLabel  string       `json:"trueLabel,omitempty" yaml:"trueLabel,omitempty" mapstructure:"trueLabel"`
	FalseLabel string       `json:"falseLabel,omitempty" yaml:"falseLabel,omitempty" mapstructure:"falseLabel"`
	Options    []Option     `json:"options,omitempty" yaml:"options,omitempty" mapstructure:"options"`
	Required   bool         `json:"required,omitempty" yaml:"required,omitempty" mapstructure:"required"`
}

// DefaultAnswer returns the initial answer value for a question type:
// nil for number/boolean/select types, an empty slice for multi select,
// an empty string for the textual types.
func DefaultAnswer(typeID int) any {
	switch typeID {
	case QuestionTypeNumber, QuestionTypeBoolean, QuestionTypeOptionList, QuestionTypeSingle:
		return nil
	case QuestionTypeMulti:
		return []any{}
	default:
		return ""
	}
}
