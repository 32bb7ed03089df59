package domain

// ConditionType discriminates the condition union.
type ConditionType string

const (
	ConditionComparison ConditionType = "comparison"
	ConditionExpression ConditionType = "expression"
)

// TermType selects how one side of a comparison is resolved.
type TermType string

const (
	TermFixed     TermType = "fixed"     // literal value
	TermQuestion  TermType = "question"  // an answer's value or score
	TermCondition TermType = "condition" // another condition's boolean result
)

// QuestionValueType selects whether a question-typed term resolves to the
// stored answer or to the question's computed score.
type QuestionValueType string

const (
	QuestionValue QuestionValueType = "value"
	QuestionScore QuestionValueType = "score"
)

// Operator is a comparison operator. Semantics are deliberately loose
// (JavaScript-style) and total; see Compare in compare.go.
type Operator string

const (
	OpEqual        Operator = "=="
	OpNotEqual     Operator = "!="
	OpGreater      Operator = ">"
	OpGreaterEqual Operator = ">="
	OpLess         Operator = "<"
	OpLessEqual    Operator = "<="
	OpIn           Operator = "in"
	OpContains     Operator = "contains"
	OpAnd          Operator = "&&"
	OpOr           Operator = "||"
	// OpBetween is only valid on final-score triggers and end-node score
	// conditions, never inside comparison conditions.
	OpBetween Operator = "between"
)

// Condition is the tagged union of comparison and expression conditions.
// The wire shape is flat: comparison fields are meaningful only when
// Type == ConditionComparison, Expression only when Type == ConditionExpression.
type Condition struct {
	ID   string        `json:"id" yaml:"id" mapstructure:"id"`
	Name string        `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Type ConditionType `json:"type" yaml:"type" mapstructure:"type"`

	// Left term.
	ValueType         TermType          `json:"valueType,omitempty" yaml:"valueType,omitempty" mapstructure:"valueType"`
	Value             any               `json:"value,omitempty" yaml:"value,omitempty" mapstructure:"value"`
	QuestionID        string            `json:"questionId,omitempty" yaml:"questionId,omitempty" mapstructure:"questionId"`
	QuestionValueType QuestionValueType `json:"questionValueType,omitempty" yaml:"questionValueType,omitempty" mapstructure:"questionValueType"`
	ConditionID       string            `json:"conditionId,omitempty" yaml:"conditionId,omitempty" mapstructure:"conditionId"`

	Operator Operator `json:"operator,omitempty" yaml:"operator,omitempty" mapstructure:"operator"`

	// Right term.
	CompareValueType         TermType          `json:"compareValueType,omitempty" yaml:"compareValueType,omitempty" mapstructure:"compareValueType"`
	CompareValue             any               `json:"compareValue,omitempty" yaml:"compareValue,omitempty" mapstructure:"compareValue"`
	CompareQuestionID        string            `json:"compareQuestionId,omitempty" yaml:"compareQuestionId,omitempty" mapstructure:"compareQuestionId"`
	CompareQuestionValueType QuestionValueType `json:"compareQuestionValueType,omitempty" yaml:"compareQuestionValueType,omitempty" mapstructure:"compareQuestionValueType"`
	CompareConditionID       string            `json:"compareConditionId,omitempty" yaml:"compareConditionId,omitempty" mapstructure:"compareConditionId"`

	// Expression source, e.g. "$q1.value == 'sim' && $c2". Opaque to the
	// traversal engine; evaluated by a pluggable predicate.
	Expression string `json:"expression,omitempty" yaml:"expression,omitempty" mapstructure:"expression"`
}

// TriggerPolicy combines multiple triggers or conditions of one rule.
type TriggerPolicy string

const (
	PolicyAll TriggerPolicy = "ALL"
	PolicyAny TriggerPolicy = "ANY"
)

// ConditionNodeData is the data record of a condition node. One node may
// hold several named conditions, each independently routable through the
// edge that carries its id.
type ConditionNodeData struct {
	ConditionType ConditionType `json:"conditionType" yaml:"conditionType" mapstructure:"conditionType"`
	Conditions    []Condition   `json:"conditions" yaml:"conditions" mapstructure:"conditions"`
	Policy        TriggerPolicy `json:"policy,omitempty" yaml:"policy,omitempty" mapstructure:"policy"`
	Seq           int           `json:"seq,omitempty" yaml:"seq,omitempty" mapstructure:"seq"`
}

// ScoreGateData is the data record of a score gate node: a single
// final-score threshold wired to action nodes.
type ScoreGateData struct {
	Operator Operator `json:"operator,omitempty" yaml:"operator,omitempty" mapstructure:"operator"`
	Value    float64  `json:"value,omitempty" yaml:"value,omitempty" mapstructure:"value"`
	Seq      int      `json:"seq,omitempty" yaml:"seq,omitempty" mapstructure:"seq"`
}

// EndScoreCondition is one named final-score condition of an end node.
// Operator "between" uses Range (inclusive on both ends); every other
// operator uses Value.
type EndScoreCondition struct {
	ID       string     `json:"id" yaml:"id" mapstructure:"id"`
	Name     string     `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Operator Operator   `json:"operator,omitempty" yaml:"operator,omitempty" mapstructure:"operator"`
	Value    float64    `json:"value,omitempty" yaml:"value,omitempty" mapstructure:"value"`
	Range    *[2]float64 `json:"range,omitempty" yaml:"range,omitempty" mapstructure:"range"`
}

// EndData is the data record of an end node: a list of named score
// conditions, each wired to its own action set via edge ConditionID.
type EndData struct {
	Conditions []EndScoreCondition `json:"conditions,omitempty" yaml:"conditions,omitempty" mapstructure:"conditions"`
	Seq        int                 `json:"seq,omitempty" yaml:"seq,omitempty" mapstructure:"seq"`
}
