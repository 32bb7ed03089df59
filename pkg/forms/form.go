package forms

import (
	"time"

	"github.com/mbarros/inquira/pkg/domain"
)

// FormStatus is the publication state of a compiled form.
type FormStatus string

const (
	StatusDraft     FormStatus = "draft"
	StatusPublished FormStatus = "published"
	StatusArchived  FormStatus = "archived"
)

// ScoringPolicy selects how per-question scores aggregate into the final
// score.
type ScoringPolicy string

const (
	ScoringSum     ScoringPolicy = "sum"
	ScoringAverage ScoringPolicy = "average"
	ScoringCustom  ScoringPolicy = "custom"
)

// Question is the compiled, graph-independent view of one question.
// ScoreMap, when present, overrides Weight: it maps stringified option
// values to their score contribution.
type Question struct {
	ID         string              `json:"id"`
	Type       domain.QuestionType `json:"type"`
	Label      string              `json:"label"`
	HelpText   string              `json:"helpText,omitempty"`
	Required   bool                `json:"required,omitempty"`
	TrueLabel  string              `json:"trueLabel,omitempty"`
	FalseLabel string              `json:"falseLabel,omitempty"`
	Options    []domain.Option     `json:"options,omitempty"`
	Weight     float64             `json:"weight,omitempty"`
	ScoreMap   map[string]float64  `json:"scoreMap,omitempty"`
}

// TriggerKind discriminates the RuleTrigger union.
type TriggerKind string

const (
	TriggerOnAnswer     TriggerKind = "onAnswer"
	TriggerOnFinalScore TriggerKind = "onFinalScore"
	TriggerOnExpression TriggerKind = "onExpression"
)

// RuleTrigger is the tagged union of rule trigger variants. QuestionID,
// Operator and Value belong to onAnswer; Operator, Value and Range to
// onFinalScore (Range only with the "between" operator, inclusive on both
// ends); Expression to onExpression.
type RuleTrigger struct {
	Kind       TriggerKind     `json:"kind"`
	QuestionID string          `json:"questionId,omitempty"`
	Operator   domain.Operator `json:"operator,omitempty"`
	Value      any             `json:"value,omitempty"`
	Range      *[2]float64     `json:"range,omitempty"`
	Expression string          `json:"expression,omitempty"`
}

// RuleAction is the tagged union of side-effect variants fired by a
// matched rule.
type RuleAction struct {
	Type domain.ActionKind `json:"type"`

	// openForm
	FormID string `json:"formId,omitempty"`
	// emitAlert
	AlertCode string         `json:"alertCode,omitempty"`
	Payload   map[string]any `json:"payload,omitempty"`
	// webhook
	URL          string `json:"url,omitempty"`
	Method       string `json:"method,omitempty"`
	BodyTemplate any    `json:"bodyTemplate,omitempty"`
	// setTag
	Tag string `json:"tag,omitempty"`
	// setField
	FieldPath string `json:"fieldPath,omitempty"`
	Value     any    `json:"value,omitempty"`
}

// Rule couples triggers with the actions they fire. TriggerPolicy defaults
// to ANY when empty.
type Rule struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Description   string               `json:"description,omitempty"`
	Triggers      []RuleTrigger        `json:"triggers"`
	TriggerPolicy domain.TriggerPolicy `json:"triggerPolicy,omitempty"`
	Actions       []RuleAction         `json:"actions"`
}

// FormDefinition is the compiled output of a workflow graph: the question
// list plus the flat per-answer and final-score rule lists.
type FormDefinition struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Version     int        `json:"version"`
	Status      FormStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Questions       []Question    `json:"questions"`
	Rules           []Rule        `json:"rules,omitempty"`
	FinalScoreRules []Rule        `json:"finalScoreRules,omitempty"`
	ScoringPolicy   ScoringPolicy `json:"scoringPolicy,omitempty"`
}

// QuestionByID returns the compiled question with the given business id.
func (f FormDefinition) QuestionByID(id string) (Question, bool) {
	for _, q := range f.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// FormResponse is the record handed to downstream systems after a run
// completes: the captured answers, the aggregate score and the actions the
// rule evaluator selected.
type FormResponse struct {
	FormID           string         `json:"formId"`
	FormVersion      int            `json:"formVersion"`
	Answers          map[string]any `json:"answers"`
	Score            float64        `json:"score"`
	TriggeredActions []RuleAction   `json:"triggeredActions,omitempty"`
	CompletedAt      time.Time      `json:"completedAt,omitempty"`
}

// QuestionFromData builds the compiled question view from a question node's
// data record. For choice-type questions a score map is derived from the
// options that declare a numeric score; questions without any scored option
// keep only their fixed weight.
func QuestionFromData(data domain.QuestionData) Question {
	q := Question{
		ID:         data.ID,
		Type:       data.Type,
		Label:      data.Label,
		HelpText:   data.HelpText,
		Required:   data.Required,
		TrueLabel:  data.TrueLabel,
		FalseLabel: data.FalseLabel,
		Options:    data.Options,
		Weight:     data.Score,
	}
	if domain.IsChoiceType(data.Type.ID) && len(data.Options) > 0 {
		scoreMap := make(map[string]float64)
		for _, opt := range data.Options {
			if opt.Score == nil {
				continue
			}
			scoreMap[scoreKey(opt.Value)] = *opt.Score
		}
		if len(scoreMap) > 0 {
			q.ScoreMap = scoreMap
		}
	}
	return q
}
