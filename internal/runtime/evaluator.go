package runtime

import (
	"github.com/mbarros/inquira/pkg/domain"
	"github.com/mbarros/inquira/pkg/forms"
)

type termSide int

const (
	leftTerm termSide = iota
	rightTerm
)

// isComparisonTrue resolves both terms of a comparison condition and applies
// the shared loose operator table. The operator defaults to equality.
func (e *Engine) isComparisonTrue(run *domain.Run, cond domain.Condition) bool {
	op := cond.Operator
	if op == "" {
		op = domain.OpEqual
	}
	left := e.resolveTerm(run, cond, leftTerm)
	right := e.resolveTerm(run, cond, rightTerm)
	return domain.Compare(op, left, right)
}

// resolveTerm resolves one side of a comparison: a fixed literal, a
// question's (normalized) answer or score, or a previously evaluated
// condition's result. Unresolvable terms yield nil, never an error.
func (e *Engine) resolveTerm(run *domain.Run, cond domain.Condition, side termSide) any {
	valueType := cond.ValueType
	fixed := cond.Value
	questionID := cond.QuestionID
	useScore := cond.QuestionValueType == domain.QuestionScore
	conditionID := cond.ConditionID
	if side == rightTerm {
		valueType = cond.CompareValueType
		fixed = cond.CompareValue
		questionID = cond.CompareQuestionID
		useScore = cond.CompareQuestionValueType == domain.QuestionScore
		conditionID = cond.CompareConditionID
	}

	switch valueType {
	case domain.TermFixed:
		return fixed
	case domain.TermQuestion:
		if questionID == "" {
			return nil
		}
		return e.resolveQuestionTerm(run, questionID, useScore)
	case domain.TermCondition:
		if conditionID == "" {
			return nil
		}
		// A forward reference to a not-yet-evaluated condition stays nil;
		// nil is distinct from an evaluated false.
		if result, ok := run.ConditionResults[conditionID]; ok {
			return result
		}
		return nil
	}
	return nil
}

// resolveQuestionTerm resolves a question-typed term against the run's
// answer store. Value terms are normalized by question type so that loose
// comparisons behave: boolean answers collapse to true/false/nil and choice
// answers to their comparable option value(s). Score terms run the score
// resolver over the stored answer.
func (e *Engine) resolveQuestionTerm(run *domain.Run, questionID string, useScore bool) any {
	value := run.Answers[questionID]
	if useScore {
		def, ok := e.defs[questionID]
		if !ok {
			return nil
		}
		return forms.ScoreForQuestion(def, value)
	}

	typeID, known := e.typeIDs[questionID]
	if !known {
		return value
	}
	switch {
	case typeID == domain.QuestionTypeBoolean:
		def := e.defs[questionID]
		return normalizeBoolean(value, def.TrueLabel, def.FalseLabel)
	case domain.IsChoiceType(typeID):
		if normalized := normalizeOptionAnswer(value); normalized != nil {
			return normalized
		}
		return value
	}
	return value
}
