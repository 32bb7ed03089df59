package forms

import (
	"math"
	"reflect"
	"strconv"

	"github.com/mbarros/inquira/pkg/domain"
)

// ScoreForQuestion computes the numeric contribution of one answered
// question. With a score map, an array answer sums the mapped score of
// every element and a scalar answer yields its own mapped score, missing
// keys contributing 0. Without one, an empty answer scores 0 and anything
// else scores the question's fixed weight. Total: never fails.
func ScoreForQuestion(q Question, value any) float64 {
	if len(q.ScoreMap) > 0 {
		rv := reflect.ValueOf(value)
		if value != nil && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) {
			var sum float64
			for i := 0; i < rv.Len(); i++ {
				sum += q.ScoreMap[scoreKey(rv.Index(i).Interface())]
			}
			return sum
		}
		return q.ScoreMap[scoreKey(value)]
	}

	if isEmptyAnswer(value) {
		return 0
	}
	return q.Weight
}

// Compute aggregates the per-question scores of a form over an answer set
// according to the form's scoring policy. The custom policy is resolved by
// the caller; here it aggregates like sum.
func Compute(form FormDefinition, answers map[string]any) float64 {
	var total float64
	for _, q := range form.Questions {
		total += ScoreForQuestion(q, answers[q.ID])
	}
	if form.ScoringPolicy == ScoringAverage && len(form.Questions) > 0 {
		return total / float64(len(form.Questions))
	}
	return total
}

// isEmptyAnswer reports nil, empty string or empty slice answers.
func isEmptyAnswer(value any) bool {
	switch t := value.(type) {
	case nil:
		return true
	case string:
		return t == ""
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return rv.Len() == 0
	}
	return false
}

// scoreKey stringifies an option value for score map lookup, so that 5,
// 5.0 and "5" all address the same entry. Composite values never match.
func scoreKey(value any) string {
	switch t := value.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	}
	n := domain.ToNumber(value)
	if math.IsNaN(n) {
		return ""
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
