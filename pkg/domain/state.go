package domain

import "time"

// RunStatus indicates where an interactive run stands.
type RunStatus string

const (
	RunActive    RunStatus = "active"
	RunCompleted RunStatus = "completed"
)

// RunnerQuestion is the flattened, presentation-ready view of one question
// node, as walked by the interactive runner. QuestionID is the business id
// used for answers and branching; NodeID anchors graph traversal.
type RunnerQuestion struct {
	NodeID     string   `json:"nodeId"`
	QuestionID string   `json:"questionId"`
	Label      string   `json:"label"`
	Seq        int      `json:"seq"`
	TypeID     int      `json:"typeId"`
	HelpText   string   `json:"helpText,omitempty"`
	TrueLabel  string   `json:"trueLabel,omitempty"`
	FalseLabel string   `json:"falseLabel,omitempty"`
	Options    []Option `json:"options,omitempty"`
	Required   bool     `json:"required,omitempty"`
}

// Run is the mutable state of one respondent walking one workflow. It is
// created fresh per run and never shared: the answer store, the visited set
// and the evaluated-condition cache all live here, leaving the graph
// untouched.
type Run struct {
	ID           string    `json:"id"`
	WorkflowName string    `json:"workflowName,omitempty"`
	StartedAt    time.Time `json:"startedAt"`

	// Questions holds every question of the workflow in declared (seq)
	// order; branching may skip over entries.
	Questions    []RunnerQuestion `json:"questions"`
	CurrentIndex int              `json:"currentIndex"`
	Status       RunStatus        `json:"status"`

	// Answers maps business question ids to stored answer values.
	Answers map[string]any `json:"answers"`

	// Visited records the business ids of questions actually reached during
	// this run; only these belong in the completion summary.
	Visited map[string]bool `json:"visited"`

	// ConditionResults caches evaluated condition results by condition id so
	// later condition-typed terms can reference them. Cleared on restart.
	ConditionResults map[string]bool `json:"conditionResults"`
}

// CurrentQuestion returns the question the respondent is on, or false when
// the index is out of range.
func (r *Run) CurrentQuestion() (RunnerQuestion, bool) {
	if r.CurrentIndex < 0 || r.CurrentIndex >= len(r.Questions) {
		return RunnerQuestion{}, false
	}
	return r.Questions[r.CurrentIndex], true
}

// MarkVisited records a question as reached.
func (r *Run) MarkVisited(questionID string) {
	if questionID == "" {
		return
	}
	if r.Visited == nil {
		r.Visited = make(map[string]bool)
	}
	r.Visited[questionID] = true
}

// SummaryQuestions returns, in declared order, only the questions actually
// visited during the run. Branches skipped by a false condition do not
// contribute here even though their questions exist in Questions.
func (r *Run) SummaryQuestions() []RunnerQuestion {
	var out []RunnerQuestion
	for _, q := range r.Questions {
		if r.Visited[q.QuestionID] {
			out = append(out, q)
		}
	}
	return out
}

// QuestionIndex returns the position of a business question id, -1 when the
// id is not part of the run.
func (r *Run) QuestionIndex(questionID string) int {
	for i, q := range r.Questions {
		if q.QuestionID == questionID {
			return i
		}
	}
	return -1
}
