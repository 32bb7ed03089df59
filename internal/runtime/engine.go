// Package runtime walks a questionnaire graph interactively: it builds the
// ordered question list for a run, records answers and resolves the next
// question after each one by following the graph's condition edges.
package runtime

import (
	"log/slog"
	"reflect"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mbarros/inquira/internal/logging"
	"github.com/mbarros/inquira/pkg/domain"
	"github.com/mbarros/inquira/pkg/forms"
)

// ExpressionEvaluator resolves an opaque expression condition against the
// answers captured so far. The engine treats the expression source as a
// black box; hosts plug their own predicate language in.
type ExpressionEvaluator func(expression string, answers map[string]any) (bool, error)

// Engine drives runs over one immutable graph. It holds per-graph indexes
// built once at construction; all mutable state lives on the Run.
type Engine struct {
	graph domain.GraphModel

	nodes       map[string]domain.GraphNode
	defs        map[string]forms.Question // keyed by business question id
	typeIDs     map[string]int
	questionIDs map[string]string // node id -> business question id

	exprEval ExpressionEvaluator
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithExpressionEvaluator plugs a predicate for expression conditions.
// Without one, every expression condition evaluates false and only the
// fallback edges of expression nodes remain reachable.
func WithExpressionEvaluator(eval ExpressionEvaluator) Option {
	return func(e *Engine) { e.exprEval = eval }
}

// WithLogger sets the engine's structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine indexes the graph and prepares the per-question metadata used
// for answer normalization and score terms. Question nodes whose data fails
// to decode are skipped with a warning; the graph itself is never mutated.
func NewEngine(graph domain.GraphModel, opts ...Option) *Engine {
	e := &Engine{
		graph:       graph,
		nodes:       make(map[string]domain.GraphNode, len(graph.Nodes)),
		defs:        make(map[string]forms.Question),
		typeIDs:     make(map[string]int),
		questionIDs: make(map[string]string),
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	for _, node := range graph.Nodes {
		e.nodes[node.ID] = node
		if node.Kind != domain.NodeKindQuestion {
			continue
		}
		data, err := node.QuestionData()
		if err != nil {
			e.logger.Warn("skipping undecodable question node", "node", node.ID, "error", err)
			continue
		}
		e.defs[data.ID] = forms.QuestionFromData(data)
		e.typeIDs[data.ID] = data.Type.ID
		e.questionIDs[node.ID] = data.ID
	}
	return e
}

// Graph returns the graph the engine was built over.
func (e *Engine) Graph() domain.GraphModel { return e.graph }

// NewRun builds the run state for one respondent: every question of the
// graph in declared (seq) order, positioned on the first one. The sort is
// stable so questions sharing a seq keep their stored order.
func (e *Engine) NewRun(workflowName string) (*domain.Run, error) {
	var questions []domain.RunnerQuestion
	for _, node := range e.graph.NodesByKind(domain.NodeKindQuestion) {
		data, err := node.QuestionData()
		if err != nil {
			continue
		}
		questions = append(questions, domain.RunnerQuestion{
			NodeID:     node.ID,
			QuestionID: data.ID,
			Label:      data.Label,
			Seq:        data.Seq,
			TypeID:     data.Type.ID,
			HelpText:   data.HelpText,
			TrueLabel:  data.TrueLabel,
			FalseLabel: data.FalseLabel,
			Options:    data.Options,
			Required:   data.Required,
		})
	}
	if len(questions) == 0 {
		return nil, domain.ErrNoQuestions
	}
	sort.SliceStable(questions, func(i, j int) bool { return questions[i].Seq < questions[j].Seq })

	run := &domain.Run{
		ID:               uuid.NewString(),
		WorkflowName:     workflowName,
		StartedAt:        time.Now().UTC(),
		Questions:        questions,
		CurrentIndex:     0,
		Status:           domain.RunActive,
		Answers:          make(map[string]any),
		Visited:          make(map[string]bool),
		ConditionResults: make(map[string]bool),
	}
	run.MarkVisited(questions[0].QuestionID)
	e.logger.Debug("run started", "run", run.ID, "workflow", workflowName, "questions", len(questions))
	return run, nil
}

// Advance records the answer for the current question and moves the run
// forward. Branching wins over declared order: when the graph resolves a
// next question the run jumps there, even backwards. When the current node
// has outgoing edges but none leads to a question, the branch is exhausted
// and the run completes. Only when the node has no outgoing edges at all
// does the run fall back to the next question in declared order.
func (e *Engine) Advance(run *domain.Run, answer any) error {
	if run.Status == domain.RunCompleted {
		return domain.ErrRunCompleted
	}
	current, ok := run.CurrentQuestion()
	if !ok {
		run.Status = domain.RunCompleted
		return nil
	}
	if current.Required && answerMissing(current, answer) {
		return domain.ErrAnswerRequired
	}
	run.Answers[current.QuestionID] = answer

	if next := e.ResolveNextQuestionID(run, current); next != "" {
		if idx := run.QuestionIndex(next); idx >= 0 {
			run.CurrentIndex = idx
			run.MarkVisited(next)
			e.logger.Debug("branch taken", "run", run.ID, "from", current.QuestionID, "to", next)
			return nil
		}
		e.logger.Warn("resolved question not in run", "run", run.ID, "question", next)
	}

	if e.graph.HasEdgesFrom(current.NodeID) {
		run.Status = domain.RunCompleted
		return nil
	}
	nextIndex := run.CurrentIndex + 1
	if nextIndex >= len(run.Questions) {
		run.Status = domain.RunCompleted
		return nil
	}
	run.CurrentIndex = nextIndex
	run.MarkVisited(run.Questions[nextIndex].QuestionID)
	return nil
}

// Back steps the run to the previous position in declared order. Answers
// already captured are kept.
func (e *Engine) Back(run *domain.Run) {
	if run.Status == domain.RunCompleted {
		run.Status = domain.RunActive
	}
	if run.CurrentIndex > 0 {
		run.CurrentIndex--
	}
}

// Restart clears every answer, cached condition result and visit mark,
// repositioning the run on the first question.
func (e *Engine) Restart(run *domain.Run) {
	run.Answers = make(map[string]any)
	run.ConditionResults = make(map[string]bool)
	run.Visited = make(map[string]bool)
	run.CurrentIndex = 0
	run.Status = domain.RunActive
	if len(run.Questions) > 0 {
		run.MarkVisited(run.Questions[0].QuestionID)
	}
}

// Finish compiles the run's answers into a response using an already
// compiled form: final score plus the actions of every matched rule.
func (e *Engine) Finish(run *domain.Run, form forms.FormDefinition) forms.FormResponse {
	run.Status = domain.RunCompleted
	score := forms.Compute(form, run.Answers)
	actions := forms.EvaluateOnAnswers(form, run.Answers)
	actions = append(actions, forms.EvaluateOnFinalScore(form, score, run.Answers)...)
	return forms.FormResponse{
		FormID:           form.ID,
		FormVersion:      form.Version,
		Answers:          run.Answers,
		Score:            score,
		TriggeredActions: actions,
		CompletedAt:      time.Now().UTC(),
	}
}

// ResolveNextQuestionID resolves where the run goes after the current
// question: the first outgoing edge whose target is a question wins
// immediately; condition targets are evaluated and may route further.
// Returns "" when no edge leads to a question.
func (e *Engine) ResolveNextQuestionID(run *domain.Run, current domain.RunnerQuestion) string {
	visited := make(map[string]bool)
	return e.followFromNode(run, current.NodeID, visited)
}

// followFromNode scans the node's outgoing edges in stored order. The
// visited set guards against condition cycles within one resolution step.
func (e *Engine) followFromNode(run *domain.Run, nodeID string, visited map[string]bool) string {
	for _, edge := range e.graph.EdgesFrom(nodeID) {
		target, ok := e.nodes[edge.To]
		if !ok {
			continue
		}
		switch target.Kind {
		case domain.NodeKindQuestion:
			return e.businessID(target)
		case domain.NodeKindCondition:
			if resolved := e.evaluateConditionNode(run, target, visited); resolved != "" {
				return resolved
			}
		}
	}
	return ""
}

// evaluateConditionNode evaluates the node's conditions in declared order,
// caching every result on the run. The first true condition routes through
// the edge carrying its id; when that edge's target is itself a condition
// node the result of the recursion is final for this node, found or not.
// When no condition routes anywhere, the fallback edge (no condition id)
// applies. A node already on the visited path resolves to nothing.
func (e *Engine) evaluateConditionNode(run *domain.Run, node domain.GraphNode, visited map[string]bool) string {
	if visited[node.ID] {
		e.logger.Debug("condition cycle broken", "node", node.ID)
		return ""
	}
	visited[node.ID] = true

	data, err := node.ConditionData()
	if err != nil {
		e.logger.Warn("skipping undecodable condition node", "node", node.ID, "error", err)
		return ""
	}

	for _, cond := range data.Conditions {
		result := e.evaluateCondition(run, data.ConditionType, cond)
		if cond.ID != "" {
			run.ConditionResults[cond.ID] = result
		}
		if !result {
			continue
		}
		edge, ok := firstEdgeWithCondition(e.graph.EdgesFrom(node.ID), cond.ID)
		if !ok {
			continue
		}
		target, ok := e.nodes[edge.To]
		if !ok {
			continue
		}
		switch target.Kind {
		case domain.NodeKindQuestion:
			return e.businessID(target)
		case domain.NodeKindCondition:
			return e.evaluateConditionNode(run, target, visited)
		}
	}

	if edge, ok := firstEdgeWithCondition(e.graph.EdgesFrom(node.ID), ""); ok {
		if target, ok := e.nodes[edge.To]; ok {
			switch target.Kind {
			case domain.NodeKindQuestion:
				return e.businessID(target)
			case domain.NodeKindCondition:
				return e.evaluateConditionNode(run, target, visited)
			}
		}
	}
	return ""
}

// evaluateCondition dispatches one condition to the comparison evaluator or
// the pluggable expression predicate. The per-condition type wins; empty
// falls back to the node-level type, then to comparison.
func (e *Engine) evaluateCondition(run *domain.Run, nodeType domain.ConditionType, cond domain.Condition) bool {
	condType := cond.Type
	if condType == "" {
		condType = nodeType
	}
	if condType == domain.ConditionExpression {
		if e.exprEval == nil {
			return false
		}
		result, err := e.exprEval(cond.Expression, run.Answers)
		if err != nil {
			e.logger.Warn("expression evaluation failed", "condition", cond.ID, "error", err)
			return false
		}
		return result
	}
	return e.isComparisonTrue(run, cond)
}

// firstEdgeWithCondition returns the first edge carrying exactly the given
// condition id ("" selects the fallback edge).
func firstEdgeWithCondition(edges []domain.GraphEdge, conditionID string) (domain.GraphEdge, bool) {
	for _, edge := range edges {
		if edge.ConditionID == conditionID {
			return edge, true
		}
	}
	return domain.GraphEdge{}, false
}

// businessID returns a question node's business id, falling back to the
// node id for nodes whose data carries none.
func (e *Engine) businessID(node domain.GraphNode) string {
	if id, ok := e.questionIDs[node.ID]; ok {
		return id
	}
	return node.ID
}

// answerMissing implements required-answer validation per question type:
// booleans accept false but not nil, multi selects need a non-empty slice,
// everything else rejects nil, empty strings and empty slices.
func answerMissing(q domain.RunnerQuestion, value any) bool {
	switch q.TypeID {
	case domain.QuestionTypeBoolean:
		return value == nil
	case domain.QuestionTypeMulti:
		rv := reflect.ValueOf(value)
		return value == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) || rv.Len() == 0
	default:
		return emptyAnswer(value)
	}
}
