package inquira

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mbarros/inquira/internal/logging"
	"github.com/mbarros/inquira/internal/runtime"
	"github.com/mbarros/inquira/pkg/adapters/memory"
	"github.com/mbarros/inquira/pkg/compiler"
	"github.com/mbarros/inquira/pkg/domain"
	"github.com/mbarros/inquira/pkg/forms"
	"github.com/mbarros/inquira/pkg/ports"
)

// Version is the library version, overridable at build time via ldflags.
var Version = "0.1.0"

// Service is the high-level entry point for the Inquira library.
// It wraps the internal runtime and provides a simplified API for hosts:
// workflow persistence, interactive runs, graph compilation and batch rule
// evaluation.
type Service struct {
	snapshots ports.SnapshotStore
	runs      ports.RunStore
	exprEval  runtime.ExpressionEvaluator
	logger    *slog.Logger
}

// Option defines a functional option for configuring the Service.
type Option func(*Service)

// WithSnapshotStore injects a custom snapshot store, replacing the default
// in-memory one.
func WithSnapshotStore(store ports.SnapshotStore) Option {
	return func(s *Service) {
		s.snapshots = store
	}
}

// WithRunStore injects a custom run store, replacing the default in-memory
// one.
func WithRunStore(store ports.RunStore) Option {
	return func(s *Service) {
		s.runs = store
	}
}

// WithExpressionEvaluator sets the predicate used for expression
// conditions. Without one, expression conditions never match.
func WithExpressionEvaluator(eval runtime.ExpressionEvaluator) Option {
	return func(s *Service) {
		s.exprEval = eval
	}
}

// WithLogger sets a custom structured logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New initializes a new Inquira Service. By default both stores are
// in-memory; inject persistent adapters through the options.
func New(opts ...Option) *Service {
	s := &Service{
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.snapshots == nil {
		s.snapshots = memory.NewSnapshotStore()
	}
	if s.runs == nil {
		s.runs = memory.NewRunStore()
	}
	return s
}

// SaveWorkflow stores a named graph snapshot, stamping the save time.
func (s *Service) SaveWorkflow(ctx context.Context, name string, graph domain.GraphModel, formName string) error {
	if name == "" {
		return domain.ErrNameRequired
	}
	snap := domain.WorkflowSnapshot{
		Name:     name,
		Graph:    graph,
		SavedAt:  time.Now().UTC(),
		FormName: formName,
	}
	if err := s.snapshots.Save(ctx, snap); err != nil {
		return fmt.Errorf("save workflow %q: %w", name, err)
	}
	s.logger.Info("workflow saved", "workflow", name, "nodes", len(graph.Nodes), "edges", len(graph.Edges))
	return nil
}

// Workflows lists every stored snapshot, most recently saved first.
func (s *Service) Workflows(ctx context.Context) ([]domain.WorkflowSnapshot, error) {
	return s.snapshots.List(ctx)
}

// Workflow loads a snapshot by name. An empty name loads the most recently
// saved one.
func (s *Service) Workflow(ctx context.Context, name string) (domain.WorkflowSnapshot, error) {
	if name == "" {
		return s.snapshots.LoadLast(ctx)
	}
	return s.snapshots.Load(ctx, name)
}

// DeleteWorkflow removes a stored snapshot.
func (s *Service) DeleteWorkflow(ctx context.Context, name string) error {
	return s.snapshots.Delete(ctx, name)
}

// StartRun begins an interactive run over a stored workflow. An empty name
// uses the most recently saved one.
func (s *Service) StartRun(ctx context.Context, workflowName string) (*domain.Run, error) {
	snap, err := s.Workflow(ctx, workflowName)
	if err != nil {
		return nil, err
	}
	run, err := s.engine(snap).NewRun(snap.Name)
	if err != nil {
		return nil, err
	}
	if err := s.runs.Save(ctx, run); err != nil {
		return nil, fmt.Errorf("persist run: %w", err)
	}
	return run, nil
}

// Answer records the answer for the run's current question and advances it,
// following the graph's branching.
func (s *Service) Answer(ctx context.Context, runID string, answer any) (*domain.Run, error) {
	run, eng, err := s.load(ctx, runID)
	if err != nil {
		return nil, err
	}
	if err := eng.Advance(run, answer); err != nil {
		return nil, err
	}
	if err := s.runs.Save(ctx, run); err != nil {
		return nil, fmt.Errorf("persist run: %w", err)
	}
	return run, nil
}

// Back steps the run to the previous question, keeping captured answers.
func (s *Service) Back(ctx context.Context, runID string) (*domain.Run, error) {
	run, eng, err := s.load(ctx, runID)
	if err != nil {
		return nil, err
	}
	eng.Back(run)
	if err := s.runs.Save(ctx, run); err != nil {
		return nil, fmt.Errorf("persist run: %w", err)
	}
	return run, nil
}

// Restart clears the run's answers and repositions it on the first
// question.
func (s *Service) Restart(ctx context.Context, runID string) (*domain.Run, error) {
	run, eng, err := s.load(ctx, runID)
	if err != nil {
		return nil, err
	}
	eng.Restart(run)
	if err := s.runs.Save(ctx, run); err != nil {
		return nil, fmt.Errorf("persist run: %w", err)
	}
	return run, nil
}

// Finish completes a run: the workflow is compiled, the final score
// computed and every matched rule's actions collected into the response.
func (s *Service) Finish(ctx context.Context, runID string) (forms.FormResponse, error) {
	run, err := s.runs.Load(ctx, runID)
	if err != nil {
		return forms.FormResponse{}, err
	}
	snap, err := s.Workflow(ctx, run.WorkflowName)
	if err != nil {
		return forms.FormResponse{}, err
	}
	form := compiler.ToFormDefinition(snap.Graph, forms.FormDefinition{Name: snap.FormName})
	resp := s.engine(snap).Finish(run, form)
	if err := s.runs.Save(ctx, run); err != nil {
		return forms.FormResponse{}, fmt.Errorf("persist run: %w", err)
	}
	s.logger.Info("run finished", "run", run.ID, "score", resp.Score, "actions", len(resp.TriggeredActions))
	return resp, nil
}

// Run loads the current state of a run.
func (s *Service) Run(ctx context.Context, runID string) (*domain.Run, error) {
	return s.runs.Load(ctx, runID)
}

// Compile flattens a stored workflow's graph into a form definition.
func (s *Service) Compile(ctx context.Context, workflowName string, base forms.FormDefinition) (forms.FormDefinition, error) {
	snap, err := s.Workflow(ctx, workflowName)
	if err != nil {
		return forms.FormDefinition{}, err
	}
	if base.Name == "" {
		base.Name = snap.FormName
	}
	return compiler.ToFormDefinition(snap.Graph, base), nil
}

// Evaluate runs a compiled form's rules against a completed answer set:
// the final score plus the actions of every matched per-answer and
// final-score rule, in rule order.
func (s *Service) Evaluate(form forms.FormDefinition, answers map[string]any) (float64, []forms.RuleAction) {
	score := forms.Compute(form, answers)
	actions := forms.EvaluateOnAnswers(form, answers)
	actions = append(actions, forms.EvaluateOnFinalScore(form, score, answers)...)
	return score, actions
}

// load fetches a run together with an engine over its workflow's graph.
func (s *Service) load(ctx context.Context, runID string) (*domain.Run, *runtime.Engine, error) {
	run, err := s.runs.Load(ctx, runID)
	if err != nil {
		return nil, nil, err
	}
	snap, err := s.Workflow(ctx, run.WorkflowName)
	if err != nil {
		return nil, nil, fmt.Errorf("load workflow for run %s: %w", runID, err)
	}
	return run, s.engine(snap), nil
}

func (s *Service) engine(snap domain.WorkflowSnapshot) *runtime.Engine {
	return runtime.NewEngine(snap.Graph,
		runtime.WithLogger(s.logger),
		runtime.WithExpressionEvaluator(s.exprEval),
	)
}
