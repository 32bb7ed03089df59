package inquira_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbarros/inquira"
	"github.com/mbarros/inquira/internal/testutils"
	"github.com/mbarros/inquira/pkg/domain"
	"github.com/mbarros/inquira/pkg/forms"
)

// triageGraph: boolean q1 routes a positive answer into a scored intensity
// question q2 and an alert; a negative answer skips straight to q3.
//
//	q1 --> c1(q1 == true) --cond-pain--> q2, alert DOR
//	                       `fallback --> q3
//	q2 --> q3 (declared order)
func triageGraph() domain.GraphModel {
	return domain.GraphModel{
		Nodes: []domain.GraphNode{
			testutils.BooleanQuestion("n1", "q1", "Sente dor?", 1),
			testutils.SingleChoiceQuestion("n2", "q2", "Qual a intensidade?", 2, []map[string]any{
				{"value": "leve", "label": "Leve", "score": 1},
				{"value": "grave", "label": "Grave", "score": 5},
			}),
			testutils.QuestionNode("n3", "q3", "Observações", 3, domain.QuestionTypeText, nil),
			testutils.ConditionNode("c1",
				testutils.FixedComparison("cond-pain", "q1", "value", "==", true),
			),
			testutils.ActionNode("a1", "emitAlert", map[string]any{"alertCode": "DOR"}),
		},
		Edges: []domain.GraphEdge{
			testutils.Edge("e1", "n1", "c1"),
			testutils.ConditionEdge("e2", "c1", "n2", "cond-pain"),
			testutils.Edge("e3", "c1", "n3"),
			testutils.ConditionEdge("e4", "c1", "a1", "cond-pain"),
		},
	}
}

func newTriageService(t *testing.T) (*inquira.Service, context.Context) {
	t.Helper()
	ctx := context.Background()
	svc := inquira.New()
	require.NoError(t, svc.SaveWorkflow(ctx, "triagem", triageGraph(), "Triagem"))
	return svc, ctx
}

func currentQuestionID(t *testing.T, run *domain.Run) string {
	t.Helper()
	q, ok := run.CurrentQuestion()
	require.True(t, ok, "run has no current question")
	return q.QuestionID
}

func TestSaveWorkflowRequiresName(t *testing.T) {
	svc := inquira.New()
	err := svc.SaveWorkflow(context.Background(), "", triageGraph(), "")
	assert.ErrorIs(t, err, domain.ErrNameRequired)
}

func TestWorkflowEmptyNameLoadsMostRecent(t *testing.T) {
	svc, ctx := newTriageService(t)
	require.NoError(t, svc.SaveWorkflow(ctx, "outro", triageGraph(), ""))

	snap, err := svc.Workflow(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "outro", snap.Name)
}

func TestStartRunUnknownWorkflow(t *testing.T) {
	svc := inquira.New()
	_, err := svc.StartRun(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestInteractiveJourneyPositivePath(t *testing.T) {
	svc, ctx := newTriageService(t)

	run, err := svc.StartRun(ctx, "triagem")
	require.NoError(t, err)
	assert.Equal(t, "q1", currentQuestionID(t, run))

	run, err = svc.Answer(ctx, run.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "q2", currentQuestionID(t, run))

	run, err = svc.Answer(ctx, run.ID, "grave")
	require.NoError(t, err)
	assert.Equal(t, "q3", currentQuestionID(t, run))

	run, err = svc.Answer(ctx, run.ID, "acompanhar")
	require.NoError(t, err)
	assert.Equal(t, domain.RunCompleted, run.Status)

	resp, err := svc.Finish(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, resp.Score, "the grave option scores 5")
	require.Len(t, resp.TriggeredActions, 1)
	assert.Equal(t, domain.ActionEmitAlert, resp.TriggeredActions[0].Type)
	assert.Equal(t, "DOR", resp.TriggeredActions[0].AlertCode)
	assert.Equal(t, true, resp.Answers["q1"])
}

func TestInteractiveJourneyNegativePath(t *testing.T) {
	svc, ctx := newTriageService(t)

	run, err := svc.StartRun(ctx, "triagem")
	require.NoError(t, err)

	run, err = svc.Answer(ctx, run.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "q3", currentQuestionID(t, run), "negative answer skips the intensity question")

	run, err = svc.Answer(ctx, run.ID, "nada a relatar")
	require.NoError(t, err)
	assert.Equal(t, domain.RunCompleted, run.Status)

	summary := run.SummaryQuestions()
	ids := make([]string, len(summary))
	for i, q := range summary {
		ids[i] = q.QuestionID
	}
	assert.Equal(t, []string{"q1", "q3"}, ids)

	resp, err := svc.Finish(ctx, run.ID)
	require.NoError(t, err)
	assert.Zero(t, resp.Score)
	assert.Empty(t, resp.TriggeredActions)
}

func TestRestartClearsProgress(t *testing.T) {
	svc, ctx := newTriageService(t)

	run, err := svc.StartRun(ctx, "triagem")
	require.NoError(t, err)
	run, err = svc.Answer(ctx, run.ID, true)
	require.NoError(t, err)

	run, err = svc.Restart(ctx, run.ID)
	require.NoError(t, err)
	assert.Empty(t, run.Answers)
	assert.Equal(t, "q1", currentQuestionID(t, run))

	// The restarted state must have been persisted.
	reloaded, err := svc.Run(ctx, run.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Answers)
}

func TestCompileProducesFormDefinition(t *testing.T) {
	svc, ctx := newTriageService(t)

	form, err := svc.Compile(ctx, "triagem", forms.FormDefinition{})
	require.NoError(t, err)
	assert.Equal(t, "Triagem", form.Name, "empty base name falls back to the snapshot's form name")
	assert.Len(t, form.Questions, 3)

	q2, ok := form.QuestionByID("q2")
	require.True(t, ok)
	assert.Equal(t, map[string]float64{"leve": 1, "grave": 5}, q2.ScoreMap)

	require.Len(t, form.Rules, 1)
	trigger := form.Rules[0].Triggers[0]
	assert.Equal(t, forms.TriggerOnAnswer, trigger.Kind)
	assert.Equal(t, "q1", trigger.QuestionID)
}

func TestEvaluateCompiledForm(t *testing.T) {
	svc, ctx := newTriageService(t)

	form, err := svc.Compile(ctx, "triagem", forms.FormDefinition{})
	require.NoError(t, err)

	score, actions := svc.Evaluate(form, map[string]any{"q1": true, "q2": "leve"})
	assert.Equal(t, 1.0, score)
	require.Len(t, actions, 1)
	assert.Equal(t, "DOR", actions[0].AlertCode)

	score, actions = svc.Evaluate(form, map[string]any{"q1": false})
	assert.Zero(t, score)
	assert.Empty(t, actions)
}

func TestExpressionEvaluatorOption(t *testing.T) {
	ctx := context.Background()
	g := domain.GraphModel{
		Nodes: []domain.GraphNode{
			testutils.BooleanQuestion("n1", "q1", "Q", 1),
			testutils.QuestionNode("n2", "q2", "fallback", 2, domain.QuestionTypeText, nil),
			testutils.QuestionNode("n3", "q3", "matched", 3, domain.QuestionTypeText, nil),
			{ID: "c1", Kind: domain.NodeKindCondition, Data: map[string]any{
				"conditionType": "expression",
				"conditions": []any{map[string]any{
					"id":         "cond-1",
					"type":       "expression",
					"expression": "$q1 == 'sim'",
				}},
			}},
		},
		Edges: []domain.GraphEdge{
			testutils.Edge("e1", "n1", "c1"),
			testutils.ConditionEdge("e2", "c1", "n3", "cond-1"),
			testutils.Edge("e3", "c1", "n2"),
		},
	}

	svc := inquira.New(inquira.WithExpressionEvaluator(func(expression string, answers map[string]any) (bool, error) {
		return answers["q1"] == "sim", nil
	}))
	require.NoError(t, svc.SaveWorkflow(ctx, "expr", g, ""))

	run, err := svc.StartRun(ctx, "expr")
	require.NoError(t, err)
	run, err = svc.Answer(ctx, run.ID, "sim")
	require.NoError(t, err)
	assert.Equal(t, "q3", currentQuestionID(t, run))
}
