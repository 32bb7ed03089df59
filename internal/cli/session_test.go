package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbarros/inquira"
	"github.com/mbarros/inquira/internal/testutils"
	"github.com/mbarros/inquira/pkg/domain"
)

func newSessionService(t *testing.T) *inquira.Service {
	t.Helper()
	svc := inquira.New()
	require.NoError(t, svc.SaveWorkflow(context.Background(), "wf", testutils.LinearGraph(2), "Linear"))
	return svc
}

// events parses the NDJSON lines a JSON-mode session wrote. Non-JSON lines
// (renderer output for validation hints) are skipped.
func events(t *testing.T, out *bytes.Buffer) []map[string]any {
	t.Helper()
	var evs []map[string]any
	for _, line := range strings.Split(out.String(), "\n") {
		var ev map[string]any
		if json.Unmarshal([]byte(line), &ev) == nil && ev["event"] != nil {
			evs = append(evs, ev)
		}
	}
	return evs
}

func TestSessionJSONRun(t *testing.T) {
	svc := newSessionService(t)
	var out bytes.Buffer
	s := NewSession(svc, strings.NewReader("primeira\nsegunda\n"), &out, true)

	require.NoError(t, s.Run(context.Background(), "wf"))

	evs := events(t, &out)
	require.Len(t, evs, 4)
	assert.Equal(t, "started", evs[0]["event"])
	assert.Equal(t, "question", evs[1]["event"])
	assert.Equal(t, "question", evs[2]["event"])
	assert.Equal(t, "finished", evs[3]["event"])

	runID := evs[0]["run"].(string)
	run, err := svc.Run(context.Background(), runID)
	require.NoError(t, err)
	assert.Equal(t, domain.RunCompleted, run.Status)
	assert.Equal(t, "primeira", run.Answers["q-a"])
	assert.Equal(t, "segunda", run.Answers["q-b"])
}

func TestSessionBackRewritesAnswer(t *testing.T) {
	svc := newSessionService(t)
	var out bytes.Buffer
	s := NewSession(svc, strings.NewReader("errada\n:back\ncerta\nsegunda\n"), &out, true)

	require.NoError(t, s.Run(context.Background(), "wf"))

	evs := events(t, &out)
	runID := evs[0]["run"].(string)
	run, err := svc.Run(context.Background(), runID)
	require.NoError(t, err)
	assert.Equal(t, "certa", run.Answers["q-a"])
	assert.Equal(t, "segunda", run.Answers["q-b"])
}

func TestSessionRestartClearsAnswers(t *testing.T) {
	svc := newSessionService(t)
	var out bytes.Buffer
	s := NewSession(svc, strings.NewReader("velha\n:restart\nnova\nsegunda\n"), &out, true)

	require.NoError(t, s.Run(context.Background(), "wf"))

	evs := events(t, &out)
	runID := evs[0]["run"].(string)
	run, err := svc.Run(context.Background(), runID)
	require.NoError(t, err)
	assert.Equal(t, "nova", run.Answers["q-a"])
}

func TestSessionQuitLeavesRunActive(t *testing.T) {
	svc := newSessionService(t)
	var out bytes.Buffer
	s := NewSession(svc, strings.NewReader(":quit\n"), &out, true)

	require.NoError(t, s.Run(context.Background(), "wf"))

	evs := events(t, &out)
	require.Len(t, evs, 3)
	assert.Equal(t, "aborted", evs[2]["event"])

	runID := evs[0]["run"].(string)
	run, err := svc.Run(context.Background(), runID)
	require.NoError(t, err)
	assert.Equal(t, domain.RunActive, run.Status)
}

func TestParseAnswerShapes(t *testing.T) {
	number := domain.RunnerQuestion{TypeID: domain.QuestionTypeNumber}
	assert.Equal(t, 7.5, parseAnswer(number, "7.5"))
	assert.Equal(t, "sete", parseAnswer(number, "sete"))

	multi := domain.RunnerQuestion{TypeID: domain.QuestionTypeMulti}
	assert.Equal(t, []any{"a", "b"}, parseAnswer(multi, "a, b,"))

	text := domain.RunnerQuestion{TypeID: domain.QuestionTypeText}
	assert.Nil(t, parseAnswer(text, ""))
	assert.Equal(t, "livre", parseAnswer(text, "livre"))
}
