// Package cli hosts the interactive questionnaire session loop used by the
// run command.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mbarros/inquira"
	"github.com/mbarros/inquira/internal/presentation/tui"
	"github.com/mbarros/inquira/pkg/domain"
	"github.com/mbarros/inquira/pkg/forms"
)

// Session drives one interactive run over stdin/stdout.
type Session struct {
	svc    *inquira.Service
	in     *bufio.Scanner
	out    io.Writer
	render func(string) (string, error)
	json   bool
}

// NewSession wires a session over the given streams. In JSON mode every
// event is emitted as one NDJSON line and the markdown renderer is skipped.
func NewSession(svc *inquira.Service, in io.Reader, out io.Writer, jsonMode bool) *Session {
	s := &Session{
		svc:  svc,
		in:   bufio.NewScanner(in),
		out:  out,
		json: jsonMode,
	}
	if jsonMode {
		s.render = func(md string) (string, error) { return md, nil }
	} else {
		s.render = tui.NewRenderer()
	}
	return s
}

// Run walks the named workflow until the run completes or input ends.
// Meta commands: ":back" steps back, ":restart" starts over, ":quit" leaves
// without finishing.
func (s *Session) Run(ctx context.Context, workflowName string) error {
	run, err := s.svc.StartRun(ctx, workflowName)
	if err != nil {
		return err
	}
	s.emit("started", map[string]any{"run": run.ID, "workflow": run.WorkflowName})

	for run.Status == domain.RunActive {
		q, ok := run.CurrentQuestion()
		if !ok {
			break
		}
		s.printQuestion(q)

		if !s.in.Scan() {
			s.emit("aborted", map[string]any{"run": run.ID})
			return s.in.Err()
		}
		line := strings.TrimSpace(s.in.Text())

		switch line {
		case ":quit":
			s.emit("aborted", map[string]any{"run": run.ID})
			return nil
		case ":back":
			run, err = s.svc.Back(ctx, run.ID)
			if err != nil {
				return err
			}
			continue
		case ":restart":
			run, err = s.svc.Restart(ctx, run.ID)
			if err != nil {
				return err
			}
			continue
		}

		run, err = s.svc.Answer(ctx, run.ID, parseAnswer(q, line))
		if err != nil {
			if errors.Is(err, domain.ErrAnswerRequired) {
				s.printMarkdown("*Esta pergunta é obrigatória.*")
				continue
			}
			return err
		}
	}

	resp, err := s.svc.Finish(ctx, run.ID)
	if err != nil {
		return err
	}

	if s.json {
		s.emit("finished", map[string]any{"run": run.ID, "response": resp})
		return nil
	}

	run, err = s.svc.Run(ctx, run.ID)
	if err != nil {
		return err
	}
	var sb strings.Builder
	sb.WriteString("## Resumo\n\n")
	for _, q := range run.SummaryQuestions() {
		sb.WriteString(fmt.Sprintf("- **%s**: %v\n", q.Label, run.Answers[q.QuestionID]))
	}
	sb.WriteString(fmt.Sprintf("\n**Pontuação final:** %v\n", resp.Score))
	if len(resp.TriggeredActions) > 0 {
		sb.WriteString("\n**Ações disparadas:**\n")
		for _, a := range resp.TriggeredActions {
			sb.WriteString(fmt.Sprintf("- %s\n", describeAction(a)))
		}
	}
	s.printMarkdown(sb.String())
	return nil
}

func (s *Session) printQuestion(q domain.RunnerQuestion) {
	if s.json {
		s.emit("question", map[string]any{"question": q})
		return
	}
	var sb strings.Builder
	sb.WriteString("### " + q.Label + "\n")
	if q.HelpText != "" {
		sb.WriteString("\n" + q.HelpText + "\n")
	}
	switch {
	case q.TypeID == domain.QuestionTypeBoolean:
		trueLabel, falseLabel := q.TrueLabel, q.FalseLabel
		if trueLabel == "" {
			trueLabel = "sim"
		}
		if falseLabel == "" {
			falseLabel = "não"
		}
		sb.WriteString(fmt.Sprintf("\n(%s / %s)\n", trueLabel, falseLabel))
	case domain.IsChoiceType(q.TypeID):
		sb.WriteString("\n")
		for _, opt := range q.Options {
			sb.WriteString(fmt.Sprintf("- `%v` %s\n", opt.Value, opt.Label))
		}
		if q.TypeID == domain.QuestionTypeMulti {
			sb.WriteString("\n*Separe múltiplos valores por vírgula.*\n")
		}
	}
	s.printMarkdown(sb.String())
	fmt.Fprint(s.out, "> ")
}

func (s *Session) printMarkdown(md string) {
	rendered, err := s.render(md)
	if err != nil {
		rendered = md
	}
	fmt.Fprint(s.out, rendered)
}

func (s *Session) emit(event string, payload map[string]any) {
	if !s.json {
		return
	}
	line := map[string]any{"event": event}
	for k, v := range payload {
		line[k] = v
	}
	data, err := json.Marshal(line)
	if err != nil {
		return
	}
	fmt.Fprintln(s.out, string(data))
}

// parseAnswer converts raw line input into the answer shape the engine
// expects for the question type: numbers become floats, multi selects a
// comma-separated slice, everything else stays a string. Boolean synonyms
// are normalized later by the engine itself.
func parseAnswer(q domain.RunnerQuestion, line string) any {
	if line == "" {
		return nil
	}
	switch q.TypeID {
	case domain.QuestionTypeNumber:
		if n, err := strconv.ParseFloat(line, 64); err == nil {
			return n
		}
		return line
	case domain.QuestionTypeMulti:
		parts := strings.Split(line, ",")
		out := make([]any, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	default:
		return line
	}
}

func describeAction(a forms.RuleAction) string {
	switch a.Type {
	case domain.ActionOpenForm:
		return fmt.Sprintf("abrir formulário %s", a.FormID)
	case domain.ActionEmitAlert:
		return fmt.Sprintf("alerta %s", a.AlertCode)
	case domain.ActionWebhook:
		return fmt.Sprintf("webhook %s %s", a.Method, a.URL)
	case domain.ActionSetTag:
		return fmt.Sprintf("tag %s", a.Tag)
	case domain.ActionSetField:
		return fmt.Sprintf("campo %s = %v", a.FieldPath, a.Value)
	default:
		return string(a.Type)
	}
}
