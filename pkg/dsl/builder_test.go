package dsl

import (
	"testing"

	"github.com/mbarros/inquira/pkg/domain"
)

func buildTriage(t *testing.T) domain.GraphModel {
	t.Helper()
	b := New()

	b.Question("n1").ID("q1").Boolean().Label("Sente dor?").Required().
		Labels("Sim", "Não").
		To("c1")
	b.Question("n2").ID("q2").SingleChoice().Label("Qual a intensidade?").
		ScoredOption("leve", "Leve", 1).
		ScoredOption("grave", "Grave", 5)
	b.Question("n3").ID("q3").Label("Observações").Help("Campo livre")

	b.Condition("c1").
		WhenQuestion("cond-pain", "q1", domain.OpEqual, true).
		Then("cond-pain", "n2").
		Then("cond-pain", "a1").
		Else("n3")

	b.Action("a1").EmitAlert("DOR")

	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	return g
}

func TestBuilderQuestionNodes(t *testing.T) {
	g := buildTriage(t)

	if len(g.Nodes) != 5 {
		t.Fatalf("expected 5 nodes, got %d", len(g.Nodes))
	}

	n1, ok := g.NodeByID("n1")
	if !ok {
		t.Fatal("n1 not found")
	}
	q1, err := n1.QuestionData()
	if err != nil {
		t.Fatalf("QuestionData(n1) failed: %v", err)
	}
	if q1.ID != "q1" {
		t.Errorf("expected business id q1, got %q", q1.ID)
	}
	if q1.Type.ID != domain.QuestionTypeBoolean {
		t.Errorf("expected boolean type, got %d", q1.Type.ID)
	}
	if !q1.Required {
		t.Error("expected q1 to be required")
	}
	if q1.TrueLabel != "Sim" || q1.FalseLabel != "Não" {
		t.Errorf("unexpected labels: %q / %q", q1.TrueLabel, q1.FalseLabel)
	}

	n2, _ := g.NodeByID("n2")
	q2, err := n2.QuestionData()
	if err != nil {
		t.Fatalf("QuestionData(n2) failed: %v", err)
	}
	if len(q2.Options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(q2.Options))
	}
	if q2.Options[1].Score == nil || *q2.Options[1].Score != 5 {
		t.Errorf("expected grave option score 5, got %v", q2.Options[1].Score)
	}
}

func TestBuilderAutoSequencing(t *testing.T) {
	g := buildTriage(t)

	wantSeq := map[string]int{"n1": 1, "n2": 2, "n3": 3}
	for nodeID, want := range wantSeq {
		node, _ := g.NodeByID(nodeID)
		data, err := node.QuestionData()
		if err != nil {
			t.Fatalf("QuestionData(%s) failed: %v", nodeID, err)
		}
		if data.Seq != want {
			t.Errorf("node %s: expected seq %d, got %d", nodeID, want, data.Seq)
		}
	}
}

func TestBuilderSeqOverride(t *testing.T) {
	b := New()
	b.Question("n1").Seq(10)
	b.Question("n2")

	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	data, err := g.Nodes[0].QuestionData()
	if err != nil {
		t.Fatalf("QuestionData failed: %v", err)
	}
	if data.Seq != 10 {
		t.Errorf("explicit seq must win, got %d", data.Seq)
	}
}

func TestBuilderConditionNode(t *testing.T) {
	g := buildTriage(t)

	c1, _ := g.NodeByID("c1")
	data, err := c1.ConditionData()
	if err != nil {
		t.Fatalf("ConditionData(c1) failed: %v", err)
	}
	if len(data.Conditions) != 1 {
		t.Fatalf("expected 1 condition, got %d", len(data.Conditions))
	}
	cond := data.Conditions[0]
	if cond.ID != "cond-pain" {
		t.Errorf("expected id cond-pain, got %q", cond.ID)
	}
	if cond.ValueType != domain.TermQuestion || cond.QuestionID != "q1" {
		t.Errorf("unexpected left term: %+v", cond)
	}
	if cond.Operator != domain.OpEqual {
		t.Errorf("expected ==, got %q", cond.Operator)
	}
	if cond.CompareValueType != domain.TermFixed || cond.CompareValue != true {
		t.Errorf("unexpected right term: %+v", cond)
	}
}

func TestBuilderEdges(t *testing.T) {
	g := buildTriage(t)

	edges := g.EdgesFrom("c1")
	if len(edges) != 3 {
		t.Fatalf("expected 3 edges from c1, got %d", len(edges))
	}
	// Then edges precede the fallback, in call order.
	if edges[0].ConditionID != "cond-pain" || edges[0].To != "n2" {
		t.Errorf("unexpected first edge: %+v", edges[0])
	}
	if edges[2].ConditionID != "" || edges[2].To != "n3" {
		t.Errorf("fallback edge must come last: %+v", edges[2])
	}
}

func TestBuilderRejectsDanglingEdge(t *testing.T) {
	b := New()
	b.Question("n1").To("missing")

	if _, err := b.Build(); err == nil {
		t.Fatal("expected an error for an edge to an undeclared node")
	}
}

func TestBuilderEndNode(t *testing.T) {
	b := New()
	b.Question("n1")
	b.End("end").
		ScoreCondition("high", "Risco alto", domain.OpGreaterEqual, 10).
		ScoreBetween("mid", "Risco médio", 5, 9).
		Then("high", "a1").
		Then("mid", "a2")
	b.Action("a1").EmitAlert("HIGH")
	b.Action("a2").SetTag("acompanhamento")

	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	end, _ := g.NodeByID("end")
	data, err := end.EndData()
	if err != nil {
		t.Fatalf("EndData failed: %v", err)
	}
	if len(data.Conditions) != 2 {
		t.Fatalf("expected 2 score conditions, got %d", len(data.Conditions))
	}
	if data.Conditions[0].Operator != domain.OpGreaterEqual || data.Conditions[0].Value != 10 {
		t.Errorf("unexpected first condition: %+v", data.Conditions[0])
	}
	if data.Conditions[1].Range == nil || *data.Conditions[1].Range != [2]float64{5, 9} {
		t.Errorf("unexpected range condition: %+v", data.Conditions[1])
	}
}
