package qa

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jinwoohan/insuragraph/internal/domain"
)

type serviceFixture struct {
	plannerLLM *fakeCompleter
	cypherLLM  *fakeCompleter
	answerLLM  *fakeCompleter
	ctxGraph   *fakeGraph
	execGraph  *fakeGraph
	svc        *Service
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	log := testLogger(t)

	f := &serviceFixture{
		plannerLLM: &fakeCompleter{
			jsonFn: func(ctx context.Context, system, user, schemaName string, schema map[string]any) (map[string]any, error) {
				return map[string]any{"metadata_types": []any{"qualification_summary"}}, nil
			},
		},
		cypherLLM: &fakeCompleter{
			textFn: func(ctx context.Context, system, user string) (string, error) {
				return "MATCH (q:Qualification {product_id: $product_id}) RETURN q.age_male_min AS age_male_min, q.age_male_max AS age_male_max", nil
			},
		},
		answerLLM: &fakeCompleter{
			textFn: func(ctx context.Context, system, user string) (string, error) {
				return "남자 기준 20세부터 60세까지 가입할 수 있습니다.", nil
			},
		},
		ctxGraph: &fakeGraph{
			readFn: func(ctx context.Context, cypher string, params map[string]any) ([]domain.Row, error) {
				return []domain.Row{row(
					"type1", "종합형", "type2", "표준형",
					"insurance_period", "20년", "payment_period", "10년",
					"age_male_min", 20, "age_male_max", 60,
					"age_female_min", 20, "age_female_max", 60,
					"payment_cycle", "월납",
				)}, nil
			},
		},
		execGraph: &fakeGraph{
			readFn: func(ctx context.Context, cypher string, params map[string]any) ([]domain.Row, error) {
				return []domain.Row{row("age_male_min", 20, "age_male_max", 60)}, nil
			},
		},
	}

	f.svc = NewService(
		NewPlanner(f.plannerLLM, log),
		NewAssembler(f.ctxGraph, nil, 0, log),
		NewCypherSynthesizer(f.cypherLLM, NewReadOnlyGuard(), log),
		NewAnswerSynthesizer(f.answerLLM, "ko", log),
		f.execGraph,
		log,
	)
	return f
}

func TestAskAnswersQualificationQuestion(t *testing.T) {
	f := newServiceFixture(t)

	turn, err := f.svc.Ask(context.Background(), "P-001", "이 상품은 몇 살부터 가입할 수 있나요?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if turn.Fault != nil {
		t.Fatalf("Fault = %+v, want nil", turn.Fault)
	}
	if len(turn.Categories) != 1 || turn.Categories[0] != domain.CategoryQualificationSummary {
		t.Fatalf("Categories = %v", turn.Categories)
	}
	if !strings.Contains(turn.Context, "=== Qualification 요약 ===") {
		t.Fatalf("Context missing section:\n%s", turn.Context)
	}
	if !strings.HasPrefix(turn.Cypher, "MATCH (q:Qualification") {
		t.Fatalf("Cypher = %q", turn.Cypher)
	}
	if turn.RowCount != 1 {
		t.Fatalf("RowCount = %d, want 1", turn.RowCount)
	}
	if turn.Answer != "남자 기준 20세부터 60세까지 가입할 수 있습니다." {
		t.Fatalf("Answer = %q", turn.Answer)
	}
	if len(f.execGraph.queries) != 1 {
		t.Fatalf("executor calls = %d, want 1", len(f.execGraph.queries))
	}
	// The answer prompt carries the rendered result rows.
	if !strings.Contains(f.answerLLM.lastUser, "age_male_min=20, age_male_max=60") {
		t.Fatalf("answer prompt not grounded:\n%s", f.answerLLM.lastUser)
	}
}

func TestAskNeverExecutesRejectedQuery(t *testing.T) {
	f := newServiceFixture(t)
	rejected := "MERGE (p:Product {product_id: $product_id}) RETURN p"
	f.cypherLLM.textFn = func(ctx context.Context, system, user string) (string, error) {
		return rejected, nil
	}

	turn, err := f.svc.Ask(context.Background(), "P-001", "상품 정보를 바꿔줘")
	var wantErr *WriteRejectedError
	if !errors.As(err, &wantErr) {
		t.Fatalf("err = %v, want *WriteRejectedError", err)
	}
	if len(f.execGraph.queries) != 0 {
		t.Fatalf("executor was called with a rejected query: %v", f.execGraph.queries)
	}
	if turn.Fault == nil || turn.Fault.Kind != "write_operation_rejected" {
		t.Fatalf("Fault = %+v", turn.Fault)
	}
	if turn.Cypher != rejected {
		t.Fatalf("Turn.Cypher = %q, want the rejected candidate for display", turn.Cypher)
	}
	if turn.Answer != "" {
		t.Fatalf("Answer = %q, want empty on fault", turn.Answer)
	}
}

func TestAskDegradesToEmptyPlanOnPlannerParseFailure(t *testing.T) {
	f := newServiceFixture(t)
	f.plannerLLM.jsonFn = func(ctx context.Context, system, user, schemaName string, schema map[string]any) (map[string]any, error) {
		return map[string]any{"metadata_types": "not-an-array"}, nil
	}

	turn, err := f.svc.Ask(context.Background(), "P-001", "질문")
	if err != nil {
		t.Fatalf("Ask: %v (planner parse failure must not abort)", err)
	}
	if len(turn.Categories) != 0 {
		t.Fatalf("Categories = %v, want empty", turn.Categories)
	}
	if turn.Context != "" {
		t.Fatalf("Context = %q, want empty digest", turn.Context)
	}
	if len(f.ctxGraph.queries) != 0 {
		t.Fatalf("context queries ran for an empty plan: %v", f.ctxGraph.queries)
	}
	if turn.Answer == "" {
		t.Fatal("pipeline did not proceed to an answer")
	}
}

func TestAskFaultsOnExecutionFailure(t *testing.T) {
	f := newServiceFixture(t)
	f.execGraph.readFn = func(ctx context.Context, cypher string, params map[string]any) ([]domain.Row, error) {
		return nil, fmt.Errorf("connection reset")
	}

	turn, err := f.svc.Ask(context.Background(), "P-001", "질문")
	if err == nil {
		t.Fatal("expected error")
	}
	var execErr *ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("err = %v, want *ExecutionError", err)
	}
	if turn.Fault == nil || turn.Fault.Kind != "execution_failure" {
		t.Fatalf("Fault = %+v", turn.Fault)
	}
	if turn.Answer != "" {
		t.Fatalf("Answer = %q, want empty on fault", turn.Answer)
	}
}

func TestAskFaultsOnAnswerFailure(t *testing.T) {
	f := newServiceFixture(t)
	f.answerLLM.textFn = func(ctx context.Context, system, user string) (string, error) {
		return "", fmt.Errorf("rate limited")
	}

	turn, err := f.svc.Ask(context.Background(), "P-001", "질문")
	if err == nil {
		t.Fatal("expected error")
	}
	if turn.Fault == nil || turn.Fault.Kind != "generation_failure" {
		t.Fatalf("Fault = %+v", turn.Fault)
	}
	// Stages before the failure are still recorded on the turn.
	if turn.Cypher == "" || turn.RowCount != 1 {
		t.Fatalf("partial trace missing: cypher=%q rows=%d", turn.Cypher, turn.RowCount)
	}
}
