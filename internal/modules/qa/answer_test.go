package qa

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jinwoohan/insuragraph/internal/domain"
)

func TestRenderRowsZeroRowSentinel(t *testing.T) {
	if got := RenderRows(nil); got != "그래프 쿼리 결과: 0행 (데이터 없음)." {
		t.Fatalf("RenderRows(nil) = %q", got)
	}
	if got := RenderRows([]domain.Row{}); got != "그래프 쿼리 결과: 0행 (데이터 없음)." {
		t.Fatalf("RenderRows(empty) = %q", got)
	}
}

func TestRenderRowsNumbersAndKeyOrder(t *testing.T) {
	rows := []domain.Row{
		row("name", "암진단보장", "type", "MAIN"),
		row("name", "수술특약", "type", "RIDER"),
	}

	got := RenderRows(rows)
	want := "1. name=암진단보장, type=MAIN\n2. name=수술특약, type=RIDER"
	if got != want {
		t.Fatalf("RenderRows = %q, want %q", got, want)
	}
}

func TestRenderRowsPreservesQueryFieldOrder(t *testing.T) {
	// Same values, reversed key order: the line must follow Keys, not the
	// map's iteration order.
	r := domain.Row{
		Keys:   []string{"type", "name"},
		Values: map[string]any{"name": "암진단보장", "type": "MAIN"},
	}
	if got := RenderRows([]domain.Row{r}); got != "1. type=MAIN, name=암진단보장" {
		t.Fatalf("RenderRows = %q", got)
	}
}

func TestAnswerGroundsPromptInResults(t *testing.T) {
	llm := &fakeCompleter{
		textFn: func(ctx context.Context, system, user string) (string, error) {
			return "  남자는 20세부터 60세까지 가입할 수 있습니다.  ", nil
		},
	}
	answerer := NewAnswerSynthesizer(llm, "ko", testLogger(t))

	got, err := answerer.Answer(context.Background(), AnswerInput{
		Question: "가입 가능 나이는?",
		Cypher:   "MATCH (q:Qualification) RETURN q.age_male_min, q.age_male_max",
		Rows:     []domain.Row{row("age_male_min", 20, "age_male_max", 60)},
		Context:  "=== Qualification 요약 ===",
	})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if got != "남자는 20세부터 60세까지 가입할 수 있습니다." {
		t.Fatalf("Answer = %q (whitespace not trimmed?)", got)
	}

	for _, section := range []string{
		"=== 사용자 질문 ===",
		"=== 실행된 Cypher 쿼리 ===",
		"=== 그래프 메타데이터 요약 ===",
		"=== 그래프 쿼리 결과 ===",
		"age_male_min=20, age_male_max=60",
	} {
		if !strings.Contains(llm.lastUser, section) {
			t.Fatalf("prompt missing %q:\n%s", section, llm.lastUser)
		}
	}
}

func TestAnswerOmitsContextSectionWhenEmpty(t *testing.T) {
	llm := &fakeCompleter{
		textFn: func(ctx context.Context, system, user string) (string, error) {
			return "ok", nil
		},
	}
	answerer := NewAnswerSynthesizer(llm, "ko", testLogger(t))

	_, err := answerer.Answer(context.Background(), AnswerInput{
		Question: "q",
		Cypher:   "MATCH (n) RETURN n",
	})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if strings.Contains(llm.lastUser, "그래프 메타데이터 요약") {
		t.Fatalf("empty context section rendered:\n%s", llm.lastUser)
	}
	if !strings.Contains(llm.lastUser, "그래프 쿼리 결과: 0행 (데이터 없음).") {
		t.Fatalf("zero-row sentinel missing:\n%s", llm.lastUser)
	}
}

func TestAnswerWrapsCompletionFailure(t *testing.T) {
	llm := &fakeCompleter{
		textFn: func(ctx context.Context, system, user string) (string, error) {
			return "", fmt.Errorf("rate limited")
		},
	}
	answerer := NewAnswerSynthesizer(llm, "ko", testLogger(t))

	_, err := answerer.Answer(context.Background(), AnswerInput{Question: "q", Cypher: "MATCH (n) RETURN n"})
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("err = %v, want *GenerationError", err)
	}
	if genErr.Stage != "answer" {
		t.Fatalf("Stage = %q, want answer", genErr.Stage)
	}
}
