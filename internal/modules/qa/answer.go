package qa

import (
	"context"
	"fmt"
	"strings"

	"github.com/jinwoohan/insuragraph/internal/domain"
	"github.com/jinwoohan/insuragraph/internal/platform/logger"
)

// AnswerSynthesizer renders query results into text and asks the completion
// service for an answer grounded only in those results and the context
// digest.
type AnswerSynthesizer struct {
	llm    Completer
	locale string
	log    *logger.Logger
}

func NewAnswerSynthesizer(llm Completer, locale string, log *logger.Logger) *AnswerSynthesizer {
	return &AnswerSynthesizer{llm: llm, locale: locale, log: log.With("component", "AnswerSynthesizer")}
}

type AnswerInput struct {
	Question string
	Cypher   string
	Rows     []domain.Row
	// Context is the assembled digest; optional.
	Context string
}

func (a *AnswerSynthesizer) Answer(ctx context.Context, in AnswerInput) (string, error) {
	rowsText := RenderRows(in.Rows)

	var parts []string
	parts = append(parts, "=== 사용자 질문 ===", in.Question)
	parts = append(parts, "\n=== 실행된 Cypher 쿼리 ===", in.Cypher)
	if in.Context != "" {
		parts = append(parts, "\n=== 그래프 메타데이터 요약 ===", in.Context)
	}
	parts = append(parts, "\n=== 그래프 쿼리 결과 ===", rowsText)
	parts = append(parts,
		"\n위 정보를 바탕으로 사용자의 질문에 답변해라. "+
			"숫자나 조건은 가능한 한 그대로 인용하되, 표현은 이해하기 쉽게 풀어서 설명해라.")

	answer, err := a.llm.GenerateText(ctx, promptAnswer(a.locale), strings.Join(parts, "\n"))
	if err != nil {
		return "", &GenerationError{Stage: "answer", Err: err}
	}
	return strings.TrimSpace(answer), nil
}

// RenderRows renders result rows one line per row, field=value pairs joined
// by commas in the query's field order, with an explicit sentinel for zero
// rows so the model cannot mistake "no data" for "no grounding supplied".
func RenderRows(rows []domain.Row) string {
	if len(rows) == 0 {
		return "그래프 쿼리 결과: 0행 (데이터 없음)."
	}

	lines := make([]string, 0, len(rows))
	for i, row := range rows {
		parts := make([]string, 0, len(row.Keys))
		for _, k := range row.Keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, row.Values[k]))
		}
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, strings.Join(parts, ", ")))
	}
	return strings.Join(lines, "\n")
}
