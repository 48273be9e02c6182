package qa

import (
	"context"
	"fmt"
	"strings"

	"github.com/jinwoohan/insuragraph/internal/domain"
	"github.com/jinwoohan/insuragraph/internal/platform/logger"
)

// Planner decides which graph-context categories are relevant to a question.
// It reports exactly what the completion call said, unknown tags included;
// dropping unrecognized tags is the assembler's job, so robustness lives in
// one place.
type Planner struct {
	llm Completer
	log *logger.Logger
}

func NewPlanner(llm Completer, log *logger.Logger) *Planner {
	return &Planner{llm: llm, log: log.With("component", "Planner")}
}

func (p *Planner) Plan(ctx context.Context, question string) ([]domain.Category, error) {
	system, user := promptPlanMetadata(question)

	obj, err := p.llm.GenerateJSON(ctx, system, user, "metadata_plan", schemaPlanMetadata())
	if err != nil {
		return nil, &PlanningError{Err: err}
	}

	rawTypes, ok := obj["metadata_types"]
	if !ok {
		return nil, &PlanningError{Raw: fmt.Sprint(obj), Err: fmt.Errorf("missing metadata_types")}
	}
	items, ok := rawTypes.([]any)
	if !ok {
		return nil, &PlanningError{Raw: fmt.Sprint(rawTypes), Err: fmt.Errorf("metadata_types is not an array")}
	}

	var categories []domain.Category
	seen := map[domain.Category]bool{}
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, &PlanningError{Raw: fmt.Sprint(items), Err: fmt.Errorf("metadata_types entry is not a string")}
		}
		c := domain.Category(strings.TrimSpace(s))
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		categories = append(categories, c)
	}

	p.log.Debug("metadata plan", "categories", fmt.Sprint(categories))
	return categories, nil
}
