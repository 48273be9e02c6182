package qa

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jinwoohan/insuragraph/internal/domain"
)

func TestPlannerParsesCategories(t *testing.T) {
	llm := &fakeCompleter{
		jsonFn: func(ctx context.Context, system, user, schemaName string, schema map[string]any) (map[string]any, error) {
			return map[string]any{
				"metadata_types": []any{"coverage_list", "qualification_summary"},
			}, nil
		},
	}

	got, err := NewPlanner(llm, testLogger(t)).Plan(context.Background(), "가입 가능한 나이는?")
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	want := []domain.Category{domain.CategoryCoverageList, domain.CategoryQualificationSummary}
	if len(got) != len(want) {
		t.Fatalf("Plan = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Plan[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPlannerDedupesAndTrims(t *testing.T) {
	llm := &fakeCompleter{
		jsonFn: func(ctx context.Context, system, user, schemaName string, schema map[string]any) (map[string]any, error) {
			return map[string]any{
				"metadata_types": []any{" coverage_list ", "coverage_list", "", "meta_nodes"},
			}, nil
		},
	}

	got, err := NewPlanner(llm, testLogger(t)).Plan(context.Background(), "q")
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(got) != 2 || got[0] != domain.CategoryCoverageList || got[1] != domain.CategoryMetaNodes {
		t.Fatalf("Plan = %v, want [coverage_list meta_nodes]", got)
	}
}

// Unknown tags survive planning; only the assembler drops them.
func TestPlannerPassesUnknownTagsThrough(t *testing.T) {
	llm := &fakeCompleter{
		jsonFn: func(ctx context.Context, system, user, schemaName string, schema map[string]any) (map[string]any, error) {
			return map[string]any{
				"metadata_types": []any{"coverage_list", "totally_made_up"},
			}, nil
		},
	}

	got, err := NewPlanner(llm, testLogger(t)).Plan(context.Background(), "q")
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(got) != 2 || got[1] != domain.Category("totally_made_up") {
		t.Fatalf("Plan = %v, want unknown tag preserved", got)
	}
}

func TestPlannerErrorsOnBadShape(t *testing.T) {
	cases := []map[string]any{
		{},                                  // missing key
		{"metadata_types": "coverage_list"}, // not an array
		{"metadata_types": []any{42}},       // not strings
	}
	for i, payload := range cases {
		payload := payload
		llm := &fakeCompleter{
			jsonFn: func(ctx context.Context, system, user, schemaName string, schema map[string]any) (map[string]any, error) {
				return payload, nil
			},
		}
		_, err := NewPlanner(llm, testLogger(t)).Plan(context.Background(), "q")
		var planErr *PlanningError
		if !errors.As(err, &planErr) {
			t.Fatalf("case %d: err = %v, want *PlanningError", i, err)
		}
	}
}

func TestPlannerWrapsCompletionFailure(t *testing.T) {
	llm := &fakeCompleter{
		jsonFn: func(ctx context.Context, system, user, schemaName string, schema map[string]any) (map[string]any, error) {
			return nil, fmt.Errorf("upstream timeout")
		},
	}

	_, err := NewPlanner(llm, testLogger(t)).Plan(context.Background(), "q")
	var planErr *PlanningError
	if !errors.As(err, &planErr) {
		t.Fatalf("err = %v, want *PlanningError", err)
	}
}
