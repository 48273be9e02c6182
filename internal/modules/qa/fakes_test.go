package qa

import (
	"context"
	"testing"

	"github.com/jinwoohan/insuragraph/internal/domain"
	"github.com/jinwoohan/insuragraph/internal/platform/logger"
)

type fakeCompleter struct {
	textFn func(ctx context.Context, system, user string) (string, error)
	jsonFn func(ctx context.Context, system, user, schemaName string, schema map[string]any) (map[string]any, error)

	lastSystem string
	lastUser   string
}

func (f *fakeCompleter) GenerateText(ctx context.Context, system, user string) (string, error) {
	f.lastSystem, f.lastUser = system, user
	return f.textFn(ctx, system, user)
}

func (f *fakeCompleter) GenerateJSON(ctx context.Context, system, user, schemaName string, schema map[string]any) (map[string]any, error) {
	f.lastSystem, f.lastUser = system, user
	return f.jsonFn(ctx, system, user, schemaName, schema)
}

type fakeGraph struct {
	readFn func(ctx context.Context, cypher string, params map[string]any) ([]domain.Row, error)

	queries []string
}

func (f *fakeGraph) ReadQuery(ctx context.Context, cypher string, params map[string]any) ([]domain.Row, error) {
	f.queries = append(f.queries, cypher)
	return f.readFn(ctx, cypher, params)
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func row(pairs ...any) domain.Row {
	r := domain.Row{Values: map[string]any{}}
	for i := 0; i+1 < len(pairs); i += 2 {
		k := pairs[i].(string)
		r.Keys = append(r.Keys, k)
		r.Values[k] = pairs[i+1]
	}
	return r
}
