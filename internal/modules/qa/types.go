package qa

import (
	"context"

	"github.com/jinwoohan/insuragraph/internal/domain"
)

// Completer is the text-completion capability the pipeline consumes: one
// system instruction and one user message per call.
type Completer interface {
	GenerateText(ctx context.Context, system string, user string) (string, error)
	GenerateJSON(ctx context.Context, system string, user string, schemaName string, schema map[string]any) (map[string]any, error)
}

// GraphExecutor is the read-query capability. Implementations must support
// parameter substitution and must not accept write operations.
type GraphExecutor interface {
	ReadQuery(ctx context.Context, cypher string, params map[string]any) ([]domain.Row, error)
}
