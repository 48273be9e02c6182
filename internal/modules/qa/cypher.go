package qa

import (
	"context"
	"strings"

	"github.com/jinwoohan/insuragraph/internal/platform/logger"
)

// CypherSynthesizer produces one candidate read query for a question, grounded
// in the assembled context digest, and refuses to release anything the
// read-only guard rejects.
type CypherSynthesizer struct {
	llm   Completer
	guard *ReadOnlyGuard
	log   *logger.Logger
}

func NewCypherSynthesizer(llm Completer, guard *ReadOnlyGuard, log *logger.Logger) *CypherSynthesizer {
	return &CypherSynthesizer{llm: llm, guard: guard, log: log.With("component", "CypherSynthesizer")}
}

// Synthesize returns a validated query string, a *GenerationError if the
// completion call failed, or a *WriteRejectedError if the candidate tripped
// the guard. A rejected candidate is never returned to the caller.
func (s *CypherSynthesizer) Synthesize(ctx context.Context, question, productID, contextText string) (string, error) {
	system, user := promptGenerateCypher(question, productID, contextText)

	raw, err := s.llm.GenerateText(ctx, system, user)
	if err != nil {
		return "", &GenerationError{Stage: "cypher", Err: err}
	}

	candidate := stripMarkdownFence(raw)
	if err := s.guard.Validate(candidate); err != nil {
		s.log.Warn("candidate query rejected", "error", err.Error())
		return "", err
	}
	return candidate, nil
}

// stripMarkdownFence tolerates a model that wraps the query in a ```cypher
// (or bare ```) block despite being told not to.
func stripMarkdownFence(text string) string {
	s := strings.TrimSpace(text)
	const fence = "```"

	if strings.HasPrefix(strings.ToLower(s), fence+"cypher") {
		s = strings.TrimSpace(s[len(fence+"cypher"):])
	} else if strings.HasPrefix(s, fence) {
		s = strings.TrimSpace(s[len(fence):])
	}
	if strings.HasSuffix(s, fence) {
		s = strings.TrimSpace(s[:len(s)-len(fence)])
	}
	return s
}
