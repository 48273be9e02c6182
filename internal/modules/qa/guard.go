package qa

import (
	"regexp"
	"strings"
)

// ReadOnlyGuard is the lexical half of the read-only boundary between a
// model-controlled query string and the live graph. It is a conservative
// whole-word scan, not a parser: anything that looks like a write or admin
// operation is a violation. The executor's read-mode session is the second,
// independent half (see neo4jdb.Client.ReadQuery).
type ReadOnlyGuard struct {
	forbidden *regexp.Regexp
}

var forbiddenOps = regexp.MustCompile(`(?i)\b(CREATE|MERGE|DELETE|DETACH|REMOVE|SET|DROP)\b|\bLOAD\s+CSV\b|\bCALL\s+dbms\.|\bCALL\s+db\.schema\.`)

func NewReadOnlyGuard() *ReadOnlyGuard {
	return &ReadOnlyGuard{forbidden: forbiddenOps}
}

// Validate returns a *WriteRejectedError if the candidate contains a
// forbidden operation, or if it is empty after trimming. An empty candidate
// is treated as a violation rather than let through: the guard fails closed.
func (g *ReadOnlyGuard) Validate(candidate string) error {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return &WriteRejectedError{Query: candidate, Match: "<empty>"}
	}
	if m := g.forbidden.FindString(trimmed); m != "" {
		return &WriteRejectedError{Query: trimmed, Match: strings.ToUpper(strings.Join(strings.Fields(m), " "))}
	}
	return nil
}
