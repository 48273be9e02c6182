package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category is one of the closed set of graph-context categories the metadata
// planner may select. Unknown values survive parsing (the planner reports
// whatever the model said); the context assembler is the single place that
// ignores tags it does not know.
type Category string

const (
	CategoryPayableEventSummary  Category = "payable_event_summary"
	CategoryCoverageList         Category = "coverage_list"
	CategoryQualificationSummary Category = "qualification_summary"
	CategoryLimitationSummary    Category = "limitation_summary"
	CategoryMetaNodes            Category = "meta_nodes"
)

// KnownCategories lists every category the assembler can serve, in canonical
// order. Presentation order still follows the planner's request order.
func KnownCategories() []Category {
	return []Category{
		CategoryPayableEventSummary,
		CategoryCoverageList,
		CategoryQualificationSummary,
		CategoryLimitationSummary,
		CategoryMetaNodes,
	}
}

func (c Category) Known() bool {
	switch c {
	case CategoryPayableEventSummary,
		CategoryCoverageList,
		CategoryQualificationSummary,
		CategoryLimitationSummary,
		CategoryMetaNodes:
		return true
	default:
		return false
	}
}

// Coverage type literals. The schema admits exactly these two.
const (
	CoverageTypeMain  = "MAIN"
	CoverageTypeRider = "RIDER"
)

// Row is one result row of a graph read: field names in the order the query
// returned them, plus the value per field.
type Row struct {
	Keys   []string
	Values map[string]any
}

func (r Row) Get(key string) (any, bool) {
	v, ok := r.Values[key]
	return v, ok
}

// Fault classifies a pipeline failure for display alongside the
// conversation, so a grounded answer and a pipeline fault are never mixed.
type Fault struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

// Turn is one question/answer exchange with its debug trace. Turns are
// session-scoped and never persisted beyond the process.
type Turn struct {
	ID         uuid.UUID  `json:"id"`
	ProductID  string     `json:"product_id"`
	Question   string     `json:"question"`
	Categories []Category `json:"categories"`
	Context    string     `json:"context"`
	Cypher     string     `json:"cypher"`
	RowCount   int        `json:"row_count"`
	Answer     string     `json:"answer"`
	Fault      *Fault     `json:"fault,omitempty"`
	AskedAt    time.Time  `json:"asked_at"`
}
