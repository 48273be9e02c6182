package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/jinwoohan/insuragraph/internal/domain"
	"github.com/jinwoohan/insuragraph/internal/platform/logger"
	"github.com/jinwoohan/insuragraph/internal/platform/neo4jdb"
)

// Loader populates the graph from a structured product document. This is the
// batch-import path: the only writer in the system, separate from the online
// pipeline, which is read-only by construction.
type Loader struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewLoader(client *neo4jdb.Client, log *logger.Logger) *Loader {
	return &Loader{client: client, log: log.With("component", "Loader")}
}

type LoadOptions struct {
	// ClearProduct detaches and deletes all of the product's existing nodes
	// before loading, so re-running the loader replaces rather than merges.
	ClearProduct bool
}

func (l *Loader) Load(ctx context.Context, doc domain.ProductDocument, opts LoadOptions) error {
	doc, err := validateDocument(doc, l.log)
	if err != nil {
		return err
	}

	session := l.client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: l.client.Database,
	})
	defer session.Close(ctx)

	// Best-effort schema init.
	{
		stmts := []string{
			`CREATE CONSTRAINT product_id_unique IF NOT EXISTS FOR (p:Product) REQUIRE p.product_id IS UNIQUE`,
		}
		for _, q := range stmts {
			if res, err := session.Run(ctx, q, nil); err != nil {
				l.log.Warn("neo4j schema init failed (continuing)", "error", err)
			} else {
				_, _ = res.Consume(ctx)
			}
		}
	}

	_, err = session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if opts.ClearProduct {
			if err := runConsume(ctx, tx, `
MATCH (n {product_id: $product_id})
DETACH DELETE n
`, map[string]any{"product_id": doc.ProductID}); err != nil {
				return nil, err
			}
		}

		if err := runConsume(ctx, tx, `
MERGE (p:Product {product_id: $product_id})
ON CREATE SET p.name = $product_name
`, map[string]any{
			"product_id":   doc.ProductID,
			"product_name": productName(doc),
		}); err != nil {
			return nil, err
		}

		if len(doc.Coverages) > 0 {
			if err := runConsume(ctx, tx, `
MATCH (p:Product {product_id: $product_id})
UNWIND $coverages AS c
MERGE (p)-[:HAS_COVERAGE]->(cov:Coverage {
  product_id: $product_id,
  name:       c.name,
  type:       c.type
})
ON CREATE SET cov.coverage_id = randomUUID()
`, map[string]any{
				"product_id": doc.ProductID,
				"coverages":  coverageParams(doc.Coverages),
			}); err != nil {
				return nil, err
			}
		}

		if len(doc.PayableEvents) > 0 {
			if err := runConsume(ctx, tx, `
UNWIND $events AS e
MATCH (cov:Coverage {
  product_id: $product_id,
  name:       e.coverage_name,
  type:       e.coverage_type
})
MERGE (ev:PayableEvent {
  product_id:    $product_id,
  coverage_name: e.coverage_name,
  category:      e.category,
  reason:        e.reason
})
ON CREATE SET ev.event_id = randomUUID()
SET ev.amount = e.amount
MERGE (cov)-[:HAS_EVENT]->(ev)
`, map[string]any{
				"product_id": doc.ProductID,
				"events":     eventParams(doc.PayableEvents),
			}); err != nil {
				return nil, err
			}
		}

		if len(doc.Limitations) > 0 {
			if err := runConsume(ctx, tx, `
UNWIND $limitations AS l
MERGE (lim:Limitation {
  product_id:    $product_id,
  coverage_name: l.coverage_name,
  category:      l.category,
  text:          l.text
})
ON CREATE SET lim.limit_id = randomUUID()
WITH lim, l
OPTIONAL MATCH (cov:Coverage {product_id: $product_id, name: l.coverage_name})
WITH lim, cov
WHERE cov IS NOT NULL
MERGE (cov)-[:HAS_LIMITATION]->(lim)
`, map[string]any{
				"product_id":  doc.ProductID,
				"limitations": limitationParams(doc.Limitations),
			}); err != nil {
				return nil, err
			}
		}

		if len(doc.Qualifications) > 0 {
			if err := runConsume(ctx, tx, `
MATCH (p:Product {product_id: $product_id})
UNWIND $qualifications AS q
MERGE (p)-[:HAS_QUALIFICATION]->(qual:Qualification {
  product_id:       $product_id,
  type1:            q.type1,
  type2:            q.type2,
  insurance_period: q.insurance_period,
  payment_period:   q.payment_period
})
ON CREATE SET qual.qualification_id = randomUUID()
SET
  qual.age_male_min   = q.age_male_min,
  qual.age_male_max   = q.age_male_max,
  qual.age_female_min = q.age_female_min,
  qual.age_female_max = q.age_female_max,
  qual.payment_cycle  = q.payment_cycle
`, map[string]any{
				"product_id":     doc.ProductID,
				"qualifications": qualificationParams(doc.Qualifications),
			}); err != nil {
				return nil, err
			}
		}

		for _, meta := range metaNodes(doc) {
			if strings.TrimSpace(meta.text) == "" {
				continue
			}
			if err := runConsume(ctx, tx, fmt.Sprintf(`
MATCH (p:Product {product_id: $product_id})
MERGE (m:%s {product_id: $product_id})
SET m.text = $text
MERGE (p)-[:%s]->(m)
`, meta.label, meta.rel), map[string]any{
				"product_id": doc.ProductID,
				"text":       meta.text,
			}); err != nil {
				return nil, err
			}
		}

		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("ingest: load product %s: %w", doc.ProductID, err)
	}

	l.log.Info("product loaded",
		"product_id", doc.ProductID,
		"coverages", len(doc.Coverages),
		"payable_events", len(doc.PayableEvents),
		"limitations", len(doc.Limitations),
		"qualifications", len(doc.Qualifications),
	)
	return nil
}

func runConsume(ctx context.Context, tx neo4j.ManagedTransaction, cypher string, params map[string]any) error {
	res, err := tx.Run(ctx, cypher, params)
	if err != nil {
		return err
	}
	_, err = res.Consume(ctx)
	return err
}

// validateDocument enforces the schema invariants the online pipeline relies
// on: coverage type literals and min ≤ max age bounds. Violating entries are
// dropped with a warning instead of written.
func validateDocument(doc domain.ProductDocument, log *logger.Logger) (domain.ProductDocument, error) {
	if strings.TrimSpace(doc.ProductID) == "" {
		return doc, fmt.Errorf("ingest: product_id required")
	}

	coverages := doc.Coverages[:0:0]
	for _, c := range doc.Coverages {
		if c.Type != domain.CoverageTypeMain && c.Type != domain.CoverageTypeRider {
			log.Warn("skipping coverage with invalid type", "name", c.Name, "type", c.Type)
			continue
		}
		coverages = append(coverages, c)
	}
	doc.Coverages = coverages

	quals := doc.Qualifications[:0:0]
	for _, q := range doc.Qualifications {
		if q.AgeMaleMin > q.AgeMaleMax || q.AgeFemaleMin > q.AgeFemaleMax {
			log.Warn("skipping qualification with inverted age bounds",
				"type1", q.Type1, "type2", q.Type2)
			continue
		}
		quals = append(quals, q)
	}
	doc.Qualifications = quals

	return doc, nil
}

// productName derives the display name from the MAIN coverage when the
// document does not carry one.
func productName(doc domain.ProductDocument) string {
	if strings.TrimSpace(doc.Name) != "" {
		return doc.Name
	}
	for _, c := range doc.Coverages {
		if c.Type == domain.CoverageTypeMain {
			return c.Name
		}
	}
	return "UNKNOWN_PRODUCT"
}

func coverageParams(items []domain.CoverageDoc) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, c := range items {
		out = append(out, map[string]any{"name": c.Name, "type": c.Type})
	}
	return out
}

func eventParams(items []domain.PayableEventDoc) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, e := range items {
		out = append(out, map[string]any{
			"coverage_name": e.CoverageName,
			"coverage_type": e.CoverageType,
			"category":      e.Category,
			"reason":        e.Reason,
			"amount":        e.Amount,
		})
	}
	return out
}

func limitationParams(items []domain.LimitationDoc) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, l := range items {
		out = append(out, map[string]any{
			"coverage_name": l.CoverageName,
			"category":      l.Category,
			"text":          l.Text,
		})
	}
	return out
}

func qualificationParams(items []domain.QualificationDoc) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, q := range items {
		out = append(out, map[string]any{
			"type1":            q.Type1,
			"type2":            q.Type2,
			"insurance_period": q.InsurancePeriod,
			"payment_period":   q.PaymentPeriod,
			"age_male_min":     q.AgeMaleMin,
			"age_male_max":     q.AgeMaleMax,
			"age_female_min":   q.AgeFemaleMin,
			"age_female_max":   q.AgeFemaleMax,
			"payment_cycle":    q.PaymentCycle,
		})
	}
	return out
}

type metaNode struct {
	label string
	rel   string
	text  string
}

func metaNodes(doc domain.ProductDocument) []metaNode {
	return []metaNode{
		{"RequiredSubscription", "HAS_REQUIRED_SUBSCRIPTION", doc.RequiredSubscription},
		{"DividendInfo", "HAS_DIVIDEND_INFO", doc.DividendInfo},
		{"PremiumInfo", "HAS_PREMIUM_INFO", doc.PremiumInfo},
		{"PremiumDiscount", "HAS_PREMIUM_DISCOUNT", doc.PremiumDiscount},
		{"PrepaymentInfo", "HAS_PREPAYMENT_INFO", doc.PrepaymentInfo},
	}
}
