package qa

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jinwoohan/insuragraph/internal/domain"
	"github.com/jinwoohan/insuragraph/internal/platform/logger"
)

// contextQueries holds the fixed, hand-authored read query per category.
// This is the closed set the assembler can serve; the queries are versioned
// together with the schema text in prompts.go.
var contextQueries = map[domain.Category]string{
	domain.CategoryPayableEventSummary: `
MATCH (p:Product {product_id: $product_id})
      -[:HAS_COVERAGE]->(c:Coverage)-[:HAS_EVENT]->(e:PayableEvent)
RETURN
  e.category AS category,
  collect(DISTINCT c.name)[0..5]   AS coverages,
  collect(DISTINCT e.reason)[0..5] AS reasons
ORDER BY category`,

	domain.CategoryCoverageList: `
MATCH (p:Product {product_id: $product_id})-[:HAS_COVERAGE]->(c:Coverage)
RETURN c.type AS type, collect(c.name) AS names
ORDER BY type`,

	domain.CategoryQualificationSummary: `
MATCH (p:Product {product_id: $product_id})-[:HAS_QUALIFICATION]->(q:Qualification)
RETURN
  q.type1 AS type1,
  q.type2 AS type2,
  q.insurance_period AS insurance_period,
  q.payment_period AS payment_period,
  q.age_male_min AS age_male_min,
  q.age_male_max AS age_male_max,
  q.age_female_min AS age_female_min,
  q.age_female_max AS age_female_max,
  q.payment_cycle AS payment_cycle
ORDER BY type1, type2`,

	domain.CategoryLimitationSummary: `
MATCH (p:Product {product_id: $product_id})
      -[:HAS_COVERAGE]->(c:Coverage)-[:HAS_LIMITATION]->(l:Limitation)
RETURN
  l.category AS category,
  collect(DISTINCT c.name)[0..5] AS coverages,
  collect(DISTINCT l.text)[0..5] AS texts
ORDER BY category`,

	domain.CategoryMetaNodes: `
MATCH (p:Product {product_id: $product_id})
OPTIONAL MATCH (p)-[:HAS_REQUIRED_SUBSCRIPTION]->(rs:RequiredSubscription)
OPTIONAL MATCH (p)-[:HAS_DIVIDEND_INFO]->(d:DividendInfo)
OPTIONAL MATCH (p)-[:HAS_PREMIUM_INFO]->(pi:PremiumInfo)
OPTIONAL MATCH (p)-[:HAS_PREMIUM_DISCOUNT]->(pd:PremiumDiscount)
OPTIONAL MATCH (p)-[:HAS_PREPAYMENT_INFO]->(pp:PrepaymentInfo)
RETURN
  rs.text AS required_subscription,
  d.text AS dividend_info,
  pi.text AS premium_info,
  pd.text AS premium_discount,
  pp.text AS prepayment_info`,
}

type contextSection struct {
	title  string
	noData string
	render func(rows []domain.Row) string
}

var contextSections = map[domain.Category]contextSection{
	domain.CategoryPayableEventSummary: {
		title:  "=== PayableEvent 요약 ===",
		noData: "PayableEvent 데이터가 없습니다.",
		render: renderPayableEvents,
	},
	domain.CategoryCoverageList: {
		title:  "=== Coverage 목록 ===",
		noData: "Coverage 데이터가 없습니다.",
		render: renderCoverages,
	},
	domain.CategoryQualificationSummary: {
		title:  "=== Qualification 요약 ===",
		noData: "Qualification 데이터가 없습니다.",
		render: renderQualifications,
	},
	domain.CategoryLimitationSummary: {
		title:  "=== Limitation 요약 ===",
		noData: "Limitation 데이터가 없습니다.",
		render: renderLimitations,
	},
	domain.CategoryMetaNodes: {
		title:  "=== 메타 노드 요약 ===",
		noData: "메타 노드 데이터가 없습니다.",
		render: renderMetaNodes,
	},
}

// Assembler turns a planned category set into the context digest handed to
// the Cypher generator. Digests are deterministic for a given graph, so when
// a Redis client is configured the per-category text is cached under a TTL;
// graph data is immutable while serving, so invalidation is TTL-only.
type Assembler struct {
	graph    GraphExecutor
	cache    *redis.Client
	cacheTTL time.Duration
	log      *logger.Logger
}

func NewAssembler(graph GraphExecutor, cache *redis.Client, cacheTTL time.Duration, log *logger.Logger) *Assembler {
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &Assembler{graph: graph, cache: cache, cacheTTL: cacheTTL, log: log.With("component", "Assembler")}
}

// Assemble runs the fixed query for each requested category, in request
// order, and joins the rendered sections. Unknown tags are skipped without
// error; a category whose query returns no rows still contributes its
// section with an explicit no-data line, so "absent" stays distinguishable
// from "not requested".
func (a *Assembler) Assemble(ctx context.Context, productID string, categories []domain.Category) (string, error) {
	var sections []string
	for _, cat := range categories {
		sec, ok := contextSections[cat]
		if !ok {
			a.log.Debug("ignoring unknown context category", "category", string(cat))
			continue
		}

		text, err := a.sectionText(ctx, productID, cat, sec)
		if err != nil {
			return "", err
		}
		sections = append(sections, sec.title, text)
	}
	return strings.Join(sections, "\n"), nil
}

func (a *Assembler) sectionText(ctx context.Context, productID string, cat domain.Category, sec contextSection) (string, error) {
	cacheKey := "ctxdigest:" + productID + ":" + string(cat)
	if a.cache != nil {
		if cached, err := a.cache.Get(ctx, cacheKey).Result(); err == nil {
			return cached, nil
		} else if err != redis.Nil {
			a.log.Warn("digest cache read failed (continuing)", "error", err)
		}
	}

	rows, err := a.graph.ReadQuery(ctx, contextQueries[cat], map[string]any{"product_id": productID})
	if err != nil {
		return "", &ExecutionError{Query: string(cat), Err: err}
	}

	text := sec.noData
	if len(rows) > 0 {
		text = sec.render(rows)
	}

	if a.cache != nil {
		if err := a.cache.Set(ctx, cacheKey, text, a.cacheTTL).Err(); err != nil {
			a.log.Warn("digest cache write failed (continuing)", "error", err)
		}
	}
	return text, nil
}

func renderCoverages(rows []domain.Row) string {
	var lines []string
	for _, row := range rows {
		t := stringValue(row, "type")
		names := stringSlice(row, "names")
		lines = append(lines, fmt.Sprintf("- type: %s\n  이름들: %s", t, strings.Join(names, ", ")))
	}
	return strings.Join(lines, "\n")
}

func renderPayableEvents(rows []domain.Row) string {
	var lines []string
	for _, row := range rows {
		cat := stringValue(row, "category")
		covs := stringSlice(row, "coverages")
		reasons := stringSlice(row, "reasons")
		lines = append(lines, fmt.Sprintf(
			"- category: %s\n  예시 커버리지: %s\n  예시 지급사유: %s",
			cat, strings.Join(covs, ", "), strings.Join(reasons, "; "),
		))
	}
	return strings.Join(lines, "\n")
}

func renderQualifications(rows []domain.Row) string {
	var lines []string
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf(
			"- %s / %s: 보험기간=%s, 납입기간=%s, 남 %v~%v세, 여 %v~%v세, 납입주기=%s",
			stringValue(row, "type1"),
			stringValue(row, "type2"),
			stringValue(row, "insurance_period"),
			stringValue(row, "payment_period"),
			anyValue(row, "age_male_min"),
			anyValue(row, "age_male_max"),
			anyValue(row, "age_female_min"),
			anyValue(row, "age_female_max"),
			stringValue(row, "payment_cycle"),
		))
	}
	return strings.Join(lines, "\n")
}

func renderLimitations(rows []domain.Row) string {
	var lines []string
	for _, row := range rows {
		cat := stringValue(row, "category")
		covs := stringSlice(row, "coverages")
		texts := stringSlice(row, "texts")
		lines = append(lines, fmt.Sprintf(
			"- category: %s\n  관련 커버리지: %s\n  예시 제한 내용: %s",
			cat, strings.Join(covs, ", "), strings.Join(texts, " / "),
		))
	}
	return strings.Join(lines, "\n")
}

func renderMetaNodes(rows []domain.Row) string {
	row := rows[0]
	labels := []struct {
		key   string
		label string
	}{
		{"required_subscription", "RequiredSubscription"},
		{"dividend_info", "DividendInfo"},
		{"premium_info", "PremiumInfo"},
		{"premium_discount", "PremiumDiscount"},
		{"prepayment_info", "PrepaymentInfo"},
	}

	var lines []string
	for _, l := range labels {
		if v := stringValue(row, l.key); v != "" {
			lines = append(lines, fmt.Sprintf("- %s: %s", l.label, v))
		}
	}
	if len(lines) == 0 {
		return "메타 노드 텍스트가 없습니다."
	}
	return strings.Join(lines, "\n")
}

func anyValue(row domain.Row, key string) any {
	v, _ := row.Get(key)
	return v
}

func stringValue(row domain.Row, key string) string {
	v, ok := row.Get(key)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func stringSlice(row domain.Row, key string) []string {
	v, ok := row.Get(key)
	if !ok || v == nil {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		if ss, ok := v.([]string); ok {
			return ss
		}
		return []string{fmt.Sprint(v)}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		if s, ok := item.(string); ok {
			out = append(out, s)
		} else {
			out = append(out, fmt.Sprint(item))
		}
	}
	return out
}
