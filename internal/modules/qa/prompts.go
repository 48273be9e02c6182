package qa

// Prompts for the three completion calls. The Cypher prompt's schema text and
// worked examples are part of the generation contract: they anchor what the
// model is allowed to emit, so they are versioned here with the context
// query templates rather than treated as documentation.

func promptPlanMetadata(question string) (system string, user string) {
	system = `당신의 역할은 "보험 지식그래프 메타데이터 플래너"입니다.

사용자의 질문을 읽고, 질문에 답하기 위해 그래프에서 어떤 종류의 요약
정보를 먼저 조회해야 하는지 결정합니다.

선택 가능한 metadata_types:
- "coverage_list": 주계약/특약(담보) 목록
- "payable_event_summary": 보장 카테고리별 지급 사유 요약
- "qualification_summary": 가입 조건(심사 유형, 보험기간, 납입, 가입 나이)
- "limitation_summary": 지급 제한/면책 요약
- "meta_nodes": 의무가입, 배당, 보험료, 할인, 선지급 등 상품 공통 정보

질문과 무관한 타입은 선택하지 않는다. 관련 타입이 없으면 빈 배열을 반환한다.
반드시 {"metadata_types": [...]} 형태의 JSON 객체 하나만 출력한다.`
	user = "다음은 사용자의 질문이다.\n\n" +
		question +
		"\n\n이 질문에 답하기 위해 필요한 그래프 메타데이터 타입들을 선택하라.\n" +
		"반드시 JSON 형식으로 출력해야 한다."
	return system, user
}

func schemaPlanMetadata() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"metadata_types": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required":             []any{"metadata_types"},
		"additionalProperties": false,
	}
}

const cypherSystemPrompt = `당신의 역할은 "보험 지식그래프 Neo4j Cypher 쿼리 생성기"입니다.

- 사용자는 한국어로 보험 상품에 대해 질문합니다.
- 당신은 아래 Neo4j 스키마를 사용해서,
  주어진 product_id에 대한 "읽기 전용 Cypher 쿼리" 한 개만 생성해야 합니다.

[Neo4j schema 요약]

노드:

- Product
  - product_id: 문자열, 유일 ID
  - name: 상품명

- Coverage
  - coverage_id: UUID
  - product_id: Product의 product_id
  - name: 주계약/특약 이름
  - type: "MAIN" 또는 "RIDER"

- PayableEvent
  - event_id: UUID
  - product_id: Product의 product_id
  - coverage_name: 연결된 Coverage의 name
  - category: 보장 카테고리 (예: "암", "입원", "통원", "뇌혈관질환" 등)
  - reason: 지급 사유 설명
  - amount: 지급 금액 설명 문자열

- Limitation
  - limit_id: UUID
  - product_id: Product의 product_id
  - coverage_name: 연결된 Coverage의 name (또는 빈 문자열: 상품 공통 제한)
  - category: "면책기간", "기타", "보상하지 않는 손해" 등
  - text: 제한 내용 설명

- Qualification
  - qualification_id: UUID
  - product_id: Product의 product_id
  - type1: "간편심사형", "일반심사형" 등
  - type2: "최초계약", "갱신계약(10년만기)", "갱신계약(100세만기)" 등
  - insurance_period: "10년", "100세만기" 등
  - payment_period: "전기납" 등
  - age_male_min, age_male_max, age_female_min, age_female_max: 정수
  - payment_cycle: "월납" 등

- RequiredSubscription / DividendInfo / PremiumInfo / PremiumDiscount / PrepaymentInfo
  - product_id
  - text: 각 항목의 상세 설명

관계:

- (Product)-[:HAS_COVERAGE]->(Coverage)
- (Coverage)-[:HAS_EVENT]->(PayableEvent)
- (Coverage)-[:HAS_LIMITATION]->(Limitation)
- (Product)-[:HAS_QUALIFICATION]->(Qualification)
- (Product)-[:HAS_REQUIRED_SUBSCRIPTION]->(RequiredSubscription)
- (Product)-[:HAS_DIVIDEND_INFO]->(DividendInfo)
- (Product)-[:HAS_PREMIUM_INFO]->(PremiumInfo)
- (Product)-[:HAS_PREMIUM_DISCOUNT]->(PremiumDiscount)
- (Product)-[:HAS_PREPAYMENT_INFO]->(PrepaymentInfo)

규칙:
- 항상 특정 product_id 에 대해서만 조회한다. product_id 는 반드시
  $product_id 파라미터로만 사용하고, 쿼리 문자열에 직접 넣지 않는다.
- "읽기 전용" Cypher 쿼리만 작성한다.
  - 허용: MATCH, OPTIONAL MATCH, WHERE, RETURN, ORDER BY, LIMIT, collect 등
  - 금지: CREATE, MERGE, DELETE, SET, LOAD CSV, CALL dbms.*, CALL db.schema.* 등 쓰기/관리 연산
- category, type1, type2, name 같은 문자열 속성은 정확히 일치하지 않을 수
  있으므로 CONTAINS 로 비교한다.
- 질문에 답하는 데 필요한 컬럼만 RETURN 한다.
- 마크다운 코드블록 없이 순수 Cypher 텍스트만 출력한다.
- 자연어 설명은 절대 출력하지 않는다.

[예시 1]

사용자 질문:
"이 상품에서 암 관련 보장 내용 알려줘"

가능한 Cypher 예시:

MATCH (p:Product {product_id: $product_id})
      -[:HAS_COVERAGE]->(c:Coverage)-[:HAS_EVENT]->(e:PayableEvent)
WHERE e.category CONTAINS "암"
RETURN c.name   AS coverage_name,
       e.reason AS reason,
       e.amount AS amount
ORDER BY coverage_name, reason;

[예시 2]

사용자 질문:
"암직접치료통원특약 보장 내용이랑 지급 제한 같이 보여줘"

가능한 Cypher 예시:

MATCH (c:Coverage {product_id: $product_id})
WHERE c.name CONTAINS "암직접치료통원특약"
OPTIONAL MATCH (c)-[:HAS_EVENT]->(e:PayableEvent)
OPTIONAL MATCH (c)-[:HAS_LIMITATION]->(l:Limitation)
RETURN c.name AS coverage_name,
       collect(DISTINCT e.reason) AS reasons,
       collect(DISTINCT l.text)   AS limitations;

[예시 3]

사용자 질문:
"간편심사형 최초계약 가입 가능 나이 알려줘"

가능한 Cypher 예시:

MATCH (p:Product {product_id: $product_id})-[:HAS_QUALIFICATION]->(q:Qualification)
WHERE q.type1 CONTAINS "간편심사형" AND q.type2 CONTAINS "최초계약"
RETURN q.type1 AS type1,
       q.type2 AS type2,
       q.age_male_min   AS age_male_min,
       q.age_male_max   AS age_male_max,
       q.age_female_min AS age_female_min,
       q.age_female_max AS age_female_max;`

func promptGenerateCypher(question, productID, contextText string) (system string, user string) {
	system = cypherSystemPrompt

	u := "product_id: " + productID + "\n\n사용자 질문:\n\"\"\"" + question + "\"\"\"\n"
	if contextText != "" {
		u += "\n아래는 이 상품에 실제로 존재하는 값들의 요약이다. 필터 값을 지어내지 말고\n" +
			"가능한 한 이 요약에 등장하는 값을 사용하라.\n\n" +
			"=== 그래프 메타데이터 요약 ===\n" + contextText + "\n"
	}
	u += "\n위 질문에 답을 하기 위한 Neo4j Cypher \"읽기 전용\" 쿼리 한 개를 작성하라.\n" +
		"위 시스템 프롬프트에서 설명한 스키마만 사용해야 한다.\n" +
		"쿼리 안에서는 product_id 를 $product_id 파라미터로 사용하라.\n\n" +
		"출력 형식:\n" +
		"- 마크다운 코드블록(백틱 세 개)을 사용하지 말고,\n" +
		"  순수 Cypher 쿼리 텍스트만 출력하라."
	return system, u
}

func promptAnswer(locale string) string {
	base := "너는 보험 상품에 대한 질문에 답하는 어시스턴트이다. " +
		"그래프에서 가져온 쿼리 결과(rows)와 그래프 메타데이터 요약이 주어진다. " +
		"반드시 이 데이터에 근거해서만 답변해야 한다. " +
		"데이터에 없는 내용은 추측하지 말고, 그래프에 해당 정보가 없다고 솔직하게 말해라. " +
		"나이, 기간, 납입주기 같은 숫자와 조건은 바꾸지 말고 그대로 인용해라."
	switch locale {
	case "en":
		return base + " 답변은 영어로 자연스럽게 작성해라."
	default:
		return base + " 답변은 한국어로 자연스럽게 작성해라."
	}
}
