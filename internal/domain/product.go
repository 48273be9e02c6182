package domain

// ProductDocument is the structured product summary consumed by the batch
// loader. It mirrors the graph schema: one product owning coverages, payable
// events, limitations, qualifications and the per-product meta facts.
type ProductDocument struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`

	Coverages      []CoverageDoc      `json:"coverages"`
	PayableEvents  []PayableEventDoc  `json:"payable_events"`
	Limitations    []LimitationDoc    `json:"limitations"`
	Qualifications []QualificationDoc `json:"qualifications"`

	RequiredSubscription string `json:"required_subscription"`
	DividendInfo         string `json:"dividend_info"`
	PremiumInfo          string `json:"premium_info"`
	PremiumDiscount      string `json:"premium_discount"`
	PrepaymentInfo       string `json:"prepayment_info"`
}

type CoverageDoc struct {
	Name string `json:"name"`
	Type string `json:"type"` // MAIN or RIDER
}

type PayableEventDoc struct {
	CoverageName string `json:"coverage_name"`
	CoverageType string `json:"coverage_type"`
	Category     string `json:"category"`
	Reason       string `json:"reason"`
	Amount       string `json:"amount"`
}

type LimitationDoc struct {
	// Empty CoverageName marks a product-wide limitation.
	CoverageName string `json:"coverage_name"`
	Category     string `json:"category"`
	Text         string `json:"text"`
}

type QualificationDoc struct {
	Type1           string `json:"type1"`
	Type2           string `json:"type2"`
	InsurancePeriod string `json:"insurance_period"`
	PaymentPeriod   string `json:"payment_period"`
	AgeMaleMin      int    `json:"age_male_min"`
	AgeMaleMax      int    `json:"age_male_max"`
	AgeFemaleMin    int    `json:"age_female_min"`
	AgeFemaleMax    int    `json:"age_female_max"`
	PaymentCycle    string `json:"payment_cycle"`
}
