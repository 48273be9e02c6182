package ingest

import (
	"testing"

	"github.com/jinwoohan/insuragraph/internal/domain"
	"github.com/jinwoohan/insuragraph/internal/platform/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func TestValidateDocumentRequiresProductID(t *testing.T) {
	_, err := validateDocument(domain.ProductDocument{}, testLogger(t))
	if err == nil {
		t.Fatal("expected error for empty product_id")
	}
}

func TestValidateDocumentDropsInvalidCoverageType(t *testing.T) {
	doc := domain.ProductDocument{
		ProductID: "P-001",
		Coverages: []domain.CoverageDoc{
			{Name: "암진단보장", Type: "MAIN"},
			{Name: "이상한담보", Type: "OPTIONAL"},
			{Name: "수술특약", Type: "RIDER"},
		},
	}

	got, err := validateDocument(doc, testLogger(t))
	if err != nil {
		t.Fatalf("validateDocument: %v", err)
	}
	if len(got.Coverages) != 2 {
		t.Fatalf("coverages = %d, want 2", len(got.Coverages))
	}
	for _, c := range got.Coverages {
		if c.Type != domain.CoverageTypeMain && c.Type != domain.CoverageTypeRider {
			t.Fatalf("invalid coverage type survived: %q", c.Type)
		}
	}
}

func TestValidateDocumentDropsInvertedAgeBounds(t *testing.T) {
	doc := domain.ProductDocument{
		ProductID: "P-001",
		Qualifications: []domain.QualificationDoc{
			{Type1: "일반", AgeMaleMin: 20, AgeMaleMax: 60, AgeFemaleMin: 20, AgeFemaleMax: 60},
			{Type1: "역전", AgeMaleMin: 70, AgeMaleMax: 60, AgeFemaleMin: 20, AgeFemaleMax: 60},
		},
	}

	got, err := validateDocument(doc, testLogger(t))
	if err != nil {
		t.Fatalf("validateDocument: %v", err)
	}
	if len(got.Qualifications) != 1 {
		t.Fatalf("qualifications = %d, want 1", len(got.Qualifications))
	}
	if got.Qualifications[0].Type1 != "일반" {
		t.Fatalf("kept qualification = %q, want 일반", got.Qualifications[0].Type1)
	}
}

func TestProductNamePrefersExplicitName(t *testing.T) {
	doc := domain.ProductDocument{
		Name: "무배당 든든건강보험",
		Coverages: []domain.CoverageDoc{
			{Name: "암진단보장", Type: domain.CoverageTypeMain},
		},
	}
	if got := productName(doc); got != "무배당 든든건강보험" {
		t.Fatalf("productName = %q", got)
	}
}

func TestProductNameFallsBackToMainCoverage(t *testing.T) {
	doc := domain.ProductDocument{
		Coverages: []domain.CoverageDoc{
			{Name: "수술특약", Type: domain.CoverageTypeRider},
			{Name: "암진단보장", Type: domain.CoverageTypeMain},
		},
	}
	if got := productName(doc); got != "암진단보장" {
		t.Fatalf("productName = %q, want 암진단보장", got)
	}

	if got := productName(domain.ProductDocument{}); got != "UNKNOWN_PRODUCT" {
		t.Fatalf("productName = %q, want UNKNOWN_PRODUCT", got)
	}
}
