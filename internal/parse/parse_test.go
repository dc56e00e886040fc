package parse

import (
	"testing"

	"github.com/Mg2n/AFI-Extractor/pkg/types"
)

func TestDocumentEndToEnd(t *testing.T) {
	lines := []string{
		"Process 1.0 Intake",
		"Areas for Improvement:",
		"1 - Bad process (Major - Ops)",
		"Recommendations:",
		"1 - Fix it",
	}

	findings := Document(lines, "audit.docx")
	if len(findings) != 1 {
		t.Fatalf("got %d findings, want 1", len(findings))
	}

	want := types.Finding{
		AFI:            "Bad process",
		Classification: "Major",
		Entity:         "Ops",
		Recommendation: "Fix it",
		ProcessLabel:   "Process – 1.0 Intake",
		Document:       "audit.docx",
	}
	if findings[0] != want {
		t.Errorf("finding = %+v, want %+v", findings[0], want)
	}
}

func TestRecommendationMerge(t *testing.T) {
	lines := []string{
		"Process 2.1 Shipping",
		"Areas of Improvement:",
		"1 - Late shipments (Major - Logistics)",
		"2 - Damaged goods (Other - Warehouse)",
		"Recommendations:",
		"1 - Do X",
		"continue doing X",
		"2 - Do Y",
	}

	findings := Document(lines, "audit.docx")
	if len(findings) != 2 {
		t.Fatalf("got %d findings, want 2", len(findings))
	}
	if got := findings[0].Recommendation; got != "Do X | continue doing X" {
		t.Errorf("recommendation 1 = %q", got)
	}
	if got := findings[1].Recommendation; got != "Do Y" {
		t.Errorf("recommendation 2 = %q", got)
	}
}

func TestRecommendationWithoutNumberDefaultsToOne(t *testing.T) {
	lines := []string{
		"Value",
		"Areas for Improvement:",
		"1 - Slow approvals (Major - Finance)",
		"Recommendations:",
		"Speed up the approvals",
		"and track them",
	}

	findings := Document(lines, "a.pdf")
	if len(findings) != 1 {
		t.Fatalf("got %d findings, want 1", len(findings))
	}
	if got := findings[0].Recommendation; got != "Speed up the approvals | and track them" {
		t.Errorf("recommendation = %q", got)
	}
	if got := findings[0].ProcessLabel; got != "Value" {
		t.Errorf("label = %q", got)
	}
}

func TestFallbackNumbering(t *testing.T) {
	lines := []string{
		"Operational - Warehousing",
		"Areas for Improvement:",
		"First issue (Major - Ops)",
		"Second issue (Other - HR)",
		"Recommendations:",
		"1 - Fix the first",
		"2 - Fix the second",
	}

	findings := Document(lines, "audit.docx")
	if len(findings) != 2 {
		t.Fatalf("got %d findings, want 2", len(findings))
	}
	if findings[0].AFI != "First issue" || findings[0].Recommendation != "Fix the first" {
		t.Errorf("finding 1 = %+v", findings[0])
	}
	if findings[1].AFI != "Second issue" || findings[1].Recommendation != "Fix the second" {
		t.Errorf("finding 2 = %+v", findings[1])
	}
	if got := findings[0].ProcessLabel; got != "Operational – Warehousing" {
		t.Errorf("label = %q", got)
	}
}

func TestExplicitNumbersAreNeverRenumbered(t *testing.T) {
	// The unnumbered item gets fallback number 1 and sorts ahead of the
	// explicit 2; the explicit number is untouched.
	lines := []string{
		"Process 3.0 Billing",
		"Areas for Improvement:",
		"2 - Wrong invoices (Major - Billing)",
		"Unposted credits (Other - Billing)",
		"Recommendations:",
		"1 - Post the credits",
		"2 - Check the invoices",
	}

	findings := Document(lines, "audit.docx")
	if len(findings) != 2 {
		t.Fatalf("got %d findings, want 2", len(findings))
	}
	if findings[0].AFI != "Unposted credits" || findings[0].Recommendation != "Post the credits" {
		t.Errorf("finding 1 = %+v", findings[0])
	}
	if findings[1].AFI != "Wrong invoices" || findings[1].Recommendation != "Check the invoices" {
		t.Errorf("finding 2 = %+v", findings[1])
	}
}

func TestAnnotationOnlyLineUpdatesLastItem(t *testing.T) {
	lines := []string{
		"Process 1.1 Receiving",
		"Areas for Improvement:",
		"1 - Bad process",
		"(Major - Ops)",
		"Recommendations:",
		"1 - Fix it",
	}

	findings := Document(lines, "audit.docx")
	if len(findings) != 1 {
		t.Fatalf("got %d findings, want 1", len(findings))
	}
	if findings[0].Classification != "Major" || findings[0].Entity != "Ops" {
		t.Errorf("pair = (%q, %q)", findings[0].Classification, findings[0].Entity)
	}
	if findings[0].AFI != "Bad process" {
		t.Errorf("afi = %q", findings[0].AFI)
	}
}

func TestAnnotationOnlyLineNeverOverwrites(t *testing.T) {
	lines := []string{
		"Process 1.1 Receiving",
		"Areas for Improvement:",
		"1 - Bad process (Major - Ops)",
		"(Other - HR)",
	}

	findings := Document(lines, "audit.docx")
	if len(findings) != 1 {
		t.Fatalf("got %d findings, want 1", len(findings))
	}
	if findings[0].Classification != "Major" || findings[0].Entity != "Ops" {
		t.Errorf("pair = (%q, %q), want first values kept", findings[0].Classification, findings[0].Entity)
	}
}

func TestCrossLineAnnotationInsideSection(t *testing.T) {
	lines := []string{
		"Process 1.0 Intake",
		"Areas for Improvement:",
		"1 - Improve widget handling (",
		"Major - Logistics)",
		"Recommendations:",
		"1 - Train the handlers",
	}

	findings := Document(lines, "audit.docx")
	if len(findings) != 1 {
		t.Fatalf("got %d findings, want 1 (continuation line must be consumed)", len(findings))
	}
	f := findings[0]
	if f.AFI != "Improve widget handling" || f.Classification != "Major" || f.Entity != "Logistics" {
		t.Errorf("finding = %+v", f)
	}
}

func TestUnparseableAFILinesAreIgnored(t *testing.T) {
	lines := []string{
		"Process 1.0 Intake",
		"Areas for Improvement:",
		"Some narrative without an annotation",
		"1 - Real finding (Major - Ops)",
	}

	findings := Document(lines, "audit.docx")
	if len(findings) != 1 {
		t.Fatalf("got %d findings, want 1", len(findings))
	}
	if findings[0].AFI != "Real finding" {
		t.Errorf("afi = %q", findings[0].AFI)
	}
}

func TestOneBlockPerProcessHeader(t *testing.T) {
	lines := []string{
		"Front matter is ignored",
		"Process 1.0 Intake",
		"Areas for Improvement:",
		"1 - A (Major - X)",
		"Recommendations:",
		"1 - Fix A",
		"Process 2.0 Shipping",
		"Areas for Improvement:",
		"1 - B (Other - Y)",
		"Recommendations:",
		"1 - Fix B",
	}

	findings := Document(lines, "audit.docx")
	if len(findings) != 2 {
		t.Fatalf("got %d findings, want 2", len(findings))
	}
	if findings[0].ProcessLabel != "Process – 1.0 Intake" || findings[0].Recommendation != "Fix A" {
		t.Errorf("finding 1 = %+v", findings[0])
	}
	if findings[1].ProcessLabel != "Process – 2.0 Shipping" || findings[1].Recommendation != "Fix B" {
		t.Errorf("finding 2 = %+v", findings[1])
	}
}

func TestMissingRecommendationIsEmpty(t *testing.T) {
	lines := []string{
		"Process 1.0 Intake",
		"Areas for Improvement:",
		"1 - No advice here (Major - Ops)",
	}

	findings := Document(lines, "audit.docx")
	if len(findings) != 1 {
		t.Fatalf("got %d findings, want 1", len(findings))
	}
	if findings[0].Recommendation != "" {
		t.Errorf("recommendation = %q, want empty", findings[0].Recommendation)
	}
}

func TestEmptyDocumentYieldsNothing(t *testing.T) {
	if findings := Document(nil, "empty.pdf"); len(findings) != 0 {
		t.Errorf("got %d findings, want 0", len(findings))
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		line string
		want role
	}{
		{"Process 1.2 Goods receipt", roleProcess},
		{"process: 4 Returns", roleProcess},
		{"Value", roleSimpleProcess},
		{"Operational - Warehousing", roleSimpleProcess},
		{"Business: year-end close", roleSimpleProcess},
		{"Value chain gaps persist", roleText},
		{"Areas for Improvement:", roleAFIHeader},
		{"Area of improvement", roleAFIHeader},
		{"Recommendations:", roleRecoHeader},
		{"Recommendation", roleRecoHeader},
		{"(Major - Ops)", roleAnnotationOnly},
		{"12 - Something numbered", roleNumbered},
		{"Plain narrative", roleText},
	}

	for _, tt := range tests {
		if got := classify(tt.line).role; got != tt.want {
			t.Errorf("classify(%q).role = %d, want %d", tt.line, got, tt.want)
		}
	}
}
