package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/outreach-drafter/internal/planning"
	"github.com/jonathan/outreach-drafter/internal/types"
)

func TestPrintTargetFacts(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintTargetFacts([]types.Fact{
		{Type: types.FactRoleCompany, Text: "Data Analyst at Acme", Score: 12},
		{Type: types.FactLocation, Text: "NYC", Score: 6},
	})

	out := buf.String()
	assert.Contains(t, out, "TARGET FACTS")
	assert.Contains(t, out, "[role_company] Data Analyst at Acme")
	assert.Contains(t, out, "[location] NYC")
	assert.Contains(t, out, "┌")
	assert.Contains(t, out, "└")
}

func TestPrintTargetFacts_TruncatesLongList(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	facts := make([]types.Fact, 8)
	for i := range facts {
		facts[i] = types.Fact{Type: types.FactDomain, Text: "fact", Score: 8 - i}
	}
	p.PrintTargetFacts(facts)

	assert.Contains(t, buf.String(), "... and 3 more")
}

func TestPrintTargetFacts_EmptyPrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintTargetFacts(nil)
	assert.Empty(t, buf.String())
}

func TestPrintAnchorPlan(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAnchorPlan(types.AnchorPlan{
		"warm":  {Type: types.AnchorSchool, Text: "Columbia University alum", Score: 12},
		"short": {Type: types.AnchorCompany, Text: "Both have experience at Acme", Score: 8},
	})

	out := buf.String()
	assert.Contains(t, out, "ANCHOR PLAN")
	assert.Contains(t, out, "[school]")
	assert.Contains(t, out, "[company]")

	// Labels print in sorted order.
	assert.Less(t, strings.Index(out, "short"), strings.Index(out, "warm"))
}

func TestPrintBridgePlan(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintBridgePlan(types.BridgePlan{
		"short": {
			TargetFact: "Data Analyst at Acme",
			HookText:   "your analytics work",
			CTA:        "Open to connect?",
		},
		"warm": {
			TargetFact:    "Columbia University alum",
			HookText:      "the Columbia connection",
			ProofPoint:    "Built a reporting pipeline",
			CTA:           "Worth connecting?",
			RequiredToken: "Acme",
		},
	})

	out := buf.String()
	assert.Contains(t, out, "BRIDGE PLAN")
	assert.Contains(t, out, "short:")
	assert.Contains(t, out, "warm:")
	assert.Contains(t, out, "fact:  Data Analyst at Acme")
	assert.Contains(t, out, "proof: Built a reporting pipeline")
	assert.Contains(t, out, "token: Acme")
	assert.NotContains(t, out, "direct:")
}

func TestPrintValidations(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintValidations([]types.ValidationResult{
		{Variant: "short", Passed: true},
		{Variant: "direct", Passed: false, Violations: []string{"over 300 characters"}},
	})

	out := buf.String()
	assert.Contains(t, out, "VALIDATION")
	assert.Contains(t, out, "PASS")
	assert.Contains(t, out, "FAIL: over 300 characters")
}

func TestPrintPlan(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintPlan(planning.Result{
		TargetTags:  []string{"analytics", "nyc"},
		TargetFacts: []types.Fact{{Type: types.FactDomain, Text: "works in analytics", Score: 8}},
	})

	out := buf.String()
	assert.Contains(t, out, "TARGET TAGS")
	assert.Contains(t, out, "analytics, nyc")
	assert.Contains(t, out, "TARGET FACTS")
}
