package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/outreach-drafter/internal/types"
)

func analystEntry() types.BridgePlanEntry {
	return types.BridgePlanEntry{
		Variant:       types.VariantShort,
		TargetFact:    "Data Analyst at Acme",
		HookText:      "Columbia alum",
		ProofPoint:    "Built a pandas pipeline",
		CTA:           "Open to connect?",
		RequiredToken: "Acme",
	}
}

func compliantText(entry types.BridgePlanEntry) string {
	return "Hi Dana. Columbia alum here. Seeing Data Analyst at Acme, Built a pandas pipeline. Open to connect?"
}

func TestCheckVariant_Passes(t *testing.T) {
	entry := analystEntry()
	violations := CheckVariant(compliantText(entry), entry, []string{"pick your brain"})
	assert.Empty(t, violations)
}

func TestCheckVariant_Violations(t *testing.T) {
	entry := analystEntry()

	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "empty text",
			text:     "",
			expected: ViolationEmptyText,
		},
		{
			name:     "missing fact",
			text:     "Columbia alum here. Built a pandas pipeline at Acme. Open to connect?",
			expected: ViolationMissingFact,
		},
		{
			name:     "missing hook",
			text:     "Seeing Data Analyst at Acme, Built a pandas pipeline. Open to connect?",
			expected: ViolationMissingHook,
		},
		{
			name:     "missing proof point",
			text:     "Columbia alum here. Seeing Data Analyst at Acme. Open to connect?",
			expected: ViolationMissingProof,
		},
		{
			name:     "missing CTA",
			text:     "Columbia alum here. Seeing Data Analyst at Acme, Built a pandas pipeline.",
			expected: ViolationMissingCTA,
		},
		{
			name:     "CTA not at end",
			text:     "Open to connect? Columbia alum here. Seeing Data Analyst at Acme, Built a pandas pipeline.",
			expected: ViolationMissingCTAEnd,
		},
		{
			name:     "banned phrase case-insensitive",
			text:     "Columbia alum here, would love to Pick Your Brain. Seeing Data Analyst at Acme, Built a pandas pipeline. Open to connect?",
			expected: ViolationBannedPhrase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := CheckVariant(tt.text, entry, []string{"pick your brain"})
			assert.Contains(t, violations, tt.expected)
		})
	}
}

func TestCheckVariant_CaseSensitiveContainment(t *testing.T) {
	entry := analystEntry()
	text := strings.ToLower(compliantText(entry))
	violations := CheckVariant(text, entry, nil)
	assert.Contains(t, violations, ViolationMissingFact)
}

func TestCheckVariant_OverLength(t *testing.T) {
	entry := types.BridgePlanEntry{CTA: "Open to connect?"}
	text := strings.Repeat("a", 290) + " Open to connect?"
	violations := CheckVariant(text, entry, nil)
	assert.Contains(t, violations, ViolationOverLength)
}

func TestCheckVariant_EmptyPlanFieldsVacuous(t *testing.T) {
	violations := CheckVariant("Anything at all", types.BridgePlanEntry{}, nil)
	assert.Empty(t, violations)
}

func TestCheckVariants_OrderAndMissingVariant(t *testing.T) {
	entry := analystEntry()
	plan := types.BridgePlan{
		types.VariantShort:  entry,
		types.VariantDirect: entry,
		types.VariantWarm:   entry,
	}
	variants := []types.Variant{
		{Label: types.VariantWarm, Text: compliantText(entry)},
		{Label: types.VariantShort, Text: compliantText(entry)},
	}

	results := CheckVariants(variants, plan, nil)
	require.Len(t, results, 3)
	assert.Equal(t, types.VariantShort, results[0].Variant)
	assert.Equal(t, types.VariantDirect, results[1].Variant)
	assert.Equal(t, types.VariantWarm, results[2].Variant)

	assert.True(t, results[0].Passed)
	// The direct variant was never generated.
	assert.False(t, results[1].Passed)
	assert.Contains(t, results[1].Violations, ViolationEmptyText)
	assert.True(t, results[2].Passed)
}

func TestViolationCountAndAllPassed(t *testing.T) {
	results := []types.ValidationResult{
		{Variant: "short", Passed: true},
		{Variant: "direct", Passed: false, Violations: []string{ViolationMissingCTA, ViolationMissingFact}},
	}
	assert.Equal(t, 2, ViolationCount(results))
	assert.False(t, AllPassed(results))
	assert.True(t, AllPassed(results[:1]))
}
