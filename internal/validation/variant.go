// Package validation checks generated variant text against its bridge plan.
// All checks are purely lexical; nothing here calls out of process.
package validation

import (
	"strings"

	"github.com/jonathan/outreach-drafter/internal/types"
)

// Violation codes reported for a variant. The strings are stable: they appear
// in trace records and API responses.
const (
	ViolationEmptyText     = "empty text"
	ViolationOverLength    = "length > 300"
	ViolationMissingFact   = "missing target_fact"
	ViolationMissingHook   = "missing hook_text"
	ViolationMissingProof  = "missing proof_point"
	ViolationMissingCTA    = "missing CTA"
	ViolationMissingCTAEnd = "missing CTA end"
	ViolationMissingToken  = "missing required_token"
	ViolationBannedPhrase  = "contains banned phrase"
)

// CheckVariant validates one variant's text against its plan and the banlist.
// Empty plan fields are vacuously satisfied. Containment checks are
// case-sensitive verbatim matches except the banlist, which is
// case-insensitive; the length check is an exact character count.
func CheckVariant(text string, plan types.BridgePlanEntry, banlist []string) []string {
	var violations []string
	if text == "" {
		return []string{ViolationEmptyText}
	}
	if len(text) > types.MaxVariantChars {
		violations = append(violations, ViolationOverLength)
	}
	if plan.TargetFact != "" && !strings.Contains(text, plan.TargetFact) {
		violations = append(violations, ViolationMissingFact)
	}
	if plan.HookText != "" && !strings.Contains(text, plan.HookText) {
		violations = append(violations, ViolationMissingHook)
	}
	if plan.ProofPoint != "" && !strings.Contains(text, plan.ProofPoint) {
		violations = append(violations, ViolationMissingProof)
	}
	if plan.CTA != "" {
		if !strings.Contains(text, plan.CTA) {
			violations = append(violations, ViolationMissingCTA)
		} else if !strings.HasSuffix(text, plan.CTA) {
			violations = append(violations, ViolationMissingCTAEnd)
		}
	}
	if plan.RequiredToken != "" && !strings.Contains(text, plan.RequiredToken) {
		violations = append(violations, ViolationMissingToken)
	}

	lowered := strings.ToLower(text)
	for _, phrase := range banlist {
		if phrase == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(phrase)) {
			violations = append(violations, ViolationBannedPhrase)
			break
		}
	}
	return violations
}

// CheckVariants validates every variant in label order and returns one result
// per plan entry, including plans with no generated text.
func CheckVariants(variants []types.Variant, plan types.BridgePlan, banlist []string) []types.ValidationResult {
	byLabel := make(map[string]types.Variant, len(variants))
	for _, v := range variants {
		byLabel[v.Label] = v
	}
	var results []types.ValidationResult
	for _, label := range types.VariantLabels() {
		entry, ok := plan[label]
		if !ok {
			continue
		}
		variant := byLabel[label]
		violations := CheckVariant(variant.Text, entry, banlist)
		results = append(results, types.ValidationResult{
			Variant:    label,
			Passed:     len(violations) == 0,
			Violations: violations,
		})
	}
	return results
}

// ViolationCount sums violations across results.
func ViolationCount(results []types.ValidationResult) int {
	total := 0
	for _, result := range results {
		total += len(result.Violations)
	}
	return total
}

// AllPassed reports whether every result passed.
func AllPassed(results []types.ValidationResult) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}
