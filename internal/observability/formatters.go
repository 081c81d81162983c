// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/outreach-drafter/internal/normalize"
	"github.com/jonathan/outreach-drafter/internal/planning"
	"github.com/jonathan/outreach-drafter/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = normalize.CutAtRune(line, boxWidth-7) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintTargetFacts outputs a ranked summary of the extracted target facts.
func (p *Printer) PrintTargetFacts(facts []types.Fact) {
	if len(facts) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(facts), maxItemsToShow)
	for i := 0; i < count; i++ {
		fact := facts[i]
		sb.WriteString(fmt.Sprintf("%2d  [%s] %s\n", fact.Score, fact.Type, fact.Text))
	}
	if len(facts) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(facts)-maxItemsToShow))
	}

	p.printBox("TARGET FACTS", strings.TrimRight(sb.String(), "\n"))
}

// PrintAnchorPlan outputs the selected hook anchors per slot.
func (p *Printer) PrintAnchorPlan(plan types.AnchorPlan) {
	if len(plan) == 0 {
		return
	}

	labels := make([]string, 0, len(plan))
	for label := range plan {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var sb strings.Builder
	for _, label := range labels {
		anchor := plan[label]
		sb.WriteString(fmt.Sprintf("%-7s %2d [%s] %s\n", label, anchor.Score, anchor.Type, anchor.Text))
	}

	p.printBox("ANCHOR PLAN", strings.TrimRight(sb.String(), "\n"))
}

// PrintBridgePlan outputs the per-variant bridge plan.
func (p *Printer) PrintBridgePlan(plan types.BridgePlan) {
	if len(plan) == 0 {
		return
	}

	var sb strings.Builder
	for i, label := range types.VariantLabels() {
		entry, ok := plan[label]
		if !ok {
			continue
		}
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%s:\n", label))
		sb.WriteString(fmt.Sprintf("  fact:  %s\n", entry.TargetFact))
		sb.WriteString(fmt.Sprintf("  hook:  %s\n", entry.HookText))
		if entry.ProofPoint != "" {
			sb.WriteString(fmt.Sprintf("  proof: %s\n", entry.ProofPoint))
		}
		sb.WriteString(fmt.Sprintf("  cta:   %s\n", entry.CTA))
		if entry.RequiredToken != "" {
			sb.WriteString(fmt.Sprintf("  token: %s\n", entry.RequiredToken))
		}
	}

	p.printBox("BRIDGE PLAN", strings.TrimRight(sb.String(), "\n"))
}

// PrintValidations outputs the validation outcome per variant.
func (p *Printer) PrintValidations(results []types.ValidationResult) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	for _, res := range results {
		status := "PASS"
		if !res.Passed {
			status = "FAIL"
		}
		sb.WriteString(fmt.Sprintf("%-7s %s", res.Variant, status))
		if len(res.Violations) > 0 {
			sb.WriteString(": " + strings.Join(res.Violations, "; "))
		}
		sb.WriteString("\n")
	}

	p.printBox("VALIDATION", strings.TrimRight(sb.String(), "\n"))
}

// PrintPlan outputs the full planning result.
func (p *Printer) PrintPlan(result planning.Result) {
	if len(result.TargetTags) > 0 {
		p.printBox("TARGET TAGS", strings.Join(result.TargetTags, ", "))
	}
	p.PrintTargetFacts(result.TargetFacts)
	p.PrintAnchorPlan(result.AnchorPlan)
	p.PrintBridgePlan(result.BridgePlan)
}
