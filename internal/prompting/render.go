package prompting

import (
	"fmt"
	"strings"

	"github.com/jonathan/outreach-drafter/internal/planning"
	"github.com/jonathan/outreach-drafter/internal/types"
)

// maxFactLines bounds how many ranked facts the context block lists.
const maxFactLines = 5

// Prompt is the rendered model input: a system instruction and a user context
// block. Every literal string in the plan appears unmodified in Context.
type Prompt struct {
	System  string `json:"system"`
	Context string `json:"context"`
}

// Render serializes a planning result into model-facing instructions. This
// stage has no branching logic beyond variant iteration.
func Render(plan planning.Result) Prompt {
	var b strings.Builder

	b.WriteString(Format(MustGet("generation.json", "target_header"), map[string]string{
		"Name": plan.Target.Name,
	}))
	b.WriteString("\n\n")

	b.WriteString("TARGET_FACTS_RANKED:\n")
	if len(plan.TargetFacts) == 0 {
		b.WriteString("- (none)\n")
	}
	for i, fact := range plan.TargetFacts {
		if i == maxFactLines {
			break
		}
		fmt.Fprintf(&b, "- %d. [%s] %s (score %d)\n", i+1, fact.Type, fact.Text, fact.Score)
	}
	b.WriteString("\n")

	b.WriteString("BRIDGE_PLAN (MUST FOLLOW EXACTLY):\n")
	for _, variant := range types.VariantLabels() {
		writeBridgeBlock(&b, variant, plan.BridgePlan[variant])
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "BANLIST: %s\n\n", strings.Join(plan.Banlist, ", "))

	b.WriteString("HARD TEMPLATE (recommended, keep it short):\n")
	b.WriteString(MustGet("generation.json", "hard_template"))
	b.WriteString("\n")
	b.WriteString(MustGet("generation.json", "token_placement"))
	b.WriteString("\n")
	b.WriteString("Do not add extra facts about the sender beyond PROOF_POINT.\n\n")

	b.WriteString("OUTPUT_JSON_SCHEMA (shape):\n")
	b.WriteString(MustGet("generation.json", "output_shape"))
	b.WriteString("\n")

	return Prompt{
		System:  MustGet("generation.json", "system"),
		Context: b.String(),
	}
}

// Combined returns the single-string prompt handed to backends that take one
// text input: system instruction first, context second.
func (p Prompt) Combined() string {
	return p.System + "\n\n" + p.Context
}

func writeBridgeBlock(b *strings.Builder, label string, entry types.BridgePlanEntry) {
	fmt.Fprintf(b, "%s:\n", label)
	fmt.Fprintf(b, "  TARGET_FACT=%s\n", entry.TargetFact)
	fmt.Fprintf(b, "  HOOK_TEXT=%s\n", entry.HookText)
	fmt.Fprintf(b, "  PROOF_POINT=%s\n", entry.ProofPoint)
	fmt.Fprintf(b, "  INTENT=%s\n", entry.Intent)
	fmt.Fprintf(b, "  CTA=%s\n", entry.CTA)
	if entry.RequiredToken != "" {
		fmt.Fprintf(b, "  REQUIRED_TOKEN=%s\n", entry.RequiredToken)
	}
}
