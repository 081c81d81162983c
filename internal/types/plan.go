package types

// Variant labels, in rendering order. Each request always plans exactly these
// three variants.
const (
	VariantShort  = "short"
	VariantDirect = "direct"
	VariantWarm   = "warm"
)

// VariantLabels returns the fixed variant order. Callers must not mutate the
// returned slice.
func VariantLabels() []string {
	return []string{VariantShort, VariantDirect, VariantWarm}
}

// MaxVariantChars is the hard length ceiling for a generated variant.
const MaxVariantChars = 300

// CTAForVariant returns the fixed literal call-to-action for a variant label.
func CTAForVariant(label string) string {
	switch label {
	case VariantShort:
		return "Open to connect?"
	case VariantDirect:
		return "Open to a quick chat?"
	case VariantWarm:
		return "Worth connecting?"
	default:
		return ""
	}
}

// BridgePlanEntry is the complete, pre-generation specification of required
// literals for one message variant. Every string the validator later checks
// for comes from here.
type BridgePlanEntry struct {
	Variant       string `json:"variant"`
	TargetFact    string `json:"target_fact"`
	HookText      string `json:"hook_text"`
	ProofPoint    string `json:"proof_point"`
	Intent        string `json:"intent"`
	CTA           string `json:"cta"`
	RequiredToken string `json:"required_token,omitempty"`
}

// BridgePlan maps variant label to its fully specified entry.
type BridgePlan map[string]BridgePlanEntry
