package generation

import (
	"strings"

	"github.com/jonathan/outreach-drafter/internal/normalize"
	"github.com/jonathan/outreach-drafter/internal/types"
)

// TrimToLimitPreservingCTA enforces the character ceiling without ever
// cutting off the call-to-action: the text is made to end with the CTA, then
// the prefix is shortened until the whole message fits.
func TrimToLimitPreservingCTA(text, cta string, limit int) string {
	if text == "" {
		return text
	}

	if cta != "" && !strings.HasSuffix(text, cta) {
		if idx := strings.LastIndex(text, cta); idx >= 0 {
			text = text[:idx+len(cta)]
		} else {
			text = strings.TrimRight(text, " .") + " " + cta
		}
	}

	if len(text) <= limit {
		return text
	}
	if cta == "" {
		return strings.TrimRight(normalize.CutAtRune(text, limit), " ")
	}

	const ellipsis = " ... "
	maxPrefix := limit - len(cta) - len(ellipsis)
	if maxPrefix <= 0 {
		if len(cta) > limit {
			return normalize.CutAtRune(cta, limit)
		}
		return cta
	}
	prefix := strings.TrimRight(normalize.CutAtRune(text, maxPrefix), " ")
	return prefix + ellipsis + cta
}

// finalizeVariants applies the CTA-preserving trim per variant and recomputes
// char counts.
func finalizeVariants(variants []types.Variant, plan types.BridgePlan) []types.Variant {
	out := make([]types.Variant, 0, len(variants))
	for _, variant := range variants {
		entry := plan[variant.Label]
		text := TrimToLimitPreservingCTA(variant.Text, entry.CTA, types.MaxVariantChars)
		out = append(out, types.Variant{Label: variant.Label, Text: text, CharCount: len(text)})
	}
	return out
}
