package generation

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/jonathan/outreach-drafter/internal/normalize"
	"github.com/jonathan/outreach-drafter/internal/types"
)

var jsonFenceRe = regexp.MustCompile("(?is)```(?:json)?\\s*([\\s\\S]*?)```")

// rawResponse mirrors the output-format contract the prompt mandates.
type rawResponse struct {
	Variants []struct {
		Label     string `json:"label"`
		Text      string `json:"text"`
		CharCount int    `json:"char_count"`
	} `json:"variants"`
}

// ExtractJSON salvages a JSON object from model output: fenced block first,
// then the outermost brace slice. Returns "" when no object is present.
func ExtractJSON(content string) string {
	candidate := strings.TrimSpace(content)
	if candidate == "" {
		return ""
	}
	if match := jsonFenceRe.FindStringSubmatch(candidate); match != nil {
		candidate = strings.TrimSpace(match[1])
	}
	if json.Valid([]byte(candidate)) {
		return candidate
	}
	start := strings.Index(candidate, "{")
	end := strings.LastIndex(candidate, "}")
	if start != -1 && end > start {
		sliced := candidate[start : end+1]
		if json.Valid([]byte(sliced)) {
			return sliced
		}
	}
	return ""
}

// ParseVariants decodes and normalizes the model's variants: blank texts are
// dropped, over-long texts truncated, and unknown labels reassigned by
// position. Char counts are always recomputed; the model's own count is not
// trusted.
func ParseVariants(raw string) ([]types.Variant, error) {
	var decoded rawResponse
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, err
	}

	labels := types.VariantLabels()
	known := make(map[string]bool, len(labels))
	for _, label := range labels {
		known[label] = true
	}

	var variants []types.Variant
	for i, item := range decoded.Variants {
		text := strings.TrimSpace(item.Text)
		if text == "" {
			continue
		}
		if len(text) > types.MaxVariantChars {
			text = normalize.TruncateEllipsis(text, types.MaxVariantChars)
		}
		label := strings.ToLower(strings.TrimSpace(item.Label))
		if !known[label] {
			if i < len(labels) {
				label = labels[i]
			} else {
				label = "variant"
			}
		}
		variants = append(variants, types.Variant{Label: label, Text: text, CharCount: len(text)})
	}
	return variants, nil
}
