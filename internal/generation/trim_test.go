package generation

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/outreach-drafter/internal/types"
)

func TestTrimToLimitPreservingCTA(t *testing.T) {
	cta := "Open to connect?"

	t.Run("short text untouched", func(t *testing.T) {
		text := "Hi there. Open to connect?"
		assert.Equal(t, text, TrimToLimitPreservingCTA(text, cta, 300))
	})

	t.Run("text after CTA dropped", func(t *testing.T) {
		text := "Hi there. Open to connect? Looking forward!"
		assert.Equal(t, "Hi there. Open to connect?", TrimToLimitPreservingCTA(text, cta, 300))
	})

	t.Run("missing CTA appended", func(t *testing.T) {
		got := TrimToLimitPreservingCTA("Hi there.", cta, 300)
		assert.Equal(t, "Hi there Open to connect?", got)
	})

	t.Run("over limit trims prefix not CTA", func(t *testing.T) {
		text := strings.Repeat("word ", 80) + cta
		got := TrimToLimitPreservingCTA(text, cta, 300)
		assert.LessOrEqual(t, len(got), 300)
		assert.True(t, strings.HasSuffix(got, cta))
		assert.Contains(t, got, " ... ")
	})

	t.Run("no CTA plain truncation", func(t *testing.T) {
		text := strings.Repeat("a", 400)
		got := TrimToLimitPreservingCTA(text, "", 300)
		assert.Equal(t, 300, len(got))
	})

	t.Run("empty text", func(t *testing.T) {
		assert.Equal(t, "", TrimToLimitPreservingCTA("", cta, 300))
	})

	t.Run("multi-byte text stays valid UTF-8", func(t *testing.T) {
		text := strings.Repeat("é", 200) + " " + cta
		got := TrimToLimitPreservingCTA(text, cta, 300)
		assert.True(t, utf8.ValidString(got))
		assert.LessOrEqual(t, len(got), 300)
		assert.True(t, strings.HasSuffix(got, cta))

		plain := TrimToLimitPreservingCTA(strings.Repeat("é", 200), "", 301)
		assert.True(t, utf8.ValidString(plain))
		assert.LessOrEqual(t, len(plain), 301)
	})
}

func TestFinalizeVariants(t *testing.T) {
	plan := types.BridgePlan{
		types.VariantShort: {Variant: types.VariantShort, CTA: "Open to connect?"},
	}
	variants := []types.Variant{
		{Label: types.VariantShort, Text: strings.Repeat("word ", 80) + "Open to connect?", CharCount: 0},
	}

	out := finalizeVariants(variants, plan)
	assert.LessOrEqual(t, out[0].CharCount, types.MaxVariantChars)
	assert.Equal(t, len(out[0].Text), out[0].CharCount)
	assert.True(t, strings.HasSuffix(out[0].Text, "Open to connect?"))
}
