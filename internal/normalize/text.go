// Package normalize provides canonicalization for free-text profile fields and
// the shared text utilities the planning pipeline keys, matches and tokenizes with.
package normalize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MinTokenLen is the minimum token length considered signal when tokenizing
// free text for keyword overlap.
const MinTokenLen = 4

var (
	nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

	// accentFolder strips combining marks after NFKD decomposition so that
	// "Universität" and "Universitat" produce the same key.
	accentFolder = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
)

// SchoolStopwords are tokens too generic to establish a school match on their own.
var SchoolStopwords = map[string]bool{
	"university": true, "college": true, "school": true, "institute": true, "faculty": true,
}

// CompanyStopwords are tokens too generic to establish a company match on their own.
var CompanyStopwords = map[string]bool{
	"group": true, "inc": true, "corp": true, "ltd": true, "llc": true,
	"company": true, "technologies": true, "tech": true,
}

// KeywordStopwords are filler tokens excluded from profile keyword-overlap hooks.
var KeywordStopwords = map[string]bool{
	"with": true, "from": true, "this": true, "that": true, "have": true,
	"about": true, "their": true, "where": true, "when": true, "into": true,
	"based": true, "working": true, "years": true, "student": true,
	"experience": true, "currently": true, "professional": true,
}

// Key lowercases text, folds accents, and collapses every non-alphanumeric run
// into a single space. It is the canonical dedup key for facts, anchors and hooks.
func Key(text string) string {
	if text == "" {
		return ""
	}
	folded, _, err := transform.String(accentFolder, text)
	if err != nil {
		folded = text
	}
	return strings.TrimSpace(nonAlnumRe.ReplaceAllString(strings.ToLower(folded), " "))
}

// Tokenize splits text on non-alphanumeric boundaries and keeps lowercase
// tokens of at least MinTokenLen characters.
func Tokenize(text string) []string {
	var tokens []string
	for _, tok := range nonAlnumRe.Split(strings.ToLower(text), -1) {
		if len(tok) >= MinTokenLen {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// TokenSet returns the normalized tokens of text minus stopwords.
func TokenSet(text string, stopwords map[string]bool) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(Key(text)) {
		if tok != "" && !stopwords[tok] {
			set[tok] = true
		}
	}
	return set
}

// MatchEntity reports whether two entity names refer to the same thing:
// either one normalized form contains the other, or their non-stopword token
// sets overlap by at least minTokenOverlap.
func MatchEntity(a, b string, stopwords map[string]bool, minTokenOverlap int) bool {
	na, nb := Key(a), Key(b)
	if na == "" || nb == "" {
		return false
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return true
	}
	tokensA := TokenSet(a, stopwords)
	tokensB := TokenSet(b, stopwords)
	overlap := 0
	for tok := range tokensA {
		if tokensB[tok] {
			overlap++
		}
	}
	required := minTokenOverlap
	if required < 1 {
		required = 1
	}
	return overlap >= required
}

// SchoolMinOverlap decides how many tokens two school names must share to
// match: single-token names match on one token, multi-token names need two so
// that "Columbia University" does not match "New York University" on
// stopwords alone.
func SchoolMinOverlap(a, b string) int {
	aTokens := schoolTokens(a)
	bTokens := schoolTokens(b)
	if len(aTokens) <= 1 || len(bTokens) <= 1 {
		return 1
	}
	return 2
}

func schoolTokens(value string) []string {
	var out []string
	for _, tok := range strings.Fields(Key(value)) {
		if !SchoolStopwords[tok] {
			out = append(out, tok)
		}
	}
	return out
}

// roleTitleSeparators are tried in order when compacting a scraped role title.
var roleTitleSeparators = []string{" | ", " — ", " – ", " - ", ","}

// CompactRoleTitle shortens a role title without inventing facts: whitespace
// is collapsed, trailing qualifier segments are dropped, and the result is
// capped at 60 characters.
func CompactRoleTitle(title string) string {
	text := strings.Join(strings.Fields(title), " ")
	for _, sep := range roleTitleSeparators {
		if idx := strings.Index(text, sep); idx >= 0 {
			text = strings.TrimSpace(text[:idx])
		}
	}
	return TruncateEllipsis(text, 60)
}

// TruncateEllipsis caps text at limit bytes, replacing the tail with "..."
// when truncation happens. The cut never splits a multi-byte character.
func TruncateEllipsis(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	if limit <= 3 {
		return CutAtRune(text, limit)
	}
	return strings.TrimRight(CutAtRune(text, limit-3), " ") + "..."
}

// CutAtRune truncates text to at most limit bytes, backing up to the nearest
// rune boundary so the result stays valid UTF-8.
func CutAtRune(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// highSignalLocations maps a display label to the normalized-key fragments
// that identify it. Only locations listed here produce location anchors;
// everywhere else a shared city is too weak a signal to lead a message with.
var highSignalLocations = []struct {
	Label     string
	Fragments []string
	Suffix    string
}{
	{Label: "NYC", Fragments: []string{"new york", "nyc"}, Suffix: " ny"},
}

// HighSignalLocation returns the configured label for a location string, or
// "" if the location is not in the high-signal set.
func HighSignalLocation(location string) string {
	key := Key(location)
	if key == "" {
		return ""
	}
	for _, loc := range highSignalLocations {
		for _, frag := range loc.Fragments {
			if strings.Contains(key, frag) {
				return loc.Label
			}
		}
		if loc.Suffix != "" && strings.HasSuffix(key, loc.Suffix) {
			return loc.Label
		}
	}
	return ""
}
