// Package planning implements the deterministic message-planning pipeline:
// fact extraction, anchor building, proof-point selection and bridge-plan
// assembly. Every stage is a pure function of its inputs.
package planning

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/outreach-drafter/internal/normalize"
	"github.com/jonathan/outreach-drafter/internal/types"
)

// Tag labels a recipient's domain as detected by keyword classification.
type Tag string

// Recognized domain tags.
const (
	TagAnalytics Tag = "analytics"
	TagProduct   Tag = "product"
	TagCV        Tag = "cv"
	TagCommunity Tag = "community"
	TagFinance   Tag = "finance"
)

// tagRule binds a tag to its detection pattern. The table is data-driven so
// domain vocabulary can be extended without touching scoring logic.
type tagRule struct {
	Tag     Tag
	Pattern *regexp.Regexp
}

var tagRules = []tagRule{
	{TagAnalytics, regexp.MustCompile(`(?i)(data|analytics|ml|machine learning|sql|python|bi|business intelligence|stats|statistic|quant|ai)`)},
	{TagProduct, regexp.MustCompile(`(?i)(product|pm|product management|growth|roadmap)`)},
	{TagCV, regexp.MustCompile(`(?i)(computer vision|vision|opencv|yolo|camera|radar|perception|imaging)`)},
	{TagCommunity, regexp.MustCompile(`(?i)(community|partnership|outreach|events|club|association)`)},
	{TagFinance, regexp.MustCompile(`(?i)(finance|trading|investment|bank|equity)`)},
}

// domainFactPhrases maps a tag to the phrase emitted as a domain fact, in
// fixed emission order.
var domainFactPhrases = []struct {
	Tag    Tag
	Phrase string
}{
	{TagCV, "computer vision"},
	{TagAnalytics, "analytics"},
	{TagProduct, "product"},
	{TagFinance, "finance"},
	{TagCommunity, "community"},
}

// TagSet is the set of tags detected for a profile.
type TagSet map[Tag]bool

// Has reports whether the tag was detected.
func (t TagSet) Has(tag Tag) bool { return t[tag] }

// Sorted returns the tags in lexical order for stable logging.
func (t TagSet) Sorted() []string {
	out := make([]string, 0, len(t))
	for tag := range t {
		out = append(out, string(tag))
	}
	sort.Strings(out)
	return out
}

// ClassifyText matches the tag table against free text.
func ClassifyText(text string) TagSet {
	tags := make(TagSet)
	for _, rule := range tagRules {
		if rule.Pattern.MatchString(text) {
			tags[rule.Tag] = true
		}
	}
	return tags
}

// ClassifyTarget tags a recipient from the full concatenated profile text.
func ClassifyTarget(target types.TargetProfile) TagSet {
	return ClassifyText(normalize.TargetText(target))
}

// ClassifyHeadlineAbout tags a recipient from headline and about only. Domain
// facts use this narrower scope so a job title that already produced a
// role_company fact cannot also spawn a domain fact.
func ClassifyHeadlineAbout(target types.TargetProfile) TagSet {
	return ClassifyText(target.Headline + " " + target.About)
}

// headlineKeywordPatterns is the ordered pattern list for extracting a
// specificity token from a headline, most specific first.
var headlineKeywordPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)computer vision`),
	regexp.MustCompile(`(?i)machine learning`),
	regexp.MustCompile(`(?i)vision`),
	regexp.MustCompile(`(?i)opencv`),
	regexp.MustCompile(`(?i)yolo`),
	regexp.MustCompile(`(?i)product`),
	regexp.MustCompile(`(?i)growth`),
	regexp.MustCompile(`(?i)analytics`),
	regexp.MustCompile(`(?i)data`),
	regexp.MustCompile(`(?i)ml`),
	regexp.MustCompile(`(?i)sql`),
	regexp.MustCompile(`(?i)python`),
	regexp.MustCompile(`(?i)ai`),
	regexp.MustCompile(`(?i)finance`),
	regexp.MustCompile(`(?i)trading`),
	regexp.MustCompile(`(?i)investment`),
	regexp.MustCompile(`(?i)community`),
	regexp.MustCompile(`(?i)outreach`),
	regexp.MustCompile(`(?i)partnership`),
}

// ExtractHeadlineKeyword returns the first domain keyword found in a
// headline, preserving the headline's own casing. Empty when nothing matches.
func ExtractHeadlineKeyword(headline string) string {
	if headline == "" {
		return ""
	}
	for _, pattern := range headlineKeywordPatterns {
		if loc := pattern.FindStringIndex(headline); loc != nil {
			return headline[loc[0]:loc[1]]
		}
	}
	return ""
}

// roleKeywordStopwords are title words too generic to serve as a specificity
// token on their own.
var roleKeywordStopwords = map[string]bool{
	"data": true, "senior": true, "lead": true, "principal": true, "staff": true,
	"junior": true, "global": true, "intern": true, "head": true,
}

var roleWordCleanRe = regexp.MustCompile(`[^A-Za-z0-9]+`)

// ExtractRoleKeyword pulls the most distinctive word out of the recipient's
// first role title: the first non-stopword of at least MinTokenLen
// characters, else the last usable word.
func ExtractRoleKeyword(target types.TargetProfile) string {
	if len(target.TopExperiences) == 0 {
		return ""
	}
	title := target.TopExperiences[0].Title
	if title == "" {
		return ""
	}
	var candidates []string
	for _, word := range strings.Fields(title) {
		cleaned := roleWordCleanRe.ReplaceAllString(word, "")
		if len(cleaned) >= normalize.MinTokenLen {
			candidates = append(candidates, cleaned)
		}
	}
	for _, cand := range candidates {
		if !roleKeywordStopwords[strings.ToLower(cand)] {
			return cand
		}
	}
	if len(candidates) > 0 {
		return candidates[len(candidates)-1]
	}
	return ""
}

// metadataCompanyRe matches scraper junk that shows up in the company slot of
// scraped experience entries (follower counts, employment-type suffixes,
// interpunct-joined metadata).
var metadataCompanyRe = regexp.MustCompile(`(?i)(\d[\d,.]*\s*(followers|connections)|full-time|part-time|self-employed|contract\b|internship\b|·)`)

// IsLikelyMetadataCompany reports whether a scraped company string is page
// metadata rather than an employer name.
func IsLikelyMetadataCompany(company string) bool {
	trimmed := strings.TrimSpace(company)
	if trimmed == "" {
		return true
	}
	if len(trimmed) > 80 {
		return true
	}
	return metadataCompanyRe.MatchString(trimmed)
}
