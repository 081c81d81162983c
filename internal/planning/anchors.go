package planning

import (
	"sort"
	"strings"

	"github.com/jonathan/outreach-drafter/internal/normalize"
	"github.com/jonathan/outreach-drafter/internal/types"
)

// Anchor scoring constants. A shared school is the strongest rapport signal a
// cold note can open with; everything else steps down from there.
const (
	anchorSchoolBase      = 12
	anchorSchoolLocBoost  = 4
	anchorSharedCompany   = 9
	anchorRoleWithCompany = 6
	anchorRoleOnly        = 5
	anchorSharedLocation  = 6
	anchorHookBase        = 4
	anchorDerivedBase     = 3

	// GenericSignalThreshold is the score below which a domain or location
	// anchor is not trusted to anchor a whole message.
	GenericSignalThreshold = 7

	// DefaultHookBatchSize is how many hook candidates one regeneration cycle
	// surfaces; it matches the number of variants.
	DefaultHookBatchSize = 3

	// maxPlanCandidates bounds how deep anchor-plan assignment looks into the
	// ranked candidate list.
	maxPlanCandidates = 8
)

// domainAnchors maps a tag shared by sender and recipient to its anchor
// phrase and score.
var domainAnchors = []struct {
	Tag   Tag
	Text  string
	Score int
}{
	{TagCV, "Shared focus on computer vision", 6},
	{TagAnalytics, "Shared focus on analytics/data", 6},
	{TagProduct, "Shared product/analytics focus", 5},
}

// BuildAnchorCandidates assembles and scores every shared-signal candidate:
// shared schools, shared companies, recipient roles, shared domain tags,
// shared high-signal locations, externally supplied hooks, and keyword-overlap
// hooks. The result is deduplicated by normalized text and sorted descending
// by score.
func BuildAnchorCandidates(sender types.SenderProfile, target types.TargetProfile, hooks []string, targetTags TagSet) []types.AnchorCandidate {
	var anchors []types.AnchorCandidate

	senderLoc := normalize.HighSignalLocation(sender.Location)
	targetLoc := normalize.HighSignalLocation(target.Location)
	sharedLoc := senderLoc != "" && senderLoc == targetLoc

	for _, mySchool := range sender.Schools {
		for _, edu := range target.Education {
			if !normalize.MatchEntity(mySchool, edu.School, normalize.SchoolStopwords, 2) {
				continue
			}
			score := anchorSchoolBase
			text := edu.School + " alum"
			if sharedLoc {
				score += anchorSchoolLocBoost
				text = edu.School + " alum in " + targetLoc
			}
			anchors = append(anchors, types.AnchorCandidate{
				Type:     types.AnchorSchool,
				Text:     text,
				Score:    score,
				Evidence: mySchool + " + " + edu.School,
			})
		}
	}

	for _, exp := range target.TopExperiences {
		company := exp.Company
		title := normalize.CompactRoleTitle(exp.Title)
		if company != "" && !IsLikelyMetadataCompany(company) {
			for _, myExp := range sender.Experiences {
				if normalize.MatchEntity(myExp, company, normalize.CompanyStopwords, 1) {
					anchors = append(anchors, types.AnchorCandidate{
						Type:     types.AnchorCompany,
						Text:     "Both have experience at " + company,
						Score:    anchorSharedCompany,
						Evidence: myExp + " + " + company,
					})
				}
			}
		}
		switch {
		case company != "" && title != "" && !IsLikelyMetadataCompany(company):
			anchors = append(anchors, types.AnchorCandidate{
				Type:     types.AnchorRole,
				Text:     title + " at " + company,
				Score:    anchorRoleWithCompany,
				Evidence: title + " + " + company,
			})
		case title != "":
			anchors = append(anchors, types.AnchorCandidate{
				Type:     types.AnchorRole,
				Text:     title,
				Score:    anchorRoleOnly,
				Evidence: title,
			})
		}
	}

	if sharedLoc {
		anchors = append(anchors, types.AnchorCandidate{
			Type:     types.AnchorLocation,
			Text:     "Both based in " + targetLoc,
			Score:    anchorSharedLocation,
			Evidence: sender.Location + " + " + target.Location,
		})
	}

	senderTags := ClassifyText(normalize.SenderText(sender))
	for _, entry := range domainAnchors {
		if targetTags.Has(entry.Tag) && senderTags.Has(entry.Tag) {
			anchors = append(anchors, types.AnchorCandidate{
				Type:     types.AnchorDomain,
				Text:     entry.Text,
				Score:    entry.Score,
				Evidence: "shared tag " + string(entry.Tag),
			})
		}
	}

	for _, hook := range hooks {
		anchors = append(anchors, types.AnchorCandidate{
			Type:     types.AnchorHook,
			Text:     hook,
			Score:    anchorHookBase + ScoreHook(hook, target),
			Evidence: "extension hook",
		})
	}

	for _, keyword := range OverlapKeywords(sender, target) {
		anchors = append(anchors, types.AnchorCandidate{
			Type:     types.AnchorDerived,
			Text:     keyword,
			Score:    anchorDerivedBase + ScoreHook(keyword, target),
			Evidence: "keyword overlap",
		})
	}

	return dedupeAnchors(anchors)
}

// ScoreHook rates how specific a hook is to the recipient: length, token
// overlap with the profile text, and verbatim mentions of their company,
// title, school or location.
func ScoreHook(hook string, target types.TargetProfile) int {
	if hook == "" {
		return 0
	}
	score := 0
	hookLower := strings.ToLower(hook)
	targetText := strings.ToLower(normalize.TargetText(target))

	targetTokens := make(map[string]bool)
	for _, tok := range normalize.Tokenize(targetText) {
		targetTokens[tok] = true
	}
	overlap := 0
	seen := make(map[string]bool)
	for _, tok := range normalize.Tokenize(hook) {
		if targetTokens[tok] && !seen[tok] {
			overlap++
			seen[tok] = true
		}
	}
	score += min(len(hook), 80) / 20
	score += min(overlap, 3)

	for _, exp := range target.TopExperiences {
		if exp.Company != "" && strings.Contains(hookLower, strings.ToLower(exp.Company)) {
			score += 3
		}
		if exp.Title != "" && strings.Contains(hookLower, strings.ToLower(exp.Title)) {
			score += 2
		}
	}
	for _, edu := range target.Education {
		if edu.School != "" && strings.Contains(hookLower, strings.ToLower(edu.School)) {
			score += 3
		}
	}
	if target.Location != "" && strings.Contains(hookLower, strings.ToLower(target.Location)) {
		score++
	}
	return score
}

// OverlapKeywords tokenizes both profiles' concatenated text and returns the
// intersection in the recipient profile's token order: lowercased, tokens of
// at least MinTokenLen characters, stopwords removed.
func OverlapKeywords(sender types.SenderProfile, target types.TargetProfile) []string {
	senderTokens := make(map[string]bool)
	for _, tok := range normalize.Tokenize(normalize.SenderText(sender)) {
		if !normalize.KeywordStopwords[tok] {
			senderTokens[tok] = true
		}
	}
	shared := normalize.NewOrderedSet()
	for _, tok := range normalize.Tokenize(normalize.TargetText(target)) {
		if senderTokens[tok] && !normalize.KeywordStopwords[tok] {
			shared.Add(tok)
		}
	}
	return shared.Items()
}

// SelectAnchorPlan assigns one anchor per variant, greedily taking distinct
// anchor types in score order. When the pool has fewer distinct types than
// variants, lower-ranked variants reuse the best candidate rather than going
// hookless.
func SelectAnchorPlan(anchors []types.AnchorCandidate) types.AnchorPlan {
	plan := make(types.AnchorPlan)
	if len(anchors) == 0 {
		return plan
	}
	if len(anchors) > maxPlanCandidates {
		anchors = anchors[:maxPlanCandidates]
	}
	usedTypes := make(map[types.AnchorType]bool)
	for _, variant := range types.VariantLabels() {
		assigned := false
		for _, anchor := range anchors {
			if !usedTypes[anchor.Type] {
				plan[variant] = anchor
				usedTypes[anchor.Type] = true
				assigned = true
				break
			}
		}
		if !assigned {
			plan[variant] = anchors[0]
		}
	}
	return plan
}

// Rotate returns the candidate list rotated by a deterministic offset derived
// from the regeneration cycle: offset = (cycle * batchSize) mod len. The same
// cycle always yields the same order, and successive cycles surface different
// hook subsets without re-scoring.
func Rotate(candidates []types.AnchorCandidate, cycle, batchSize int) []types.AnchorCandidate {
	n := len(candidates)
	if n == 0 || cycle <= 0 || batchSize <= 0 {
		return candidates
	}
	// Reduce both factors first: cycle is client-supplied and may be large
	// enough to overflow the product.
	offset := ((cycle % n) * (batchSize % n)) % n
	if offset <= 0 {
		return candidates
	}
	rotated := make([]types.AnchorCandidate, 0, n)
	rotated = append(rotated, candidates[offset:]...)
	rotated = append(rotated, candidates[:offset]...)
	return rotated
}

// dedupeAnchors keeps the highest-scoring candidate per normalized text key,
// preserving build order for stable tie-breaks, then sorts descending.
func dedupeAnchors(anchors []types.AnchorCandidate) []types.AnchorCandidate {
	byKey := make(map[string]types.AnchorCandidate)
	var order []string
	for _, anchor := range anchors {
		key := normalize.Key(anchor.Text)
		if key == "" {
			continue
		}
		existing, seen := byKey[key]
		if !seen {
			order = append(order, key)
		}
		if !seen || anchor.Score > existing.Score {
			byKey[key] = anchor
		}
	}
	deduped := make([]types.AnchorCandidate, 0, len(order))
	for _, key := range order {
		deduped = append(deduped, byKey[key])
	}
	sort.SliceStable(deduped, func(i, j int) bool { return deduped[i].Score > deduped[j].Score })
	return deduped
}
