package planning

import (
	"strings"

	"github.com/jonathan/outreach-drafter/internal/normalize"
	"github.com/jonathan/outreach-drafter/internal/types"
)

const (
	maxHookChars   = 70
	maxIntentChars = 80
)

// BuildBridgePlan assembles the final per-variant plan. This stage performs
// no scoring: it merges the ranked facts, the anchor plan and the proof-point
// selection, applies the generic-anchor override, and fills in the fixed CTA
// and intent framing.
func BuildBridgePlan(
	sender types.SenderProfile,
	target types.TargetProfile,
	targetTags TagSet,
	anchors []types.AnchorCandidate,
	anchorPlan types.AnchorPlan,
	targetFacts []types.Fact,
) types.BridgePlan {
	boosted := BoostSchoolFacts(sender, targetFacts)

	var highSignalFact *types.Fact
	for i := range boosted {
		switch boosted[i].Type {
		case types.FactRoleCompany, types.FactCompany, types.FactSchool:
			highSignalFact = &boosted[i]
		}
		if highSignalFact != nil {
			break
		}
	}

	// Each variant gets a distinct target fact while the pool lasts.
	selectedFacts := make(map[string]types.Fact)
	usedFactKeys := make(map[string]bool)
	for _, variant := range types.VariantLabels() {
		var chosen *types.Fact
		for i := range boosted {
			key := normalize.Key(boosted[i].Text)
			if key != "" && !usedFactKeys[key] {
				chosen = &boosted[i]
				usedFactKeys[key] = true
				break
			}
		}
		if chosen == nil && len(boosted) > 0 {
			chosen = &boosted[0]
		}
		if chosen == nil {
			selectedFacts[variant] = types.Fact{}
		} else {
			selectedFacts[variant] = *chosen
		}
	}

	plan := make(types.BridgePlan)
	usedHookKeys := make(map[string]bool)
	for _, variant := range types.VariantLabels() {
		anchor := anchorPlan[variant]
		anchorType := types.ClassifyAnchorType(anchor.Type)
		targetFact := selectedFacts[variant].Text
		hookText := anchor.Text

		// Generic anchors are not trusted to anchor a whole message.
		if (anchorType == types.AnchorDomain || anchorType == types.AnchorLocation) &&
			anchor.Score < GenericSignalThreshold && highSignalFact != nil {
			hookText = targetFact
			if hookText == "" {
				hookText = highSignalFact.Text
			}
		}
		hookText = compactHookText(hookText, targetFact)
		hookText = chooseUniqueHookText(hookText, targetFact, anchors, boosted, usedHookKeys)
		if key := normalize.Key(hookText); key != "" {
			usedHookKeys[key] = true
		}

		proofPoint := SelectProofPoint(sender.ProofPoints, targetTags, string(anchorType))

		plan[variant] = types.BridgePlanEntry{
			Variant:       variant,
			TargetFact:    targetFact,
			HookText:      hookText,
			ProofPoint:    proofPoint,
			Intent:        BuildIntent(targetTags, targetFact, target),
			CTA:           types.CTAForVariant(variant),
			RequiredToken: SelectRequiredToken(sender, target, targetFact),
		}
	}
	return plan
}

// SelectRequiredToken computes the optional specificity token: the
// recipient's current company, else a shared school the sender also attended,
// else a keyword from the recipient's headline. A token that would exactly
// duplicate the variant's target fact is replaced by a distinct role keyword
// from the recipient's title, or omitted.
func SelectRequiredToken(sender types.SenderProfile, target types.TargetProfile, targetFact string) string {
	token := baseRequiredToken(sender, target)
	if token == "" {
		return ""
	}
	if normalize.Key(token) != normalize.Key(targetFact) {
		return token
	}
	role := ExtractRoleKeyword(target)
	if role != "" && normalize.Key(role) != normalize.Key(targetFact) {
		return role
	}
	return ""
}

func baseRequiredToken(sender types.SenderProfile, target types.TargetProfile) string {
	for _, exp := range target.TopExperiences {
		if exp.Company != "" && !IsLikelyMetadataCompany(exp.Company) {
			return exp.Company
		}
	}
	if len(target.Education) > 0 {
		school := target.Education[0].School
		if school != "" {
			for _, mySchool := range sender.Schools {
				required := normalize.SchoolMinOverlap(mySchool, school)
				if normalize.MatchEntity(mySchool, school, normalize.SchoolStopwords, required) {
					return school
				}
			}
		}
	}
	return ExtractHeadlineKeyword(target.Headline)
}

// BuildIntent produces the short fixed label describing the variant's
// communicative goal, used only for prompt framing.
func BuildIntent(tags TagSet, targetFact string, target types.TargetProfile) string {
	subject := intentSubject(targetFact, target)
	var intent string
	switch {
	case tags.Has(TagCV):
		intent = "Curious what you're building in vision at " + subject
	case tags.Has(TagFinance):
		intent = "Curious what you focus on in " + subject
	case tags.Has(TagProduct):
		intent = "Curious how you think about product/growth at " + subject
	case tags.Has(TagAnalytics):
		intent = "Curious how you apply analytics at " + subject
	case tags.Has(TagCommunity):
		intent = "Curious about your outreach/community work at " + subject
	default:
		intent = "Curious about your path at " + subject
	}
	return normalize.TruncateEllipsis(intent, maxIntentChars)
}

func intentSubject(targetFact string, target types.TargetProfile) string {
	for _, exp := range target.TopExperiences {
		if exp.Company != "" && !IsLikelyMetadataCompany(exp.Company) {
			return exp.Company
		}
	}
	if targetFact != "" && !isDomainFactText(targetFact) {
		if company := companyFromFact(targetFact); company != "" {
			return company
		}
	}
	if target.Headline != "" && len(target.Headline) <= maxHeadlineFactChars {
		return target.Headline
	}
	return "your work"
}

// companyFromFact recovers the entity a fact refers to from its rendered text.
func companyFromFact(targetFact string) string {
	if idx := strings.Index(targetFact, " at "); idx >= 0 {
		return strings.TrimSpace(targetFact[idx+len(" at "):])
	}
	if trimmed := trimAlumSuffix(targetFact); trimmed != targetFact {
		return strings.TrimSpace(trimmed)
	}
	return targetFact
}

// isDomainFactText reports whether text is one of the fixed domain-fact
// phrases (or a high-signal location label) rather than an entity.
func isDomainFactText(text string) bool {
	key := normalize.Key(text)
	if key == "" {
		return false
	}
	if key == "nyc" {
		return true
	}
	for _, entry := range domainFactPhrases {
		if key == normalize.Key(entry.Phrase) {
			return true
		}
	}
	return false
}

// compactHookText collapses whitespace and caps the hook at maxHookChars,
// preferring the target fact over a truncated hook.
func compactHookText(hookText, targetFact string) string {
	text := strings.Join(strings.Fields(hookText), " ")
	if text == "" {
		return targetFact
	}
	if len(text) <= maxHookChars {
		return text
	}
	if targetFact != "" && len(targetFact) <= maxHookChars {
		return targetFact
	}
	return normalize.TruncateEllipsis(text, maxHookChars)
}

// chooseUniqueHookText returns the first usable hook not already claimed by
// another variant, falling back through the target fact, remaining anchors
// and facts before settling for a duplicate.
func chooseUniqueHookText(primary, targetFact string, anchors []types.AnchorCandidate, facts []types.Fact, usedKeys map[string]bool) string {
	candidates := []string{primary, targetFact}
	for _, anchor := range anchors {
		candidates = append(candidates, anchor.Text)
	}
	for _, fact := range facts {
		candidates = append(candidates, fact.Text)
	}
	for _, candidate := range candidates {
		text := strings.Join(strings.Fields(candidate), " ")
		if text == "" {
			continue
		}
		key := normalize.Key(text)
		if key == "" || usedKeys[key] {
			continue
		}
		if IsLikelyMetadataCompany(text) {
			continue
		}
		return text
	}
	fallback := strings.Join(strings.Fields(primary), " ")
	if fallback == "" {
		fallback = strings.Join(strings.Fields(targetFact), " ")
	}
	if fallback != "" && !IsLikelyMetadataCompany(fallback) {
		return fallback
	}
	return "your work"
}
