package planning

import (
	"sort"

	"github.com/jonathan/outreach-drafter/internal/normalize"
	"github.com/jonathan/outreach-drafter/internal/types"
)

// Fixed fact scores. The first valid role+company pair is the strongest, most
// specific signal a message can open with.
const (
	scoreRoleCompany     = 12
	scoreCompany         = 10
	scoreTitleAsCompany  = 9
	scoreSchool          = 9
	scoreDomain          = 6
	scoreHeadline        = 4
	scoreLocation        = 3
	schoolOverlapBoost   = 2
	maxHeadlineFactChars = 60
)

// BuildTargetFacts ranks candidate facts about the recipient. Facts are
// deduplicated by normalized text keeping the highest-scoring instance, then
// sorted descending by score; ties keep extraction order.
func BuildTargetFacts(target types.TargetProfile) []types.Fact {
	var facts []types.Fact

	for _, exp := range target.TopExperiences {
		title := normalize.CompactRoleTitle(exp.Title)
		if title != "" && exp.Company != "" && !IsLikelyMetadataCompany(exp.Company) {
			facts = append(facts, types.Fact{
				Type:  types.FactRoleCompany,
				Text:  title + " at " + exp.Company,
				Score: scoreRoleCompany,
			})
			break
		}
	}

	for _, exp := range target.TopExperiences {
		title := normalize.CompactRoleTitle(exp.Title)
		switch {
		case exp.Company != "" && !IsLikelyMetadataCompany(exp.Company):
			facts = append(facts, types.Fact{Type: types.FactCompany, Text: exp.Company, Score: scoreCompany})
		case title != "" && !IsLikelyMetadataCompany(title):
			facts = append(facts, types.Fact{Type: types.FactCompany, Text: title, Score: scoreTitleAsCompany})
		}
	}

	if len(target.Education) > 0 && target.Education[0].School != "" {
		facts = append(facts, types.Fact{
			Type:  types.FactSchool,
			Text:  target.Education[0].School + " alum",
			Score: scoreSchool,
		})
	}

	// Domain facts come only from headline/about: a domain inferred from a job
	// title would duplicate the role_company fact it came from.
	tags := ClassifyHeadlineAbout(target)
	for _, entry := range domainFactPhrases {
		if tags.Has(entry.Tag) {
			facts = append(facts, types.Fact{Type: types.FactDomain, Text: entry.Phrase, Score: scoreDomain})
		}
	}

	if target.Headline != "" {
		text := normalize.TruncateEllipsis(target.Headline, maxHeadlineFactChars)
		if text != "" {
			facts = append(facts, types.Fact{Type: types.FactHeadline, Text: text, Score: scoreHeadline})
		}
	}

	if label := normalize.HighSignalLocation(target.Location); label != "" {
		facts = append(facts, types.Fact{Type: types.FactLocation, Text: label, Score: scoreLocation})
	}

	return dedupeFacts(facts)
}

// BoostSchoolFacts adds a fixed bonus to school facts the sender shares, then
// re-sorts. A shared school outranking a bare company fact is intentional.
func BoostSchoolFacts(sender types.SenderProfile, facts []types.Fact) []types.Fact {
	boosted := make([]types.Fact, 0, len(facts))
	for _, fact := range facts {
		score := fact.Score
		if fact.Type == types.FactSchool && len(sender.Schools) > 0 {
			school := trimAlumSuffix(fact.Text)
			for _, mySchool := range sender.Schools {
				required := normalize.SchoolMinOverlap(mySchool, school)
				if normalize.MatchEntity(mySchool, school, normalize.SchoolStopwords, required) {
					score += schoolOverlapBoost
					break
				}
			}
		}
		boosted = append(boosted, types.Fact{Type: fact.Type, Text: fact.Text, Score: score})
	}
	sort.SliceStable(boosted, func(i, j int) bool { return boosted[i].Score > boosted[j].Score })
	return boosted
}

func trimAlumSuffix(text string) string {
	const suffix = " alum"
	if len(text) > len(suffix) && text[len(text)-len(suffix):] == suffix {
		return text[:len(text)-len(suffix)]
	}
	return text
}

// dedupeFacts keeps the highest-scoring instance per normalized key,
// preserving extraction order so the final stable sort breaks ties the same
// way every run.
func dedupeFacts(facts []types.Fact) []types.Fact {
	byKey := make(map[string]types.Fact)
	var order []string
	for _, fact := range facts {
		key := normalize.Key(fact.Text)
		if key == "" {
			continue
		}
		existing, seen := byKey[key]
		if !seen {
			order = append(order, key)
		}
		if !seen || fact.Score > existing.Score {
			byKey[key] = fact
		}
	}
	deduped := make([]types.Fact, 0, len(order))
	for _, key := range order {
		deduped = append(deduped, byKey[key])
	}
	sort.SliceStable(deduped, func(i, j int) bool { return deduped[i].Score > deduped[j].Score })
	return deduped
}
