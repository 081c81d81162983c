package planning

import (
	"regexp"
	"sort"
)

// tagVocab maps each tag to the proof-point vocabulary that earns a match
// bonus, kept as a data table so vocabulary changes never touch scoring.
var tagVocab = map[Tag]struct {
	Pattern *regexp.Regexp
	Bonus   int
}{
	TagCV:        {regexp.MustCompile(`(?i)(yolo|opencv|vision|camera|radar|tracking)`), 4},
	TagAnalytics: {regexp.MustCompile(`(?i)(pipeline|data-quality|analytics|dashboard|pandas|sql|monitoring|accounting)`), 4},
	TagProduct:   {regexp.MustCompile(`(?i)(product|decision-support|dashboard)`), 2},
	TagCommunity: {regexp.MustCompile(`(?i)(outreach|partnership|club|speaker|events)`), 4},
	TagFinance:   {regexp.MustCompile(`(?i)(accounting|commercial|performance|forecast|pricing)`), 2},
}

var (
	outcomeVerbRe   = regexp.MustCompile(`(?i)\b(built|shipped|prototyped|automated|deployed|launched|owned|delivered)\b`)
	concreteStackRe = regexp.MustCompile(`(?i)\b(pipeline|data-quality|monitoring|dashboard|pandas|sql|opencv|yolo|camera|radar)\b`)
	goalStatementRe = regexp.MustCompile(`(?i)\b(targeting|seeking|internship|internships)\b`)
	fillerRe        = regexp.MustCompile(`(?i)\b(student|dual degree|based in|core stack)\b`)
)

// TagMatchScore sums the vocabulary bonuses a proof point earns against the
// recipient's detected tags.
func TagMatchScore(point string, tags TagSet) int {
	score := 0
	for tag, vocab := range tagVocab {
		if tags.Has(tag) && vocab.Pattern.MatchString(point) {
			score += vocab.Bonus
		}
	}
	return score
}

// StrengthScore prefers concrete, credible achievements over goal statements
// and background filler. Negative scores mark weak lines.
func StrengthScore(point string) int {
	score := 0
	if outcomeVerbRe.MatchString(point) {
		score += 6
	}
	if concreteStackRe.MatchString(point) {
		score += 3
	}
	if goalStatementRe.MatchString(point) {
		score -= 8
	}
	if fillerRe.MatchString(point) {
		score -= 4
	}
	return score
}

// RankedProofPoint pairs a proof point with its scores for trace output.
type RankedProofPoint struct {
	Point    string `json:"point"`
	TagScore int    `json:"tag_score"`
	Strength int    `json:"strength"`
}

// RankProofPoints orders the sender's proof points by tag match descending,
// strength descending, then length ascending; shorter points leave more of
// the character ceiling for the rest of the message.
func RankProofPoints(points []string, tags TagSet, anchorType string) []RankedProofPoint {
	ranked := make([]RankedProofPoint, 0, len(points))
	for _, point := range points {
		tagScore := TagMatchScore(point, tags)
		// A school anchor invites the community/outreach register even when
		// the recipient's tags did not detect it.
		if anchorType == "school" && !tags.Has(TagCommunity) {
			if vocab := tagVocab[TagCommunity]; vocab.Pattern.MatchString(point) {
				tagScore += vocab.Bonus
			}
		}
		ranked = append(ranked, RankedProofPoint{
			Point:    point,
			TagScore: tagScore,
			Strength: StrengthScore(point),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].TagScore != ranked[j].TagScore {
			return ranked[i].TagScore > ranked[j].TagScore
		}
		if ranked[i].Strength != ranked[j].Strength {
			return ranked[i].Strength > ranked[j].Strength
		}
		return len(ranked[i].Point) < len(ranked[j].Point)
	})
	return ranked
}

// SelectProofPoint picks the one proof point a variant carries, verbatim.
// Returns "" when the sender has none; the validator treats that field as
// vacuously satisfied.
func SelectProofPoint(points []string, tags TagSet, anchorType string) string {
	ranked := RankProofPoints(points, tags, anchorType)
	if len(ranked) == 0 {
		return ""
	}
	return ranked[0].Point
}
