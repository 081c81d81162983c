package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrengthScore(t *testing.T) {
	tests := []struct {
		name     string
		point    string
		expected int
	}{
		{name: "outcome verb and stack", point: "Built a pandas pipeline", expected: 9},
		{name: "goal statement", point: "Seeking data internships", expected: -8},
		{name: "filler", point: "Dual degree student based in NYC", expected: -4},
		{name: "neutral", point: "Worked on a team project", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StrengthScore(tt.point))
		})
	}
}

func TestTagMatchScore(t *testing.T) {
	tags := TagSet{TagAnalytics: true}
	assert.Equal(t, 4, TagMatchScore("Shipped a dashboard for churn", tags))
	assert.Equal(t, 0, TagMatchScore("Organized a bake sale", tags))
	// Point matching a tag the recipient lacks earns nothing.
	assert.Equal(t, 0, TagMatchScore("Built a YOLO tracker", tags))
}

func TestRankProofPoints_WeakLinesSink(t *testing.T) {
	points := []string{
		"Seeking analytics internships for summer",
		"Built a pandas data-quality pipeline",
		"Student based in NYC",
	}
	ranked := RankProofPoints(points, TagSet{TagAnalytics: true}, "")
	require.Len(t, ranked, 3)

	assert.Equal(t, "Built a pandas data-quality pipeline", ranked[0].Point)
	// The goal statement never wins over a concrete achievement.
	assert.NotEqual(t, "Seeking analytics internships for summer", ranked[0].Point)
}

func TestRankProofPoints_TieBreaksOnLength(t *testing.T) {
	points := []string{
		"Built a dashboard for the growth team with weekly reviews",
		"Built a dashboard",
	}
	ranked := RankProofPoints(points, TagSet{TagAnalytics: true}, "")
	assert.Equal(t, "Built a dashboard", ranked[0].Point)
}

func TestRankProofPoints_SchoolAnchorCommunityBonus(t *testing.T) {
	points := []string{
		"Built a monitoring pipeline",
		"Ran outreach events for the dashboard club",
	}
	tags := TagSet{TagAnalytics: true}

	plain := RankProofPoints(points, tags, "")
	assert.Equal(t, "Built a monitoring pipeline", plain[0].Point)

	// A school anchor surfaces the community register.
	school := RankProofPoints(points, tags, "school")
	assert.Equal(t, "Ran outreach events for the dashboard club", school[0].Point)
}

func TestSelectProofPoint_Empty(t *testing.T) {
	assert.Equal(t, "", SelectProofPoint(nil, TagSet{}, ""))
}
