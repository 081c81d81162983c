package planning

import (
	"strings"

	"github.com/jonathan/outreach-drafter/internal/normalize"
	"github.com/jonathan/outreach-drafter/internal/types"
)

// BaseBanlist is the fixed set of outreach clichés banned from every message,
// merged with the sender's own do_not_say list per request.
var BaseBanlist = []string{
	"hope you are well",
	"impressive",
	"pick your brain",
	"leverage",
	"synergy",
	"reach out",
	"would love to learn more",
	"amazing",
	"incredible",
	"admire",
	"inspiring",
}

// Result carries every artifact the planner decided, both for prompt
// rendering and for the append-only trace record.
type Result struct {
	Sender           types.SenderProfile     `json:"sender_profile"`
	Target           types.TargetProfile     `json:"target_profile"`
	Hooks            []string                `json:"hooks_in"`
	Cycle            int                     `json:"cycle"`
	TargetTags       []string                `json:"target_tags"`
	TargetFacts      []types.Fact            `json:"target_facts"`
	AnchorCandidates []types.AnchorCandidate `json:"anchor_candidates"`
	AnchorPlan       types.AnchorPlan        `json:"anchor_plan"`
	BridgePlan       types.BridgePlan        `json:"bridge_plan"`
	RankedProofs     []RankedProofPoint      `json:"ranked_proof_points"`
	Banlist          []string                `json:"banlist"`
}

// Plan runs the full deterministic pipeline over one request: normalization,
// fact extraction, anchor building with cycle rotation, anchor-plan
// assignment and bridge-plan assembly. It never fails; missing data degrades
// to low-signal plans.
func Plan(req types.GenerateRequest) Result {
	sender := normalize.SenderProfile(req.MyProfile)
	target := normalize.TargetProfile(req.TargetProfile)
	hooks := normalize.Hooks(req.Hooks)

	tags := ClassifyTarget(target)
	facts := BuildTargetFacts(target)

	anchors := BuildAnchorCandidates(sender, target, hooks, tags)
	rotated := Rotate(anchors, req.Cycle, DefaultHookBatchSize)
	anchorPlan := SelectAnchorPlan(rotated)
	bridge := BuildBridgePlan(sender, target, tags, rotated, anchorPlan, facts)

	return Result{
		Sender:           sender,
		Target:           target,
		Hooks:            hooks,
		Cycle:            req.Cycle,
		TargetTags:       tags.Sorted(),
		TargetFacts:      facts,
		AnchorCandidates: rotated,
		AnchorPlan:       anchorPlan,
		BridgePlan:       bridge,
		RankedProofs:     RankProofPoints(sender.ProofPoints, tags, ""),
		Banlist:          BuildBanlist(sender),
	}
}

// BuildBanlist merges the fixed banlist with the sender's do_not_say phrases,
// dropping blanks.
func BuildBanlist(sender types.SenderProfile) []string {
	combined := make([]string, 0, len(BaseBanlist)+len(sender.DoNotSay))
	combined = append(combined, BaseBanlist...)
	combined = append(combined, sender.DoNotSay...)
	var out []string
	for _, phrase := range combined {
		if trimmed := strings.TrimSpace(phrase); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
