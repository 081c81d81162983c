// Package types provides type definitions for structured data used throughout the outreach-drafter system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Caps for list fields after normalization. Inputs beyond these are truncated,
// never rejected.
const (
	MaxSchools     = 3
	MaxExperiences = 3
	MaxProofPoints = 6
	MaxFocusAreas  = 6
	MaxDoNotSay    = 12

	MaxTargetExperiences = 2
	MaxTargetEducation   = 1

	MaxHooks = 3
)

// SenderProfile represents the sender's stored profile used for planning.
// It is constructed once per request and immutable afterwards; all list fields
// are trimmed, deduplicated and capped by normalize.SenderProfile.
type SenderProfile struct {
	Headline       string   `json:"headline"`
	Location       string   `json:"location"`
	Schools        []string `json:"schools"`
	Experiences    []string `json:"experiences"`
	ProofPoints    []string `json:"proof_points"`
	FocusAreas     []string `json:"focus_areas"`
	InternshipGoal string   `json:"internship_goal"`
	DoNotSay       []string `json:"do_not_say"`
	TonePreference string   `json:"tone_preference"`
}

// TargetExperience is one experience entry scraped from the recipient's profile.
type TargetExperience struct {
	Title   string `json:"title"`
	Company string `json:"company"`
}

// TargetEducation is one education entry scraped from the recipient's profile.
type TargetEducation struct {
	School string `json:"school"`
}

// TargetProfile represents the scraped recipient profile. It arrives from the
// scraping collaborator and is treated as untrusted, possibly-empty input.
type TargetProfile struct {
	Name           string             `json:"name"`
	Headline       string             `json:"headline"`
	Location       string             `json:"location,omitempty"`
	About          string             `json:"about,omitempty"`
	TopExperiences []TargetExperience `json:"top_experiences"`
	Education      []TargetEducation  `json:"education"`
}
