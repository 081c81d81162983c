package types

// FactType classifies a ranked fact about the recipient.
type FactType string

// Fact types in descending default strength.
const (
	FactRoleCompany FactType = "role_company"
	FactCompany     FactType = "company"
	FactSchool      FactType = "school"
	FactDomain      FactType = "domain"
	FactHeadline    FactType = "headline"
	FactLocation    FactType = "location"
)

// Fact is a ranked, typed statement about the recipient usable as the subject
// of a bridge sentence. Facts are deduplicated by normalized text.
type Fact struct {
	Type  FactType `json:"type"`
	Text  string   `json:"text"`
	Score int      `json:"score"`
}

// AnchorType classifies an anchor candidate so downstream logic can reason
// about "is this anchor generic" without string matching.
type AnchorType string

// Anchor types. Derived marks hooks computed from the target profile rather
// than supplied by the extension.
const (
	AnchorSchool   AnchorType = "school"
	AnchorCompany  AnchorType = "company"
	AnchorRole     AnchorType = "role"
	AnchorLocation AnchorType = "location"
	AnchorDomain   AnchorType = "domain"
	AnchorHook     AnchorType = "hook"
	AnchorDerived  AnchorType = "derived"
	AnchorOther    AnchorType = "other"
)

// AnchorCandidate is one scored shared-signal candidate for leading a variant.
type AnchorCandidate struct {
	Type     AnchorType `json:"type"`
	Text     string     `json:"text"`
	Score    int        `json:"score"`
	Evidence string     `json:"evidence,omitempty"`
}

// AnchorPlan maps each variant label to its chosen anchor. The first three
// variants receive distinct anchor types when the candidate pool allows it.
type AnchorPlan map[string]AnchorCandidate

// ClassifyAnchorType normalizes a raw anchor type string into the fixed set,
// falling back to AnchorOther.
func ClassifyAnchorType(raw AnchorType) AnchorType {
	switch raw {
	case AnchorSchool, AnchorCompany, AnchorRole, AnchorLocation, AnchorDomain, AnchorHook, AnchorDerived:
		return raw
	default:
		return AnchorOther
	}
}
