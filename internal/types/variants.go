package types

// Variant is one tone-labeled candidate message produced per request.
type Variant struct {
	Label     string `json:"label"`
	Text      string `json:"text"`
	CharCount int    `json:"char_count"`
}

// ValidationResult records the lexical check outcome for one variant.
type ValidationResult struct {
	Variant    string   `json:"variant"`
	Passed     bool     `json:"passed"`
	Violations []string `json:"violations"`
}

// GenerateRequest is the collaborator-facing request schema. Raw profiles are
// normalized at the planning boundary; no downstream component re-checks
// field presence.
type GenerateRequest struct {
	MyProfile     SenderProfile `json:"my_profile"`
	TargetProfile TargetProfile `json:"target_profile"`
	Hooks         []string      `json:"hooks"`
	// Cycle is a client-held counter for explicit regeneration requests. It
	// deterministically rotates which hook candidates are surfaced.
	Cycle int `json:"cycle,omitempty"`
}

// GenerateResponse is the collaborator-facing response schema.
type GenerateResponse struct {
	Variants    []Variant          `json:"variants"`
	Validations []ValidationResult `json:"validations,omitempty"`
}
