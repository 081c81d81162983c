package normalize

import (
	"strings"

	"github.com/jonathan/outreach-drafter/internal/types"
)

// SenderProfile canonicalizes a raw sender profile: every list field is
// filtered to non-empty trimmed strings, deduplicated preserving first
// occurrence, and truncated to its cap. Scalar fields are trimmed. Absence of
// data degrades to empty containers; this never fails.
func SenderProfile(raw types.SenderProfile) types.SenderProfile {
	tone := strings.TrimSpace(raw.TonePreference)
	if tone == "" {
		tone = "warm"
	}
	return types.SenderProfile{
		Headline:       strings.TrimSpace(raw.Headline),
		Location:       strings.TrimSpace(raw.Location),
		Schools:        CleanList(raw.Schools, types.MaxSchools),
		Experiences:    CleanList(raw.Experiences, types.MaxExperiences),
		ProofPoints:    CleanList(raw.ProofPoints, types.MaxProofPoints),
		FocusAreas:     CleanList(raw.FocusAreas, types.MaxFocusAreas),
		InternshipGoal: strings.TrimSpace(raw.InternshipGoal),
		DoNotSay:       CleanList(raw.DoNotSay, types.MaxDoNotSay),
		TonePreference: tone,
	}
}

// TargetProfile canonicalizes a raw scraped recipient profile. Entries whose
// fields are all empty after trimming are dropped; list fields are capped.
func TargetProfile(raw types.TargetProfile) types.TargetProfile {
	out := types.TargetProfile{
		Name:     strings.TrimSpace(raw.Name),
		Headline: strings.TrimSpace(raw.Headline),
		Location: strings.TrimSpace(raw.Location),
		About:    strings.TrimSpace(raw.About),
	}
	for _, exp := range raw.TopExperiences {
		title := strings.TrimSpace(exp.Title)
		company := strings.TrimSpace(exp.Company)
		if title == "" && company == "" {
			continue
		}
		out.TopExperiences = append(out.TopExperiences, types.TargetExperience{Title: title, Company: company})
		if len(out.TopExperiences) == types.MaxTargetExperiences {
			break
		}
	}
	for _, edu := range raw.Education {
		school := strings.TrimSpace(edu.School)
		if school == "" {
			continue
		}
		out.Education = append(out.Education, types.TargetEducation{School: school})
		if len(out.Education) == types.MaxTargetEducation {
			break
		}
	}
	return out
}

// Hooks trims, deduplicates and caps externally supplied hooks.
func Hooks(raw []string) []string {
	return CleanList(raw, types.MaxHooks)
}

// CleanList filters items to non-empty trimmed strings, deduplicates by
// normalized key preserving first occurrence, and truncates to max.
func CleanList(items []string, max int) []string {
	set := NewOrderedSet()
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		set.Add(trimmed)
		if set.Len() == max {
			break
		}
	}
	return set.Items()
}

// TargetText concatenates every textual field of a target profile for
// tokenization and tag classification.
func TargetText(target types.TargetProfile) string {
	parts := []string{target.Name, target.Headline, target.Location, target.About}
	for _, exp := range target.TopExperiences {
		parts = append(parts, exp.Title, exp.Company)
	}
	for _, edu := range target.Education {
		parts = append(parts, edu.School)
	}
	var kept []string
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, " ")
}

// SenderText concatenates the sender fields used for keyword-overlap hooks.
func SenderText(sender types.SenderProfile) string {
	parts := []string{sender.Headline, sender.Location, sender.InternshipGoal}
	parts = append(parts, sender.Schools...)
	parts = append(parts, sender.Experiences...)
	parts = append(parts, sender.FocusAreas...)
	parts = append(parts, sender.ProofPoints...)
	var kept []string
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, " ")
}
