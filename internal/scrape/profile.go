package scrape

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/outreach-drafter/internal/types"
)

// profileSelectors map common public-profile markup to profile fields.
// Pages vary, so each field tries several selectors in order and keeps
// the first non-empty match.
var (
	nameSelectors = []string{
		"h1.top-card-layout__title",
		"h1.text-heading-xlarge",
		"h1",
	}
	headlineSelectors = []string{
		"h2.top-card-layout__headline",
		"div.text-body-medium.break-words",
		"h2",
	}
	locationSelectors = []string{
		"div.top-card__subline-item",
		"span.top-card__subline-item",
		"span.text-body-small.inline.t-black--light.break-words",
	}
	aboutSelectors = []string{
		"section.summary div.core-section-container__content",
		"section[data-section='summary'] p",
		"div.about__text",
	}
	experienceItemSelectors = []string{
		"section.experience li.experience-item",
		"section[data-section='experience'] li",
		"li.profile-section-card",
	}
)

// ParseProfile extracts a target profile from public-profile HTML.
// Missing fields stay empty. The caller normalizes the result before
// planning.
func ParseProfile(html string) (types.TargetProfile, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return types.TargetProfile{}, &Error{Message: "failed to parse profile HTML", Cause: err}
	}

	profile := types.TargetProfile{
		Name:     firstText(doc, nameSelectors),
		Headline: firstText(doc, headlineSelectors),
		Location: firstText(doc, locationSelectors),
		About:    firstText(doc, aboutSelectors),
	}

	// og: meta tags survive markup churn better than class names.
	if profile.Name == "" {
		if title, ok := metaContent(doc, "og:title"); ok {
			profile.Name = cleanMetaTitle(title)
		}
	}
	if profile.Headline == "" {
		if desc, ok := metaContent(doc, "og:description"); ok {
			profile.Headline = firstSentence(desc)
		}
	}

	profile.TopExperiences = parseExperiences(doc)
	profile.Education = parseEducation(doc)

	return profile, nil
}

// FetchProfile retrieves and parses a public profile page, using the
// headless browser fallback for client-rendered pages.
func FetchProfile(ctx context.Context, urlStr string, opts *Options, verbose bool) (types.TargetProfile, error) {
	result, err := FetchRendered(ctx, urlStr, opts, verbose)
	if err != nil {
		return types.TargetProfile{}, err
	}
	return ParseProfile(result.HTML)
}

func parseExperiences(doc *goquery.Document) []types.TargetExperience {
	var out []types.TargetExperience
	for _, sel := range experienceItemSelectors {
		doc.Find(sel).Each(func(_ int, item *goquery.Selection) {
			title := trimmedText(item.Find("h3").First())
			if title == "" {
				title = trimmedText(item.Find("span.experience-item__title").First())
			}
			company := trimmedText(item.Find("h4").First())
			if company == "" {
				company = trimmedText(item.Find("span.experience-item__subtitle").First())
			}
			if title == "" && company == "" {
				return
			}
			out = append(out, types.TargetExperience{
				Title:   title,
				Company: company,
			})
		})
		if len(out) > 0 {
			break
		}
	}
	return out
}

func parseEducation(doc *goquery.Document) []types.TargetEducation {
	var out []types.TargetEducation
	selectors := []string{
		"section.education li",
		"section[data-section='educationsDetails'] li",
	}
	for _, sel := range selectors {
		doc.Find(sel).Each(func(_ int, item *goquery.Selection) {
			school := trimmedText(item.Find("h3").First())
			if school == "" {
				school = trimmedText(item.Find("a").First())
			}
			if school == "" {
				return
			}
			out = append(out, types.TargetEducation{School: school})
		})
		if len(out) > 0 {
			break
		}
	}
	return out
}

func firstText(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		if text := trimmedText(doc.Find(sel).First()); text != "" {
			return text
		}
	}
	return ""
}

func trimmedText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}

func metaContent(doc *goquery.Document, property string) (string, bool) {
	content, ok := doc.Find("meta[property='" + property + "']").First().Attr("content")
	content = strings.TrimSpace(content)
	return content, ok && content != ""
}

// cleanMetaTitle strips trailing site suffixes like " | LinkedIn" from
// an og:title value.
func cleanMetaTitle(title string) string {
	for _, sep := range []string{" | ", " - ", " – "} {
		if idx := strings.Index(title, sep); idx > 0 {
			return strings.TrimSpace(title[:idx])
		}
	}
	return strings.TrimSpace(title)
}

func firstSentence(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.IndexAny(text, ".!?"); idx > 0 && idx < len(text)-1 {
		return strings.TrimSpace(text[:idx+1])
	}
	return text
}
