package pipeline

import (
	"regexp"

	"github.com/spigell/resume-screener/internal/utils"
)

const (
	fullTextPreviewChars = 1000
	sectionPreviewChars  = 500
	// SectionNotFound marks a heading that does not occur in the text.
	SectionNotFound = "NOT FOUND"
)

type sectionRule struct {
	name    string
	heading *regexp.Regexp
	// until lists the headings that end the section.
	until *regexp.Regexp
}

var sectionRules = []sectionRule{
	{name: "education", heading: regexp.MustCompile(`(?i)EDUCATION\s*`), until: regexp.MustCompile(`(?i)PROJECTS|SKILLS`)},
	{name: "projects", heading: regexp.MustCompile(`(?i)PROJECTS\s*`), until: regexp.MustCompile(`(?i)SKILLS|EDUCATION`)},
	{name: "skills", heading: regexp.MustCompile(`(?i)SKILLS\s*`), until: regexp.MustCompile(`(?i)CERTIFICATIONS|ACHIEVEMENTS`)},
	{name: "certifications", heading: regexp.MustCompile(`(?i)CERTIFICATIONS\s*`), until: regexp.MustCompile(`(?i)ACHIEVEMENTS`)},
	{name: "achievements", heading: regexp.MustCompile(`(?i)ACHIEVEMENTS\s*`), until: regexp.MustCompile(`(?i)DECLARATION`)},
}

// Preview is the diagnostic view of an extracted document.
type Preview struct {
	FullTextPreview string            `json:"full_text_preview"`
	Sections        map[string]string `json:"sections"`
	TextLength      int               `json:"text_length"`
}

// PreviewSections locates the common resume headings in text and returns
// the beginning of each section.
func PreviewSections(text string, length int) Preview {
	sections := make(map[string]string, len(sectionRules))
	for _, rule := range sectionRules {
		sections[rule.name] = sectionBody(text, rule)
	}

	return Preview{
		FullTextPreview: utils.TruncateForLog(text, fullTextPreviewChars),
		Sections:        sections,
		TextLength:      length,
	}
}

func sectionBody(text string, rule sectionRule) string {
	loc := rule.heading.FindStringIndex(text)
	if loc == nil {
		return SectionNotFound
	}

	body := text[loc[1]:]
	if end := rule.until.FindStringIndex(body); end != nil {
		body = body[:end[0]]
	}
	return utils.TruncateForLog(body, sectionPreviewChars)
}
