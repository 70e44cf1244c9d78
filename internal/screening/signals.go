// Package screening decides whether extracted text is plausibly a resume.
package screening

import (
	"regexp"
	"strings"
)

func wordAlternation(terms ...string) *regexp.Regexp {
	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		quoted = append(quoted, strings.ReplaceAll(regexp.QuoteMeta(term), " ", `\s+`))
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

var (
	resumeVocabulary = wordAlternation(
		"contact", "email", "e-mail", "phone", "mobile", "linkedin", "github", "address",
		"experience", "work experience", "professional experience", "employment", "work history", "internship",
		"responsibilities",
		"education", "university", "college", "degree", "bachelor", "master", "gpa",
		"skills", "technical skills", "competencies",
		"projects", "project",
		"certifications", "certification", "certified",
		"achievements", "awards", "accomplishments",
		"summary", "objective", "profile", "qualifications",
		"references",
	)

	nonResumeVocabulary = wordAlternation(
		"invoice", "invoice number", "bill to", "ship to", "due date", "payment terms", "amount due",
		"subtotal", "tax", "receipt", "purchase order",
		"report", "quarterly report", "annual report",
		"contract", "agreement", "terms and conditions", "hereby", "whereas",
		"article", "abstract", "manual", "user guide", "instructions",
		"form", "application form",
		"recipe", "ingredients", "tablespoon",
		"news", "press release", "chapter",
	)

	experienceTerms = wordAlternation("experience", "employment", "work history", "career history", "professional background", "internship")
	educationTerms  = wordAlternation("education", "university", "college", "degree", "bachelor", "master", "academic", "bsc", "msc", "phd")
	skillTerms      = wordAlternation("skills", "technical skills", "competencies", "technologies", "proficient", "expertise")
)

// Contact patterns shared with the fallback extractor.
var (
	EmailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	PhonePattern = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
)

const month = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:19|20)\d{2}\b`),
	regexp.MustCompile(`(?i)\b` + month + `\.?\s+(?:19|20)\d{2}\b`),
	regexp.MustCompile(`\b(?:0?[1-9]|1[0-2])/(?:19|20)\d{2}\b`),
	regexp.MustCompile(`(?i)\b(?:19|20)\d{2}\s*(?:-|–|—|to)\s*(?:present|current|(?:19|20)\d{2})\b`),
}

var structuredLinePatterns = []*regexp.Regexp{
	// "Label:" lines such as "Email: jane@example.com".
	regexp.MustCompile(`^[A-Z][A-Za-z&/ ]{0,40}:`),
	// Headings made of capitalised words such as "Work Experience".
	regexp.MustCompile(`^[A-Z][A-Za-z]*(?:\s+[A-Z][A-Za-z&]*)+$`),
}

// CountResumeKeywords counts occurrences of resume-indicator terms.
func CountResumeKeywords(text string) int {
	return len(resumeVocabulary.FindAllStringIndex(text, -1))
}

// CountNonResumeKeywords counts occurrences of terms typical for invoices,
// reports, contracts and other non-resume documents.
func CountNonResumeKeywords(text string) int {
	return len(nonResumeVocabulary.FindAllStringIndex(text, -1))
}

func HasContact(text string) bool {
	return EmailPattern.MatchString(text) || PhonePattern.MatchString(text)
}

func HasExperience(text string) bool { return experienceTerms.MatchString(text) }

func HasEducation(text string) bool { return educationTerms.MatchString(text) }

func HasSkills(text string) bool { return skillTerms.MatchString(text) }

// HasDates reports a year, "Month Year", "MM/YYYY" or a range ending in
// Present, Current or a year.
func HasDates(text string) bool {
	for _, re := range datePatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// CountBullets counts bullet markers: "•", "- " and "* ".
func CountBullets(text string) int {
	return strings.Count(text, "•") + strings.Count(text, "- ") + strings.Count(text, "* ")
}

// CountStructuredLines counts lines shaped like a label or a heading.
func CountStructuredLines(text string) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, re := range structuredLinePatterns {
			if re.MatchString(line) {
				count++
				break
			}
		}
	}
	return count
}
