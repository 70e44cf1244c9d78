package profile

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/spigell/resume-screener/internal/screening"
	"github.com/spigell/resume-screener/internal/taxonomy"
)

// FallbackStrength is the only strength reported by the fallback extractor.
const FallbackStrength = "Basic information extracted"

const (
	nameMaxChars  = 50
	nameMaxWords  = 4
	nameScanLines = 3
)

var tenDigits = regexp.MustCompile(`\d{10}`)

// Fallback builds a minimal profile from local heuristics only: contact
// details, a guessed name and taxonomy skill hits. It always succeeds.
func Fallback(text string, tax *taxonomy.Taxonomy) StructuredProfile {
	p := StructuredProfile{
		PersonalInfo: PersonalInfo{
			Name:  guessName(text),
			Email: screening.EmailPattern.FindString(text),
			Phone: strings.TrimSpace(screening.PhonePattern.FindString(text)),
		},
		AnalysisSummary: AnalysisSummary{OverallStrengths: []string{FallbackStrength}},
	}

	if tax != nil {
		p.Skills = tax.Match(text)
	}

	return Normalize(p)
}

// guessName returns the first short line among the first three non-blank
// lines that does not look like an email or phone line.
func guessName(text string) string {
	seen := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if seen == nameScanLines {
			break
		}
		seen++

		if utf8.RuneCountInString(line) >= nameMaxChars {
			continue
		}
		if len(strings.Fields(line)) > nameMaxWords {
			continue
		}
		if strings.Contains(line, "@") || tenDigits.MatchString(line) {
			continue
		}
		return line
	}
	return ""
}
