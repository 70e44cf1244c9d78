package profile

import (
	"math"
	"sort"
	"strings"
)

// Normalize returns a copy of p that satisfies the full profile schema:
// no nil collections, trimmed strings, empty entries dropped, the level
// derived from years and every summary count derived from the arrays.
// It never fails and Normalize(Normalize(p)) equals Normalize(p).
func Normalize(p StructuredProfile) StructuredProfile {
	out := StructuredProfile{
		Education:      make([]Education, 0, len(p.Education)),
		Projects:       make([]Project, 0, len(p.Projects)),
		Skills:         make(map[string][]string, len(p.Skills)),
		Certifications: make([]Certification, 0, len(p.Certifications)),
		Achievements:   cleanList(p.Achievements),
		PersonalInfo: PersonalInfo{
			Name:  clean(p.PersonalInfo.Name),
			Email: clean(p.PersonalInfo.Email),
			Phone: clean(p.PersonalInfo.Phone),
		},
	}

	for _, e := range p.Education {
		e = Education{
			Degree:      clean(e.Degree),
			Institution: clean(e.Institution),
			Year:        clean(e.Year),
			GPA:         clean(e.GPA),
		}
		if e.Degree == "" && e.Institution == "" && e.Year == "" && e.GPA == "" {
			continue
		}
		out.Education = append(out.Education, e)
	}

	for _, pr := range p.Projects {
		points := cleanList(pr.MainPoints)
		if len(points) == 0 {
			if description := clean(pr.Description); description != "" {
				points = []string{description}
			}
		}
		pr = Project{
			Name:         clean(pr.Name),
			MainPoints:   points,
			Technologies: cleanList(pr.Technologies),
		}
		if pr.Name == "" && len(pr.MainPoints) == 0 && len(pr.Technologies) == 0 {
			continue
		}
		out.Projects = append(out.Projects, pr)
	}

	for _, raw := range sortedKeys(p.Skills) {
		category := clean(raw)
		if category == "" {
			continue
		}
		merged := cleanList(append(append([]string{}, out.Skills[category]...), p.Skills[raw]...))
		if len(merged) == 0 {
			continue
		}
		out.Skills[category] = merged
	}

	for _, c := range p.Certifications {
		c = Certification{Name: clean(c.Name), Year: clean(c.Year)}
		if c.Name == "" {
			continue
		}
		out.Certifications = append(out.Certifications, c)
	}

	out.Experience = Experience{Years: normalizeYears(p.Experience.Years)}
	out.Experience.Level = LevelForYears(out.Experience.Years)

	out.AnalysisSummary = AnalysisSummary{
		TotalProjects:       len(out.Projects),
		EducationEntries:    len(out.Education),
		SkillCategories:     len(out.Skills),
		CertificationsCount: len(out.Certifications),
		AchievementsCount:   len(out.Achievements),
		CandidateType:       out.Experience.Level,
		OverallStrengths:    cleanList(p.AnalysisSummary.OverallStrengths),
	}

	return out
}

func normalizeYears(years float64) float64 {
	if math.IsNaN(years) || math.IsInf(years, 0) || years < 0 {
		return 0
	}
	return math.Round(years*10) / 10
}

func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// cleanList trims entries, drops blanks and removes case-insensitive duplicates
// keeping the first spelling. The result is never nil.
func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = clean(item)
		if item == "" {
			continue
		}
		key := strings.ToLower(item)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
