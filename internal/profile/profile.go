// Package profile defines the structured candidate profile and the steps
// that guarantee its shape.
package profile

// Experience levels.
const (
	LevelFresher = "Fresher"
	LevelJunior  = "Junior"
	LevelMid     = "Mid-Level"
	LevelSenior  = "Senior"
)

type StructuredProfile struct {
	Education       []Education         `json:"education"`
	Projects        []Project           `json:"projects"`
	Experience      Experience          `json:"experience"`
	Skills          map[string][]string `json:"skills"`
	Certifications  []Certification     `json:"certifications"`
	Achievements    []string            `json:"achievements"`
	PersonalInfo    PersonalInfo        `json:"personal_info"`
	AnalysisSummary AnalysisSummary     `json:"analysis_summary"`
}

type Education struct {
	Degree      string `json:"degree" mapstructure:"degree"`
	Institution string `json:"institution" mapstructure:"institution"`
	Year        string `json:"year" mapstructure:"year"`
	GPA         string `json:"gpa,omitempty" mapstructure:"gpa"`
}

type Project struct {
	Name         string   `json:"name" mapstructure:"name"`
	MainPoints   []string `json:"main_points" mapstructure:"main_points"`
	Technologies []string `json:"technologies" mapstructure:"technologies"`
	// Description is the prose some models return instead of MainPoints.
	Description string `json:"-" mapstructure:"description"`
}

type Experience struct {
	Years float64 `json:"years"`
	Level string  `json:"level"`
}

type Certification struct {
	Name string `json:"name" mapstructure:"name"`
	Year string `json:"year" mapstructure:"year"`
}

type PersonalInfo struct {
	Name  string `json:"name" mapstructure:"name"`
	Email string `json:"email" mapstructure:"email"`
	Phone string `json:"phone" mapstructure:"phone"`
}

// AnalysisSummary counts are derived from the profile by Normalize.
type AnalysisSummary struct {
	TotalProjects       int      `json:"total_projects"`
	EducationEntries    int      `json:"education_entries"`
	SkillCategories     int      `json:"skill_categories"`
	CertificationsCount int      `json:"certifications_count"`
	AchievementsCount   int      `json:"achievements_count"`
	CandidateType       string   `json:"candidate_type"`
	OverallStrengths    []string `json:"overall_strengths"`
}

// LevelForYears maps years of experience to a level label.
// 0 is Fresher, up to 2 Junior, up to 5 Mid-Level, above 5 Senior.
func LevelForYears(years float64) string {
	switch {
	case years <= 0:
		return LevelFresher
	case years <= 2:
		return LevelJunior
	case years <= 5:
		return LevelMid
	default:
		return LevelSenior
	}
}
