package screening

import (
	"math"
	"unicode/utf8"
)

// Signals are the raw lexical and structural observations about a text.
type Signals struct {
	Length            int  `json:"length"`
	ResumeKeywords    int  `json:"resume_keywords"`
	NonResumeKeywords int  `json:"non_resume_keywords"`
	HasContact        bool `json:"has_contact"`
	HasExperience     bool `json:"has_experience"`
	HasEducation      bool `json:"has_education"`
	HasSkills         bool `json:"has_skills"`
	HasDates          bool `json:"has_dates"`
	Bullets           int  `json:"bullets"`
	HasBullets        bool `json:"has_bullets"`
	StructuredLines   int  `json:"structured_lines"`
}

// Breakdown holds the clamped score components.
type Breakdown struct {
	Length    float64 `json:"length_score"`
	Keywords  float64 `json:"keyword_score"`
	Sections  float64 `json:"section_score"`
	Structure float64 `json:"structure_score"`
	Penalty   float64 `json:"penalty"`
	Total     float64 `json:"total"`
}

// Collect extracts every signal from text.
func Collect(text string) Signals {
	bullets := CountBullets(text)
	return Signals{
		Length:            utf8.RuneCountInString(text),
		ResumeKeywords:    CountResumeKeywords(text),
		NonResumeKeywords: CountNonResumeKeywords(text),
		HasContact:        HasContact(text),
		HasExperience:     HasExperience(text),
		HasEducation:      HasEducation(text),
		HasSkills:         HasSkills(text),
		HasDates:          HasDates(text),
		Bullets:           bullets,
		HasBullets:        bullets > 2,
		StructuredLines:   CountStructuredLines(text),
	}
}

// Score combines signals additively. Each component is clamped to its
// ceiling before summation and the total lies in [0,100].
func Score(s Signals) Breakdown {
	b := Breakdown{
		Length:   math.Min(float64(s.Length)/500, 10),
		Keywords: math.Min(float64(s.ResumeKeywords*3), 30),
		Sections: points(s.HasContact, 5) + points(s.HasExperience, 10) + points(s.HasEducation, 10) + points(s.HasSkills, 5),
		Structure: math.Min(
			math.Min(float64(s.StructuredLines*2), 10)+points(s.HasDates, 5)+points(s.HasBullets, 5),
			20,
		),
		Penalty: math.Min(float64(s.NonResumeKeywords*5), 20),
	}

	total := b.Length + b.Keywords + b.Sections + b.Structure - b.Penalty
	b.Total = math.Round(math.Max(0, math.Min(100, total))*100) / 100
	return b
}

func points(ok bool, value float64) float64 {
	if ok {
		return value
	}
	return 0
}
