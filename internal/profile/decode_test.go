package profile

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNormalizeMapFromModelOutput(t *testing.T) {
	raw := `{
		"education": [{"degree": "BSc Computer Science", "institution": "MIT", "year": 2020, "gpa": 3.8}],
		"projects": [
			{"name": "Resume Parser", "description": "Extracts fields from resumes", "technologies": "Go"},
			"Side project"
		],
		"experience": {"years": "4 years", "level": "Junior Professional (0-2 years)"},
		"skills": {"Programming Languages": ["Go", "Python"], "Tools & Platforms": "Docker, Kubernetes"},
		"certifications": [{"name": "CKA", "year": 2023}, "AWS SAA"],
		"achievements": ["Hackathon winner", 42],
		"personal_info": {"name": "Jane Doe", "email": "jane@example.com", "phone": 5551234567},
		"analysis_summary": {"total_projects": 99, "candidate_type": "Senior", "overall_strengths": ["Strong backend"]}
	}`

	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	p := NormalizeMap(data)

	if p.Education[0].Year != "2020" || p.Education[0].GPA != "3.8" {
		t.Fatalf("unexpected education: %+v", p.Education)
	}
	if len(p.Projects) != 2 || p.Projects[1].Name != "Side project" {
		t.Fatalf("unexpected projects: %+v", p.Projects)
	}
	if !reflect.DeepEqual(p.Projects[0].MainPoints, []string{"Extracts fields from resumes"}) ||
		!reflect.DeepEqual(p.Projects[0].Technologies, []string{"Go"}) {
		t.Fatalf("unexpected first project: %+v", p.Projects[0])
	}
	if p.Experience.Years != 4 || p.Experience.Level != LevelMid {
		t.Fatalf("unexpected experience: %+v", p.Experience)
	}
	if !reflect.DeepEqual(p.Skills["Tools & Platforms"], []string{"Docker", "Kubernetes"}) {
		t.Fatalf("unexpected tools: %+v", p.Skills)
	}
	if len(p.Certifications) != 2 || p.Certifications[0].Year != "2023" || p.Certifications[1].Name != "AWS SAA" {
		t.Fatalf("unexpected certifications: %+v", p.Certifications)
	}
	if !reflect.DeepEqual(p.Achievements, []string{"Hackathon winner", "42"}) {
		t.Fatalf("unexpected achievements: %+v", p.Achievements)
	}
	if p.PersonalInfo.Phone != "5551234567" || p.PersonalInfo.Email != "jane@example.com" {
		t.Fatalf("unexpected personal info: %+v", p.PersonalInfo)
	}
	if p.AnalysisSummary.TotalProjects != 2 || p.AnalysisSummary.CandidateType != LevelMid {
		t.Fatalf("summary must be recomputed: %+v", p.AnalysisSummary)
	}
	if !reflect.DeepEqual(p.AnalysisSummary.OverallStrengths, []string{"Strong backend"}) {
		t.Fatalf("unexpected strengths: %+v", p.AnalysisSummary.OverallStrengths)
	}
}

func TestFromMapToleratesGarbage(t *testing.T) {
	inputs := []map[string]any{
		nil,
		{},
		{
			"education":      "not a list",
			"projects":       42.0,
			"experience":     []any{"nope"},
			"skills":         []any{"Go", map[string]any{"name": "SQL"}},
			"certifications": map[string]any{"name": "Single cert"},
			"personal_info":  "Jane",
		},
		{
			"projects": []any{map[string]any{"name": "Mixed", "main_points": map[string]any{"bad": true}}},
		},
	}

	for i, in := range inputs {
		p := NormalizeMap(in)
		assertCountsMatch(t, p)
		if i == 2 {
			if !reflect.DeepEqual(p.Skills[OtherSkills], []string{"Go", "SQL"}) {
				t.Fatalf("expected uncategorised skills, got %+v", p.Skills)
			}
			if len(p.Certifications) != 1 || len(p.Education) != 1 {
				t.Fatalf("expected single values to be lifted into lists: %+v", p)
			}
		}
		if i == 3 && (len(p.Projects) != 1 || p.Projects[0].Name != "Mixed") {
			t.Fatalf("expected valid fields to survive a malformed sibling: %+v", p.Projects)
		}
	}
}

func TestParseYears(t *testing.T) {
	tests := []struct {
		in   any
		want float64
	}{
		{in: 3.5, want: 3.5},
		{in: "5+ years", want: 5},
		{in: "about 2,5", want: 2.5},
		{in: "none", want: 0},
		{in: nil, want: 0},
		{in: true, want: 0},
	}

	for _, tt := range tests {
		if got := parseYears(tt.in); got != tt.want {
			t.Fatalf("parseYears(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
