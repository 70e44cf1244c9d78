package profile

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// OtherSkills holds skills a model returned without categories.
const OtherSkills = "Other Skills"

var firstNumber = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

// FromMap decodes a loosely typed JSON object into a profile. Every field
// is decoded on its own so one malformed field does not discard the rest.
// Summary counts and the level are ignored since Normalize derives them.
func FromMap(raw map[string]any) StructuredProfile {
	var p StructuredProfile
	if raw == nil {
		return p
	}

	for _, item := range asList(raw["education"]) {
		var e Education
		switch v := item.(type) {
		case map[string]any:
			decodeLenient(v, &e)
		case string:
			e.Degree = v
		}
		p.Education = append(p.Education, e)
	}

	for _, item := range asList(raw["projects"]) {
		var pr Project
		switch v := item.(type) {
		case map[string]any:
			decodeLenient(v, &pr)
		case string:
			pr.Name = v
		}
		p.Projects = append(p.Projects, pr)
	}

	switch v := raw["experience"].(type) {
	case map[string]any:
		p.Experience.Years = parseYears(v["years"])
	default:
		p.Experience.Years = parseYears(v)
	}

	p.Skills = decodeSkills(raw["skills"])

	for _, item := range asList(raw["certifications"]) {
		var c Certification
		switch v := item.(type) {
		case map[string]any:
			decodeLenient(v, &c)
		case string:
			c.Name = v
		}
		p.Certifications = append(p.Certifications, c)
	}

	p.Achievements = stringList(raw["achievements"])

	if info, ok := raw["personal_info"].(map[string]any); ok {
		decodeLenient(info, &p.PersonalInfo)
	}

	if summary, ok := raw["analysis_summary"].(map[string]any); ok {
		p.AnalysisSummary.OverallStrengths = stringList(summary["overall_strengths"])
	}

	return p
}

// NormalizeMap is Normalize(FromMap(raw)).
func NormalizeMap(raw map[string]any) StructuredProfile {
	return Normalize(FromMap(raw))
}

func decodeLenient(input map[string]any, out any) {
	if err := mapstructure.WeakDecode(input, out); err == nil {
		return
	}
	for key, value := range input {
		_ = mapstructure.WeakDecode(map[string]any{key: value}, out)
	}
}

func asList(v any) []any {
	switch val := v.(type) {
	case []any:
		return val
	case map[string]any:
		return []any{val}
	case string:
		if strings.TrimSpace(val) != "" {
			return []any{val}
		}
	}
	return nil
}

func decodeSkills(v any) map[string][]string {
	skills := make(map[string][]string)
	switch val := v.(type) {
	case map[string]any:
		for category, entries := range val {
			skills[category] = append(skills[category], skillList(entries)...)
		}
	case []any, string:
		skills[OtherSkills] = skillList(val)
	}
	return skills
}

// skillList also accepts a single comma separated string.
func skillList(v any) []string {
	s, ok := v.(string)
	if !ok {
		return stringList(v)
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// stringList flattens scalars and objects with a name field into a list of strings.
func stringList(v any) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			switch entry := item.(type) {
			case string:
				out = append(out, entry)
			case map[string]any:
				if name := scalarString(entry["name"]); name != "" {
					out = append(out, name)
				}
			default:
				if s := scalarString(entry); s != "" {
					out = append(out, s)
				}
			}
		}
		return out
	default:
		if s := scalarString(val); s != "" {
			return []string{s}
		}
		return nil
	}
}

func scalarString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool, json.Number, int, int64:
		return fmt.Sprint(val)
	default:
		return ""
	}
}

func parseYears(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case json.Number:
		f, _ := val.Float64()
		return f
	case string:
		match := firstNumber.FindString(val)
		if match == "" {
			return 0
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", "."), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
