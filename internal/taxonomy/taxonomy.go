// Package taxonomy holds the fixed category to skill token lookup table used
// for local skill detection.
package taxonomy

import (
	"fmt"
	"regexp"
	"strings"
)

// Category groups an ordered list of skill tokens under a display name.
type Category struct {
	Name   string
	Skills []string
}

// Taxonomy is an immutable, precompiled skill table. It is safe for
// concurrent use.
type Taxonomy struct {
	categories []Category
	matchers   map[string][]*regexp.Regexp
}

// Tokens may contain '+' and '#', so the usual \b does not separate "c" from "c++".
const (
	leftBoundary  = `(?:^|[^A-Za-z0-9_+#])`
	rightBoundary = `(?:$|[^A-Za-z0-9_+#])`
)

// New validates the categories and compiles one matcher per token.
func New(categories []Category) (*Taxonomy, error) {
	t := &Taxonomy{
		categories: make([]Category, 0, len(categories)),
		matchers:   make(map[string][]*regexp.Regexp, len(categories)),
	}

	for _, category := range categories {
		name := strings.TrimSpace(category.Name)
		if name == "" {
			return nil, fmt.Errorf("taxonomy category name is empty")
		}
		if _, exists := t.matchers[name]; exists {
			return nil, fmt.Errorf("duplicate taxonomy category %q", name)
		}

		skills := make([]string, 0, len(category.Skills))
		matchers := make([]*regexp.Regexp, 0, len(category.Skills))
		for _, skill := range category.Skills {
			skill = strings.ToLower(strings.TrimSpace(skill))
			if skill == "" {
				continue
			}
			re, err := regexp.Compile(`(?i)` + leftBoundary + regexp.QuoteMeta(skill) + rightBoundary)
			if err != nil {
				return nil, fmt.Errorf("compile matcher for %q: %w", skill, err)
			}
			skills = append(skills, skill)
			matchers = append(matchers, re)
		}

		t.categories = append(t.categories, Category{Name: name, Skills: skills})
		t.matchers[name] = matchers
	}

	return t, nil
}

// Default returns the built-in five-category taxonomy.
func Default() *Taxonomy {
	t, err := New(builtin)
	if err != nil {
		panic(fmt.Sprintf("builtin taxonomy is invalid: %v", err))
	}
	return t
}

// Categories returns the category names in table order.
func (t *Taxonomy) Categories() []string {
	names := make([]string, 0, len(t.categories))
	for _, category := range t.categories {
		names = append(names, category.Name)
	}
	return names
}

// Skills returns a copy of the tokens for the named category.
func (t *Taxonomy) Skills(category string) []string {
	for _, c := range t.categories {
		if c.Name == category {
			return append([]string(nil), c.Skills...)
		}
	}
	return nil
}

// Match reports, per category, the tokens found in text. Categories with no
// hits are omitted; tokens keep table order.
func (t *Taxonomy) Match(text string) map[string][]string {
	found := make(map[string][]string)
	if strings.TrimSpace(text) == "" {
		return found
	}

	for _, category := range t.categories {
		matchers := t.matchers[category.Name]
		for i, re := range matchers {
			if re.MatchString(text) {
				found[category.Name] = append(found[category.Name], category.Skills[i])
			}
		}
	}

	return found
}

// Contains reports whether any token of any category appears in text.
func (t *Taxonomy) Contains(text string) bool {
	for _, category := range t.categories {
		for _, re := range t.matchers[category.Name] {
			if re.MatchString(text) {
				return true
			}
		}
	}
	return false
}
