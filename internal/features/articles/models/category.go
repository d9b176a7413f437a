package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category is the closed set of topics an article can belong to.
// The internal name (BASIC_INCOME) is what the database stores; the
// lowercase-hyphenated slug (basic-income) is the external representation
// used in URLs and JSON.
type Category string

const (
	CategoryBasicIncome     Category = "BASIC_INCOME"
	CategoryCivicEngagement Category = "CIVIC_ENGAGEMENT"
	CategoryMegatrends      Category = "MEGATRENDS"
)

var categorySlugs = map[Category]string{
	CategoryBasicIncome:     "basic-income",
	CategoryCivicEngagement: "civic-engagement",
	CategoryMegatrends:      "megatrends",
}

// Categories returns all categories in declaration order
func Categories() []Category {
	return []Category{CategoryBasicIncome, CategoryCivicEngagement, CategoryMegatrends}
}

// ValidSlugs returns the external slugs of every category, comma separated
func ValidSlugs() string {
	slugs := make([]string, 0, len(categorySlugs))
	for _, c := range Categories() {
		slugs = append(slugs, categorySlugs[c])
	}
	return strings.Join(slugs, ", ")
}

// Slug returns the external representation of the category
func (c Category) Slug() string {
	return categorySlugs[c]
}

// Valid reports whether the category is a member of the closed set
func (c Category) Valid() bool {
	_, ok := categorySlugs[c]
	return ok
}

// ParseCategory converts an external string into a Category. Matching is
// case-insensitive and accepts either the slug form ("basic-income") or the
// internal name with hyphens in place of underscores.
func ParseCategory(value string) (Category, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("category cannot be empty")
	}

	for category, slug := range categorySlugs {
		if strings.EqualFold(slug, trimmed) {
			return category, nil
		}
	}

	name := Category(strings.ReplaceAll(strings.ToUpper(trimmed), "-", "_"))
	if name.Valid() {
		return name, nil
	}

	return "", fmt.Errorf("invalid category: %s. Valid categories are: %s", value, ValidSlugs())
}

// MarshalJSON writes the external slug
func (c Category) MarshalJSON() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid category: %s", string(c))
	}
	return json.Marshal(c.Slug())
}

// UnmarshalJSON accepts anything ParseCategory does
func (c *Category) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed, err := ParseCategory(raw)
	if err != nil {
		return err
	}

	*c = parsed
	return nil
}
