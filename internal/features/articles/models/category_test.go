package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{"basic-income", CategoryBasicIncome, false},
		{"civic-engagement", CategoryCivicEngagement, false},
		{"megatrends", CategoryMegatrends, false},
		{"Basic-Income", CategoryBasicIncome, false},
		{"BASIC-INCOME", CategoryBasicIncome, false},
		{"BASIC_INCOME", CategoryBasicIncome, false},
		{"basic_income", CategoryBasicIncome, false},
		{"  megatrends  ", CategoryMegatrends, false},
		{"", "", true},
		{"   ", "", true},
		{"sports", "", true},
		{"basic income", "", true},
	}

	for _, tt := range tests {
		got, err := ParseCategory(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseCategory(%q) expected an error, got %v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCategory(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCategory(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseCategoryErrorNamesValidSlugs(t *testing.T) {
	_, err := ParseCategory("politics")
	if err == nil {
		t.Fatal("expected an error for an unknown category")
	}

	for _, slug := range []string{"basic-income", "civic-engagement", "megatrends"} {
		if !strings.Contains(err.Error(), slug) {
			t.Errorf("expected error to name %q, got %q", slug, err.Error())
		}
	}
}

func TestCategorySlugRoundTrip(t *testing.T) {
	for _, category := range Categories() {
		parsed, err := ParseCategory(category.Slug())
		if err != nil {
			t.Errorf("ParseCategory(%q) unexpected error: %v", category.Slug(), err)
			continue
		}
		if parsed != category {
			t.Errorf("round trip for %v produced %v", category, parsed)
		}
	}
}

func TestCategoryJSON(t *testing.T) {
	data, err := json.Marshal(CategoryBasicIncome)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"basic-income"` {
		t.Errorf("expected slug in JSON, got %s", data)
	}

	var category Category
	if err := json.Unmarshal([]byte(`"CIVIC_ENGAGEMENT"`), &category); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if category != CategoryCivicEngagement {
		t.Errorf("expected CIVIC_ENGAGEMENT, got %v", category)
	}

	if err := json.Unmarshal([]byte(`"unknown"`), &category); err == nil {
		t.Error("expected an error for an unknown category")
	}
}
