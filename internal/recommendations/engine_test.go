package recommendations

import (
	"reflect"
	"strings"
	"testing"
)

func TestGenerateRecommendationsDeterminism(t *testing.T) {
	input := Input{
		Industry: "IT/Software",
		MissingKeywords: []Keyword{
			{Term: "Kubernetes", Weight: 2, Category: "tool"},
			{Term: "Terraform", Weight: 1, Category: "tool"},
		},
		FormattingIssues: []Issue{
			{Code: "MISSING_CONTACT_INFO", Severity: "critical", Message: "No contact details found."},
			{Code: "NO_MEASURABLE_RESULTS", Severity: "info", Message: "Experience lacks measurable results."},
		},
		Categories: []CategoryScore{{Category: "tool", Score: 40, WeightShare: 62.5}},
	}

	first := GenerateRecommendations(input)
	second := GenerateRecommendations(input)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected deterministic recommendations ordering")
	}
	if first[0].ID != "FORMAT_MISSING_CONTACT_INFO" {
		t.Fatalf("expected critical contact issue first, got %q", first[0].ID)
	}
}

func TestGenerateRecommendationsRanking(t *testing.T) {
	cases := []struct {
		name     string
		items    []Recommendation
		expected string
	}{
		{
			name: "critical_high_above_warning_high",
			items: []Recommendation{
				{ID: "a", Severity: "warning", Impact: "high", Title: "B"},
				{ID: "b", Severity: "critical", Impact: "high", Title: "A"},
			},
			expected: "b",
		},
		{
			name: "warning_high_above_warning_low",
			items: []Recommendation{
				{ID: "a", Severity: "warning", Impact: "low", Title: "B"},
				{ID: "b", Severity: "warning", Impact: "high", Title: "A"},
			},
			expected: "b",
		},
		{
			name: "ats_above_formatting_on_tie",
			items: []Recommendation{
				{ID: "a", Severity: "warning", Impact: "high", Category: "FORMATTING", Title: "A"},
				{ID: "b", Severity: "warning", Impact: "high", Category: "ATS", Title: "B"},
			},
			expected: "b",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items := append([]Recommendation{}, tc.items...)
			sortRecommendations(items)
			if len(items) == 0 || items[0].ID != tc.expected {
				t.Fatalf("expected first id %q, got %q", tc.expected, items[0].ID)
			}
		})
	}
}

func TestGenerateRecommendationsGroupsIssuesByCode(t *testing.T) {
	input := Input{
		FormattingIssues: []Issue{
			{Code: "MISSING_REQUIRED_SECTION", Severity: "warning", Message: "No certifications section detected."},
			{Code: "MISSING_REQUIRED_SECTION", Severity: "warning", Message: "No skills section detected."},
		},
	}

	recs := GenerateRecommendations(input)
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation after grouping, got %d", len(recs))
	}
	if !strings.Contains(recs[0].Action, "certifications") || !strings.Contains(recs[0].Action, "skills") {
		t.Fatalf("expected both messages in action, got %q", recs[0].Action)
	}
	if recs[0].Impact != "medium" {
		t.Fatalf("expected medium impact, got %q", recs[0].Impact)
	}
}

func TestGenerateRecommendationsDedup(t *testing.T) {
	items := []Recommendation{
		{ID: "x", Severity: "info", Impact: "low", Title: "First"},
		{ID: "x", Severity: "critical", Impact: "high", Title: "Second"},
	}
	out := dedupe(items)
	if len(out) != 1 {
		t.Fatalf("expected 1 recommendation after dedupe, got %d", len(out))
	}
	if out[0].Title != "First" || out[0].Severity != "critical" || out[0].Impact != "high" {
		t.Fatalf("unexpected merge result %+v", out[0])
	}
}

func TestGenerateRecommendationsMaxSeven(t *testing.T) {
	issues := make([]Issue, 0, 20)
	for i := 0; i < 20; i++ {
		issues = append(issues, Issue{
			Code:     "CUSTOM_" + string(rune('A'+i)),
			Severity: "info",
			Message:  "Do something",
		})
	}

	recs := GenerateRecommendations(Input{FormattingIssues: issues})
	if len(recs) != 7 {
		t.Fatalf("expected 7 recommendations, got %d", len(recs))
	}
	for i, rec := range recs {
		if rec.Order != i+1 {
			t.Fatalf("expected order %d, got %d", i+1, rec.Order)
		}
	}
}

func TestGenerateRecommendationsMissingKeywords(t *testing.T) {
	missing := []Keyword{{Term: "light", Weight: 0.5}}
	for i := 1; i <= 12; i++ {
		missing = append(missing, Keyword{Term: "k" + string(rune('a'+i)), Weight: 1})
	}
	missing = append(missing, Keyword{Term: "Kubernetes", Weight: 3})

	recs := GenerateRecommendations(Input{Industry: "IT/Software", MissingKeywords: missing})
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	if recs[0].Title != "Add missing industry keywords" {
		t.Fatalf("expected title %q, got %q", "Add missing industry keywords", recs[0].Title)
	}
	if !strings.Contains(recs[0].Action, ": Kubernetes, ") {
		t.Fatalf("expected heaviest keyword first, got %q", recs[0].Action)
	}
	if strings.Contains(recs[0].Action, "light") {
		t.Fatalf("expected low-weight keyword to be cut, got %q", recs[0].Action)
	}
}

func TestGenerateRecommendationsWeakCategories(t *testing.T) {
	recs := GenerateRecommendations(Input{Categories: []CategoryScore{
		{Category: "skill", Score: 80, WeightShare: 50},
		{Category: "soft-skill", Score: 0, WeightShare: 50},
		{Category: "tool", Score: 0, WeightShare: 0},
	}})
	if len(recs) != 1 || recs[0].ID != "CATEGORY_SOFT-SKILL" {
		t.Fatalf("expected one soft-skill recommendation, got %+v", recs)
	}
}

func TestGenerateRecommendationsEmptyInput(t *testing.T) {
	if recs := GenerateRecommendations(Input{}); len(recs) != 0 {
		t.Fatalf("expected no recommendations, got %d", len(recs))
	}
}
