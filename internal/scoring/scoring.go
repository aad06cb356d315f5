// Package scoring combines keyword matches and formatting issues into the
// ATS compatibility score.
package scoring

import (
	"fmt"
	"math"

	"ats-checker/internal/audit"
	"ats-checker/internal/keywords"
	"ats-checker/internal/matching"
)

// Policy weights the two sub-scores and sets the per-severity deductions.
// KeywordWeight and FormattingWeight are percentages summing to 100.
type Policy struct {
	KeywordWeight     float64
	FormattingWeight  float64
	CriticalDeduction float64
	WarningDeduction  float64
	InfoDeduction     float64
}

func DefaultPolicy() Policy {
	return Policy{
		KeywordWeight:     70,
		FormattingWeight:  30,
		CriticalDeduction: 20,
		WarningDeduction:  10,
		InfoDeduction:     2,
	}
}

func (p Policy) Validate() error {
	if p.KeywordWeight < 0 || p.FormattingWeight < 0 {
		return fmt.Errorf("scoring: weights must not be negative")
	}
	if math.Abs(p.KeywordWeight+p.FormattingWeight-100) > 1e-9 {
		return fmt.Errorf("scoring: keyword weight %.1f and formatting weight %.1f must sum to 100", p.KeywordWeight, p.FormattingWeight)
	}
	if p.CriticalDeduction < 0 || p.WarningDeduction < 0 || p.InfoDeduction < 0 {
		return fmt.Errorf("scoring: deductions must not be negative")
	}
	return nil
}

func (p Policy) deduction(s audit.Severity) float64 {
	switch s {
	case audit.SeverityCritical:
		return p.CriticalDeduction
	case audit.SeverityWarning:
		return p.WarningDeduction
	default:
		return p.InfoDeduction
	}
}

type tally struct {
	matched float64
	total   float64
}

type CategoryScore struct {
	Category      keywords.Category `json:"category"`
	WeightShare   float64           `json:"weightShare"`
	Score         float64           `json:"score"`
	MatchedWeight float64           `json:"matchedWeight"`
	TotalWeight   float64           `json:"totalWeight"`
}

type Breakdown struct {
	Overall    int             `json:"overall"`
	Keyword    float64         `json:"keywordScore"`
	Formatting float64         `json:"formattingScore"`
	Categories []CategoryScore `json:"categories"`
}

// Aggregate computes the breakdown. The profile's total weight is the sum of
// matched and missing keyword weights, which is positive for any valid profile.
func Aggregate(p Policy, matches []matching.MatchResult, missing []keywords.KeywordEntry, issues []audit.FormattingIssue) Breakdown {
	byCategory := make(map[keywords.Category]*tally, len(keywords.Categories))
	get := func(c keywords.Category) *tally {
		t, ok := byCategory[c]
		if !ok {
			t = &tally{}
			byCategory[c] = t
		}
		return t
	}

	var contributed, total float64
	for _, m := range matches {
		contributed += m.Contribution
		total += m.Keyword.Weight
		t := get(m.Keyword.Category)
		t.matched += m.Contribution
		t.total += m.Keyword.Weight
	}
	for _, k := range missing {
		total += k.Weight
		get(k.Category).total += k.Weight
	}

	keywordScore := 0.0
	if total > 0 {
		keywordScore = round1(clamp(contributed / total * 100))
	}

	formatting := 100.0
	for _, i := range issues {
		formatting -= p.deduction(i.Severity)
	}
	formattingScore := round1(clamp(formatting))

	categories := make([]CategoryScore, 0, len(byCategory))
	weights := make([]float64, 0, len(byCategory))
	for _, c := range orderedCategories(byCategory) {
		t := byCategory[c]
		score := 0.0
		if t.total > 0 {
			score = round1(clamp(t.matched / t.total * 100))
		}
		categories = append(categories, CategoryScore{
			Category:      c,
			Score:         score,
			MatchedWeight: t.matched,
			TotalWeight:   t.total,
		})
		weights = append(weights, t.total)
	}
	for i, share := range shares(weights) {
		categories[i].WeightShare = share
	}

	return Breakdown{
		Overall:    Overall(p, keywordScore, formattingScore),
		Keyword:    keywordScore,
		Formatting: formattingScore,
		Categories: categories,
	}
}

// Overall blends the two sub-scores and rounds to the nearest integer.
func Overall(p Policy, keywordScore, formattingScore float64) int {
	blended := (p.KeywordWeight*keywordScore + p.FormattingWeight*formattingScore) / 100
	return int(clamp(math.Round(blended)))
}

// orderedCategories returns the known categories first, in report order,
// then anything unexpected in name order.
func orderedCategories(in map[keywords.Category]*tally) []keywords.Category {
	out := make([]keywords.Category, 0, len(in))
	known := make(map[keywords.Category]bool, len(keywords.Categories))
	for _, c := range keywords.Categories {
		known[c] = true
		if _, ok := in[c]; ok {
			out = append(out, c)
		}
	}
	var extra []keywords.Category
	for c := range in {
		if !known[c] {
			extra = append(extra, c)
		}
	}
	sortCategories(extra)
	return append(out, extra...)
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
