// Package report merges the results of one analysis into the response
// document returned to clients.
package report

import (
	"time"

	"ats-checker/internal/audit"
	"ats-checker/internal/enhance"
	"ats-checker/internal/keywords"
	"ats-checker/internal/matching"
	"ats-checker/internal/normalize"
	"ats-checker/internal/recommendations"
	"ats-checker/internal/scoring"
)

// KeywordMatch is a matched keyword as reported to clients.
type KeywordMatch struct {
	Term         string            `json:"term"`
	Category     keywords.Category `json:"category"`
	Weight       float64           `json:"weight"`
	MatchType    string            `json:"matchType"`
	MatchedTerm  string            `json:"matchedTerm"`
	Section      string            `json:"section"`
	Contribution float64           `json:"contribution"`
}

// MissingKeyword is a profile keyword not found in the document.
type MissingKeyword struct {
	Term     string            `json:"term"`
	Category keywords.Category `json:"category"`
	Weight   float64           `json:"weight"`
}

// AnalysisReport is the full result of one analysis. AISuggestions is
// serialized as null when enhancement was skipped or failed.
type AnalysisReport struct {
	ID                  string                           `json:"id"`
	Industry            string                           `json:"industry"`
	RequestedIndustry   string                           `json:"requestedIndustry"`
	UsedFallbackProfile bool                             `json:"usedFallbackProfile"`
	CatalogVersion      string                           `json:"catalogVersion"`
	FileName            string                           `json:"fileName,omitempty"`
	Score               scoring.Breakdown                `json:"score"`
	MatchedKeywords     []KeywordMatch                   `json:"matchedKeywords"`
	MissingKeywords     []MissingKeyword                 `json:"missingKeywords"`
	FormattingIssues    []audit.FormattingIssue          `json:"formattingIssues"`
	Recommendations     []recommendations.Recommendation `json:"recommendations"`
	AISuggestions       []string                         `json:"aiSuggestions"`
	AIStatus            string                           `json:"aiStatus"`
	Sections            []string                         `json:"sections"`
	WordCount           int                              `json:"wordCount"`
	GeneratedAt         time.Time                        `json:"generatedAt"`
}

type Input struct {
	ID                string
	FileName          string
	RequestedIndustry string
	Profile           keywords.IndustryProfile
	FellBack          bool
	CatalogVersion    string
	Document          normalize.Document
	Breakdown         scoring.Breakdown
	Matches           []matching.MatchResult
	Missing           []keywords.KeywordEntry
	Issues            []audit.FormattingIssue
	Recommendations   []recommendations.Recommendation
	AI                enhance.Outcome
	GeneratedAt       time.Time
}

// Assemble copies every input into a new report. All slices except
// AISuggestions are non-nil.
func Assemble(in Input) AnalysisReport {
	r := AnalysisReport{
		ID:                  in.ID,
		Industry:            in.Profile.Name,
		RequestedIndustry:   in.RequestedIndustry,
		UsedFallbackProfile: in.FellBack,
		CatalogVersion:      in.CatalogVersion,
		FileName:            in.FileName,
		Score:               in.Breakdown,
		MatchedKeywords:     make([]KeywordMatch, 0, len(in.Matches)),
		MissingKeywords:     make([]MissingKeyword, 0, len(in.Missing)),
		FormattingIssues:    append(make([]audit.FormattingIssue, 0, len(in.Issues)), in.Issues...),
		Recommendations:     append(make([]recommendations.Recommendation, 0, len(in.Recommendations)), in.Recommendations...),
		AIStatus:            in.AI.Status,
		Sections:            in.Document.SectionNames(),
		WordCount:           in.Document.Words,
		GeneratedAt:         in.GeneratedAt.UTC(),
	}
	r.Score.Categories = append(make([]scoring.CategoryScore, 0, len(in.Breakdown.Categories)), in.Breakdown.Categories...)

	for _, m := range in.Matches {
		r.MatchedKeywords = append(r.MatchedKeywords, KeywordMatch{
			Term:         m.Keyword.Term,
			Category:     m.Keyword.Category,
			Weight:       m.Keyword.Weight,
			MatchType:    string(m.Type),
			MatchedTerm:  m.MatchedTerm,
			Section:      m.Section,
			Contribution: m.Contribution,
		})
	}
	for _, k := range in.Missing {
		r.MissingKeywords = append(r.MissingKeywords, MissingKeyword{
			Term:     k.Term,
			Category: k.Category,
			Weight:   k.Weight,
		})
	}

	if in.AI.Status == enhance.StatusOK && in.AI.Suggestions != nil {
		r.AISuggestions = append(make([]string, 0, len(in.AI.Suggestions)), in.AI.Suggestions...)
	}
	if r.AIStatus == "" {
		r.AIStatus = enhance.StatusSkipped
	}
	return r
}
