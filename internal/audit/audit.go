// Package audit runs structural checks on a normalized resume that do not
// depend on the target industry's keywords.
package audit

import (
	"fmt"
	"sort"
	"strings"

	"ats-checker/internal/extract"
	"ats-checker/internal/normalize"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Rank orders severities, most severe first.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

const (
	CodeMissingContact    = "MISSING_CONTACT_INFO"
	CodeMissingExperience = "MISSING_EXPERIENCE_SECTION"
	CodeMissingEducation  = "MISSING_EDUCATION_SECTION"
	CodeMissingRequired   = "MISSING_REQUIRED_SECTION"
	CodeNoMeasurable      = "NO_MEASURABLE_RESULTS"
	CodeNoDateRanges      = "NO_DATE_RANGES"
	CodeNoSections        = "NO_SECTIONS_DETECTED"
	CodeTooShort          = "TOO_SHORT"
	CodeTooLong           = "TOO_LONG"
)

const (
	DefaultMinWords = 150
	DefaultMaxWords = 1200
)

type FormattingIssue struct {
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

type Config struct {
	MinWords int
	MaxWords int
}

type Auditor struct {
	cfg Config
}

func New(cfg Config) *Auditor {
	if cfg.MinWords <= 0 {
		cfg.MinWords = DefaultMinWords
	}
	if cfg.MaxWords <= 0 {
		cfg.MaxWords = DefaultMaxWords
	}
	return &Auditor{cfg: cfg}
}

// extractor warnings surfaced as issues, with their severity.
var extractorWarnings = map[string]Severity{
	extract.WarningTables:    SeverityWarning,
	extract.WarningImages:    SeverityWarning,
	extract.WarningTextBoxes: SeverityWarning,
	extract.WarningEncoding:  SeverityInfo,
}

// Audit returns every issue found, sorted by severity then code. It never fails.
func (a *Auditor) Audit(doc normalize.Document, required []string) []FormattingIssue {
	issues := make([]FormattingIssue, 0)
	add := func(code string, sev Severity, msg string) {
		issues = append(issues, FormattingIssue{Code: code, Severity: sev, Message: msg})
	}

	if !doc.Has(normalize.SectionContact) && !hasEmail(doc.Text) && !hasPhone(doc.Text) {
		add(CodeMissingContact, SeverityCritical, "No contact details found. Add an email address and phone number at the top of the resume.")
	}

	if doc.Segmented {
		if !doc.Has(normalize.SectionExperience) {
			add(CodeMissingExperience, SeverityWarning, "No experience section detected. Use a clear heading such as \"Experience\" or \"Work History\".")
		}
		if !doc.Has(normalize.SectionEducation) {
			add(CodeMissingEducation, SeverityWarning, "No education section detected. Use a clear heading such as \"Education\".")
		}
		for _, name := range uniqueSections(required) {
			switch name {
			case normalize.SectionContact, normalize.SectionExperience, normalize.SectionEducation:
				continue
			}
			if !doc.Has(name) {
				add(CodeMissingRequired, SeverityWarning, fmt.Sprintf("No %s section detected; recruiters in this industry expect one.", name))
			}
		}
	} else {
		add(CodeNoSections, SeverityWarning, "No section headings were recognised. Use standard headings like Summary, Experience, Education and Skills.")
	}

	if text, ok := experienceText(doc); ok && !hasMeasurableResult(text) {
		add(CodeNoMeasurable, SeverityInfo, "Experience lacks measurable results. Quantify impact with numbers, percentages or amounts.")
	}
	if s, ok := doc.Section(normalize.SectionExperience); ok && s.Text != "" && !hasYear(s.Text) {
		add(CodeNoDateRanges, SeverityInfo, "Experience lists no dates. Give each role a start and end year, for example 2019 - 2023.")
	}

	switch {
	case doc.Words < a.cfg.MinWords:
		add(CodeTooShort, SeverityWarning, fmt.Sprintf("Resume has %d words; aim for at least %d.", doc.Words, a.cfg.MinWords))
	case doc.Words > a.cfg.MaxWords:
		add(CodeTooLong, SeverityWarning, fmt.Sprintf("Resume has %d words; keep it under %d.", doc.Words, a.cfg.MaxWords))
	}

	for _, w := range doc.Warnings {
		sev, ok := extractorWarnings[w.Code]
		if !ok || containsCode(issues, w.Code) {
			continue
		}
		add(w.Code, sev, w.Message)
	}

	sort.SliceStable(issues, func(i, j int) bool {
		if ri, rj := issues[i].Severity.Rank(), issues[j].Severity.Rank(); ri != rj {
			return ri < rj
		}
		if issues[i].Code != issues[j].Code {
			return issues[i].Code < issues[j].Code
		}
		return issues[i].Message < issues[j].Message
	})
	return issues
}

// experienceText is the text the measurable-results check looks at: the
// experience section, or the whole document when it is unsegmented.
func experienceText(doc normalize.Document) (string, bool) {
	if !doc.Segmented {
		return doc.Text, doc.Text != ""
	}
	s, ok := doc.Section(normalize.SectionExperience)
	if !ok || s.Text == "" {
		return "", false
	}
	return s.Text, true
}

func uniqueSections(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func containsCode(issues []FormattingIssue, code string) bool {
	for _, i := range issues {
		if i.Code == code {
			return true
		}
	}
	return false
}
