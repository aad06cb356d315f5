package recommendations

import (
	"fmt"
	"sort"
	"strings"

	"ats-checker/internal/audit"
	"ats-checker/internal/extract"
)

const (
	maxKeywordsListed = 8
	weakCategoryScore = 50.0
)

type advice struct {
	category string
	title    string
	why      string
	action   string
}

var issueAdvice = map[string]advice{
	audit.CodeMissingContact: {
		category: "STRUCTURE",
		title:    "Add contact details",
		why:      "Recruiters and ATS parsers need an email or phone number to reach you.",
		action:   "Put your email, phone number and city in plain text at the top of the resume.",
	},
	audit.CodeMissingExperience: {
		category: "EXPERIENCE",
		title:    "Add an experience section",
		why:      "ATS parsers map roles and dates from a recognisable experience heading.",
		action:   "Add a heading such as \"Experience\" and list roles with company, title and dates.",
	},
	audit.CodeMissingEducation: {
		category: "STRUCTURE",
		title:    "Add an education section",
		why:      "Many screens filter on degree or certification fields.",
		action:   "Add an \"Education\" heading with institution, qualification and year.",
	},
	audit.CodeMissingRequired: {
		category: "STRUCTURE",
		title:    "Add sections expected for this industry",
		why:      "Recruiters in this industry look for these sections when screening.",
	},
	audit.CodeNoMeasurable: {
		category: "EXPERIENCE",
		title:    "Quantify your impact",
		why:      "Numbers make achievements concrete and easier to compare.",
		action:   "Rewrite two or three bullets per role with metrics: percentages, amounts, team sizes or volumes.",
	},
	audit.CodeNoDateRanges: {
		category: "EXPERIENCE",
		title:    "Add dates to each role",
		why:      "ATS parsers compute years of experience from role dates.",
		action:   "Give every role a start and end month or year, using \"Present\" for your current job.",
	},
	audit.CodeNoSections: {
		category: "STRUCTURE",
		title:    "Use standard section headings",
		why:      "Without headings an ATS cannot tell your experience from your education.",
		action:   "Split the resume under headings like Summary, Experience, Education and Skills.",
	},
	audit.CodeTooShort: {
		category: "EXPERIENCE",
		title:    "Expand your resume",
		why:      "Very short resumes give the ATS too little to match against.",
		action:   "Describe responsibilities and results for each role and add a skills section.",
	},
	audit.CodeTooLong: {
		category: "STRUCTURE",
		title:    "Trim your resume",
		why:      "Long resumes dilute the keywords that matter and lose the reader.",
		action:   "Cut older or unrelated roles and keep bullets to one or two lines.",
	},
	extract.WarningTables: {
		category: "FORMATTING",
		title:    "Replace tables with plain text",
		why:      "Many ATS parsers read table cells out of order or skip them.",
		action:   "Move table content into simple headings and bullet lists.",
	},
	extract.WarningImages: {
		category: "FORMATTING",
		title:    "Remove images and graphics",
		why:      "Text inside images and icons is invisible to ATS parsers.",
		action:   "Replace graphics, logos and skill bars with plain text.",
	},
	extract.WarningTextBoxes: {
		category: "FORMATTING",
		title:    "Move text out of text boxes",
		why:      "Text boxes are frequently dropped during ATS parsing.",
		action:   "Place all content in the main body of the document.",
	},
	extract.WarningEncoding: {
		category: "FORMATTING",
		title:    "Save the file with UTF-8 text",
		why:      "Non-standard encodings can garble names and special characters.",
		action:   "Export the resume as PDF or DOCX, or save plain text as UTF-8.",
	},
}

func fromMissingKeywords(industry string, missing []Keyword) []Recommendation {
	terms := topKeywords(missing)
	if len(terms) == 0 {
		return nil
	}
	target := strings.TrimSpace(industry)
	if target == "" {
		target = "this industry"
	}
	return []Recommendation{
		{
			ID:       "ATS_MISSING_KEYWORDS",
			Category: "ATS",
			Severity: "warning",
			Title:    "Add missing industry keywords",
			Why:      fmt.Sprintf("ATS filters for %s rank resumes by these terms.", target),
			Action:   "Work these keywords naturally into Skills and Experience bullets, most important first: " + strings.Join(terms, ", "),
			Impact:   "high",
		},
	}
}

// topKeywords returns unique terms ordered by weight, heaviest first.
func topKeywords(missing []Keyword) []string {
	items := make([]Keyword, 0, len(missing))
	seen := make(map[string]bool, len(missing))
	for _, k := range missing {
		term := strings.TrimSpace(k.Term)
		key := strings.ToLower(term)
		if term == "" || seen[key] {
			continue
		}
		seen[key] = true
		k.Term = term
		items = append(items, k)
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Weight != items[j].Weight {
			return items[i].Weight > items[j].Weight
		}
		return strings.ToLower(items[i].Term) < strings.ToLower(items[j].Term)
	})
	if len(items) > maxKeywordsListed {
		items = items[:maxKeywordsListed]
	}
	out := make([]string, 0, len(items))
	for _, k := range items {
		out = append(out, k.Term)
	}
	return out
}

// fromFormattingIssues emits one recommendation per issue code; repeated
// codes are folded into a single action.
func fromFormattingIssues(issues []Issue) []Recommendation {
	byCode := make(map[string][]Issue)
	order := make([]string, 0, len(issues))
	for _, issue := range issues {
		code := strings.TrimSpace(issue.Code)
		if code == "" {
			continue
		}
		if _, ok := byCode[code]; !ok {
			order = append(order, code)
		}
		byCode[code] = append(byCode[code], issue)
	}

	out := make([]Recommendation, 0, len(order))
	for _, code := range order {
		group := byCode[code]
		severity := group[0].Severity
		for _, issue := range group[1:] {
			if severityRank(issue.Severity) > severityRank(severity) {
				severity = issue.Severity
			}
		}
		a, ok := issueAdvice[code]
		if !ok {
			a = advice{category: "FORMATTING", title: "Fix " + strings.ToLower(strings.ReplaceAll(code, "_", " "))}
		}
		action := a.action
		if action == "" {
			messages := make([]string, 0, len(group))
			for _, issue := range group {
				messages = append(messages, strings.TrimSpace(issue.Message))
			}
			action = strings.Join(uniqueSortedStrings(messages), " ")
		}
		why := a.why
		if why == "" {
			why = strings.TrimSpace(group[0].Message)
		}
		out = append(out, Recommendation{
			ID:       "FORMAT_" + code,
			Category: a.category,
			Severity: severity,
			Title:    a.title,
			Why:      why,
			Action:   action,
			Impact:   impactForSeverity(severity),
		})
	}
	return out
}

func fromWeakCategories(categories []CategoryScore) []Recommendation {
	out := make([]Recommendation, 0, len(categories))
	for _, c := range categories {
		if c.WeightShare <= 0 || c.Score >= weakCategoryScore {
			continue
		}
		label := categoryLabel(c.Category)
		out = append(out, Recommendation{
			ID:       "CATEGORY_" + strings.ToUpper(slugify(c.Category)),
			Category: "SKILLS",
			Severity: "info",
			Title:    "Strengthen " + label,
			Why:      fmt.Sprintf("Only %.0f%% of the %s weight for this industry is covered; it makes up %.0f%% of the keyword model.", c.Score, label, c.WeightShare),
			Action:   fmt.Sprintf("Show %s with concrete examples in your experience bullets.", label),
			Impact:   "medium",
		})
	}
	return out
}

func categoryLabel(category string) string {
	switch category {
	case "skill":
		return "core skills"
	case "tool":
		return "tools and technologies"
	case "soft-skill":
		return "soft skills"
	default:
		return strings.ReplaceAll(category, "-", " ")
	}
}

func uniqueSortedStrings(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, trimmed)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}
