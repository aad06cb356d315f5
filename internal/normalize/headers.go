package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxHeaderWords = 5
	maxHeaderRunes = 40
)

var sectionVocabulary = buildVocabulary(map[string][]string{
	SectionContact: {
		"contact", "contacts", "contact information", "contact info", "contact details",
		"personal information", "personal details", "personal info",
	},
	SectionSummary: {
		"summary", "professional summary", "career summary", "executive summary",
		"summary of qualifications", "profile", "professional profile", "career profile",
		"objective", "career objective", "professional objective", "about", "about me", "overview",
	},
	SectionExperience: {
		"experience", "work experience", "professional experience", "relevant experience",
		"employment", "employment history", "work history", "career history",
		"professional background", "internships", "internship experience", "career",
	},
	SectionEducation: {
		"education", "educational background", "academic background", "academics",
		"education and training", "academic qualifications", "education and qualifications",
	},
	SectionSkills: {
		"skills", "technical skills", "core skills", "key skills", "skills summary",
		"skills and abilities", "core competencies", "competencies", "areas of expertise",
		"expertise", "technologies", "technical proficiencies", "tools", "tech stack",
	},
	SectionProjects: {
		"projects", "personal projects", "key projects", "academic projects", "selected projects",
	},
	SectionCertifications: {
		"certifications", "certification", "certificates", "licenses", "licenses and certifications",
		"certifications and licenses", "professional certifications", "training",
	},
	SectionAwards: {
		"awards", "honors", "honours", "achievements", "accomplishments",
		"awards and honors", "honors and awards",
	},
	SectionPublications: {
		"publications", "research", "papers", "presentations", "publications and presentations",
	},
	SectionLanguages: {
		"languages", "language skills", "spoken languages",
	},
	SectionVolunteer: {
		"volunteer", "volunteering", "volunteer experience", "volunteer work",
		"community service", "community involvement",
	},
	SectionInterests: {
		"interests", "hobbies", "hobbies and interests", "activities", "extracurricular activities",
	},
	SectionReferences: {
		"references", "referees",
	},
})

func buildVocabulary(in map[string][]string) map[string]string {
	out := make(map[string]string)
	for section, phrases := range in {
		for _, p := range phrases {
			out[headerKey(p)] = section
		}
	}
	return out
}

// headerKey lowercases, spells out "&" and drops everything except letters.
func headerKey(s string) string {
	s = strings.ReplaceAll(strings.ToLower(s), "&", " and ")
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// detectHeader reports the canonical section for a whole-line header. The
// second return value carries any inline content after a "Header:" prefix.
func detectHeader(line string) (section, rest string, ok bool) {
	if name, ok := headerLine(line); ok {
		return name, "", true
	}
	idx := strings.IndexByte(line, ':')
	if idx <= 0 || idx == len(line)-1 {
		return "", "", false
	}
	if name, ok := headerLine(line[:idx+1]); ok {
		return name, strings.TrimSpace(line[idx+1:]), true
	}
	return "", "", false
}

func headerLine(line string) (string, bool) {
	if utf8.RuneCountInString(line) > maxHeaderRunes {
		return "", false
	}
	trimmed := strings.TrimSpace(strings.TrimRight(line, ": "))
	colon := trimmed != strings.TrimSpace(line)
	words := strings.Fields(trimmed)
	if len(words) == 0 || len(words) > maxHeaderWords {
		return "", false
	}
	if !colon && !isAllCaps(trimmed) && !isTitleCase(words) {
		return "", false
	}
	name, ok := sectionVocabulary[headerKey(trimmed)]
	return name, ok
}

func isAllCaps(s string) bool {
	letters := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			if unicode.IsLower(r) {
				return false
			}
			letters++
		}
	}
	return letters > 0
}

var minorWords = map[string]bool{"and": true, "of": true, "&": true, "the": true, "in": true}

func isTitleCase(words []string) bool {
	for _, w := range words {
		if minorWords[w] {
			continue
		}
		first, _ := utf8.DecodeRuneInString(w)
		if unicode.IsLetter(first) && !unicode.IsUpper(first) {
			return false
		}
	}
	return true
}
