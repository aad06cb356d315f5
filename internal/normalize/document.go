package normalize

import "ats-checker/internal/extract"

// Canonical section names.
const (
	SectionPreamble       = "preamble"
	SectionUnsegmented    = "unsegmented"
	SectionContact        = "contact"
	SectionSummary        = "summary"
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionSkills         = "skills"
	SectionProjects       = "projects"
	SectionCertifications = "certifications"
	SectionAwards         = "awards"
	SectionPublications   = "publications"
	SectionLanguages      = "languages"
	SectionVolunteer      = "volunteer"
	SectionInterests      = "interests"
	SectionReferences     = "references"
)

// Section is a run of normalized lines under one detected header.
type Section struct {
	Name   string `json:"name"`
	Header string `json:"header,omitempty"`
	Text   string `json:"text"`
}

// Document is the normalized form of an extracted resume. When no header is
// found, Segmented is false and Sections holds a single unsegmented section
// with the whole text.
type Document struct {
	Text      string
	Sections  []Section
	Segmented bool
	Words     int
	Kind      extract.Kind
	Warnings  []extract.Warning
}

// Section returns the section with the given canonical name.
func (d Document) Section(name string) (Section, bool) {
	for _, s := range d.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// Has reports whether a non-empty section with the given name was detected.
func (d Document) Has(name string) bool {
	s, ok := d.Section(name)
	return ok && s.Text != ""
}

// SectionNames lists section names in document order.
func (d Document) SectionNames() []string {
	names := make([]string, 0, len(d.Sections))
	for _, s := range d.Sections {
		names = append(names, s.Name)
	}
	return names
}

// HasWarning reports whether the extractor raised the given warning code.
func (d Document) HasWarning(code string) bool {
	for _, w := range d.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}
