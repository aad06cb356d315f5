package keywords

import "strings"

// Category groups keywords for the per-category score breakdown.
type Category string

const (
	CategorySkill     Category = "skill"
	CategoryTool      Category = "tool"
	CategorySoftSkill Category = "soft-skill"
)

// Categories lists categories in report order.
var Categories = []Category{CategorySkill, CategoryTool, CategorySoftSkill}

// KeywordEntry is one weighted term of an industry profile. CaseSensitive
// entries match only their exact spelling as a whole word and never by
// stem; it is meant for terms that collide with plain English ("Go").
type KeywordEntry struct {
	Term          string   `yaml:"term" json:"term" validate:"required"`
	Synonyms      []string `yaml:"synonyms,omitempty" json:"synonyms,omitempty" validate:"dive,required"`
	Weight        float64  `yaml:"weight" json:"weight" validate:"gt=0"`
	Category      Category `yaml:"category" json:"category" validate:"oneof=skill tool soft-skill"`
	CaseSensitive bool     `yaml:"case_sensitive,omitempty" json:"caseSensitive,omitempty"`
}

// IndustryProfile is the keyword model for one industry.
type IndustryProfile struct {
	Name             string         `yaml:"name" json:"name" validate:"required"`
	Aliases          []string       `yaml:"aliases,omitempty" json:"aliases,omitempty" validate:"dive,required"`
	RequiredSections []string       `yaml:"required_sections" json:"requiredSections" validate:"dive,oneof=contact summary experience education skills projects certifications awards publications languages volunteer interests references"`
	Keywords         []KeywordEntry `yaml:"keywords" json:"keywords" validate:"min=1,dive"`
}

// TotalWeight sums the weights of all keywords in the profile.
func (p IndustryProfile) TotalWeight() float64 {
	total := 0.0
	for _, k := range p.Keywords {
		total += k.Weight
	}
	return total
}

func (p IndustryProfile) clone() IndustryProfile {
	out := p
	out.Aliases = append([]string(nil), p.Aliases...)
	out.RequiredSections = append([]string(nil), p.RequiredSections...)
	out.Keywords = make([]KeywordEntry, len(p.Keywords))
	for i, k := range p.Keywords {
		k.Synonyms = append([]string(nil), k.Synonyms...)
		out.Keywords[i] = k
	}
	return out
}

// Catalog is the versioned set of industry profiles.
type Catalog struct {
	Version  string            `yaml:"version" json:"version" validate:"required"`
	Default  string            `yaml:"default" json:"default" validate:"required"`
	Profiles []IndustryProfile `yaml:"profiles" json:"profiles" validate:"min=1,dive"`
}

// lookupKey folds an industry name or alias for matching: case, spaces and
// punctuation are ignored.
func lookupKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
