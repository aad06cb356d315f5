// Package keywords holds the per-industry keyword models the matcher scores
// resumes against. A Registry is built once at startup and never mutated.
package keywords

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Registry resolves industry names to profiles. Safe for concurrent use.
type Registry struct {
	version  string
	fallback int
	profiles []IndustryProfile
	index    map[string]int
}

var validate = validator.New()

// NewRegistry validates the catalog and indexes its profiles by name and alias.
func NewRegistry(c Catalog) (*Registry, error) {
	if err := validate.Struct(c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	r := &Registry{
		version:  c.Version,
		fallback: -1,
		profiles: make([]IndustryProfile, 0, len(c.Profiles)),
		index:    make(map[string]int),
	}
	for i, p := range c.Profiles {
		if err := checkTerms(p); err != nil {
			return nil, err
		}
		r.profiles = append(r.profiles, p.clone())
		for _, name := range append([]string{p.Name}, p.Aliases...) {
			key := lookupKey(name)
			if key == "" {
				return nil, fmt.Errorf("%w: profile %q has an empty name or alias", ErrInvalidCatalog, p.Name)
			}
			if prev, dup := r.index[key]; dup && prev != i {
				return nil, fmt.Errorf("%w: %q is claimed by %q and %q", ErrInvalidCatalog, name, c.Profiles[prev].Name, p.Name)
			}
			r.index[key] = i
		}
	}

	idx, ok := r.index[lookupKey(c.Default)]
	if !ok {
		return nil, fmt.Errorf("%w: default profile %q not found", ErrInvalidCatalog, c.Default)
	}
	r.fallback = idx
	return r, nil
}

func checkTerms(p IndustryProfile) error {
	seen := make(map[string]bool, len(p.Keywords))
	for _, k := range p.Keywords {
		key := strings.ToLower(strings.TrimSpace(k.Term))
		if seen[key] {
			return fmt.Errorf("%w: profile %q lists %q twice", ErrInvalidCatalog, p.Name, k.Term)
		}
		seen[key] = true
	}
	return nil
}

// Profile returns the profile for industry. Unknown names, "Custom" and the
// empty string resolve to the default profile; the bool reports that.
func (r *Registry) Profile(industry string) (IndustryProfile, bool) {
	if idx, ok := r.index[lookupKey(industry)]; ok {
		return r.profiles[idx].clone(), false
	}
	return r.profiles[r.fallback].clone(), true
}

// Strict is Profile without the fallback.
func (r *Registry) Strict(industry string) (IndustryProfile, error) {
	idx, ok := r.index[lookupKey(industry)]
	if !ok {
		return IndustryProfile{}, fmt.Errorf("%w: %q", ErrInvalidIndustry, industry)
	}
	return r.profiles[idx].clone(), nil
}

// Profiles returns every profile in catalog order.
func (r *Registry) Profiles() []IndustryProfile {
	out := make([]IndustryProfile, len(r.profiles))
	for i, p := range r.profiles {
		out[i] = p.clone()
	}
	return out
}

func (r *Registry) Version() string { return r.version }

// Catalog rebuilds the catalog the registry was created from.
func (r *Registry) Catalog() Catalog {
	return Catalog{
		Version:  r.version,
		Default:  r.profiles[r.fallback].Name,
		Profiles: r.Profiles(),
	}
}
