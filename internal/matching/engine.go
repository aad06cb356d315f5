// Package matching scores a normalized resume against an industry profile.
package matching

import (
	"fmt"
	"strings"

	"ats-checker/internal/keywords"
	"ats-checker/internal/normalize"
)

type MatchType string

const (
	MatchExact   MatchType = "exact"
	MatchSynonym MatchType = "synonym"
	MatchStem    MatchType = "stem"
)

// DefaultStemFactor is the share of a keyword's weight credited for a stem match.
const DefaultStemFactor = 0.6

// Policy holds the weight factor applied per match type.
type Policy struct {
	ExactFactor   float64
	SynonymFactor float64
	StemFactor    float64
}

func DefaultPolicy() Policy {
	return Policy{ExactFactor: 1, SynonymFactor: 1, StemFactor: DefaultStemFactor}
}

// Validate checks every factor is within (0, 1].
func (p Policy) Validate() error {
	for name, f := range map[string]float64{"exact": p.ExactFactor, "synonym": p.SynonymFactor, "stem": p.StemFactor} {
		if f <= 0 || f > 1 {
			return fmt.Errorf("matching: %s factor %.2f outside (0, 1]", name, f)
		}
	}
	return nil
}

func (p Policy) factor(t MatchType) float64 {
	switch t {
	case MatchExact:
		return p.ExactFactor
	case MatchSynonym:
		return p.SynonymFactor
	default:
		return p.StemFactor
	}
}

// MatchResult records how one keyword was found.
type MatchResult struct {
	Keyword      keywords.KeywordEntry `json:"keyword"`
	Type         MatchType             `json:"matchType"`
	MatchedTerm  string                `json:"matchedTerm"`
	Section      string                `json:"section"`
	Contribution float64               `json:"contribution"`
}

// Result lists matched keywords and missing keywords, both in profile order.
type Result struct {
	Matches []MatchResult
	Missing []keywords.KeywordEntry
}

// Engine is stateless apart from its policy and safe for concurrent use.
type Engine struct {
	policy Policy
}

func NewEngine(p Policy) *Engine {
	return &Engine{policy: p}
}

func (e *Engine) Policy() Policy { return e.policy }

type indexedSection struct {
	name    string
	tokens  []string
	cased   []string
	stemmed []string
}

type variant struct {
	text    string
	tokens  []string
	cased   []string
	stemmed []string
}

// Match looks up every profile keyword in the document. The strongest match
// type wins (exact, then synonym, then stem); the reported section is the
// first one in document order where that type occurs.
func (e *Engine) Match(doc normalize.Document, profile keywords.IndustryProfile) Result {
	sections := make([]indexedSection, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		tokens := Tokenize(s.Text)
		sections = append(sections, indexedSection{name: s.Name, tokens: tokens, cased: tokenizeCased(s.Text), stemmed: stemTokens(tokens)})
	}

	res := Result{
		Matches: make([]MatchResult, 0, len(profile.Keywords)),
		Missing: make([]keywords.KeywordEntry, 0),
	}
	for _, kw := range profile.Keywords {
		if m, ok := e.matchKeyword(kw, sections); ok {
			res.Matches = append(res.Matches, m)
			continue
		}
		res.Missing = append(res.Missing, copyEntry(kw))
	}
	return res
}

func (e *Engine) matchKeyword(kw keywords.KeywordEntry, sections []indexedSection) (MatchResult, bool) {
	term := newVariant(kw.Term)
	synonyms := make([]variant, 0, len(kw.Synonyms))
	for _, s := range kw.Synonyms {
		synonyms = append(synonyms, newVariant(s))
	}
	all := append([]variant{term}, synonyms...)

	found := func(t MatchType, section, matched string) (MatchResult, bool) {
		return MatchResult{
			Keyword:      copyEntry(kw),
			Type:         t,
			MatchedTerm:  matched,
			Section:      section,
			Contribution: kw.Weight * e.policy.factor(t),
		}, true
	}

	if kw.CaseSensitive {
		return e.matchCased(term, synonyms, sections, found)
	}
	for _, s := range sections {
		if indexOf(s.tokens, term.tokens) >= 0 {
			return found(MatchExact, s.name, term.text)
		}
	}
	for _, s := range sections {
		for _, v := range synonyms {
			if indexOf(s.tokens, v.tokens) >= 0 {
				return found(MatchSynonym, s.name, v.text)
			}
		}
	}
	for _, s := range sections {
		for _, v := range all {
			if i := indexOf(s.stemmed, v.stemmed); i >= 0 {
				return found(MatchStem, s.name, strings.Join(s.tokens[i:i+len(v.stemmed)], " "))
			}
		}
	}
	return MatchResult{}, false
}

// matchCased compares original spellings only, so "Go" does not match the
// verb in "go-to person". Stems are not consulted.
func (e *Engine) matchCased(term variant, synonyms []variant, sections []indexedSection, found func(MatchType, string, string) (MatchResult, bool)) (MatchResult, bool) {
	for _, s := range sections {
		if indexOf(s.cased, term.cased) >= 0 {
			return found(MatchExact, s.name, strings.Join(term.cased, " "))
		}
	}
	for _, s := range sections {
		for _, v := range synonyms {
			if indexOf(s.cased, v.cased) >= 0 {
				return found(MatchSynonym, s.name, strings.Join(v.cased, " "))
			}
		}
	}
	return MatchResult{}, false
}

func newVariant(text string) variant {
	tokens := Tokenize(text)
	return variant{
		text:    strings.ToLower(strings.TrimSpace(text)),
		tokens:  tokens,
		cased:   tokenizeCased(text),
		stemmed: stemTokens(tokens),
	}
}

func copyEntry(k keywords.KeywordEntry) keywords.KeywordEntry {
	k.Synonyms = append([]string(nil), k.Synonyms...)
	return k
}
