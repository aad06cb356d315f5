// Package enhance asks an optional language model for rewrite suggestions.
// The deterministic analysis never depends on it: every failure mode yields
// an absent result with a status instead of an error.
package enhance

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"ats-checker/internal/keywords"
	"ats-checker/internal/matching"
	"ats-checker/internal/normalize"
	"ats-checker/internal/scoring"
)

// ErrAIServiceUnavailable reports that no provider is configured or the
// provider refused the request.
var ErrAIServiceUnavailable = errors.New("ai service unavailable")

const (
	DefaultTimeout = 15 * time.Second

	maxExcerptRunes = 6000
	maxSuggestions  = 10
)

// Status values reported alongside the suggestions.
const (
	StatusOK          = "ok"
	StatusSkipped     = "skipped"
	StatusUnavailable = "unavailable"
	StatusTimeout     = "timeout"
	StatusError       = "error"
	StatusMalformed   = "malformed"
)

// SuggestionProvider performs one model call and returns the raw JSON answer.
type SuggestionProvider interface {
	Name() string
	Suggest(ctx context.Context, req Request) ([]byte, error)
}

// Request is the payload sent to the provider.
type Request struct {
	Industry string            `json:"industry"`
	Excerpt  string            `json:"excerpt"`
	Score    scoring.Breakdown `json:"score"`
	Matched  []string          `json:"matched"`
	Missing  []string          `json:"missing"`
}

// Outcome is nil Suggestions plus a non-ok Status whenever enhancement did
// not produce a usable answer.
type Outcome struct {
	Suggestions []string
	Status      string
	Provider    string
	Err         error
}

// Skipped is the outcome for callers that opted out of enhancement.
func Skipped() Outcome {
	return Outcome{Status: StatusSkipped}
}

// NewRequest builds the outbound payload from an analysis result.
func NewRequest(industry string, doc normalize.Document, b scoring.Breakdown, matches []matching.MatchResult, missing []keywords.KeywordEntry) Request {
	req := Request{
		Industry: industry,
		Excerpt:  excerpt(doc.Text, maxExcerptRunes),
		Score:    b,
		Matched:  make([]string, 0, len(matches)),
		Missing:  make([]string, 0, len(missing)),
	}
	for _, m := range matches {
		req.Matched = append(req.Matched, m.Keyword.Term)
	}
	for _, k := range missing {
		req.Missing = append(req.Missing, k.Term)
	}
	return req
}

func excerpt(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	n := 0
	for i := range text {
		if n == limit {
			return text[:i]
		}
		n++
	}
	return text
}

// Enhancer bounds a single provider call with a timeout.
type Enhancer struct {
	provider SuggestionProvider
	timeout  time.Duration
}

// New returns an Enhancer. A nil provider makes every call unavailable.
func New(provider SuggestionProvider, timeout time.Duration) *Enhancer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Enhancer{provider: provider, timeout: timeout}
}

// Enabled reports whether a provider is configured.
func (e *Enhancer) Enabled() bool {
	return e != nil && e.provider != nil
}

// Enhance makes exactly one provider call and never retries. It returns
// within the configured timeout even if the provider ignores cancellation.
func (e *Enhancer) Enhance(ctx context.Context, req Request) Outcome {
	if !e.Enabled() {
		return Outcome{Status: StatusUnavailable, Err: ErrAIServiceUnavailable}
	}
	name := e.provider.Name()

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	type answer struct {
		raw []byte
		err error
	}
	done := make(chan answer, 1)
	go func() {
		raw, err := e.provider.Suggest(ctx, req)
		done <- answer{raw: raw, err: err}
	}()

	var got answer
	select {
	case <-ctx.Done():
		// A caller that went away is a failed call, not a slow provider.
		status := StatusError
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			status = StatusTimeout
		}
		return Outcome{Status: status, Provider: name, Err: ctx.Err()}
	case got = <-done:
	}

	if got.err != nil {
		status := StatusError
		switch {
		case errors.Is(got.err, ErrAIServiceUnavailable):
			status = StatusUnavailable
		case errors.Is(got.err, context.DeadlineExceeded):
			status = StatusTimeout
		}
		return Outcome{Status: status, Provider: name, Err: got.err}
	}

	suggestions, err := ParseSuggestions(got.raw)
	if err != nil {
		return Outcome{Status: StatusMalformed, Provider: name, Err: err}
	}
	return Outcome{Suggestions: suggestions, Status: StatusOK, Provider: name}
}
