package enhance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"ats-checker/internal/keywords"
	"ats-checker/internal/matching"
	"ats-checker/internal/normalize"
	"ats-checker/internal/scoring"
)

type stubProvider struct {
	raw   string
	err   error
	delay time.Duration
	calls int
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Suggest(ctx context.Context, req Request) ([]byte, error) {
	s.calls++
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.err != nil {
		return nil, s.err
	}
	return []byte(s.raw), nil
}

func TestEnhanceOK(t *testing.T) {
	p := &stubProvider{raw: "```json\n{\"suggestions\": [\"Add Kubernetes to skills\", \"  \", \"Quantify uptime\"]}\n```"}
	out := New(p, time.Second).Enhance(context.Background(), Request{Industry: "IT/Software"})
	if out.Status != StatusOK {
		t.Fatalf("expected ok, got %q (%v)", out.Status, out.Err)
	}
	if len(out.Suggestions) != 2 || out.Suggestions[0] != "Add Kubernetes to skills" {
		t.Fatalf("unexpected suggestions %v", out.Suggestions)
	}
	if p.calls != 1 {
		t.Fatalf("expected exactly one provider call, got %d", p.calls)
	}
}

func TestEnhanceTimeoutReturnsWithinBound(t *testing.T) {
	p := &stubProvider{raw: `{"suggestions":["late"]}`, delay: 500 * time.Millisecond}
	start := time.Now()
	out := New(p, 50*time.Millisecond).Enhance(context.Background(), Request{})
	elapsed := time.Since(start)

	if out.Status != StatusTimeout || out.Suggestions != nil {
		t.Fatalf("expected absent timeout outcome, got %+v", out)
	}
	if elapsed > 300*time.Millisecond {
		t.Fatalf("expected return near the timeout, took %s", elapsed)
	}
}

func TestEnhanceCallerCancellationIsNotATimeout(t *testing.T) {
	p := &stubProvider{raw: `{"suggestions":["late"]}`, delay: 500 * time.Millisecond}
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	out := New(p, 5*time.Second).Enhance(ctx, Request{})
	if out.Status != StatusError {
		t.Fatalf("expected %q for a cancelled caller, got %q", StatusError, out.Status)
	}
	if !errors.Is(out.Err, context.Canceled) || out.Suggestions != nil {
		t.Fatalf("expected canceled error and no suggestions, got %+v", out)
	}
}

func TestEnhanceParentDeadlineIsATimeout(t *testing.T) {
	p := &stubProvider{raw: `{"suggestions":["late"]}`, delay: 500 * time.Millisecond}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	out := New(p, 5*time.Second).Enhance(ctx, Request{})
	if out.Status != StatusTimeout || !errors.Is(out.Err, context.DeadlineExceeded) {
		t.Fatalf("expected timeout, got %+v", out)
	}
}

func TestEnhanceFailureStatuses(t *testing.T) {
	cases := []struct {
		name string
		p    *stubProvider
		want string
	}{
		{name: "unavailable", p: &stubProvider{err: fmt.Errorf("openai: %w", ErrAIServiceUnavailable)}, want: StatusUnavailable},
		{name: "error", p: &stubProvider{err: errors.New("boom")}, want: StatusError},
		{name: "deadline", p: &stubProvider{err: context.DeadlineExceeded}, want: StatusTimeout},
		{name: "not json", p: &stubProvider{raw: "sure, here you go"}, want: StatusMalformed},
		{name: "wrong shape", p: &stubProvider{raw: `{"suggestions":"one"}`}, want: StatusMalformed},
		{name: "missing field", p: &stubProvider{raw: `{"tips":["a"]}`}, want: StatusMalformed},
		{name: "non string item", p: &stubProvider{raw: `{"suggestions":[1,2]}`}, want: StatusMalformed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := New(tc.p, time.Second).Enhance(context.Background(), Request{})
			if out.Status != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, out.Status)
			}
			if out.Suggestions != nil {
				t.Fatalf("expected nil suggestions, got %v", out.Suggestions)
			}
		})
	}
}

func TestEnhanceWithoutProvider(t *testing.T) {
	out := New(nil, 0).Enhance(context.Background(), Request{})
	if out.Status != StatusUnavailable || !errors.Is(out.Err, ErrAIServiceUnavailable) {
		t.Fatalf("expected unavailable, got %+v", out)
	}
	var e *Enhancer
	if e.Enabled() {
		t.Fatalf("nil enhancer must not be enabled")
	}
}

func TestParseSuggestionsCapsAtTen(t *testing.T) {
	items := make([]string, 0, 14)
	for i := 0; i < 14; i++ {
		items = append(items, fmt.Sprintf("%q", fmt.Sprintf("tip %d", i)))
	}
	raw := `{"suggestions":[` + strings.Join(items, ",") + `]}`
	got, err := ParseSuggestions([]byte(raw))
	if err != nil {
		t.Fatalf("ParseSuggestions: %v", err)
	}
	if len(got) != 10 || got[9] != "tip 9" {
		t.Fatalf("expected first ten tips, got %v", got)
	}
}

func TestNewRequestTruncatesExcerpt(t *testing.T) {
	text := strings.Repeat("é", 7000)
	doc := normalize.Document{Text: text}
	matches := []matching.MatchResult{{Keyword: keywords.KeywordEntry{Term: "Python"}}}
	missing := []keywords.KeywordEntry{{Term: "Kubernetes"}}

	req := NewRequest("IT/Software", doc, scoring.Breakdown{Overall: 83}, matches, missing)
	if n := len([]rune(req.Excerpt)); n != 6000 {
		t.Fatalf("expected 6000 runes, got %d", n)
	}
	if len(req.Matched) != 1 || req.Matched[0] != "Python" || req.Missing[0] != "Kubernetes" {
		t.Fatalf("unexpected terms %+v", req)
	}

	_, user := Prompt(req)
	if !strings.Contains(user, "IT/Software") || !strings.Contains(user, "Kubernetes") {
		t.Fatalf("prompt missing industry or keywords")
	}
}
