package analysis

import (
	"context"
	"strings"
	"testing"
	"time"

	"ats-checker/internal/audit"
	"ats-checker/internal/enhance"
	"ats-checker/internal/extract"
	"ats-checker/internal/keywords"
	"ats-checker/internal/matching"
	"ats-checker/internal/scoring"
)

const sampleResume = `Jane Doe
jane.doe@example.com | +1 555 123 4567

Summary
Backend engineer with eight years building cloud services in Python and Go.

Experience
Senior Engineer, Acme Corp, 2019 - 2024
Built Python services on AWS and cut p99 latency by 40%.
Moved deployments to Docker and Kubernetes with GitHub Actions.
Designed REST API endpoints backed by PostgreSQL for 2 million users.

Education
BSc Computer Science, State University, 2015

Skills
Python, Go, AWS, Docker, Kubernetes, SQL, Git, Agile
`

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type stubProvider struct {
	raw   string
	err   error
	delay time.Duration
}

func (s stubProvider) Name() string { return "stub" }

func (s stubProvider) Suggest(ctx context.Context, req enhance.Request) ([]byte, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.err != nil {
		return nil, s.err
	}
	return []byte(s.raw), nil
}

func newTestService(t *testing.T, enh *enhance.Enhancer) *Service {
	t.Helper()
	reg, err := keywords.LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded: %v", err)
	}
	return &Service{
		Extractor: extract.New(extract.DefaultMinWords),
		Registry:  reg,
		Matcher:   matching.NewEngine(matching.DefaultPolicy()),
		Auditor:   audit.New(audit.Config{}),
		Scoring:   scoring.DefaultPolicy(),
		Enhancer:  enh,
		MaxBytes:  5 << 20,
		Now:       func() time.Time { return fixedNow },
		NewID:     func() string { return "test-report" },
	}
}

func shortText(words int) string {
	return strings.TrimSpace(strings.Repeat("word ", words))
}
