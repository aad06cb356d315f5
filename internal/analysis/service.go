// Package analysis runs the resume pipeline: extract, normalize, match and
// audit in parallel, score, recommend, optionally enhance, then assemble.
package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"ats-checker/internal/audit"
	"ats-checker/internal/enhance"
	"ats-checker/internal/extract"
	"ats-checker/internal/keywords"
	"ats-checker/internal/matching"
	"ats-checker/internal/normalize"
	"ats-checker/internal/recommendations"
	"ats-checker/internal/report"
	"ats-checker/internal/scoring"
	"ats-checker/internal/shared/metrics"
	"ats-checker/internal/shared/telemetry"
	"ats-checker/internal/shared/util"
)

// Service holds the immutable collaborators of the pipeline. It keeps no
// per-request state and is safe for concurrent use.
type Service struct {
	Extractor *extract.Extractor
	Registry  *keywords.Registry
	Matcher   *matching.Engine
	Auditor   *audit.Auditor
	Scoring   scoring.Policy
	Enhancer  *enhance.Enhancer
	MaxBytes  int64

	Now   func() time.Time
	NewID func() string
}

// Request is one document to analyse.
type Request struct {
	Data         []byte
	FileName     string
	DeclaredMIME string
	Industry     string
	SkipAI       bool
	RequestID    string
}

// Analyze returns the report for req or one of the fatal extraction errors.
func (s *Service) Analyze(ctx context.Context, req Request) (report.AnalysisReport, error) {
	start := time.Now()
	metrics.IncAnalysisStarted()

	rep, err := s.analyze(ctx, req)
	elapsed := metrics.SinceMillis(start)
	metrics.ObserveAnalysisDurationMs(elapsed)

	if err != nil {
		_, code, _ := Classify(err)
		metrics.IncAnalysisFailed(code)
		telemetry.Warn("analysis.failed", map[string]any{
			"code":       code,
			"err":        err.Error(),
			"size_bytes": len(req.Data),
			"industry":   req.Industry,
			"request_id": req.RequestID,
			"elapsed_ms": elapsed,
		})
		return report.AnalysisReport{}, err
	}

	metrics.IncAnalysisCompleted()
	telemetry.Info("analysis.completed", map[string]any{
		"analysis_id": rep.ID,
		"fingerprint": util.Fingerprint(req.Data),
		"industry":    rep.Industry,
		"overall":     rep.Score.Overall,
		"matched":     len(rep.MatchedKeywords),
		"missing":     len(rep.MissingKeywords),
		"issues":      len(rep.FormattingIssues),
		"ai_status":   rep.AIStatus,
		"request_id":  req.RequestID,
		"elapsed_ms":  elapsed,
	})
	return rep, nil
}

func (s *Service) analyze(ctx context.Context, req Request) (report.AnalysisReport, error) {
	if s.MaxBytes > 0 && int64(len(req.Data)) > s.MaxBytes {
		return report.AnalysisReport{}, fmt.Errorf("%w: %d bytes exceeds %d", ErrDocumentTooLarge, len(req.Data), s.MaxBytes)
	}

	res, err := s.Extractor.Extract(ctx, extract.RawDocument{
		Data:         req.Data,
		DeclaredMIME: req.DeclaredMIME,
		FileName:     req.FileName,
	})
	if err != nil {
		return report.AnalysisReport{}, err
	}
	doc := normalize.Normalize(res)

	profile, fellBack := s.Registry.Profile(req.Industry)
	if fellBack {
		metrics.IncIndustryFallback()
		telemetry.Info("industry.fallback", map[string]any{
			"requested":  req.Industry,
			"profile":    profile.Name,
			"request_id": req.RequestID,
		})
	}

	var (
		matched matching.Result
		issues  []audit.FormattingIssue
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		matched = s.Matcher.Match(doc, profile)
		return gctx.Err()
	})
	g.Go(func() error {
		issues = s.Auditor.Audit(doc, profile.RequiredSections)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return report.AnalysisReport{}, err
	}

	breakdown := scoring.Aggregate(s.Scoring, matched.Matches, matched.Missing, issues)
	recs := recommendations.GenerateRecommendations(recommendationInput(profile.Name, matched.Missing, issues, breakdown))

	outcome := enhance.Skipped()
	if !req.SkipAI {
		outcome = s.Enhancer.Enhance(ctx, enhance.NewRequest(profile.Name, doc, breakdown, matched.Matches, matched.Missing))
		s.recordAI(outcome, req.RequestID)
	}

	return report.Assemble(report.Input{
		ID:                s.newID(),
		FileName:          strings.TrimSpace(req.FileName),
		RequestedIndustry: req.Industry,
		Profile:           profile,
		FellBack:          fellBack,
		CatalogVersion:    s.Registry.Version(),
		Document:          doc,
		Breakdown:         breakdown,
		Matches:           matched.Matches,
		Missing:           matched.Missing,
		Issues:            issues,
		Recommendations:   recs,
		AI:                outcome,
		GeneratedAt:       s.now(),
	}), nil
}

func (s *Service) recordAI(outcome enhance.Outcome, requestID string) {
	metrics.IncAISuggestions(outcome.Status)
	if !s.Enhancer.Enabled() {
		return
	}
	fields := map[string]any{
		"provider":    outcome.Provider,
		"status":      outcome.Status,
		"suggestions": len(outcome.Suggestions),
		"request_id":  requestID,
	}
	if outcome.Err != nil {
		fields["err"] = outcome.Err.Error()
		telemetry.Warn("ai.suggestions", fields)
		return
	}
	telemetry.Info("ai.suggestions", fields)
}

func recommendationInput(industry string, missing []keywords.KeywordEntry, issues []audit.FormattingIssue, b scoring.Breakdown) recommendations.Input {
	in := recommendations.Input{
		Industry:         industry,
		MissingKeywords:  make([]recommendations.Keyword, 0, len(missing)),
		FormattingIssues: make([]recommendations.Issue, 0, len(issues)),
		Categories:       make([]recommendations.CategoryScore, 0, len(b.Categories)),
	}
	for _, k := range missing {
		in.MissingKeywords = append(in.MissingKeywords, recommendations.Keyword{Term: k.Term, Weight: k.Weight, Category: string(k.Category)})
	}
	for _, i := range issues {
		in.FormattingIssues = append(in.FormattingIssues, recommendations.Issue{Code: i.Code, Severity: string(i.Severity), Message: i.Message})
	}
	for _, c := range b.Categories {
		in.Categories = append(in.Categories, recommendations.CategoryScore{Category: string(c.Category), Score: c.Score, WeightShare: c.WeightShare})
	}
	return in
}

// Industries lists the loaded profiles for the industries endpoint.
func (s *Service) Industries() keywords.Catalog {
	return s.Registry.Catalog()
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}
