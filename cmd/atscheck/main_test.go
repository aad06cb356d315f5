package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const resumeText = `Jane Doe
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

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("AI_PROVIDER", "none")
	t.Setenv("OBJECT_STORE", "none")
	t.Setenv("KEYWORD_SOURCE", "embedded")

	analyzeIndustry, analyzeWithAI, analyzeOutput = "", false, ""
	industriesVerbose = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAnalyzeCommandPrintsReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	if err := os.WriteFile(path, []byte(resumeText), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := execute(t, "analyze", path, "--industry", "IT/Software")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var rep struct {
		Industry string `json:"industry"`
		AIStatus string `json:"aiStatus"`
		Score    struct {
			Overall int `json:"overall"`
		} `json:"score"`
	}
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if rep.Industry != "IT/Software" || rep.AIStatus != "skipped" {
		t.Fatalf("unexpected report %+v", rep)
	}
	if rep.Score.Overall <= 0 {
		t.Fatalf("expected a positive score")
	}
}

func TestAnalyzeCommandErrors(t *testing.T) {
	dir := t.TempDir()
	short := filepath.Join(dir, "short.txt")
	if err := os.WriteFile(short, []byte("too few words here"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cases := []struct {
		name string
		args []string
		want string
	}{
		{name: "missing argument", args: []string{"analyze"}, want: "accepts 1 arg"},
		{name: "missing file", args: []string{"analyze", filepath.Join(dir, "nope.pdf")}, want: "failed to read resume"},
		{name: "empty document", args: []string{"analyze", short}, want: "EMPTY_DOCUMENT"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, tc.args...)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestIndustriesCommand(t *testing.T) {
	out, err := execute(t, "industries", "--verbose")
	if err != nil {
		t.Fatalf("industries: %v", err)
	}
	for _, want := range []string{"IT/Software", "Generic", "python"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
