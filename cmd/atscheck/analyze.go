package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ats-checker/internal/analysis"
	"ats-checker/internal/bootstrap"
	"ats-checker/internal/shared/config"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a resume file and print the report as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

var (
	analyzeIndustry string
	analyzeWithAI   bool
	analyzeOutput   string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeIndustry, "industry", "i", "", "Industry profile to score against (defaults to the generic profile)")
	analyzeCmd.Flags().BoolVar(&analyzeWithAI, "ai", false, "Request AI suggestions from the configured provider")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "out", "o", "", "Write the report to this file instead of stdout")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	ctx := cmd.Context()
	app, err := bootstrap.Build(ctx, config.Load())
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer app.Close()

	rep, err := app.Service.Analyze(ctx, analysis.Request{
		Data:     data,
		FileName: filepath.Base(path),
		Industry: analyzeIndustry,
		SkipAI:   !analyzeWithAI,
	})
	if err != nil {
		_, code, message := analysis.Classify(err)
		return fmt.Errorf("%s: %s", code, message)
	}

	out, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	out = append(out, '\n')

	if analyzeOutput == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	if err := os.WriteFile(analyzeOutput, out, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s (overall %d)\n", analyzeOutput, rep.Score.Overall)
	return nil
}
