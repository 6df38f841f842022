// Package analyze builds a best-effort failure summary for a job run by
// combining test-report artifacts with the console log. Partial results are
// expected: every lookup failure is swallowed and reported only as an
// absent field.
package analyze

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/codewandler/gocd-mcp/internal/gocd"
	"github.com/codewandler/gocd-mcp/internal/junit"
)

// reportPaths are the conventional JUnit report locations, tried in order.
// The first artifact that fetches and parses successfully wins.
var reportPaths = []string{
	"testoutput/junit.xml",
	"test-results/junit.xml",
	"test-reports/junit.xml",
	"target/surefire-reports/TEST-results.xml",
	"build/test-results/test/results.xml",
	"test-results/results.xml",
}

// errorMarkers flag console lines worth surfacing
var errorMarkers = []string{"error", "exception", "failed", "failure", "fatal"}

// maxConsoleErrors caps the extracted console lines
const maxConsoleErrors = 50

// Result is the aggregated failure analysis. TestFailures and ConsoleErrors
// are nil when their data source could not be located; the summary string
// distinguishes "nothing found" from "found but clean".
type Result struct {
	TestFailures  *junit.TestResults `json:"testFailures,omitempty"`
	ConsoleErrors []string           `json:"consoleErrors,omitempty"`
	Summary       string             `json:"summary"`
}

// Analyzer orchestrates the fallible lookups against the GoCD files API
type Analyzer struct {
	client *gocd.Client
	logger *slog.Logger
}

// New creates an Analyzer. If logger is nil, slog.Default() is used.
func New(client *gocd.Client, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{client: client, logger: logger}
}

// AnalyzeFailures inspects a job run for test reports and console errors.
// Both lookups are attempted regardless of whether the other succeeded; the
// method itself never fails.
func (a *Analyzer) AnalyzeFailures(ctx context.Context, token, pipeline string, pipelineCounter int, stage string, stageCounter int, job string) *Result {
	result := &Result{}

	result.TestFailures = a.findTestReport(ctx, token, pipeline, pipelineCounter, stage, stageCounter, job)

	consoleLog, consoleFound := a.fetchConsoleLog(ctx, token, pipeline, pipelineCounter, stage, stageCounter, job)
	if consoleFound {
		result.ConsoleErrors = extractErrorLines(consoleLog)
	}

	result.Summary = summarize(result, consoleFound, pipeline, pipelineCounter, stage, stageCounter, job)
	return result
}

// findTestReport tries the conventional report paths in order, swallowing
// every fetch or parse failure, and returns the first parsed document.
func (a *Analyzer) findTestReport(ctx context.Context, token, pipeline string, pipelineCounter int, stage string, stageCounter int, job string) *junit.TestResults {
	for _, path := range reportPaths {
		content, err := a.client.Artifact(ctx, token, pipeline, pipelineCounter, stage, stageCounter, job, path)
		if err != nil {
			a.logger.Debug("test report candidate not fetched", "path", path, "err", err)
			continue
		}

		results, err := junit.Parse(content)
		if err != nil {
			a.logger.Debug("test report candidate not parseable", "path", path, "err", err)
			continue
		}

		a.logger.Debug("test report found", "path", path, "tests", results.Summary.TotalTests)
		return results
	}
	return nil
}

func (a *Analyzer) fetchConsoleLog(ctx context.Context, token, pipeline string, pipelineCounter int, stage string, stageCounter int, job string) (string, bool) {
	consoleLog, err := a.client.ConsoleLog(ctx, token, pipeline, pipelineCounter, stage, stageCounter, job)
	if err != nil {
		a.logger.Debug("console log not fetched", "err", err)
		return "", false
	}
	return consoleLog, true
}

// extractErrorLines scans the console output for lines containing an error
// marker, capped at maxConsoleErrors.
func extractErrorLines(consoleLog string) []string {
	var lines []string
	for _, line := range strings.Split(consoleLog, "\n") {
		lower := strings.ToLower(line)
		for _, marker := range errorMarkers {
			if strings.Contains(lower, marker) {
				lines = append(lines, strings.TrimRight(line, "\r"))
				break
			}
		}
		if len(lines) >= maxConsoleErrors {
			break
		}
	}
	return lines
}

func summarize(result *Result, consoleFound bool, pipeline string, pipelineCounter int, stage string, stageCounter int, job string) string {
	jobRef := fmt.Sprintf("%s/%d/%s/%d/%s", pipeline, pipelineCounter, stage, stageCounter, job)

	if result.TestFailures == nil && !consoleFound {
		return fmt.Sprintf("No test reports or logs found for %s", jobRef)
	}

	var parts []string

	if result.TestFailures != nil {
		s := result.TestFailures.Summary
		if len(result.TestFailures.FailedTests) > 0 {
			parts = append(parts, fmt.Sprintf("test report: %d of %d tests failed",
				len(result.TestFailures.FailedTests), s.TotalTests))
		} else {
			parts = append(parts, fmt.Sprintf("test report: all %d tests passed", s.TotalTests))
		}
	} else {
		parts = append(parts, "no test report located")
	}

	if consoleFound {
		if len(result.ConsoleErrors) > 0 {
			parts = append(parts, fmt.Sprintf("console log: %d suspicious lines", len(result.ConsoleErrors)))
		} else {
			parts = append(parts, "console log: no error lines")
		}
	} else {
		parts = append(parts, "no console log located")
	}

	return fmt.Sprintf("Analysis of %s: %s", jobRef, strings.Join(parts, "; "))
}
