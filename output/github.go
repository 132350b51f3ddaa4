package output

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bitrise-steplib/steps-qa-ci-reporter/report"
	"github.com/bitrise-steplib/steps-qa-ci-reporter/testrunner"
)

const (
	stepSummaryEnvKey = "GITHUB_STEP_SUMMARY"
	outputEnvKey      = "GITHUB_OUTPUT"

	maxSummaryStdout = 2000
	maxSummaryStderr = 1000
)

func (e exporter) ExportExecutionSummary(runResult testrunner.Result) error {
	status := "✅ PASSED"
	if runResult.ExitCode != 0 {
		status = "❌ FAILED"
	}

	resultsPath := runResult.ResultsPath
	if resultsPath == "" {
		resultsPath = "Not found"
	}

	var b strings.Builder
	b.WriteString("## 🧪 Test Execution Summary\n\n")
	b.WriteString("| Status | Duration | Exit Code | Results File |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	fmt.Fprintf(&b, "| %s | %ds | %d | %s |\n\n", status, runResult.DurationSeconds, runResult.ExitCode, resultsPath)

	if runResult.Stdout != "" {
		writeDetails(&b, "📝 Test Output", tail(runResult.Stdout, maxSummaryStdout))
	}
	if runResult.Stderr != "" && runResult.ExitCode != 0 {
		writeDetails(&b, "⚠️ Error Output", tail(runResult.Stderr, maxSummaryStderr))
	}

	return e.appendStepSummary(b.String())
}

func (e exporter) ExportJobSummary(rep report.Report) error {
	summary := rep.Summary

	var b strings.Builder
	fmt.Fprintf(&b, "# %s %s\n\n", report.StatusIcon(rep.IsPassed()), rep.Title)
	b.WriteString("| Total Tests | Passed | Failed | Skipped | Duration |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d | %ss |\n\n", summary.Total, summary.Passed, summary.Failed, summary.Skipped, formatSeconds(summary.Duration))
	b.WriteString(rep.Markdown)
	b.WriteString("\n")

	return e.appendStepSummary(b.String())
}

func (e exporter) ExportFailureSummary(reason error) error {
	content := fmt.Sprintf("# ❌ QA CI Reporter Failed\n\n```text\n%s\n```\n", reason)
	return e.appendStepSummary(content)
}

func (e exporter) ExportGitHubOutputs(rep report.Report) error {
	pth := e.envRepository.Get(outputEnvKey)
	if pth == "" {
		return nil
	}

	summary := rep.Summary
	outputs := []struct {
		key   string
		value string
	}{
		{"test-status", string(summary.Status)},
		{"total-tests", strconv.Itoa(summary.Total)},
		{"passed-tests", strconv.Itoa(summary.Passed)},
		{"failed-tests", strconv.Itoa(summary.Failed)},
		{"skipped-tests", strconv.Itoa(summary.Skipped)},
		{"test-duration", formatSeconds(summary.Duration)},
		{"report-markdown", rep.Markdown},
		{"report-html", rep.HTML},
	}

	var b strings.Builder
	for _, output := range outputs {
		if !strings.ContainsAny(output.value, "\r\n") {
			fmt.Fprintf(&b, "%s=%s\n", output.key, output.value)
			continue
		}

		delimiter, err := newDelimiter()
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, "%s<<%s\n%s\n%s\n", output.key, delimiter, output.value, delimiter)
	}

	if err := appendToFile(pth, b.String()); err != nil {
		return fmt.Errorf("failed to write GitHub outputs: %w", err)
	}

	e.logger.Debugf("GitHub outputs written to %s", pth)

	return nil
}

func (e exporter) appendStepSummary(content string) error {
	pth := e.envRepository.Get(stepSummaryEnvKey)
	if pth == "" {
		e.logger.Debugf("%s is not set, skipping job summary", stepSummaryEnvKey)
		return nil
	}

	if err := appendToFile(pth, content); err != nil {
		return fmt.Errorf("failed to write job summary: %w", err)
	}

	return nil
}

func writeDetails(b *strings.Builder, title, content string) {
	fmt.Fprintf(b, "<details><summary>%s</summary>\n\n```\n%s\n```\n\n</details>\n\n", title, content)
}

func appendToFile(pth, content string) error {
	f, err := os.OpenFile(pth, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

func newDelimiter() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate output delimiter: %w", err)
	}
	return "ghadelimiter_" + hex.EncodeToString(b), nil
}

// tail returns the last n characters of s.
func tail(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}
