package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/bitrise-steplib/steps-qa-ci-reporter/results"
)

// StatusIcon ...
func StatusIcon(passed bool) string {
	if passed {
		return "✅"
	}
	return "❌"
}

// StatusText ...
func StatusText(passed bool) string {
	if passed {
		return "PASSED"
	}
	return "FAILED"
}

func percentage(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}

// RenderMarkdown renders the Markdown report.
//
// Every summary counter has its own table row, so the counters can be read back from the table.
func RenderMarkdown(title string, parsed results.ParsedResults, metadata Metadata) string {
	summary := parsed.Summary
	isPassed := summary.Status == results.StatusPassed

	var b strings.Builder

	fmt.Fprintf(&b, "# %s %s\n\n", StatusIcon(isPassed), title)

	fmt.Fprintf(&b, "**Repository:** %s  \n", metadata.Repository)
	fmt.Fprintf(&b, "**Branch:** %s  \n", metadata.Branch)
	fmt.Fprintf(&b, "**Commit:** %s (%s)  \n", metadata.CommitSha, metadata.CommitAuthor)
	fmt.Fprintf(&b, "**Status:** %s  \n", StatusText(isPassed))
	fmt.Fprintf(&b, "**Duration:** %s  \n", FormatDuration(summary.Duration))
	if parsed.Reporter != nil {
		fmt.Fprintf(&b, "**Reporter:** %s  \n", parsed.Reporter)
	}
	fmt.Fprintf(&b, "**Timestamp:** %s  \n\n", metadata.Timestamp)

	b.WriteString("## 📊 Summary\n\n")
	b.WriteString("| Metric | Count | Percentage |\n")
	b.WriteString("|--------|-------|------------|\n")
	fmt.Fprintf(&b, "| Total Tests | %d | 100%% |\n", summary.Total)
	fmt.Fprintf(&b, "| ✅ Passed | %d | %d%% |\n", summary.Passed, percentage(summary.Passed, summary.Total))
	fmt.Fprintf(&b, "| ❌ Failed | %d | %d%% |\n", summary.Failed, percentage(summary.Failed, summary.Total))
	fmt.Fprintf(&b, "| 💥 Errors | %d | %d%% |\n", summary.Errors, percentage(summary.Errors, summary.Total))
	fmt.Fprintf(&b, "| ⚠️ Skipped | %d | %d%% |\n", summary.Skipped, percentage(summary.Skipped, summary.Total))
	b.WriteString("\n")

	if len(parsed.Suites) > 0 {
		b.WriteString("## 📋 Test Suites\n\n")

		for _, suite := range parsed.Suites {
			fmt.Fprintf(&b, "### %s %s\n\n", StatusIcon(suite.IsPassing()), suite.Name)
			fmt.Fprintf(&b, "- **Tests:** %d\n", suite.Tests)
			fmt.Fprintf(&b, "- **Passed:** %d\n", suite.Passed())
			if suite.Failures > 0 {
				fmt.Fprintf(&b, "- **Failed:** %d\n", suite.Failures)
			}
			if suite.Errors > 0 {
				fmt.Fprintf(&b, "- **Errors:** %d\n", suite.Errors)
			}
			if suite.Skipped > 0 {
				fmt.Fprintf(&b, "- **Skipped:** %d\n", suite.Skipped)
			}
			fmt.Fprintf(&b, "- **Duration:** %.0fs\n\n", math.Round(suite.Time))
		}
	}

	failedTests := FailedTests(parsed.Suites)
	if (summary.Failed > 0 || summary.Errors > 0) && len(failedTests) > 0 {
		b.WriteString("## ❌ Failed Tests\n\n")

		for _, test := range failedTests {
			fmt.Fprintf(&b, "### %s\n\n", test.Name)

			detail := test.FailureDetail()
			if detail == nil {
				continue
			}
			if detail.Message != "" {
				fmt.Fprintf(&b, "**Error:** %s\n\n", detail.Message)
			}
			if detail.StackTrace != "" {
				fmt.Fprintf(&b, "**Stack Trace:**\n```\n%s\n```\n\n", detail.StackTrace)
			}
		}
	}

	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "**View Details:** [CI Run](%s)\n\n", metadata.ActionURL)
	fmt.Fprintf(&b, "Generated by QA CI Reporter on %s\n", metadata.Timestamp)

	return b.String()
}

// FailedTests collects the failed and errored cases of every suite.
func FailedTests(suites []results.TestSuite) []results.TestCase {
	var failed []results.TestCase
	for _, suite := range suites {
		for _, testCase := range suite.TestCases {
			if testCase.IsFailing() {
				failed = append(failed, testCase)
			}
		}
	}
	return failed
}
