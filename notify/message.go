package notify

import (
	"fmt"
	"strings"

	"github.com/bitrise-steplib/steps-qa-ci-reporter/report"
)

const maxTelegramSuites = 5

// ChatMessage renders the chat (slack and console) message of a report.
func ChatMessage(rep report.Report) string {
	var b strings.Builder

	writeMessageHeader(&b, rep)
	fmt.Fprintf(&b, "🔗 *View Details:* %s\n", rep.Metadata.ActionURL)

	if len(rep.Suites) > 0 {
		b.WriteString("\n📋 *Test Suites:*\n")
		for _, suite := range rep.Suites {
			fmt.Fprintf(&b, "%s %s: %d/%d passed", report.StatusIcon(suite.IsPassing()), suite.Name, suite.Passed(), suite.Tests)
			if suite.Failures > 0 {
				fmt.Fprintf(&b, ", %d failed", suite.Failures)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// TelegramMessage renders the telegram message of a report, suites are listed only for small runs.
func TelegramMessage(rep report.Report) string {
	var b strings.Builder

	writeMessageHeader(&b, rep)
	fmt.Fprintf(&b, "🔗 [View Details](%s)\n", rep.Metadata.ActionURL)

	if len(rep.Suites) > 0 && len(rep.Suites) <= maxTelegramSuites {
		b.WriteString("\n📋 *Test Suites:*\n")
		for _, suite := range rep.Suites {
			fmt.Fprintf(&b, "%s %s: %d/%d passed\n", report.StatusIcon(suite.IsPassing()), suite.Name, suite.Passed(), suite.Tests)
		}
	}

	return b.String()
}

// EmailSubject ...
func EmailSubject(rep report.Report) string {
	return fmt.Sprintf("%s %s - %s", report.StatusIcon(rep.IsPassed()), rep.Title, rep.Metadata.Repository)
}

func writeMessageHeader(b *strings.Builder, rep report.Report) {
	summary := rep.Summary

	fmt.Fprintf(b, "🧪 *%s* - %s\n\n", rep.Title, rep.Metadata.Branch)
	fmt.Fprintf(b, "%s *Status: %s*\n", report.StatusIcon(rep.IsPassed()), report.StatusText(rep.IsPassed()))
	fmt.Fprintf(b, "📊 *Results:* %d passed", summary.Passed)
	if summary.Failed > 0 {
		fmt.Fprintf(b, ", %d failed", summary.Failed)
	}
	if summary.Skipped > 0 {
		fmt.Fprintf(b, ", %d skipped", summary.Skipped)
	}
	fmt.Fprintf(b, "\n⏱️ *Duration:* %s\n", report.FormatDuration(summary.Duration))
}
