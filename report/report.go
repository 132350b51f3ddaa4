package report

import (
	"html"
	"html/template"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-qa-ci-reporter/results"
)

// DefaultTitle ...
const DefaultTitle = "Test Results Report"

// Report is the rendered outcome of a test run.
type Report struct {
	Title    string
	Summary  results.Summary
	Suites   []results.TestSuite
	Metadata Metadata
	Markdown string
	HTML     string
}

// IsPassed ...
func (r Report) IsPassed() bool {
	return r.Summary.Status == results.StatusPassed
}

// Generator ...
type Generator interface {
	Render(parsed results.ParsedResults, title string) Report
}

type generator struct {
	logger           log.Logger
	metadataProvider MetadataProvider
	templatePath     string
	readFile         func(name string) ([]byte, error)
}

// NewGenerator creates a generator, templatePath may be empty to always use the built-in HTML page.
func NewGenerator(logger log.Logger, metadataProvider MetadataProvider, templatePath string, readFile func(name string) ([]byte, error)) Generator {
	return generator{
		logger:           logger,
		metadataProvider: metadataProvider,
		templatePath:     templatePath,
		readFile:         readFile,
	}
}

// Render never fails: when the HTML template cannot be used the built-in page is rendered.
func (g generator) Render(parsed results.ParsedResults, title string) Report {
	g.logger.Infof("Generating test report")

	if title == "" {
		title = DefaultTitle
	}

	metadata := g.metadataProvider.Metadata()
	markdown := RenderMarkdown(title, parsed, metadata)
	htmlReport := g.renderHTML(title, parsed.Summary, metadata, markdown)

	g.logger.Donef("Generated report: %d tests, %d passed", parsed.Summary.Total, parsed.Summary.Passed)

	return Report{
		Title:    title,
		Summary:  parsed.Summary,
		Suites:   parsed.Suites,
		Metadata: metadata,
		Markdown: markdown,
		HTML:     htmlReport,
	}
}

func (g generator) renderHTML(title string, summary results.Summary, metadata Metadata, markdown string) string {
	content, err := MarkdownToHTML(markdown)
	if err != nil {
		g.logger.Warnf("Failed to convert the Markdown report to HTML: %s", err)
		content = "<pre>" + html.EscapeString(markdown) + "</pre>"
	}

	isPassed := summary.Status == results.StatusPassed
	data := templateData{
		Title:        title,
		Repository:   metadata.Repository,
		Branch:       metadata.Branch,
		Total:        summary.Total,
		Passed:       summary.Passed,
		Failed:       summary.Failed,
		Skipped:      summary.Skipped,
		Errors:       summary.Errors,
		Duration:     FormatDuration(summary.Duration),
		Timestamp:    metadata.Timestamp,
		ActionURL:    metadata.ActionURL,
		CommitSha:    metadata.CommitSha,
		CommitAuthor: metadata.CommitAuthor,
		Status:       StatusText(isPassed),
		IsPassed:     isPassed,
		Content:      template.HTML(content),
	}

	if g.templatePath != "" {
		htmlTemplate, err := g.readFile(g.templatePath)
		if err == nil {
			return substitute(string(htmlTemplate), data)
		}
		g.logger.Warnf("Could not load HTML template, using the built-in page: %s", err)
	}

	page, err := renderFallbackHTML(data)
	if err != nil {
		g.logger.Warnf("Failed to render the built-in HTML page: %s", err)
		return string(data.Content)
	}
	return page
}
