package output

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bitrise-io/bitrise/configs"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-qa-ci-reporter/report"
	"github.com/bitrise-steplib/steps-qa-ci-reporter/results"
	"github.com/bitrise-steplib/steps-qa-ci-reporter/testaddon"
	"github.com/bitrise-steplib/steps-qa-ci-reporter/testrunner"
)

// Step output keys ...
const (
	TestStatusKey         = "QA_TEST_STATUS"
	TotalTestsKey         = "QA_TOTAL_TESTS"
	PassedTestsKey        = "QA_PASSED_TESTS"
	FailedTestsKey        = "QA_FAILED_TESTS"
	SkippedTestsKey       = "QA_SKIPPED_TESTS"
	TestDurationKey       = "QA_TEST_DURATION"
	ReportMarkdownKey     = "QA_REPORT_MARKDOWN"
	ReportMarkdownPathKey = "QA_REPORT_MARKDOWN_PATH"
	ReportHTMLPathKey     = "QA_REPORT_HTML_PATH"
	TestLogPathKey        = "QA_TEST_LOG_PATH"
)

// Exported file names ...
const (
	MarkdownReportFileName = "test-report.md"
	HTMLReportFileName     = "test-report.html"
	TestLogFileName        = "test_output.log"
)

// OutputExporter exposes a value to the subsequent steps without expanding environment variables in it.
type OutputExporter interface {
	ExportOutputNoExpand(key, value string) error
}

// Exporter ...
type Exporter interface {
	ExportTestRunResult(summary results.Summary)
	ExportReport(deployDir string, rep report.Report) error
	ExportTestLog(deployDir, testLog string) error
	ExportTestResults(resultsPath, title string)
	ExportExecutionSummary(runResult testrunner.Result) error
	ExportJobSummary(rep report.Report) error
	ExportGitHubOutputs(rep report.Report) error
	ExportFailureSummary(reason error) error
}

type exporter struct {
	envRepository     env.Repository
	logger            log.Logger
	fileManager       fileutil.FileManager
	outputExporter    OutputExporter
	testAddonExporter testaddon.Exporter
}

// NewExporter ...
func NewExporter(envRepository env.Repository, logger log.Logger, fileManager fileutil.FileManager, outputExporter OutputExporter, testAddonExporter testaddon.Exporter) Exporter {
	return &exporter{
		envRepository:     envRepository,
		logger:            logger,
		fileManager:       fileManager,
		outputExporter:    outputExporter,
		testAddonExporter: testAddonExporter,
	}
}

func (e exporter) ExportTestRunResult(summary results.Summary) {
	values := []struct {
		key   string
		value string
	}{
		{TestStatusKey, string(summary.Status)},
		{TotalTestsKey, strconv.Itoa(summary.Total)},
		{PassedTestsKey, strconv.Itoa(summary.Passed)},
		{FailedTestsKey, strconv.Itoa(summary.Failed)},
		{SkippedTestsKey, strconv.Itoa(summary.Skipped)},
		{TestDurationKey, formatSeconds(summary.Duration)},
	}

	for _, v := range values {
		if err := e.envRepository.Set(v.key, v.value); err != nil {
			e.logger.Warnf("Failed to export: %s: %s", v.key, err)
		}
	}
}

func (e exporter) ExportReport(deployDir string, rep report.Report) error {
	markdownPth := filepath.Join(deployDir, MarkdownReportFileName)
	if err := e.fileManager.Write(markdownPth, rep.Markdown, 0644); err != nil {
		return fmt.Errorf("failed to write Markdown report (%s): %w", markdownPth, err)
	}
	if err := e.envRepository.Set(ReportMarkdownPathKey, markdownPth); err != nil {
		e.logger.Warnf("Failed to export: %s: %s", ReportMarkdownPathKey, err)
	}

	htmlPth := filepath.Join(deployDir, HTMLReportFileName)
	if err := e.fileManager.Write(htmlPth, rep.HTML, 0644); err != nil {
		return fmt.Errorf("failed to write HTML report (%s): %w", htmlPth, err)
	}
	if err := e.envRepository.Set(ReportHTMLPathKey, htmlPth); err != nil {
		e.logger.Warnf("Failed to export: %s: %s", ReportHTMLPathKey, err)
	}

	// On GitHub Actions the report content is exposed through $GITHUB_OUTPUT.
	if e.envRepository.Get("GITHUB_ACTIONS") != "true" {
		if err := e.outputExporter.ExportOutputNoExpand(ReportMarkdownKey, rep.Markdown); err != nil {
			e.logger.Warnf("Failed to export: %s: %s", ReportMarkdownKey, err)
		}
	}

	e.logger.Donef("Report files written to %s", deployDir)

	return nil
}

func (e exporter) ExportTestLog(deployDir, testLog string) error {
	pth := filepath.Join(deployDir, TestLogFileName)
	if err := e.fileManager.Write(pth, testLog, 0644); err != nil {
		return fmt.Errorf("failed to write test output log (%s): %w", pth, err)
	}

	if err := e.envRepository.Set(TestLogPathKey, pth); err != nil {
		e.logger.Warnf("Failed to export: %s: %s", TestLogPathKey, err)
	}

	return nil
}

func (e exporter) ExportTestResults(resultsPath, title string) {
	addonResultPath := e.envRepository.Get(configs.BitrisePerStepTestResultDirEnvKey)
	if addonResultPath == "" || resultsPath == "" {
		return
	}

	if !strings.EqualFold(filepath.Ext(resultsPath), ".xml") {
		e.logger.Debugf("Only JUnit XML results are exported to the test result directory, skipping: %s", resultsPath)
		return
	}

	e.logger.Println()
	e.logger.Infof("Exporting test results")

	if err := e.testAddonExporter.CopyAndSaveMetadata(testaddon.AddonCopy{
		SourceTestResultPath:  resultsPath,
		TargetAddonPath:       addonResultPath,
		TargetAddonBundleName: title,
	}); err != nil {
		e.logger.Warnf("Failed to export test results: %s", err)
	}
}

func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}
