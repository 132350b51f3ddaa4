package step

import (
	"fmt"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-qa-ci-reporter/notify"
	"github.com/bitrise-steplib/steps-qa-ci-reporter/output"
	"github.com/bitrise-steplib/steps-qa-ci-reporter/report"
	"github.com/bitrise-steplib/steps-qa-ci-reporter/results"
	"github.com/bitrise-steplib/steps-qa-ci-reporter/testrunner"
	"github.com/hashicorp/go-multierror"
)

// TestReporter runs the test command and reports its results.
type TestReporter struct {
	logger         log.Logger
	runner         testrunner.Runner
	parser         results.Parser
	generator      report.Generator
	notifier       notify.Notifier
	outputExporter output.Exporter
}

// NewTestReporter ...
func NewTestReporter(logger log.Logger, runner testrunner.Runner, parser results.Parser, generator report.Generator, notifier notify.Notifier, outputExporter output.Exporter) TestReporter {
	return TestReporter{
		logger:         logger,
		runner:         runner,
		parser:         parser,
		generator:      generator,
		notifier:       notifier,
		outputExporter: outputExporter,
	}
}

// Result ...
type Result struct {
	RunResult     testrunner.Result
	Report        report.Report
	Notifications notify.Results
}

// IsFailed reports whether the parsed test results contain failures or errors.
func (r Result) IsFailed() bool {
	return r.Report.Summary.Status == results.StatusFailed
}

// Run validates and runs the test command, parses its results, renders the report and sends the notifications.
func (s TestReporter) Run(cfg Config) (Result, error) {
	if err := testrunner.ValidateCommand(cfg.TestCommand); err != nil {
		if !cfg.AllowUnsafeCommand {
			return Result{}, fmt.Errorf("%w, set allow_unsafe_command to run it anyway", err)
		}
		s.logger.Warnf("%s", err)
	}

	runResult, err := s.runner.Run(cfg.TestCommand, cfg.ResultsPath, cfg.RunOpts)
	if err != nil {
		return Result{}, fmt.Errorf("failed to run tests: %w", err)
	}

	result := Result{RunResult: runResult}

	if runResult.ExitCode != 0 {
		printLastLinesOfTestLog(s.logger, runResult.CombinedOutput(), cfg.DeployDir)
	}

	s.logger.Println()
	parsed, err := s.parser.Parse(runResult)
	if err != nil {
		return result, fmt.Errorf("failed to parse test results: %w", err)
	}

	s.logger.Println()
	result.Report = s.generator.Render(parsed, cfg.ReportTitle)

	s.logger.Println()
	result.Notifications = s.notifier.Notify(result.Report, cfg.NotificationChannels, cfg.Notification)
	if err := result.Notifications.Err(); err != nil {
		s.logger.Warnf("%s", err)
	}

	return result, nil
}

// Export exposes the test results as step outputs, files and CI job summaries.
func (s TestReporter) Export(cfg Config, result Result) error {
	s.logger.Println()
	s.logger.Infof("Exporting outputs")

	s.outputExporter.ExportTestRunResult(result.Report.Summary)

	var exportErr *multierror.Error
	if err := s.outputExporter.ExportTestLog(cfg.DeployDir, result.RunResult.CombinedOutput()); err != nil {
		exportErr = multierror.Append(exportErr, err)
	}
	if err := s.outputExporter.ExportReport(cfg.DeployDir, result.Report); err != nil {
		exportErr = multierror.Append(exportErr, err)
	}

	s.outputExporter.ExportTestResults(result.RunResult.ResultsPath, cfg.ReportTitle)

	if err := s.outputExporter.ExportExecutionSummary(result.RunResult); err != nil {
		exportErr = multierror.Append(exportErr, err)
	}
	if err := s.outputExporter.ExportJobSummary(result.Report); err != nil {
		exportErr = multierror.Append(exportErr, err)
	}
	if err := s.outputExporter.ExportGitHubOutputs(result.Report); err != nil {
		exportErr = multierror.Append(exportErr, err)
	}

	return exportErr.ErrorOrNil()
}

// ExportFailure writes the failure summary of a run that could not produce results.
func (s TestReporter) ExportFailure(reason error) {
	if err := s.outputExporter.ExportFailureSummary(reason); err != nil {
		s.logger.Warnf("Could not create error summary: %s", err)
	}
}
