package main

import (
	"os"
	"time"

	"github.com/bitrise-io/go-steputils/v2/export"
	"github.com/bitrise-io/go-steputils/v2/stepconf"
	"github.com/bitrise-io/go-steputils/v2/stepenv"
	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/bitrise-steplib/steps-qa-ci-reporter/notify"
	"github.com/bitrise-steplib/steps-qa-ci-reporter/output"
	"github.com/bitrise-steplib/steps-qa-ci-reporter/report"
	"github.com/bitrise-steplib/steps-qa-ci-reporter/results"
	"github.com/bitrise-steplib/steps-qa-ci-reporter/step"
	"github.com/bitrise-steplib/steps-qa-ci-reporter/testaddon"
	"github.com/bitrise-steplib/steps-qa-ci-reporter/testrunner"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := log.NewLogger()
	envRepository := env.NewRepository()
	commandFactory := command.NewFactory(envRepository)
	outputExporter := createOutputExporter(logger, envRepository, commandFactory)

	configParser := step.NewConfigParser(stepconf.NewInputParser(envRepository), logger, pathutil.NewPathChecker(), pathutil.NewPathProvider())
	config, err := configParser.ProcessConfig()
	if err != nil {
		logger.Errorf("Process config: %s", err)
		if err := outputExporter.ExportFailureSummary(err); err != nil {
			logger.Warnf("Could not create error summary: %s", err)
		}
		return 1
	}

	reporter := createTestReporter(logger, envRepository, commandFactory, outputExporter, config)

	result, err := reporter.Run(config)
	if err != nil {
		logger.Errorf("QA CI Reporter failed: %s", err)
		reporter.ExportFailure(err)
		return 1
	}

	if err := reporter.Export(config, result); err != nil {
		logger.Errorf("Export outputs: %s", err)
		return 1
	}

	summary := result.Report.Summary
	logger.Println()
	if result.IsFailed() && config.FailOnTestFailure {
		logger.Errorf("Tests failed: %d test(s) failed", summary.Failed)
		return 1
	}

	logger.Donef("QA CI Reporter completed successfully")
	logger.Printf("Results: %d passed, %d failed, %d skipped", summary.Passed, summary.Failed, summary.Skipped)

	return 0
}

func createOutputExporter(logger log.Logger, envRepository env.Repository, commandFactory command.Factory) output.Exporter {
	// Outside of GitHub Actions outputs are exposed to the next steps through envman.
	outputRepository := envRepository
	if envRepository.Get("GITHUB_ACTIONS") != "true" {
		outputRepository = stepenv.NewRepository(envRepository)
	}

	envmanExporter := export.NewExporter(commandFactory, export.NewFileManager())
	testAddonExporter := testaddon.NewExporter(testaddon.NewTestAddon(logger, commandFactory))

	return output.NewExporter(outputRepository, logger, fileutil.NewFileManager(), &envmanExporter, testAddonExporter)
}

func createTestReporter(logger log.Logger, envRepository env.Repository, commandFactory command.Factory, outputExporter output.Exporter, config step.Config) step.TestReporter {
	runner := testrunner.NewRunner(logger, commandFactory, pathutil.NewPathChecker())
	parser := results.NewParser(logger)
	generator := report.NewGenerator(logger, report.NewMetadataProvider(envRepository, time.Now), config.HTMLTemplatePath, os.ReadFile)
	notifier := notify.NewNotifier(logger, notify.NewHTTPClient(logger, config.NotificationRetryCount), notify.NewSMTPMailer())

	return step.NewTestReporter(logger, runner, parser, generator, notifier, outputExporter)
}
