package step

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bitrise-io/go-steputils/v2/stepconf"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/bitrise-steplib/steps-qa-ci-reporter/notify"
	"github.com/bitrise-steplib/steps-qa-ci-reporter/report"
	"github.com/bitrise-steplib/steps-qa-ci-reporter/testrunner"
)

// Input ...
type Input struct {
	// Test run
	TestCommand        string `env:"test_command,required"`
	TestResultsPath    string `env:"test_results_path"`
	WorkingDir         string `env:"working_dir"`
	QuotedCommand      bool   `env:"quoted_command,opt[yes,no]"`
	AllowUnsafeCommand bool   `env:"allow_unsafe_command,opt[yes,no]"`
	FailOnTestFailure  bool   `env:"fail_on_test_failure,opt[yes,no]"`

	// Report
	ReportTitle      string `env:"report_title"`
	HTMLTemplatePath string `env:"html_template_path"`

	// Notifications
	NotificationChannels   string          `env:"notification_channels,required"`
	NotificationConfigPath string          `env:"notification_config_path"`
	NotificationRetryCount int             `env:"notification_retry_count"`
	SlackWebhookURL        stepconf.Secret `env:"slack_webhook_url"`
	SlackChannel           string          `env:"slack_channel"`
	TelegramBotToken       stepconf.Secret `env:"telegram_bot_token"`
	TelegramChatID         string          `env:"telegram_chat_id"`
	EmailSMTPHost          string          `env:"email_smtp_host"`
	EmailSMTPPort          int             `env:"email_smtp_port"`
	EmailUsername          string          `env:"email_username"`
	EmailPassword          stepconf.Secret `env:"email_password"`
	EmailFrom              string          `env:"email_from"`
	EmailTo                string          `env:"email_to"`

	// Debug
	Verbose bool `env:"verbose,opt[yes,no]"`

	// Output export
	DeployDir string `env:"BITRISE_DEPLOY_DIR"`
}

// Config ...
type Config struct {
	TestCommand        string
	ResultsPath        string
	RunOpts            testrunner.Opts
	AllowUnsafeCommand bool
	FailOnTestFailure  bool

	ReportTitle      string
	HTMLTemplatePath string

	NotificationChannels   string
	Notification           notify.Config
	NotificationRetryCount int

	DeployDir string
}

// ConfigParser ...
type ConfigParser struct {
	inputParser  stepconf.InputParser
	logger       log.Logger
	pathChecker  pathutil.PathChecker
	pathProvider pathutil.PathProvider
	loadConfig   func(pth string) (notify.Config, error)
}

// NewConfigParser ...
func NewConfigParser(inputParser stepconf.InputParser, logger log.Logger, pathChecker pathutil.PathChecker, pathProvider pathutil.PathProvider) ConfigParser {
	return ConfigParser{
		inputParser:  inputParser,
		logger:       logger,
		pathChecker:  pathChecker,
		pathProvider: pathProvider,
		loadConfig:   notify.LoadConfigFile,
	}
}

// ProcessConfig ...
func (p ConfigParser) ProcessConfig() (Config, error) {
	var input Input
	if err := p.inputParser.Parse(&input); err != nil {
		return Config{}, err
	}

	stepconf.Print(input)
	p.logger.Println()

	p.logger.EnableDebugLog(input.Verbose)

	if strings.TrimSpace(input.TestCommand) == "" {
		return Config{}, errors.New("Test command (test_command) is empty")
	}

	if len(notify.ParseChannels(input.NotificationChannels)) == 0 {
		return Config{}, errors.New("Notification channels (notification_channels) has no channel names")
	}

	if input.NotificationRetryCount < 0 {
		return Config{}, fmt.Errorf("invalid Notification retry count (notification_retry_count): %d, should not be negative", input.NotificationRetryCount)
	}

	if input.WorkingDir != "" {
		exists, err := p.pathChecker.IsDirExists(input.WorkingDir)
		if err != nil {
			return Config{}, fmt.Errorf("failed to check Working directory (%s): %w", input.WorkingDir, err)
		}
		if !exists {
			return Config{}, fmt.Errorf("Working directory (working_dir) does not exist: %s", input.WorkingDir)
		}
	}

	notificationConfig := notify.Config{
		Slack: notify.SlackConfig{
			WebhookURL: string(input.SlackWebhookURL),
			Channel:    input.SlackChannel,
		},
		Telegram: notify.TelegramConfig{
			BotToken: string(input.TelegramBotToken),
			ChatID:   input.TelegramChatID,
		},
		Email: notify.EmailConfig{
			SMTPHost: input.EmailSMTPHost,
			SMTPPort: input.EmailSMTPPort,
			Username: input.EmailUsername,
			Password: string(input.EmailPassword),
			From:     input.EmailFrom,
			To:       splitList(input.EmailTo),
		},
	}

	if input.NotificationConfigPath != "" {
		fileConfig, err := p.loadConfig(input.NotificationConfigPath)
		if err != nil {
			return Config{}, err
		}
		notificationConfig = notificationConfig.Merge(fileConfig)
		p.logger.Printf("- notification config: %s", input.NotificationConfigPath)
	}

	reportTitle := input.ReportTitle
	if reportTitle == "" {
		reportTitle = report.DefaultTitle
	}

	deployDir := input.DeployDir
	if deployDir == "" {
		tmpDir, err := p.pathProvider.CreateTempDir("qa-ci-reporter")
		if err != nil {
			return Config{}, fmt.Errorf("failed to create report output directory: %w", err)
		}
		p.logger.Warnf("BITRISE_DEPLOY_DIR is not set, reports are written to %s", tmpDir)
		deployDir = tmpDir
	}

	return Config{
		TestCommand: input.TestCommand,
		ResultsPath: input.TestResultsPath,
		RunOpts: testrunner.Opts{
			Dir:    input.WorkingDir,
			Quoted: input.QuotedCommand,
		},
		AllowUnsafeCommand: input.AllowUnsafeCommand,
		FailOnTestFailure:  input.FailOnTestFailure,

		ReportTitle:      reportTitle,
		HTMLTemplatePath: input.HTMLTemplatePath,

		NotificationChannels:   input.NotificationChannels,
		Notification:           notificationConfig,
		NotificationRetryCount: input.NotificationRetryCount,

		DeployDir: deployDir,
	}, nil
}

func splitList(list string) []string {
	var items []string
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
