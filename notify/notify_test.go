package notify

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-qa-ci-reporter/report"
	"github.com/bitrise-steplib/steps-qa-ci-reporter/results"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeMailer struct {
	config   EmailConfig
	messages []*gomail.Message
	err      error
}

func (m *fakeMailer) Send(config EmailConfig, message *gomail.Message) error {
	m.config = config
	m.messages = append(m.messages, message)
	return m.err
}

func Test_GivenChannelList_WhenParsing_ThenTrimsLowercasesAndSkipsEmptyNames(t *testing.T) {
	// When
	channels := ParseChannels(" Slack, ,CONSOLE ,email,")

	// Then
	assert.Equal(t, []string{"slack", "console", "email"}, channels)
}

func Test_GivenConsoleChannel_WhenNotifying_ThenPrintsChatMessage(t *testing.T) {
	// Given
	sut, console := createNotifier(t, nil)

	// When
	res := sut.Notify(failedReport(), "console", Config{})

	// Then
	require.Len(t, res, 1)
	assert.True(t, res[0].Success)
	assert.NoError(t, res.Err())
	assert.Contains(t, console.String(), "Console notification:")
	assert.Contains(t, console.String(), "🧪 *Unit Tests* - main")
	assert.Contains(t, console.String(), "❌ *Status: FAILED*")
	assert.Contains(t, console.String(), "📊 *Results:* 8 passed, 1 failed, 1 skipped")
}

func Test_GivenUnknownChannel_WhenNotifying_ThenRecordsFailureAndContinues(t *testing.T) {
	// Given
	sut, console := createNotifier(t, nil)

	// When
	res := sut.Notify(failedReport(), "pager,console", Config{})

	// Then
	require.Len(t, res, 2)
	assert.False(t, res[0].Success)
	assert.EqualError(t, res[0].Err, "unknown channel: pager")
	assert.True(t, res[1].Success)
	assert.Equal(t, 1, res.Successful())
	assert.Error(t, res.Err())
	assert.NotEmpty(t, console.String())
}

func Test_GivenUnconfiguredChannels_WhenNotifying_ThenReportsMissingConfiguration(t *testing.T) {
	// Given
	sut, _ := createNotifier(t, nil)

	// When
	res := sut.Notify(failedReport(), "slack,telegram,email", Config{})

	// Then
	require.Len(t, res, 3)
	assert.EqualError(t, res[0].Err, "Slack configuration missing")
	assert.EqualError(t, res[1].Err, "Telegram configuration missing")
	assert.EqualError(t, res[2].Err, "Email configuration missing")
	assert.Equal(t, 0, res.Successful())
}

func Test_GivenSlackWebhook_WhenNotifying_ThenPostsPayload(t *testing.T) {
	// Given
	var payload slackPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sut, _ := createNotifier(t, nil)

	// When
	res := sut.Notify(passedReport(), "slack", Config{Slack: SlackConfig{WebhookURL: server.URL}})

	// Then
	require.NoError(t, res.Err())
	assert.Equal(t, DefaultSlackChannel, payload.Channel)
	assert.Equal(t, "QA CI Reporter", payload.Username)
	assert.Equal(t, ":white_check_mark:", payload.IconEmoji)
	assert.Contains(t, payload.Text, "✅ *Status: PASSED*")
}

func Test_GivenSlackRejects_WhenNotifying_ThenReturnsStatusError(t *testing.T) {
	// Given
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	sut, _ := createNotifier(t, nil)

	// When
	res := sut.Notify(failedReport(), "slack", Config{Slack: SlackConfig{WebhookURL: server.URL, Channel: "#qa"}})

	// Then
	require.Len(t, res, 1)
	assert.EqualError(t, res[0].Err, "Slack API error: 403 Forbidden")
}

func Test_GivenTelegramBot_WhenNotifying_ThenSendsMarkdownMessage(t *testing.T) {
	// Given
	var payload telegramPayload
	var requestPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestPath = r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	sut, _ := createNotifier(t, nil)
	config := Config{Telegram: TelegramConfig{BotToken: "123:abc", ChatID: "-100", APIURL: server.URL}}

	// When
	res := sut.Notify(failedReport(), "telegram", config)

	// Then
	require.NoError(t, res.Err())
	assert.Equal(t, "/bot123:abc/sendMessage", requestPath)
	assert.Equal(t, "-100", payload.ChatID)
	assert.Equal(t, "Markdown", payload.ParseMode)
	assert.True(t, payload.DisableWebPagePreview)
	assert.Contains(t, payload.Text, "🔗 [View Details](https://ci.example.com/builds/1)")
	assert.Contains(t, payload.Text, "❌ API: 8/10 passed")
}

func Test_GivenTelegramRejects_WhenNotifying_ThenSurfacesDescription(t *testing.T) {
	// Given
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
	}))
	defer server.Close()

	sut, _ := createNotifier(t, nil)
	config := Config{Telegram: TelegramConfig{BotToken: "secret-token", ChatID: "1", APIURL: server.URL}}

	// When
	res := sut.Notify(failedReport(), "telegram", config)

	// Then
	require.Len(t, res, 1)
	assert.EqualError(t, res[0].Err, "Telegram API error: Bad Request: chat not found")
	assert.NotContains(t, res.Err().Error(), "secret-token")
}

func Test_GivenEmailConfig_WhenNotifying_ThenSendsMessageWithMarkdownAndHTML(t *testing.T) {
	// Given
	mailer := &fakeMailer{}
	sut, _ := createNotifier(t, mailer)
	config := Config{Email: EmailConfig{
		SMTPHost: "smtp.example.com",
		Username: "user",
		Password: "pass",
		From:     "ci@example.com",
		To:       []string{"qa@example.com", "dev@example.com"},
	}}

	// When
	res := sut.Notify(failedReport(), "email", config)

	// Then
	require.NoError(t, res.Err())
	require.Len(t, mailer.messages, 1)
	assert.Equal(t, DefaultSMTPPort, mailer.config.SMTPPort)

	message := mailer.messages[0]
	assert.Equal(t, "❌ Unit Tests - acme/shop", EmailSubject(failedReport()))
	assert.Len(t, message.GetHeader("Subject"), 1)
	assert.Equal(t, []string{"qa@example.com", "dev@example.com"}, message.GetHeader("To"))

	var body bytes.Buffer
	_, err := message.WriteTo(&body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), "text/plain")
	assert.Contains(t, body.String(), "text/html")
}

func Test_GivenMailerFails_WhenNotifying_ThenRecordsFailure(t *testing.T) {
	// Given
	mailer := &fakeMailer{err: errors.New("connection refused")}
	sut, _ := createNotifier(t, mailer)
	config := Config{Email: EmailConfig{SMTPHost: "smtp", Username: "u", Password: "p", From: "f@x", To: []string{"t@x"}}}

	// When
	res := sut.Notify(failedReport(), "email,console", config)

	// Then
	require.Len(t, res, 2)
	assert.EqualError(t, res[0].Err, "failed to send email: connection refused")
	assert.True(t, res[1].Success)
}

func Test_GivenManySuites_WhenRenderingTelegramMessage_ThenOmitsSuiteList(t *testing.T) {
	// Given
	rep := failedReport()
	for i := 0; i < maxTelegramSuites; i++ {
		rep.Suites = append(rep.Suites, results.NewSuite("extra", results.Counts{Tests: 1}, nil))
	}

	// When
	message := TelegramMessage(rep)

	// Then
	assert.NotContains(t, message, "📋 *Test Suites:*")
	assert.Contains(t, ChatMessage(rep), "📋 *Test Suites:*")
}

func Test_GivenYAMLFile_WhenLoadingConfig_ThenMergesWithInputs(t *testing.T) {
	// Given
	pth := filepath.Join(t.TempDir(), "notifications.yml")
	content := strings.Join([]string{
		"slack:",
		"  webhook_url: https://hooks.example.com/abc",
		"email:",
		"  smtp_host: smtp.example.com",
		"  smtp_port: 465",
		"  to:",
		"    - qa@example.com",
	}, "\n")
	require.NoError(t, os.WriteFile(pth, []byte(content), 0600))

	// When
	fileConfig, err := LoadConfigFile(pth)
	require.NoError(t, err)
	config := Config{Slack: SlackConfig{Channel: "#qa"}, Email: EmailConfig{SMTPHost: "input.example.com"}}.Merge(fileConfig).WithDefaults()

	// Then
	assert.Equal(t, "https://hooks.example.com/abc", config.Slack.WebhookURL)
	assert.Equal(t, "#qa", config.Slack.Channel)
	assert.Equal(t, "input.example.com", config.Email.SMTPHost)
	assert.Equal(t, 465, config.Email.SMTPPort)
	assert.Equal(t, []string{"qa@example.com"}, config.Email.To)
	assert.Equal(t, DefaultTelegramAPIURL, config.Telegram.APIURL)
}

func Test_GivenMissingFile_WhenLoadingConfig_ThenFails(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yml"))

	assert.Error(t, err)
}

// Helpers

func createNotifier(t *testing.T, mailer Mailer) (*notifier, *bytes.Buffer) {
	t.Helper()

	if mailer == nil {
		mailer = &fakeMailer{}
	}

	var console bytes.Buffer
	logger := log.NewLogger()
	sut := &notifier{
		logger:     logger,
		httpClient: NewHTTPClient(logger, 0),
		mailer:     mailer,
		console:    &console,
	}

	return sut, &console
}

func failedReport() report.Report {
	suites := []results.TestSuite{
		results.NewSuite("API", results.Counts{Tests: 10, Failures: 1, Skipped: 1, Time: 12.5}, nil),
	}
	return report.Report{
		Title:   "Unit Tests",
		Summary: results.Summarize(suites),
		Suites:  suites,
		Metadata: report.Metadata{
			Repository: "acme/shop",
			Branch:     "main",
			ActionURL:  "https://ci.example.com/builds/1",
		},
		Markdown: "# Unit Tests",
		HTML:     "<h1>Unit Tests</h1>",
	}
}

func passedReport() report.Report {
	suites := []results.TestSuite{
		results.NewSuite("API", results.Counts{Tests: 3, Time: 1}, nil),
	}
	rep := failedReport()
	rep.Summary = results.Summarize(suites)
	rep.Suites = suites
	return rep
}
