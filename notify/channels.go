package notify

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bitrise-io/go-utils/colorstring"
	"github.com/bitrise-steplib/steps-qa-ci-reporter/report"
	"gopkg.in/gomail.v2"
)

const slackUsername = "QA CI Reporter"

type slackPayload struct {
	Text      string `json:"text"`
	Channel   string `json:"channel"`
	Username  string `json:"username"`
	IconEmoji string `json:"icon_emoji"`
}

func (n *notifier) sendSlack(rep report.Report, config SlackConfig) error {
	iconEmoji := ":x:"
	if rep.IsPassed() {
		iconEmoji = ":white_check_mark:"
	}

	resp, err := postJSON(n.httpClient, config.WebhookURL, slackPayload{
		Text:      ChatMessage(rep),
		Channel:   config.Channel,
		Username:  slackUsername,
		IconEmoji: iconEmoji,
	})
	if err != nil {
		return fmt.Errorf("Slack request failed: %w", err)
	}
	defer closeBody(resp)

	if !isSuccessStatus(resp.StatusCode) {
		return fmt.Errorf("Slack API error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return nil
}

type telegramPayload struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type telegramErrorResponse struct {
	Description string `json:"description"`
}

func (n *notifier) sendTelegram(rep report.Report, config TelegramConfig) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", strings.TrimSuffix(config.APIURL, "/"), config.BotToken)

	resp, err := postJSON(n.httpClient, url, telegramPayload{
		ChatID:                config.ChatID,
		Text:                  TelegramMessage(rep),
		ParseMode:             "Markdown",
		DisableWebPagePreview: true,
	})
	if err != nil {
		// the request URL embeds the bot token
		return errors.New("Telegram request failed: " + strings.ReplaceAll(err.Error(), config.BotToken, "***"))
	}
	defer closeBody(resp)

	if isSuccessStatus(resp.StatusCode) {
		return nil
	}

	description := http.StatusText(resp.StatusCode)
	var errResponse telegramErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResponse); err == nil && errResponse.Description != "" {
		description = errResponse.Description
	}

	return fmt.Errorf("Telegram API error: %s", description)
}

// Mailer delivers an email message through SMTP.
type Mailer interface {
	Send(config EmailConfig, message *gomail.Message) error
}

type smtpMailer struct{}

// NewSMTPMailer ...
func NewSMTPMailer() Mailer {
	return smtpMailer{}
}

// Send uses implicit TLS on port 465 and STARTTLS when offered on other ports.
func (smtpMailer) Send(config EmailConfig, message *gomail.Message) error {
	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.Username, config.Password)
	dialer.SSL = config.SMTPPort == 465
	return dialer.DialAndSend(message)
}

func (n *notifier) sendEmail(rep report.Report, config EmailConfig) error {
	message := gomail.NewMessage()
	message.SetHeader("From", config.From)
	message.SetHeader("To", config.To...)
	message.SetHeader("Subject", EmailSubject(rep))
	message.SetBody("text/plain", rep.Markdown)
	message.AddAlternative("text/html", rep.HTML)

	if err := n.mailer.Send(config, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	n.logger.Debugf("Email sent to %s", strings.Join(config.To, ", "))

	return nil
}

func (n *notifier) sendConsole(rep report.Report) error {
	header := "Console notification:"
	if n.colorize {
		header = colorstring.Cyan(header)
	}

	_, err := fmt.Fprintf(n.console, "%s\n%s\n", header, ChatMessage(rep))
	return err
}

func closeBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
