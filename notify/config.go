package notify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults ...
const (
	DefaultSlackChannel   = "#ci-reports"
	DefaultSMTPPort       = 587
	DefaultTelegramAPIURL = "https://api.telegram.org"
)

// SlackConfig ...
type SlackConfig struct {
	WebhookURL string `yaml:"webhook_url"`
	Channel    string `yaml:"channel"`
}

// TelegramConfig ...
type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   string `yaml:"chat_id"`
	APIURL   string `yaml:"api_url"`
}

// EmailConfig ...
type EmailConfig struct {
	SMTPHost string   `yaml:"smtp_host"`
	SMTPPort int      `yaml:"smtp_port"`
	Username string   `yaml:"username"`
	Password string   `yaml:"password"`
	From     string   `yaml:"from"`
	To       []string `yaml:"to"`
}

// Config holds the settings of every notification channel.
type Config struct {
	Slack    SlackConfig    `yaml:"slack"`
	Telegram TelegramConfig `yaml:"telegram"`
	Email    EmailConfig    `yaml:"email"`
}

// LoadConfigFile reads channel settings from a YAML file.
func LoadConfigFile(pth string) (Config, error) {
	content, err := os.ReadFile(pth)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read notification config (%s): %w", pth, err)
	}

	var config Config
	if err := yaml.Unmarshal(content, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse notification config (%s): %w", pth, err)
	}

	return config, nil
}

// Merge fills every unset field of c from fallback.
func (c Config) Merge(fallback Config) Config {
	merged := c

	merged.Slack.WebhookURL = orString(c.Slack.WebhookURL, fallback.Slack.WebhookURL)
	merged.Slack.Channel = orString(c.Slack.Channel, fallback.Slack.Channel)

	merged.Telegram.BotToken = orString(c.Telegram.BotToken, fallback.Telegram.BotToken)
	merged.Telegram.ChatID = orString(c.Telegram.ChatID, fallback.Telegram.ChatID)
	merged.Telegram.APIURL = orString(c.Telegram.APIURL, fallback.Telegram.APIURL)

	merged.Email.SMTPHost = orString(c.Email.SMTPHost, fallback.Email.SMTPHost)
	if merged.Email.SMTPPort == 0 {
		merged.Email.SMTPPort = fallback.Email.SMTPPort
	}
	merged.Email.Username = orString(c.Email.Username, fallback.Email.Username)
	merged.Email.Password = orString(c.Email.Password, fallback.Email.Password)
	merged.Email.From = orString(c.Email.From, fallback.Email.From)
	if len(merged.Email.To) == 0 {
		merged.Email.To = fallback.Email.To
	}

	return merged
}

// WithDefaults sets the default slack channel, SMTP port and telegram API URL where unset.
func (c Config) WithDefaults() Config {
	return c.Merge(Config{
		Slack:    SlackConfig{Channel: DefaultSlackChannel},
		Telegram: TelegramConfig{APIURL: DefaultTelegramAPIURL},
		Email:    EmailConfig{SMTPPort: DefaultSMTPPort},
	})
}

func (c SlackConfig) isConfigured() bool {
	return c.WebhookURL != ""
}

func (c TelegramConfig) isConfigured() bool {
	return c.BotToken != "" && c.ChatID != ""
}

func (c EmailConfig) isConfigured() bool {
	return c.SMTPHost != "" && c.Username != "" && c.Password != "" && c.From != "" && len(c.To) > 0
}

func orString(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
