// Package notify sends rendered test reports to chat, email and console channels.
package notify

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-qa-ci-reporter/report"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/term"
)

// Channel names ...
const (
	ChannelSlack    = "slack"
	ChannelTelegram = "telegram"
	ChannelEmail    = "email"
	ChannelConsole  = "console"
)

// ChannelResult is the outcome of one channel.
type ChannelResult struct {
	Channel string
	Success bool
	Err     error
}

// Results lists the channel outcomes in the requested order.
type Results []ChannelResult

// Successful returns the number of channels that delivered the report.
func (r Results) Successful() int {
	count := 0
	for _, result := range r {
		if result.Success {
			count++
		}
	}
	return count
}

// Err combines the failures of every channel, it is nil if all channels succeeded.
func (r Results) Err() error {
	var result *multierror.Error
	for _, channelResult := range r {
		if !channelResult.Success {
			result = multierror.Append(result, fmt.Errorf("%s: %w", channelResult.Channel, channelResult.Err))
		}
	}
	return result.ErrorOrNil()
}

// ParseChannels splits a comma separated channel list, names are trimmed and lowercased.
func ParseChannels(channelNames string) []string {
	var channels []string
	for _, name := range strings.Split(channelNames, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			channels = append(channels, name)
		}
	}
	return channels
}

// Notifier ...
type Notifier interface {
	Notify(rep report.Report, channelNames string, config Config) Results
}

type notifier struct {
	logger     log.Logger
	httpClient *retryablehttp.Client
	mailer     Mailer
	console    io.Writer
	colorize   bool
}

// NewNotifier ...
func NewNotifier(logger log.Logger, httpClient *retryablehttp.Client, mailer Mailer) Notifier {
	return &notifier{
		logger:     logger,
		httpClient: httpClient,
		mailer:     mailer,
		console:    os.Stdout,
		colorize:   term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// Notify sends the report to every channel one after the other.
// A failing channel is recorded and does not stop the remaining ones.
func (n *notifier) Notify(rep report.Report, channelNames string, config Config) Results {
	n.logger.Infof("Sending notifications")

	config = config.WithDefaults()

	var results Results
	for _, channel := range ParseChannels(channelNames) {
		err := n.send(channel, rep, config)
		if err != nil {
			n.logger.Errorf("Failed to send %s notification: %s", channel, err)
			results = append(results, ChannelResult{Channel: channel, Err: err})
			continue
		}

		n.logger.Donef("%s notification sent", channel)
		results = append(results, ChannelResult{Channel: channel, Success: true})
	}

	if successful := results.Successful(); successful == len(results) {
		n.logger.Donef("All notifications sent (%d/%d)", successful, len(results))
	} else {
		n.logger.Warnf("Some notifications failed (%d/%d successful)", successful, len(results))
	}

	return results
}

func (n *notifier) send(channel string, rep report.Report, config Config) error {
	switch channel {
	case ChannelSlack:
		if !config.Slack.isConfigured() {
			return errors.New("Slack configuration missing")
		}
		return n.sendSlack(rep, config.Slack)
	case ChannelTelegram:
		if !config.Telegram.isConfigured() {
			return errors.New("Telegram configuration missing")
		}
		return n.sendTelegram(rep, config.Telegram)
	case ChannelEmail:
		if !config.Email.isConfigured() {
			return errors.New("Email configuration missing")
		}
		return n.sendEmail(rep, config.Email)
	case ChannelConsole:
		return n.sendConsole(rep)
	default:
		n.logger.Warnf("Unknown notification channel: %s", channel)
		return fmt.Errorf("unknown channel: %s", channel)
	}
}
