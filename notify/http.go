package notify

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/hashicorp/go-retryablehttp"
)

// NewHTTPClient creates the client used by the webhook style channels.
//
// The last response is passed through after the retries are exhausted, so the channel can report it.
func NewHTTPClient(logger log.Logger, retryMax int) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.Logger = leveledLogger{logger: logger}
	client.RetryMax = retryMax
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return client
}

type leveledLogger struct {
	logger log.Logger
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Warnf("%s %v", msg, keysAndValues)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debugf("%s %v", msg, keysAndValues)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debugf("%s %v", msg, keysAndValues)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warnf("%s %v", msg, keysAndValues)
}

func postJSON(client *retryablehttp.Client, url string, payload interface{}) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := retryablehttp.NewRequest(http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return client.Do(req)
}

func isSuccessStatus(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
