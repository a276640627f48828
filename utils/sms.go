package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// HTTPSMSSender posts messages to an external SMS gateway (Twilio, Termii and
// similar services expose this shape behind a thin proxy).
type HTTPSMSSender struct {
	gatewayURL string
	apiKey     string
	client     *http.Client
}

func NewHTTPSMSSender(gatewayURL, apiKey string) *HTTPSMSSender {
	return &HTTPSMSSender{
		gatewayURL: gatewayURL,
		apiKey:     apiKey,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *HTTPSMSSender) Send(to, message string) error {
	payload, err := json.Marshal(map[string]string{
		"to":      to,
		"message": message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, s.gatewayURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}

// LogSMSSender is the fallback when no gateway is configured: messages are
// logged instead of delivered so development flows still complete.
type LogSMSSender struct{}

func (LogSMSSender) Send(to, message string) error {
	log.Info().Str("to", to).Str("message", message).Msg("sms gateway not configured, logging message")
	return nil
}

// NewSMSSenderFromEnv picks the gateway sender when SMS_GATEWAY_URL is set
// and the logging fallback otherwise.
func NewSMSSenderFromEnv() interface{ Send(to, message string) error } {
	gatewayURL := os.Getenv("SMS_GATEWAY_URL")
	if gatewayURL == "" {
		return LogSMSSender{}
	}
	return NewHTTPSMSSender(gatewayURL, os.Getenv("SMS_API_KEY"))
}
