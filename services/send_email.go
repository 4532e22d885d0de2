package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rpupo63/hospitality-studio-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultResendBaseURL = "https://api.resend.com"

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// ResendClient sends transactional email through the Resend API.
type ResendClient struct {
	apiKey     string
	from       string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

type ResendOption func(*ResendClient)

// WithBaseURL points the client at another Resend-compatible endpoint.
func WithBaseURL(url string) ResendOption {
	return func(c *ResendClient) {
		c.baseURL = url
	}
}

func withHTTPClient(client *http.Client) ResendOption {
	return func(c *ResendClient) {
		c.httpClient = client
	}
}

func NewResendClient(apiKey, from string, opts ...ResendOption) *ResendClient {
	c := &ResendClient{
		apiKey:     apiKey,
		from:       from,
		baseURL:    defaultResendBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     log.With().Str("service", "resend").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SendEmail sends an HTML email and returns the Resend message id.
func (c *ResendClient) SendEmail(ctx context.Context, msg ResendEmailRequest) (string, error) {
	if c.apiKey == "" {
		return "", errs.NewConfigMissingError("RESEND_API_KEY")
	}
	if c.from == "" {
		return "", errs.NewConfigMissingError("RESEND_FROM_EMAIL")
	}
	if len(msg.To) == 0 {
		return "", fmt.Errorf("at least one recipient is required")
	}
	msg.From = c.from

	jsonPayload, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewBuffer(jsonPayload))
	if err != nil {
		return "", fmt.Errorf("failed to create Resend API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read Resend API response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", errs.NewInvalidAPIKeyError("resend")
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return "", errs.NewServiceUnavailableError("resend", resp.StatusCode, errorResp.Message)
		}
		return "", errs.NewServiceUnavailableError("resend", resp.StatusCode, string(bodyBytes))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
		return "", nil
	}
	c.logger.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	return emailResponse.ID, nil
}
