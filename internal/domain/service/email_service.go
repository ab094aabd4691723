package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mattwyattcooper/circularbuild-sub000/pkg/logger"
)

// EmailService delivers notification mail. Delivery is best-effort everywhere
// it is used: failures are logged by the caller and never propagated.
type EmailService interface {
	Send(ctx context.Context, to, subject, text string) error
}

// ResendEmailService - transactional mail via the Resend HTTP API.
type ResendEmailService struct {
	apiKey     string
	fromAddr   string
	baseURL    string
	httpClient *http.Client
}

func NewResendEmailService(apiKey, fromAddr string) *ResendEmailService {
	return &ResendEmailService{
		apiKey:   apiKey,
		fromAddr: fromAddr,
		baseURL:  "https://api.resend.com",
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type resendSendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

func (s *ResendEmailService) Send(ctx context.Context, to, subject, text string) error {
	if s.apiKey == "" {
		logger.Debug("Email API key not configured, skipping send to %s", to)
		return nil
	}

	payload := resendSendRequest{
		From:    s.fromAddr,
		To:      []string{to},
		Subject: subject,
		Text:    text,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email request: %v", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/emails", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create email request: %v", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("email request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("email provider returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
