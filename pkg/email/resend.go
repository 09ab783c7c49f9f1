package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ceadash/cea-dashboard/pkg/config"
	"github.com/ceadash/cea-dashboard/pkg/validator"
)

// ResendClient is a minimal client for the Resend email API
type ResendClient struct {
	apiKey     string
	baseURL    string
	fromEmail  string
	adminName  string
	operatorCC string
	client     *http.Client
}

// NewResendClient creates a Resend client using the provided config.
// If cfg is nil, falls back to environment variables.
func NewResendClient(cfg *config.EmailConfig) *ResendClient {
	var apiKey, baseURL, fromEmail, adminName, operatorCC string
	if cfg != nil {
		apiKey = cfg.APIKey
		baseURL = cfg.BaseURL
		fromEmail = cfg.FromEmail
		adminName = cfg.AdminName
		operatorCC = cfg.OperatorCC
	}
	if apiKey == "" {
		apiKey = os.Getenv("RESEND_API_KEY")
	}
	if baseURL == "" {
		baseURL = "https://api.resend.com"
	}
	if fromEmail == "" {
		fromEmail = "onboarding@resend.dev"
	}
	if adminName == "" {
		adminName = "Equipo CEA"
	}
	return &ResendClient{
		apiKey:     apiKey,
		baseURL:    baseURL,
		fromEmail:  fromEmail,
		adminName:  adminName,
		operatorCC: operatorCC,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

// AdminName returns the configured coordinator display name
func (r *ResendClient) AdminName() string {
	return r.adminName
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	CC      []string `json:"cc,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type sendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// SendSchedulingEmail sends the interview notification to the contact. The
// operator CC address is always appended to any caller-supplied CCs. Returns
// the provider message id on success. Without an API key the send is simulated
// so development environments work without Resend credentials.
func (r *ResendClient) SendSchedulingEmail(ctx context.Context, data SchedulingEmail) (string, error) {
	if !validator.IsEmail(data.To) {
		return "", fmt.Errorf("invalid recipient email address: %s", data.To)
	}
	for _, cc := range data.CC {
		if !validator.IsEmail(cc) {
			return "", fmt.Errorf("invalid CC email address: %s", cc)
		}
	}

	cc := append([]string{}, data.CC...)
	if r.operatorCC != "" {
		cc = append(cc, r.operatorCC)
	}

	if r.apiKey == "" {
		return "sim_" + uuid.NewString(), nil
	}

	payload := sendRequest{
		From:    r.fromEmail,
		To:      []string{data.To},
		CC:      cc,
		Subject: Subject(data.ProcessType),
		HTML:    RenderTemplate(data),
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/emails", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if resp.StatusCode >= 400 {
		if result.Message != "" {
			return "", fmt.Errorf("resend returned status %d: %s", resp.StatusCode, result.Message)
		}
		return "", fmt.Errorf("resend returned status %d", resp.StatusCode)
	}
	if result.ID == "" {
		return "", fmt.Errorf("resend returned empty message id")
	}
	return result.ID, nil
}
