package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"loanportal/internal/config"
	"loanportal/internal/model"
)

// LoanClient talks to the external prediction/chat service
type LoanClient struct {
	config     *config.ServiceConfig
	httpClient *http.Client
}

// ClientOption is a functional option for configuring the client
type ClientOption func(*LoanClient)

// WithBaseURL overrides the service root
func WithBaseURL(baseURL string) ClientOption {
	return func(c *LoanClient) {
		c.config.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *LoanClient) {
		c.httpClient = httpClient
	}
}

// NewLoanClient creates a client for the service described by cfg.
// The config is copied; options never mutate the caller's value.
func NewLoanClient(cfg *config.ServiceConfig, opts ...ClientOption) *LoanClient {
	svc := config.ServiceConfig{BaseURL: config.DefaultBaseURL}
	if cfg != nil {
		svc = *cfg
	}

	client := &LoanClient{
		config: &svc,
		httpClient: &http.Client{
			Timeout: svc.Timeout,
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// BaseURL returns the service root this client calls
func (c *LoanClient) BaseURL() string {
	return c.config.BaseURL
}

// SubmitPrediction posts the applicant attributes form-urlencoded and decodes the verdict.
// Transport errors and non-success statuses return ErrPredictionRequestFailed; the body
// of a failed response is never read.
func (c *LoanClient) SubmitPrediction(ctx context.Context, req model.PredictionRequest) (result *model.PredictionResult, err error) {
	start := time.Now()
	defer func() { observe(endpointPredict, start, err) }()

	form := url.Values{}
	for name, value := range req {
		form.Set(name, value)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.PredictURL(), strings.NewReader(form.Encode()))
	if err != nil {
		log.WithError(err).Warn("failed to create predict request")
		return nil, ErrPredictionRequestFailed
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.WithError(err).Warn("predict request failed")
		return nil, ErrPredictionRequestFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.WithField("status", resp.StatusCode).Warn("predict request returned non-success status")
		return nil, ErrPredictionRequestFailed
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.WithError(err).Warn("failed to read predict response")
		return nil, ErrPredictionRequestFailed
	}

	return DecodePredictionResult(body)
}

// SubmitChatMessage posts {"message": message} and extracts the reply.
// Every failure is logged here and surfaces to the caller only as ErrChatRequestFailed.
func (c *LoanClient) SubmitChatMessage(ctx context.Context, message string) (reply string, err error) {
	start := time.Now()
	defer func() { observe(endpointChat, start, err) }()

	reply, err = c.chat(ctx, message)
	if err != nil {
		log.WithError(err).Error("Chat error")
		return "", ErrChatRequestFailed
	}
	return reply, nil
}

func (c *LoanClient) chat(ctx context.Context, message string) (string, error) {
	reqBody, err := json.Marshal(model.ChatRequest{Message: message})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.ChatURL(), bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	// status is not checked: any JSON body goes through the reply fallback chain
	return ExtractChatReply(body)
}

// DownloadReport fetches the PDF report for the backend's last prediction
func (c *LoanClient) DownloadReport(ctx context.Context) (pdf []byte, err error) {
	start := time.Now()
	defer func() { observe(endpointReport, start, err) }()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.ReportURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrReportRequestFailed, err)
	}
	httpReq.Header.Set("Accept", "application/pdf")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReportRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrReportRequestFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrReportRequestFailed, resp.StatusCode)
	}

	return body, nil
}
