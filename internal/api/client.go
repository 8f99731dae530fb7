// Package api talks to the InsightPDF backend: document ingestion, question
// answering, and the readiness probe.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// uploadFieldName must match the backend's multipart parameter.
const uploadFieldName = "file"

const defaultHTTPTimeout = 3 * time.Minute

// Client issues the three remote operations the session consumes.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// Config describes how to build a Client.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func New(cfg Config) *Client {
	client := cfg.HTTPClient
	if client == nil {
		// Ingest and chat carry no per-call deadline; a generous transport
		// timeout keeps a wedged connection from hanging the job forever.
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

// BaseURL reports the configured endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// StatusError is a non-2xx response from the service. Detail carries the
// structured error string when the body had one.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("service returned status %d", e.Code)
}

// IsClientError reports a 400-class status.
func (e *StatusError) IsClientError() bool {
	return e.Code >= 400 && e.Code < 500
}

// IsServerError reports a 500-class status.
func (e *StatusError) IsServerError() bool {
	return e.Code >= 500
}

// Upload sends the raw document bytes for ingestion. The response payload is
// opaque to the caller; only success or a classified error matters.
func (c *Client) Upload(ctx context.Context, name string, content []byte) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(uploadFieldName, name)
	if err != nil {
		return err
	}
	if _, err := part.Write(content); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c.logger.Info("uploading document", zap.String("name", name), zap.Int("bytes", len(content)))
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		c.logger.Warn("upload rejected", zap.String("name", name), zap.Error(err))
		return err
	}
	return nil
}

// Chat asks one question with the bounded history window and returns the
// answer text. History entries are (role, text) pairs, oldest first, with role
// restricted to "human" or "ai".
func (c *Client) Chat(ctx context.Context, question string, history [][2]string) (string, error) {
	pairs := make([][]string, 0, len(history))
	for _, turn := range history {
		pairs = append(pairs, []string{turn[0], turn[1]})
	}
	payload := map[string]any{
		"question": question,
		"history":  pairs,
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(buf))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		c.logger.Warn("chat call failed", zap.Error(err))
		return "", err
	}

	var parsed struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}
	return parsed.Answer, nil
}

// Health probes the readiness flag. Transport failures and not-ready responses
// are both reported as ready=false with the error attached; the gate treats
// them identically.
func (c *Client) Health(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return false, err
	}

	var parsed struct {
		Ready bool `json:"ready"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return false, fmt.Errorf("failed to decode health response: %w", err)
	}
	return parsed.Ready, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	detail := extractDetail(body)
	return &StatusError{Code: resp.StatusCode, Detail: detail}
}

// extractDetail pulls the structured {"detail": ...} string the backend
// attaches to failures. Anything else is surfaced as-is, truncated.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}
