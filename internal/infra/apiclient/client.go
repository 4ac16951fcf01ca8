// Package apiclient implements domain.IssueService over the issue REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"

	"github.com/runoshun/issues/internal/domain"
)

// Ensure Client implements domain.IssueService.
var _ domain.IssueService = (*Client)(nil)

// maxResponseSize caps how much of a response body is read.
const maxResponseSize = 8 << 20

// Config holds configuration for creating a Client.
type Config struct {
	// HTTPClient is used for all requests. If nil, a client with Timeout is created.
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger
	// BaseURL is the API root (e.g., "http://localhost:8000").
	BaseURL string
	// Timeout applies when HTTPClient is nil. Zero means domain.DefaultTimeout.
	Timeout time.Duration
}

// Client talks to the issue API. Each method issues exactly one request.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
}

// New creates a new Client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, domain.ErrNoBaseURL
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base URL %q: %w", cfg.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base URL %q: scheme must be http or https", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = domain.DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListIssues returns one page of issues matching filters.
// Empty optional filters are omitted; sort and paging are always sent.
func (c *Client) ListIssues(ctx context.Context, filters domain.IssueFilters) (*domain.IssuesResponse, error) {
	values, err := query.Values(filters.Normalize())
	if err != nil {
		return nil, fmt.Errorf("encode filters: %w", err)
	}

	var resp domain.IssuesResponse
	if err := c.do(ctx, http.MethodGet, "/issues", values, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Issues == nil {
		resp.Issues = []domain.Issue{}
	}
	return &resp, nil
}

// GetIssue returns the issue with the given ID.
func (c *Client) GetIssue(ctx context.Context, id string) (*domain.Issue, error) {
	if id == "" {
		return nil, domain.ErrEmptyID
	}
	var issue domain.Issue
	if err := c.do(ctx, http.MethodGet, issuePath(id), nil, nil, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// CreateIssue creates a new issue.
func (c *Client) CreateIssue(ctx context.Context, draft domain.IssueDraft) (*domain.Issue, error) {
	var issue domain.Issue
	if err := c.do(ctx, http.MethodPost, "/issues", nil, draft, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// UpdateIssue applies patch to the issue with the given ID.
func (c *Client) UpdateIssue(ctx context.Context, id string, patch domain.IssuePatch) (*domain.Issue, error) {
	if id == "" {
		return nil, domain.ErrEmptyID
	}
	var issue domain.Issue
	if err := c.do(ctx, http.MethodPut, issuePath(id), nil, patch, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// Health checks that the API answers on /health.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

func issuePath(id string) string {
	return "/issues/" + url.PathEscape(id)
}

// do performs one request and decodes a 2xx JSON body into out (if non-nil).
// Non-2xx responses and transport failures become *domain.APIError.
func (c *Client) do(ctx context.Context, method, path string, values url.Values, body, out any) error {
	requestURL := c.baseURL + path
	if len(values) > 0 {
		requestURL += "?" + values.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return &domain.APIError{Kind: domain.ErrNetwork, Method: method, Path: path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &domain.APIError{Kind: domain.ErrNetwork, Method: method, Path: path, StatusCode: resp.StatusCode, Err: err}
	}

	c.logger.Debug("request",
		"method", method,
		"path", path,
		"query", values.Encode(),
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domain.APIError{
			Kind:       kindForStatus(resp.StatusCode),
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Detail:     errorDetail(respBody),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &domain.APIError{
			Kind:       domain.ErrServer,
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("decode response: %w", err),
		}
	}
	return nil
}

// kindForStatus maps an HTTP status to an error kind.
// 404 is NotFound; other 4xx are Validation failures; the rest are Server errors.
func kindForStatus(status int) error {
	switch {
	case status == http.StatusNotFound:
		return domain.ErrNotFound
	case status >= 400 && status < 500:
		return domain.ErrValidation
	default:
		return domain.ErrServer
	}
}

// errorDetail extracts a human-readable message from an error body.
// Handles {"detail": "..."}, {"detail": [{"msg": ...}]} and {"error": "..."}.
func errorDetail(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return truncate(strings.TrimSpace(string(body)), 200)
	}
	if payload.Error != "" {
		return payload.Error
	}
	if len(payload.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(payload.Detail, &s); err == nil {
		return s
	}
	var items []struct {
		Msg string `json:"msg"`
		Loc []any  `json:"loc"`
	}
	if err := json.Unmarshal(payload.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg == "" {
				continue
			}
			if field := locField(item.Loc); field != "" {
				msgs = append(msgs, field+": "+item.Msg)
			} else {
				msgs = append(msgs, item.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return truncate(string(payload.Detail), 200)
}

// locField returns the last element of a validation error location.
func locField(loc []any) string {
	if len(loc) == 0 {
		return ""
	}
	if s, ok := loc[len(loc)-1].(string); ok {
		return s
	}
	return ""
}

// truncate shortens s to at most n display columns, cutting on a rune
// boundary and marking the cut with "...".
func truncate(s string, n int) string {
	return runewidth.Truncate(s, n, "...")
}
