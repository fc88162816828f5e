package species

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/raizdigital/especies/pkg/logging"
)

const (
	// RequestIDHeader is the header carrying the per-request correlation id.
	RequestIDHeader = "X-Request-ID"

	// DefaultTimeout bounds a single call to the species API.
	DefaultTimeout = 30 * time.Second
)

// httpClient implements Client against the REST collection.
type httpClient struct {
	baseURL    string
	httpClient *http.Client
	headers    http.Header
	logger     *slog.Logger
}

// ClientOption configures the HTTP client.
type ClientOption func(*httpClient)

// WithTimeout sets the HTTP timeout for the client. Zero disables it.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *httpClient) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient overrides the underlying *http.Client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *httpClient) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithHeader adds a header sent on every request.
func WithHeader(key, value string) ClientOption {
	return func(c *httpClient) {
		c.headers.Add(key, value)
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *httpClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewHTTPClient creates a Client for the collection at collectionURL
// (e.g. "http://localhost:8080/api/especies").
func NewHTTPClient(collectionURL string, opts ...ClientOption) Client {
	c := &httpClient{
		baseURL: strings.TrimRight(collectionURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		headers: make(http.Header),
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List returns the full collection.
func (c *httpClient) List(ctx context.Context) ([]Species, error) {
	resp, requestID, err := c.doRequest(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		return nil, c.parseError(resp, requestID)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, connectionError(c.baseURL, requestID, err)
	}
	items, err := decodeList(body)
	if err != nil {
		return nil, fmt.Errorf("list species: %w", err)
	}
	return items, nil
}

// Create posts a new species to the collection.
func (c *httpClient) Create(ctx context.Context, p Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode species: %w", err)
	}
	return c.expectSuccess(ctx, http.MethodPost, c.baseURL, body)
}

// Update replaces the species addressed by id.
func (c *httpClient) Update(ctx context.Context, id int64, p Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode species: %w", err)
	}
	return c.expectSuccess(ctx, http.MethodPut, c.itemURL(id), body)
}

// Delete removes the species addressed by id.
func (c *httpClient) Delete(ctx context.Context, id int64) error {
	return c.expectSuccess(ctx, http.MethodDelete, c.itemURL(id), nil)
}

func (c *httpClient) itemURL(id int64) string {
	return c.baseURL + "/" + strconv.FormatInt(id, 10)
}

// expectSuccess performs a mutating call whose response body is not used.
func (c *httpClient) expectSuccess(ctx context.Context, method, url string, body []byte) error {
	resp, requestID, err := c.doRequest(ctx, method, url, body)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		return c.parseError(resp, requestID)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// doRequest performs an HTTP request and returns the response with its request id.
func (c *httpClient) doRequest(ctx context.Context, method, url string, body []byte) (*http.Response, string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	for k, values := range c.headers {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	requestID := uuid.New().String()
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("species request failed",
			"method", method, "url", url, "requestId", requestID, "error", err)
		return nil, requestID, connectionError(c.baseURL, requestID, err)
	}

	c.logger.Debug("species request",
		"method", method,
		"url", url,
		"status", resp.StatusCode,
		"requestId", requestID,
		"duration", time.Since(start))
	return resp, requestID, nil
}

// parseError builds an APIError from a non-success response.
func (c *httpClient) parseError(resp *http.Response, requestID string) error {
	body, _ := io.ReadAll(resp.Body)

	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		code := errResp.Error
		if code == "" {
			code = ErrCodeUnknown
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			ErrorCode:  code,
			Message:    errResp.Message,
			RequestID:  requestID,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		ErrorCode:  ErrCodeUnknown,
		Message:    fmt.Sprintf("server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		RequestID:  requestID,
	}
}

func isSuccess(status int) bool {
	return status >= 200 && status <= 299
}
