package entra

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Python-AI-Solutions/entra-validation-app/logutil"
)

// DefaultTimeout bounds each HTTP call when the caller does not supply one.
const DefaultTimeout = 30 * time.Second

// Response captures an HTTP response from an Entra endpoint.
type Response struct {
	Status      int
	ContentType string
	Payload     string
}

// IsJSON reports whether the response declared a JSON content type.
func (r *Response) IsJSON() bool {
	return strings.Contains(r.ContentType, "application/json")
}

// JSON decodes the payload into v. It fails when the response did not
// declare a JSON content type or the body is malformed.
func (r *Response) JSON(v any) error {
	if !r.IsJSON() {
		return fmt.Errorf("response is not JSON (content type %q)", r.ContentType)
	}
	if err := json.Unmarshal([]byte(r.Payload), v); err != nil {
		return fmt.Errorf("failed to decode JSON response: %w", err)
	}
	return nil
}

// Pretty returns the payload re-indented with sorted keys when it is JSON,
// and the raw payload otherwise.
func (r *Response) Pretty() string {
	if !r.IsJSON() {
		return r.Payload
	}
	var parsed any
	if err := json.Unmarshal([]byte(r.Payload), &parsed); err != nil {
		return r.Payload
	}
	pretty, err := json.MarshalIndent(parsed, "", "  ")
	if err != nil {
		return r.Payload
	}
	return string(pretty)
}

// HTTPError is returned for non-2xx responses, with the body captured for
// diagnostics.
type HTTPError struct {
	Status int
	URL    string
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d error while calling %s: %s", e.Status, e.URL, e.Body)
}

// Client performs single-attempt HTTP calls with a fixed timeout. There is
// no retry, caching or connection state beyond the underlying transport.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a Client whose calls are bounded by timeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{httpClient: &http.Client{Timeout: timeout}}
}

// Get performs a GET request. When bearer is non-empty it is sent as an
// Authorization header.
func (c *Client) Get(ctx context.Context, rawURL, bearer string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", rawURL, err)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	return c.execute(req)
}

// PostForm performs a form-encoded POST, as token endpoints require.
func (c *Client) PostForm(ctx context.Context, rawURL string, form url.Values) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", rawURL, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.execute(req)
}

// execute sends the request once. Non-2xx responses become an *HTTPError
// carrying the response body; there are no retries.
func (c *Client) execute(req *http.Request) (*Response, error) {
	correlationID := uuid.NewString()
	req.Header.Set("client-request-id", correlationID)

	logutil.Debug("calling endpoint",
		"method", req.Method,
		"url", req.URL.String(),
		"client-request-id", correlationID,
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", req.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", req.URL, err)
	}

	logutil.Debug("endpoint responded",
		"url", req.URL.String(),
		"status", resp.StatusCode,
		"client-request-id", correlationID,
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{Status: resp.StatusCode, URL: req.URL.String(), Body: string(body)}
	}

	return &Response{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Payload:     string(body),
	}, nil
}
