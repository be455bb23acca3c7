package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Backend collection names, as they appear in the URL.
const (
	Employees = "Employees"
	Countries = "Countries"
	States    = "States"
	Districts = "Districts"
	Languages = "Languages"
	Roles     = "Roles"
	UserRoles = "UserRoles"
	Users     = "Users"
)

// maxErrorBody bounds how much of a failed response is kept for the error.
const maxErrorBody = 512

// StatusError is returned for any non-2xx backend response. The console does
// not tell validation, not-found and server failures apart.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: backend returned %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: backend returned %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// Client talks JSON to the REST backend rooted at a base URL.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *logrus.Logger
}

// NewClient builds a client for baseURL. The base URL is passed in by the
// caller rather than read from the environment here.
func NewClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// WithHTTPClient swaps the underlying http.Client; tests use it to point at httptest servers.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

// BaseURL returns the backend root the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) url(parts ...string) string {
	return c.baseURL + "/" + strings.Join(parts, "/")
}

// do sends in as the JSON body (when non-nil) and decodes the response into out (when non-nil).
func (c *Client) do(ctx context.Context, collection, method, url string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", collection, err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		observe(collection, method, "error", start)
		c.logger.WithError(err).WithFields(logrus.Fields{"method": method, "url": url}).Warn("backend request failed")
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer func() { _ = res.Body.Close() }()
	observe(collection, method, fmt.Sprint(res.StatusCode), start)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		serr := &StatusError{Method: method, URL: url, StatusCode: res.StatusCode, Body: strings.TrimSpace(string(b))}
		c.logger.WithFields(logrus.Fields{"method": method, "url": url, "status": res.StatusCode}).Warn("backend rejected request")
		return serr
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", collection, err)
	}
	return nil
}
