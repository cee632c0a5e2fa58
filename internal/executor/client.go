// Package executor triggers search configuration executions on the external
// execution service.
package executor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"
)

// Code classifies an execution failure reported at the API boundary.
type Code string

const (
	ConnectionRefused Code = "ECONNREFUSED"
	HostNotFound      Code = "ENOTFOUND"
	TimedOut          Code = "ETIMEDOUT"
	Internal          Code = "INTERNAL"
)

// Result is the outcome of an execution trigger. A zero Error means the
// execution was accepted.
type Result struct {
	Error   Code   `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// OK reports whether the execution was accepted.
func (r Result) OK() bool {
	return r.Error == ""
}

// Guidance returns a user-facing message for a failed result.
func (r Result) Guidance() string {
	switch r.Error {
	case "":
		return ""
	case ConnectionRefused:
		return "Could not connect to the search engine. Check that it is running and that the search endpoint URL and port are correct."
	case HostNotFound:
		return "The search engine host could not be resolved. Check the host name of the search endpoint."
	case TimedOut:
		return "The search engine did not respond in time. Check that it is reachable and not overloaded, then run again."
	default:
		if r.Message != "" {
			return "Execution failed: " + r.Message
		}
		return "Execution failed with error " + string(r.Error) + "."
	}
}

// Client is a client for the execution service API.
type Client struct {
	BaseURL string
	client  *http.Client
}

// NewClient creates a new execution client. A zero timeout leaves requests bounded
// only by their context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Execute asks the execution service to run configuration id over the project's
// judged phrases. Connection failures come back as a typed Result rather than
// an error; err is reserved for failures with no actionable code.
func (c *Client) Execute(ctx context.Context, id string) (Result, error) {
	endpoint := fmt.Sprintf("%s/api/search-configurations/%s/execute", c.BaseURL, url.PathEscape(id))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if code, ok := classify(err); ok {
			return Result{Error: code, Message: err.Error()}, nil
		}
		return Result{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read response: %w", err)
	}

	var result Result
	if len(strings.TrimSpace(string(raw))) > 0 {
		if err := json.Unmarshal(raw, &result); err != nil {
			if resp.StatusCode >= http.StatusBadRequest {
				return Result{}, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
			}
			return Result{}, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	if resp.StatusCode >= http.StatusBadRequest && result.OK() {
		return Result{Error: Internal, Message: fmt.Sprintf("bad status %d", resp.StatusCode)}, nil
	}
	return result, nil
}

func classify(err error) (Code, bool) {
	var dnsErr *net.DNSError
	var netErr net.Error
	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		return ConnectionRefused, true
	case errors.As(err, &dnsErr) && dnsErr.IsNotFound:
		return HostNotFound, true
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return TimedOut, true
	default:
		return "", false
	}
}
