package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Client is the shared plumbing for all five LBU service clients: JSON over
// HTTP, bearer auth, one request per call, no retries. Errors translate
// uniformly: network failures and 5xx become UnavailableError, 4xx becomes
// BadRequestError carrying the structured payload when one exists.
type Client struct {
	service string
	base    string
	http    *http.Client
	logger  *zap.Logger
}

func newClient(service, base string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		service: service,
		base:    base,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// do issues one request. path must include any query string. An empty token
// sends no Authorization header (login, signup, activation). out may be nil
// for calls whose response body the caller ignores.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			c.logger.Error("failed to marshal request body", zap.String("service", c.service), zap.Error(err))
			return &UnavailableError{Service: c.service}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		c.logger.Error("failed to build request", zap.String("service", c.service), zap.Error(err))
		return &UnavailableError{Service: c.service}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("backend unreachable",
			zap.String("service", c.service),
			zap.String("path", path),
			zap.Error(err))
		return &UnavailableError{Service: c.service}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		c.logger.Warn("backend returned server error",
			zap.String("service", c.service),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return &UnavailableError{Service: c.service}
	case resp.StatusCode >= 400:
		// Capture the structured payload when there is one; callers decide
		// whether the message may be surfaced verbatim.
		var msg Message
		if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
			return &BadRequestError{}
		}
		return &BadRequestError{Code: msg.Code, Message: msg.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("failed to decode backend response",
			zap.String("service", c.service),
			zap.String("path", path),
			zap.Error(err))
		return &UnavailableError{Service: c.service}
	}
	return nil
}
