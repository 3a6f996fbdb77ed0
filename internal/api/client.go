// Package api issues the license verification request and applies the
// single 500-triggered fallback retry.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/LerianStudio/lib-commons/commons/log"

	"github.com/VeduStorm/NovaCore/constant"
	licErr "github.com/VeduStorm/NovaCore/error"
	"github.com/VeduStorm/NovaCore/internal/normalize"
	"github.com/VeduStorm/NovaCore/model"
)

// Client handles communication with the license API
type Client struct {
	httpClient *http.Client
	logger     log.Logger
}

// New creates a new API client
func New(httpClient *http.Client, logger log.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: constant.DefaultHTTPTimeout,
		}
	}

	return &Client{
		httpClient: httpClient,
		logger:     logger,
	}
}

// SetHTTPClient allows overriding the HTTP client (useful for testing)
func (c *Client) SetHTTPClient(client *http.Client) {
	if client != nil {
		c.httpClient = client
	}
}

// Verify performs the license verification call and returns the normalized
// result. The first attempt carries no body; if the server answers with a 500
// (or a textual "Internal Server Error"), the call is retried exactly once
// with a JSON body. Transport failures surface as *licErr.NetworkError,
// uninterpretable responses as *licErr.ProtocolError.
func (c *Client) Verify(ctx context.Context, url, key string) (model.NormalizedResult, error) {
	status, contentType, body, err := c.attempt(ctx, url, key, false)
	if err != nil {
		c.logger.Warnf("License verification request failed - error: %s", err.Error())
		return model.NormalizedResult{}, &licErr.NetworkError{Attempt: 1, Msg: err.Error(), Err: err}
	}

	if isInternalServerError(status, body) {
		c.logger.Warnf("License server returned %d, retrying once with JSON body", status)

		status, contentType, body, err = c.attempt(ctx, url, key, true)
		if err != nil {
			c.logger.Warnf("License verification retry failed - error: %s", err.Error())
			return model.NormalizedResult{}, &licErr.NetworkError{Attempt: 2, Msg: err.Error(), Err: err}
		}

		if isInternalServerError(status, body) {
			return model.NormalizedResult{}, &licErr.NetworkError{
				Attempt: 2,
				Msg:     fmt.Sprintf("server error %d persisted after fallback retry: %s", status, normalize.Preview(body)),
			}
		}
	}

	if status == http.StatusNoContent {
		return model.NormalizedResult{}, &licErr.ProtocolError{
			StatusCode:  status,
			Reason:      "no content",
			ContentType: contentType,
		}
	}

	return normalize.Normalize(status, contentType, body)
}

// attempt sends one POST to the license API. withBody selects the fallback
// shape carrying {"license": key}.
func (c *Client) attempt(ctx context.Context, url, key string, withBody bool) (int, string, []byte, error) {
	var reqBody io.Reader

	if withBody {
		payload, err := json.Marshal(map[string]string{"license": key})
		if err != nil {
			return 0, "", nil, fmt.Errorf("failed to marshal request body: %w", err)
		}

		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, reqBody)
	if err != nil {
		return 0, "", nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(constant.LicenseKeyHeader, key)
	req.Header.Set("Accept", "application/json")

	if withBody {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, "", nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp.StatusCode, resp.Header.Get("Content-Type"), body, nil
}

// isInternalServerError matches the upstream API's two ways of reporting a
// server fault: the status code, or the phrase in a non-500 body.
func isInternalServerError(status int, body []byte) bool {
	if status == http.StatusInternalServerError {
		return true
	}

	return strings.Contains(string(body), "Internal Server Error")
}
