// Package gateway implements the typed HTTP gateway the rest of the client
// talks through. Every exchange is normalized into a ports.Response; non-2xx
// answers are data, not errors.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kevgathuku/docue/internal/core/ports"
	"github.com/kevgathuku/docue/internal/gateway/metrics"
)

const headerToken = "x-access-token"

// Client issues requests against a single base URL resolved at startup.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// New returns a gateway client for the given base URL. The transport's
// default timeout applies; callers impose their own via ctx.
func New(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     log,
	}
}

// Request performs one HTTP exchange. See ports.Gateway for the contract.
func (c *Client) Request(ctx context.Context, method, path string, body any, token string) ports.Response {
	start := time.Now()
	resp := c.do(ctx, method, path, body, token)
	metrics.RequestsTotal.WithLabelValues(method, metrics.StatusClass(resp.Status)).Inc()
	metrics.RequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.Status).
		Bool("ok", resp.OK).
		Msg("api request")
	return resp
}

func (c *Client) do(ctx context.Context, method, path string, body any, token string) ports.Response {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return ports.Response{Status: 0, Err: "network"}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return ports.Response{Status: 0, Err: "network"}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(headerToken, token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("transport failure")
		return ports.Response{Status: 0, Err: "network"}
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return ports.Response{Status: 0, Err: "network"}
	}

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return ports.Response{OK: true, Status: res.StatusCode, Body: data}
	}
	return ports.Response{
		Status: res.StatusCode,
		Body:   data,
		Err:    errorMessage(res.StatusCode, data),
	}
}

// errorMessage extracts the server's message from the error envelope,
// accepting both {"message": ...} and {"error": ...}, with a generic
// fallback per status class.
func errorMessage(status int, body []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}

	switch {
	case status == 401:
		return "authentication required"
	case status == 403:
		return "authorization error"
	case status == 404:
		return "not found"
	case status >= 500:
		return "server error"
	default:
		return "request failed"
	}
}
