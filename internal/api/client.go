// Package api is the single point of HTTP access to the storefront backend.
// Operations validate their parameters locally, attach the bearer token read
// from the session at call time, and normalize every failure into *Error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/greenroots/storefront/internal/config"
)

// TokenSource yields the current bearer token. It is consulted on every call
// rather than cached, so a login or logout takes effect immediately.
type TokenSource func() string

type Client struct {
	baseURL    string
	paymentURL string
	http       *http.Client
	token      TokenSource
	log        *zap.Logger
}

func New(cfg config.APIConfig, payment config.PaymentConfig, token TokenSource, log *zap.Logger) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		paymentURL: strings.TrimRight(payment.BaseURL, "/"),
		http:       &http.Client{Timeout: cfg.Timeout},
		token:      token,
		log:        log,
	}
}

// envelope is the response wrapper the backend uses on every endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

type call struct {
	op     string // operation name for logs and default error messages
	method string
	path   string // joined onto baseURL unless payment is set
	body   any
	auth   bool
	// payment routes the call to the payment host instead of the main API.
	payment bool
}

// do executes a call and decodes the envelope's data field into out when out
// is non-nil. Endpoints that respond without the envelope are decoded as-is.
func (c *Client) do(ctx context.Context, req call, out any) error {
	base := c.baseURL
	if req.payment {
		base = c.paymentURL
	}

	var bodyReader io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("%s: marshal body: %w", req.op, err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, base+req.path, bodyReader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", req.op, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if req.auth {
		token := c.token()
		if token == "" {
			c.log.Warn("no auth token for authenticated call", zap.String("op", req.op))
		}
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Warn("request failed", zap.String("op", req.op), zap.Error(err))
		return networkErr(req.op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return networkErr(req.op, err)
	}

	var env envelope
	_ = json.Unmarshal(raw, &env)

	if resp.StatusCode >= 400 {
		serverMsg := orDefault(env.Message, env.Error)
		c.log.Warn("server error",
			zap.String("op", req.op),
			zap.Int("status", resp.StatusCode),
			zap.String("message", serverMsg))
		return serverErr(req.op, resp.StatusCode, serverMsg)
	}

	if out == nil {
		return nil
	}
	data := raw
	if len(env.Data) > 0 && string(env.Data) != "null" {
		data = env.Data
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", req.op, err)
	}
	return nil
}
