package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"compliance_tui/pkg/config"
	"compliance_tui/pkg/dispatch"
	"compliance_tui/pkg/response"
)

const (
	httpDefaultTimeout = 30
	maxResponseBytes   = 4 << 20
)

func init() {
	dispatch.RegisterResponder(dispatch.ResponderInfo{
		Type:        dispatch.ResponderHTTP,
		Name:        "Backend API",
		Description: "POSTs each query to a JSON backend endpoint",
	}, NewHTTPResponder)
}

// HTTPResponder sends queries to a backend that speaks the structured
// response contract.
type HTTPResponder struct {
	endpoint  string
	authToken string
	client    *http.Client
}

type httpRequest struct {
	Message string `json:"message"`
}

type httpErrorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// NewHTTPResponder creates an HTTP responder from config.
func NewHTTPResponder(cfg config.Config) (dispatch.Responder, error) {
	return newHTTPResponder(cfg.HTTP, nil)
}

func newHTTPResponder(cfg config.HTTPConfig, client *http.Client) (*HTTPResponder, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("http endpoint is required")
	}

	timeout := cfg.APITimeoutSeconds
	if timeout <= 0 {
		timeout = httpDefaultTimeout
	}
	if client == nil {
		client = &http.Client{Timeout: time.Duration(timeout) * time.Second}
	}

	slog.Debug("http_responder_ready", "endpoint", endpoint, "timeout_seconds", timeout)
	return &HTTPResponder{
		endpoint:  endpoint,
		authToken: strings.TrimSpace(cfg.AuthToken),
		client:    client,
	}, nil
}

// Respond posts {"message": query} and decodes the structured response.
func (r *HTTPResponder) Respond(ctx context.Context, query string) (response.Structured, error) {
	body, err := json.Marshal(httpRequest{Message: query})
	if err != nil {
		return response.Structured{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return response.Structured{}, &dispatch.Error{Kind: dispatch.ErrTransport, Message: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if r.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+r.authToken)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		if de := dispatch.ContextError(ctx); de != nil {
			return response.Structured{}, de
		}
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			return response.Structured{}, &dispatch.Error{Kind: dispatch.ErrTimeout, Err: err}
		}
		return response.Structured{}, &dispatch.Error{Kind: dispatch.ErrTransport, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return response.Structured{}, &dispatch.Error{Kind: dispatch.ErrTransport, Message: "read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return response.Structured{}, statusError(resp.StatusCode, data)
	}

	res, err := response.Parse(data)
	if err != nil {
		kind := dispatch.ErrDecode
		if errors.Is(err, response.ErrInvalid) {
			kind = dispatch.ErrMalformed
		}
		return response.Structured{}, &dispatch.Error{Kind: kind, Message: "invalid response body", Err: err}
	}
	return res, nil
}

// statusError maps a non-2xx reply to a dispatch error, using the backend's
// {"error", "kind"} body when it sends one.
func statusError(status int, body []byte) *dispatch.Error {
	de := &dispatch.Error{Kind: dispatch.ErrStatus, Status: status, Message: http.StatusText(status)}

	var eb httpErrorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Error != "" {
			de.Message = eb.Error
		}
		switch k := dispatch.ErrorKind(eb.Kind); k {
		case dispatch.ErrTimeout, dispatch.ErrMalformed, dispatch.ErrDecode:
			de.Kind = k
		}
	}
	if status == http.StatusGatewayTimeout || status == http.StatusRequestTimeout {
		de.Kind = dispatch.ErrTimeout
	}
	return de
}

var _ dispatch.Responder = (*HTTPResponder)(nil)
