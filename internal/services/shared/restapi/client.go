// Package restapi is the data access client for the campaign REST backend.
//
// It owns request encoding, trace propagation, and the normalization of
// upstream failures into typed platform errors. It holds no state between
// calls beyond its configuration.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/louisbranch/tabletop/internal/platform/errors"
	"github.com/louisbranch/tabletop/internal/platform/logging"
	"github.com/louisbranch/tabletop/internal/platform/timeouts"
)

const (
	// DefaultArtPathPrefix marks art URLs served by the API itself.
	DefaultArtPathPrefix = "/api/"

	// FallbackErrorMessage is used when an error body carries no message.
	FallbackErrorMessage = "request failed"

	requestIDHeader = "X-Request-ID"
	maxErrorBody    = 64 << 10
)

var tracer trace.Tracer = otel.Tracer("github.com/louisbranch/tabletop/internal/services/shared/restapi")

// Config configures a Client.
type Config struct {
	// BaseURL is the absolute backend root, e.g. "http://localhost:8000".
	BaseURL string
	// ArtPathPrefix marks API-relative art URLs. Defaults to DefaultArtPathPrefix.
	ArtPathPrefix string
	// HTTPClient overrides the transport. Defaults to a client with
	// timeouts.APIRequest.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client performs JSON requests against the backend.
type Client struct {
	baseURL       *url.URL
	artPathPrefix string
	httpClient    *http.Client
	logger        *slog.Logger
}

// New validates cfg and returns a Client.
func New(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return nil, errors.New("api base url is required")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("api base url %q must be absolute", raw)
	}
	base.Path = strings.TrimRight(base.Path, "/")

	prefix := strings.TrimSpace(cfg.ArtPathPrefix)
	if prefix == "" {
		prefix = DefaultArtPathPrefix
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeouts.APIRequest}
	}
	return &Client{
		baseURL:       base,
		artPathPrefix: prefix,
		httpClient:    httpClient,
		logger:        logging.OrDiscard(cfg.Logger),
	}, nil
}

// Get decodes the JSON response of GET path into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post sends body as JSON and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Put sends body as JSON and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body any, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

// Delete issues DELETE path and discards any response body.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// Do performs one request. A nil body sends no payload; a nil out discards the
// response body. Non-2xx responses and network failures return typed errors.
func (c *Client) Do(ctx context.Context, method string, path string, body any, out any) error {
	if c == nil {
		return apperrors.E(apperrors.KindUnavailable, "api client is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := tracer.Start(ctx, method+" "+path, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		c.logger.WarnContext(ctx, "api request failed", "method", method, "path", path, "error", err)
		return apperrors.Wrap(apperrors.KindTransport, "the campaign service could not be reached", err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp)
		span.SetStatus(codes.Error, apiErr.Error())
		c.logger.DebugContext(ctx, "api request rejected", "method", method, "path", path, "status", resp.StatusCode)
		return apiErr
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		span.SetStatus(codes.Error, err.Error())
		return apperrors.Wrap(apperrors.KindTransport, "the campaign service returned an unreadable response", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method string, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(requestIDHeader, requestID)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
	return req, nil
}

func (c *Client) endpoint(path string) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + "/" + strings.TrimLeft(path, "/")
	return u.String()
}

// decodeError reads the conventional error message field from an error body.
func decodeError(resp *http.Response) error {
	kind := apperrors.KindForStatus(resp.StatusCode)
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	message := ErrorMessage(data)
	if message == "" {
		message = FallbackErrorMessage
	}
	return apperrors.Error{
		Kind:    kind,
		Message: message,
		Cause:   fmt.Errorf("upstream status %d", resp.StatusCode),
	}
}

// ErrorMessage extracts the human-readable message from an error body.
// It checks "error", then "message", then "detail"; non-JSON bodies yield "".
func ErrorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	for _, field := range []string{"error", "message", "detail"} {
		value := gjson.GetBytes(body, field)
		if value.Type == gjson.String {
			if msg := strings.TrimSpace(value.String()); msg != "" {
				return msg
			}
		}
		// Some backends nest the message: {"error":{"message":"..."}}.
		if value.IsObject() {
			if msg := strings.TrimSpace(value.Get("message").String()); msg != "" {
				return msg
			}
		}
	}
	return ""
}
