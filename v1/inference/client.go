package inference

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Aleph-Alpha/inference-client/v1/logger"
	"github.com/Aleph-Alpha/inference-client/v1/observability"
)

// DefaultBaseURL is the public Aleph Alpha API.
const DefaultBaseURL = "https://api.aleph-alpha.com"

// Client sends tasks to the inference service.
//
// A Client only holds immutable configuration and is safe for concurrent use.
// Every Execute call issues exactly one HTTP request: there is no retry, no
// queuing and no timeout on this layer. Bound latency through ctx.
type Client struct {
	baseURL *url.URL
	token   string

	sender   HTTPSender
	logger   Logger
	tracer   Tracer
	observer observability.Observer
}

// ClientOption customizes a Client at construction time.
type ClientOption func(*Client)

// WithHTTPSender replaces the default *http.Client.
func WithHTTPSender(sender HTTPSender) ClientOption {
	return func(c *Client) {
		if sender != nil {
			c.sender = sender
		}
	}
}

// WithLogger sets the logger for request outcomes.
func WithLogger(l Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTracer enables a span per call and trace propagation to the service.
func WithTracer(t Tracer) ClientOption {
	return func(c *Client) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithObserver reports every call to o.
func WithObserver(o observability.Observer) ClientOption {
	return func(c *Client) {
		c.observer = o
	}
}

// NewClient creates a client for DefaultBaseURL authenticating with token.
func NewClient(token string, opts ...ClientOption) (*Client, error) {
	return NewClientWithBaseURL(DefaultBaseURL, token, opts...)
}

// NewClientWithBaseURL creates a client for the service at baseURL. It fails
// only when baseURL is not an absolute URL; the token is not checked.
func NewClientWithBaseURL(baseURL, token string, opts ...ClientOption) (*Client, error) {
	u, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: u,
		token:   token,
		sender:  &http.Client{},
		logger:  logger.NewNop(),
		tracer:  nopTracer{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidBaseURL, raw, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("%w %q: not an absolute url", ErrInvalidBaseURL, raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	return u, nil
}

// BaseURL returns the service URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Execute runs task on model. On success the response variant matches the
// task kind. Failures are *Error values of one of the ErrorKind classes,
// except for tasks that cannot be encoded at all.
func (c *Client) Execute(ctx context.Context, model string, task Task, how How) (Response, error) {
	task, err := normalizeTask(task)
	if err != nil {
		return nil, err
	}
	kind := task.Kind()

	path, body, err := encodeRequest(model, task)
	if err != nil {
		return nil, err
	}

	ctx, span := c.tracer.StartSpan(ctx, "inference."+kind.String())
	defer span.End()
	c.tracer.SetAttributes(span, map[string]interface{}{
		"inference.model": model,
		"inference.task":  kind.String(),
		"inference.nice":  how.BeNice,
	})

	start := time.Now()
	resp, status, size, err := c.send(ctx, kind, path, body, how)
	duration := time.Since(start)

	fields := map[string]interface{}{
		"model":       model,
		"task":        kind.String(),
		"status_code": status,
		"duration_ms": duration.Milliseconds(),
	}
	metadata := map[string]interface{}{
		"status_code": status,
		"nice":        how.BeNice,
	}
	if status != 0 {
		c.tracer.SetAttributes(span, map[string]interface{}{"http.status_code": status})
	}

	if err != nil {
		if errKind, ok := KindOf(err); ok {
			fields["error_kind"] = errKind.String()
			metadata["error_kind"] = errKind.String()
		}
		c.tracer.RecordErrorOnSpan(span, err)
		c.logger.WarnWithContext(ctx, "inference request failed", err, fields)
	} else {
		c.logger.DebugWithContext(ctx, "inference request completed", nil, fields)
	}

	c.observeOperation(kind.String(), model, path, duration, err, int64(size), metadata)

	return resp, err
}

// send performs the round trip and classifies the outcome.
func (c *Client) send(ctx context.Context, kind TaskKind, path string, body []byte, how How) (Response, int, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, how), bytes.NewReader(body))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("inference: build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	for key, value := range c.tracer.GetCarrier(ctx) {
		req.Header.Set(key, value)
	}

	resp, err := c.sender.Do(req)
	if err != nil {
		return nil, 0, 0, transportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, len(data), transportError(err)
	}

	out, err := classify(kind, resp.StatusCode, data)
	return out, resp.StatusCode, len(data), err
}

// endpoint joins path to the base URL and adds nice=true when requested.
func (c *Client) endpoint(path string, how How) string {
	u := c.baseURL.JoinPath(path)
	if how.BeNice {
		q := u.Query()
		q.Set("nice", "true")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// Complete runs a completion task.
func (c *Client) Complete(ctx context.Context, model string, task TaskCompletion, how How) (*CompletionOutput, error) {
	resp, err := c.Execute(ctx, model, task, how)
	if err != nil {
		return nil, err
	}
	out, ok := resp.(*CompletionOutput)
	if !ok {
		return nil, fmt.Errorf("inference: unexpected response %T for completion", resp)
	}
	return out, nil
}

// SemanticEmbed runs a semantic embedding task.
func (c *Client) SemanticEmbed(ctx context.Context, model string, task TaskSemanticEmbedding, how How) (*EmbeddingOutput, error) {
	resp, err := c.Execute(ctx, model, task, how)
	if err != nil {
		return nil, err
	}
	out, ok := resp.(*EmbeddingOutput)
	if !ok {
		return nil, fmt.Errorf("inference: unexpected response %T for semantic embedding", resp)
	}
	return out, nil
}

// Close releases idle connections of the sender, if it keeps any.
func (c *Client) Close() error {
	if closer, ok := c.sender.(interface{ CloseIdleConnections() }); ok {
		closer.CloseIdleConnections()
	}
	return nil
}
