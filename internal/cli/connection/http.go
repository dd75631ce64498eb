package connection

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/ota-go/internal/core/domain"
	"github.com/yndnr/ota-go/internal/infra/buildinfo"
	"github.com/yndnr/ota-go/internal/telemetry/logger"
	"github.com/yndnr/ota-go/internal/telemetry/metric"
)

// Header names set by the pipeline.
const (
	HeaderNamespace = "x-ats-namespace"
	HeaderRequestID = "X-Request-ID"
)

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Failed reports whether the server answered with an error status.
func (r *Response) Failed() bool {
	return r.StatusCode >= 400
}

// HTTPClient is the request pipeline shared by every service call.
type HTTPClient struct {
	client    *http.Client
	metrics   *metric.Registry
	userAgent string
}

// HTTPClientOption configures an HTTPClient.
type HTTPClientOption func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) HTTPClientOption {
	return func(h *HTTPClient) {
		h.client = c
	}
}

// WithMetrics records every exchange in r.
func WithMetrics(r *metric.Registry) HTTPClientOption {
	return func(h *HTTPClient) {
		h.metrics = r
	}
}

// NewHTTPClient creates a pipeline using the default transport policy.
func NewHTTPClient(opts ...HTTPClientOption) *HTTPClient {
	c := &HTTPClient{
		client:    &http.Client{},
		userAgent: buildinfo.UserAgent(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send attaches the bearer token and namespace headers, executes req and
// returns the full response. A nil token sends the request unauthenticated.
//
// A token whose scope carries no single namespace still authenticates the
// request; the namespace header is skipped with a warning.
func (c *HTTPClient) Send(ctx context.Context, req *http.Request, token *domain.AccessToken) (*Response, error) {
	id := ulid.Make().String()
	ctx = logger.WithRequestID(ctx, id)
	log := logger.L(ctx)

	req = req.WithContext(ctx)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(HeaderRequestID, id)

	if token != nil {
		req.Header.Set("Authorization", "Bearer "+token.AccessToken)
		ns, err := token.Namespace()
		if err != nil {
			log.Warn("skipping namespace header", "error", err)
		} else {
			req.Header.Set(HeaderNamespace, ns)
		}
	}

	log.Debug("sending request", "method", req.Method, "url", req.URL.String())
	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.observe(ctx, 0, start)
		return nil, domain.ErrTransport.WithDetails(req.Method + " " + req.URL.Redacted()).WithCause(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	c.observe(ctx, resp.StatusCode, start)
	if err != nil {
		return nil, domain.ErrTransport.WithDetails("reading response body").WithCause(err)
	}

	log.Debug("received response", "status", resp.StatusCode, "bytes", len(body), "elapsed", time.Since(start))
	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

func (c *HTTPClient) observe(ctx context.Context, code int, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.ObserveRequest(string(ServiceFromContext(ctx)), code, time.Since(start))
}

type serviceKey struct{}

// WithService labels requests sent with ctx by backend service.
func WithService(ctx context.Context, svc domain.Service) context.Context {
	return context.WithValue(ctx, serviceKey{}, svc)
}

// ServiceFromContext returns the service label, or "unknown".
func ServiceFromContext(ctx context.Context) domain.Service {
	if svc, ok := ctx.Value(serviceKey{}).(domain.Service); ok {
		return svc
	}
	return "unknown"
}
