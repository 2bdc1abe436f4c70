package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	wmserrors "github.com/wms-platform/wms-web/pkg/errors"
	"github.com/wms-platform/wms-web/pkg/logging"
	"github.com/wms-platform/wms-web/pkg/metrics"
	"github.com/wms-platform/wms-web/pkg/notify"
	"github.com/wms-platform/wms-web/pkg/resilience"
	"github.com/wms-platform/wms-web/pkg/session"
	"github.com/wms-platform/wms-web/pkg/tenant"
	"github.com/wms-platform/wms-web/pkg/tracing"
)

// Defaults applied to every call
const (
	DefaultBasePath     = "/api/v1"
	DefaultTimeout      = 5 * time.Second
	HeaderRequestID     = "X-Request-ID"
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	ContentTypeJSON     = "application/json"
)

var errServerStatus = errors.New("server error status")

// Config holds the transport defaults
type Config struct {
	BaseURL  string            `mapstructure:"base_url" validate:"required,url"`
	BasePath string            `mapstructure:"base_path"`
	Timeout  time.Duration     `mapstructure:"timeout" validate:"gte=0"`
	Headers  map[string]string `mapstructure:"headers"`
	Tenant   *tenant.Context   `mapstructure:"tenant"`
	// RateLimit is the allowed calls per second; 0 disables limiting
	RateLimit float64 `mapstructure:"rate_limit" validate:"gte=0"`
	Burst     int     `mapstructure:"burst" validate:"gte=0"`
	// CircuitBreaker enables the breaker when set
	CircuitBreaker *resilience.CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

// DefaultConfig returns the transport defaults for baseURL
func DefaultConfig(baseURL string) *Config {
	return &Config{
		BaseURL:  baseURL,
		BasePath: DefaultBasePath,
		Timeout:  DefaultTimeout,
	}
}

// RequestValidator checks an outgoing request before it is sent
type RequestValidator interface {
	ValidateRequest(req *http.Request) error
}

// Client is the transport adapter for the WMS API. It issues exactly one
// network call per Do and never retries.
type Client struct {
	cfg       *Config
	sess      *session.Context
	http      *http.Client
	logger    *logging.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
	sink      notify.Sink
	limiter   *rate.Limiter
	breaker   *resilience.CircuitBreaker
	validator RequestValidator
	extra     []Handler
	handlers  []Handler
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger
func WithLogger(l *logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithMetrics records call metrics
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithTracer sets the tracer used for client spans
func WithTracer(t trace.Tracer) Option {
	return func(c *Client) { c.tracer = t }
}

// WithSink sets where failure notices are shown
func WithSink(s notify.Sink) Option {
	return func(c *Client) { c.sink = s }
}

// WithValidator checks every request before it is sent
func WithValidator(v RequestValidator) Option {
	return func(c *Client) { c.validator = v }
}

// WithHandlers appends stages after the built-in pipeline
func WithHandlers(h ...Handler) Option {
	return func(c *Client) { c.extra = append(c.extra, h...) }
}

// New creates a Client. sess may be nil for calls that need no session.
func New(cfg *Config, sess *session.Context, opts ...Option) (*Client, error) {
	if cfg == nil || cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	c := &Client{
		cfg:  cfg,
		sess: sess,
		// No cookie jar: credentials travel only in the Authorization header.
		http:   &http.Client{},
		logger: logging.Nop(),
		tracer: otel.Tracer("wms-web/httpclient"),
		sink:   notify.Discard,
	}
	for _, opt := range opts {
		opt(c)
	}

	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	if cfg.CircuitBreaker != nil {
		c.breaker = resilience.NewCircuitBreaker(cfg.CircuitBreaker, c.logger.Logger, isBreakerFailure, c.onBreakerChange)
	}

	sink := c.sink
	if c.metrics != nil {
		sink = notify.Counted{Sink: sink, Count: c.metrics.RecordNotification}
	}
	c.handlers = append([]Handler{
		LogoutHandler{Session: sess, Metrics: c.metrics},
		NotifyHandler{Sink: sink},
		ObserveHandler{Logger: c.logger.WithComponent("httpclient"), Metrics: c.metrics},
	}, c.extra...)

	return c, nil
}

// Session returns the session the client reads its token from
func (c *Client) Session() *session.Context {
	return c.sess
}

// Sink returns the notification sink
func (c *Client) Sink() notify.Sink {
	return c.sink
}

// BreakerStatus reports the breaker counters, if a breaker is configured
func (c *Client) BreakerStatus() (resilience.CircuitBreakerStatus, bool) {
	if c.breaker == nil {
		return resilience.CircuitBreakerStatus{}, false
	}
	return c.breaker.Status(), true
}

// Do performs req and runs the result through the pipeline
func (c *Client) Do(ctx context.Context, req *Request) *Result {
	if c.sess != nil {
		var release context.CancelFunc
		ctx, release = c.sess.Bind(ctx)
		defer release()
	}

	requestID := uuid.NewString()
	ctx = logging.ContextWithCall(ctx, requestID, req.OperationName())
	if c.sess != nil {
		ctx = logging.ContextWithUsername(ctx, c.sess.Username())
	}

	fullPath := ResolvePath(c.cfg.BasePath, req.Path)
	ctx, span := tracing.StartClientSpan(ctx, c.tracer, req.OperationName(), req.Method, fullPath)
	defer span.End()

	if c.metrics != nil {
		c.metrics.IncrementInFlight()
		defer c.metrics.DecrementInFlight()
	}

	start := time.Now()
	ex := c.exchange(ctx, req, requestID)
	ex.Duration = time.Since(start)

	res := Interpret(ex)
	for _, h := range c.handlers {
		h.Handle(ctx, ex, res)
	}
	return res
}

type response struct {
	status int
	header http.Header
	body   []byte
}

func (c *Client) exchange(ctx context.Context, req *Request, requestID string) *Exchange {
	ex := &Exchange{Request: req}

	httpReq, err := c.buildRequest(ctx, req, requestID)
	if err != nil {
		ex.Err = wmserrors.ErrInvalidRequest(err)
		return ex
	}
	ex.URL = httpReq.URL.String()

	if c.validator != nil {
		if err := c.validator.ValidateRequest(httpReq); err != nil {
			ex.Err = wmserrors.ErrInvalidRequest(err)
			return ex
		}
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.cfg.Timeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	httpReq = httpReq.WithContext(callCtx)

	// The wait counts against the call timeout. Wait fails early, without a
	// context error, when the next token comes after the deadline.
	if c.limiter != nil {
		if err := c.limiter.Wait(callCtx); err != nil {
			if ctx.Err() != nil {
				ex.Err = contextError(ctx, err)
			} else {
				ex.Err = fmt.Errorf("request timed out after %s waiting for the rate limit: %w", timeout, context.DeadlineExceeded)
			}
			return ex
		}
	}

	send := func() (any, error) {
		resp, err := c.http.Do(httpReq)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		out := &response{status: resp.StatusCode, header: resp.Header, body: body}
		if resp.StatusCode >= http.StatusInternalServerError {
			return out, errServerStatus
		}
		return out, nil
	}

	var (
		v       any
		sendErr error
	)
	if c.breaker != nil {
		v, sendErr = c.breaker.Execute(send)
	} else {
		v, sendErr = send()
	}

	if out, ok := v.(*response); ok && out != nil {
		ex.Status = out.status
		ex.Header = out.header
		ex.Body = out.body
		return ex
	}

	switch {
	case ctx.Err() != nil:
		ex.Err = contextError(ctx, sendErr)
	case callCtx.Err() != nil:
		ex.Err = fmt.Errorf("request timed out after %s: %w", timeout, context.DeadlineExceeded)
	default:
		ex.Err = sendErr
	}
	return ex
}

func (c *Client) buildRequest(ctx context.Context, req *Request, requestID string) (*http.Request, error) {
	if req.err != nil {
		return nil, req.err
	}

	u := strings.TrimRight(c.cfg.BaseURL, "/") + ResolvePath(c.cfg.BasePath, req.Path)
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	var body io.Reader
	switch b := req.Body.(type) {
	case nil:
		if sendsBody(req.Method) {
			body = strings.NewReader("{}")
		}
	case []byte:
		body = bytes.NewReader(b)
	case json.RawMessage:
		body = bytes.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	h := httpReq.Header
	h.Set(HeaderContentType, ContentTypeJSON)
	h.Set(HeaderRequestID, requestID)
	for k, v := range c.cfg.Headers {
		h.Set(k, v)
	}
	tenant.FromContext(ctx).Merge(c.cfg.Tenant).Apply(h)
	if c.sess != nil {
		if token := c.sess.Token(); token != "" {
			h.Set(HeaderAuthorization, "Bearer "+token)
		}
	}
	tracing.InjectHeaders(ctx, h)

	for k, values := range req.Header {
		h.Del(k)
		for _, v := range values {
			h.Add(k, v)
		}
	}
	return httpReq, nil
}

// contextError reports why ctx ended, falling back to err
func contextError(ctx context.Context, err error) error {
	if cause := context.Cause(ctx); cause != nil {
		return cause
	}
	return err
}

func isBreakerFailure(err error) bool {
	return !errors.Is(err, context.Canceled)
}

func (c *Client) onBreakerChange(name string, _, to gobreaker.State) {
	if c.metrics == nil {
		return
	}
	c.metrics.SetCircuitBreakerState(name, resilience.StateValue(to))
	if to == gobreaker.StateOpen {
		c.metrics.RecordCircuitBreakerTrip(name)
	}
}
