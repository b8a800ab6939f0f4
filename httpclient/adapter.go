package httpclient

import (
	"context"
	"maps"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/fetchkit/fetch"
	"github.com/kbukum/fetchkit/logger"
	"github.com/kbukum/fetchkit/observability"
)

// Adapter is a fetch.Transport backed by a configured *http.Client.
type Adapter struct {
	httpClient   *http.Client
	config       Config
	log          *logger.Logger
	tracer       trace.Tracer
	propagator   propagation.TextMapPropagator
	metrics      *observability.ClientMetrics
	newRequestID func() string
}

var _ fetch.Transport = (*Adapter)(nil)

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger. Exchanges are logged at debug, failures at warn.
func WithLogger(l *logger.Logger) Option {
	return func(a *Adapter) { a.log = logger.OrNop(l).WithComponent("httpclient") }
}

// WithHTTPClient replaces the underlying client. Config.Timeout and
// Config.TLS are not applied to it.
func WithHTTPClient(c *http.Client) Option {
	return func(a *Adapter) { a.httpClient = c }
}

// WithTracerProvider sets the provider spans are created on.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(a *Adapter) { a.tracer = observability.Tracer(tp) }
}

// WithPropagator sets the propagator injecting trace headers.
func WithPropagator(p propagation.TextMapPropagator) Option {
	return func(a *Adapter) { a.propagator = p }
}

// WithMetrics sets the instruments recorded per exchange.
func WithMetrics(m *observability.ClientMetrics) Option {
	return func(a *Adapter) { a.metrics = m }
}

// WithMeterProvider creates client metrics on mp. Instrument errors are
// ignored and leave metrics disabled.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(a *Adapter) {
		if m, err := observability.NewClientMetrics(observability.Meter(mp)); err == nil {
			a.metrics = m
		}
	}
}

// WithRequestIDFunc overrides request id generation.
func WithRequestIDFunc(fn func() string) Option {
	return func(a *Adapter) { a.newRequestID = fn }
}

// New creates an HTTP adapter with the given configuration.
func New(cfg Config, opts ...Option) (*Adapter, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.MaxIdleConnsPerHost > 0 {
		transport.MaxIdleConnsPerHost = cfg.MaxIdleConnsPerHost
	}
	tlsCfg, err := cfg.TLS.Build()
	if err != nil {
		return nil, err
	}
	if tlsCfg != nil {
		transport.TLSClientConfig = tlsCfg
	}

	a := &Adapter{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		config:       cfg,
		log:          logger.NewNop(),
		tracer:       observability.Tracer(nil),
		propagator:   otel.GetTextMapPropagator(),
		newRequestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Fetch sends one request. The response body is returned unread; the
// caller owns closing it.
func (a *Adapter) Fetch(ctx context.Context, target string, init fetch.RequestInit) (*http.Response, error) {
	method := init.Method
	if method == "" {
		method = http.MethodGet
	}
	url := a.resolve(target)
	init.Header = a.defaultHeaders(init.Header)
	requestID := init.Header.Get(a.config.RequestIDHeader)

	ctx, span := a.tracer.Start(ctx, "HTTP "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(observability.AttrHTTPMethod, method),
			attribute.String(observability.AttrURLFull, url),
			attribute.String("fetchkit.client", a.config.Name),
		),
	)
	defer span.End()
	if requestID != "" {
		span.SetAttributes(attribute.String(observability.AttrRequestID, requestID))
	}

	req, err := fetch.NewHTTPRequest(ctx, url, init)
	if err != nil {
		verr := NewValidationError(method, url, err)
		a.fail(span, verr, requestID, 0)
		return nil, verr
	}
	span.SetAttributes(attribute.String(observability.AttrServerAddress, req.URL.Hostname()))
	a.propagator.Inject(ctx, propagation.HeaderCarrier(req.Header))

	a.metrics.RequestStarted(ctx, a.config.Name)
	start := time.Now()
	resp, err := a.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		cerr := classify(ctx, method, url, err)
		a.metrics.RequestFinished(ctx, a.config.Name, method, 0, cerr.Code.String(), elapsed)
		a.fail(span, cerr, requestID, elapsed)
		return nil, cerr
	}

	outcome := "ok"
	span.SetAttributes(attribute.Int(observability.AttrHTTPStatusCode, resp.StatusCode))
	if resp.StatusCode >= http.StatusBadRequest {
		outcome = "http_error"
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
	}
	a.metrics.RequestFinished(ctx, a.config.Name, method, resp.StatusCode, outcome, elapsed)

	a.log.Debug("request completed", logger.Fields(
		logger.FieldMethod, method,
		logger.FieldTarget, url,
		logger.FieldStatus, resp.StatusCode,
		logger.FieldDuration, elapsed.Milliseconds(),
		logger.FieldRequestID, requestID,
	))
	return resp, nil
}

func (a *Adapter) fail(span trace.Span, err *Error, requestID string, elapsed time.Duration) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Code.String())
	if err.Code == ErrCodeCanceled {
		return
	}
	a.log.WithError(err.Err).Warn("request failed", logger.Fields(
		logger.FieldMethod, err.Method,
		logger.FieldTarget, err.Target,
		logger.FieldDuration, elapsed.Milliseconds(),
		logger.FieldRequestID, requestID,
		"class", err.Code.String(),
	))
}

// resolve prefixes relative targets with the configured base URL.
func (a *Adapter) resolve(target string) string {
	if a.config.BaseURL == "" || isAbsoluteURL(target) {
		return target
	}
	return strings.TrimRight(a.config.BaseURL, "/") + "/" + strings.TrimLeft(target, "/")
}

func isAbsoluteURL(target string) bool {
	return strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://")
}

// defaultHeaders returns h extended with configured defaults the request
// does not already carry. h itself is not modified.
func (a *Adapter) defaultHeaders(h fetch.Header) fetch.Header {
	for _, name := range slices.Sorted(maps.Keys(a.config.Headers)) {
		if !h.Has(name) {
			h = h.Add(name, a.config.Headers[name])
		}
	}
	if !h.Has("User-Agent") {
		h = h.Add("User-Agent", a.config.UserAgent)
	}
	if a.config.requestIDEnabled() && !h.Has(a.config.RequestIDHeader) {
		h = h.Add(a.config.RequestIDHeader, a.newRequestID())
	}
	return h
}

// Name returns the adapter name.
func (a *Adapter) Name() string {
	return a.config.Name
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (a *Adapter) Unwrap() *http.Client {
	return a.httpClient
}

// Close releases idle connections.
func (a *Adapter) Close(_ context.Context) error {
	a.httpClient.CloseIdleConnections()
	return nil
}

// GetConfig returns the adapter's configuration.
func (a *Adapter) GetConfig() Config {
	return a.config
}
