package httpclient

import (
	"context"
	"net/url"

	"go.opentelemetry.io/otel/trace"

	wmserrors "github.com/wms-platform/wms-web/pkg/errors"
	"github.com/wms-platform/wms-web/pkg/logging"
	"github.com/wms-platform/wms-web/pkg/metrics"
	"github.com/wms-platform/wms-web/pkg/notify"
	"github.com/wms-platform/wms-web/pkg/session"
	"github.com/wms-platform/wms-web/pkg/tracing"
)

// Handler is one stage of the response pipeline. Stages run in order after
// Interpret and may only act on the result, not change it.
type Handler interface {
	Handle(ctx context.Context, ex *Exchange, res *Result)
}

// HandlerFunc adapts a function to Handler
type HandlerFunc func(ctx context.Context, ex *Exchange, res *Result)

func (f HandlerFunc) Handle(ctx context.Context, ex *Exchange, res *Result) {
	f(ctx, ex, res)
}

// LogoutHandler ends the session when the result asks for it
type LogoutHandler struct {
	Session *session.Context
	Metrics *metrics.Metrics
}

func (h LogoutHandler) Handle(_ context.Context, _ *Exchange, res *Result) {
	if !res.ForceLogout || h.Session == nil {
		return
	}
	if h.Session.ForceLogout() && h.Metrics != nil {
		h.Metrics.RecordForcedLogout()
	}
}

// NotifyHandler shows the result's notice
type NotifyHandler struct {
	Sink notify.Sink
}

func (h NotifyHandler) Handle(_ context.Context, _ *Exchange, res *Result) {
	if res.Notice == "" || h.Sink == nil {
		return
	}
	h.Sink.Error(res.Notice)
	if apiErr, ok := wmserrors.AsAPIError(res.Err); ok {
		apiErr.MarkNotified()
	}
}

// ObserveHandler logs the call, records metrics and annotates the span
type ObserveHandler struct {
	Logger  *logging.Logger
	Metrics *metrics.Metrics
}

func (h ObserveHandler) Handle(ctx context.Context, ex *Exchange, res *Result) {
	method, operation := "", ""
	if ex.Request != nil {
		method = ex.Request.Method
		operation = ex.Request.OperationName()
	}

	if h.Logger != nil {
		l := h.Logger
		if res.Err != nil {
			l = l.WithError(res.Err)
		}
		l.HTTPCall(ctx, method, urlPath(ex.URL), res.Status, ex.Duration, res.Outcome)
	}
	if h.Metrics != nil {
		h.Metrics.RecordClientRequest(method, operation, res.Status, res.Outcome, ex.Duration)
	}
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		tracing.RecordClientOutcome(span, res.Status, res.Outcome, res.Err)
	}
}

func urlPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Path
}
