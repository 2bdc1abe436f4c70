package httpclient

import (
	"context"
	"errors"
	"net/http"
	"time"

	wmserrors "github.com/wms-platform/wms-web/pkg/errors"
	"github.com/wms-platform/wms-web/pkg/metrics"
)

// Exchange is one completed HTTP exchange, or the error that stopped it
type Exchange struct {
	Request  *Request
	URL      string
	Status   int
	Header   http.Header
	Body     []byte
	Err      error
	Duration time.Duration
}

// Variant tags what Result.Value holds
type Variant int

const (
	// VariantError means the call failed; Value is empty
	VariantError Variant = iota
	// VariantData holds the envelope's data member
	VariantData
	// VariantEnvelope holds the whole envelope
	VariantEnvelope
	// VariantRaw holds a 2xx body that is not an envelope
	VariantRaw
	// VariantBinary holds a binary body
	VariantBinary
)

// Result is the interpreted outcome of an exchange. Interpret only computes
// it; the handler pipeline acts on Notice and ForceLogout.
type Result struct {
	Variant  Variant
	Value    []byte
	Envelope Body
	Err      error
	// Notice is the message to show the user, empty for none
	Notice string
	// ForceLogout ends the session
	ForceLogout bool
	Status      int
	Outcome     string
}

// Interpret turns an exchange into a Result
func Interpret(ex *Exchange) *Result {
	if ex.Err != nil {
		return interpretError(ex)
	}
	if ex.Status < 200 || ex.Status > 299 {
		return interpretFailure(ex)
	}
	return interpretSuccess(ex)
}

func interpretSuccess(ex *Exchange) *Result {
	res := &Result{Status: ex.Status, Outcome: metrics.OutcomeSuccess}

	if ex.Request != nil && ex.Request.ResponseType == ResponseBinary {
		res.Variant = VariantBinary
		res.Value = ex.Body
		return res
	}

	body := ParseBody(ex.Body)
	res.Envelope = body

	switch {
	case body.Kind == BodyRaw:
		res.Variant = VariantRaw
		res.Value = ex.Body
		res.Outcome = metrics.OutcomePassthrough

	case body.IsSuccess():
		if ex.Request != nil && ex.Request.ReturnFull {
			res.Variant = VariantEnvelope
			res.Value = ex.Body
		} else {
			res.Variant = VariantData
			res.Value = body.Data
		}

	case body.Code == wmserrors.CodeUnauthorized:
		res.Variant = VariantError
		res.Err = wmserrors.ErrEnvelopeUnauthorized()
		res.ForceLogout = true
		res.Outcome = metrics.OutcomeAuthFailure

	default:
		msg := firstNonEmpty(body.Msg, body.Message, wmserrors.MessageEnvelopeFallback)
		res.Variant = VariantError
		res.Err = wmserrors.ErrApplication(body.Code, msg)
		res.Notice = msg
		res.Outcome = metrics.OutcomeApplicationError
	}
	return res
}

func interpretFailure(ex *Exchange) *Result {
	body := ParseBody(ex.Body)
	msg := wmserrors.ResolveMessage(ex.Status, body.Msg, body.Message)

	apiErr := wmserrors.ErrTransport(ex.Status, msg, nil)
	if body.Kind == BodyEnvelope {
		apiErr.Code = body.Code
	}

	res := &Result{
		Variant:  VariantError,
		Envelope: body,
		Err:      apiErr,
		Notice:   msg,
		Status:   ex.Status,
		Outcome:  metrics.OutcomeTransportError,
	}
	if ex.Status == http.StatusUnauthorized {
		res.ForceLogout = true
		res.Outcome = metrics.OutcomeAuthFailure
	}
	return res
}

func interpretError(ex *Exchange) *Result {
	res := &Result{Variant: VariantError, Outcome: metrics.OutcomeTransportError}
	err := ex.Err

	if apiErr, ok := wmserrors.AsAPIError(err); ok {
		res.Err = apiErr
		res.Status = apiErr.Status
		res.Notice = apiErr.Message
		if apiErr.Kind == wmserrors.KindInvalidRequest {
			res.Outcome = metrics.OutcomeInvalidRequest
		}
		return res
	}

	switch {
	case errors.Is(err, wmserrors.ErrSessionClosed):
		res.Err = wmserrors.NewAPIError(wmserrors.KindTransport, 0, wmserrors.ErrSessionClosed.Error()).Wrap(err)
		res.Outcome = metrics.OutcomeCancelled
		return res

	case errors.Is(err, context.Canceled):
		res.Err = wmserrors.NewAPIError(wmserrors.KindTransport, 0, "request cancelled").Wrap(err)
		res.Outcome = metrics.OutcomeCancelled
		return res

	case errors.Is(err, context.DeadlineExceeded):
		res.Status = http.StatusRequestTimeout

	case errors.Is(err, wmserrors.ErrCircuitOpen):
		res.Status = http.StatusServiceUnavailable
	}

	msg := wmserrors.StatusMessage(res.Status)
	res.Err = wmserrors.ErrTransport(res.Status, msg, err)
	res.Notice = msg
	return res
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
