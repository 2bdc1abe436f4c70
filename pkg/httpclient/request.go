package httpclient

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
)

// ResponseType declares how a successful body is treated
type ResponseType int

const (
	// ResponseJSON bodies go through envelope interpretation
	ResponseJSON ResponseType = iota
	// ResponseBinary bodies are returned untouched
	ResponseBinary
)

// Request describes one call to the WMS API. It is built per call, merged
// with the client defaults and used once.
type Request struct {
	Method       string
	Path         string
	Query        url.Values
	Body         any
	Header       http.Header
	Timeout      time.Duration
	ResponseType ResponseType
	// ReturnFull asks for the whole {code,data,msg} envelope instead of data
	ReturnFull bool
	// Operation names the call in logs, metrics and spans
	Operation string

	err error
}

// RequestOption customizes a Request
type RequestOption func(*Request)

// NewRequest builds a Request for method and path
func NewRequest(method, path string, opts ...RequestOption) *Request {
	r := &Request{
		Method: method,
		Path:   path,
		Query:  url.Values{},
		Header: http.Header{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OperationName returns the configured operation, or "METHOD path"
func (r *Request) OperationName() string {
	if r.Operation != "" {
		return r.Operation
	}
	return r.Method + " " + ResolvePath("", r.Path)
}

// WithQuery adds one query parameter
func WithQuery(key, value string) RequestOption {
	return func(r *Request) {
		r.Query.Add(key, value)
	}
}

// WithValues adds every value in v to the query
func WithValues(v url.Values) RequestOption {
	return func(r *Request) {
		for key, values := range v {
			for _, value := range values {
				r.Query.Add(key, value)
			}
		}
	}
}

// WithParams encodes a struct with `url` tags into the query
func WithParams(params any) RequestOption {
	return func(r *Request) {
		if params == nil {
			return
		}
		v, err := query.Values(params)
		if err != nil {
			r.err = fmt.Errorf("failed to encode query parameters: %w", err)
			return
		}
		WithValues(v)(r)
	}
}

// WithBody sets the JSON body
func WithBody(body any) RequestOption {
	return func(r *Request) {
		r.Body = body
	}
}

// WithHeader sets a header, replacing the client default for that key
func WithHeader(key, value string) RequestOption {
	return func(r *Request) {
		r.Header.Set(key, value)
	}
}

// WithTimeout overrides the client timeout for this call
func WithTimeout(d time.Duration) RequestOption {
	return func(r *Request) {
		r.Timeout = d
	}
}

// ReturnFull asks for the whole envelope
func ReturnFull() RequestOption {
	return func(r *Request) {
		r.ReturnFull = true
	}
}

// AsBinary skips envelope interpretation for the response
func AsBinary() RequestOption {
	return func(r *Request) {
		r.ResponseType = ResponseBinary
	}
}

// WithOperation names the call
func WithOperation(name string) RequestOption {
	return func(r *Request) {
		r.Operation = name
	}
}

// ResolvePath joins basePath and p, adding the leading slash p may omit.
// "warehouses" and "/warehouses" resolve to the same path.
func ResolvePath(basePath, p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return strings.TrimRight(basePath, "/") + p
}

func sendsBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}
