package openapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
)

// Validator checks outgoing WMS requests, and the responses they get,
// against an OpenAPI document.
type Validator struct {
	doc      *openapi3.T
	router   routers.Router
	basePath string
}

// Option customizes a Validator
type Option func(*Validator)

// WithBasePath strips basePath from request paths before route lookup, so a
// document written relative to the API root matches "/api/v1/..." requests.
func WithBasePath(basePath string) Option {
	return func(v *Validator) {
		v.basePath = strings.TrimRight(basePath, "/")
	}
}

// NewValidator creates a validator from an OpenAPI document
func NewValidator(spec []byte, opts ...Option) (*Validator, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI spec: %w", err)
	}

	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI spec: %w", err)
	}

	// Requests go to whatever server the client is configured for.
	doc.Servers = nil

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to create router: %w", err)
	}

	v := &Validator{doc: doc, router: router}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// ValidateRequest validates req against the document. The request body is
// left readable for the caller.
func (v *Validator) ValidateRequest(req *http.Request) error {
	probe, err := v.probe(req)
	if err != nil {
		return err
	}

	route, pathParams, err := v.router.FindRoute(probe)
	if err != nil {
		return fmt.Errorf("no operation for %s %s: %w", req.Method, req.URL.Path, err)
	}

	input := &openapi3filter.RequestValidationInput{
		Request:    probe,
		PathParams: pathParams,
		Route:      route,
		Options: &openapi3filter.Options{
			MultiError:         true,
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	}

	if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
		return fmt.Errorf("request validation failed: %w", err)
	}
	return nil
}

// ValidateResponse validates a response to req against the document
func (v *Validator) ValidateResponse(req *http.Request, status int, header http.Header, body []byte) error {
	probe, err := v.probe(req)
	if err != nil {
		return err
	}

	route, pathParams, err := v.router.FindRoute(probe)
	if err != nil {
		return fmt.Errorf("no operation for %s %s: %w", req.Method, req.URL.Path, err)
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request:    probe,
			PathParams: pathParams,
			Route:      route,
		},
		Status: status,
		Header: header,
		Body:   io.NopCloser(bytes.NewReader(body)),
		Options: &openapi3filter.Options{
			MultiError:            true,
			IncludeResponseStatus: true,
		},
	}

	if err := openapi3filter.ValidateResponse(req.Context(), input); err != nil {
		return fmt.Errorf("response validation failed: %w", err)
	}
	return nil
}

// OperationID returns the operation id matching req
func (v *Validator) OperationID(req *http.Request) (string, error) {
	probe, err := v.probe(req)
	if err != nil {
		return "", err
	}
	route, _, err := v.router.FindRoute(probe)
	if err != nil {
		return "", fmt.Errorf("failed to find route: %w", err)
	}
	return route.Operation.OperationID, nil
}

// Operation is one documented call
type Operation struct {
	ID      string
	Method  string
	Path    string
	Summary string
}

// Operations lists every documented call sorted by path and method
func (v *Validator) Operations() []Operation {
	if v.doc.Paths == nil {
		return nil
	}

	var ops []Operation
	for path, item := range v.doc.Paths.Map() {
		for method, op := range item.Operations() {
			ops = append(ops, Operation{
				ID:      op.OperationID,
				Method:  method,
				Path:    path,
				Summary: op.Summary,
			})
		}
	}
	sort.Slice(ops, func(i, j int) bool {
		if ops[i].Path != ops[j].Path {
			return ops[i].Path < ops[j].Path
		}
		return ops[i].Method < ops[j].Method
	})
	return ops
}

// Document returns the parsed OpenAPI document
func (v *Validator) Document() *openapi3.T {
	return v.doc
}

// probe returns a copy of req addressed relative to the document with its own
// body reader. req keeps an unread body.
func (v *Validator) probe(req *http.Request) (*http.Request, error) {
	probe := req.Clone(req.Context())

	if v.basePath != "" {
		p := strings.TrimPrefix(req.URL.Path, v.basePath)
		if p == "" {
			p = "/"
		}
		probe.URL.Path = p
		probe.URL.RawPath = ""
	}

	if req.Body == nil || req.Body == http.NoBody {
		return probe, nil
	}
	data, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	_ = req.Body.Close()
	req.Body = io.NopCloser(bytes.NewReader(data))
	probe.Body = io.NopCloser(bytes.NewReader(data))
	return probe, nil
}
