package httpclient

import (
	"context"
	"encoding/json"
	"net/http"

	wmserrors "github.com/wms-platform/wms-web/pkg/errors"
)

// Do performs req and decodes the result into T: the data member by default,
// the whole envelope with ReturnFull, the untouched body for raw responses.
func Do[T any](ctx context.Context, c *Client, req *Request) (T, error) {
	var zero T
	res := c.Do(ctx, req)
	if res.Err != nil {
		return zero, res.Err
	}
	out, err := decode[T](res.Value)
	if err != nil {
		c.logger.WithContext(ctx).WithError(err).Warn("Failed to decode WMS response",
			"operation", req.OperationName(),
		)
		return zero, err
	}
	return out, nil
}

// Get performs a GET
func Get[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (T, error) {
	return Do[T](ctx, c, NewRequest(http.MethodGet, path, opts...))
}

// Post performs a POST
func Post[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (T, error) {
	return Do[T](ctx, c, NewRequest(http.MethodPost, path, append([]RequestOption{WithBody(body)}, opts...)...))
}

// Put performs a PUT
func Put[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (T, error) {
	return Do[T](ctx, c, NewRequest(http.MethodPut, path, append([]RequestOption{WithBody(body)}, opts...)...))
}

// Patch performs a PATCH
func Patch[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (T, error) {
	return Do[T](ctx, c, NewRequest(http.MethodPatch, path, append([]RequestOption{WithBody(body)}, opts...)...))
}

// Delete performs a DELETE
func Delete[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (T, error) {
	return Do[T](ctx, c, NewRequest(http.MethodDelete, path, opts...))
}

// DoFull performs req and returns the whole envelope
func DoFull[T any](ctx context.Context, c *Client, req *Request) (Envelope[T], error) {
	req.ReturnFull = true
	return Do[Envelope[T]](ctx, c, req)
}

// Download performs a GET whose body is returned untouched
func Download(ctx context.Context, c *Client, path string, opts ...RequestOption) ([]byte, error) {
	return Do[[]byte](ctx, c, NewRequest(http.MethodGet, path, append(opts, AsBinary())...))
}

// ExtractData returns the data of a full envelope, or an error carrying its
// msg when the code is not a success code.
func ExtractData[T any](env Envelope[T]) (T, error) {
	if env.Code == wmserrors.CodeOK || env.Code == wmserrors.CodeCreated {
		return env.Data, nil
	}
	var zero T
	msg := env.Msg
	if msg == "" {
		msg = wmserrors.MessageRequestFailed
	}
	return zero, wmserrors.ErrApplication(env.Code, msg)
}

func decode[T any](value []byte) (T, error) {
	var out T
	switch p := any(&out).(type) {
	case *[]byte:
		*p = value
		return out, nil
	case *string:
		if err := json.Unmarshal(value, p); err != nil {
			*p = string(value)
		}
		return out, nil
	}

	if len(value) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(value, &out); err != nil {
		return out, wmserrors.ErrDecode(err)
	}
	return out, nil
}
