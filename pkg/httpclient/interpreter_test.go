package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wmserrors "github.com/wms-platform/wms-web/pkg/errors"
	"github.com/wms-platform/wms-web/pkg/metrics"
)

func exchange(status int, body string, opts ...RequestOption) *Exchange {
	return &Exchange{
		Request: NewRequest(http.MethodGet, "warehouses", opts...),
		Status:  status,
		Body:    []byte(body),
	}
}

func TestParseBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		kind    BodyKind
		code    int
		msg     string
		message string
	}{
		{"envelope", `{"code":200,"data":[1],"msg":"ok"}`, BodyEnvelope, 200, "ok", ""},
		{"zero code", `{"code":0,"data":null}`, BodyEnvelope, 0, "", ""},
		{"string code", `{"code":"E1","msg":"bad"}`, BodyEnvelope, wmserrors.CodeInvalid, "bad", ""},
		{"float code", `{"code":1.5}`, BodyEnvelope, wmserrors.CodeInvalid, "", ""},
		{"no code", `{"message":"Not Found","status":404}`, BodyRaw, 0, "", "Not Found"},
		{"array", `[{"code":200}]`, BodyRaw, 0, "", ""},
		{"text", `plain text`, BodyRaw, 0, "", ""},
		{"empty", ``, BodyRaw, 0, "", ""},
		{"broken json", `{"code":200`, BodyRaw, 0, "", ""},
		{"non-string msg", `{"code":500,"msg":{"k":"v"}}`, BodyEnvelope, 500, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ParseBody([]byte(tt.body))
			assert.Equal(t, tt.kind, b.Kind)
			assert.Equal(t, tt.code, b.Code)
			assert.Equal(t, tt.msg, b.Msg)
			assert.Equal(t, tt.message, b.Message)
			assert.Equal(t, []byte(tt.body), b.Raw)
		})
	}
}

func TestInterpret_SuccessReturnsDataOnly(t *testing.T) {
	for _, code := range []int{200, 0} {
		t.Run(fmt.Sprint(code), func(t *testing.T) {
			body := fmt.Sprintf(`{"code":%d,"data":{"id":1,"name":"Main"},"msg":"fetched"}`, code)

			res := Interpret(exchange(200, body))

			require.NoError(t, res.Err)
			assert.Equal(t, VariantData, res.Variant)
			assert.JSONEq(t, `{"id":1,"name":"Main"}`, string(res.Value))
			assert.Empty(t, res.Notice)
			assert.False(t, res.ForceLogout)
			assert.Equal(t, metrics.OutcomeSuccess, res.Outcome)
		})
	}
}

func TestInterpret_ReturnFullKeepsEnvelope(t *testing.T) {
	body := `{"code":200,"data":{"token":"t"},"msg":"welcome"}`

	res := Interpret(exchange(200, body, ReturnFull()))

	require.NoError(t, res.Err)
	assert.Equal(t, VariantEnvelope, res.Variant)
	assert.Equal(t, body, string(res.Value))
}

func TestInterpret_EnvelopeUnauthorized(t *testing.T) {
	res := Interpret(exchange(200, `{"code":401,"data":{"secret":true},"msg":"token expired"}`))

	assert.Equal(t, VariantError, res.Variant)
	assert.Nil(t, res.Value)
	assert.True(t, res.ForceLogout)
	assert.Empty(t, res.Notice)
	assert.ErrorIs(t, res.Err, wmserrors.ErrSessionExpired)
	assert.Equal(t, metrics.OutcomeAuthFailure, res.Outcome)
}

func TestInterpret_ApplicationError(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"msg", `{"code":500100,"msg":"stock is locked","message":"ignored"}`, "stock is locked"},
		{"message fallback", `{"code":400,"message":"invalid warehouse code"}`, "invalid warehouse code"},
		{"literal fallback", `{"code":500}`, "Error"},
		{"empty msg", `{"code":500,"msg":""}`, "Error"},
		{"non-integer code", `{"code":"E42","msg":"bad code"}`, "bad code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Interpret(exchange(200, tt.body))

			require.Error(t, res.Err)
			assert.Equal(t, tt.want, res.Err.Error())
			assert.Equal(t, tt.want, res.Notice)
			assert.True(t, wmserrors.IsKind(res.Err, wmserrors.KindApplication))
			assert.False(t, res.ForceLogout)
		})
	}
}

func TestInterpret_RawPassthrough(t *testing.T) {
	body := `{"status":"UP","components":{"db":"UP"}}`

	res := Interpret(exchange(200, body))

	require.NoError(t, res.Err)
	assert.Equal(t, VariantRaw, res.Variant)
	assert.Equal(t, body, string(res.Value))
	assert.Equal(t, metrics.OutcomePassthrough, res.Outcome)
}

func TestInterpret_BinaryBypassesEnvelope(t *testing.T) {
	bodies := []string{
		`{"code":401,"msg":"would log out"}`,
		`{"code":500,"msg":"would fail"}`,
		"\x89PNG\r\n\x1a\n\x00\x00",
		``,
	}

	for _, body := range bodies {
		res := Interpret(exchange(200, body, AsBinary()))

		require.NoError(t, res.Err)
		assert.Equal(t, VariantBinary, res.Variant)
		assert.Equal(t, []byte(body), res.Value)
		assert.False(t, res.ForceLogout)
		assert.Empty(t, res.Notice)
	}
}

func TestInterpret_HTTPFailures(t *testing.T) {
	tests := []struct {
		status int
		body   string
		want   string
		logout bool
	}{
		{404, ``, "request address error", false},
		{404, `<html>not found</html>`, "request address error", false},
		{400, `{"msg":"warehouse code taken"}`, "warehouse code taken", false},
		{400, `{"message":"validation failed"}`, "validation failed", false},
		{401, ``, "unauthorized", true},
		{401, `{"code":401,"msg":"token expired"}`, "token expired", true},
		{403, ``, "forbidden", false},
		{408, ``, "request timeout", false},
		{500, ``, "internal server error", false},
		{501, ``, "service not implemented", false},
		{502, ``, "bad gateway", false},
		{503, ``, "service unavailable", false},
		{504, ``, "gateway timeout", false},
		{505, ``, "HTTP version not supported", false},
		{418, ``, "request failed", false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d %s", tt.status, tt.body), func(t *testing.T) {
			res := Interpret(exchange(tt.status, tt.body))

			require.Error(t, res.Err)
			assert.Equal(t, tt.want, res.Err.Error())
			assert.Equal(t, tt.want, res.Notice)
			assert.Equal(t, tt.logout, res.ForceLogout)
			assert.Equal(t, tt.status, res.Status)

			apiErr, ok := wmserrors.AsAPIError(res.Err)
			require.True(t, ok)
			assert.Equal(t, tt.status, apiErr.Status)
		})
	}
}

func TestInterpret_TransportErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		notice  string
		outcome string
	}{
		{"network", errors.New("dial tcp: connection refused"), 0, wmserrors.MessageNetworkError, metrics.OutcomeTransportError},
		{"timeout", fmt.Errorf("request timed out: %w", context.DeadlineExceeded), 408, "request timeout", metrics.OutcomeTransportError},
		{"breaker open", wmserrors.ErrCircuitOpen, 503, "service unavailable", metrics.OutcomeTransportError},
		{"session closed", wmserrors.ErrSessionClosed, 0, "", metrics.OutcomeCancelled},
		{"caller cancelled", context.Canceled, 0, "", metrics.OutcomeCancelled},
		{"invalid request", wmserrors.ErrInvalidRequest(errors.New("name is required")), 0, "name is required", metrics.OutcomeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Interpret(&Exchange{Request: NewRequest(http.MethodGet, "warehouses"), Err: tt.err})

			require.Error(t, res.Err)
			assert.ErrorIs(t, res.Err, tt.err)
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, tt.notice, res.Notice)
			assert.Equal(t, tt.outcome, res.Outcome)
			assert.False(t, res.ForceLogout)
		})
	}
}

func TestExtractData(t *testing.T) {
	data, err := ExtractData(Envelope[string]{Code: 201, Data: "created"})
	require.NoError(t, err)
	assert.Equal(t, "created", data)

	_, err = ExtractData(Envelope[string]{Code: 409, Msg: "duplicate code"})
	assert.EqualError(t, err, "duplicate code")

	_, err = ExtractData(Envelope[string]{Code: 0})
	assert.EqualError(t, err, wmserrors.MessageRequestFailed)
}

func TestDecode(t *testing.T) {
	raw, err := decode[[]byte]([]byte("\x00\x01"))
	require.NoError(t, err)
	assert.Equal(t, []byte("\x00\x01"), raw)

	s, err := decode[string]([]byte(`"quoted"`))
	require.NoError(t, err)
	assert.Equal(t, "quoted", s)

	s, err = decode[string]([]byte(`plain`))
	require.NoError(t, err)
	assert.Equal(t, "plain", s)

	m, err := decode[map[string]int](nil)
	require.NoError(t, err)
	assert.Nil(t, m)

	_, err = decode[int]([]byte(`"nope"`))
	assert.True(t, wmserrors.IsKind(err, wmserrors.KindDecode))

	env, err := decode[Envelope[json.RawMessage]]([]byte(`{"code":200,"data":[1,2],"msg":"ok"}`))
	require.NoError(t, err)
	assert.Equal(t, "ok", env.Msg)
	assert.JSONEq(t, `[1,2]`, string(env.Data))
}
