package openapi

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSpec = `
openapi: 3.0.3
info:
  title: test
  version: 1.0.0
servers:
  - url: https://wms.example.com/api/v1
paths:
  /warehouses:
    get:
      operationId: listWarehouses
      summary: List warehouses
      parameters:
        - name: size
          in: query
          schema:
            type: integer
            maximum: 100
      responses:
        '200':
          description: ok
          content:
            application/json:
              schema:
                type: object
                required: [code]
                properties:
                  code:
                    type: integer
    post:
      operationId: createWarehouse
      requestBody:
        required: true
        content:
          application/json:
            schema:
              type: object
              required: [name, code]
              properties:
                name:
                  type: string
                code:
                  type: string
      responses:
        '200':
          description: ok
  /warehouses/{id}:
    parameters:
      - name: id
        in: path
        required: true
        schema:
          type: integer
          minimum: 1
    delete:
      operationId: deleteWarehouse
      responses:
        '200':
          description: ok
`

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator([]byte(testSpec), WithBasePath("/api/v1/"))
	require.NoError(t, err)
	return v
}

func jsonRequest(method, target, body string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func TestNewValidator_RejectsInvalidDocument(t *testing.T) {
	_, err := NewValidator([]byte("not: [an openapi document"))
	assert.Error(t, err)
}

func TestValidateRequest_AcceptsValidBodyAndKeepsItReadable(t *testing.T) {
	v := newTestValidator(t)
	req := jsonRequest(http.MethodPost, "http://localhost:8080/api/v1/warehouses", `{"name":"Main","code":"WH01"}`)

	require.NoError(t, v.ValidateRequest(req))

	body, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Main","code":"WH01"}`, string(body))
}

func TestValidateRequest_Rejections(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name string
		req  *http.Request
	}{
		{"missing required field", jsonRequest(http.MethodPost, "/api/v1/warehouses", `{"name":"Main"}`)},
		{"query out of range", jsonRequest(http.MethodGet, "/api/v1/warehouses?size=500", "")},
		{"path parameter below minimum", jsonRequest(http.MethodDelete, "/api/v1/warehouses/0", "")},
		{"undocumented route", jsonRequest(http.MethodGet, "/api/v1/robots", "")},
		{"undocumented method", jsonRequest(http.MethodPut, "/api/v1/warehouses", `{}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, v.ValidateRequest(tt.req))
		})
	}
}

func TestValidateRequest_IgnoresServerHost(t *testing.T) {
	v := newTestValidator(t)

	assert.NoError(t, v.ValidateRequest(jsonRequest(http.MethodGet, "http://127.0.0.1:9999/api/v1/warehouses?size=20", "")))
}

func TestValidateResponse(t *testing.T) {
	v := newTestValidator(t)
	req := jsonRequest(http.MethodGet, "/api/v1/warehouses", "")
	header := http.Header{"Content-Type": []string{"application/json"}}

	assert.NoError(t, v.ValidateResponse(req, http.StatusOK, header, []byte(`{"code":200,"data":[]}`)))
	assert.Error(t, v.ValidateResponse(req, http.StatusOK, header, []byte(`{"data":[]}`)))
	assert.Error(t, v.ValidateResponse(req, http.StatusInternalServerError, header, []byte(`{"code":500}`)))
}

func TestOperationID(t *testing.T) {
	v := newTestValidator(t)

	id, err := v.OperationID(jsonRequest(http.MethodDelete, "/api/v1/warehouses/7", ""))
	require.NoError(t, err)
	assert.Equal(t, "deleteWarehouse", id)

	_, err = v.OperationID(jsonRequest(http.MethodGet, "/api/v1/nowhere", ""))
	assert.Error(t, err)
}

func TestOperations_Sorted(t *testing.T) {
	v := newTestValidator(t)

	ops := v.Operations()

	require.Len(t, ops, 3)
	assert.Equal(t, Operation{ID: "listWarehouses", Method: http.MethodGet, Path: "/warehouses", Summary: "List warehouses"}, ops[0])
	assert.Equal(t, "createWarehouse", ops[1].ID)
	assert.Equal(t, "deleteWarehouse", ops[2].ID)
	assert.Empty(t, v.Document().Servers)
}
