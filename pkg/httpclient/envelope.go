package httpclient

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/tidwall/gjson"

	wmserrors "github.com/wms-platform/wms-web/pkg/errors"
)

// Envelope is the {code,data,msg} wrapper of every standard WMS response
type Envelope[T any] struct {
	Code int    `json:"code"`
	Data T      `json:"data"`
	Msg  string `json:"msg"`
}

// BodyKind tags a parsed response body
type BodyKind int

const (
	// BodyRaw is anything that is not a standard envelope
	BodyRaw BodyKind = iota
	// BodyEnvelope is a JSON object carrying a code member
	BodyEnvelope
)

func (k BodyKind) String() string {
	if k == BodyEnvelope {
		return "envelope"
	}
	return "raw"
}

// Body is a response body parsed into one of the BodyKind variants. Msg and
// Message are read from any JSON object so error bodies without a code still
// yield a backend message.
type Body struct {
	Kind BodyKind
	Raw  []byte
	// Code is the envelope code, or CodeInvalid when it is not an integer
	Code    int
	Data    json.RawMessage
	Msg     string
	Message string
}

const envelopeSchemaURL = "https://schemas.wms-platform.dev/client/envelope.json"

const envelopeSchemaDoc = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["code"]
}`

var envelopeSchema = compileEnvelopeSchema()

func compileEnvelopeSchema() *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(envelopeSchemaDoc))
	if err != nil {
		panic(err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(envelopeSchemaURL, doc); err != nil {
		panic(err)
	}
	return c.MustCompile(envelopeSchemaURL)
}

// ParseBody classifies raw as an envelope or a raw passthrough
func ParseBody(raw []byte) Body {
	b := Body{Kind: BodyRaw, Raw: raw}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return b
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(trimmed))
	if err != nil {
		return b
	}

	b.Msg = stringField(trimmed, "msg")
	b.Message = stringField(trimmed, "message")

	if envelopeSchema.Validate(inst) != nil {
		return b
	}

	b.Kind = BodyEnvelope
	b.Code = intField(trimmed, "code")
	if data := gjson.GetBytes(trimmed, "data"); data.Exists() {
		b.Data = json.RawMessage(data.Raw)
	}
	return b
}

// IsSuccess reports whether the envelope code means success
func (b Body) IsSuccess() bool {
	return b.Kind == BodyEnvelope && (b.Code == wmserrors.CodeOK || b.Code == wmserrors.CodeOKAlt)
}

func stringField(raw []byte, name string) string {
	r := gjson.GetBytes(raw, name)
	if r.Type != gjson.String {
		return ""
	}
	return r.Str
}

func intField(raw []byte, name string) int {
	r := gjson.GetBytes(raw, name)
	if r.Type != gjson.Number || r.Num != float64(int64(r.Num)) {
		return wmserrors.CodeInvalid
	}
	return int(r.Int())
}
