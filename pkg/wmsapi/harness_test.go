package wmsapi_test

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wms-platform/wms-web/pkg/contracts/openapi"
	"github.com/wms-platform/wms-web/pkg/httpclient"
	"github.com/wms-platform/wms-web/pkg/notify"
	"github.com/wms-platform/wms-web/pkg/session"
	"github.com/wms-platform/wms-web/pkg/testutil"
	"github.com/wms-platform/wms-web/pkg/wmsapi"
)

// contract validates every request and response against the embedded
// OpenAPI document and remembers which operations were called.
type contract struct {
	v *openapi.Validator

	mu       sync.Mutex
	seen     map[string]int
	failures []error
}

func (c *contract) ValidateRequest(req *http.Request) error {
	if err := c.v.ValidateRequest(req); err != nil {
		return err
	}
	if id, err := c.v.OperationID(req); err == nil {
		c.mu.Lock()
		c.seen[id]++
		c.mu.Unlock()
	}
	return nil
}

func (c *contract) Handle(_ context.Context, ex *httpclient.Exchange, _ *httpclient.Result) {
	if ex.Err != nil || ex.Status < 200 || ex.Status > 299 {
		return
	}
	if ex.Request == nil || ex.Request.ResponseType == httpclient.ResponseBinary {
		return
	}
	req, err := http.NewRequest(ex.Request.Method, ex.URL, nil)
	if err != nil {
		return
	}
	if err := c.v.ValidateResponse(req, ex.Status, ex.Header, ex.Body); err != nil {
		c.mu.Lock()
		c.failures = append(c.failures, err)
		c.mu.Unlock()
	}
}

func (c *contract) operations() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int, len(c.seen))
	for k, v := range c.seen {
		out[k] = v
	}
	return out
}

func (c *contract) responseFailures() []error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]error(nil), c.failures...)
}

type harness struct {
	backend   *testutil.Backend
	sess      *session.Context
	api       *wmsapi.Client
	contract  *contract
	transport *notify.Recorder
	smart     *notify.Recorder
}

func newHarness(t *testing.T, opts ...testutil.BackendOption) *harness {
	t.Helper()

	backend := testutil.NewBackend(t, opts...)

	v, err := openapi.NewValidator(wmsapi.OpenAPISpec, openapi.WithBasePath(httpclient.DefaultBasePath))
	require.NoError(t, err)
	ct := &contract{v: v, seen: map[string]int{}}

	h := &harness{
		backend:   backend,
		sess:      session.New(session.NewMemoryStore(""), nil),
		contract:  ct,
		transport: notify.NewRecorder(),
		smart:     notify.NewRecorder(),
	}

	hc, err := httpclient.New(httpclient.DefaultConfig(backend.URL()), h.sess,
		httpclient.WithSink(h.transport),
		httpclient.WithValidator(ct),
		httpclient.WithHandlers(ct),
	)
	require.NoError(t, err)
	h.api = wmsapi.New(hc, h.smart)

	t.Cleanup(func() {
		assert.Empty(t, ct.responseFailures(), "responses must match the OpenAPI document")
	})
	return h
}

// login signs in without the captcha round trip
func (h *harness) login(t *testing.T) {
	t.Helper()
	token := h.backend.IssueToken(testutil.AdminUser)
	require.NoError(t, h.sess.Login(token, testutil.AdminUser, h.backend.URL()))
}

func (h *harness) resetNotices() {
	h.transport.Reset()
	h.smart.Reset()
}
