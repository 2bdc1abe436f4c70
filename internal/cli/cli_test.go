package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wms-platform/wms-web/pkg/api"
	wmserrors "github.com/wms-platform/wms-web/pkg/errors"
	"github.com/wms-platform/wms-web/pkg/metrics"
	"github.com/wms-platform/wms-web/pkg/session"
	"github.com/wms-platform/wms-web/pkg/testutil"
	"github.com/wms-platform/wms-web/pkg/wmsapi"
)

// scriptedPrompter answers prompts from a fixed script
type scriptedPrompter struct {
	inputs  []string
	confirm bool
	asked   []string
}

func (p *scriptedPrompter) Input(label string, _ bool) (string, error) {
	p.asked = append(p.asked, label)
	if len(p.inputs) == 0 {
		return "", fmt.Errorf("unexpected prompt %q", label)
	}
	v := p.inputs[0]
	p.inputs = p.inputs[1:]
	return v, nil
}

func (p *scriptedPrompter) Confirm(label string) (bool, error) {
	p.asked = append(p.asked, label)
	return p.confirm, nil
}

type harness struct {
	t         *testing.T
	backend   *testutil.Backend
	dir       string
	config    string
	tokenFile string
	prompter  *scriptedPrompter
}

type run struct {
	code   int
	stdout string
	stderr string
}

func newHarness(t *testing.T, opts ...testutil.BackendOption) *harness {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	h := &harness{
		t:         t,
		backend:   testutil.NewBackend(t, opts...),
		dir:       dir,
		config:    filepath.Join(dir, "wmsctl.yaml"),
		tokenFile: filepath.Join(dir, "session.json"),
		prompter:  &scriptedPrompter{},
	}
	cfg := fmt.Sprintf("server: %s\ntoken_file: %s\nlog:\n  level: error\n", h.backend.URL(), h.tokenFile)
	require.NoError(t, os.WriteFile(h.config, []byte(cfg), 0o600))
	return h
}

func (h *harness) run(args ...string) run {
	h.t.Helper()
	var out, errOut bytes.Buffer
	app := NewApp(&out, &errOut)
	app.Prompter = h.prompter
	app.envFile = ""

	code := app.Execute(context.Background(), append([]string{"--config", h.config}, args...))
	return run{code: code, stdout: out.String(), stderr: errOut.String()}
}

func (h *harness) signIn() {
	h.t.Helper()
	err := session.NewFileStore(h.tokenFile).Save(&session.Record{
		Token:    h.backend.IssueToken(testutil.AdminUser),
		Username: testutil.AdminUser,
		Server:   h.backend.URL(),
	})
	require.NoError(h.t, err)
}

func TestLogin(t *testing.T) {
	h := newHarness(t)
	h.prompter.inputs = []string{testutil.AdminUser, testutil.AdminPassword, testutil.CaptchaCode}
	captcha := filepath.Join(h.dir, "captcha.png")

	res := h.run("login", "--captcha-file", captcha)

	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stderr, "welcome back, admin")
	assert.Equal(t, []string{"Username", "Password", "Captcha code"}, h.prompter.asked)
	assert.FileExists(t, captcha)
	assert.FileExists(t, h.tokenFile)

	res = h.run("whoami", "-o", "json")
	require.Equal(t, ExitOK, res.code, res.stderr)
	var me whoami
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &me))
	assert.Equal(t, testutil.AdminUser, me.Username)
	assert.Equal(t, h.backend.URL(), me.Server)
}

func TestLogin_SuccessCodeZero(t *testing.T) {
	h := newHarness(t, testutil.WithSuccessCode(0))

	res := h.run("login", "-u", testutil.AdminUser, "-p", testutil.AdminPassword, "--code", testutil.CaptchaCode)
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stderr, "welcome back, admin")
	assert.FileExists(t, h.tokenFile)

	res = h.run("whoami", "-o", "json")
	require.Equal(t, ExitOK, res.code, res.stderr)
	var me whoami
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &me))
	assert.Equal(t, testutil.AdminUser, me.Username)

	res = h.run("warehouses", "list", "-o", "json")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "WH01")
}

func TestLogin_WrongPassword(t *testing.T) {
	h := newHarness(t)

	res := h.run("login", "-u", testutil.AdminUser, "-p", "nope", "--code", testutil.CaptchaCode)

	assert.Equal(t, ExitFailure, res.code)
	assert.Contains(t, res.stderr, "invalid username or password")
	assert.NoFileExists(t, h.tokenFile)
	assert.Empty(t, h.prompter.asked)
}

func TestLogout(t *testing.T) {
	h := newHarness(t)
	h.signIn()

	res := h.run("logout")

	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stderr, "signed out")
	assert.NoFileExists(t, h.tokenFile)
}

func TestNotSignedIn(t *testing.T) {
	h := newHarness(t)

	res := h.run("warehouses", "list")

	assert.Equal(t, ExitFailure, res.code)
	assert.Contains(t, res.stderr, "not signed in")
	assert.Empty(t, h.backend.Requests())
}

func TestWarehousesList(t *testing.T) {
	h := newHarness(t)
	h.signIn()

	t.Run("json", func(t *testing.T) {
		res := h.run("warehouses", "list", "-o", "json")
		require.Equal(t, ExitOK, res.code, res.stderr)

		var page api.PageResult[wmsapi.Warehouse]
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &page))
		assert.EqualValues(t, 2, page.Total)
		require.Len(t, page.Content, 2)
		assert.Equal(t, "WH01", page.Content[0].Code)
	})

	t.Run("table", func(t *testing.T) {
		res := h.run("warehouses", "list")
		require.Equal(t, ExitOK, res.code, res.stderr)
		assert.Contains(t, res.stdout, "WH01")
		assert.Contains(t, res.stdout, "Overflow")
		assert.Contains(t, res.stdout, "Page 1 of 1, 2 total")
	})

	t.Run("yaml", func(t *testing.T) {
		res := h.run("warehouses", "get", "1", "-o", "yaml")
		require.Equal(t, ExitOK, res.code, res.stderr)
		assert.Contains(t, res.stdout, "code: WH01")
	})
}

func TestRevokedSession(t *testing.T) {
	h := newHarness(t)
	h.signIn()
	h.backend.Revoke()

	res := h.run("warehouses", "list")

	assert.Equal(t, ExitSignedOut, res.code)
	assert.Contains(t, res.stderr, "wmsctl login")
	assert.NotContains(t, res.stderr, "Error:")
	assert.NoFileExists(t, h.tokenFile)
}

func TestDeleteConfirmation(t *testing.T) {
	h := newHarness(t)
	h.signIn()

	res := h.run("warehouses", "delete", "2")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Equal(t, []string{"Delete warehouse 2"}, h.prompter.asked)
	assert.Zero(t, h.backend.Count(http.MethodDelete, "warehouses/2"))

	res = h.run("warehouses", "delete", "2", "--yes")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Equal(t, 1, h.backend.Count(http.MethodDelete, "warehouses/2"))
	assert.Len(t, h.prompter.asked, 1)
}

func TestCreateFromFile_Invalid(t *testing.T) {
	h := newHarness(t)
	h.signIn()
	file := filepath.Join(h.dir, "warehouse.yaml")
	require.NoError(t, os.WriteFile(file, []byte("name: No code\n"), 0o600))

	res := h.run("warehouses", "create", "-f", file)

	assert.Equal(t, ExitFailure, res.code)
	assert.Zero(t, h.backend.Count(http.MethodPost, "warehouses"))
}

func TestMenu(t *testing.T) {
	h := newHarness(t, testutil.WithRoles("dashboard:view", "basic:warehouse:list"))
	h.signIn()

	res := h.run("menu")

	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "/dashboard")
	assert.Contains(t, res.stdout, "/basic/warehouses")
	assert.NotContains(t, res.stdout, "/basic/zones")
	assert.NotContains(t, res.stdout, "/inbound")
	assert.NotContains(t, res.stdout, "/login")
}

func TestWatch(t *testing.T) {
	h := newHarness(t)
	h.signIn()

	res := h.run("watch", "--count", "1", "--addr", "127.0.0.1:0")

	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stderr, "Serving metrics on http://127.0.0.1:")
	assert.Equal(t, 1, h.backend.Count(http.MethodGet, "dashboard/stats"))
}

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

func TestWatch_ServesUntilCancelled(t *testing.T) {
	h := newHarness(t)
	h.signIn()
	addr := freeAddr(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var out, errOut bytes.Buffer
	app := NewApp(&out, &errOut)
	app.envFile = ""
	exited := make(chan int, 1)
	go func() {
		exited <- app.Execute(ctx, []string{"--config", h.config, "watch", "--addr", addr})
	}()

	get := func(path string) (int, string) {
		resp, err := http.Get("http://" + addr + path)
		if err != nil {
			return 0, ""
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, string(body)
	}

	waitCtx := testutil.TestContext(t, 5*time.Second)
	require.NoError(t, testutil.WaitForCondition(waitCtx, func() bool {
		code, _ := get("/ready")
		return code == http.StatusOK
	}, 20*time.Millisecond))

	testutil.AssertEventually(t, func() bool {
		_, body := get("/metrics")
		return strings.Contains(body, `stat="warehouses"} 2`)
	}, 2*time.Second, "dashboard gauges exported")

	cancel()
	select {
	case code := <-exited:
		assert.Equal(t, ExitOK, code, errOut.String())
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
	assert.Equal(t, 1, h.backend.Count(http.MethodGet, "dashboard/stats"))
}

func TestWatch_SignedOut(t *testing.T) {
	h := newHarness(t)
	h.signIn()
	h.backend.Revoke()

	res := h.run("watch", "--count", "3", "--addr", "127.0.0.1:0", "--interval", "10ms")

	assert.Equal(t, ExitSignedOut, res.code)
	assert.Equal(t, 1, h.backend.Count(http.MethodGet, "dashboard/stats"))
}

func TestRaw(t *testing.T) {
	h := newHarness(t)

	t.Run("operations need no session", func(t *testing.T) {
		res := h.run("raw", "ops")
		require.Equal(t, ExitOK, res.code, res.stderr)
		assert.Contains(t, res.stdout, "/warehouses")
		assert.Empty(t, h.backend.Requests())
	})

	h.signIn()

	t.Run("data", func(t *testing.T) {
		res := h.run("raw", "get", "warehouses/1", "-o", "json")
		require.Equal(t, ExitOK, res.code, res.stderr)

		var w wmsapi.Warehouse
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &w))
		assert.Equal(t, "WH01", w.Code)
	})

	t.Run("full envelope", func(t *testing.T) {
		res := h.run("raw", "GET", "warehouses/1", "--full", "-o", "json")
		require.Equal(t, ExitOK, res.code, res.stderr)

		var env map[string]any
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &env))
		assert.EqualValues(t, 200, env["code"])
		assert.Contains(t, env, "data")
	})

	t.Run("binary to file", func(t *testing.T) {
		out := filepath.Join(h.dir, "stock.csv")
		res := h.run("raw", "GET", "inventory/export", "--binary", "--out", out)
		require.Equal(t, ExitOK, res.code, res.stderr)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	})

	t.Run("bad query", func(t *testing.T) {
		res := h.run("raw", "GET", "warehouses", "--query", "size")
		assert.Equal(t, ExitFailure, res.code)
		assert.Contains(t, res.stderr, "want key=value")
	})
}

func TestReport(t *testing.T) {
	var errOut bytes.Buffer
	app := NewApp(&bytes.Buffer{}, &errOut)

	app.report(errors.New("boom"))
	assert.Contains(t, errOut.String(), "boom")

	errOut.Reset()
	app.report(wmserrors.ErrApplication(0, "login refused"))
	assert.Contains(t, errOut.String(), "login refused")

	errOut.Reset()
	shown := wmserrors.ErrApplication(500, "already shown")
	shown.MarkNotified()
	app.report(fmt.Errorf("create: %w", shown))
	assert.Empty(t, errOut.String())

	app.report(fmt.Errorf("wrapped: %w", context.Canceled))
	app.report(wmserrors.NewAPIError(wmserrors.KindTransport, 0, "session closed").Wrap(wmserrors.ErrSessionClosed))
	assert.Empty(t, errOut.String())
}

func TestMonitorRouter(t *testing.T) {
	m := metrics.New(&metrics.Config{ServiceName: "wmsctl", Namespace: "wms", SkipRuntime: true})
	var state pollState
	router := newMonitorRouter(m, state.check, nil)

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	assert.Equal(t, http.StatusOK, get("/health").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get("/ready").Code)

	state.set(errors.New("backend down"))
	w := get("/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "backend down")

	state.set(nil)
	assert.Equal(t, http.StatusOK, get("/ready").Code)

	exportStats(m, &wmsapi.DashboardStats{TotalWarehouses: 2, LowStockAlerts: 1})
	w = get("/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `wms_dashboard_stat{service="wmsctl",stat="warehouses"} 2`)

	assert.Equal(t, http.StatusNotFound, get("/nope").Code)
}

func TestMonitorRouter_CORS(t *testing.T) {
	m := metrics.New(&metrics.Config{ServiceName: "wmsctl", Namespace: "wms", SkipRuntime: true})
	router := newMonitorRouter(m, func() error { return nil }, []string{"http://localhost:5173"})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
