package testutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Fake backend credentials
const (
	AdminUser     = "admin"
	AdminPassword = "admin123"
	// CaptchaCode solves every captcha the fake backend issues
	CaptchaCode = "4821"
	BasePath    = "/api/v1"
)

// CaptchaImage is the image every captcha challenge returns
const CaptchaImage = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

// RecordedRequest is one request the backend received
type RecordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

type fault struct {
	status int
	body   string
	delay  time.Duration
}

// Backend is an in-memory WMS API served over HTTP for tests. It speaks the
// {code,data,msg} envelope, issues signed tokens and can be told to fail.
type Backend struct {
	Server *httptest.Server

	engine   *gin.Engine
	validate *validator.Validate
	secret   []byte
	tokenTTL time.Duration

	mu       sync.Mutex
	requests []RecordedRequest
	faults   map[string]fault
	revoked  bool
	roles    []string
	captchas map[string]string
	// okCode is the envelope code of successful answers, 200 or 0
	okCode int

	store *store
}

// BackendOption customizes a Backend
type BackendOption func(*Backend)

// WithRoles sets the roles carried by issued tokens
func WithRoles(roles ...string) BackendOption {
	return func(b *Backend) { b.roles = roles }
}

// WithTokenTTL sets how long issued tokens stay valid
func WithTokenTTL(ttl time.Duration) BackendOption {
	return func(b *Backend) { b.tokenTTL = ttl }
}

// WithSuccessCode sets the envelope code of successful answers. Backends
// disagree between 200 and 0; clients must accept both.
func WithSuccessCode(code int) BackendOption {
	return func(b *Backend) { b.okCode = code }
}

// NewBackend starts a seeded fake backend that stops when the test ends
func NewBackend(t testing.TB, opts ...BackendOption) *Backend {
	t.Helper()
	b := newBackend(opts...)
	b.Server = httptest.NewServer(b.engine)
	t.Cleanup(b.Server.Close)
	return b
}

func newBackend(opts ...BackendOption) *Backend {
	gin.SetMode(gin.TestMode)

	b := &Backend{
		engine:   gin.New(),
		validate: validator.New(),
		secret:   []byte("fake-wms-secret"),
		tokenTTL: time.Hour,
		faults:   make(map[string]fault),
		roles:    []string{"admin"},
		captchas: make(map[string]string),
		okCode:   http.StatusOK,
		store:    newStore(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.store.seed()
	b.routes()
	return b
}

// URL returns the server root, without the API base path
func (b *Backend) URL() string {
	return b.Server.URL
}

// Handler returns the HTTP handler serving the API
func (b *Backend) Handler() http.Handler {
	return b.engine
}

// IssueToken signs a token for username with the configured roles
func (b *Backend) IssueToken(username string) string {
	b.mu.Lock()
	roles := append([]string(nil), b.roles...)
	b.mu.Unlock()

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   username,
		"roles": roles,
		"iat":   now.Unix(),
		"exp":   now.Add(b.tokenTTL).Unix(),
	})
	signed, err := token.SignedString(b.secret)
	if err != nil {
		panic(err)
	}
	return signed
}

// Revoke makes every token fail with an envelope code 401
func (b *Backend) Revoke() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revoked = true
}

// Fail makes method+path answer status with body. path is relative to the
// base path, e.g. "warehouses/1".
func (b *Backend) Fail(method, path string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.faults[faultKey(method, path)] = fault{status: status, body: body}
}

// Delay makes method+path wait d before answering normally
func (b *Backend) Delay(method, path string, d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.faults[faultKey(method, path)] = fault{delay: d}
}

// Reset clears faults, recorded requests and revocation
func (b *Backend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.faults = make(map[string]fault)
	b.requests = nil
	b.revoked = false
}

// Requests returns every request received so far
func (b *Backend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]RecordedRequest(nil), b.requests...)
}

// LastRequest returns the latest request, or false when there is none
func (b *Backend) LastRequest() (RecordedRequest, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.requests) == 0 {
		return RecordedRequest{}, false
	}
	return b.requests[len(b.requests)-1], true
}

// Count returns how many requests hit method+path
func (b *Backend) Count(method, path string) int {
	key := faultKey(method, path)
	n := 0
	for _, r := range b.Requests() {
		if faultKey(r.Method, strings.TrimPrefix(r.Path, BasePath)) == key {
			n++
		}
	}
	return n
}

func faultKey(method, path string) string {
	return strings.ToUpper(method) + " /" + strings.TrimPrefix(path, "/")
}

func (b *Backend) routes() {
	b.engine.Use(gin.Recovery(), b.record, b.inject, func(c *gin.Context) {
		c.Set(okCodeKey, b.okCode)
	})

	// Non-envelope endpoints
	b.engine.GET(BasePath+"/system/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})

	auth := b.engine.Group(BasePath + "/auth")
	auth.GET("/captcha/init", b.captchaInit)
	auth.POST("/captcha/verify", b.captchaVerify)
	auth.POST("/login", b.login)

	api := b.engine.Group(BasePath, b.authenticate)
	api.GET("/users/me", b.me)
	api.GET("/inventory/export", b.exportInventory)
	b.resourceRoutes(api)

	b.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"status": 404, "error": "Not Found", "path": c.Request.URL.Path})
	})
}

func (b *Backend) record(c *gin.Context) {
	var body []byte
	if c.Request.Body != nil {
		body, _ = io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
	}

	b.mu.Lock()
	b.requests = append(b.requests, RecordedRequest{
		Method:   c.Request.Method,
		Path:     c.Request.URL.Path,
		RawQuery: c.Request.URL.RawQuery,
		Header:   c.Request.Header.Clone(),
		Body:     body,
	})
	b.mu.Unlock()
	c.Next()
}

func (b *Backend) inject(c *gin.Context) {
	b.mu.Lock()
	f, injected := b.faults[faultKey(c.Request.Method, strings.TrimPrefix(c.Request.URL.Path, BasePath))]
	b.mu.Unlock()
	if !injected {
		c.Next()
		return
	}

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-c.Request.Context().Done():
			c.Abort()
			return
		}
	}
	if f.status == 0 {
		c.Next()
		return
	}
	c.Header("Content-Type", "application/json")
	c.String(f.status, f.body)
	c.Abort()
}

func (b *Backend) authenticate(c *gin.Context) {
	b.mu.Lock()
	revoked := b.revoked
	b.mu.Unlock()

	raw, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !found || raw == "" {
		fail(c, http.StatusUnauthorized, "not signed in")
		c.Abort()
		return
	}
	if revoked {
		fail(c, http.StatusUnauthorized, "token expired")
		c.Abort()
		return
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return b.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		fail(c, http.StatusUnauthorized, "token expired")
		c.Abort()
		return
	}
	sub, _ := claims.GetSubject()
	c.Set("username", sub)
	c.Next()
}

func (b *Backend) captchaInit(c *gin.Context) {
	token := uuid.NewString()
	b.mu.Lock()
	b.captchas[token] = CaptchaCode
	b.mu.Unlock()
	ok(c, gin.H{"token": token, "imageBase64": CaptchaImage})
}

func (b *Backend) checkCaptcha(token, code string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	want, found := b.captchas[token]
	return found && want == code
}

func (b *Backend) captchaVerify(c *gin.Context) {
	if !b.checkCaptcha(c.Query("token"), c.Query("code")) {
		fail(c, http.StatusBadRequest, "captcha incorrect")
		return
	}
	reply(c, nil, "captcha verified")
}

type loginBody struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Code     string `json:"code" validate:"required"`
	Token    string `json:"token" validate:"required"`
}

func (b *Backend) login(c *gin.Context) {
	var req loginBody
	if !b.bind(c, &req) {
		return
	}
	if !b.checkCaptcha(req.Token, req.Code) {
		fail(c, http.StatusBadRequest, "captcha incorrect")
		return
	}
	if req.Username != AdminUser || req.Password != AdminPassword {
		fail(c, http.StatusBadRequest, "invalid username or password")
		return
	}

	b.mu.Lock()
	delete(b.captchas, req.Token)
	b.mu.Unlock()

	reply(c, gin.H{"token": b.IssueToken(req.Username)}, "welcome back, "+req.Username)
}

func (b *Backend) me(c *gin.Context) {
	b.mu.Lock()
	roles := append([]string(nil), b.roles...)
	b.mu.Unlock()
	ok(c, gin.H{"id": 1, "username": c.GetString("username"), "nickname": "Administrator", "roles": roles})
}

func (b *Backend) exportInventory(c *gin.Context) {
	var buf bytes.Buffer
	buf.WriteString("id,skuCode,locationCode,quantity\n")
	for _, inv := range b.store.inventory.list(nil) {
		fmt.Fprintf(&buf, "%d,%s,%s,%d\n", inv.ID, inv.SkuCode, inv.LocationCode, inv.Quantity)
	}
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// bind decodes and validates a JSON body, answering the failure itself
func (b *Backend) bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	if err := b.validate.Struct(v); err != nil {
		fail(c, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("%s failed on %s", lowerFirst(fe.Field()), fe.Tag())
	}
	return err.Error()
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

const okCodeKey = "okCode"

func ok(c *gin.Context, data any) {
	reply(c, data, "success")
}

// reply answers with the configured success code
func reply(c *gin.Context, data any, msg string) {
	code := http.StatusOK
	if v, exists := c.Get(okCodeKey); exists {
		code = v.(int)
	}
	c.JSON(http.StatusOK, gin.H{"code": code, "data": data, "msg": msg})
}

func fail(c *gin.Context, code int, msg string) {
	c.JSON(http.StatusOK, gin.H{"code": code, "data": nil, "msg": msg})
}

// collection is an ordered in-memory table keyed by generated IDs
type collection[T any] struct {
	mu    sync.Mutex
	next  int64
	ids   []int64
	items map[int64]T
	setID func(*T, int64)
}

func newCollection[T any](setID func(*T, int64)) *collection[T] {
	return &collection[T]{items: make(map[int64]T), setID: setID}
}

func (c *collection[T]) add(v T) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next++
	c.setID(&v, c.next)
	c.ids = append(c.ids, c.next)
	c.items[c.next] = v
	return v
}

func (c *collection[T]) get(id int64) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, found := c.items[id]
	return v, found
}

func (c *collection[T]) update(id int64, fn func(*T) error) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, found := c.items[id]
	if !found {
		var zero T
		return zero, errNotFound
	}
	if err := fn(&v); err != nil {
		return v, err
	}
	c.setID(&v, id)
	c.items[id] = v
	return v, nil
}

func (c *collection[T]) remove(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, found := c.items[id]; !found {
		return false
	}
	delete(c.items, id)
	return true
}

// list returns the items keep accepts, in insertion order. nil keeps all.
func (c *collection[T]) list(keep func(T) bool) []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := []T{}
	for _, id := range c.ids {
		v, found := c.items[id]
		if !found {
			continue
		}
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func (c *collection[T]) len() int {
	return len(c.list(nil))
}

var errNotFound = errors.New("not found")

func sortByKey[T any](items []T, key func(T) string, desc bool) {
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return key(items[i]) > key(items[j])
		}
		return key(items[i]) < key(items[j])
	})
}
