package session

import (
	"context"
	"errors"
	"sync"
	"time"

	wmserrors "github.com/wms-platform/wms-web/pkg/errors"
	"github.com/wms-platform/wms-web/pkg/logging"
)

// Context is the process-wide session: it owns the token, the lifetime that
// pending calls are bound to, and the hooks run when the backend ends the
// session. Create one per process and pass it to the clients that need it.
type Context struct {
	mu       sync.RWMutex
	store    Store
	logger   *logging.Logger
	token    string
	username string

	life      context.Context
	endLife   context.CancelCauseFunc
	loggedOut bool

	hooks []func()
}

// New creates a session context backed by store. Call Init to load the token.
func New(store Store, logger *logging.Logger) *Context {
	if logger == nil {
		logger = logging.Nop()
	}
	c := &Context{
		store:  store,
		logger: logger.WithComponent("session"),
	}
	c.life, c.endLife = context.WithCancelCause(context.Background())
	return c
}

// Init loads the saved token. A missing session is not an error.
func (c *Context) Init() error {
	rec, err := c.store.Load()
	if errors.Is(err, ErrNoSession) {
		return nil
	}
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.token = rec.Token
	c.username = rec.Username
	c.mu.Unlock()
	return nil
}

// Token returns the current token, or "" when signed out
func (c *Context) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Username returns the user the token was issued to, if known
func (c *Context) Username() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.username
}

// Login stores a new token and re-arms ForceLogout
func (c *Context) Login(token, username, server string) error {
	if err := c.store.Save(&Record{Token: token, Username: username, Server: server, SavedAt: time.Now()}); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.username = username
	c.loggedOut = false
	return nil
}

// OnLogout registers fn to run after a forced logout
func (c *Context) OnLogout(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append(c.hooks, fn)
}

// Teardown clears the token and fails every call bound to the session so far
// with ErrSessionClosed. Calls bound afterwards start a new lifetime.
func (c *Context) Teardown() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.teardownLocked()
}

func (c *Context) teardownLocked() error {
	c.token = ""
	c.username = ""
	c.endLife(wmserrors.ErrSessionClosed)
	c.life, c.endLife = context.WithCancelCause(context.Background())
	return c.store.Clear()
}

// ForceLogout ends the session after an authentication failure and runs the
// logout hooks. Only the first call per session does anything; it reports
// whether this call was that one.
func (c *Context) ForceLogout() bool {
	c.mu.Lock()
	if c.loggedOut {
		c.mu.Unlock()
		return false
	}
	c.loggedOut = true
	if err := c.teardownLocked(); err != nil {
		c.logger.WithError(err).Warn("Failed to clear session store")
	}
	hooks := append([]func(){}, c.hooks...)
	c.mu.Unlock()

	c.logger.Warn("Session expired, signed out")
	for _, fn := range hooks {
		fn()
	}
	return true
}

// LoggedOut reports whether the session was ended by ForceLogout
func (c *Context) LoggedOut() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loggedOut
}

// Bind derives a context that is cancelled with ErrSessionClosed as its
// cause when the session is torn down.
func (c *Context) Bind(parent context.Context) (context.Context, context.CancelFunc) {
	c.mu.RLock()
	life := c.life
	c.mu.RUnlock()

	ctx, cancel := context.WithCancelCause(parent)
	stop := context.AfterFunc(life, func() {
		cancel(context.Cause(life))
	})
	return ctx, func() {
		stop()
		cancel(context.Canceled)
	}
}

// Claims decodes the current token, or returns ErrNoSession when signed out
func (c *Context) Claims() (*Claims, error) {
	token := c.Token()
	if token == "" {
		return nil, ErrNoSession
	}
	return ParseClaims(token)
}
