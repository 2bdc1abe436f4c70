package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wmserrors "github.com/wms-platform/wms-web/pkg/errors"
)

func TestFileStore_RoundTrip(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "nested", "session.json"))

	_, err := fs.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, fs.Save(&Record{Token: "abc", Username: "admin"}))

	info, err := os.Stat(fs.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	rec, err := fs.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc", rec.Token)
	assert.Equal(t, "admin", rec.Username)

	require.NoError(t, fs.Clear())
	require.NoError(t, fs.Clear())
	_, err = fs.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestFileStore_RejectsEmptyToken(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	assert.Error(t, fs.Save(&Record{}))
}

func TestContext_InitAndLogin(t *testing.T) {
	store := NewMemoryStore("saved-token")
	sess := New(store, nil)

	require.NoError(t, sess.Init())
	assert.Equal(t, "saved-token", sess.Token())

	require.NoError(t, sess.Login("fresh", "admin", "http://wms"))
	assert.Equal(t, "fresh", sess.Token())
	assert.Equal(t, "admin", sess.Username())

	rec, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "fresh", rec.Token)
}

func TestContext_InitWithoutSession(t *testing.T) {
	sess := New(NewMemoryStore(""), nil)
	require.NoError(t, sess.Init())
	assert.Empty(t, sess.Token())
}

func TestContext_ForceLogoutIsIdempotent(t *testing.T) {
	store := NewMemoryStore("t")
	sess := New(store, nil)
	require.NoError(t, sess.Init())

	hookCalls := 0
	sess.OnLogout(func() { hookCalls++ })

	assert.True(t, sess.ForceLogout())
	assert.False(t, sess.ForceLogout())
	assert.Equal(t, 1, hookCalls)
	assert.Empty(t, sess.Token())
	assert.True(t, sess.LoggedOut())

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, sess.Login("t2", "", ""))
	assert.True(t, sess.ForceLogout())
	assert.Equal(t, 2, hookCalls)
}

func TestContext_TeardownCancelsBoundCalls(t *testing.T) {
	sess := New(NewMemoryStore("t"), nil)

	pending, cancel := sess.Bind(context.Background())
	defer cancel()

	require.NoError(t, sess.Teardown())

	select {
	case <-pending.Done():
	case <-time.After(time.Second):
		t.Fatal("bound context was not cancelled")
	}
	assert.ErrorIs(t, context.Cause(pending), wmserrors.ErrSessionClosed)

	later, cancelLater := sess.Bind(context.Background())
	defer cancelLater()
	assert.NoError(t, later.Err())
}

func TestContext_BindReleasedByCaller(t *testing.T) {
	sess := New(NewMemoryStore(""), nil)

	ctx, cancel := sess.Bind(context.Background())
	cancel()

	assert.ErrorIs(t, context.Cause(ctx), context.Canceled)
}

func TestParseClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "admin",
		"exp":   exp.Unix(),
		"roles": []string{"basic:warehouse:list", "dashboard:view"},
	}).SignedString([]byte("unused"))
	require.NoError(t, err)

	claims, err := ParseClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.True(t, claims.ExpiresAt.Equal(exp))
	assert.Equal(t, []string{"basic:warehouse:list", "dashboard:view"}, claims.Roles)
	assert.False(t, claims.Expired(time.Now()))
	assert.True(t, claims.Expired(exp.Add(time.Second)))
	assert.Zero(t, claims.Remaining(exp.Add(time.Minute)))

	_, err = ParseClaims("not-a-jwt")
	assert.Error(t, err)
}

func TestContext_Claims(t *testing.T) {
	sess := New(NewMemoryStore(""), nil)
	_, err := sess.Claims()
	assert.ErrorIs(t, err, ErrNoSession)
}
