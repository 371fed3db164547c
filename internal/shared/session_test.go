package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*SessionManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionManager(client, "dash_session", "0123456789abcdef0123456789abcdef", time.Hour, false), mr
}

func roundTrip(t *testing.T, sm *SessionManager, sess *Session) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, sm.Commit(context.Background(), rec, sess))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestSessionPersistsValuesAndFlashes(t *testing.T) {
	sm, mr := newTestManager(t)
	ctx := context.Background()

	sess, err := sm.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	sess.Set("tab", "forecast")
	sess.AddFlash(FlashMessage{Kind: FlashError, Message: "API Error: boom"})
	cookie := roundTrip(t, sm, sess)
	assert.NotEqual(t, sess.ID, cookie.Value, "cookie value is signed")
	assert.True(t, mr.Exists("session:"+sess.ID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	loaded, err := sm.Load(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, loaded.ID)
	assert.Equal(t, "forecast", loaded.Get("tab"))

	require.NotNil(t, loaded.Flash())
	assert.Equal(t, "API Error: boom", loaded.Flash().Message)
	assert.NotNil(t, loaded.Flash(), "peeking keeps the flash")

	popped := loaded.PopFlash()
	require.NotNil(t, popped)
	assert.Nil(t, loaded.Flash())
	roundTrip(t, sm, loaded)

	again, err := sm.Load(ctx, req)
	require.NoError(t, err)
	assert.Nil(t, again.Flash())
}

func TestSessionRejectsTamperedCookie(t *testing.T) {
	sm, _ := newTestManager(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sm.CookieName(), Value: "forged-session-id"})

	sess, err := sm.Load(context.Background(), req)
	require.NoError(t, err)
	assert.NotEqual(t, "forged-session-id", sess.ID)
	assert.True(t, sess.isNew)
}

func TestSessionExpiresWithTTL(t *testing.T) {
	sm, mr := newTestManager(t)
	ctx := context.Background()
	sess, err := sm.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	sess.Set("k", "v")
	cookie := roundTrip(t, sm, sess)

	mr.FastForward(2 * time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	loaded, err := sm.Load(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "", loaded.Get("k"))
	assert.Equal(t, time.Hour, sm.TTL())
}

func TestCSRFTokens(t *testing.T) {
	m := NewCSRFManager("csrf-secret")
	sess := &Session{ID: "abc"}

	token, err := m.EnsureToken(sess)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	again, err := m.EnsureToken(sess)
	require.NoError(t, err)
	assert.Equal(t, token, again)

	assert.NoError(t, m.VerifyToken(sess, token))
	assert.ErrorIs(t, m.VerifyToken(sess, "nope"), ErrCSRFTokenMismatch)
	assert.ErrorIs(t, m.VerifyToken(sess, ""), ErrCSRFTokenMissing)
	assert.ErrorIs(t, m.VerifyToken(nil, token), ErrCSRFTokenMissing)

	_, err = m.EnsureToken(nil)
	assert.ErrorIs(t, err, ErrSessionMissing)
}

func TestSessionContext(t *testing.T) {
	sess := &Session{ID: "ctx"}
	ctx := ContextWithSession(context.Background(), sess)
	assert.Same(t, sess, SessionFromContext(ctx))
	assert.Nil(t, SessionFromContext(context.Background()))
}
