package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/gw-login-portal/internal/repositories"
	"github.com/sbilibin2017/gw-login-portal/internal/services"
	"github.com/sbilibin2017/gw-login-portal/internal/sessions"
)

func newSessionStack(t *testing.T) (*sessions.CookieCodec, *sessions.Registry) {
	t.Helper()

	codec, err := sessions.NewCookieCodec([]byte("0123456789abcdef0123456789abcdef"), nil, time.Hour, false)
	require.NoError(t, err)

	reg := sessions.NewRegistry(
		services.NewMockAuthenticator(gomock.NewController(t)),
		repositories.NewMemoryStorage(0),
	)
	t.Cleanup(reg.Close)
	return codec, reg
}

func TestSessionMiddleware_CreatesAndReusesSession(t *testing.T) {
	codec, reg := newSessionStack(t)

	var seen []*sessions.Session
	handler := SessionMiddleware(codec, reg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := SessionFromContext(r.Context())
		require.True(t, ok)
		seen = append(seen, sess)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/login", nil))

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessions.DefaultCookieName, cookies[0].Name)
	assert.Equal(t, 1, reg.Len())

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(cookies[0])
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.Len(t, seen, 2)
	assert.Same(t, seen[0], seen[1])
	assert.Equal(t, 1, reg.Len())
}

func TestSessionMiddleware_TamperedCookieStartsNewSession(t *testing.T) {
	codec, reg := newSessionStack(t)

	var got *sessions.Session
	handler := SessionMiddleware(codec, reg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = SessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: sessions.DefaultCookieName, Value: "forged"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, got)
	assert.NotEqual(t, "forged", got.ID)
}

type closedRegistry struct{}

func (closedRegistry) Get(string) (*sessions.Session, error) {
	return nil, errors.New("closed")
}

func TestSessionMiddleware_RegistryUnavailable(t *testing.T) {
	codec, _ := newSessionStack(t)

	called := false
	handler := SessionMiddleware(codec, closedRegistry{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.False(t, called)
}

func TestSessionFromContext_Missing(t *testing.T) {
	_, ok := SessionFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}
