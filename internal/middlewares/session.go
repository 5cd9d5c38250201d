package middlewares

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-login-portal/internal/logger"
	"github.com/sbilibin2017/gw-login-portal/internal/sessions"
)

// SessionCookie reads and writes the session id cookie.
type SessionCookie interface {
	Read(r *http.Request) (string, bool)
	Write(w http.ResponseWriter, id string) error
}

// SessionGetter returns the live session for an id, creating it if needed.
type SessionGetter interface {
	Get(id string) (*sessions.Session, error)
}

type sessionKey struct{}

// SessionMiddleware attaches the browser session to the request context.
// A request without a valid cookie starts a new session. The cookie is
// written on every response to keep it alive.
func SessionMiddleware(cookie SessionCookie, registry SessionGetter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := cookie.Read(r)
			if !ok {
				id = sessions.NewID()
			}

			sess, err := registry.Get(id)
			if err != nil {
				logger.Log.Errorw("session unavailable", "err", err)
				http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
				return
			}

			if err := cookie.Write(w, id); err != nil {
				logger.Log.Errorw("session cookie not written", "session", id, "err", err)
			}

			ctx := context.WithValue(r.Context(), sessionKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext retrieves the session attached to this request.
func SessionFromContext(ctx context.Context) (*sessions.Session, bool) {
	sess, ok := ctx.Value(sessionKey{}).(*sessions.Session)
	return sess, ok && sess != nil
}

// ContextWithSession attaches sess to ctx.
func ContextWithSession(ctx context.Context, sess *sessions.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}
