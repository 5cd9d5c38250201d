package middlewares

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=middlewares

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-login-portal/internal/logger"
)

// Tokener defines the minimal interface needed by the middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetUserID(ctx context.Context, tokenString string) (uuid.UUID, error)
}

type userIDKey struct{}

// AuthMiddleware returns a middleware that lets only requests with a valid
// token through. Others are sent to loginPath.
func AuthMiddleware(tokener Tokener, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Infow("authorization failed", "uri", r.RequestURI, "err", err)
				Redirect(w, r, loginPath)
				return
			}

			userID, err := tokener.GetUserID(ctx, tokenString)
			if err != nil {
				logger.Log.Errorw("authorization failed", "uri", r.RequestURI, "err", err)
				Redirect(w, r, loginPath)
				return
			}

			ctx = context.WithValue(ctx, userIDKey{}, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the user authenticated by AuthMiddleware.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	return id, ok
}
