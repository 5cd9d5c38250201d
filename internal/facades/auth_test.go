package facades

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sbilibin2017/gw-login-portal/internal/models"
	"github.com/sbilibin2017/gw-login-portal/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHTTPFacade_Authenticate(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantToken   string
		wantCode    string
		wantMessage string
		wantErr     bool
	}{
		{
			name:      "Success",
			status:    http.StatusOK,
			body:      `{"token":"jwt-token"}`,
			wantToken: "jwt-token",
		},
		{
			name:        "Email not verified with code",
			status:      http.StatusForbidden,
			body:        `{"message":"Please verify your email first.","code":"email_not_verified"}`,
			wantCode:    services.CodeEmailNotVerified,
			wantMessage: services.MessageVerifyEmailFirst,
			wantErr:     true,
		},
		{
			name:        "Email not verified message only",
			status:      http.StatusForbidden,
			body:        `{"message":"please VERIFY your email first."}`,
			wantCode:    services.CodeEmailNotVerified,
			wantMessage: "please VERIFY your email first.",
			wantErr:     true,
		},
		{
			name:        "Invalid credentials",
			status:      http.StatusUnauthorized,
			body:        `{"message":"Invalid credentials"}`,
			wantCode:    services.CodeInvalidCredentials,
			wantMessage: "Invalid credentials",
			wantErr:     true,
		},
		{
			name:     "Server error without body",
			status:   http.StatusBadGateway,
			body:     ``,
			wantCode: services.CodeUnavailable,
			wantErr:  true,
		},
		{
			name:        "Plain text error",
			status:      http.StatusBadRequest,
			body:        "Account locked",
			wantMessage: "Account locked",
			wantErr:     true,
		},
		{
			name:     "HTML error page",
			status:   http.StatusInternalServerError,
			body:     "<html><body>oops</body></html>",
			wantCode: services.CodeUnavailable,
			wantErr:  true,
		},
		{
			name:     "Empty token",
			status:   http.StatusOK,
			body:     `{"token":""}`,
			wantCode: services.CodeUnavailable,
			wantErr:  true,
		},
		{
			name:     "Malformed success body",
			status:   http.StatusOK,
			body:     `not json`,
			wantCode: services.CodeUnavailable,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/api/v1/signin", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var req models.SigninRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "alice@example.com", req.Email)
				assert.Equal(t, "secret", req.Password)

				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			facade := NewAuthHTTPFacade(srv.URL+"/api/v1/", srv.Client())
			token, err := facade.Authenticate(context.Background(), "alice@example.com", "secret")

			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
				return
			}

			require.Error(t, err)
			assert.Empty(t, token)

			var authErr *services.AuthError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, tt.wantCode, authErr.Code)
			assert.Equal(t, tt.wantMessage, authErr.Message)
		})
	}
}

func TestAuthHTTPFacade_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	facade := NewAuthHTTPFacade(url, nil)
	_, err := facade.Authenticate(context.Background(), "alice@example.com", "secret")

	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrAuthUnavailable)
}

func TestAuthHTTPFacade_ContextCanceled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	facade := NewAuthHTTPFacade(srv.URL, srv.Client())
	_, err := facade.Authenticate(ctx, "alice@example.com", "secret")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, services.ErrAuthUnavailable)
}
