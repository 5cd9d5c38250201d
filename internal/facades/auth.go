package facades

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sbilibin2017/gw-login-portal/internal/logger"
	"github.com/sbilibin2017/gw-login-portal/internal/models"
	"github.com/sbilibin2017/gw-login-portal/internal/services"
)

const signinPath = "/signin"

// maxErrorBody bounds how much of a failed response is read.
const maxErrorBody = 64 << 10

// AuthHTTPFacade authenticates against a remote auth API.
type AuthHTTPFacade struct {
	baseURL string
	client  *http.Client
}

// NewAuthHTTPFacade creates a new facade; nil client means http.DefaultClient.
func NewAuthHTTPFacade(baseURL string, client *http.Client) *AuthHTTPFacade {
	if client == nil {
		client = http.DefaultClient
	}
	return &AuthHTTPFacade{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Authenticate posts the credentials to the signin endpoint and returns the issued token.
func (f *AuthHTTPFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(models.SigninRequest{Email: email, Password: password})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+signinPath, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		logger.Log.Errorw("auth api request failed", "url", req.URL.String(), "error", err)
		return "", &services.AuthError{Code: services.CodeUnavailable, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var out models.SigninResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			logger.Log.Errorw("failed to decode signin response", "error", err)
			return "", &services.AuthError{Code: services.CodeUnavailable, Err: err}
		}
		if out.Token == "" {
			return "", &services.AuthError{Code: services.CodeUnavailable, Err: errors.New("empty token in signin response")}
		}
		return out.Token, nil
	}

	authErr := decodeSigninError(resp)
	logger.Log.Infow("signin rejected",
		"status", resp.StatusCode,
		"code", authErr.Code,
		"message", authErr.Message,
	)
	return "", authErr
}

// decodeSigninError turns a non-2xx response into an AuthError.
func decodeSigninError(resp *http.Response) *services.AuthError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var payload models.SigninErrorResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		payload.Message = strings.TrimSpace(string(raw))
		if strings.HasPrefix(payload.Message, "<") {
			payload.Message = ""
		}
	}

	authErr := &services.AuthError{
		Code:    payload.Code,
		Message: payload.Message,
	}

	if authErr.Code == "" {
		switch {
		case strings.EqualFold(strings.TrimSpace(payload.Message), services.MessageVerifyEmailFirst):
			authErr.Code = services.CodeEmailNotVerified
		case resp.StatusCode == http.StatusUnauthorized:
			authErr.Code = services.CodeInvalidCredentials
		case resp.StatusCode >= http.StatusInternalServerError:
			authErr.Code = services.CodeUnavailable
			authErr.Err = fmt.Errorf("auth api responded %d", resp.StatusCode)
		}
	}

	return authErr
}
