package jwt

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_GenerateAndValidate(t *testing.T) {
	j := New("test-secret", time.Minute)

	userID := uuid.New()
	ctx := context.Background()

	token, err := j.Generate(ctx, userID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// Valid token should pass validation
	assert.NoError(t, j.Validate(ctx, token))

	claims, err := j.GetClaims(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)

	got, err := j.GetUserID(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestJWT_ExpiredToken(t *testing.T) {
	j := New("test-secret", -time.Minute) // already expired
	ctx := context.Background()

	token, err := j.Generate(ctx, uuid.New())
	require.NoError(t, err)

	err = j.Validate(ctx, token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	claims, err := j.GetClaims(ctx, token)
	assert.Error(t, err)
	assert.Nil(t, claims)

	id, err := j.GetUserID(ctx, token)
	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, id)
}

func TestJWT_InvalidToken(t *testing.T) {
	j := New("secret", time.Minute)
	ctx := context.Background()

	assert.Error(t, j.Validate(ctx, "invalid.token.string"))

	claims, err := j.GetClaims(ctx, "invalid.token.string")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWT_ForeignIssuer(t *testing.T) {
	j := New("secret", time.Minute)
	ctx := context.Background()

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	})
	token, err := foreign.SignedString([]byte("secret"))
	require.NoError(t, err)

	assert.Error(t, j.Validate(ctx, token))
}

func TestJWT_Validate_WrongSecret(t *testing.T) {
	j1 := New("secret1", time.Minute)
	j2 := New("secret2", time.Minute)
	ctx := context.Background()

	token, err := j1.Generate(ctx, uuid.New())
	require.NoError(t, err)

	// Validate with wrong secret should fail
	assert.Error(t, j2.Validate(ctx, token))
}

func TestJWT_GetTokenFromRequest(t *testing.T) {
	j := New("secret", time.Minute)
	ctx := context.Background()

	tests := []struct {
		name          string
		header        string
		cookie        string
		expectedToken string
		expectError   error
	}{
		{"ValidBearer", "Bearer mytoken123", "", "mytoken123", nil},
		{"LowercaseBearer", "bearer mytoken123", "", "mytoken123", nil},
		{"HeaderWinsOverCookie", "Bearer fromheader", "fromcookie", "fromheader", nil},
		{"Cookie", "", "fromcookie", "fromcookie", nil},
		{"NoHeaderNoCookie", "", "", "", ErrTokenMissing},
		{"InvalidFormat", "Token mytoken123", "", "", ErrInvalidTokenFormat},
		{"TooManyParts", "Bearer a b c", "", "", ErrInvalidTokenFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequestWithContext(ctx, http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: CookieName, Value: tt.cookie})
			}

			token, err := j.GetTokenFromRequest(ctx, req)
			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedToken, token)
			}
		})
	}
}
