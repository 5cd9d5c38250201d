package services

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-login-portal/internal/logger"
	"github.com/sbilibin2017/gw-login-portal/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserReader defines read-only operations for accounts.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
}

// JWTGenerator defines an interface for generating JWT tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID) (string, error)
}

// AuthService authenticates against the local accounts table.
type AuthService struct {
	reader UserReader
	jwt    JWTGenerator
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, jwt JWTGenerator) *AuthService {
	return &AuthService{
		reader: reader,
		jwt:    jwt,
	}
}

// dummyHash keeps password comparison time similar for unknown accounts.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("gw-login-portal"), bcrypt.MinCost)

// Authenticate checks email and password and returns a JWT token.
func (svc *AuthService) Authenticate(ctx context.Context, email, password string) (string, error) {
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", &AuthError{Code: CodeUnavailable, Err: err}
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		logger.Log.Infow("user does not exist", "email", email)
		return "", &AuthError{Code: CodeInvalidCredentials, Message: MessageInvalidCredential}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Infow("invalid credentials", "email", email)
		return "", &AuthError{Code: CodeInvalidCredentials, Message: MessageInvalidCredential}
	}

	if !user.EmailVerified {
		logger.Log.Infow("email not verified", "email", email)
		return "", &AuthError{Code: CodeEmailNotVerified, Message: MessageVerifyEmailFirst}
	}

	token, err := svc.jwt.Generate(ctx, user.UserID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", &AuthError{Code: CodeUnavailable, Err: err}
	}

	return token, nil
}

