package state

import "github.com/sbilibin2017/gw-login-portal/internal/models"

// AuthActionType enumerates the sign-in lifecycle actions.
type AuthActionType string

const (
	SigninPending   AuthActionType = "signin/pending"
	SigninFulfilled AuthActionType = "signin/fulfilled"
	SigninRejected  AuthActionType = "signin/rejected"
	AuthReset       AuthActionType = "auth/reset"
)

// AuthAction is dispatched to an AuthStore.
type AuthAction struct {
	Type   AuthActionType
	Reason string
}

// AuthState is the sign-in status seen by the login form.
type AuthState struct {
	Status models.AuthStatus
	Reason string
}

// AuthStore is the container for AuthState.
type AuthStore = Store[AuthState, AuthAction]

// NewAuthStore returns an idle AuthStore.
func NewAuthStore() *AuthStore {
	return NewStore(AuthState{Status: models.AuthStatusIdle}, ReduceAuth)
}

// ReduceAuth is the AuthState reducer. Unknown actions leave state unchanged.
func ReduceAuth(s AuthState, a AuthAction) AuthState {
	switch a.Type {
	case SigninPending:
		return AuthState{Status: models.AuthStatusLoading}
	case SigninFulfilled:
		return AuthState{Status: models.AuthStatusSucceeded}
	case SigninRejected:
		return AuthState{Status: models.AuthStatusFailed, Reason: a.Reason}
	case AuthReset:
		return AuthState{Status: models.AuthStatusIdle}
	default:
		return s
	}
}
