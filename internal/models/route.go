package models

// Route is a named client-side destination.
type Route string

const (
	RouteLogin          Route = "/login"
	RouteHome           Route = "/home"
	RouteVerifyEmail    Route = "/verifyemail"
	RouteForgetPassword Route = "/forget-password"
	RouteSignup         Route = "/signup"
)

// String returns the route path.
func (r Route) String() string {
	return string(r)
}

// StorageKeyEmail is the durable storage key under which the submitted email
// is kept for the verification page.
const StorageKeyEmail = "email"

// AuthStatus is the lifecycle of the sign-in request.
type AuthStatus string

const (
	AuthStatusIdle      AuthStatus = "idle"
	AuthStatusLoading   AuthStatus = "loading"
	AuthStatusSucceeded AuthStatus = "succeeded"
	AuthStatusFailed    AuthStatus = "failed"
)
