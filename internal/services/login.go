package services

//go:generate mockgen -source=login.go -destination=mock_login.go -package=services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sbilibin2017/gw-login-portal/internal/logger"
	"github.com/sbilibin2017/gw-login-portal/internal/models"
	"github.com/sbilibin2017/gw-login-portal/internal/scheduler"
	"github.com/sbilibin2017/gw-login-portal/internal/state"
)

// DefaultRedirectDelay is how long the verification warning stays on screen
// before navigating away.
const DefaultRedirectDelay = 2000 * time.Millisecond

// Submit control labels.
const (
	LabelSubmit     = "Login"
	LabelSubmitting = "Logging in..."
)

// Authenticator verifies credentials and returns an access token.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (string, error)
}

// Navigator moves the user to a route.
type Navigator interface {
	GoTo(route models.Route)
}

// KeyValueWriter persists a value for later pages.
type KeyValueWriter interface {
	Set(ctx context.Context, key, value string) error
}

// Outcome is the result of one submission.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSucceeded
	OutcomeVerificationRequired
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeVerificationRequired:
		return "verification_required"
	case OutcomeFailed:
		return "failed"
	default:
		return "none"
	}
}

// LoginController owns the login form of one user session: field values,
// the notification banner, and the single in-flight sign-in request.
type LoginController struct {
	mu           sync.Mutex
	form         models.FormState
	notification models.Notification
	token        string
	closed       bool
	// redirect is the verification navigation still waiting to fire.
	redirect     *scheduler.Task

	auth   Authenticator
	nav    Navigator
	store  KeyValueWriter
	status *state.AuthStore
	sched  *scheduler.Scheduler
	delay  time.Duration
}

// LoginOption configures a LoginController.
type LoginOption func(*LoginController)

// WithRedirectDelay overrides DefaultRedirectDelay.
func WithRedirectDelay(d time.Duration) LoginOption {
	return func(c *LoginController) {
		if d >= 0 {
			c.delay = d
		}
	}
}

// WithScheduler sets the scheduler that owns deferred navigation.
func WithScheduler(s *scheduler.Scheduler) LoginOption {
	return func(c *LoginController) {
		if s != nil {
			c.sched = s
		}
	}
}

// WithAuthStore injects the AuthState container.
func WithAuthStore(s *state.AuthStore) LoginOption {
	return func(c *LoginController) {
		if s != nil {
			c.status = s
		}
	}
}

// NewLoginController creates a LoginController in the idle state.
func NewLoginController(auth Authenticator, nav Navigator, store KeyValueWriter, opts ...LoginOption) *LoginController {
	c := &LoginController{
		auth:  auth,
		nav:   nav,
		store: store,
		delay: DefaultRedirectDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.status == nil {
		c.status = state.NewAuthStore()
	}
	if c.sched == nil {
		c.sched = scheduler.New(scheduler.RealClock)
	}
	return c
}

// SetField updates one form field.
func (c *LoginController) SetField(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch name {
	case models.FieldEmail:
		c.form.Email = value
	case models.FieldPassword:
		c.form.Password = value
	default:
		return ErrUnknownField
	}
	return nil
}

// Form returns the current field values.
func (c *LoginController) Form() models.FormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// Notification returns the banner currently shown.
func (c *LoginController) Notification() models.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notification
}

// Status returns the sign-in status.
func (c *LoginController) Status() models.AuthStatus {
	return c.status.State().Status
}

// Busy reports whether a submission is in flight; the submit control is
// disabled while it is.
func (c *LoginController) Busy() bool {
	return c.Status() == models.AuthStatusLoading
}

// SubmitLabel is the text of the submit control.
func (c *LoginController) SubmitLabel() string {
	if c.Busy() {
		return LabelSubmitting
	}
	return LabelSubmit
}

// Token returns the token issued by the last successful sign-in.
func (c *LoginController) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// PendingNavigation reports whether a deferred navigation is scheduled.
func (c *LoginController) PendingNavigation() bool {
	return c.sched.Pending() > 0
}

// Validate returns a FieldError for the first empty required field.
func (c *LoginController) Validate() error {
	form := c.Form()
	return validateForm(form)
}

func validateForm(form models.FormState) error {
	if form.Email == "" {
		return &FieldError{Field: models.FieldEmail}
	}
	if form.Password == "" {
		return &FieldError{Field: models.FieldPassword}
	}
	return nil
}

// Submit sends the current credentials and maps the result onto the
// notification and navigation. Authentication failures are not returned as
// errors; they become an OutcomeFailed or OutcomeVerificationRequired.
// Returned errors mean nothing was submitted.
func (c *LoginController) Submit(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return OutcomeNone, ErrControllerClosed
	}
	form := c.form
	if err := validateForm(form); err != nil {
		c.mu.Unlock()
		return OutcomeNone, err
	}
	if c.status.State().Status == models.AuthStatusLoading {
		c.mu.Unlock()
		return OutcomeNone, ErrSubmissionInFlight
	}
	c.notification = models.Notification{}
	c.status.Dispatch(state.AuthAction{Type: state.SigninPending})
	stale := c.redirect
	c.redirect = nil
	c.mu.Unlock()

	// A new attempt supersedes the redirect of the previous one.
	if stale != nil && stale.Cancel() {
		logger.Log.Infow("verification redirect cancelled", "email", form.Email)
	}

	token, err := c.auth.Authenticate(ctx, form.Email, form.Password)

	if err == nil {
		c.mu.Lock()
		c.status.Dispatch(state.AuthAction{Type: state.SigninFulfilled})
		c.token = token
		c.notification = models.NewNotification(models.NotificationSuccess, MessageLoginSuccessful)
		closed := c.closed
		c.mu.Unlock()

		logger.Log.Infow("login succeeded", "email", form.Email)
		if !closed {
			c.nav.GoTo(models.RouteHome)
		}
		return OutcomeSucceeded, nil
	}

	reason := failureReason(err)
	c.mu.Lock()
	c.status.Dispatch(state.AuthAction{Type: state.SigninRejected, Reason: reason})
	c.mu.Unlock()

	if isEmailNotVerified(err, reason) {
		logger.Log.Infow("login requires email verification", "email", form.Email)
		c.requireVerification(ctx, form.Email)
		return OutcomeVerificationRequired, nil
	}

	logger.Log.Errorw("login failed", "email", form.Email, "err", err)
	if reason == "" {
		reason = MessageLoginFailed
	}
	c.mu.Lock()
	c.notification = models.NewNotification(models.NotificationError, reason)
	c.mu.Unlock()
	return OutcomeFailed, nil
}

func (c *LoginController) requireVerification(ctx context.Context, email string) {
	if c.store != nil {
		if err := c.store.Set(ctx, models.StorageKeyEmail, email); err != nil {
			logger.Log.Errorw("failed to store email for verification", "email", email, "err", err)
		}
	}

	c.mu.Lock()
	c.notification = models.NewNotification(models.NotificationWarning, MessageVerifyRedirecting)
	c.mu.Unlock()

	task, err := c.sched.Schedule(c.delay, func() {
		c.nav.GoTo(models.RouteVerifyEmail)
	})
	if err != nil {
		logger.Log.Infow("verification redirect not scheduled", "err", err)
		return
	}

	c.mu.Lock()
	c.redirect = task
	c.mu.Unlock()
}

// Dismiss clears the notification. Form fields are kept.
func (c *LoginController) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notification = models.Notification{}
}

// Close tears the controller down. Pending navigation is cancelled and
// further submissions fail with ErrControllerClosed.
func (c *LoginController) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.sched.Close()
}

// failureReason extracts the user-facing text of an authentication error.
func failureReason(err error) string {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Message
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ""
	}
	return err.Error()
}

// isEmailNotVerified prefers the structured code and falls back to the
// reason text for upstreams that only send a message.
func isEmailNotVerified(err error, reason string) bool {
	if errors.Is(err, ErrEmailNotVerified) {
		return true
	}
	return strings.EqualFold(reason, MessageVerifyEmailFirst)
}
