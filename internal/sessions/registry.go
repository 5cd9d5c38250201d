package sessions

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sbilibin2017/gw-login-portal/internal/logger"
	"github.com/sbilibin2017/gw-login-portal/internal/scheduler"
	"github.com/sbilibin2017/gw-login-portal/internal/services"
	"github.com/sbilibin2017/gw-login-portal/internal/state"
)

// DefaultIdleTimeout evicts sessions nobody touched for this long.
const DefaultIdleTimeout = 30 * time.Minute

var ErrRegistryClosed = errors.New("session registry closed")

// Session is everything the portal keeps for one browser.
type Session struct {
	ID         string
	Controller *services.LoginController
	Theme      *state.ThemeStore
	Navigator  *Navigator
	Storage    *Storage

	lastSeen time.Time
}

// Registry creates sessions on first use and tears them down once idle.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool

	auth    services.Authenticator
	backend Backend
	idle    time.Duration
	clock   scheduler.Clock
	opts    []services.LoginOption
	now     func() time.Time
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithIdleTimeout overrides DefaultIdleTimeout.
func WithIdleTimeout(d time.Duration) RegistryOption {
	return func(r *Registry) {
		if d > 0 {
			r.idle = d
		}
	}
}

// WithClock sets the clock behind every session's scheduler.
func WithClock(c scheduler.Clock) RegistryOption {
	return func(r *Registry) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithLoginOptions passes opts to every LoginController.
func WithLoginOptions(opts ...services.LoginOption) RegistryOption {
	return func(r *Registry) {
		r.opts = append(r.opts, opts...)
	}
}

// WithNow overrides the wall clock used for idle tracking.
func WithNow(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(auth services.Authenticator, backend Backend, opts ...RegistryOption) *Registry {
	r := &Registry{
		sessions: make(map[string]*Session),
		auth:     auth,
		backend:  backend,
		idle:     DefaultIdleTimeout,
		clock:    scheduler.RealClock,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the session for id, creating it on first use.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrRegistryClosed
	}

	if s, ok := r.sessions[id]; ok {
		s.lastSeen = r.now()
		return s, nil
	}

	s := r.newSession(id)
	r.sessions[id] = s
	logger.Log.Infow("session created", "session", id)
	return s, nil
}

func (r *Registry) newSession(id string) *Session {
	nav := NewNavigator(id)
	storage := NewStorage(r.backend, id)

	opts := make([]services.LoginOption, 0, len(r.opts)+1)
	opts = append(opts, services.WithScheduler(scheduler.New(r.clock)))
	opts = append(opts, r.opts...)

	return &Session{
		ID:         id,
		Controller: services.NewLoginController(r.auth, nav, storage, opts...),
		Theme:      state.NewThemeStore(),
		Navigator:  nav,
		Storage:    storage,
		lastSeen:   r.now(),
	}
}

// Lookup returns the session for id without creating it.
func (r *Registry) Lookup(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Remove tears down the session for id.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		s.Controller.Close()
		logger.Log.Infow("session removed", "session", id)
	}
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep tears down sessions idle at now and returns how many were evicted.
func (r *Registry) Sweep(now time.Time) int {
	var expired []*Session

	r.mu.Lock()
	for id, s := range r.sessions {
		if now.Sub(s.lastSeen) >= r.idle {
			expired = append(expired, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range expired {
		s.Controller.Close()
	}
	if len(expired) > 0 {
		logger.Log.Infow("idle sessions evicted", "count", len(expired))
	}
	return len(expired)
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = r.idle / 2
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(r.now())
		}
	}
}

// Close tears down every session. Later Get calls fail with ErrRegistryClosed.
func (r *Registry) Close() {
	r.mu.Lock()
	r.closed = true
	all := make([]*Session, 0, len(r.sessions))
	for id, s := range r.sessions {
		all = append(all, s)
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	for _, s := range all {
		s.Controller.Close()
	}
	logger.Log.Infow("session registry closed", "sessions", len(all))
}
