package sessions

import (
	"sync"

	"github.com/sbilibin2017/gw-login-portal/internal/logger"
	"github.com/sbilibin2017/gw-login-portal/internal/models"
)

// Navigator queues route changes for a browser session. The next HTTP
// response of that session takes a route off the queue and redirects to it.
type Navigator struct {
	mu      sync.Mutex
	session string
	queue   []models.Route
	history []models.Route
}

// NewNavigator creates an empty navigator for session id.
func NewNavigator(session string) *Navigator {
	return &Navigator{session: session}
}

// GoTo queues route.
func (n *Navigator) GoTo(route models.Route) {
	n.mu.Lock()
	n.queue = append(n.queue, route)
	n.history = append(n.history, route)
	n.mu.Unlock()

	logger.Log.Infow("navigation queued", "session", n.session, "route", route.String())
}

// Take removes and returns the oldest queued route.
func (n *Navigator) Take() (models.Route, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if len(n.queue) == 0 {
		return "", false
	}
	route := n.queue[0]
	n.queue = n.queue[1:]
	return route, true
}

// Pending reports how many routes wait to be taken.
func (n *Navigator) Pending() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.queue)
}

// History returns every route ever queued, in order.
func (n *Navigator) History() []models.Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]models.Route, len(n.history))
	copy(out, n.history)
	return out
}
