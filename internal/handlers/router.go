package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sbilibin2017/gw-login-portal/internal/middlewares"
	"github.com/sbilibin2017/gw-login-portal/internal/models"
	"github.com/sbilibin2017/gw-login-portal/internal/views"
)

// RouterConfig holds what the portal routes depend on.
type RouterConfig struct {
	Sessions    middlewares.SessionGetter
	Cookie      middlewares.SessionCookie
	Tokener     middlewares.Tokener
	TokenCookie TokenCookie
}

// NewRouter mounts every portal route.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)
	r.Use(middlewares.HTMX)
	r.Use(middlewares.SessionMiddleware(cfg.Cookie, cfg.Sessions))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, models.RouteLogin.String(), http.StatusSeeOther)
	})

	// Public routes
	r.Get(models.RouteLogin.String(), NewLoginPageHandler())
	r.Post(models.RouteLogin.String(), NewLoginSubmitHandler(cfg.TokenCookie))
	r.Post(views.DismissPath, NewDismissHandler())
	r.Get(views.NavigationPath, NewNavigationHandler())
	r.Post(views.ThemeTogglePath, NewThemeToggleHandler())
	r.Get(models.RouteVerifyEmail.String(), NewVerifyEmailHandler())

	// Protected routes with JWT middleware
	r.Group(func(r chi.Router) {
		r.Use(middlewares.AuthMiddleware(cfg.Tokener, models.RouteLogin.String()))
		r.Get(models.RouteHome.String(), NewHomeHandler())
	})

	return r
}
