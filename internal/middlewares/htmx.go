package middlewares

import (
	"context"
	"net/http"
	"strings"
)

type htmxKey struct{}

// HTMX marks requests sent by htmx so handlers can answer with fragments.
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		isHTMX := strings.EqualFold(r.Header.Get("HX-Request"), "true")
		w.Header().Add("Vary", "HX-Request")

		ctx := context.WithValue(r.Context(), htmxKey{}, isHTMX)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IsHTMXRequest returns true when the current request was initiated by htmx.
func IsHTMXRequest(ctx context.Context) bool {
	v, _ := ctx.Value(htmxKey{}).(bool)
	return v
}

// Redirect sends the browser to target: HX-Redirect for htmx, 303 otherwise.
func Redirect(w http.ResponseWriter, r *http.Request, target string) {
	if IsHTMXRequest(r.Context()) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
