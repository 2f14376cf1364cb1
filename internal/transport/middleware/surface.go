package middleware

import (
	"log/slog"
	"net/http"

	"github.com/skillbridge/skillbridge/internal/access"
	"github.com/skillbridge/skillbridge/internal/auth"
)

// RequireSurface gates a route group behind one of the application surfaces.
// The surfaces were computed at authentication time for this same request,
// so the check always reflects the live reporting graph.
func RequireSurface(surfaces ...access.Surface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			for _, surface := range surfaces {
				if user.CanAccess(surface) {
					next.ServeHTTP(w, r)
					return
				}
			}

			slog.Warn("access denied: user lacks required surface",
				"user_id", user.User.ID,
				"required_surfaces", surfaces,
				"user_surfaces", user.Surfaces)
			http.Error(w, "Forbidden: surface not accessible", http.StatusForbidden)
		})
	}
}
