package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/skillbridge/skillbridge/internal"
	"github.com/skillbridge/skillbridge/internal/auth"
	"github.com/skillbridge/skillbridge/pkg/logger"
)

// Authenticator turns a bearer token into a resolved user with surfaces.
type Authenticator interface {
	Authenticate(ctx context.Context, tokenString string) (*auth.AuthenticatedUser, error)
}

// Authenticate verifies the identity provider token on every request and
// stores the resolved user and surfaces in the request context. Resolution
// failures surface the domain error body, so an unprovisioned account gets
// its "contact your administrator" message rather than a bare 401.
func Authenticate(authService Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeAuthError(w, internal.ErrInvalidToken)
				return
			}

			user, err := authService.Authenticate(r.Context(), token)
			if err != nil {
				if appErr, ok := internal.IsAppError(err); ok {
					writeAuthError(w, appErr)
					return
				}
				writeAuthError(w, internal.ErrInvalidToken)
				return
			}

			ctx := auth.ContextWithUser(r.Context(), user)
			ctx = internal.ContextWithUserID(ctx, user.User.ID)
			ctx = logger.With(ctx, "userID", user.User.ID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func writeAuthError(w http.ResponseWriter, appErr *internal.AppError) {
	status, body := appErr.ToHTTPResponse()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
