package auth

import (
	"net/http"

	"github.com/skillbridge/skillbridge/internal/access"
	"github.com/skillbridge/skillbridge/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
}

func NewHandler(baseHandler *transport.BaseHandler) *Handler {
	return &Handler{BaseHandler: baseHandler}
}

// Me returns the authenticated user's profile and accessible surfaces. The
// middleware already resolved everything; this just renders the context.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	h.WriteJSON(w, http.StatusOK, user.User.ToResponse(access.SurfaceStrings(user.Surfaces)))
}
