package api

import (
	"context"
	"net/http"

	chaterrors "chat-room/errors"
)

type contextKey string

const identityKey contextKey = "identity"

// RequireIdentity rejects requests without a valid session before any
// core component is touched. The verified username travels in the
// request context from here on.
func (h *Handler) RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil {
			h.writeError(w, chaterrors.ErrNotAuthenticated)
			return
		}
		claims, err := h.tokens.Validate(cookie.Value)
		if err != nil {
			h.writeError(w, chaterrors.ErrNotAuthenticated)
			return
		}
		ctx := context.WithValue(r.Context(), identityKey, claims.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Identity returns the verified username injected by RequireIdentity.
func Identity(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(identityKey).(string)
	return username, ok && username != ""
}
