package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const (
	// SessionHeader carries the browsing session identifier. It scopes
	// cart and likes state the way local-storage keys scoped it in the
	// original storefront UI.
	SessionHeader = "X-Session-ID"

	sessionKey contextKey = "session_id"
)

// SessionMiddleware resolves the cart/likes session for a request. The
// authenticated user ID wins so a signed-in customer sees the same cart
// from any device; otherwise the X-Session-ID header is used, and a
// fresh ID is minted (and echoed back) when the client sent none.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := GetUserID(r.Context())
		if !ok {
			session = r.Header.Get(SessionHeader)
			if session == "" {
				session = uuid.New().String()
			}
		}

		w.Header().Set(SessionHeader, session)

		ctx := context.WithValue(r.Context(), sessionKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSession extracts the session identifier from request context.
func GetSession(ctx context.Context) (string, bool) {
	session, ok := ctx.Value(sessionKey).(string)
	return session, ok
}
