package web

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"stockroom/internal/core"

	"github.com/golang-jwt/jwt/v5"
)

type userContextKey struct{}

// userFromContext returns the authenticated caller stored in ctx, or nil.
func userFromContext(ctx context.Context) *core.UserContext {
	v, _ := ctx.Value(userContextKey{}).(*core.UserContext)
	return v
}

// jwtClaims is the JWT payload this service verifies. Tokens are minted by the
// identity provider, not here; only the signature, expiry, and user id matter.
type jwtClaims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// bearerToken extracts the credential from the Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	const prefix = "Bearer "
	auth := r.Header.Get("Authorization")
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(auth[len(prefix):]), true
}

// RequireAuth is chi middleware that validates the bearer token, resolves the
// caller's profile and warehouse assignment, and injects a core.UserContext
// into the request context. Returns 401 if the token is absent or invalid.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			writeError(w, r, "authentication required", "UNAUTHORIZED", http.StatusUnauthorized)
			return
		}

		claims := &jwtClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(h.jwtSecret), nil
		})
		if err != nil || !token.Valid {
			writeError(w, r, "invalid or expired token", "UNAUTHORIZED", http.StatusUnauthorized)
			return
		}

		user, err := h.svc.Identity(r.Context(), claims.UserID)
		if err != nil {
			h.serviceError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey{}, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// me handles GET /api/me, returning the caller's profile with their warehouse.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		writeError(w, r, "not authenticated", "UNAUTHORIZED", http.StatusUnauthorized)
		return
	}

	me, err := h.svc.Me(r.Context(), *user)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, me)
}
