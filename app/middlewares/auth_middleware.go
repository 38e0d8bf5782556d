package middlewares

import (
	"context"
	"log"
	"net/http"

	"github.com/mattertouch/storefront/app/models"
	"github.com/mattertouch/storefront/app/repositories"
	"github.com/mattertouch/storefront/app/utils/sessions"
	"github.com/unrolled/render"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the resolved caller, passed explicitly through the request
// context instead of being read ambiently from the session inside handlers.
type Identity struct {
	UserID string
	Role   models.Role
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// WithIdentity is exported for handler tests that need to fake a caller.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// ResolveIdentity loads the session's user, if any, and attaches the
// Identity. Requests without a valid session flow through anonymously; the
// Require* guards decide whether that is acceptable.
func ResolveIdentity(sessionStore sessions.SessionStore, userRepo repositories.UserRepositoryImpl) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sessionStore.GetUserID(r)
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				log.Printf("ResolveIdentity: error finding user %s: %v", userID, err)
				next.ServeHTTP(w, r)
				return
			}
			if user == nil {
				// Session points at a deleted account; treat as anonymous.
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithIdentity(r.Context(), Identity{UserID: user.ID, Role: user.Role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession guards endpoints any authenticated user may call.
func RequireSession(rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := IdentityFrom(r.Context()); !ok {
				_ = rnd.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin distinguishes "no session" (401) from "wrong role" (403).
func RequireAdmin(rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFrom(r.Context())
			if !ok {
				_ = rnd.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}
			if !identity.Role.IsAdmin() {
				log.Printf("RequireAdmin: user %s attempted an admin action without the admin role", identity.UserID)
				_ = rnd.JSON(w, http.StatusForbidden, map[string]string{"error": "admin role required"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
