package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/campusmatch/backend/internal/app"
	apperr "github.com/campusmatch/backend/internal/errors"
	"github.com/campusmatch/backend/internal/repository"
	"github.com/campusmatch/backend/internal/token"
	"github.com/campusmatch/backend/internal/utils/httpx"
)

type ctxKey int

const userIDKey ctxKey = iota

// Auth provides the bearer-token and admin-gate middleware.
type Auth struct {
	appCtx *app.AppContext
	tokens *token.JWT
	users  *repository.UserRepository
}

// NewAuth wires the middleware against the shared app context and token manager.
func NewAuth(appCtx *app.AppContext, tokens *token.JWT) *Auth {
	return &Auth{
		appCtx: appCtx,
		tokens: tokens,
		users:  repository.NewUserRepository(appCtx.DB),
	}
}

// RequireUser verifies the Authorization bearer token and stores the caller's
// user ID in the request context. Verification failure yields 401 with no
// further detail.
func (a *Auth) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			httpx.WriteError(w, apperr.Unauthenticated("no token provided"))
			return
		}

		userID, err := a.tokens.Verify(parts[1])
		if err != nil {
			httpx.WriteError(w, apperr.Unauthenticated("invalid token"))
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin resolves the authenticated account and rejects non-admins.
// Must be mounted after RequireUser.
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserID(r.Context())
		if !ok {
			httpx.WriteError(w, apperr.Unauthenticated("no token provided"))
			return
		}

		user, err := a.users.GetByID(r.Context(), userID)
		if err != nil || !user.IsAdmin {
			httpx.WriteError(w, apperr.Forbidden("admin access required"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// UserID extracts the authenticated user's ID from the request context.
func UserID(ctx context.Context) (uint64, bool) {
	id, ok := ctx.Value(userIDKey).(uint64)
	return id, ok
}
