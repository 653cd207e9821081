package account

import (
	"github.com/go-chi/chi/v5"

	"github.com/campusmatch/backend/internal/app"
	"github.com/campusmatch/backend/internal/server"
	"github.com/campusmatch/backend/internal/token"
)

// Registrar ties the account service into the HTTP server
type Registrar struct {
	appCtx *app.AppContext
	auth   *server.Auth
	tokens *token.JWT
}

// NewRegistrar creates a new Registrar for the account service
func NewRegistrar(appCtx *app.AppContext, auth *server.Auth, tokens *token.JWT) *Registrar {
	return &Registrar{appCtx: appCtx, auth: auth, tokens: tokens}
}

// Register mounts the auth and user-profile routes
func (reg *Registrar) Register(r chi.Router) {
	service := NewService(reg.appCtx, reg.tokens)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", service.handleSignup)
		r.Post("/login", service.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(reg.auth.RequireUser)
			r.Get("/me", service.handleMe)
			r.Patch("/profile-setup", service.handleProfileSetup)
			r.Patch("/preferences", service.handlePreferences)
			r.Patch("/update-profile", service.handleUpdateProfile)
		})
	})

	r.With(reg.auth.RequireUser).Get("/users/profile/{username}", service.handleProfileByUsername)
}
