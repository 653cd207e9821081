package match

import (
	"github.com/go-chi/chi/v5"

	"github.com/campusmatch/backend/internal/app"
	"github.com/campusmatch/backend/internal/server"
)

// Registrar ties the match service into the HTTP server
type Registrar struct {
	appCtx *app.AppContext
	auth   *server.Auth
}

// NewRegistrar creates a new Registrar for the match service
func NewRegistrar(appCtx *app.AppContext, auth *server.Auth) *Registrar {
	return &Registrar{appCtx: appCtx, auth: auth}
}

// Register mounts the swipe and match routes
func (reg *Registrar) Register(r chi.Router) {
	service := NewService(reg.appCtx)

	r.Group(func(r chi.Router) {
		r.Use(reg.auth.RequireUser)
		r.Post("/swipes", service.handleSwipe)
		r.Get("/matches", service.handleMatches)
	})
}
