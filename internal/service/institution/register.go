package institution

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/campusmatch/backend/internal/app"
	apperr "github.com/campusmatch/backend/internal/errors"
	"github.com/campusmatch/backend/internal/server"
	"github.com/campusmatch/backend/internal/utils/httpx"
)

// Registrar ties the institution service into the HTTP server
type Registrar struct {
	appCtx *app.AppContext
	auth   *server.Auth
}

// NewRegistrar creates a new Registrar for the institution service
func NewRegistrar(appCtx *app.AppContext, auth *server.Auth) *Registrar {
	return &Registrar{appCtx: appCtx, auth: auth}
}

// Register mounts the institution routes
func (reg *Registrar) Register(r chi.Router) {
	service := NewService(reg.appCtx)

	r.Route("/institutions", func(r chi.Router) {
		r.Get("/approved", service.handleApproved)
		r.Post("/request", service.handleRequest)

		r.Group(func(r chi.Router) {
			r.Use(reg.auth.RequireUser)
			r.Use(reg.auth.RequireAdmin)
			r.Get("/pending", service.handlePending)
			r.Patch("/{id}/approve", service.handleApprove)
			r.Delete("/{id}/reject", service.handleReject)
		})
	})
}

func (s *Service) handleApproved(w http.ResponseWriter, r *http.Request) {
	views, err := s.Approved(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, views)
}

func (s *Service) handleRequest(w http.ResponseWriter, r *http.Request) {
	var req RequestInstitution
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}

	view, err := s.Request(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, view)
}

func (s *Service) handlePending(w http.ResponseWriter, r *http.Request) {
	views, err := s.Pending(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, views)
}

func (s *Service) handleApprove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.WriteError(w, apperr.Invalid("id must be a valid integer"))
		return
	}

	view, err := s.Approve(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, view)
}

func (s *Service) handleReject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.WriteError(w, apperr.Invalid("id must be a valid integer"))
		return
	}

	if err := s.Reject(r.Context(), id); err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "institution request rejected"})
}
