package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apperr "github.com/campusmatch/backend/internal/errors"
	"github.com/campusmatch/backend/internal/server"
	"github.com/campusmatch/backend/internal/utils/httpx"
)

func (s *Service) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}

	resp, err := s.Signup(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, resp)
}

func (s *Service) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}

	resp, err := s.Login(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (s *Service) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := server.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, apperr.Unauthenticated("no token provided"))
		return
	}

	view, err := s.Me(r.Context(), userID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, UserResponse{User: *view})
}

func (s *Service) handleProfileSetup(w http.ResponseWriter, r *http.Request) {
	userID, ok := server.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, apperr.Unauthenticated("no token provided"))
		return
	}

	var req ProfileSetupRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}

	view, err := s.ProfileSetup(r.Context(), userID, req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, UserResponse{User: *view})
}

func (s *Service) handlePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := server.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, apperr.Unauthenticated("no token provided"))
		return
	}

	var req PreferencesRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}

	view, err := s.Preferences(r.Context(), userID, req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, UserResponse{User: *view})
}

func (s *Service) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := server.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, apperr.Unauthenticated("no token provided"))
		return
	}

	var req UpdateProfileRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}

	view, err := s.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, UserResponse{User: *view})
}

func (s *Service) handleProfileByUsername(w http.ResponseWriter, r *http.Request) {
	view, err := s.ProfileByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, UserResponse{User: *view})
}
