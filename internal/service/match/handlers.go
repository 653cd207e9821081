package match

import (
	"net/http"

	apperr "github.com/campusmatch/backend/internal/errors"
	"github.com/campusmatch/backend/internal/server"
	"github.com/campusmatch/backend/internal/utils/httpx"
)

func (s *Service) handleSwipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := server.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, apperr.Unauthenticated("no token provided"))
		return
	}

	var req SwipeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}

	resp, err := s.RecordDecision(r.Context(), userID, req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (s *Service) handleMatches(w http.ResponseWriter, r *http.Request) {
	userID, ok := server.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, apperr.Unauthenticated("no token provided"))
		return
	}

	resp, err := s.Matches(r.Context(), userID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
