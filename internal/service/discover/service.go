package discover

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/campusmatch/backend/internal/app"
	"github.com/campusmatch/backend/internal/db"
	apperr "github.com/campusmatch/backend/internal/errors"
	"github.com/campusmatch/backend/internal/repository"
	"github.com/campusmatch/backend/internal/server"
	"github.com/campusmatch/backend/internal/utils/httpx"
)

const defaultLimit = 20

type CandidateInstitution struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Candidate is the public discovery view of a profile.
type Candidate struct {
	ID          uint64               `json:"id"`
	Name        string               `json:"name"`
	Username    string               `json:"username"`
	Bio         string               `json:"bio,omitempty"`
	Gender      string               `json:"gender,omitempty"`
	Interests   []string             `json:"interests"`
	Photos      []string             `json:"photos"`
	Institution CandidateInstitution `json:"institution"`
	CreatedAt   time.Time            `json:"createdAt"`
}

type FeedResponse struct {
	Success bool        `json:"success"`
	Users   []Candidate `json:"users"`
	Count   int         `json:"count"`
}

// Service implements the discovery feed.
type Service struct {
	appCtx   *app.AppContext
	userRepo *repository.UserRepository
}

// NewService creates the discover service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:   appCtx,
		userRepo: repository.NewUserRepository(appCtx.DB),
	}
}

// Feed computes the candidate set for the requesting user: same
// institution, onboarded, not yet decided about, not matched, matching the
// requester's gender filter ("all" disables the predicate). Newest accounts
// surface first. The requester's own onboarding state is not checked, and
// the stored age-range preference is not applied; both are intentional
// carry-overs of current product behavior.
func (s *Service) Feed(ctx context.Context, userID uint64, limit int) (*FeedResponse, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	requester, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperr.Map(err)
	}

	candidates, err := s.userRepo.FindCandidates(ctx, requester, limit)
	if err != nil {
		s.appCtx.Logger.Error("feed query failed", "err", err)
		return nil, apperr.Map(err)
	}

	users := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		users = append(users, toCandidate(&c))
	}

	s.appCtx.Logger.Debug("feed computed", "user", userID, "count", len(users))

	return &FeedResponse{Success: true, Users: users, Count: len(users)}, nil
}

func toCandidate(u *db.User) Candidate {
	c := Candidate{
		ID:        u.ID,
		Name:      u.Name,
		Username:  u.Username,
		Bio:       u.Bio,
		Gender:    u.Gender,
		Interests: u.Interests,
		Photos:    u.Photos,
		Institution: CandidateInstitution{
			Name:     u.Institution.Name,
			Location: u.Institution.Location,
		},
		CreatedAt: u.CreatedAt,
	}
	if c.Interests == nil {
		c.Interests = []string{}
	}
	if c.Photos == nil {
		c.Photos = []string{}
	}
	return c
}

func (s *Service) handleFeed(w http.ResponseWriter, r *http.Request) {
	userID, ok := server.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, apperr.Unauthenticated("no token provided"))
		return
	}

	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	resp, err := s.Feed(r.Context(), userID, limit)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// Registrar ties the discover service into the HTTP server
type Registrar struct {
	appCtx *app.AppContext
	auth   *server.Auth
}

// NewRegistrar creates a new Registrar for the discover service
func NewRegistrar(appCtx *app.AppContext, auth *server.Auth) *Registrar {
	return &Registrar{appCtx: appCtx, auth: auth}
}

// Register mounts the feed route
func (reg *Registrar) Register(r chi.Router) {
	service := NewService(reg.appCtx)
	r.With(reg.auth.RequireUser).Get("/discover/feed", service.handleFeed)
}
