package match

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/campusmatch/backend/internal/app"
	"github.com/campusmatch/backend/internal/db"
	apperr "github.com/campusmatch/backend/internal/errors"
	"github.com/campusmatch/backend/internal/repository"
)

// Service implements the decision ledger and match reconciliation.
//
// Recording a positive decision triggers reconciliation synchronously as
// part of the same logical operation. Reconciliation is monotonic and
// idempotent: invoked any number of times for a reciprocated pair it yields
// the same single match row.
type Service struct {
	appCtx       *app.AppContext
	decisionRepo *repository.DecisionRepository
	matchRepo    *repository.MatchRepository
	userRepo     *repository.UserRepository
}

// NewService creates the match service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:       appCtx,
		decisionRepo: repository.NewDecisionRepository(appCtx.DB),
		matchRepo:    repository.NewMatchRepository(appCtx.DB),
		userRepo:     repository.NewUserRepository(appCtx.DB),
	}
}

// RecordDecision persists the actor's one-time swipe on the target and, for
// positive directions, checks reciprocity.
//
// Behavior:
//   - Self-swipes are rejected.
//   - Decisions are final: a second decision for the same ordered pair
//     fails, whether submitted sequentially or concurrently (the composite
//     PK serializes the race; the second writer gets the duplicate error).
//   - LEFT has no further effect. RIGHT and UP both count toward a match
//     with no tie-break between them.
func (s *Service) RecordDecision(ctx context.Context, actorID uint64, req SwipeRequest) (*SwipeResponse, error) {
	s.appCtx.Logger.Debug("RecordDecision called", "actor", actorID, "target", req.SwipedUserID, "direction", req.Direction)

	if req.SwipedUserID == 0 {
		return nil, apperr.Invalid("swipedUserId is required")
	}
	if !db.IsValidDirection(req.Direction) {
		return nil, apperr.Invalid("direction must be LEFT, RIGHT, or UP")
	}
	if actorID == req.SwipedUserID {
		return nil, apperr.SelfReference("cannot swipe on yourself")
	}

	if _, err := s.decisionRepo.Create(ctx, actorID, req.SwipedUserID, req.Direction); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("already swiped on this user")
		}
		s.appCtx.Logger.Error("decision insert failed", "err", err)
		return nil, apperr.Map(err)
	}

	resp := &SwipeResponse{Success: true}
	if db.IsPositiveDirection(req.Direction) {
		matchView, err := s.reconcile(ctx, actorID, req.SwipedUserID)
		if err != nil {
			return nil, err
		}
		if matchView != nil {
			resp.Matched = true
			resp.Match = matchView
		}
	}
	return resp, nil
}

// reconcile checks whether the target already holds a positive decision
// toward the actor and, if so, materializes the match exactly once.
//
// When both sides swipe at nearly the same instant, both reconciliations
// run; the pair-key constraint lets one insert win and the other read back
// the winner's row. Either way the caller sees the same match.
func (s *Service) reconcile(ctx context.Context, actorID, targetID uint64) (*MatchView, error) {
	reciprocal, err := s.decisionRepo.HasPositive(ctx, targetID, actorID)
	if err != nil {
		return nil, apperr.Map(err)
	}
	if !reciprocal {
		return nil, nil
	}

	match, created, err := s.matchRepo.CreateIfAbsent(ctx, actorID, targetID)
	if err != nil {
		return nil, apperr.Map(err)
	}
	if created {
		s.appCtx.Logger.Info("match created", "user_a", match.UserAID, "user_b", match.UserBID)
	}

	userA, err := s.userRepo.GetByID(ctx, match.UserAID)
	if err != nil {
		return nil, apperr.Map(err)
	}
	userB, err := s.userRepo.GetByID(ctx, match.UserBID)
	if err != nil {
		return nil, apperr.Map(err)
	}

	return &MatchView{
		ID:        match.ID,
		MatchedAt: match.CreatedAt,
		UserA:     summarize(userA),
		UserB:     summarize(userB),
	}, nil
}

// Matches returns every match involving the user, newest first, resolved to
// the other party's profile.
func (s *Service) Matches(ctx context.Context, userID uint64) (*MatchListResponse, error) {
	matches, err := s.matchRepo.ListForUser(ctx, userID)
	if err != nil {
		s.appCtx.Logger.Error("match listing failed", "err", err)
		return nil, apperr.Map(err)
	}

	entries := make([]MatchEntry, 0, len(matches))
	for _, m := range matches {
		other := m.UserB
		if m.UserBID == userID {
			other = m.UserA
		}
		entries = append(entries, MatchEntry{
			ID:        m.ID,
			MatchedAt: m.CreatedAt,
			User:      profile(&other),
		})
	}

	return &MatchListResponse{Success: true, Matches: entries, Count: len(entries)}, nil
}

func summarize(u *db.User) PartySummary {
	summary := PartySummary{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
	}
	if len(u.Photos) > 0 {
		summary.Photo = u.Photos[0]
	}
	return summary
}

func profile(u *db.User) MatchedProfile {
	p := MatchedProfile{
		ID:          u.ID,
		Name:        u.Name,
		Username:    u.Username,
		Bio:         u.Bio,
		Photos:      u.Photos,
		Interests:   u.Interests,
		Institution: MatchInstitution{Name: u.Institution.Name},
	}
	if p.Photos == nil {
		p.Photos = []string{}
	}
	if p.Interests == nil {
		p.Interests = []string{}
	}
	return p
}
