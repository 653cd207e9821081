package institution

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/campusmatch/backend/internal/app"
	"github.com/campusmatch/backend/internal/db"
	apperr "github.com/campusmatch/backend/internal/errors"
	"github.com/campusmatch/backend/internal/repository"
)

type RequestInstitution struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	EmailDomain string `json:"emailDomain"`
	RequestedBy string `json:"requestedBy"`
}

// View is the public listing entry for an approved institution.
type View struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	EmailDomain string `json:"emailDomain"`
}

// PendingView is the admin-facing representation of a request.
type PendingView struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	EmailDomain string    `json:"emailDomain"`
	IsApproved  bool      `json:"isApproved"`
	RequestedBy string    `json:"requestedBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Service implements the institution approval workflow.
type Service struct {
	appCtx   *app.AppContext
	instRepo *repository.InstitutionRepository
}

// NewService creates the institution service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:   appCtx,
		instRepo: repository.NewInstitutionRepository(appCtx.DB),
	}
}

// Approved returns the approved-institutions listing, name-ascending.
// Cache-first strategy:
//  1. Attempts to read the rendered listing from Redis.
//  2. On miss, queries the DB and repopulates the cache with a fresh TTL.
//
// Cache failures fall back to the DB silently; the listing must keep
// serving when Redis is down.
func (s *Service) Approved(ctx context.Context) ([]View, error) {
	if cached, err := s.appCtx.RedisCache.GetApprovedInstitutions(ctx); err == nil && cached != "" {
		var views []View
		if err := json.Unmarshal([]byte(cached), &views); err == nil {
			return views, nil
		}
	}

	insts, err := s.instRepo.ListApproved(ctx)
	if err != nil {
		s.appCtx.Logger.Error("approved listing failed", "err", err)
		return nil, apperr.Map(err)
	}

	views := make([]View, 0, len(insts))
	for _, inst := range insts {
		views = append(views, View{
			ID:          inst.ID,
			Name:        inst.Name,
			Location:    inst.Location,
			EmailDomain: inst.EmailDomain,
		})
	}

	if payload, err := json.Marshal(views); err == nil {
		if err := s.appCtx.RedisCache.SetApprovedInstitutions(ctx, string(payload)); err != nil {
			s.appCtx.Logger.Warn("institution cache set failed", "err", err)
		}
	}

	return views, nil
}

// Request files a new institution in pending state. Name and email domain
// must both be unused across approved and pending institutions.
func (s *Service) Request(ctx context.Context, req RequestInstitution) (*PendingView, error) {
	name := strings.TrimSpace(req.Name)
	location := strings.TrimSpace(req.Location)
	domain := strings.ToLower(strings.TrimSpace(req.EmailDomain))

	if name == "" || location == "" || domain == "" || strings.TrimSpace(req.RequestedBy) == "" {
		return nil, apperr.Invalid("all fields are required")
	}

	exists, err := s.instRepo.Exists(ctx, name, domain)
	if err != nil {
		return nil, apperr.Map(err)
	}
	if exists {
		return nil, apperr.Conflict("institution already exists or request pending")
	}

	inst := db.Institution{
		Name:        name,
		Location:    location,
		EmailDomain: domain,
		RequestedBy: strings.TrimSpace(req.RequestedBy),
		IsApproved:  false,
	}
	if err := s.instRepo.Create(ctx, &inst); err != nil {
		return nil, apperr.Map(err)
	}

	view := toPendingView(&inst)
	return &view, nil
}

// Pending lists open requests for admins, newest first.
func (s *Service) Pending(ctx context.Context) ([]PendingView, error) {
	insts, err := s.instRepo.ListPending(ctx)
	if err != nil {
		return nil, apperr.Map(err)
	}

	views := make([]PendingView, 0, len(insts))
	for _, inst := range insts {
		views = append(views, toPendingView(&inst))
	}
	return views, nil
}

// Approve flips a pending institution to approved and drops the cached
// public listing.
func (s *Service) Approve(ctx context.Context, id uint64) (*PendingView, error) {
	inst, err := s.instRepo.Approve(ctx, id)
	if err != nil {
		return nil, apperr.Map(err)
	}

	if err := s.appCtx.RedisCache.InvalidateApprovedInstitutions(ctx); err != nil {
		s.appCtx.Logger.Warn("institution cache invalidation failed", "err", err)
	}

	view := toPendingView(inst)
	view.IsApproved = true
	return &view, nil
}

// Reject deletes the request outright. Terminal; there is no soft-delete.
func (s *Service) Reject(ctx context.Context, id uint64) error {
	if err := s.instRepo.Delete(ctx, id); err != nil {
		return apperr.Map(err)
	}

	if err := s.appCtx.RedisCache.InvalidateApprovedInstitutions(ctx); err != nil {
		s.appCtx.Logger.Warn("institution cache invalidation failed", "err", err)
	}
	return nil
}

func toPendingView(inst *db.Institution) PendingView {
	return PendingView{
		ID:          inst.ID,
		Name:        inst.Name,
		Location:    inst.Location,
		EmailDomain: inst.EmailDomain,
		IsApproved:  inst.IsApproved,
		RequestedBy: inst.RequestedBy,
		CreatedAt:   inst.CreatedAt,
	}
}
