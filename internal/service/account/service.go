package account

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/campusmatch/backend/internal/app"
	"github.com/campusmatch/backend/internal/db"
	apperr "github.com/campusmatch/backend/internal/errors"
	"github.com/campusmatch/backend/internal/repository"
	"github.com/campusmatch/backend/internal/token"
)

// Service implements account creation, authentication and the profile /
// preference operations.
type Service struct {
	appCtx   *app.AppContext
	userRepo *repository.UserRepository
	instRepo *repository.InstitutionRepository
	tokens   *token.JWT
}

// NewService creates the account service with dependencies from AppContext.
func NewService(appCtx *app.AppContext, tokens *token.JWT) *Service {
	return &Service{
		appCtx:   appCtx,
		userRepo: repository.NewUserRepository(appCtx.DB),
		instRepo: repository.NewInstitutionRepository(appCtx.DB),
		tokens:   tokens,
	}
}

// Signup registers a new account bound to an approved institution.
//
// Invariant: the email's domain must equal the institution's registered
// domain at creation time. Username uniqueness is case-insensitive
// (usernames are stored lowercased).
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if req.Name == "" || req.Username == "" || req.Email == "" || req.Password == "" || req.InstitutionID == 0 {
		return nil, apperr.Invalid("all fields are required")
	}

	taken, err := s.userRepo.UsernameTaken(ctx, req.Username, 0)
	if err != nil {
		return nil, apperr.Map(err)
	}
	if taken {
		return nil, apperr.Conflict("username already taken")
	}

	emailTaken, err := s.userRepo.EmailTaken(ctx, req.Email)
	if err != nil {
		return nil, apperr.Map(err)
	}
	if emailTaken {
		return nil, apperr.Conflict("email already registered")
	}

	inst, err := s.instRepo.GetByID(ctx, req.InstitutionID)
	if err != nil || !inst.IsApproved {
		return nil, apperr.Invalid("institution not found or not approved")
	}

	parts := strings.SplitN(req.Email, "@", 2)
	if len(parts) != 2 || parts[1] != inst.EmailDomain {
		return nil, apperr.Conflict("email domain does not match institution")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Map(err)
	}

	user := db.User{
		Name:          strings.TrimSpace(req.Name),
		Username:      strings.ToLower(strings.TrimSpace(req.Username)),
		Email:         req.Email,
		PasswordHash:  string(hash),
		InstitutionID: inst.ID,
		Institution:   *inst,
	}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		s.appCtx.Logger.Error("signup insert failed", "err", err)
		return nil, apperr.Map(err)
	}

	signed, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, apperr.Map(err)
	}

	return &AuthResponse{Token: signed, User: buildView(&user, false)}, nil
}

// Login authenticates by email and password. Failures are deliberately
// indistinguishable (unknown email vs. wrong password).
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperr.Invalid("all fields are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperr.Invalid("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperr.Invalid("invalid credentials")
	}

	signed, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, apperr.Map(err)
	}

	return &AuthResponse{Token: signed, User: buildView(user, user.IsOnboarded)}, nil
}

// Me returns the authenticated user's own view.
func (s *Service) Me(ctx context.Context, userID uint64) (*UserView, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperr.Map(err)
	}
	view := buildView(user, user.IsOnboarded)
	return &view, nil
}

// ProfileSetup persists the onboarding profile: bio, gender, interests and
// photos, all required. The write is a single update, so readers never see a
// partial profile.
func (s *Service) ProfileSetup(ctx context.Context, userID uint64, req ProfileSetupRequest) (*UserView, error) {
	bio := strings.TrimSpace(req.Bio)
	if bio == "" {
		return nil, apperr.Invalid("bio is required")
	}
	if req.Gender == "" {
		return nil, apperr.Invalid("gender is required")
	}
	if len(req.Interests) == 0 {
		return nil, apperr.Invalid("at least one interest is required")
	}
	if len(req.Photos) == 0 {
		return nil, apperr.Invalid("at least one photo is required")
	}

	err := s.userRepo.Update(ctx, userID, map[string]interface{}{
		"bio":       bio,
		"gender":    req.Gender,
		"interests": db.StringList(req.Interests),
		"photos":    db.StringList(req.Photos),
	})
	if err != nil {
		return nil, apperr.Map(err)
	}

	return s.Me(ctx, userID)
}

// Preferences validates and persists matching preferences and marks the
// account onboarding-complete.
func (s *Service) Preferences(ctx context.Context, userID uint64, req PreferencesRequest) (*UserView, error) {
	if req.PreferredAgeMin > req.PreferredAgeMax {
		return nil, apperr.Invalid("minimum age cannot be greater than maximum age")
	}
	if req.PreferredAgeMin < 18 || req.PreferredAgeMax > 100 {
		return nil, apperr.Invalid("age must be between 18 and 100")
	}
	if req.PreferredDistance <= 0 {
		return nil, apperr.Invalid("distance is required")
	}
	if req.PreferredGender != "male" && req.PreferredGender != "female" && req.PreferredGender != "all" {
		return nil, apperr.Invalid("invalid gender preference")
	}

	err := s.userRepo.Update(ctx, userID, map[string]interface{}{
		"preferred_age_min":  req.PreferredAgeMin,
		"preferred_age_max":  req.PreferredAgeMax,
		"preferred_distance": req.PreferredDistance,
		"preferred_gender":   req.PreferredGender,
		"is_onboarded":       true,
	})
	if err != nil {
		return nil, apperr.Map(err)
	}

	return s.Me(ctx, userID)
}

// UpdateProfile replaces the full editable profile in one write. The
// username change re-runs the case-insensitive uniqueness check against
// every other account.
func (s *Service) UpdateProfile(ctx context.Context, userID uint64, req UpdateProfileRequest) (*UserView, error) {
	name := strings.TrimSpace(req.Name)
	username := strings.ToLower(strings.TrimSpace(req.Username))
	bio := strings.TrimSpace(req.Bio)

	if name == "" {
		return nil, apperr.Invalid("name is required")
	}
	if username == "" {
		return nil, apperr.Invalid("username is required")
	}
	if bio == "" {
		return nil, apperr.Invalid("bio is required")
	}
	if len(req.Interests) == 0 {
		return nil, apperr.Invalid("at least one interest is required")
	}
	if len(req.Photos) == 0 {
		return nil, apperr.Invalid("at least one photo is required")
	}
	if req.Prefs == nil {
		return nil, apperr.Invalid("preferences are required")
	}
	if req.Prefs.AgeRange.Min > req.Prefs.AgeRange.Max {
		return nil, apperr.Invalid("minimum age cannot be greater than maximum age")
	}
	if req.Prefs.AgeRange.Min < 18 || req.Prefs.AgeRange.Max > 100 {
		return nil, apperr.Invalid("age must be between 18 and 100")
	}

	taken, err := s.userRepo.UsernameTaken(ctx, username, userID)
	if err != nil {
		return nil, apperr.Map(err)
	}
	if taken {
		return nil, apperr.Conflict("username already taken")
	}

	err = s.userRepo.Update(ctx, userID, map[string]interface{}{
		"name":               name,
		"username":           username,
		"bio":                bio,
		"interests":          db.StringList(req.Interests),
		"photos":             db.StringList(req.Photos),
		"preferred_age_min":  req.Prefs.AgeRange.Min,
		"preferred_age_max":  req.Prefs.AgeRange.Max,
		"preferred_distance": req.Prefs.Distance,
		"preferred_gender":   genderPrefIn(req.Prefs.GenderPreference),
	})
	if err != nil {
		return nil, apperr.Map(err)
	}

	return s.Me(ctx, userID)
}

// ProfileByUsername resolves a public profile via case-insensitive lookup.
func (s *Service) ProfileByUsername(ctx context.Context, username string) (*UserView, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperr.NotFound("user not found")
	}
	view := buildView(user, user.IsOnboarded)
	return &view, nil
}

// buildView renders a user row for clients. includePrefs controls the
// preferences block (login/me omit it for accounts mid-onboarding).
func buildView(u *db.User, includePrefs bool) UserView {
	view := UserView{
		ID:          u.ID,
		Name:        u.Name,
		Username:    u.Username,
		Email:       u.Email,
		Bio:         u.Bio,
		Gender:      u.Gender,
		Interests:   u.Interests,
		Photos:      u.Photos,
		IsAdmin:     u.IsAdmin,
		IsOnboarded: u.IsOnboarded,
		Institution: InstitutionRef{ID: u.Institution.ID, Name: u.Institution.Name},
	}
	if view.Interests == nil {
		view.Interests = []string{}
	}
	if view.Photos == nil {
		view.Photos = []string{}
	}
	if includePrefs {
		view.Preferences = &Preferences{
			LookingFor:       "friendship",
			AgeRange:         AgeRange{Min: u.PreferredAgeMin, Max: u.PreferredAgeMax},
			Distance:         u.PreferredDistance,
			GenderPreference: genderPrefOut(u.PreferredGender),
		}
	}
	return view
}

// genderPrefOut maps the stored filter to the client vocabulary.
func genderPrefOut(v string) string {
	if v == "male" || v == "female" {
		return v
	}
	return "everyone"
}

// genderPrefIn maps the client vocabulary back to the stored filter.
func genderPrefIn(v string) string {
	if v == "male" || v == "female" {
		return v
	}
	return "all"
}
