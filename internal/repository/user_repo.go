package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/campusmatch/backend/internal/db"
)

// UserRepository provides data access methods for the User model.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new repository bound to the given DB connection.
func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{db: database}
}

// GetByID loads a user with institution, or gorm.ErrRecordNotFound.
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*db.User, error) {
	var user db.User
	if err := r.db.WithContext(ctx).
		Preload("Institution").
		First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail loads a user by exact email, or gorm.ErrRecordNotFound.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*db.User, error) {
	var user db.User
	if err := r.db.WithContext(ctx).
		Preload("Institution").
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername performs a case-insensitive username lookup. Usernames are
// stored lowercased, so lowering the input is the whole comparison.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*db.User, error) {
	var user db.User
	if err := r.db.WithContext(ctx).
		Preload("Institution").
		Where("username = ?", strings.ToLower(strings.TrimSpace(username))).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UsernameTaken reports whether the username (case-insensitive) is held by a
// user other than excludeID. Pass excludeID = 0 for signup checks.
func (r *UserRepository) UsernameTaken(ctx context.Context, username string, excludeID uint64) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).
		Model(&db.User{}).
		Where("username = ?", strings.ToLower(strings.TrimSpace(username)))
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

// EmailTaken reports whether the email is already registered.
func (r *UserRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.User{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, user *db.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Update persists a set of column changes for the user in a single write,
// so concurrent readers never observe a partial profile.
func (r *UserRepository) Update(ctx context.Context, id uint64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&db.User{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// FindCandidates computes the discovery feed for the given user.
//
// Behavior:
//   - Excludes the requester, anyone the requester has already decided
//     about, and anyone the requester is matched with (NOT EXISTS against
//     decisions and matches rather than materializing an ID list).
//   - Restricts to the requester's institution and to onboarded accounts.
//   - Applies the gender-preference filter unless it is "all".
//   - Age-range preferences are stored but deliberately not applied here.
//   - Newest accounts first, truncated to limit.
func (r *UserRepository) FindCandidates(ctx context.Context, requester *db.User, limit int) ([]db.User, error) {
	var candidates []db.User

	query := r.db.WithContext(ctx).
		Model(&db.User{}).
		Preload("Institution").
		Where("users.id <> ?", requester.ID).
		Where("users.institution_id = ?", requester.InstitutionID).
		Where("users.is_onboarded = ?", true).
		Where(`
			NOT EXISTS (
				SELECT 1 FROM decisions d
				WHERE d.actor_id = ?
				  AND d.target_id = users.id
			)`, requester.ID).
		Where(`
			NOT EXISTS (
				SELECT 1 FROM matches m
				WHERE (m.user_a_id = ? AND m.user_b_id = users.id)
				   OR (m.user_b_id = ? AND m.user_a_id = users.id)
			)`, requester.ID, requester.ID).
		Order("users.created_at DESC").
		Limit(limit)

	if requester.PreferredGender != "" && requester.PreferredGender != "all" {
		query = query.Where("users.gender = ?", requester.PreferredGender)
	}

	if err := query.Find(&candidates).Error; err != nil {
		return nil, err
	}
	return candidates, nil
}
