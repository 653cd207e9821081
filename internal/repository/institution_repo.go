package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/campusmatch/backend/internal/db"
)

// InstitutionRepository provides data access methods for the Institution model.
type InstitutionRepository struct {
	db *gorm.DB
}

// NewInstitutionRepository creates a new repository bound to the given DB connection.
func NewInstitutionRepository(database *gorm.DB) *InstitutionRepository {
	return &InstitutionRepository{db: database}
}

// GetByID loads an institution, or gorm.ErrRecordNotFound.
func (r *InstitutionRepository) GetByID(ctx context.Context, id uint64) (*db.Institution, error) {
	var inst db.Institution
	if err := r.db.WithContext(ctx).First(&inst, id).Error; err != nil {
		return nil, err
	}
	return &inst, nil
}

// ListApproved returns approved institutions ordered by name.
func (r *InstitutionRepository) ListApproved(ctx context.Context) ([]db.Institution, error) {
	var insts []db.Institution
	err := r.db.WithContext(ctx).
		Where("is_approved = ?", true).
		Order("name ASC").
		Find(&insts).Error
	return insts, err
}

// ListPending returns pending requests, newest first.
func (r *InstitutionRepository) ListPending(ctx context.Context) ([]db.Institution, error) {
	var insts []db.Institution
	err := r.db.WithContext(ctx).
		Where("is_approved = ?", false).
		Order("created_at DESC").
		Find(&insts).Error
	return insts, err
}

// Exists reports whether any institution (approved or pending) already uses
// the given name or email domain.
func (r *InstitutionRepository) Exists(ctx context.Context, name, emailDomain string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Institution{}).
		Where("name = ? OR email_domain = ?", name, emailDomain).
		Count(&count).Error
	return count > 0, err
}

// Create inserts a new institution record.
func (r *InstitutionRepository) Create(ctx context.Context, inst *db.Institution) error {
	return r.db.WithContext(ctx).Create(inst).Error
}

// Approve flips the approval flag and returns the updated record.
func (r *InstitutionRepository) Approve(ctx context.Context, id uint64) (*db.Institution, error) {
	inst, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Model(inst).
		Update("is_approved", true).Error; err != nil {
		return nil, err
	}
	return inst, nil
}

// Delete removes an institution. Rejection is terminal, there is no
// soft-delete state.
func (r *InstitutionRepository) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&db.Institution{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
