package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/campusmatch/backend/internal/db"
)

// DecisionRepository provides data access methods for the Decision model.
// Decisions are append-only: a pair can be written once and never revised.
type DecisionRepository struct {
	db *gorm.DB
}

// NewDecisionRepository creates a new repository bound to the given DB connection.
func NewDecisionRepository(database *gorm.DB) *DecisionRepository {
	return &DecisionRepository{db: database}
}

// Create inserts the decision made by actor -> target.
//
// Behavior:
//   - Plain insert against the composite PK (actor_id, target_id).
//   - A second write for the same ordered pair fails with
//     gorm.ErrDuplicatedKey; the original row is left untouched. Concurrent
//     duplicates are serialized by the constraint itself.
//
// Example:
//
//	repo.Create(ctx, 1, 2, db.DirectionRight) // user 1 liked user 2
func (r *DecisionRepository) Create(
	ctx context.Context,
	actorID, targetID uint64,
	direction string,
) (*db.Decision, error) {
	decision := db.Decision{
		ActorID:   actorID,
		TargetID:  targetID,
		Direction: direction,
	}
	if err := r.db.WithContext(ctx).Create(&decision).Error; err != nil {
		return nil, err
	}
	return &decision, nil
}

// HasPositive checks whether actor has a positive (RIGHT or UP) decision
// toward target. Used for the reciprocity check during reconciliation.
//
// Example:
//
//	repo.HasPositive(ctx, 2, 1) // -> true if user 2 liked user 1
func (r *DecisionRepository) HasPositive(
	ctx context.Context,
	actorID, targetID uint64,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Decision{}).
		Where("actor_id = ? AND target_id = ? AND direction IN ?", actorID, targetID, db.PositiveDirections).
		Count(&count).Error
	return count > 0, err
}
