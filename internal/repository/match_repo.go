package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/campusmatch/backend/internal/db"
)

// MatchRepository provides data access methods for the Match model.
type MatchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new repository bound to the given DB connection.
func NewMatchRepository(database *gorm.DB) *MatchRepository {
	return &MatchRepository{db: database}
}

// CreateIfAbsent attempts to materialize the match for the unordered pair
// {actorID, targetID}, with the actor stored as first party.
//
// Behavior:
//   - Atomic compare-and-create: the insert either wins or hits the unique
//     pair_key index. The loser of a concurrent reconciliation race reads
//     back the winner's row instead of erroring.
//   - Returns (match, true) when this call created the row,
//     (match, false) when it already existed.
//
// Calling it repeatedly for the same pair is safe; at most one row ever
// exists.
func (r *MatchRepository) CreateIfAbsent(
	ctx context.Context,
	actorID, targetID uint64,
) (*db.Match, bool, error) {
	match := db.Match{
		UserAID: actorID,
		UserBID: targetID,
		PairKey: db.PairKey(actorID, targetID),
	}
	err := r.db.WithContext(ctx).Create(&match).Error
	if err == nil {
		return &match, true, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, false, err
	}

	var existing db.Match
	if err := r.db.WithContext(ctx).
		Where("pair_key = ?", db.PairKey(actorID, targetID)).
		First(&existing).Error; err != nil {
		return nil, false, err
	}
	return &existing, false, nil
}

// GetByPair returns the match for the unordered pair, or gorm.ErrRecordNotFound.
func (r *MatchRepository) GetByPair(ctx context.Context, a, b uint64) (*db.Match, error) {
	var match db.Match
	if err := r.db.WithContext(ctx).
		Where("pair_key = ?", db.PairKey(a, b)).
		First(&match).Error; err != nil {
		return nil, err
	}
	return &match, nil
}

// ListForUser returns every match involving userID, newest first, with both
// parties and their institutions loaded so callers can resolve the "other"
// side's profile.
func (r *MatchRepository) ListForUser(ctx context.Context, userID uint64) ([]db.Match, error) {
	var matches []db.Match
	err := r.db.WithContext(ctx).
		Preload("UserA.Institution").
		Preload("UserB.Institution").
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&matches).Error
	return matches, err
}
