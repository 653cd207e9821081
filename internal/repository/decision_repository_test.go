package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campusmatch/backend/internal/db"
	"github.com/campusmatch/backend/internal/repository"
)

// setup in-memory DB
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		NowFunc:                func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.AutoMigrate(&db.Institution{}, &db.User{}, &db.Decision{}, &db.Match{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return database
}

func TestCreateDecision(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewDecisionRepository(dbase)

	decision, err := repo.Create(ctx, 1, 2, db.DirectionRight)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), decision.ActorID)
	assert.Equal(t, uint64(2), decision.TargetID)
	assert.Equal(t, db.DirectionRight, decision.Direction)
}

// TestCreateDecisionDuplicate verifies decisions are final: the second write
// for the same ordered pair fails on the composite key and the original row
// keeps its direction.
func TestCreateDecisionDuplicate(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewDecisionRepository(dbase)

	_, err := repo.Create(ctx, 1, 2, db.DirectionRight)
	require.NoError(t, err)

	_, err = repo.Create(ctx, 1, 2, db.DirectionLeft)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var d db.Decision
	require.NoError(t, dbase.Where("actor_id = ? AND target_id = ?", 1, 2).First(&d).Error)
	assert.Equal(t, db.DirectionRight, d.Direction)
}

// TestCreateDecisionReverseOrderAllowed: (2,1) is a different ordered pair
// than (1,2) and must not collide.
func TestCreateDecisionReverseOrderAllowed(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewDecisionRepository(dbase)

	_, err := repo.Create(ctx, 1, 2, db.DirectionRight)
	require.NoError(t, err)

	_, err = repo.Create(ctx, 2, 1, db.DirectionRight)
	assert.NoError(t, err)
}

func TestHasPositive(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewDecisionRepository(dbase)

	_, err := repo.Create(ctx, 1, 2, db.DirectionRight)
	require.NoError(t, err)
	_, err = repo.Create(ctx, 1, 3, db.DirectionUp)
	require.NoError(t, err)
	_, err = repo.Create(ctx, 1, 4, db.DirectionLeft)
	require.NoError(t, err)

	// RIGHT and UP are both positive, LEFT is not
	for target, want := range map[uint64]bool{2: true, 3: true, 4: false, 5: false} {
		got, err := repo.HasPositive(ctx, 1, target)
		require.NoError(t, err)
		assert.Equal(t, want, got, "target %d", target)
	}
}
