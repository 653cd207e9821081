package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusmatch/backend/internal/db"
	"github.com/campusmatch/backend/internal/repository"
)

// TestCreateIfAbsentIdempotent: repeated reconciliation for the same pair,
// in either argument order, yields the one original row.
func TestCreateIfAbsentIdempotent(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewMatchRepository(dbase)

	first, created, err := repo.CreateIfAbsent(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, uint64(1), first.UserAID)
	assert.Equal(t, uint64(2), first.UserBID)

	// same pair again, reversed order: existing row comes back
	second, created, err := repo.CreateIfAbsent(ctx, 2, 1)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, dbase.Model(&db.Match{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetByPair(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewMatchRepository(dbase)

	created, _, err := repo.CreateIfAbsent(ctx, 7, 3)
	require.NoError(t, err)

	// pair lookup ignores argument order
	found, err := repo.GetByPair(ctx, 3, 7)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestListForUserNewestFirst(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewMatchRepository(dbase)

	inst := db.Institution{Name: "Test Campus", Location: "Town", EmailDomain: "test.edu", IsApproved: true}
	require.NoError(t, dbase.Create(&inst).Error)
	users := []db.User{
		{ID: 1, Name: "A", Username: "a", Email: "a@test.edu", PasswordHash: "x", InstitutionID: inst.ID},
		{ID: 2, Name: "B", Username: "b", Email: "b@test.edu", PasswordHash: "x", InstitutionID: inst.ID},
		{ID: 3, Name: "C", Username: "c", Email: "c@test.edu", PasswordHash: "x", InstitutionID: inst.ID},
	}
	require.NoError(t, dbase.Create(&users).Error)

	now := time.Now().UTC().Truncate(time.Millisecond)
	older := db.Match{UserAID: 1, UserBID: 2, PairKey: db.PairKey(1, 2), CreatedAt: now.Add(-time.Hour)}
	newer := db.Match{UserAID: 3, UserBID: 1, PairKey: db.PairKey(3, 1), CreatedAt: now}
	require.NoError(t, dbase.Create(&older).Error)
	require.NoError(t, dbase.Create(&newer).Error)

	matches, err := repo.ListForUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, newer.ID, matches[0].ID)
	assert.Equal(t, older.ID, matches[1].ID)
	// parties come preloaded with their institution
	assert.Equal(t, "Test Campus", matches[0].UserA.Institution.Name)

	// user 2 is only in the older match
	matches, err = repo.ListForUser(ctx, 2)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, older.ID, matches[0].ID)
}
