package institution_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campusmatch/backend/internal/app"
	"github.com/campusmatch/backend/internal/cache"
	"github.com/campusmatch/backend/internal/config"
	"github.com/campusmatch/backend/internal/db"
	apperr "github.com/campusmatch/backend/internal/errors"
	"github.com/campusmatch/backend/internal/service/institution"
)

// setupService wires the institution service against in-memory SQLite and a
// live miniredis, so the listing cache path is exercised for real.
func setupService(t *testing.T) (*institution.Service, *gorm.DB, *miniredis.Miniredis) {
	t.Helper()

	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	dbase, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		NowFunc:                func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := dbase.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, dbase.AutoMigrate(&db.Institution{}, &db.User{}, &db.Decision{}, &db.Match{}))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()

	appCtx := app.New(dbase, cache.NewRedisCache(cfg), slog.New(slog.NewTextHandler(io.Discard, nil)))
	return institution.NewService(appCtx), dbase, mr
}

func request(name, domain string) institution.RequestInstitution {
	return institution.RequestInstitution{
		Name:        name,
		Location:    "Town",
		EmailDomain: domain,
		RequestedBy: "student@" + domain,
	}
}

func TestRequestInstitution(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupService(t)

	view, err := svc.Request(ctx, request("  New Campus  ", "NEW.EDU"))
	require.NoError(t, err)
	assert.Equal(t, "New Campus", view.Name)
	assert.Equal(t, "new.edu", view.EmailDomain)
	assert.False(t, view.IsApproved)

	_, err = svc.Request(ctx, institution.RequestInstitution{Name: "X", Location: "Y", EmailDomain: "x.edu"})
	assert.EqualError(t, err, "all fields are required")
}

// TestRequestConflicts: a second request colliding on name or domain with
// any existing institution, approved or pending, is refused.
func TestRequestConflicts(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupService(t)

	_, err := svc.Request(ctx, request("New Campus", "new.edu"))
	require.NoError(t, err)

	_, err = svc.Request(ctx, request("New Campus", "other.edu"))
	assert.EqualError(t, err, "institution already exists or request pending")

	_, err = svc.Request(ctx, request("Other Campus", "new.edu"))
	assert.EqualError(t, err, "institution already exists or request pending")
}

// TestApprovalWorkflow: request, list pending, approve, then the campus
// shows up in the public listing and leaves the pending queue.
func TestApprovalWorkflow(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupService(t)

	requested, err := svc.Request(ctx, request("New Campus", "new.edu"))
	require.NoError(t, err)

	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, requested.ID, pending[0].ID)

	approved, err := svc.Approve(ctx, requested.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)

	pending, err = svc.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	listing, err := svc.Approved(ctx)
	require.NoError(t, err)
	require.Len(t, listing, 1)
	assert.Equal(t, "New Campus", listing[0].Name)
}

func TestRejectInstitution(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupService(t)

	requested, err := svc.Request(ctx, request("New Campus", "new.edu"))
	require.NoError(t, err)

	require.NoError(t, svc.Reject(ctx, requested.ID))

	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	// rejecting again is a 404, the row is gone
	err = svc.Reject(ctx, requested.ID)
	require.Error(t, err)
	var apiErr *apperr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
}

func TestApproveUnknownInstitution(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupService(t)

	_, err := svc.Approve(ctx, 42)
	require.Error(t, err)
	var apiErr *apperr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
}

// TestApprovedListingCache: the first read populates Redis, later reads are
// served from it, and approve invalidates the key.
func TestApprovedListingCache(t *testing.T) {
	ctx := context.Background()
	svc, dbase, mr := setupService(t)

	inst := db.Institution{Name: "Test Campus", Location: "Town", EmailDomain: "test.edu", IsApproved: true}
	require.NoError(t, dbase.Create(&inst).Error)

	listing, err := svc.Approved(ctx)
	require.NoError(t, err)
	require.Len(t, listing, 1)
	assert.True(t, mr.Exists("institutions:approved"))

	// a row created behind the cache's back is invisible until invalidation
	stale := db.Institution{Name: "Hidden Campus", Location: "Town", EmailDomain: "hidden.edu", IsApproved: true}
	require.NoError(t, dbase.Create(&stale).Error)
	listing, err = svc.Approved(ctx)
	require.NoError(t, err)
	assert.Len(t, listing, 1)

	requested, err := svc.Request(ctx, request("New Campus", "new.edu"))
	require.NoError(t, err)
	_, err = svc.Approve(ctx, requested.ID)
	require.NoError(t, err)
	assert.False(t, mr.Exists("institutions:approved"))

	listing, err = svc.Approved(ctx)
	require.NoError(t, err)
	assert.Len(t, listing, 3)
}

// TestApprovedSurvivesRedisOutage: listing keeps serving from the DB when
// Redis is unreachable.
func TestApprovedSurvivesRedisOutage(t *testing.T) {
	ctx := context.Background()
	svc, dbase, mr := setupService(t)

	inst := db.Institution{Name: "Test Campus", Location: "Town", EmailDomain: "test.edu", IsApproved: true}
	require.NoError(t, dbase.Create(&inst).Error)

	mr.Close()

	listing, err := svc.Approved(ctx)
	require.NoError(t, err)
	assert.Len(t, listing, 1)
}
