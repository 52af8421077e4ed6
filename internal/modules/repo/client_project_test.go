package repo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/pixelforge-studio/studio-api/internal/modules/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupProjectTestDB(t *testing.T) *gorm.DB {
	dsn := os.Getenv("STUDIO_TEST_DSN")
	if dsn == "" {
		dsn = "host=localhost user=studio password=studio dbname=studio_test port=5432 sslmode=disable"
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Skip("Test database not available, skipping integration tests")
		return nil
	}

	err = db.AutoMigrate(
		&model.Client{},
		&model.ClientProject{},
	)
	require.NoError(t, err)
	return db
}

func cleanupProjectTestDB(t *testing.T, db *gorm.DB, clientID int64) {
	db.Exec("DELETE FROM client_projects WHERE client_id = ?", clientID)
	db.Exec("DELETE FROM clients WHERE id = ?", clientID)
}

func createTestClient(t *testing.T, db *gorm.DB) *model.Client {
	t.Helper()
	suffix := time.Now().UnixNano()
	client := &model.Client{
		Name:       "Acme Co",
		Email:      fmt.Sprintf("acme-%d@example.com", suffix),
		AccessCode: fmt.Sprintf("T%dX", suffix),
	}
	require.NoError(t, db.Create(client).Error)
	return client
}

func TestClientProjectRepo_UpdateCAS(t *testing.T) {
	db := setupProjectTestDB(t)
	if db == nil {
		return
	}

	repo := NewClientProjectRepo(db)
	ctx := context.Background()

	client := createTestClient(t, db)
	defer cleanupProjectTestDB(t, db, client.ID)

	project := &model.ClientProject{
		ClientID:  client.ID,
		Title:     "Website redesign",
		Status:    model.ProjectStatusPending,
		Priority:  model.ProjectPriorityMedium,
		TotalCost: 500000,
		Revision:  1,
	}
	require.NoError(t, repo.Create(ctx, project))

	t.Run("matching revision applies and bumps", func(t *testing.T) {
		updated, err := repo.UpdateCAS(ctx, project.ID, 1, map[string]interface{}{
			"status": model.ProjectStatusInProgress,
		})
		require.NoError(t, err)
		assert.Equal(t, model.ProjectStatusInProgress, updated.Status)
		assert.Equal(t, int64(2), updated.Revision)
	})

	t.Run("stale revision is rejected", func(t *testing.T) {
		_, err := repo.UpdateCAS(ctx, project.ID, 1, map[string]interface{}{
			"status": model.ProjectStatusReview,
		})
		assert.ErrorIs(t, err, ErrStaleRevision)
	})

	t.Run("missing project reads as record not found", func(t *testing.T) {
		_, err := repo.UpdateCAS(ctx, project.ID+100000, 1, map[string]interface{}{
			"status": model.ProjectStatusReview,
		})
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestClientProjectRepo_GetOwned(t *testing.T) {
	db := setupProjectTestDB(t)
	if db == nil {
		return
	}

	repo := NewClientProjectRepo(db)
	ctx := context.Background()

	owner := createTestClient(t, db)
	defer cleanupProjectTestDB(t, db, owner.ID)
	other := createTestClient(t, db)
	defer cleanupProjectTestDB(t, db, other.ID)

	project := &model.ClientProject{
		ClientID: owner.ID,
		Title:    "Brand refresh",
		Status:   model.ProjectStatusPending,
		Priority: model.ProjectPriorityLow,
		Revision: 1,
	}
	require.NoError(t, repo.Create(ctx, project))

	got, err := repo.GetOwned(ctx, project.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, got.ID)

	_, err = repo.GetOwned(ctx, project.ID, other.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
