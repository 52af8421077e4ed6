package repo

import (
	"context"
	"testing"

	"github.com/pixelforge-studio/studio-api/internal/modules/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectUpdateRepo_ListByProject_Visibility(t *testing.T) {
	db := setupProjectTestDB(t)
	if db == nil {
		return
	}
	require.NoError(t, db.AutoMigrate(&model.ProjectUpdate{}))

	repo := NewProjectUpdateRepo(db)
	ctx := context.Background()

	client := createTestClient(t, db)
	defer cleanupProjectTestDB(t, db, client.ID)

	project := &model.ClientProject{
		ClientID: client.ID,
		Title:    "Storefront",
		Status:   model.ProjectStatusInProgress,
		Priority: model.ProjectPriorityMedium,
		Revision: 1,
	}
	require.NoError(t, db.Create(project).Error)
	defer db.Exec("DELETE FROM project_updates WHERE project_id = ?", project.ID)

	visible := &model.ProjectUpdate{
		ProjectID:       project.ID,
		Title:           "Homepage live",
		Message:         "Deployed to staging.",
		Type:            model.UpdateTypeUpdate,
		IsClientVisible: true,
	}
	hidden := &model.ProjectUpdate{
		ProjectID:       project.ID,
		Title:           "Internal note",
		Message:         "Waiting on assets.",
		Type:            model.UpdateTypeUpdate,
		IsClientVisible: false,
	}
	require.NoError(t, repo.Create(ctx, visible))
	require.NoError(t, repo.Create(ctx, hidden))

	t.Run("visible-only filter excludes hidden rows", func(t *testing.T) {
		all, err := repo.ListByProject(ctx, project.ID, false)
		require.NoError(t, err)
		require.Len(t, all, 2)

		subset, err := repo.ListByProject(ctx, project.ID, true)
		require.NoError(t, err)
		require.Len(t, subset, 1)
		assert.Equal(t, visible.ID, subset[0].ID)
	})

	t.Run("toggling visibility off removes the row from the subset", func(t *testing.T) {
		_, err := repo.Update(ctx, visible.ID, map[string]interface{}{
			"is_client_visible": false,
		})
		require.NoError(t, err)

		subset, err := repo.ListByProject(ctx, project.ID, true)
		require.NoError(t, err)
		assert.Empty(t, subset)

		all, err := repo.ListByProject(ctx, project.ID, false)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}
