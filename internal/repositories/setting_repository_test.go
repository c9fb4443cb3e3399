package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptbox/internal/models"
)

func TestSettingRepository_PutOverwritesInPlace(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingRepository(openTestDB(t))

	require.NoError(t, repo.Put(ctx, &models.Setting{Key: models.KeyTheme, Value: `"light"`}))
	require.NoError(t, repo.Put(ctx, &models.Setting{Key: models.KeyTheme, Value: `"dark"`}))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, `"dark"`, all[0].Value)
}

func TestSettingRepository_GetMissingReturnsNil(t *testing.T) {
	repo := NewSettingRepository(openTestDB(t))

	s, err := repo.Get(context.Background(), models.KeyTopP)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestSettingRepository_BulkPutAndClear(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingRepository(openTestDB(t))

	require.NoError(t, repo.BulkPut(ctx, []models.Setting{
		{Key: models.KeyTemperature, Value: "0.5"},
		{Key: models.KeyTopP, Value: "0.8"},
	}))
	require.NoError(t, repo.BulkPut(ctx, []models.Setting{
		{Key: models.KeyTemperature, Value: "0.7"},
	}))

	got, err := repo.Get(ctx, models.KeyTemperature)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "0.7", got.Value)

	require.NoError(t, repo.Clear(ctx))
	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSettingRepository_BulkPutRejectsEmptyKey(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingRepository(openTestDB(t))

	err := repo.BulkPut(ctx, []models.Setting{{Key: models.KeyTopP, Value: "1"}, {Key: "", Value: "x"}})
	assert.Error(t, err)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
