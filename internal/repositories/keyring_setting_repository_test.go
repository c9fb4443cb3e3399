package repositories

import (
	"context"
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptbox/internal/models"
)

func TestKeyringSettingRepository_RoutesAPIKey(t *testing.T) {
	ctx := context.Background()
	inner := NewSettingRepository(openTestDB(t))
	ring := keyring.NewArrayKeyring(nil)
	repo := NewKeyringSettingRepository(inner, ring)

	require.NoError(t, repo.BulkPut(ctx, []models.Setting{
		{Key: models.KeyAPIKey, Value: `"secret"`},
		{Key: models.KeyTheme, Value: `"dark"`},
	}))

	item, err := ring.Get(models.KeyAPIKey)
	require.NoError(t, err)
	assert.Equal(t, `"secret"`, string(item.Data))

	stored, err := inner.Get(ctx, models.KeyAPIKey)
	require.NoError(t, err)
	assert.Nil(t, stored, "api key must not reach the database")

	all, err := repo.List(ctx)
	require.NoError(t, err)
	values := map[string]string{}
	for _, s := range all {
		values[s.Key] = s.Value
	}
	assert.Equal(t, map[string]string{models.KeyAPIKey: `"secret"`, models.KeyTheme: `"dark"`}, values)
}

func TestKeyringSettingRepository_MissingSecret(t *testing.T) {
	ctx := context.Background()
	repo := NewKeyringSettingRepository(NewSettingRepository(openTestDB(t)), keyring.NewArrayKeyring(nil))

	s, err := repo.Get(ctx, models.KeyAPIKey)
	require.NoError(t, err)
	assert.Nil(t, s)

	require.NoError(t, repo.Clear(ctx))
}

func TestKeyringSettingRepository_PutAndClear(t *testing.T) {
	ctx := context.Background()
	ring := keyring.NewArrayKeyring(nil)
	repo := NewKeyringSettingRepository(NewSettingRepository(openTestDB(t)), ring)

	require.NoError(t, repo.Put(ctx, &models.Setting{Key: models.KeyAPIKey, Value: `"k"`}))
	got, err := repo.Get(ctx, models.KeyAPIKey)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, `"k"`, got.Value)

	require.NoError(t, repo.Clear(ctx))
	_, err = ring.Get(models.KeyAPIKey)
	assert.ErrorIs(t, err, keyring.ErrKeyNotFound)
}
