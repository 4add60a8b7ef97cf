package repository

import (
	"context"
	"sync"
	"testing"

	"dugout/repository/testutil"
	"dugout/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelRepository(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewChannelRepository(testDB.DB)
	ctx := context.Background()

	t.Run("GetByID not found", func(t *testing.T) {
		channel, err := repo.GetByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, channel)
	})

	t.Run("GetOrCreate defaults", func(t *testing.T) {
		channel, err := repo.GetOrCreate(ctx, 111222)
		require.NoError(t, err)
		require.NotNil(t, channel)

		assert.Equal(t, int64(111222), channel.ID)
		assert.False(t, channel.OnlyScoringPlays)
		assert.True(t, channel.GameAdvisories)
		assert.Equal(t, int64(13), channel.InPlayDelay)
		assert.Equal(t, int64(18), channel.NoPlayDelay)
		assert.True(t, channel.ShowScoreOnOut3)
	})

	t.Run("GetOrCreate is idempotent", func(t *testing.T) {
		first, err := repo.GetOrCreate(ctx, 333444)
		require.NoError(t, err)

		second, err := repo.GetOrCreate(ctx, 333444)
		require.NoError(t, err)
		assert.Equal(t, first.CreatedAt, second.CreatedAt)
	})

	t.Run("UpdateField persists one setting and leaves the rest", func(t *testing.T) {
		_, err := repo.GetOrCreate(ctx, 555666)
		require.NoError(t, err)

		require.NoError(t, repo.UpdateField(ctx, 555666, "in_play_delay", int64(25)))
		require.NoError(t, repo.UpdateField(ctx, 555666, "only_scoring_plays", true))

		stored, err := repo.GetByID(ctx, 555666)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.True(t, stored.OnlyScoringPlays)
		assert.Equal(t, int64(25), stored.InPlayDelay)
		assert.True(t, stored.GameAdvisories)
		assert.Equal(t, int64(18), stored.NoPlayDelay)
	})

	t.Run("UpdateField missing channel", func(t *testing.T) {
		err := repo.UpdateField(ctx, 999999, "in_play_delay", int64(25))
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	// Writers changing different settings on the same channel never
	// clobber each other, there is no full-row write to lose an update to
	t.Run("concurrent writers to different fields both land", func(t *testing.T) {
		_, err := repo.GetOrCreate(ctx, 777999)
		require.NoError(t, err)

		var wg sync.WaitGroup
		errs := make([]error, 2)
		wg.Add(2)
		go func() {
			defer wg.Done()
			errs[0] = repo.UpdateField(ctx, 777999, "in_play_delay", int64(20))
		}()
		go func() {
			defer wg.Done()
			errs[1] = repo.UpdateField(ctx, 777999, "game_advisories", false)
		}()
		wg.Wait()

		require.NoError(t, errs[0])
		require.NoError(t, errs[1])

		stored, err := repo.GetByID(ctx, 777999)
		require.NoError(t, err)
		assert.Equal(t, int64(20), stored.InPlayDelay)
		assert.False(t, stored.GameAdvisories)
	})
}

func TestServerRepository(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewServerRepository(testDB.DB)
	ctx := context.Background()

	t.Run("GetByID not found", func(t *testing.T) {
		server, err := repo.GetByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, server)
	})

	t.Run("GetOrCreate then UpdateField", func(t *testing.T) {
		server, err := repo.GetOrCreate(ctx, 777888)
		require.NoError(t, err)
		require.NotNil(t, server)
		assert.Equal(t, int64(0), server.TeamID)

		require.NoError(t, repo.UpdateField(ctx, 777888, "team_id", int64(137)))

		stored, err := repo.GetByID(ctx, 777888)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, int64(137), stored.TeamID)
	})

	t.Run("UpdateField missing server", func(t *testing.T) {
		err := repo.UpdateField(ctx, 999999, "team_id", int64(137))
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}
