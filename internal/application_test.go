package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe/internal/config"
)

func TestNewGameRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Memory", func(t *testing.T) {
		repo, closeStorage, err := newGameRepository(ctx, &config.Config{Storage: config.StorageMemory, SessionTTL: time.Hour})

		require.NoError(t, err)
		assert.NotNil(t, repo)
		assert.NoError(t, closeStorage())
	})

	t.Run("Unknown storage", func(t *testing.T) {
		_, _, err := newGameRepository(ctx, &config.Config{Storage: "sqlite"})

		require.ErrorIs(t, err, ErrUnknownStorage)
	})

	t.Run("Unreachable redis", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		_, _, err := newGameRepository(ctx, &config.Config{
			Storage: config.StorageRedis,
			Redis:   config.Redis{Host: "127.0.0.1", Port: "1"},
		})

		require.Error(t, err)
	})
}

func TestNewGameRepository_EmptyRedisHost(t *testing.T) {
	_, _, err := newGameRepository(context.Background(), &config.Config{Storage: config.StorageRedis})

	require.ErrorIs(t, err, ErrAddrNotFound)
}
