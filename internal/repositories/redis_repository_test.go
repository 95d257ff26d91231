package repository_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/1804coins/storefront-api/internal/config"
	repository "github.com/1804coins/storefront-api/internal/repositories"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRateLimitTest(t *testing.T) (repository.RateLimitRepository, redismock.ClientMock, *config.Config) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	cfg := &config.Config{
		RateConfig: config.RateConfig{
			MaxAttempts: 5,
			WindowSize:  15 * time.Minute,
		},
	}
	repo := repository.NewRateLimitRepo(client, cfg)
	require.NotNil(t, repo)

	return repo, mock, cfg
}

func TestCheckLoginRateLimit(t *testing.T) {
	ctx := t.Context()
	email := "user@example.com"
	key := fmt.Sprintf("login_attempts:%s", email)

	t.Run("Success - Under The Limit", func(t *testing.T) {
		// Arrange
		repo, mock, cfg := setupRateLimitTest(t)

		now := time.Now().Unix()
		windowStart := now - int64(cfg.RateConfig.WindowSize.Seconds())

		mock.ExpectZRemRangeByScore(key, "0", fmt.Sprintf("%d", windowStart)).SetVal(0)
		mock.ExpectZAdd(key, redis.Z{Score: float64(now), Member: now}).SetVal(1)
		mock.ExpectZCard(key).SetVal(2)
		mock.ExpectExpire(key, cfg.RateConfig.WindowSize).SetVal(true)

		// Act
		allowed, remaining, retryAfter, err := repo.CheckLoginRateLimit(ctx, email)

		// Assert
		assert.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 3, remaining)
		assert.Zero(t, retryAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Limit Reached Reports Retry Delay", func(t *testing.T) {
		// Arrange
		repo, mock, cfg := setupRateLimitTest(t)

		now := time.Now().Unix()
		windowStart := now - int64(cfg.RateConfig.WindowSize.Seconds())
		oldest := now - 60

		mock.ExpectZRemRangeByScore(key, "0", fmt.Sprintf("%d", windowStart)).SetVal(0)
		mock.ExpectZAdd(key, redis.Z{Score: float64(now), Member: now}).SetVal(1)
		mock.ExpectZCard(key).SetVal(5)
		mock.ExpectExpire(key, cfg.RateConfig.WindowSize).SetVal(true)
		mock.ExpectZRangeArgsWithScores(redis.ZRangeArgs{Key: key, Start: 0, Stop: 0}).
			SetVal([]redis.Z{{Score: float64(oldest), Member: oldest}})

		// Act
		allowed, remaining, retryAfter, err := repo.CheckLoginRateLimit(ctx, email)

		// Assert
		assert.NoError(t, err)
		assert.False(t, allowed)
		assert.Zero(t, remaining)

		// The oldest attempt was a minute ago, so the window reopens in
		// window - 60 seconds.
		assert.Equal(t, int(cfg.RateConfig.WindowSize.Seconds())-60, retryAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Pipeline Error", func(t *testing.T) {
		// Arrange
		repo, mock, cfg := setupRateLimitTest(t)

		now := time.Now().Unix()
		windowStart := now - int64(cfg.RateConfig.WindowSize.Seconds())

		mock.ExpectZRemRangeByScore(key, "0", fmt.Sprintf("%d", windowStart)).
			SetErr(redis.ErrClosed)

		// Act
		allowed, _, _, err := repo.CheckLoginRateLimit(ctx, email)

		// Assert
		assert.Error(t, err)
		assert.False(t, allowed)
	})
}
