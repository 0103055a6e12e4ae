package errx

import (
	"errors"
	"net/http"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapRedis(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, WrapRedis(nil))
	})

	t.Run("missing key maps to not found", func(t *testing.T) {
		err := WrapRedis(redis.Nil)

		var appErr *AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusNotFound, appErr.Status)
		assert.Equal(t, RedisNotFoundMessage, appErr.Message)
		assert.ErrorIs(t, err, redis.Nil)
	})

	t.Run("other failures map to bad gateway", func(t *testing.T) {
		err := WrapRedis(errors.New("connection refused"))

		var appErr *AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusBadGateway, appErr.Status)
		assert.Equal(t, RedisErrorMessage, appErr.Message)
	})
}

func TestWrapGeneration(t *testing.T) {
	assert.NoError(t, WrapGeneration(nil))

	cause := errors.New("model overloaded")
	err := WrapGeneration(cause)

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, GenerationErrorMessage, appErr.Message)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "model overloaded")
}
