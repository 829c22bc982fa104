package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryCachesWithinTTL(t *testing.T) {
	calls := 0
	repo := NewRepository(func(key string) (int, error) {
		calls++
		return len(key), nil
	}, time.Minute)

	v1, err := repo.Get("hello")
	require.NoError(t, err)
	v2, err := repo.Get("hello")
	require.NoError(t, err)

	assert.Equal(t, 5, v1)
	assert.Equal(t, 5, v2)
	assert.Equal(t, 1, calls)
}

func TestRepositoryZeroTTLAlwaysReloads(t *testing.T) {
	calls := 0
	repo := NewRepository(func(key string) (int, error) {
		calls++
		return calls, nil
	}, 0)

	v1, _ := repo.Get("k")
	v2, _ := repo.Get("k")
	assert.NotEqual(t, v1, v2)
	assert.Equal(t, 2, calls)
}

func TestRepositoryInvalidateForcesReload(t *testing.T) {
	calls := 0
	repo := NewRepository(func(key string) (int, error) {
		calls++
		return calls, nil
	}, time.Minute)

	v1, _ := repo.Get("k")
	repo.Invalidate("k")
	v2, _ := repo.Get("k")
	assert.NotEqual(t, v1, v2)
	assert.Equal(t, 2, calls)
}
