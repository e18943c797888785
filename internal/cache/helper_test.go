package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedPost struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside_MissThenHit(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedPost) func() error {
		return func() error {
			fetches++
			dest.ID = 7
			dest.Title = "cached"
			return nil
		}
	}

	var first cachedPost
	require.NoError(t, Aside(ctx, PostKey(7), &first, PostTTL, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "cached", first.Title)

	// Second read must come from the cache without calling fetch again.
	var second cachedPost
	require.NoError(t, Aside(ctx, PostKey(7), &second, PostTTL, func() error {
		fetches++
		return nil
	}))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, first, second)
}

func TestAside_FetchErrorNotCached(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetchErr := errors.New("db down")
	var dest cachedPost
	err := Aside(ctx, PostKey(1), &dest, PostTTL, func() error { return fetchErr })
	assert.ErrorIs(t, err, fetchErr)

	found, err := GetJSON(ctx, PostKey(1), &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAside_TTLExpiry(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	var dest cachedPost
	fetch := func() error {
		fetches++
		dest.ID = 1
		return nil
	}

	require.NoError(t, Aside(ctx, PostKey(1), &dest, time.Minute, fetch))
	mr.FastForward(2 * time.Minute)
	require.NoError(t, Aside(ctx, PostKey(1), &dest, time.Minute, fetch))
	assert.Equal(t, 2, fetches)
}

func TestNilClientDegradesGracefully(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	var dest cachedPost
	found, err := GetJSON(ctx, PostKey(1), &dest)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, SetJSON(ctx, PostKey(1), cachedPost{ID: 1}, time.Minute))
	Invalidate(ctx, PostKey(1))

	// Aside always falls through to fetch.
	called := false
	require.NoError(t, Aside(ctx, PostKey(1), &dest, time.Minute, func() error {
		called = true
		return nil
	}))
	assert.True(t, called)
}

func TestInvalidatePost(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostKey(3), cachedPost{ID: 3}, time.Minute))
	require.NoError(t, SetJSON(ctx, PostSlugKey("hello-world"), cachedPost{ID: 3}, time.Minute))

	InvalidatePost(ctx, 3, "hello-world")

	var dest cachedPost
	found, err := GetJSON(ctx, PostKey(3), &dest)
	require.NoError(t, err)
	assert.False(t, found)
	found, err = GetJSON(ctx, PostSlugKey("hello-world"), &dest)
	require.NoError(t, err)
	assert.False(t, found)
}
