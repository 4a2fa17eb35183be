package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRedisCache(t *testing.T) (*RedisCache, redismock.ClientMock) {
	t.Helper()
	client, mock := redismock.NewClientMock()
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	return NewRedisCacheFromClient(client, ""), mock
}

func TestRedisCache_GetHit(t *testing.T) {
	c, mock := newMockRedisCache(t)
	mock.ExpectGet("pseudoloc:k").SetVal("value")

	data, hit, err := c.Get(context.Background(), "k")

	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []byte("value"), data)
}

func TestRedisCache_GetMiss(t *testing.T) {
	c, mock := newMockRedisCache(t)
	mock.ExpectGet("pseudoloc:k").RedisNil()

	data, hit, err := c.Get(context.Background(), "k")

	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, data)
}

func TestRedisCache_GetError(t *testing.T) {
	c, mock := newMockRedisCache(t)
	mock.ExpectGet("pseudoloc:k").SetErr(errors.New("connection refused"))

	_, hit, err := c.Get(context.Background(), "k")

	assert.Error(t, err)
	assert.False(t, hit)
}

func TestRedisCache_Set(t *testing.T) {
	c, mock := newMockRedisCache(t)
	mock.ExpectSet("pseudoloc:k", []byte("value"), time.Hour).SetVal("OK")

	err := c.Set(context.Background(), "k", []byte("value"), time.Hour)

	assert.NoError(t, err)
}

func TestRedisCache_Delete(t *testing.T) {
	c, mock := newMockRedisCache(t)
	mock.ExpectDel("pseudoloc:k").SetVal(1)

	assert.NoError(t, c.Delete(context.Background(), "k"))
}

func TestRedisCache_CustomPrefix(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(client, "staging:")
	mock.ExpectGet("staging:k").RedisNil()

	_, _, err := c.Get(context.Background(), "k")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_Clear(t *testing.T) {
	c, mock := newMockRedisCache(t)
	mock.ExpectScan(0, "pseudoloc:*", 100).SetVal([]string{"pseudoloc:a", "pseudoloc:b"}, 7)
	mock.ExpectDel("pseudoloc:a", "pseudoloc:b").SetVal(2)
	mock.ExpectScan(7, "pseudoloc:*", 100).SetVal([]string{"pseudoloc:c"}, 0)
	mock.ExpectDel("pseudoloc:c").SetVal(1)

	n, err := c.Clear(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestRedisCache_ClearScanError(t *testing.T) {
	c, mock := newMockRedisCache(t)
	mock.ExpectScan(0, "pseudoloc:*", 100).SetErr(errors.New("boom"))

	n, err := c.Clear(context.Background())

	assert.Error(t, err)
	assert.Zero(t, n)
}
