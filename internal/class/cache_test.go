package class

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheRoundTrip(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, time.Minute)

	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	classes := []Class{{ID: 1, Name: "WOD", StartTime: "18:00:00", EndTime: "19:00:00"}}
	payload, err := json.Marshal(classes)
	require.NoError(t, err)

	mock.ExpectSet("classes:upcoming:2024-06-01", payload, time.Minute).SetVal("OK")
	cache.SetUpcoming(context.Background(), day, classes)

	mock.ExpectGet("classes:upcoming:2024-06-01").SetVal(string(payload))
	got, ok := cache.GetUpcoming(context.Background(), day)
	require.True(t, ok)
	assert.Equal(t, classes, got)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, time.Minute)

	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectGet("classes:today:2024-06-01").RedisNil()
	_, ok := cache.GetToday(context.Background(), day)
	assert.False(t, ok)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheInvalidate(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, time.Minute)

	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectDel("classes:upcoming:2024-06-01", "classes:today:2024-06-01").SetVal(2)
	cache.Invalidate(context.Background(), day)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheCorruptPayload(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client, time.Minute)

	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectGet("classes:upcoming:2024-06-01").SetVal("not-json")
	_, ok := cache.GetUpcoming(context.Background(), day)
	assert.False(t, ok)
}
