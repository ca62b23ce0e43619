package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/Shivkumar-Raghuwanshi/employee-hub/internal/session"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestStore_SaveAndGet(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := session.NewStore(rdb, time.Hour)
	ctx := context.Background()

	mock.ExpectSet("session:sid-1", "owner-1", time.Hour).SetVal("OK")
	assert.NoError(t, store.Save(ctx, "sid-1", "owner-1"))

	mock.ExpectGet("session:sid-1").SetVal("owner-1")
	ownerID, err := store.Get(ctx, "sid-1")
	assert.NoError(t, err)
	assert.Equal(t, "owner-1", ownerID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetMissingSession(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := session.NewStore(rdb, time.Hour)

	mock.ExpectGet("session:gone").RedisNil()

	_, err := store.Get(context.Background(), "gone")
	assert.ErrorIs(t, err, session.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_DeleteRevokes(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := session.NewStore(rdb, time.Hour)
	ctx := context.Background()

	mock.ExpectDel("session:sid-1").SetVal(1)
	assert.NoError(t, store.Delete(ctx, "sid-1"))

	mock.ExpectGet("session:sid-1").RedisNil()
	_, err := store.Get(ctx, "sid-1")
	assert.ErrorIs(t, err, session.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_TouchMissingSession(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := session.NewStore(rdb, time.Hour)

	mock.ExpectExpire("session:gone", time.Hour).SetVal(false)

	err := store.Touch(context.Background(), "gone")
	assert.ErrorIs(t, err, session.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewStore_DefaultTTL(t *testing.T) {
	rdb, _ := redismock.NewClientMock()
	store := session.NewStore(rdb, 0)
	assert.Equal(t, 24*time.Hour, store.TTL())
}
