package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a session id has no live record, either
// because it expired or because logout revoked it.
var ErrNotFound = errors.New("session not found")

const keyPrefix = "session:"

// Store keeps one redis record per live session. The JWT carried by the
// client is only trusted while its session id still resolves here, which is
// what lets logout revoke a token before its expiry.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{rdb: rdb, ttl: ttl}
}

func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Save registers a session id for an owner.
func (s *Store) Save(ctx context.Context, sessionID, ownerID string) error {
	return s.rdb.Set(ctx, keyPrefix+sessionID, ownerID, s.ttl).Err()
}

// Get resolves a session id to the owner it was issued to.
func (s *Store) Get(ctx context.Context, sessionID string) (string, error) {
	ownerID, err := s.rdb.Get(ctx, keyPrefix+sessionID).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return ownerID, nil
}

// Touch extends a live session to a full TTL again.
func (s *Store) Touch(ctx context.Context, sessionID string) error {
	ok, err := s.rdb.Expire(ctx, keyPrefix+sessionID, s.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Delete revokes a session.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, keyPrefix+sessionID).Err()
}
