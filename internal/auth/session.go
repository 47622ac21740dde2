package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campusbook/venue-booking/internal/entity"
)

// SessionStore keeps one Redis record per issued token, keyed by the
// token's jti. A token whose record is gone (logout or TTL expiry) is no
// longer accepted even if its signature is still valid.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func sessionKey(tokenID string) string {
	return "session:" + tokenID
}

// Save registers a session for the token, expiring with the token itself.
func (s *SessionStore) Save(ctx context.Context, tokenID string, userID int64, ttl time.Duration) error {
	if err := s.client.Set(ctx, sessionKey(tokenID), strconv.FormatInt(userID, 10), ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrStorageUnavailable, err)
	}
	return nil
}

// Check reports whether the session is still live. A missing record means
// the token was revoked or expired.
func (s *SessionStore) Check(ctx context.Context, tokenID string) error {
	err := s.client.Get(ctx, sessionKey(tokenID)).Err()
	if err == redis.Nil {
		return entity.ErrUnauthorized
	}
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrStorageUnavailable, err)
	}
	return nil
}

// Revoke deletes the session record. Revoking an absent session is not an
// error; logout is idempotent.
func (s *SessionStore) Revoke(ctx context.Context, tokenID string) error {
	if err := s.client.Del(ctx, sessionKey(tokenID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrStorageUnavailable, err)
	}
	return nil
}
