package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"tripnest/utils"

	"github.com/go-redis/redis/v8"
)

// SessionStore tracks live sessions by token hash.
type SessionStore interface {
	Save(ctx context.Context, tokenHash, userID string, ttl time.Duration) error
	// Lookup returns the owner of a live session, Unauthenticated otherwise.
	Lookup(ctx context.Context, tokenHash string) (string, error)
	Revoke(ctx context.Context, tokenHash string) error
}

var errSessionExpired = utils.Unauthenticated("session expired, please sign in again")

// RedisSessionStore keeps sessions under AuthCachePrefix with the token TTL.
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) Save(ctx context.Context, tokenHash, userID string, ttl time.Duration) error {
	return s.client.Set(ctx, utils.AuthCachePrefix+tokenHash, userID, ttl).Err()
}

func (s *RedisSessionStore) Lookup(ctx context.Context, tokenHash string) (string, error) {
	uid, err := s.client.Get(ctx, utils.AuthCachePrefix+tokenHash).Result()
	if errors.Is(err, redis.Nil) {
		return "", errSessionExpired
	}
	if err != nil {
		return "", utils.Wrap(err, "failed to read session")
	}
	return uid, nil
}

func (s *RedisSessionStore) Revoke(ctx context.Context, tokenHash string) error {
	return s.client.Del(ctx, utils.AuthCachePrefix+tokenHash).Err()
}

// MemorySessionStore is used when Redis is not configured.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]memSession
	now      func() time.Time
}

type memSession struct {
	userID  string
	expires time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]memSession), now: time.Now}
}

func (s *MemorySessionStore) Save(_ context.Context, tokenHash, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[tokenHash] = memSession{userID: userID, expires: s.now().Add(ttl)}
	return nil
}

func (s *MemorySessionStore) Lookup(_ context.Context, tokenHash string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[tokenHash]
	if !ok {
		return "", errSessionExpired
	}
	if !s.now().Before(sess.expires) {
		delete(s.sessions, tokenHash)
		return "", errSessionExpired
	}
	return sess.userID, nil
}

func (s *MemorySessionStore) Revoke(_ context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, tokenHash)
	return nil
}
