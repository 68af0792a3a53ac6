package session

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store holds raw session values keyed by session id and logical key.
// Implementations never report a missing or unreadable value as an error.
type Store interface {
	Get(ctx context.Context, sessionID, key string) ([]byte, bool)
	Set(ctx context.Context, sessionID, key string, data []byte) error
	Delete(ctx context.Context, sessionID string, keys ...string) error
	Close() error
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host:     "localhost",
		Port:     "6379",
		Password: "",
		DB:       0,
		TTL:      2 * time.Hour,
	}
}

func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisStore{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID, key string) ([]byte, bool) {
	data, err := s.client.HGet(ctx, redisKey(sessionID), key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set writes one field of the session hash and slides the session TTL.
func (s *RedisStore) Set(ctx context.Context, sessionID, key string, data []byte) error {
	hash := redisKey(sessionID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, hash, key, data)
		if s.ttl > 0 {
			pipe.Expire(ctx, hash, s.ttl)
		}
		return nil
	})
	return err
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string, keys ...string) error {
	if len(keys) == 0 {
		return s.client.Del(ctx, redisKey(sessionID)).Err()
	}
	return s.client.HDel(ctx, redisKey(sessionID), keys...).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func redisKey(sessionID string) string {
	return "session:" + sessionID
}

// MemoryStore keeps sessions in process memory. Used for single-instance
// deployments and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]map[string][]byte),
	}
}

func (s *MemoryStore) Get(ctx context.Context, sessionID, key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.sessions[sessionID][key]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true
}

func (s *MemoryStore) Set(ctx context.Context, sessionID, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, ok := s.sessions[sessionID]
	if !ok {
		values = make(map[string][]byte)
		s.sessions[sessionID] = values
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	values[key] = stored
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(keys) == 0 {
		delete(s.sessions, sessionID)
		return nil
	}
	values := s.sessions[sessionID]
	for _, k := range keys {
		delete(values, k)
	}
	if len(values) == 0 {
		delete(s.sessions, sessionID)
	}
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// NoOpStore stands in when no storage is available: writes vanish and every
// read is absent.
type NoOpStore struct{}

func NewNoOpStore() *NoOpStore {
	return &NoOpStore{}
}

func (s *NoOpStore) Get(ctx context.Context, sessionID, key string) ([]byte, bool) {
	return nil, false
}

func (s *NoOpStore) Set(ctx context.Context, sessionID, key string, data []byte) error {
	return nil
}

func (s *NoOpStore) Delete(ctx context.Context, sessionID string, keys ...string) error {
	return nil
}

func (s *NoOpStore) Close() error {
	return nil
}
