package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/rueidis"
)

const sessionKeyPrefix = "session:"

type RedisSessionStore struct {
	client rueidis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client rueidis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *RedisSessionStore) Create(ctx context.Context, userID string) (string, error) {
	token, err := newSessionToken()
	if err != nil {
		return "", err
	}

	cmd := s.client.B().Set().
		Key(sessionKeyPrefix + token).
		Value(userID).
		Ex(s.ttl).
		Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return "", err
	}

	return token, nil
}

func (s *RedisSessionStore) Resolve(ctx context.Context, token string) (string, error) {
	cmd := s.client.B().Get().Key(sessionKeyPrefix + token).Build()
	result := s.client.Do(ctx, cmd)

	if err := result.Error(); err != nil {
		if rueidis.IsRedisNil(err) {
			return "", ErrSessionNotFound
		}
		return "", err
	}

	return result.ToString()
}

func (s *RedisSessionStore) Delete(ctx context.Context, token string) error {
	cmd := s.client.B().Del().Key(sessionKeyPrefix + token).Build()
	return s.client.Do(ctx, cmd).Error()
}

func newSessionToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return hex.EncodeToString(b), nil
}
