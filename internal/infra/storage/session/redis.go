package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-BookingWidget/internal/domain"
)

const defaultRedisKeyPrefix = "widget:session:"

// RedisRepository хранит сессии в Redis (JSON значение, TTL на ключе)
type RedisRepository struct {
	client    redis.UniversalClient
	ttl       time.Duration
	keyPrefix string
}

// NewRedisRepository создает хранилище сессий в Redis
func NewRedisRepository(client redis.UniversalClient, ttl time.Duration, keyPrefix string) *RedisRepository {
	if keyPrefix == "" {
		keyPrefix = defaultRedisKeyPrefix
	}
	return &RedisRepository{
		client:    client,
		ttl:       ttl,
		keyPrefix: keyPrefix,
	}
}

// Get возвращает сессию по ID
func (r *RedisRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	payload, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - redis get: %v", ErrExecQuery, err)
	}
	return decode(id, payload)
}

// Save сохраняет сессию и продлевает срок ее жизни
func (r *RedisRepository) Save(ctx context.Context, s *domain.Session) error {
	payload, err := encode(s)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(s.ID), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Save - redis set: %v", ErrExecQuery, err)
	}
	return nil
}

// Delete удаляет сессию
func (r *RedisRepository) Delete(ctx context.Context, id string) error {
	removed, err := r.client.Del(ctx, r.key(id)).Result()
	if err != nil {
		return fmt.Errorf("%w: Delete - redis del: %v", ErrExecQuery, err)
	}
	if removed == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *RedisRepository) key(id string) string {
	return r.keyPrefix + id
}
