package cache

import (
	"context"
	"time"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	domainRepo "github.com/essamaboelmgd/sanabel-elkhair/internal/domain/repository"
)

type idempotencyStore struct {
	cache *InMemoryCache
}

// NewIdempotencyStore creates an idempotency key store
func NewIdempotencyStore(cache *InMemoryCache) domainRepo.IdempotencyRepository {
	return &idempotencyStore{cache: cache}
}

func idempotencyKey(key, sessionID string) string {
	return "idem:" + sessionID + ":" + key
}

func (s *idempotencyStore) GetByKey(ctx context.Context, key, sessionID string) (*entity.IdempotencyKey, error) {
	v, ok := s.cache.Get(ctx, idempotencyKey(key, sessionID))
	if !ok {
		return nil, nil
	}
	ikey := v.(*entity.IdempotencyKey)
	if ikey.IsExpired() {
		s.cache.Delete(ctx, idempotencyKey(key, sessionID))
		return nil, nil
	}
	return ikey, nil
}

func (s *idempotencyStore) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	ttl := time.Until(ikey.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	s.cache.Set(ctx, idempotencyKey(ikey.Key, ikey.SessionID), ikey, ttl)
	return nil
}
