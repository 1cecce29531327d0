package cache

import (
	"context"
	"time"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	domainRepo "github.com/essamaboelmgd/sanabel-elkhair/internal/domain/repository"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/apperror"
)

type sessionStore struct {
	cache *InMemoryCache
}

// NewSessionStore creates a session store. Sessions live until their own
// expiry or until deleted.
func NewSessionStore(cache *InMemoryCache) domainRepo.SessionRepository {
	return &sessionStore{cache: cache}
}

func sessionKey(id string) string {
	return "session:" + id
}

func (s *sessionStore) Save(ctx context.Context, session *entity.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return apperror.ErrSessionExpired
	}
	s.cache.Set(ctx, sessionKey(session.ID), session, ttl)
	return nil
}

// Get returns ErrSessionExpired when the session is unknown, logged out or expired.
func (s *sessionStore) Get(ctx context.Context, id string) (*entity.Session, error) {
	v, ok := s.cache.Get(ctx, sessionKey(id))
	if !ok {
		return nil, apperror.ErrSessionExpired
	}
	session := v.(*entity.Session)
	if session.IsExpired() {
		s.cache.Delete(ctx, sessionKey(id))
		return nil, apperror.ErrSessionExpired
	}
	return session, nil
}

func (s *sessionStore) Delete(ctx context.Context, id string) error {
	s.cache.Delete(ctx, sessionKey(id))
	return nil
}
