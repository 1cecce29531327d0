package cache

import (
	"context"
	"sort"
	"time"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/invoice"
	domainRepo "github.com/essamaboelmgd/sanabel-elkhair/internal/domain/repository"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/apperror"
)

type draftStore struct {
	cache *InMemoryCache
	ttl   time.Duration
}

// NewDraftStore creates a draft store. Every save pushes the draft's expiry
// out by ttl, so abandoned drafts disappear on their own.
func NewDraftStore(cache *InMemoryCache, ttl time.Duration) domainRepo.DraftRepository {
	return &draftStore{cache: cache, ttl: ttl}
}

func draftKey(id string) string {
	return "draft:" + id
}

func (s *draftStore) Save(ctx context.Context, draft *invoice.Draft) error {
	s.cache.Set(ctx, draftKey(draft.ID), draft, s.ttl)
	return nil
}

func (s *draftStore) Get(ctx context.Context, id string) (*invoice.Draft, error) {
	v, ok := s.cache.Get(ctx, draftKey(id))
	if !ok {
		return nil, apperror.NewNotFoundError("Invoice draft")
	}
	return v.(*invoice.Draft), nil
}

func (s *draftStore) Delete(ctx context.Context, id string) error {
	s.cache.Delete(ctx, draftKey(id))
	return nil
}

// ListBySession returns the session's drafts, oldest first.
func (s *draftStore) ListBySession(ctx context.Context, sessionID string) ([]*invoice.Draft, error) {
	var drafts []*invoice.Draft
	for _, v := range s.cache.ByPrefix(ctx, "draft:") {
		d := v.(*invoice.Draft)
		if d.SessionID == sessionID {
			drafts = append(drafts, d)
		}
	}
	sort.Slice(drafts, func(i, j int) bool {
		return drafts[i].CreatedAt.Before(drafts[j].CreatedAt)
	})
	return drafts, nil
}
