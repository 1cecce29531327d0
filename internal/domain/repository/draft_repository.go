package repository

import (
	"context"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/invoice"
)

// DraftRepository stores invoice drafts in memory between requests
type DraftRepository interface {
	Save(ctx context.Context, draft *invoice.Draft) error
	Get(ctx context.Context, id string) (*invoice.Draft, error)
	Delete(ctx context.Context, id string) error
	ListBySession(ctx context.Context, sessionID string) ([]*invoice.Draft, error)
}
