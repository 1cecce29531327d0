package repository

import (
	"context"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves an idempotency key by its key string and session
	GetByKey(ctx context.Context, key, sessionID string) (*entity.IdempotencyKey, error)
	// Create stores a new idempotency key
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
}
