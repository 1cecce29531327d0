package cache

import (
	"context"
	"time"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/enum"
	domainRepo "github.com/essamaboelmgd/sanabel-elkhair/internal/domain/repository"
)

type invoiceStatusCache struct {
	cache *InMemoryCache
	ttl   time.Duration
}

// NewInvoiceStatusCache remembers invoice statuses seen in list and get answers.
func NewInvoiceStatusCache(cache *InMemoryCache, ttl time.Duration) domainRepo.InvoiceStatusCache {
	return &invoiceStatusCache{cache: cache, ttl: ttl}
}

func statusKey(id string) string {
	return "invoice-status:" + id
}

func (c *invoiceStatusCache) Remember(invoices ...entity.Invoice) {
	for _, inv := range invoices {
		if inv.ID == "" || !inv.Status.IsValid() {
			continue
		}
		c.cache.Set(context.Background(), statusKey(inv.ID), inv.Status, c.ttl)
	}
}

func (c *invoiceStatusCache) Status(id string) (enum.InvoiceStatus, bool) {
	v, ok := c.cache.Get(context.Background(), statusKey(id))
	if !ok {
		return "", false
	}
	return v.(enum.InvoiceStatus), true
}

func (c *invoiceStatusCache) Forget(id string) {
	c.cache.Delete(context.Background(), statusKey(id))
}
