package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/invoice"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/repository"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

const defaultStockWorkers = 4

// StockFailure is a product whose stock write did not go through.
type StockFailure struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Error       string `json:"error"`
}

// StockSyncResult reports a best-effort stock pass.
type StockSyncResult struct {
	Updated []invoice.StockChange `json:"updated"`
	Failed  []StockFailure        `json:"failed,omitempty"`
}

// OK reports whether every write succeeded.
func (r *StockSyncResult) OK() bool {
	return r == nil || len(r.Failed) == 0
}

// Warning is the user-facing text for a partial stock pass, empty when OK.
func (r *StockSyncResult) Warning() string {
	if r.OK() {
		return ""
	}
	names := lo.Map(r.Failed, func(f StockFailure, _ int) string {
		if f.ProductName != "" {
			return f.ProductName
		}
		return f.ProductID
	})
	return fmt.Sprintf("Stock could not be updated for: %s", strings.Join(names, ", "))
}

// StockSyncer writes planned stock quantities back to the backend. Writes
// are independent: one failure never stops the others and nothing is retried.
type StockSyncer struct {
	productRepo repository.ProductRepository
	log         *zap.Logger
	workers     int
}

// NewStockSyncer creates a new stock syncer
func NewStockSyncer(productRepo repository.ProductRepository, log *zap.Logger) *StockSyncer {
	if log == nil {
		log = zap.NewNop()
	}
	return &StockSyncer{productRepo: productRepo, log: log, workers: defaultStockWorkers}
}

type stockOutcome struct {
	change invoice.StockChange
	err    error
}

// Apply performs one absolute stock write per change. Products listed in
// unknown were missing from the catalog and are reported as failed.
func (s *StockSyncer) Apply(ctx context.Context, changes []invoice.StockChange, unknown []string) *StockSyncResult {
	result := &StockSyncResult{Updated: []invoice.StockChange{}}
	for _, id := range unknown {
		result.Failed = append(result.Failed, StockFailure{ProductID: id, Error: "product not found in catalog"})
	}
	if len(changes) == 0 {
		return result
	}

	p := pool.NewWithResults[stockOutcome]().WithMaxGoroutines(s.workers)
	for _, change := range changes {
		change := change
		p.Go(func() stockOutcome {
			_, err := s.productRepo.SetStock(ctx, change.ProductID, change.Target)
			return stockOutcome{change: change, err: err}
		})
	}

	for _, out := range p.Wait() {
		if out.err != nil {
			s.log.Warn("stock sync failed",
				zap.String("product_id", out.change.ProductID),
				zap.Int("target", out.change.Target),
				zap.Error(out.err),
			)
			result.Failed = append(result.Failed, StockFailure{
				ProductID:   out.change.ProductID,
				ProductName: out.change.ProductName,
				Error:       out.err.Error(),
			})
			continue
		}
		result.Updated = append(result.Updated, out.change)
	}

	sort.Slice(result.Updated, func(i, j int) bool { return result.Updated[i].ProductID < result.Updated[j].ProductID })
	sort.Slice(result.Failed, func(i, j int) bool { return result.Failed[i].ProductID < result.Failed[j].ProductID })
	return result
}
