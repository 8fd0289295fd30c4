// Package inventory implements the bulk stock reconciler used by the admin
// console: it validates a batch of proposed quantity changes against the
// authoritative product collection and applies the valid ones.
package inventory

import (
	"time"

	"github.com/ibrahimsohofi/droguerie/internal/domain"
)

// Reconcile evaluates each stock change request exactly once, in submission
// order, against the given collection. Valid requests mutate the referenced
// product's quantity and updated-at timestamp; invalid ones are reported with
// a machine-readable reason and leave the product untouched. Outcomes are
// per request: one rejection never blocks the rest of the batch.
//
// A product id may appear at most once per batch. Only the first occurrence
// is considered; later occurrences are rejected as duplicates so that two
// conflicting writes in one call can never race each other.
//
// The caller owns the collection for the duration of the call; Reconcile
// performs no locking and must not be re-entered concurrently on overlapping
// collections.
func Reconcile(products []*domain.Product, requests []domain.StockChangeRequest) *domain.ReconciliationReport {
	byID := make(map[string]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	report := &domain.ReconciliationReport{
		Applied:  []domain.AppliedChange{},
		Rejected: []domain.RejectedChange{},
	}

	seen := make(map[string]bool, len(requests))
	now := time.Now().UTC()

	for _, req := range requests {
		if seen[req.ProductID] {
			report.Rejected = append(report.Rejected, domain.RejectedChange{
				ProductID: req.ProductID,
				Reason:    domain.RejectDuplicateInBatch,
			})
			continue
		}
		seen[req.ProductID] = true

		if req.ProposedQuantity < 0 {
			report.Rejected = append(report.Rejected, domain.RejectedChange{
				ProductID: req.ProductID,
				Reason:    domain.RejectNegativeQuantity,
			})
			continue
		}

		product, ok := byID[req.ProductID]
		if !ok {
			report.Rejected = append(report.Rejected, domain.RejectedChange{
				ProductID: req.ProductID,
				Reason:    domain.RejectUnknownProduct,
			})
			continue
		}

		old := product.StockQuantity
		product.StockQuantity = req.ProposedQuantity
		product.UpdatedAt = now

		report.Applied = append(report.Applied, domain.AppliedChange{
			ProductID:   product.ID,
			OldQuantity: old,
			NewQuantity: req.ProposedQuantity,
			NewStatus:   domain.Classify(req.ProposedQuantity, product.EffectiveThreshold()),
		})
	}

	return report
}
