package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apperrors "github.com/ibrahimsohofi/droguerie/pkg/errors"

	"github.com/ibrahimsohofi/droguerie/internal/domain"
	"github.com/ibrahimsohofi/droguerie/internal/inventory"
	"github.com/ibrahimsohofi/droguerie/internal/repository"
)

var reconcileOutcomes = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "inventory_reconcile_changes_total",
		Help: "Reconciliation outcomes by result (applied or a rejection reason).",
	},
	[]string{"outcome"},
)

// Publisher emits inventory domain events.
type Publisher interface {
	PublishStockUpdated(ctx context.Context, product *domain.Product, change domain.AppliedChange) error
	PublishStockLow(ctx context.Context, product *domain.Product) error
}

// Invalidator drops cached query results after a write.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// InventoryService implements the admin-side stock write path.
type InventoryService struct {
	repo     repository.ProductRepository
	producer Publisher
	cache    Invalidator
	logger   *slog.Logger
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(repo repository.ProductRepository, producer Publisher, cache Invalidator, logger *slog.Logger) *InventoryService {
	return &InventoryService{
		repo:     repo,
		producer: producer,
		cache:    cache,
		logger:   logger,
	}
}

// Reconcile applies a batch of proposed stock changes. Each change is
// accepted or rejected independently; the applied subset is persisted in one
// transaction and reported back alongside the rejections.
func (s *InventoryService) Reconcile(ctx context.Context, requests []domain.StockChangeRequest) (*domain.ReconciliationReport, error) {
	if len(requests) == 0 {
		return nil, apperrors.InvalidInput("changes list cannot be empty")
	}

	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("reconcile: %w", err)
	}

	byID := make(map[string]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	report := inventory.Reconcile(products, requests)

	if len(report.Applied) > 0 {
		updates := make([]repository.StockUpdate, 0, len(report.Applied))
		for _, change := range report.Applied {
			updates = append(updates, repository.StockUpdate{
				ProductID: change.ProductID,
				Quantity:  change.NewQuantity,
			})
		}

		if err := s.repo.UpdateStock(ctx, updates); err != nil {
			return nil, fmt.Errorf("persist reconciled stock: %w", err)
		}

		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.WarnContext(ctx, "failed to invalidate query cache after reconcile",
				slog.String("error", err.Error()),
			)
		}

		s.publishChanges(ctx, byID, report.Applied)
	}

	reconcileOutcomes.WithLabelValues("applied").Add(float64(len(report.Applied)))
	for _, rej := range report.Rejected {
		reconcileOutcomes.WithLabelValues(rej.Reason).Inc()
	}

	s.logger.InfoContext(ctx, "stock reconciled",
		slog.Int("requested", len(requests)),
		slog.Int("applied", len(report.Applied)),
		slog.Int("rejected", len(report.Rejected)),
	)

	return report, nil
}

// SetStock updates a single product's quantity, going through the same
// validation as a bulk reconciliation. A rejection surfaces as an error with
// the machine-readable reason as its code.
func (s *InventoryService) SetStock(ctx context.Context, productID string, quantity int) (*domain.AppliedChange, error) {
	report, err := s.Reconcile(ctx, []domain.StockChangeRequest{
		{ProductID: productID, ProposedQuantity: quantity},
	})
	if err != nil {
		return nil, err
	}

	if len(report.Rejected) > 0 {
		rej := report.Rejected[0]
		return nil, apperrors.Unprocessable(rej.Reason,
			fmt.Sprintf("stock change for product %s rejected: %s", rej.ProductID, rej.Reason))
	}

	change := report.Applied[0]
	return &change, nil
}

// LowStock returns every product that is not comfortably in stock, ordered
// by quantity ascending so the most urgent restocks come first.
func (s *InventoryService) LowStock(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}

	low := []domain.Product{}
	for _, p := range products {
		if p.StockStatus() != domain.StockStatusInStock {
			low = append(low, *p)
		}
	}

	sort.Slice(low, func(i, j int) bool {
		if low[i].StockQuantity != low[j].StockQuantity {
			return low[i].StockQuantity < low[j].StockQuantity
		}
		return low[i].ID < low[j].ID
	})

	return low, nil
}

func (s *InventoryService) publishChanges(ctx context.Context, byID map[string]*domain.Product, applied []domain.AppliedChange) {
	for _, change := range applied {
		product := byID[change.ProductID]

		if err := s.producer.PublishStockUpdated(ctx, product, change); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish stock_updated event",
				slog.String("product_id", change.ProductID),
				slog.String("error", err.Error()),
			)
		}

		if change.NewStatus != domain.StockStatusInStock {
			if err := s.producer.PublishStockLow(ctx, product); err != nil {
				s.logger.ErrorContext(ctx, "failed to publish stock_low event",
					slog.String("product_id", change.ProductID),
					slog.String("error", err.Error()),
				)
			}
		}
	}
}
