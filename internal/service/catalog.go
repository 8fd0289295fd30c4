// Package service implements the business logic for catalog and inventory
// operations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ibrahimsohofi/droguerie/internal/catalog"
	"github.com/ibrahimsohofi/droguerie/internal/domain"
	"github.com/ibrahimsohofi/droguerie/internal/repository"
)

var (
	queriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_queries_total",
			Help: "Total number of catalog queries by cache outcome.",
		},
		[]string{"cache"},
	)
	queryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_query_duration_seconds",
			Help:    "Duration of uncached catalog query evaluation.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// ResultCache caches query results between catalog writes.
type ResultCache interface {
	Get(ctx context.Context, q *domain.Query) (*domain.QueryResult, bool)
	Set(ctx context.Context, q *domain.Query, result *domain.QueryResult) error
	Invalidate(ctx context.Context) error
}

// CatalogService implements the storefront read path.
type CatalogService struct {
	repo   repository.ProductRepository
	cache  ResultCache
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo repository.ProductRepository, cache ResultCache, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// Search evaluates one catalog query against the current product snapshot.
// Malformed query fields are degraded, never rejected; results are cached
// until the next catalog write.
func (s *CatalogService) Search(ctx context.Context, q *domain.Query) (*domain.QueryResult, error) {
	if result, ok := s.cache.Get(ctx, q); ok {
		queriesTotal.WithLabelValues("hit").Inc()
		return result, nil
	}
	queriesTotal.WithLabelValues("miss").Inc()

	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	start := time.Now()
	result := catalog.RunQuery(deref(products), q)
	queryDuration.Observe(time.Since(start).Seconds())

	if err := s.cache.Set(ctx, q, result); err != nil {
		s.logger.WarnContext(ctx, "failed to cache query result",
			slog.String("error", err.Error()),
		)
	}

	s.logger.DebugContext(ctx, "query executed",
		slog.String("term", q.Term),
		slog.String("locale", q.Locale),
		slog.Int("matched", result.TotalMatched),
	)

	return result, nil
}

// Facets returns the filterable dimensions of the full catalog.
func (s *CatalogService) Facets(ctx context.Context) (*domain.Facets, error) {
	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("facets: %w", err)
	}

	facets := catalog.ExtractFacets(deref(products))
	return &facets, nil
}

// GetProduct returns a single product by id.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

// InvalidateCache drops all cached query results. Called after catalog
// writes, locally or via the product_changed event.
func (s *CatalogService) InvalidateCache(ctx context.Context) error {
	if err := s.cache.Invalidate(ctx); err != nil {
		return fmt.Errorf("invalidate cache: %w", err)
	}
	return nil
}

func deref(products []*domain.Product) []domain.Product {
	out := make([]domain.Product, len(products))
	for i, p := range products {
		out[i] = *p
	}
	return out
}
