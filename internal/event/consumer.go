package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	pkgkafka "github.com/ibrahimsohofi/droguerie/pkg/kafka"
)

// Kafka topics consumed by the catalog service.
const TopicProductChanged = "droguerie.catalog.product_changed"

// CatalogService defines the interface required by the event consumer.
type CatalogService interface {
	InvalidateCache(ctx context.Context) error
}

// ProductChangedData is the expected payload of a catalog.product_changed
// event, emitted by the admin console whenever product fields are edited.
type ProductChangedData struct {
	ProductID string `json:"product_id"`
	ChangedBy string `json:"changed_by,omitempty"`
}

// Consumer processes incoming Kafka events for the catalog service.
type Consumer struct {
	logger  *slog.Logger
	service CatalogService
}

// NewConsumer creates a new event consumer for the catalog service.
func NewConsumer(service CatalogService, logger *slog.Logger) *Consumer {
	return &Consumer{
		service: service,
		logger:  logger,
	}
}

// HandleProductChanged processes catalog.product_changed events by dropping
// cached query results, so the next storefront query sees the edit.
func (c *Consumer) HandleProductChanged(ctx context.Context, event *pkgkafka.Event) error {
	var data ProductChangedData
	if err := json.Unmarshal(event.Data, &data); err != nil {
		return fmt.Errorf("unmarshal product_changed data: %w", err)
	}

	c.logger.InfoContext(ctx, "processing product_changed event",
		slog.String("product_id", data.ProductID),
	)

	if err := c.service.InvalidateCache(ctx); err != nil {
		return fmt.Errorf("invalidate cache for product %s: %w", data.ProductID, err)
	}

	return nil
}
