// Package event publishes and consumes the catalog's Kafka events.
package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ibrahimsohofi/droguerie/internal/domain"
	pkgkafka "github.com/ibrahimsohofi/droguerie/pkg/kafka"
)

// Kafka topics published by the catalog service.
const (
	TopicStockUpdated = "droguerie.inventory.stock_updated"
	TopicStockLow     = "droguerie.inventory.stock_low"
)

// Aggregate type constant.
const AggregateTypeProduct = "product"

// Source identifier for events originating from the catalog service.
const SourceCatalogService = "catalog-service"

// StockUpdatedData is the payload for an inventory.stock_updated event.
type StockUpdatedData struct {
	ProductID   string             `json:"product_id"`
	SKU         string             `json:"sku"`
	OldQuantity int                `json:"old_quantity"`
	NewQuantity int                `json:"new_quantity"`
	Status      domain.StockStatus `json:"status"`
}

// StockLowData is the payload for an inventory.stock_low event, emitted when
// a reconciliation leaves a product at or below its low-stock threshold.
type StockLowData struct {
	ProductID         string `json:"product_id"`
	SKU               string `json:"sku"`
	Quantity          int    `json:"quantity"`
	LowStockThreshold int    `json:"low_stock_threshold"`
}

// Producer publishes catalog domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the catalog service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishStockUpdated publishes an inventory.stock_updated event for one
// applied reconciliation change.
func (p *Producer) PublishStockUpdated(ctx context.Context, product *domain.Product, change domain.AppliedChange) error {
	data := StockUpdatedData{
		ProductID:   change.ProductID,
		SKU:         product.SKU,
		OldQuantity: change.OldQuantity,
		NewQuantity: change.NewQuantity,
		Status:      change.NewStatus,
	}

	event, err := pkgkafka.NewEvent(TopicStockUpdated, change.ProductID, AggregateTypeProduct, SourceCatalogService, data)
	if err != nil {
		return fmt.Errorf("create stock_updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicStockUpdated, event); err != nil {
		return fmt.Errorf("publish stock_updated event: %w", err)
	}

	return nil
}

// PublishStockLow publishes an inventory.stock_low event.
func (p *Producer) PublishStockLow(ctx context.Context, product *domain.Product) error {
	data := StockLowData{
		ProductID:         product.ID,
		SKU:               product.SKU,
		Quantity:          product.StockQuantity,
		LowStockThreshold: product.EffectiveThreshold(),
	}

	event, err := pkgkafka.NewEvent(TopicStockLow, product.ID, AggregateTypeProduct, SourceCatalogService, data)
	if err != nil {
		return fmt.Errorf("create stock_low event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicStockLow, event); err != nil {
		return fmt.Errorf("publish stock_low event: %w", err)
	}

	p.logger.InfoContext(ctx, "low stock reported",
		slog.String("product_id", product.ID),
		slog.String("sku", product.SKU),
		slog.Int("quantity", product.StockQuantity),
	)

	return nil
}
