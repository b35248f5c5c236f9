package services

import (
	"context"

	"github.com/ledgerline/ledgerline-api/libs/go/logger"
	"github.com/ledgerline/ledgerline-api/libs/go/types/business"
	"go.uber.org/zap"
)

// LoggingEventPublisher writes discount events to the log. It is used when no
// accounting queue is configured.
type LoggingEventPublisher struct {
	logger *zap.Logger
}

func NewLoggingEventPublisher() *LoggingEventPublisher {
	return &LoggingEventPublisher{logger: logger.Log}
}

func (p *LoggingEventPublisher) Publish(ctx context.Context, event business.DiscountEvent) error {
	p.logger.Info("Discount event",
		zap.String("event_id", event.EventID.String()),
		zap.String("event_type", event.EventType),
		zap.String("workspace_id", event.WorkspaceID.String()),
		zap.String("allocation_id", event.AllocationID.String()),
		zap.String("transaction_type", event.TransactionType),
		zap.String("transaction_id", event.TransactionID),
		zap.String("total_discount", event.TotalDiscount.String()),
		zap.String("currency", event.Currency))
	return nil
}
