package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/ledgerline/ledgerline-api/libs/go/interfaces"
	"github.com/ledgerline/ledgerline-api/libs/go/logger"
)

// DefaultMaxBatches bounds how many sweep batches one execution runs
const DefaultMaxBatches = 20

// ExpiryProcessor applies the workspace expiry action to stale pending approvals
type ExpiryProcessor struct {
	approvals  interfaces.DiscountApprovalService
	maxBatches int
	logger     *logger.StructuredLogger
}

// NewExpiryProcessor creates a new expiry processor. maxBatches <= 0 uses DefaultMaxBatches.
func NewExpiryProcessor(approvals interfaces.DiscountApprovalService, maxBatches int) *ExpiryProcessor {
	if maxBatches <= 0 {
		maxBatches = DefaultMaxBatches
	}
	return &ExpiryProcessor{
		approvals:  approvals,
		maxBatches: maxBatches,
		logger:     logger.NewStructuredLogger(logger.ComponentWorker).WithOperation("expire_stale_approvals"),
	}
}

// ProcessingResults holds the results of one sweep
type ProcessingResults struct {
	Batches  int
	Expired  int
	Duration time.Duration
}

// ProcessStaleApprovals sweeps batches until one expires nothing, the batch
// limit is reached or ctx is done
func (p *ExpiryProcessor) ProcessStaleApprovals(ctx context.Context) (*ProcessingResults, error) {
	start := time.Now()
	results := &ProcessingResults{}

	for results.Batches < p.maxBatches {
		if err := ctx.Err(); err != nil {
			results.Duration = time.Since(start)
			return results, fmt.Errorf("expiry sweep interrupted: %w", err)
		}

		expired, err := p.approvals.ExpireStaleApprovals(ctx)
		results.Batches++
		if err != nil {
			results.Duration = time.Since(start)
			return results, fmt.Errorf("failed to expire stale approvals: %w", err)
		}
		results.Expired += expired
		if expired == 0 {
			break
		}
	}

	results.Duration = time.Since(start)
	p.logger.
		WithField("batches", results.Batches).
		WithField("expired", results.Expired).
		WithField("duration_ms", results.Duration.Milliseconds()).
		Info("Approval expiry sweep completed")

	return results, nil
}
