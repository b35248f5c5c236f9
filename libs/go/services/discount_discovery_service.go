package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ledgerline/ledgerline-api/libs/go/interfaces"
	"github.com/ledgerline/ledgerline-api/libs/go/logger"
	"github.com/ledgerline/ledgerline-api/libs/go/types/business"
	"go.uber.org/zap"
)

// DiscountDiscoveryService fans a context out to every rule source and merges
// their candidates
type DiscountDiscoveryService struct {
	sources []interfaces.RuleSource
	logger  *zap.Logger
}

// NewDiscountDiscoveryService creates a discovery service over sources, which
// are consulted in the given order
func NewDiscountDiscoveryService(sources ...interfaces.RuleSource) *DiscountDiscoveryService {
	return &DiscountDiscoveryService{
		sources: sources,
		logger:  logger.Log,
	}
}

// DiscoverDiscounts returns every applicable offer in source order. A rule
// reported by more than one source is kept once, at its first position, and
// offers worth nothing are dropped.
func (s *DiscountDiscoveryService) DiscoverDiscounts(ctx context.Context, dctx *business.DiscountContext) ([]business.DiscountOffer, error) {
	seen := make(map[uuid.UUID]bool)
	offers := make([]business.DiscountOffer, 0)

	for _, source := range s.sources {
		candidates, err := source.FindCandidates(ctx, dctx)
		if err != nil {
			s.logger.Error("Rule source failed",
				zap.String("source", source.Name()),
				zap.String("workspace_id", dctx.WorkspaceID().String()),
				zap.Error(err))
			return nil, fmt.Errorf("%s source: %w", source.Name(), err)
		}
		for _, o := range candidates {
			if seen[o.RuleID] {
				continue
			}
			seen[o.RuleID] = true
			if !o.Amount.IsPositive() {
				continue
			}
			offers = append(offers, o)
		}
	}

	s.logger.Debug("Discovered discounts",
		zap.String("workspace_id", dctx.WorkspaceID().String()),
		zap.Int("offers", len(offers)))

	return offers, nil
}
