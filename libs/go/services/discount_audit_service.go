package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ledgerline/ledgerline-api/libs/go/db"
	"github.com/ledgerline/ledgerline-api/libs/go/helpers"
	"github.com/ledgerline/ledgerline-api/libs/go/types/business"
)

// DiscountAuditService writes the discount audit trail
type DiscountAuditService struct {
	queries db.Querier
}

// NewDiscountAuditService creates a new audit service
func NewDiscountAuditService(queries db.Querier) *DiscountAuditService {
	return &DiscountAuditService{queries: queries}
}

// Record stores one audit entry
func (s *DiscountAuditService) Record(ctx context.Context, entry business.AuditEntry) error {
	details := []byte("{}")
	if entry.Details != nil {
		b, err := json.Marshal(entry.Details)
		if err != nil {
			return fmt.Errorf("failed to encode audit details: %w", err)
		}
		details = b
	}

	_, err := s.queries.CreateDiscountAuditEntry(ctx, db.CreateDiscountAuditEntryParams{
		WorkspaceID: entry.WorkspaceID,
		EntityType:  entry.EntityType,
		EntityID:    entry.EntityID,
		Action:      entry.Action,
		ActorID:     helpers.UUIDPtrToNullableUUID(entry.ActorID),
		Details:     details,
	})
	if err != nil {
		return fmt.Errorf("failed to write audit entry: %w", err)
	}
	return nil
}
