package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/ledgerline/ledgerline-api/libs/go/db"
	"github.com/ledgerline/ledgerline-api/libs/go/helpers"
	"github.com/ledgerline/ledgerline-api/libs/go/logger"
	"github.com/ledgerline/ledgerline-api/libs/go/types/business"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CurrencyService resolves minor-unit precision for ISO 4217 currencies.
// Precision rarely changes, so lookups are cached for the process lifetime.
type CurrencyService struct {
	queries db.Querier
	logger  *zap.Logger

	mu     sync.RWMutex
	places map[string]int32
}

// NewCurrencyService creates a new currency service
func NewCurrencyService(queries db.Querier) *CurrencyService {
	return &CurrencyService{
		queries: queries,
		logger:  logger.Log,
		places:  make(map[string]int32),
	}
}

// DecimalPlaces returns how many minor-unit digits the currency uses
func (s *CurrencyService) DecimalPlaces(ctx context.Context, currency string) (int32, error) {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if len(code) != 3 {
		return 0, business.NewValidationError("currency", "must be a 3-letter ISO 4217 code")
	}

	s.mu.RLock()
	places, ok := s.places[code]
	s.mu.RUnlock()
	if ok {
		return places, nil
	}

	places, err := s.queries.GetCurrencyDecimalPlaces(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, business.NewValidationError("currency", fmt.Sprintf("unsupported currency %s", code))
		}
		s.logger.Error("Failed to resolve currency precision",
			zap.String("currency", code),
			zap.Error(err))
		return 0, fmt.Errorf("failed to get currency: %w", err)
	}

	s.mu.Lock()
	s.places[code] = places
	s.mu.Unlock()

	return places, nil
}

// FormatAmount renders an amount with the currency's precision and code
func (s *CurrencyService) FormatAmount(ctx context.Context, amount decimal.Decimal, currency string) (string, error) {
	places, err := s.DecimalPlaces(ctx, currency)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s", helpers.FormatAmount(amount, places), strings.ToUpper(currency)), nil
}
