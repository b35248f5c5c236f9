package testutil

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/ledgerline/ledgerline-api/libs/go/db"
	"github.com/ledgerline/ledgerline-api/libs/go/mocks"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

// MockDatabase provides utilities for database mocking in unit tests
type MockDatabase struct {
	Ctrl    *gomock.Controller
	Querier *mocks.MockQuerier
	Tx      *TxRunner
	t       *testing.T
}

// NewMockDatabase creates a new mock database for unit testing
func NewMockDatabase(t *testing.T) *MockDatabase {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	q := mocks.NewMockQuerier(ctrl)
	return &MockDatabase{
		Ctrl:    ctrl,
		Querier: q,
		Tx:      &TxRunner{Querier: q},
		t:       t,
	}
}

// TxRunner runs transaction bodies directly against a querier, one at a
// time. Calls counts how many transactions were started.
type TxRunner struct {
	Querier db.Querier
	Calls   int

	mu sync.Mutex
}

// RunInTransaction invokes fn with the wrapped querier
func (r *TxRunner) RunInTransaction(ctx context.Context, fn func(q db.Querier) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls++
	return fn(r.Querier)
}

// ExpectCurrency sets up the precision lookup for a currency
func (m *MockDatabase) ExpectCurrency(code string, places int32) {
	m.Querier.EXPECT().
		GetCurrencyDecimalPlaces(gomock.Any(), code).
		Return(places, nil).
		AnyTimes()
}

// ExpectCustomerSegment sets up the segment lookup for a customer
func (m *MockDatabase) ExpectCustomerSegment(workspaceID, customerID uuid.UUID, segment string) {
	m.Querier.EXPECT().
		GetCustomerSegment(gomock.Any(), db.GetCustomerSegmentParams{ID: customerID, WorkspaceID: workspaceID}).
		Return(segment, nil).
		AnyTimes()
}

// ExpectNoWorkspaceSettings makes the workspace fall back to the default policy
func (m *MockDatabase) ExpectNoWorkspaceSettings(workspaceID uuid.UUID) {
	m.Querier.EXPECT().
		GetWorkspaceDiscountSettings(gomock.Any(), workspaceID).
		Return(db.WorkspaceDiscountSetting{}, pgx.ErrNoRows).
		AnyTimes()
}

// ExpectNoRules makes the given source return no active rules
func (m *MockDatabase) ExpectNoRules(source string) {
	m.Querier.EXPECT().
		ListActiveDiscountRulesBySource(gomock.Any(), ruleSourceMatcher(source)).
		Return([]db.DiscountRule{}, nil).
		AnyTimes()
}

// ExpectAuditEntries accepts any number of audit writes
func (m *MockDatabase) ExpectAuditEntries() {
	m.Querier.EXPECT().
		CreateDiscountAuditEntry(gomock.Any(), gomock.Any()).
		Return(db.DiscountAuditLog{}, nil).
		AnyTimes()
}

// Dec parses a decimal literal, failing the test on bad input
func (m *MockDatabase) Dec(s string) decimal.Decimal {
	m.t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		m.t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

type sourceMatcher struct{ source string }

func ruleSourceMatcher(source string) gomock.Matcher {
	return sourceMatcher{source: source}
}

func (s sourceMatcher) Matches(x any) bool {
	p, ok := x.(db.ListActiveDiscountRulesBySourceParams)
	return ok && p.Source == s.source
}

func (s sourceMatcher) String() string {
	return "lists rules of source " + s.source
}
