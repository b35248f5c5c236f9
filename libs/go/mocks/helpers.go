package mocks

import (
	"testing"

	"go.uber.org/mock/gomock"
)

// NewMockQuerierForTest creates a new mock Querier for testing
func NewMockQuerierForTest(t *testing.T) *MockQuerier {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockQuerier(ctrl)
}

// NewMockEventPublisherForTest creates a new mock EventPublisher for testing
func NewMockEventPublisherForTest(t *testing.T) *MockEventPublisher {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockEventPublisher(ctrl)
}

// NewMockAuditLoggerForTest creates a new mock AuditLogger for testing
func NewMockAuditLoggerForTest(t *testing.T) *MockAuditLogger {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockAuditLogger(ctrl)
}
