package handlers

import (
	"github.com/ledgerline/ledgerline-api/libs/go/interfaces"
	"go.uber.org/zap"
)

// HandlerFactory creates handlers with proper dependency injection
type HandlerFactory struct {
	// Common services
	commonServices *CommonServices

	// Services
	discountEngine    interfaces.DiscountEngine
	earlyPayment      interfaces.EarlyPaymentService
	ruleService       interfaces.DiscountRuleService
	approvalService   interfaces.DiscountApprovalService
	allocationService interfaces.DiscountAllocationService
	settingsService   interfaces.DiscountSettingsService

	// Logger
	logger *zap.Logger
}

// HandlerFactoryConfig contains all configuration for the handler factory
type HandlerFactoryConfig struct {
	// Services - pass concrete implementations that satisfy the interfaces
	DiscountEngine    interfaces.DiscountEngine
	EarlyPayment      interfaces.EarlyPaymentService
	RuleService       interfaces.DiscountRuleService
	ApprovalService   interfaces.DiscountApprovalService
	AllocationService interfaces.DiscountAllocationService
	SettingsService   interfaces.DiscountSettingsService
	Currency          interfaces.CurrencyPrecisionResolver

	// Logger
	Logger *zap.Logger
}

// NewHandlerFactory creates a new handler factory with all dependencies
func NewHandlerFactory(config HandlerFactoryConfig) *HandlerFactory {
	if config.Logger == nil {
		config.Logger = zap.L()
	}

	commonServices := NewCommonServices(CommonServicesConfig{
		Currency: config.Currency,
		Logger:   config.Logger,
	})

	return &HandlerFactory{
		commonServices:    commonServices,
		discountEngine:    config.DiscountEngine,
		earlyPayment:      config.EarlyPayment,
		ruleService:       config.RuleService,
		approvalService:   config.ApprovalService,
		allocationService: config.AllocationService,
		settingsService:   config.SettingsService,
		logger:            config.Logger,
	}
}

// GetCommonServices returns the common services
func (f *HandlerFactory) GetCommonServices() *CommonServices {
	return f.commonServices
}

// NewDiscountHandler creates a discount handler
func (f *HandlerFactory) NewDiscountHandler() *DiscountHandler {
	return NewDiscountHandler(
		f.commonServices,
		f.discountEngine,
		f.earlyPayment,
		f.logger.Named("discounts"),
	)
}

// NewDiscountRuleHandler creates a discount rule handler
func (f *HandlerFactory) NewDiscountRuleHandler() *DiscountRuleHandler {
	return NewDiscountRuleHandler(f.commonServices, f.ruleService, f.logger.Named("discount_rules"))
}

// NewDiscountApprovalHandler creates a discount approval handler
func (f *HandlerFactory) NewDiscountApprovalHandler() *DiscountApprovalHandler {
	return NewDiscountApprovalHandler(f.commonServices, f.approvalService, f.logger.Named("discount_approvals"))
}

// NewDiscountAllocationHandler creates a discount allocation handler
func (f *HandlerFactory) NewDiscountAllocationHandler() *DiscountAllocationHandler {
	return NewDiscountAllocationHandler(f.commonServices, f.allocationService, f.logger.Named("discount_allocations"))
}

// NewDiscountSettingsHandler creates a discount settings handler
func (f *HandlerFactory) NewDiscountSettingsHandler() *DiscountSettingsHandler {
	return NewDiscountSettingsHandler(f.commonServices, f.settingsService, f.logger.Named("discount_settings"))
}

// NewHealthHandler creates a health handler
func (f *HandlerFactory) NewHealthHandler() *HealthHandler {
	return NewHealthHandler()
}
