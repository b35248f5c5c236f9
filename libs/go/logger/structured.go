package logger

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogComponent represents different system components for filtering
type LogComponent string

const (
	ComponentAPI        LogComponent = "api"
	ComponentMiddleware LogComponent = "middleware"
	ComponentDiscount   LogComponent = "discount"
	ComponentApproval   LogComponent = "approval"
	ComponentAllocation LogComponent = "allocation"
	ComponentWorker     LogComponent = "worker"
)

// LogContext holds structured context information for logs
type LogContext struct {
	WorkspaceID     string
	ActorID         string
	CorrelationID   string
	TransactionType string
	TransactionID   string
	Operation       string
	Fields          map[string]interface{}
}

// StructuredLogger carries request and transaction identifiers so every
// line about one discount decision can be correlated.
type StructuredLogger struct {
	logger    *zap.Logger
	component LogComponent
	context   LogContext
}

// NewStructuredLogger creates a new structured logger for a specific component
func NewStructuredLogger(component LogComponent) *StructuredLogger {
	base := Log
	if base == nil {
		base = zap.NewNop()
	}
	return &StructuredLogger{
		logger:    base,
		component: component,
		context:   LogContext{Fields: make(map[string]interface{})},
	}
}

// WithContext replaces the log context. The component is kept.
func (sl *StructuredLogger) WithContext(ctx LogContext) *StructuredLogger {
	out := &StructuredLogger{logger: sl.logger, component: sl.component, context: ctx}
	if out.context.Fields == nil {
		out.context.Fields = make(map[string]interface{})
	}
	return out
}

// WithField adds a field to the log context
func (sl *StructuredLogger) WithField(key string, value interface{}) *StructuredLogger {
	out := sl.clone()
	out.context.Fields[key] = value
	return out
}

func (sl *StructuredLogger) WithWorkspaceID(workspaceID string) *StructuredLogger {
	out := sl.clone()
	out.context.WorkspaceID = workspaceID
	return out
}

func (sl *StructuredLogger) WithActorID(actorID string) *StructuredLogger {
	out := sl.clone()
	out.context.ActorID = actorID
	return out
}

func (sl *StructuredLogger) WithCorrelationID(correlationID string) *StructuredLogger {
	out := sl.clone()
	out.context.CorrelationID = correlationID
	return out
}

// WithTransaction tags the logger with the invoice or POS sale being discounted
func (sl *StructuredLogger) WithTransaction(txType, txID string) *StructuredLogger {
	out := sl.clone()
	out.context.TransactionType = txType
	out.context.TransactionID = txID
	return out
}

func (sl *StructuredLogger) WithOperation(operation string) *StructuredLogger {
	out := sl.clone()
	out.context.Operation = operation
	return out
}

func (sl *StructuredLogger) clone() *StructuredLogger {
	fields := make(map[string]interface{}, len(sl.context.Fields))
	for k, v := range sl.context.Fields {
		fields[k] = v
	}
	ctx := sl.context
	ctx.Fields = fields
	return &StructuredLogger{logger: sl.logger, component: sl.component, context: ctx}
}

// Fields renders the context as zap fields
func (sl *StructuredLogger) Fields() []zapcore.Field {
	fields := []zapcore.Field{zap.String("component", string(sl.component))}

	optional := []struct{ key, value string }{
		{"workspace_id", sl.context.WorkspaceID},
		{"actor_id", sl.context.ActorID},
		{"correlation_id", sl.context.CorrelationID},
		{"transaction_type", sl.context.TransactionType},
		{"transaction_id", sl.context.TransactionID},
		{"operation", sl.context.Operation},
	}
	for _, f := range optional {
		if f.value != "" {
			fields = append(fields, zap.String(f.key, f.value))
		}
	}

	for key, value := range sl.context.Fields {
		fields = append(fields, zap.Any(key, value))
	}
	return fields
}

// Zap returns a plain zap logger carrying the structured context
func (sl *StructuredLogger) Zap() *zap.Logger {
	return sl.logger.With(sl.Fields()...)
}

func (sl *StructuredLogger) Debug(msg string) {
	sl.logger.Debug(msg, sl.Fields()...)
}

func (sl *StructuredLogger) Info(msg string) {
	sl.logger.Info(msg, sl.Fields()...)
}

func (sl *StructuredLogger) Warn(msg string) {
	sl.logger.Warn(msg, sl.Fields()...)
}

// Error logs msg at error level, attaching err when non-nil
func (sl *StructuredLogger) Error(msg string, err error) {
	fields := sl.Fields()
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	sl.logger.Error(msg, fields...)
}

// LogOperation logs the outcome and duration of fn
func (sl *StructuredLogger) LogOperation(operation string, fn func() error) error {
	start := time.Now()
	opLogger := sl.WithOperation(operation)

	err := fn()
	opLogger = opLogger.WithField("duration", time.Since(start))
	if err != nil {
		opLogger.Error("Operation failed", err)
	} else {
		opLogger.Info("Operation completed")
	}
	return err
}

// LogHTTPRequest logs a completed HTTP request
func (sl *StructuredLogger) LogHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	l := sl.WithField("http_method", method).
		WithField("http_path", path).
		WithField("http_status", statusCode).
		WithField("duration", duration)
	switch {
	case statusCode >= 500:
		l.Error("HTTP request failed", nil)
	case statusCode >= 400:
		l.Warn("HTTP request rejected")
	default:
		l.Info("HTTP request processed")
	}
}
