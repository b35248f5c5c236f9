package constants

// Common string constants used throughout the codebase
const (
	// Log levels
	ErrorLevel = "error"

	// Environments
	ProdEnvironment  = "prod"
	DevEnvironment   = "dev"
	LocalEnvironment = "local"

	// Service name stamped on structured logs
	ServiceName = "ledgerline-api"

	// Request headers
	WorkspaceIDHeader   = "X-Workspace-ID"
	ActorIDHeader       = "X-User-ID"
	CorrelationIDHeader = "X-Correlation-ID"
	APIKeyHeader        = "X-API-Key"
)
