package logger

// Standard field names for consistent structured logging across Causeway.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Components
	FieldComponent = "component"

	// Migration identity
	FieldMigration = "migration"
	FieldScript    = "script"
	FieldHash      = "hash"
	FieldSeed      = "seed"
	FieldStrategy  = "strategy"

	// Operations
	FieldOperation = "operation"
	FieldOrder     = "order"

	// Timing
	FieldDurationMS = "duration_ms"
	FieldAppliedAt  = "applied_at"

	// Errors
	FieldError = "error"

	// Counts
	FieldCount        = "count"
	FieldPendingCount = "pending_count"
	FieldAppliedCount = "applied_count"

	// Files and paths
	FieldFile = "file"
	FieldPath = "path"

	// Database
	FieldDatabase = "database"
)
