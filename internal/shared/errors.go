package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig  = fmt.Errorf("invalid configuration")
	ErrUnknownDialect = fmt.Errorf("unknown database dialect")

	// Startup errors
	ErrSchemaMismatch  = fmt.Errorf("schema mismatch")
	ErrMigrationFailed = fmt.Errorf("migration failed")

	// Repository errors
	ErrNotFound      = fmt.Errorf("not found")
	ErrSerialization = fmt.Errorf("serialization failed")
	ErrInvalidRole   = fmt.Errorf("invalid member role")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
