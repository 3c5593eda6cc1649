package kvload

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Every record was loaded
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration, store URL or format
	ExitConnectionError = 11 // Failed to connect to the store
	ExitInputError      = 12 // Input file missing or unreadable
	ExitDecodeError     = 13 // Input stream malformed
	ExitKeyError        = 14 // Record without a usable key
	ExitStoreError      = 15 // Store rejected a write
)

const (
	// DefaultStoreURL is used when no store address is configured anywhere.
	DefaultStoreURL = "redis://localhost:6379/0"

	// DefaultRedisHost and DefaultRedisPort build the store URL from granular settings.
	DefaultRedisHost = "localhost"
	DefaultRedisPort = 6379

	// DefaultKeyField is the record field used as the store key.
	DefaultKeyField = "id"

	// DefaultTable is the key/value table used by the PostgreSQL backend.
	DefaultTable = "kv_store"

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 1 * time.Minute

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts.
	DefaultRetryMaxAttempts = 3
)
