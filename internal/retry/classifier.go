package retry

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
)

// Redis reply prefixes that signal a temporary server condition.
var transientRedisPrefixes = []string{
	"LOADING",     // dataset still loading after restart
	"BUSY",        // script running
	"TRYAGAIN",    // cluster slot migration
	"CLUSTERDOWN", // cluster not serving
	"MASTERDOWN",  // replica lost its primary
	"READONLY",    // failover in progress
}

// PostgreSQL SQLSTATE classes that signal a temporary condition.
// See: https://www.postgresql.org/docs/current/errcodes-appendix.html
var transientPgClasses = []string{
	"08", // connection exception
	"53", // insufficient resources
	"57", // operator intervention
}

const (
	pgCodeSerializationFailure = "40001"
	pgCodeDeadlockDetected     = "40P01"
	pgCodeLockNotAvailable     = "55P03"
)

// transientPatterns match error text from drivers that do not expose typed errors.
var transientPatterns = []string{
	"connection refused",
	"connection reset",
	"connection timeout",
	"network is unreachable",
	"i/o timeout",
	"broken pipe",
	"server closed the connection",
	"unexpected eof",
	"too many connections",
}

// StoreErrorClassifier implements kvload.ErrorClassifier for the Redis and
// PostgreSQL backends.
type StoreErrorClassifier struct{}

// NewStoreErrorClassifier creates a new store error classifier.
func NewStoreErrorClassifier() *StoreErrorClassifier {
	return &StoreErrorClassifier{}
}

// IsTransient determines if an error is temporary and retryable.
func (c *StoreErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}

	var redisErr redis.Error
	if errors.As(err, &redisErr) {
		return isTransientRedisReply(redisErr.Error())
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return isTransientPgCode(pgErr.Code)
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsTemporary || dnsErr.IsTimeout
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && isTransientOpError(opErr) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range transientPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

func isTransientRedisReply(msg string) bool {
	for _, prefix := range transientRedisPrefixes {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}

func isTransientPgCode(code string) bool {
	for _, class := range transientPgClasses {
		if strings.HasPrefix(code, class) {
			return true
		}
	}
	switch code {
	case pgCodeSerializationFailure, pgCodeDeadlockDetected, pgCodeLockNotAvailable:
		return true
	}
	return false
}

func isTransientOpError(opErr *net.OpError) bool {
	if opErr.Timeout() {
		return true
	}
	return errors.Is(opErr.Err, syscall.ECONNREFUSED) ||
		errors.Is(opErr.Err, syscall.ECONNRESET) ||
		errors.Is(opErr.Err, syscall.ENETUNREACH) ||
		errors.Is(opErr.Err, syscall.EHOSTUNREACH)
}
