package store

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vvka-141/kvload/internal/retry"
	"github.com/vvka-141/kvload/pkg/kvload"
)

type options struct {
	executor *retry.Executor
}

// Option customizes Open.
type Option func(*options)

// WithExecutor replaces the default retry executor used while connecting.
func WithExecutor(e *retry.Executor) Option {
	return func(o *options) {
		o.executor = e
	}
}

// Open connects to the store described by cfg.
// Connection failures wrap kvload.ErrConnectionFailed; unknown schemes wrap
// kvload.ErrUnsupportedStore.
func Open(ctx context.Context, cfg kvload.StoreConfig, logger kvload.Logger, opts ...Option) (kvload.Store, error) {
	if logger == nil {
		panic("logger cannot be nil")
	}

	o := options{executor: retry.NewDefaultExecutor()}
	for _, opt := range opts {
		opt(&o)
	}
	executor := o.executor.WithOnRetry(func(attempt int, err error, delay time.Duration) {
		logger.Info("Store not reachable yet (attempt %d), retrying in %s: %v", attempt+1, delay.Round(time.Millisecond), err)
	})

	scheme, err := Scheme(cfg.URL)
	if err != nil {
		return nil, err
	}

	logger.Verbose("Connecting to %s", Redact(cfg.URL))

	switch scheme {
	case "redis", "rediss", "unix":
		return openRedis(ctx, cfg.URL, executor)
	case "postgres", "postgresql":
		table := cfg.Table
		if table == "" {
			table = kvload.DefaultTable
		}
		return openPostgres(ctx, cfg.URL, table, executor, logger)
	default:
		return nil, fmt.Errorf("scheme %q in %s (want redis, rediss, unix, postgres or postgresql): %w",
			scheme, Redact(cfg.URL), kvload.ErrUnsupportedStore)
	}
}

// Scheme returns the lower-cased scheme of a store URL.
func Scheme(rawURL string) (string, error) {
	if rawURL == "" {
		return "", fmt.Errorf("store URL is empty: %w", kvload.ErrInvalidConfig)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid store URL: %w", kvload.ErrInvalidConfig)
	}
	if u.Scheme == "" {
		return "", fmt.Errorf("store URL %q has no scheme (e.g. redis://localhost:6379/0): %w",
			Redact(rawURL), kvload.ErrInvalidConfig)
	}
	return strings.ToLower(u.Scheme), nil
}

// Redact hides the password of a store URL so it can be logged or printed.
func Redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<invalid store URL>"
	}
	return u.Redacted()
}

// BuildRedisURL assembles a redis:// URL from granular settings.
// Empty host and zero port fall back to the kvload defaults.
func BuildRedisURL(host string, port, db int) string {
	if host == "" {
		host = kvload.DefaultRedisHost
	}
	if port == 0 {
		port = kvload.DefaultRedisPort
	}
	u := url.URL{
		Scheme: "redis",
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
		Path:   "/" + strconv.Itoa(db),
	}
	return u.String()
}

// wrapConnectionError adds actionable guidance to a failed connection attempt.
func wrapConnectionError(err error, backend, addr string) error {
	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`%w: connection refused to %s %s

Possible causes:
  - %s is not running
  - Wrong host or port
  - Firewall blocking the connection

Original error: %w`, kvload.ErrConnectionFailed, backend, addr, backend, err)

	case strings.Contains(errStr, "no such host"):
		return fmt.Errorf(`%w: cannot resolve host of %s

Possible causes:
  - Hostname is misspelled
  - DNS is not configured or reachable

Original error: %w`, kvload.ErrConnectionFailed, addr, err)

	case strings.Contains(errStr, "noauth") || strings.Contains(errStr, "wrongpass") ||
		strings.Contains(errStr, "invalid password") || strings.Contains(errStr, "password authentication failed"):
		return fmt.Errorf(`%w: authentication failed for %s %s

Possible causes:
  - Wrong or missing password (check the store URL or $REDIS_PASSWORD)
  - Wrong username

Original error: %w`, kvload.ErrConnectionFailed, backend, addr, err)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		return fmt.Errorf(`%w: connection timed out to %s %s

Possible causes:
  - Server is overloaded or unresponsive
  - Firewall silently dropping packets
  - Wrong host/port (server not listening)

Original error: %w`, kvload.ErrConnectionFailed, backend, addr, err)

	default:
		return fmt.Errorf("%w: %s %s: %w", kvload.ErrConnectionFailed, backend, addr, err)
	}
}
