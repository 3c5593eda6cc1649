package testinfra

import (
	"context"
	"os"
	"sync"
	"testing"
)

var (
	redisOnce sync.Once
	redisURL  string
	redisErr  error

	postgresOnce sync.Once
	postgresConn string
	postgresErr  error
)

func getOrStartRedis() (string, error) {
	redisOnce.Do(func() {
		ctr, err := StartRedis(context.Background())
		if err != nil {
			redisErr = err
			return
		}
		redisURL = ctr.URL
	})
	return redisURL, redisErr
}

func getOrStartPostgres() (string, error) {
	postgresOnce.Do(func() {
		ctr, err := StartPostgres(context.Background())
		if err != nil {
			postgresErr = err
			return
		}
		postgresConn = ctr.ConnString
	})
	return postgresConn, postgresErr
}

// SkipIfShort skips the test if running in short mode (-short flag).
func SkipIfShort(t testing.TB) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireRedis returns the URL of a Redis server for integration tests.
// Priority: KVLOAD_TEST_REDIS env var > auto-started testcontainer > skip test.
func RequireRedis(t testing.TB) string {
	t.Helper()

	SkipIfShort(t)
	if url := os.Getenv("KVLOAD_TEST_REDIS"); url != "" {
		return url
	}

	url, err := getOrStartRedis()
	if err != nil {
		t.Skipf("KVLOAD_TEST_REDIS not set and Docker unavailable: %v", err)
	}
	return url
}

// RequirePostgres returns a PostgreSQL connection string for integration tests.
// Priority: KVLOAD_TEST_PG env var > auto-started testcontainer > skip test.
func RequirePostgres(t testing.TB) string {
	t.Helper()

	SkipIfShort(t)
	if connString := os.Getenv("KVLOAD_TEST_PG"); connString != "" {
		return connString
	}

	connString, err := getOrStartPostgres()
	if err != nil {
		t.Skipf("KVLOAD_TEST_PG not set and Docker unavailable: %v", err)
	}
	return connString
}
