// Package testinfra starts the Redis and PostgreSQL servers used by
// integration tests. Containers are started once per test binary and left for
// the testcontainers reaper to remove.
package testinfra
