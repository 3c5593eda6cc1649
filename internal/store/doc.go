// Package store opens the key-value store a load writes into.
//
// The backend is chosen from the store URL scheme:
//
//	redis://, rediss://, unix://   Redis or KeyDB (SET key value, no expiry)
//	postgres://, postgresql://     a key/value table in PostgreSQL (upsert)
//
// Open pings the store through a retry.Executor so a store that is still
// starting up does not fail the load. Writes are not retried.
package store
