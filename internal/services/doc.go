// Package services implements the load workflow.
//
// LoadRecords is the loop itself: decode a record, derive its key, re-encode
// it and write it, in file order, stopping at the first failure. LoadService
// wraps it with the lifecycle of one load: validate the configuration, open
// the input file, connect to the store, and release both when done.
package services
