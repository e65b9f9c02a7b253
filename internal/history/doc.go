// Package history persists one row per finished job in a local SQLite
// database. It is an audit trail only: recording failures never affect the
// job, and the ledger is disabled unless configured.
package history
