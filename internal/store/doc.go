// Package store provides the TodoStore implementations.
//
// Memory is a mutex-guarded in-memory store for single-instance use;
// SQLite persists items to a local database file via modernc.org/sqlite.
// Both enforce the same contract: unique never-reused ids, non-blank
// titles, list ordering by creation time.
package store
