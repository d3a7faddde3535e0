// Package database provides SQLite connection management and schema
// migrations for the NoLongerEvil frontend.
//
// The database file is shared with the vendor server: this process opens a
// single pooled connection (WAL mode, busy timeout) rather than opening and
// closing a connection per operation, and its migrations create the vendor
// schema only when it does not already exist.
package database
