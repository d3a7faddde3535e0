// Package identity manages user rows in the vendor's users table.
//
// The service operates with a single configured default identity (the
// Home Assistant user), created at startup if absent. The identity is
// always passed as an explicit parameter so multi-user support is a
// configuration change, not a rewrite.
package identity
