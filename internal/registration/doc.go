// Package registration implements the entry-key claim workflow and the
// device ownership registry.
//
// A pairing code (7 alphanumeric characters, generated by the vendor
// server) is claimed exactly once: the claim is a single conditional
// UPDATE, so concurrent claims of the same code resolve to one winner
// inside SQLite. Device ownership is one row per serial, inserted with a
// NOT EXISTS guard — the first claimant wins and later registrations are
// skipped, never reassigned.
package registration
