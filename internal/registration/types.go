package registration

import "time"

// EntryKey is a pairing code generated for a physical thermostat.
// Keys are created by the vendor server; this service only claims them.
// A key transitions from unclaimed to claimed exactly once and is
// terminal afterwards.
type EntryKey struct {
	// Code is the 7-character alphanumeric pairing code, stored uppercase.
	Code string

	// Serial is the device serial the code pairs with.
	Serial string

	// ExpiresAt is when the code stops being claimable.
	ExpiresAt time.Time

	// ClaimedBy is the user that claimed the code, nil while unclaimed.
	ClaimedBy *string

	// ClaimedAt is when the code was claimed, nil while unclaimed.
	ClaimedAt *time.Time
}

// DeviceOwnership maps a user to a device serial.
// At most one ownership row exists per serial; the first claimant wins.
type DeviceOwnership struct {
	UserID    string
	Serial    string
	CreatedAt time.Time
}
