package registration

import "errors"

// Domain errors for the registration package.
//
// Check with errors.Is():
//
//	if errors.Is(err, registration.ErrKeyNotClaimable) {
//	    // expected business outcome, not a fault
//	}
var (
	// ErrKeyNotClaimable is returned when a claim cannot proceed: the code
	// does not exist, has expired, or was already claimed. The three cases
	// deliberately collapse into one result so the caller cannot probe
	// which codes exist.
	ErrKeyNotClaimable = errors.New("registration: entry key not claimable")

	// ErrInvalidCode is returned when a code fails format validation
	// before any store access.
	ErrInvalidCode = errors.New("registration: invalid entry code format")
)
