package mqtt

import "fmt"

// Topic prefixes shared with the device server. The server publishes raw
// device traffic and Home Assistant discovery under these roots, so the
// constants here must match the config blob seeded into the integrations
// table.
const (
	// TopicPrefix is the root of all raw device topics.
	TopicPrefix = "nolongerevil"

	// TopicPrefixFrontend is the base for topics owned by this service.
	TopicPrefixFrontend = "nolongerevil/frontend"
)

// Topics provides builders for broker topic names.
// Using these helpers keeps topic naming consistent across the codebase.
type Topics struct{}

// FrontendStatus returns the availability topic for this service.
//
// Example: nolongerevil/frontend/status
func (Topics) FrontendStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixFrontend)
}

// DeviceRaw returns the raw traffic topic for a device serial.
//
// Example: nolongerevil/device/NEST-001
func (Topics) DeviceRaw(serial string) string {
	return fmt.Sprintf("%s/device/%s", TopicPrefix, serial)
}

// AllDeviceRaw returns a pattern matching raw traffic from every device.
//
// Pattern: nolongerevil/device/+
func (Topics) AllDeviceRaw() string {
	return fmt.Sprintf("%s/device/+", TopicPrefix)
}
