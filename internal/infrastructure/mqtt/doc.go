// Package mqtt provides broker connectivity for the registration frontend.
//
// The frontend is not a long-lived broker client: the device server owns
// the MQTT integration and reads its connection settings from the
// integrations table this service seeds. This package exists for the
// optional startup announce, which connects once, publishes the
// frontend's availability to nolongerevil/frontend/status, and confirms
// the configured broker is actually reachable before traffic arrives.
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Warn("broker unreachable", "error", err)
//	    return
//	}
//	defer client.Close()
//
//	client.PublishOnline()
package mqtt
