// Package integration manages rows in the vendor's integrations table.
//
// The only integration this service writes is the MQTT config blob the
// vendor server uses to connect to the broker. The row is upserted
// idempotently on every startup and verified by a re-read.
package integration
