// Package config loads and validates configuration for the NoLongerEvil
// frontend.
//
// Configuration resolves in three layers: hardcoded defaults, an optional
// YAML file, and environment variables. Environment variables win because
// the Home Assistant add-on supervisor configures the service exclusively
// through them:
//
//	SQLITE3_DB_PATH  path to the shared SQLite database
//	MQTT_HOST        broker hostname (required)
//	MQTT_PORT        broker port (required)
//	MQTT_USER        broker username (optional)
//	MQTT_PASSWORD    broker password (optional)
//	MQTT_ANNOUNCE    enable the startup availability publish (optional)
//	INGRESS_PORT     HTTP listen port (default 8082)
//
// Missing MQTT host or port fails validation and aborts startup.
package config
