package integration

import "time"

// TypeMQTT is the integration type key for the MQTT integration row.
const TypeMQTT = "mqtt"

// MQTTConfig is the JSON blob stored in the integrations table.
// Field names are an external interface: the vendor server deserialises
// this exact shape, so the JSON tags must not change.
type MQTTConfig struct {
	BrokerURL              string `json:"brokerUrl"`
	Username               string `json:"username,omitempty"`
	Password               string `json:"password,omitempty"`
	ClientID               string `json:"clientId"`
	TopicPrefix            string `json:"topicPrefix"`
	DiscoveryPrefix        string `json:"discoveryPrefix"`
	PublishRaw             bool   `json:"publishRaw"`
	HomeAssistantDiscovery bool   `json:"homeAssistantDiscovery"`
}

// Record is a row in the integrations table, keyed by (UserID, Type).
type Record struct {
	UserID    string
	Type      string
	Enabled   bool
	Config    string // serialized JSON blob
	CreatedAt time.Time
	UpdatedAt time.Time
}
