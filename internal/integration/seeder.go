package integration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nolongerevil/frontend/internal/infrastructure/config"
)

// Fixed values the vendor server expects in the MQTT config blob.
const (
	// topicPrefix is the root of all raw publish topics.
	topicPrefix = "nolongerevil"

	// discoveryPrefix is Home Assistant's MQTT discovery root.
	discoveryPrefix = "homeassistant"

	// clientIDPrefix builds the broker client identifier.
	clientIDPrefix = "nolongerevil-"
)

// Logger is the subset of logging used by the seeder.
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

// Seeder writes the MQTT integration config row at startup.
//
// The vendor server polls the integrations table and picks the row up
// within seconds, so seeding the row is all that is needed to activate
// the integration.
type Seeder struct {
	repo Repository
	cfg  config.MQTTConfig
	log  Logger
}

// NewSeeder creates a Seeder.
func NewSeeder(repo Repository, cfg config.MQTTConfig, log Logger) *Seeder {
	return &Seeder{repo: repo, cfg: cfg, log: log}
}

// BuildMQTTConfig constructs the config blob for the given user from the
// broker settings. Raw publishing and Home Assistant discovery are always
// enabled.
func BuildMQTTConfig(cfg config.MQTTConfig, userID string) MQTTConfig {
	scheme := "mqtt"
	if cfg.TLS {
		scheme = "mqtts"
	}
	return MQTTConfig{
		BrokerURL:              fmt.Sprintf("%s://%s:%d", scheme, cfg.Host, cfg.Port),
		Username:               cfg.Username,
		Password:               cfg.Password,
		ClientID:               clientIDPrefix + userID,
		TopicPrefix:            topicPrefix,
		DiscoveryPrefix:        discoveryPrefix,
		PublishRaw:             true,
		HomeAssistantDiscovery: true,
	}
}

// Run builds and upserts the MQTT integration row for userID, then
// re-reads it to confirm persistence.
//
// An upsert failure is returned (fatal to startup); a failed re-read is
// only logged, matching the vendor tooling's behaviour.
func (s *Seeder) Run(ctx context.Context, userID string) error {
	mqttCfg := BuildMQTTConfig(s.cfg, userID)

	blob, err := json.Marshal(mqttCfg)
	if err != nil {
		return fmt.Errorf("marshalling MQTT config: %w", err)
	}

	rec := &Record{
		UserID:  userID,
		Type:    TypeMQTT,
		Enabled: true,
		Config:  string(blob),
	}
	if err := s.repo.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("seeding MQTT integration: %w", err)
	}

	s.log.Info("MQTT integration seeded",
		"user_id", userID,
		"broker", mqttCfg.BrokerURL,
		"topic_prefix", mqttCfg.TopicPrefix,
		"discovery", mqttCfg.HomeAssistantDiscovery,
	)

	// Verify the row is actually readable; missing is logged, not fatal.
	verified, err := s.repo.Get(ctx, userID, TypeMQTT)
	switch {
	case errors.Is(err, ErrNotFound):
		s.log.Error("integration row missing after upsert", "user_id", userID)
	case err != nil:
		s.log.Error("verifying integration row", "error", err)
	case !verified.Enabled:
		s.log.Error("integration row present but disabled", "user_id", userID)
	default:
		s.log.Info("verified integration row", "user_id", userID, "enabled", verified.Enabled)
	}

	return nil
}
