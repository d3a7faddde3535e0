package mqtt

import (
	"context"
	"fmt"
	"sync"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/nolongerevil/frontend/internal/infrastructure/config"
)

// announceClientID identifies the frontend's verification connection on
// the broker, distinct from the device server's "nolongerevil-<user>" IDs.
const announceClientID = "nolongerevil-frontend"

// Client wraps paho.mqtt.golang for the startup announce.
//
// All methods are safe for concurrent use from multiple goroutines.
type Client struct {
	client  pahomqtt.Client
	options *pahomqtt.ClientOptions
	cfg     config.MQTTConfig

	// connected tracks current connection state.
	connected bool
	connMu    sync.RWMutex
}

// Connect establishes a connection to the MQTT broker.
//
// It builds connection options from config (broker URL, auth, TLS),
// configures Last Will and Testament for offline detection, and attempts
// a single connection with timeout. There is no background reconnect:
// the caller decides whether an unreachable broker matters.
func Connect(cfg config.MQTTConfig) (*Client, error) {
	opts := buildClientOptions(cfg, announceClientID)
	configureLWT(opts, announceClientID)

	c := &Client{
		cfg:     cfg,
		options: opts,
	}

	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, _ error) {
		c.connMu.Lock()
		c.connected = false
		c.connMu.Unlock()
	})

	c.client = pahomqtt.NewClient(opts)
	token := c.client.Connect()
	if !token.WaitTimeout(defaultConnectTimeout) {
		return nil, fmt.Errorf("%w: timeout after %v", ErrConnectionFailed, defaultConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	c.connMu.Lock()
	c.connected = true
	c.connMu.Unlock()

	return c, nil
}

// PublishOnline publishes the frontend's online status, retained, to the
// status topic.
func (c *Client) PublishOnline() error {
	topic := Topics{}.FrontendStatus()
	return c.Publish(topic, []byte(buildOnlinePayload(announceClientID)), statusQoS, true)
}

// Publish sends a message to the specified MQTT topic.
func (c *Client) Publish(topic string, payload []byte, qos byte, retained bool) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}

	token := c.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(defaultPublishTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrPublishFailed, defaultPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	return nil
}

// Close gracefully disconnects from the MQTT broker.
//
// A graceful offline status is published first so subscribers can tell a
// clean shutdown apart from the LWT crash payload. Closing an already
// disconnected client is not an error.
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}

	if c.IsConnected() {
		topic := Topics{}.FrontendStatus()
		payload := buildOfflinePayload(announceClientID)
		token := c.client.Publish(topic, statusQoS, true, payload)
		token.WaitTimeout(defaultPublishTimeout)
	}

	c.client.Disconnect(defaultDisconnectQuiesce)

	c.connMu.Lock()
	c.connected = false
	c.connMu.Unlock()

	return nil
}

// HealthCheck verifies the MQTT connection is alive.
func (c *Client) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("mqtt health check: %w", ctx.Err())
	default:
	}

	if !c.IsConnected() {
		return ErrNotConnected
	}

	return nil
}

// IsConnected returns the current connection state.
func (c *Client) IsConnected() bool {
	c.connMu.RLock()
	defer c.connMu.RUnlock()
	return c.connected && c.client.IsConnected()
}
