// Package telemetry publishes device state snapshots to an MQTT broker.
package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"alpacaclient/pkg/alpaca"
	"alpacaclient/pkg/store"
)

const publishTimeout = 5 * time.Second

// Connect initializes and returns a new MQTT client connected to the broker
// in cfg.
func Connect(cfg store.MQTTConfig, clientID string) (mqtt.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := mqtt.NewClientOptions()
	opts.SetClientID(clientID)
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.Host, cfg.Port))
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %v", token.Error())
	}
	return client, nil
}

// Snapshot is the JSON payload published for every poll.
type Snapshot struct {
	Device string         `json:"device"`
	Time   time.Time      `json:"time"`
	State  map[string]any `json:"state,omitempty"`
	Error  string         `json:"error,omitempty"`
}

type Publisher struct {
	client mqtt.Client
	root   string
	logger log.FieldLogger
}

func NewPublisher(client mqtt.Client, root string, logger log.FieldLogger) *Publisher {
	return &Publisher{client: client, root: root, logger: logger}
}

// Topic returns <root>/<type>/<number>/state.
func (p *Publisher) Topic(id alpaca.Identity) string {
	return fmt.Sprintf("%s/%s/%d/state", p.root, id.Type(), id.Number())
}

// Publish sends snap as a retained message so late subscribers get the last
// known state.
func (p *Publisher) Publish(id alpaca.Identity, snap Snapshot) error {
	if !p.client.IsConnected() {
		return fmt.Errorf("MQTT client is not connected")
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	topic := p.Topic(id)
	p.logger.Debugf("Publishing %d bytes to %s", len(payload), topic)

	token := p.client.Publish(topic, 0, true, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("timeout publishing to %s", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish state: %v", err)
	}
	return nil
}

// StateSource is a device that reports its operational state.
type StateSource interface {
	Identity() alpaca.Identity
	DeviceState() ([]alpaca.StateProperty, error)
}

// Poll reads the state of dev once.
func Poll(dev StateSource, now time.Time) Snapshot {
	snap := Snapshot{Device: dev.Identity().Descriptor(), Time: now.UTC()}

	props, err := dev.DeviceState()
	if err != nil {
		snap.Error = err.Error()
		return snap
	}

	snap.State = make(map[string]any, len(props))
	for _, prop := range props {
		snap.State[prop.Name] = prop.Value
	}
	return snap
}

// Watch polls dev every interval and publishes each snapshot until ctx is
// cancelled. Device failures are published, not returned. A publish failure
// stops the watch.
func Watch(ctx context.Context, dev StateSource, interval time.Duration, pub *Publisher) error {
	if interval <= 0 {
		return fmt.Errorf("invalid interval: %s", interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		snap := Poll(dev, time.Now())
		if snap.Error != "" {
			pub.logger.Warnf("%s: %s", snap.Device, snap.Error)
		}
		if err := pub.Publish(dev.Identity(), snap); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
