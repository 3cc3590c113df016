package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alpacaclient/pkg/alpaca"
	"alpacaclient/pkg/alpacatest"
)

type fakeToken struct {
	err error
}

func (t *fakeToken) Wait() bool                       { return true }
func (t *fakeToken) WaitTimeout(_ time.Duration) bool { return true }
func (t *fakeToken) Error() error                     { return t.err }

func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

type message struct {
	topic    string
	retained bool
	payload  []byte
}

// fakeClient records publishes. Methods it does not override panic through
// the nil embedded interface.
type fakeClient struct {
	mqtt.Client

	mu        sync.Mutex
	connected bool
	err       error
	messages  []message
}

func (c *fakeClient) IsConnected() bool { return c.connected }

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, message{topic: topic, retained: retained, payload: payload.([]byte)})
	return &fakeToken{err: c.err}
}

func (c *fakeClient) published() []message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]message{}, c.messages...)
}

func TestPublish(t *testing.T) {
	client := &fakeClient{connected: true}
	pub := NewPublisher(client, "obs", log.StandardLogger())

	id, err := alpaca.NewIdentity("10.0.0.5", alpaca.TypeDome, 1, "", 0)
	require.NoError(t, err)
	assert.Equal(t, "obs/dome/1/state", pub.Topic(id))

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, pub.Publish(id, Snapshot{Device: id.Descriptor(), Time: now, State: map[string]any{"AtPark": true}}))

	msgs := client.published()
	require.Len(t, msgs, 1)
	assert.Equal(t, "obs/dome/1/state", msgs[0].topic)
	assert.True(t, msgs[0].retained)
	assert.JSONEq(t, `{"device":"dome/10.0.0.5/1","time":"2024-01-01T00:00:00Z","state":{"AtPark":true}}`, string(msgs[0].payload))
}

func TestPublishErrors(t *testing.T) {
	id, err := alpaca.NewIdentity("10.0.0.5", alpaca.TypeDome, 1, "", 0)
	require.NoError(t, err)

	pub := NewPublisher(&fakeClient{connected: false}, "obs", log.StandardLogger())
	assert.Error(t, pub.Publish(id, Snapshot{}))

	pub = NewPublisher(&fakeClient{connected: true, err: errors.New("broker gone")}, "obs", log.StandardLogger())
	assert.ErrorContains(t, pub.Publish(id, Snapshot{}), "broker gone")
}

func TestPoll(t *testing.T) {
	srv := alpacatest.NewServer(t)
	srv.MountDome(0)

	dome, err := alpaca.NewDome(srv.Address(), 0)
	require.NoError(t, err)
	require.NoError(t, dome.Connect())

	snap := Poll(dome, time.Now())
	assert.Empty(t, snap.Error)
	assert.Equal(t, true, snap.State["AtPark"])
	assert.Contains(t, snap.State, "ShutterStatus")

	srv.Handle(http.MethodGet, "/api/v1/dome/0/devicestate", alpacatest.Error(0x400, "Not implemented"))
	snap = Poll(dome, time.Now())
	assert.Equal(t, "Error 1024: Not implemented", snap.Error)
	assert.Nil(t, snap.State)
}

func TestWatch(t *testing.T) {
	srv := alpacatest.NewServer(t)
	srv.MountDome(0)

	dome, err := alpaca.NewDome(srv.Address(), 0)
	require.NoError(t, err)

	client := &fakeClient{connected: true}
	pub := NewPublisher(client, "alpaca", log.StandardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, dome, 10*time.Millisecond, pub) }()

	require.Eventually(t, func() bool { return len(client.published()) >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(client.published()[0].payload, &snap))
	assert.Equal(t, "dome/"+srv.Address()+"/0", snap.Device)
	assert.Contains(t, snap.State, "TimeStamp")
}

func TestWatchRejectsInterval(t *testing.T) {
	srv := alpacatest.NewServer(t)
	srv.MountDome(0)

	dome, err := alpaca.NewDome(srv.Address(), 0)
	require.NoError(t, err)

	client := &fakeClient{connected: true}
	pub := NewPublisher(client, "alpaca", log.StandardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name     string
		interval time.Duration
	}{
		{name: "Zero", interval: 0},
		{name: "Negative", interval: -time.Second},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() { err = Watch(ctx, dome, tc.interval, pub) })
			assert.ErrorContains(t, err, "invalid interval")
		})
	}
	assert.Empty(t, client.published())
}

func TestWatchStopsOnPublishFailure(t *testing.T) {
	srv := alpacatest.NewServer(t)
	srv.MountDome(0)

	dome, err := alpaca.NewDome(srv.Address(), 0)
	require.NoError(t, err)

	pub := NewPublisher(&fakeClient{connected: false}, "alpaca", log.StandardLogger())
	assert.Error(t, Watch(context.Background(), dome, time.Hour, pub))
}
