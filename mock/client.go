// Package mock provides an [mqtt.Client] for use in tests without a
// broker.
package mock

import (
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Client is an in-memory [mqtt.Client]. Subscriptions are recorded and can
// be triggered with [Client.Receive]; published messages are recorded and
// can be inspected with [Client.Published].
type Client struct {
	connected bool

	opts      *mqtt.ClientOptions
	handlers  map[string]mqtt.MessageHandler
	published map[string][][]byte
	mu        sync.Mutex
}

// NewClient returns a new mock client with the given options.
func NewClient(o *mqtt.ClientOptions) *Client {
	return &Client{
		opts:      o,
		handlers:  make(map[string]mqtt.MessageHandler),
		published: make(map[string][][]byte),
	}
}

// Receive delivers payload to the handler subscribed to topic, as if a
// message had arrived from the broker.
func (c *Client) Receive(topic string, payload []byte) {
	c.mu.Lock()
	h := c.handlers[topic]
	c.mu.Unlock()

	if h != nil {
		h(c, &message{topic: topic, payload: payload})
	}
}

// Published returns the payloads published to topic, in order.
func (c *Client) Published(topic string) [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.published[topic]
}

func (c *Client) IsConnected() bool {
	return c.connected
}

func (c *Client) IsConnectionOpen() bool {
	return c.connected
}

func (c *Client) Connect() mqtt.Token {
	c.connected = true
	return &mqtt.DummyToken{}
}

func (c *Client) Disconnect(_ uint) {
	c.connected = false
}

func (c *Client) Publish(topic string, _ byte, _ bool, payload interface{}) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()

	var p []byte

	switch v := payload.(type) {
	case []byte:
		p = v
	case string:
		p = []byte(v)
	}

	c.published[topic] = append(c.published[topic], p)

	return &mqtt.DummyToken{}
}

func (c *Client) Subscribe(topic string, _ byte, callback mqtt.MessageHandler) mqtt.Token {
	c.mu.Lock()
	c.handlers[topic] = callback
	c.mu.Unlock()

	return &mqtt.DummyToken{}
}

func (c *Client) SubscribeMultiple(filters map[string]byte, callback mqtt.MessageHandler) mqtt.Token {
	c.mu.Lock()
	for topic := range filters {
		c.handlers[topic] = callback
	}
	c.mu.Unlock()

	return &mqtt.DummyToken{}
}

func (c *Client) Unsubscribe(topics ...string) mqtt.Token {
	c.mu.Lock()
	for _, topic := range topics {
		delete(c.handlers, topic)
	}
	c.mu.Unlock()

	return &mqtt.DummyToken{}
}

func (c *Client) AddRoute(topic string, callback mqtt.MessageHandler) {
	c.mu.Lock()
	c.handlers[topic] = callback
	c.mu.Unlock()
}

func (c *Client) OptionsReader() mqtt.ClientOptionsReader {
	return mqtt.NewOptionsReader(c.opts)
}

type message struct {
	topic   string
	payload []byte
}

func (m *message) Duplicate() bool   { return false }
func (m *message) Qos() byte         { return 0 }
func (m *message) Retained() bool    { return false }
func (m *message) MessageID() uint16 { return 0 }
func (m *message) Ack()              {}

func (m *message) Topic() string {
	return m.topic
}

func (m *message) Payload() []byte {
	return m.payload
}
