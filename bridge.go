package unitconv

import (
	"context"
	"encoding/json"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/lone-faerie/unitconv/config"
	"github.com/lone-faerie/unitconv/log"
)

// request is the JSON payload accepted on the bridge's request topic.
type request struct {
	Value    float64 `json:"value"`
	FromUnit string  `json:"from_unit"`
	ToUnit   string  `json:"to_unit"`
}

// Bridge is the MQTT front end of the conversion engine. It subscribes to
// <prefix>/convert/request and publishes the result of each request to
// <prefix>/convert/response, with the same JSON bodies as the HTTP
// endpoint.
type Bridge struct {
	client mqtt.Client

	topicPrefix string

	once       sync.Once
	disconnect sync.Once
	cancel     context.CancelFunc
	ready      chan struct{}
	done       chan struct{}
}

// New returns a new Bridge with the provided config and a [mqtt.Client]
// derived from the config. The bridge must have [Bridge.Connect] and
// [Bridge.Start] called on it before it may be used.
func New(cfg *config.Config) *Bridge {
	return NewWithClient(cfg, mqtt.NewClient(cfg.MQTT.ClientOptions()))
}

// NewWithClient returns a new Bridge with the provided config and
// [mqtt.Client]. The bridge must have [Bridge.Connect] and [Bridge.Start]
// called on it before it may be used.
func NewWithClient(cfg *config.Config, c mqtt.Client) *Bridge {
	if cfg.MQTT.LogLevel <= log.LevelError {
		mqtt.ERROR = log.ErrorLogger()
	}

	if cfg.MQTT.LogLevel <= log.LevelWarn {
		mqtt.WARN = log.WarnLogger()
	}

	if cfg.MQTT.LogLevel <= log.LevelDebug {
		mqtt.DEBUG = log.DebugLogger()
	}

	prefix := cfg.MQTT.TopicPrefix
	if prefix == "" {
		prefix = "unitconv"
	}

	return &Bridge{
		client:      c,
		topicPrefix: prefix,
	}
}

func waitToken(ctx context.Context, t mqtt.Token) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.Done():
	}

	return t.Error()
}

func (b *Bridge) requestTopic() string {
	return b.topicPrefix + "/convert/request"
}

func (b *Bridge) responseTopic() string {
	return b.topicPrefix + "/convert/response"
}

// Connect opens the connection to the broker.
func (b *Bridge) Connect(ctx context.Context) error {
	log.Info("Connecting to MQTT broker")

	return waitToken(ctx, b.client.Connect())
}

// Start subscribes to the request and stop topics and publishes the birth
// message. Start only has an effect the first time it is called; use
// [Bridge.Ready] to wait for the subscriptions to be established.
func (b *Bridge) Start(ctx context.Context) {
	b.once.Do(func() {
		if ctx == nil {
			ctx = context.Background()
		}

		b.start(ctx)
	})
}

func (b *Bridge) start(ctx context.Context) {
	b.ready = make(chan struct{})
	b.done = make(chan struct{})
	ctx, b.cancel = context.WithCancel(ctx)

	go func() {
		defer close(b.ready)

		t := b.client.Subscribe(b.requestTopic(), 0, b.handleRequest)
		if err := waitToken(ctx, t); err != nil {
			log.Error("Unable to subscribe to "+b.requestTopic(), err)
			return
		}

		t = b.client.Subscribe(b.topicPrefix+"/bridge/stop", 0, func(_ mqtt.Client, msg mqtt.Message) {
			msg.Ack()
			b.Disconnect()
		})
		if err := waitToken(ctx, t); err != nil {
			log.Error("Unable to subscribe to stop topic", err)
		}

		if err := b.publishStatus(ctx, "online"); err != nil {
			log.Error("Unable to publish birth message", err)
		}

		log.Info("MQTT bridge started", "topic", b.requestTopic())
	}()
}

func (b *Bridge) handleRequest(_ mqtt.Client, msg mqtt.Message) {
	msg.Ack()

	var req request
	if err := json.Unmarshal(msg.Payload(), &req); err != nil {
		conversionsTotal.WithLabelValues("invalid").Inc()
		b.publish(response{Error: "invalid request: " + err.Error()})

		return
	}

	result, err := Convert(req.Value, req.FromUnit, req.ToUnit)
	if err != nil {
		conversionsTotal.WithLabelValues("unsupported").Inc()
		b.publish(response{Error: err.Error()})

		return
	}

	conversionsTotal.WithLabelValues("ok").Inc()
	b.publish(response{Result: &result})
}

func (b *Bridge) publish(resp response) {
	data, err := json.Marshal(&resp)
	if err != nil {
		log.Error("Unable to encode response", err)
		return
	}

	b.client.Publish(b.responseTopic(), 0, false, data)
}

func (b *Bridge) publishStatus(ctx context.Context, status string) error {
	opts := b.client.OptionsReader()
	if opts.WillTopic() == "" {
		return nil
	}

	t := b.client.Publish(opts.WillTopic(), opts.WillQos(), opts.WillRetained(), status)

	return waitToken(ctx, t)
}

// Ready returns a channel that is closed once the bridge's subscriptions
// are established.
func (b *Bridge) Ready() <-chan struct{} {
	return b.ready
}

// Done returns a channel that is closed once the bridge has disconnected.
func (b *Bridge) Done() <-chan struct{} {
	return b.done
}

// Disconnect publishes the offline status and closes the connection to
// the broker. It may be called at most once after Start.
func (b *Bridge) Disconnect() {
	b.disconnect.Do(func() {
		log.Info("MQTT bridge disconnecting")

		if err := b.publishStatus(context.Background(), "offline"); err != nil {
			log.Error("Unable to publish will message", err)
		}

		if b.cancel != nil {
			b.cancel()
		}

		b.client.Disconnect(250)

		if b.done != nil {
			close(b.done)
		}
	})
}
