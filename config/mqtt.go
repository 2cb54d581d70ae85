package config

import (
	"crypto/tls"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/lone-faerie/unitconv/log"
)

// MQTTConfig is the configuration for the optional MQTT bridge.
//
// See [mqtt.ClientOptions]
type MQTTConfig struct {
	// Enabled indicates whether the MQTT bridge should run. It is implied
	// by setting --broker on the command line.
	Enabled bool `yaml:"enabled"`
	// Broker is the URI of the broker. The format should be scheme://host:port
	// where "scheme" is one of "tcp", "ssl", or "ws", "host" is the ip-address
	// (or hostname) and "port" is the port on which the broker is accepting
	// connections.
	Broker string `yaml:"broker"`
	// ClientID is the (optional) client ID used when connecting to the broker.
	ClientID string `yaml:"client_id,omitempty"`
	// Username is the username used when connecting to the broker.
	Username string `yaml:"username"`
	// Password is the password used when connecting to the broker.
	Password string `yaml:"password"`
	// TopicPrefix is the prefix of the bridge's topics. Requests are
	// received on <prefix>/convert/request, results are published to
	// <prefix>/convert/response, and availability to <prefix>/bridge/status.
	TopicPrefix string `yaml:"topic_prefix,omitempty"`
	// KeepAlive is the duration that the client should wait before pinging
	// the broker. This allows the client to know the connection hasn't been
	// lost.
	KeepAlive time.Duration `yaml:"keep_alive,omitempty"`
	// CertFile is the path to the PEM-encoded TLS certificate. If blank
	// (default) then TLS is not used between the client and the broker.
	CertFile string `yaml:"cert_file,omitempty"`
	// KeyFile is the path to the PEM-encoded TLS private key. If blank
	// (default) then TLS is not used between the client and the broker.
	KeyFile string `yaml:"key_file,omitempty"`
	// ReconnectInterval is the maximum duration that the client will wait
	// between reconnection attempts.
	ReconnectInterval time.Duration `yaml:"reconnect_interval,omitempty"`
	// ConnectTimeout is the duration that the client will wait when
	// attempting to open a connection to the broker before timing out. A
	// duration of 0 means the client will never time out.
	ConnectTimeout time.Duration `yaml:"connect_timeout,omitempty"`
	// PingTimeout is the duration that the client will wait after pinging
	// the broker to determine if the connection was lost.
	PingTimeout time.Duration `yaml:"ping_timeout,omitempty"`
	// WriteTimeout is the duration that the client will block for when
	// publishing a message before unblocking with a timeout error. A
	// duration of 0 means the client will never time out.
	WriteTimeout time.Duration `yaml:"write_timeout,omitempty"`
	// BirthWillEnabled indicates if the Birth and Last Will and Testament
	// messages are enabled.
	BirthWillEnabled bool `yaml:"birth_lwt_enabled"`
	// BirthWillTopic is the topic to publish the Birth and Last Will and
	// Testament messages to if enabled. The default value is
	// "unitconv/bridge/status".
	BirthWillTopic string `yaml:"birth_lwt_topic"`
	// LogLevel is the log level to provide to the backing MQTT client
	// package. See [mqtt.Logger]
	LogLevel log.Level `yaml:"log_level"`

	tlsCert *tls.Certificate
}

var DefaultMQTT = MQTTConfig{
	Broker:           "$UNITCONV_BROKER_ADDRESS",
	Username:         "$UNITCONV_BROKER_USERNAME",
	Password:         "$UNITCONV_BROKER_PASSWORD",
	TopicPrefix:      "unitconv",
	BirthWillEnabled: true,
	BirthWillTopic:   "unitconv/bridge/status",
	LogLevel:         log.LevelDisabled,
}

// ClientOptions returns cfg formatted as [mqtt.ClientOptions] to provide
// to the backing MQTT client when calling [mqtt.NewClient].
func (cfg *MQTTConfig) ClientOptions() *mqtt.ClientOptions {
	o := mqtt.NewClientOptions()
	o.AddBroker(cfg.Broker)
	o.SetClientID(cfg.ClientID)
	o.SetUsername(cfg.Username).SetPassword(cfg.Password)
	o.SetResumeSubs(true)

	if cfg.KeepAlive > 0 {
		o.SetKeepAlive(cfg.KeepAlive)
	}

	if cfg.ReconnectInterval > 0 {
		o.SetMaxReconnectInterval(cfg.ReconnectInterval)
	}

	if cfg.ConnectTimeout > 0 {
		o.SetConnectTimeout(cfg.ConnectTimeout)
	}

	if cfg.PingTimeout > 0 {
		o.SetPingTimeout(cfg.PingTimeout)
	}

	if cfg.WriteTimeout > 0 {
		o.SetWriteTimeout(cfg.WriteTimeout)
	}

	if cfg.BirthWillEnabled {
		o.SetWill(cfg.BirthWillTopic, "offline", 1, true)
	}

	if cfg.CertFile != "" && cfg.KeyFile != "" {
		o.SetTLSConfig(&tls.Config{
			GetCertificate: cfg.getCertificate,
		})
	}

	return o
}

func (cfg *MQTTConfig) getCertificate(_ *tls.ClientHelloInfo) (*tls.Certificate, error) {
	if cfg.tlsCert == nil {
		cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
		if err != nil {
			return nil, err
		}

		cfg.tlsCert = &cert
	}

	return cfg.tlsCert, nil
}

// IsZero indicates whether cfg is the default value.
func (cfg MQTTConfig) IsZero() bool {
	return cfg == DefaultMQTT
}
