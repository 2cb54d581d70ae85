// Package config provides the structures used for configuration.
package config

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lone-faerie/unitconv/log"
)

// Config contains the configuration for the HTTP server, the optional MQTT
// bridge, and logging. Config should be created with a call to [Default],
// [Read], or [Load] so that string fields are expanded.
type Config struct {
	HTTP HTTPConfig `yaml:"http,omitempty"`
	MQTT MQTTConfig `yaml:"mqtt,omitempty"`
	Log  LogConfig  `yaml:"log,omitempty"`
}

// Default returns the default Config when no config file is provided.
func Default() *Config {
	cfg := &Config{
		HTTP: DefaultHTTP,
		MQTT: DefaultMQTT,
	}
	cfg.load()

	return cfg
}

// Read returns the Config parsed from the yaml encoded config from r.
func Read(r io.Reader) (*Config, error) {
	cfg := &Config{
		HTTP: DefaultHTTP,
		MQTT: DefaultMQTT,
	}
	if err := yaml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, err
	}
	cfg.load()

	return cfg, nil
}

// Load returns the Config parsed from the given yaml files, decoded in
// order over the defaults. If no files are given, or the first file does
// not exist, the default config is returned.
func Load(file ...string) (*Config, error) {
	if len(file) == 0 {
		return Default(), nil
	}

	log.Info("Loading config", "path", file)

	if _, err := os.Stat(file[0]); err != nil {
		return Default(), nil
	}

	cfg := &Config{
		HTTP: DefaultHTTP,
		MQTT: DefaultMQTT,
	}

	for _, name := range file {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}

		err = yaml.NewDecoder(f).Decode(cfg)
		f.Close()

		if err != nil && err != io.EOF {
			return nil, err
		}
	}

	cfg.load()

	return cfg, nil
}

func (cfg *Config) load() {
	expandValue(reflect.ValueOf(cfg).Elem())
}

func expandValue(v reflect.Value) {
	switch v.Kind() {
	case reflect.String:
		if !v.CanSet() {
			return
		}
		v.SetString(Expand(v.String()))
	case reflect.Struct:
		n := v.NumField()
		for i := 0; i < n; i++ {
			expandValue(v.Field(i))
		}
	case reflect.Slice, reflect.Array:
		n := v.Len()
		for i := 0; i < n; i++ {
			expandValue(v.Index(i))
		}
	case reflect.Pointer:
		expandValue(v.Elem())
	}
}

// secretPrefix marks a string for substitution with the contents of the
// named file under /run/secrets. For example:
//
//	"!secret foo" -> /run/secrets/foo
const (
	secretPrefix = "!secret "
	secretsDir   = "/run/secrets"
)

// Expand replaces ${var} or $var in s according to the values of the
// current environment variables, and replaces "!secret var" according to
// the file at /run/secrets/<var>. An unreadable secret expands to the
// empty string.
func Expand(s string) string {
	if secret, ok := strings.CutPrefix(s, secretPrefix); ok {
		b, err := os.ReadFile(filepath.Join(secretsDir, secret))
		if err != nil {
			return ""
		}

		return strings.TrimSpace(string(b))
	}

	return os.ExpandEnv(s)
}
