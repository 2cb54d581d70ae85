package cmd

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lone-faerie/unitconv/config"
	"github.com/lone-faerie/unitconv/log"
)

// Flags shared between commands.
var (
	ConfigPath []string // Path(s) to config file (default is first of $UNITCONV_CONFIG_PATH, $XDG_CONFIG_HOME/unitconv.yaml, $HOME/.config/unitconv.yaml)
	Addr       string   // HTTP listen address
	Broker     string   // MQTT broker address
	Port       int      // MQTT broker port
	Username   string   // MQTT broker username
	Password   string   // MQTT broker password
	CertFile   string   // MQTT TLS certificate file (PEM encoded)
	KeyFile    string   // MQTT TLS private key file (PEM encoded)
	LogLevel   string   // Log level
)

type CleanupFunc func() error

var cleanup []CleanupFunc

// AddCleanup registers f to run after the invoked command returns.
func AddCleanup(f CleanupFunc) {
	cleanup = append(cleanup, f)
}

const fullDocsFooter = `Full documentation is available at:
https://pkg.go.dev/github.com/lone-faerie/unitconv`

// ExitError is an error that should cause the program to exit with the
// given code.
type ExitError struct {
	Err  error
	Code int
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func findConfig() {
	const defaultConfigFile = "unitconv.yaml"

	if len(ConfigPath) > 0 {
		return
	}

	if env, ok := os.LookupEnv("UNITCONV_CONFIG_PATH"); ok {
		ConfigPath = strings.Split(env, ",")
		return
	}

	if xdg, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		ConfigPath = []string{filepath.Join(xdg, defaultConfigFile)}
		return
	}

	home, err := os.UserHomeDir()
	cobra.CheckErr(err)

	ConfigPath = []string{filepath.Join(home, ".config", defaultConfigFile)}
}

func maybeWithPort(addr string, port int) string {
	var hasPort bool

	if last := addr[len(addr)-1]; '0' <= last && last <= '9' {
		for _, c := range addr {
			switch {
			case c == ':':
				hasPort = true
			case '0' <= c && c <= '9':
				hasPort = hasPort && true
			default:
				hasPort = false
			}
		}
	}

	if hasPort || port < 0 {
		return addr
	}

	return addr + ":" + strconv.Itoa(port)
}

func flagsToConfig(cfg *config.Config) error {
	if LogLevel != "" {
		var level log.Level

		if err := level.UnmarshalText([]byte(LogLevel)); err != nil {
			return err
		}

		cfg.Log.Level = level
	}

	if Addr != "" {
		cfg.HTTP.Addr = Addr
	}

	if Broker != "" {
		cfg.MQTT.Broker = maybeWithPort(Broker, Port)
		cfg.MQTT.Enabled = true
	}

	if Username != "" {
		cfg.MQTT.Username = Username
	}

	if Password != "" {
		cfg.MQTT.Password = Password
	}

	if CertFile != "" {
		cfg.MQTT.CertFile = CertFile
	}

	if KeyFile != "" {
		cfg.MQTT.KeyFile = KeyFile
	}

	return nil
}

func setLogHandler(cfg *config.Config) {
	var w io.Writer

	switch strings.ToLower(cfg.Log.Output) {
	case "", "stderr":
	case "stdout":
		w = os.Stdout
	case "discard":
		log.SetHandler(log.DiscardHandler)
		return
	default:
		f, err := os.OpenFile(cfg.Log.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Error(
				"Unable to open log file, deferring to stderr",
				err,
			)
		} else {
			w = f

			AddCleanup(func() error { return f.Close() })
		}
	}

	log.SetLogLevel(cfg.Log.Level)

	switch strings.ToLower(cfg.Log.Format) {
	case "json":
		if w == nil {
			w = os.Stderr
		}

		log.SetJSONHandler(w)
	case "text":
		if w == nil {
			w = os.Stderr
		}

		log.SetTextHandler(w)
	default:
		if w != nil {
			log.SetOutput(w)
			log.SetTextHandler(w)
		}
	}
}
