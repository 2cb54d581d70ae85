package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lone-faerie/unitconv"
	"github.com/lone-faerie/unitconv/config"
	"github.com/lone-faerie/unitconv/internal/build"
	"github.com/lone-faerie/unitconv/log"
)

// ServeCommand is the [cobra.Command] used for running the server.
var ServeCommand = &cobra.Command{
	Use:     "serve [flags]",
	Aliases: []string{"server"},
	Short:   "Serve conversions over HTTP (and optionally MQTT)",
	Long: `Serve conversions over HTTP, and optionally over MQTT.

The server runs in the foreground until a signal is received.

	- SIGINT or SIGTERM will gracefully shut down the server.

The HTTP endpoint is GET /convert?value=<number>&from_unit=<unit>&to_unit=<unit>, answering {"result": <number>} or {"error": "<message>"}. The supported pairs are served at GET /units and Prometheus metrics at GET /metrics.

If --broker is set (or mqtt.enabled in the config), a bridge subscribes to <topic_prefix>/convert/request and publishes each result to <topic_prefix>/convert/response. The format of --broker should be scheme://host:port where "scheme" is one of "tcp", "ssl", or "ws". If "scheme" is not defined, it defaults to "tcp" and if "port" is not defined, it will use the value of --port (default 1883).

Configuration can be loaded from YAML files. If no config file is specified, the default path(s) will be determined by the first defined value of $UNITCONV_CONFIG_PATH, $XDG_CONFIG_HOME/unitconv.yaml, or $HOME/.config/unitconv.yaml. All of the flags, if specified, will override the equivalent values in the config.`,
	Example: `  unitconv serve
  unitconv serve --addr :9090
  unitconv serve --config config.yaml --broker 127.0.0.1:1883 --username unitconv`,
	GroupID: "commands",
	Args:    cobra.NoArgs,
	RunE:    runServe,

	DisableFlagsInUseLine: true,
}

func init() {
	ServeCommand.Flags().SortFlags = false
	ServeCommand.Flags().StringVarP(&Addr, "addr", "a", "", "HTTP listen address")
	ServeCommand.Flags().StringVarP(&Broker, "broker", "b", "", "MQTT broker address")
	ServeCommand.Flags().IntVarP(&Port, "port", "p", 1883, "MQTT broker port")
	ServeCommand.Flags().StringVar(&Username, "username", "", "MQTT client username")
	ServeCommand.Flags().StringVar(&Password, "password", "", "MQTT client password")
	ServeCommand.Flags().StringVar(&CertFile, "cert", "", "MQTT TLS certificate file (PEM encoded)")
	ServeCommand.Flags().StringVar(&KeyFile, "key", "", "MQTT TLS private key file (PEM encoded)")

	ServeCommand.SetHelpTemplate(ServeCommand.HelpTemplate() + "\n" + fullDocsFooter + "\n")

	RootCommand.AddCommand(ServeCommand)
}

func runServe(cmd *cobra.Command, _ []string) error {
	findConfig()

	cfg, err := config.Load(ConfigPath...)
	if err != nil {
		return err
	}

	if err := flagsToConfig(cfg); err != nil {
		return err
	}

	setLogHandler(cfg)
	log.Info("Starting unitconv", "version", build.Version())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Re-read the config on change so the log level can be adjusted
	// without a restart.
	if len(ConfigPath) > 0 {
		if _, err := os.Stat(ConfigPath[0]); err == nil {
			err = config.Watch(ctx, func(next *config.Config) {
				log.SetLogLevel(next.Log.Level)
				log.Info("Log level reloaded", "level", next.Log.Level)
			}, ConfigPath...)
			if err != nil {
				log.Warn("Unable to watch config", "err", err)
			}
		}
	}

	if cfg.MQTT.Enabled && cfg.MQTT.Broker != "" {
		bridge := unitconv.New(cfg)

		if err := bridge.Connect(ctx); err != nil {
			return err
		}

		bridge.Start(ctx)
		<-bridge.Ready()

		AddCleanup(func() error {
			bridge.Disconnect()
			return nil
		})
	}

	srv := unitconv.NewServer(cfg)

	return srv.ListenAndServe(ctx)
}
