package config

import "github.com/lone-faerie/unitconv/log"

// LogConfig is the configuration for logging.
type LogConfig struct {
	// Level is the minimum level to log.
	Level log.Level `yaml:"level"`
	// Output is where to log to, one of "stderr" (default), "stdout",
	// "discard", or a file path.
	Output string `yaml:"output"`
	// Format is one of "text" or "json". If blank, the default handler is
	// kept.
	Format string `yaml:"format"`
}
