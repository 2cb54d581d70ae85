package log

import (
	"bytes"
	"log/slog"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// A Level is the importance or severity of a log event. The higher the
// level, the more important or severe the event. The numbering follows
// [slog.Level], with the addition of [LevelDisabled] to turn logging off
// entirely.
type Level slog.Level

const (
	LevelDebug    = Level(slog.LevelDebug)
	LevelInfo     = Level(slog.LevelInfo)
	LevelWarn     = Level(slog.LevelWarn)
	LevelError    = Level(slog.LevelError)
	LevelDisabled = Level(1<<31 - 1)
)

// String returns a name for the level. If the level is between named
// values, an integer offset is appended to the nearest name, e.g.
// "INFO+1".
func (l Level) String() string {
	if l >= LevelDisabled {
		return "DISABLED"
	}

	return slog.Level(l).String()
}

// MarshalJSON implements [encoding/json.Marshaler] by quoting the output
// of [Level.String].
func (l Level) MarshalJSON() ([]byte, error) {
	// AppendQuote is sufficient for JSON-encoding all Level strings.
	// They don't contain any runes that would produce invalid JSON
	// when escaped.
	return strconv.AppendQuote(nil, l.String()), nil
}

// UnmarshalJSON implements [encoding/json.Unmarshaler]. It accepts any
// string produced by [Level.MarshalJSON], ignoring case, as well as
// "disable", "disabled", and "false" for [LevelDisabled].
func (l *Level) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return err
	}

	switch strings.ToLower(s) {
	case "disable", "disabled", "false":
		*l = LevelDisabled
	default:
		return (*slog.Level)(l).UnmarshalJSON(data)
	}

	return nil
}

// AppendText implements [encoding.TextAppender] by calling [Level.String].
func (l Level) AppendText(b []byte) ([]byte, error) {
	return append(b, l.String()...), nil
}

// MarshalText implements [encoding.TextMarshaler] by calling
// [Level.AppendText].
func (l Level) MarshalText() ([]byte, error) {
	return l.AppendText(nil)
}

// UnmarshalText implements [encoding.TextUnmarshaler]. It accepts any
// string produced by [Level.MarshalText], ignoring case, as well as
// "disable", "disabled", and "false" for [LevelDisabled].
func (l *Level) UnmarshalText(data []byte) (err error) {
	switch string(bytes.ToLower(data)) {
	case "disable", "disabled", "false":
		*l = LevelDisabled
	default:
		err = (*slog.Level)(l).UnmarshalText(data)
	}

	return
}

// UnmarshalYAML implements [yaml.Unmarshaler] by deferring to
// [Level.UnmarshalText]. yaml does not consult TextUnmarshaler on its own.
func (l *Level) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	return l.UnmarshalText([]byte(s))
}

// Level returns the receiver. It implements [slog.Leveler].
func (l Level) Level() Level { return l }

// LevelFlag implements the interfaces needed to use a Level as a
// command-line flag value.
type LevelFlag Level

func (lf *LevelFlag) String() string {
	return (Level)(*lf).String()
}

func (lf *LevelFlag) Set(s string) error {
	return lf.UnmarshalText([]byte(s))
}

func (lf *LevelFlag) Get() any {
	return (Level)(*lf)
}

func (lf *LevelFlag) Type() string {
	return "level"
}

func (lf *LevelFlag) UnmarshalText(b []byte) error {
	return (*Level)(lf).UnmarshalText(b)
}
