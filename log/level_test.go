package log

import (
	"log/slog"
	"testing"
)

func TestLevelString(t *testing.T) {
	var tests = []struct {
		in   Level
		want string
	}{
		{LevelDisabled, "DISABLED"},
		{LevelDisabled + 1, "DISABLED"},
		{LevelError, slog.LevelError.String()},
		{LevelError + 2, (slog.LevelError + 2).String()},
		{LevelWarn, slog.LevelWarn.String()},
		{LevelWarn - 1, (slog.LevelWarn - 1).String()},
		{LevelInfo, slog.LevelInfo.String()},
		{LevelInfo + 1, (slog.LevelInfo + 1).String()},
		{LevelDebug, slog.LevelDebug.String()},
	}
	for _, tt := range tests {
		got := tt.in.String()
		if got != tt.want {
			t.Errorf("%d: Wanted %s, got %s", tt.in, tt.want, got)
		}
	}
}

func TestLevelUnmarshalText(t *testing.T) {
	var tests = []struct {
		in   []byte
		want Level
	}{
		{[]byte("DISABLED"), LevelDisabled},
		{[]byte("DiSaBlE"), LevelDisabled},
		{[]byte("false"), LevelDisabled},
		{[]byte("ERROR"), LevelError},
		{[]byte("Error+1"), LevelError + 1},
		{[]byte("warn"), LevelWarn},
		{[]byte("INFO"), LevelInfo},
		{[]byte("debug"), LevelDebug},
	}
	for _, tt := range tests {
		var got Level
		if err := got.UnmarshalText(tt.in); err != nil {
			t.Fatalf("%s: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("%s: Wanted %s, got %s", tt.in, tt.want, got)
		}
	}
}

func TestLevelMarshalJSON(t *testing.T) {
	var tests = []struct {
		in   Level
		want string
	}{
		{LevelDisabled, `"DISABLED"`},
		{LevelError, `"ERROR"`},
		{LevelInfo, `"INFO"`},
		{LevelDebug + 1, `"DEBUG+1"`},
	}
	for _, tt := range tests {
		got, err := tt.in.MarshalJSON()
		if err != nil {
			t.Fatalf("%s: %v", tt.in, err)
		}
		if string(got) != tt.want {
			t.Errorf("%s: Wanted %s, got %s", tt.in, tt.want, got)
		}
	}
}

func TestLevelUnmarshalJSON(t *testing.T) {
	var tests = []struct {
		in   []byte
		want Level
	}{
		{[]byte(`"disabled"`), LevelDisabled},
		{[]byte(`"WARN"`), LevelWarn},
		{[]byte(`"Info+2"`), LevelInfo + 2},
	}
	for _, tt := range tests {
		var got Level
		if err := got.UnmarshalJSON(tt.in); err != nil {
			t.Fatalf("%s: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("%s: Wanted %s, got %s", tt.in, tt.want, got)
		}
	}
}
