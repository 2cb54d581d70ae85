package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()

	var buf bytes.Buffer

	RootCommand.SetOut(&buf)
	RootCommand.SetErr(&buf)
	RootCommand.SetArgs(args)

	if err := RootCommand.Execute(); err != nil {
		t.Fatalf("%v: %v", args, err)
	}

	return buf.String()
}

func TestRootConvert(t *testing.T) {
	var tests = []struct {
		args []string
		want string
	}{
		{[]string{"100", "c", "f"}, "100 c = 212 f\n"},
		{[]string{"1000", "m", "km"}, "1000 m = 1 km\n"},
		{[]string{"5", "M", "CM"}, "5 M = 500 CM\n"},
	}

	for _, tt := range tests {
		got := execute(t, tt.args...)
		if got != tt.want {
			t.Errorf("%v: wanted %q, got %q", tt.args, tt.want, got)
		}
	}
}

func TestRootConvertUnsupported(t *testing.T) {
	got := execute(t, "1", "ly", "m")

	want := "Conversion from 'ly' to 'm' is not supported.\n"
	if got != want {
		t.Errorf("wanted %q, got %q", want, got)
	}
}

func TestRootBadValue(t *testing.T) {
	var buf bytes.Buffer

	RootCommand.SetOut(&buf)
	RootCommand.SetErr(&buf)
	RootCommand.SetArgs([]string{"abc", "m", "cm"})

	err := RootCommand.Execute()
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	exit, ok := err.(*ExitError)
	if !ok {
		t.Fatalf("wanted *ExitError, got %T", err)
	}
	if want, got := 2, exit.Code; got != want {
		t.Errorf("code: wanted %d, got %d", want, got)
	}
}

func TestListSummary(t *testing.T) {
	got := execute(t, "list", "--summary")

	if !strings.Contains(got, "m->cm") {
		t.Errorf("summary missing m->cm: %q", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Error("summary not newline terminated")
	}
}

func TestList(t *testing.T) {
	ListSummary = false

	got := execute(t, "list")

	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) < 40 {
		t.Fatalf("wanted at least 40 pairs, got %d lines", len(lines))
	}

	for _, line := range lines {
		if !strings.Contains(line, " -> ") {
			t.Errorf("malformed line %q", line)
		}
	}
}
