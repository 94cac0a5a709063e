package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestConfigLevels(t *testing.T) {
	cases := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"WARN", zapcore.WarnLevel},
		{"bogus", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}
	for _, tc := range cases {
		if got := Config(tc.level, "dev").Level.Level(); got != tc.want {
			t.Errorf("Config(%q) level = %v, want %v", tc.level, got, tc.want)
		}
	}
}

func TestConfigEncoding(t *testing.T) {
	if got := Config("info", EnvProd).Encoding; got != "json" {
		t.Fatalf("prod encoding = %q, want json", got)
	}
	if got := Config("info", "dev").Encoding; got != "console" {
		t.Fatalf("dev encoding = %q, want console", got)
	}
	if got := Config("info", "dev").OutputPaths; len(got) != 1 || got[0] != "stderr" {
		t.Fatalf("unexpected output paths %v", got)
	}
}

func TestIsValidLevel(t *testing.T) {
	if !IsValidLevel("Error") || IsValidLevel("verbose") {
		t.Fatalf("unexpected level validation")
	}
}
