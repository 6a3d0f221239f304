package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("loud", "dev"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNewBuildsForEachEnv(t *testing.T) {
	for _, env := range []string{"dev", "prod"} {
		log, err := New("info", env)
		if err != nil {
			t.Fatalf("build %s logger: %v", env, err)
		}
		if log.Core().Enabled(zapcore.DebugLevel) {
			t.Fatalf("%s logger should not enable debug at info level", env)
		}
	}
}
