package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInitOnlyFirstCallTakesEffect(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	first := Init(Options{Level: "debug", Output: &buf})
	second := Init(Options{Level: "error"})

	if first.GetLevel() != zerolog.DebugLevel {
		t.Fatalf("level = %v, want debug", first.GetLevel())
	}
	if second.GetLevel() != zerolog.DebugLevel {
		t.Fatalf("second Init changed the level to %v", second.GetLevel())
	}

	log := Get()
	log.Info().Msg("session resolved")
	if !strings.Contains(buf.String(), "session resolved") {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestGetBeforeInitPanics(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	defer func() {
		if recover() == nil {
			t.Fatal("Get before Init must panic")
		}
	}()
	Get()
}

func TestParseLevelFallsBackToInfo(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"debug":   zerolog.DebugLevel,
		" WARN ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
