package logx

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestGetLoggerLevelByString(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"warn":    zapcore.WarnLevel,
		"fatal":   zapcore.FatalLevel,
		"unknown": zapcore.DebugLevel,
	}
	for in, want := range tests {
		if got := GetLoggerLevelByString(in); got != want {
			t.Fatalf("%s: got %v, want %v", in, got, want)
		}
	}
}

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogx(zapcore.InfoLevel, false, false)
	l.InitLogger(&buf)
	l.Debug("hidden")
	l.Named("midgame").Infof("turn %d", 3)
	_ = l.Sync()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}
	var rec map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec["MESSAGE"] != "turn 3" || rec["NAME"] != "midgame" {
		t.Fatalf("record: %v", rec)
	}
}

func TestNop(t *testing.T) {
	l := NewNop()
	l.Info("dropped")
	l.Named("x").Errorf("dropped %d", 1)
}

func TestDPanicLogsWithoutPanic(t *testing.T) {
	var buf bytes.Buffer
	var l Logger = NewLogx(zapcore.InfoLevel, false, false)
	l.InitLogger(&buf)
	l.DPanicf("bad start %s", "position")
	_ = l.Sync()

	var rec map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec); err != nil {
		t.Fatalf("decode: %v (%q)", err, buf.String())
	}
	if rec["LEVEL"] != "dpanic" || rec["MESSAGE"] != "bad start position" {
		t.Fatalf("record: %v", rec)
	}
}
