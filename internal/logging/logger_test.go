package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// decode parses the single JSON line written by a ZerologAdapter.
func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	return entry
}

func TestZerologAdapter_Levels(t *testing.T) {
	tests := []struct {
		name  string
		log   func(Logger)
		level string
		msg   string
	}{
		{"debug", func(l Logger) { l.Debug("partition split", Int("workers", 4)) }, "debug", "partition split"},
		{"info", func(l Logger) { l.Info("sequence generated", Int("size", 10)) }, "info", "sequence generated"},
		{"error", func(l Logger) { l.Error("metrics dump failed", errors.New("closed pipe")) }, "error", "metrics dump failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewZerologAdapter(zerolog.New(&buf)))
			entry := decode(t, &buf)
			if entry["level"] != tt.level {
				t.Errorf("level = %v, want %s", entry["level"], tt.level)
			}
			if entry["message"] != tt.msg {
				t.Errorf("message = %v, want %s", entry["message"], tt.msg)
			}
		})
	}
}

func TestZerologAdapter_ErrorAttachesCause(t *testing.T) {
	var buf bytes.Buffer
	NewZerologAdapter(zerolog.New(&buf)).Error("task failed", errors.New("worker fault"), String("task", "parallel-sum/3"))
	entry := decode(t, &buf)
	if entry["error"] != "worker fault" || entry["task"] != "parallel-sum/3" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestApplyFields_Types(t *testing.T) {
	var buf bytes.Buffer
	NewZerologAdapter(zerolog.New(&buf)).Info("task finished",
		String("task", "seq-sum"),
		Int("workers", 3),
		Int64("sum", -26),
		Uint64("seed", 42),
		Float64("speedup", 2.5),
		Bool("found", true),
		Duration("mean", 1500*time.Millisecond),
		Err(errors.New("late")),
		Field{Key: "ranges", Value: []int{0, 2, 4}},
	)
	entry := decode(t, &buf)

	want := map[string]any{
		"task":    "seq-sum",
		"workers": float64(3),
		"sum":     float64(-26),
		"seed":    float64(42),
		"speedup": 2.5,
		"found":   true,
		"mean":    float64(1500),
		"error":   "late",
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s = %v (%T), want %v", k, entry[k], entry[k], v)
		}
	}
	if ranges, ok := entry["ranges"].([]any); !ok || len(ranges) != 3 {
		t.Errorf("ranges = %v, want a 3-element array", entry["ranges"])
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "parsum", zerolog.InfoLevel, true)
	logger.Debug("hidden")
	logger.Info("benchmark finished", Int("exit_code", 0))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug entry written at info level: %q", out)
	}
	for _, want := range []string{"INF", "benchmark finished", "component=parsum", "exit_code=0"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("noColor logger wrote escape sequences: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    zerolog.Level
		wantErr bool
	}{
		{"", zerolog.InfoLevel, false},
		{"debug", zerolog.DebugLevel, false},
		{"WARN", zerolog.WarnLevel, false},
		{"disabled", zerolog.Disabled, false},
		{"loud", zerolog.InfoLevel, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNop(t *testing.T) {
	var _ Logger = Nop()
	Nop().Info("ignored", String("k", "v"))
	Nop().Error("ignored", errors.New("x"))
}
