package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", "debug", slog.LevelDebug, false},
		{"info", "INFO", slog.LevelInfo, false},
		{"warn", "warning", slog.LevelWarn, false},
		{"error", "error", slog.LevelError, false},
		{"empty", "", slog.LevelInfo, false},
		{"unknown", "trace", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: "debug", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Debug("mode transition", "to", "play")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not json: %v (%q)", err, buf.String())
	}
	if rec["msg"] != "mode transition" || rec["to"] != "play" {
		t.Errorf("record = %v", rec)
	}
}

func TestNewFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: "warn", Format: "text", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("info record written at warn level: %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Config{Format: "xml"}); err == nil {
		t.Error("New accepted format xml")
	}
}

func TestConsoleHandler(t *testing.T) {
	var buf bytes.Buffer
	var h slog.Handler = newConsoleHandler(&buf, slog.LevelDebug)
	h = h.WithGroup("proxy").WithAttrs([]slog.Attr{slog.String("addr", "127.0.0.1")})

	rec := slog.NewRecord(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), slog.LevelInfo, "packet", 0)
	rec.AddAttrs(slog.Int("id", 3))
	if err := h.Handle(context.Background(), rec); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	want := "12:00:00 INFO  packet  proxy.addr=127.0.0.1  proxy.id=3\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("missing newline")
	}
}

func TestLevelTag(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelError, "ERROR"},
		{slog.LevelWarn, "WARN "},
		{slog.LevelInfo, "INFO "},
		{slog.LevelDebug, "DEBUG"},
		{slog.LevelDebug - 4, "DEBUG"},
		{slog.LevelInfo + 2, "INFO "},
		{slog.LevelError + 4, "ERROR"},
	}
	for _, tt := range tests {
		if got := levelTag(tt.level); got != tt.want {
			t.Errorf("levelTag(%v) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestConsoleHandlerGroups(t *testing.T) {
	at := time.Date(2024, 1, 1, 8, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		build func(slog.Handler) slog.Handler
		attrs []slog.Attr
		want  string
	}{
		{
			name:  "attrs bound before group keep their key",
			build: func(h slog.Handler) slog.Handler { return h.WithAttrs([]slog.Attr{slog.String("client", "c1")}).WithGroup("relay") },
			attrs: []slog.Attr{slog.Int("id", 1)},
			want:  "08:30:00 DEBUG msg  client=c1  relay.id=1\n",
		},
		{
			name:  "nested group attr",
			build: func(h slog.Handler) slog.Handler { return h },
			attrs: []slog.Attr{slog.Group("frame", slog.Int("len", 5), slog.String("mode", "play"))},
			want:  "08:30:00 DEBUG msg  frame.len=5  frame.mode=play\n",
		},
		{
			name:  "empty group name is ignored",
			build: func(h slog.Handler) slog.Handler { return h.WithGroup("") },
			attrs: []slog.Attr{slog.Bool("raw", true)},
			want:  "08:30:00 DEBUG msg  raw=true\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := tt.build(newConsoleHandler(&buf, slog.LevelDebug))
			rec := slog.NewRecord(at, slog.LevelDebug, "msg", 0)
			rec.AddAttrs(tt.attrs...)
			if err := h.Handle(context.Background(), rec); err != nil {
				t.Fatalf("Handle: %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}
