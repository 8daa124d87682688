package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestSetup_ReturnsJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	l := Setup(&buf, "info")

	if l == nil {
		t.Fatal("expected non-nil logger")
	}

	l.Info("test message", slog.String("key", "value"))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected valid JSON log output, got error: %v\nraw output: %s", err, buf.String())
	}

	if entry["msg"] != "test message" {
		t.Errorf("msg = %q, want %q", entry["msg"], "test message")
	}
	if entry["key"] != "value" {
		t.Errorf("key = %q, want %q", entry["key"], "value")
	}
}

// debugレベル指定時のみdebugログが出力されることを検証
func TestSetup_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := Setup(&buf, "info")
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug log should be suppressed at info level, got: %s", buf.String())
	}

	buf.Reset()
	l = Setup(&buf, "debug")
	l.Debug("visible")
	if buf.Len() == 0 {
		t.Error("debug log should be emitted at debug level")
	}
}

// 未知のレベル文字列はinfoとして扱われることを検証
func TestParseLevel_UnknownFallsBackToInfo(t *testing.T) {
	if got := parseLevel("verbose"); got != slog.LevelInfo {
		t.Errorf("parseLevel(verbose) = %v, want info", got)
	}
	if got := parseLevel(""); got != slog.LevelInfo {
		t.Errorf("parseLevel(empty) = %v, want info", got)
	}
	if got := parseLevel("WARN"); got != slog.LevelWarn {
		t.Errorf("parseLevel(WARN) = %v, want warn", got)
	}
}
