package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestInit_JSON(t *testing.T) {
	if err := Init("debug", "json"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	var buf bytes.Buffer
	SetOutput(&buf)

	WithFields(map[string]interface{}{"request_id": "abc"}).Info("request")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json log line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "request" || entry["request_id"] != "abc" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestInit_Level(t *testing.T) {
	if err := Init("warn", "text"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	var buf bytes.Buffer
	SetOutput(&buf)

	Infof("hidden %d", 1)
	Warnf("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("expected info to be filtered at warn level")
	}
	if !strings.Contains(out, "shown 2") {
		t.Errorf("expected warning in output, got %q", out)
	}
}
