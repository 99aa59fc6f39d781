package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, "info")

	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug record written at info level: %s", buf.String())
	}

	l.SetLevel("debug")
	l.Debug("visible", "tab", "pipelines")
	if !strings.Contains(buf.String(), "msg=visible") || !strings.Contains(buf.String(), "tab=pipelines") {
		t.Errorf("expected debug record, got %q", buf.String())
	}
}

func TestNewCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "indexingco.log")

	l, err := New(path, "info")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	l.Info("started")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "msg=started") {
		t.Errorf("log file missing record: %q", string(data))
	}
}
