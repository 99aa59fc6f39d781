package wizard

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/indexingco/indexingco-cli/internal/config"
)

func TestValidateInterval(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"5", false},
		{" 30 ", false},
		{"0", true},
		{"-1", true},
		{"2.5", true},
		{"soon", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := validateInterval(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateInterval(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateBaseURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"", false},
		{"https://app.indexing.co/dw", false},
		{"http://localhost:8080", false},
		{"ftp://example.com", true},
		{"not a url", true},
		{"https://", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := validateBaseURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateBaseURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestBuildConfig(t *testing.T) {
	defaults := config.Default()
	w := New(defaults, "/tmp/config.yaml")

	cfg, err := w.buildConfig(answers{
		APIKey:          "  sk-123456789  ",
		BaseURL:         "http://localhost:8080/",
		RefreshInterval: "12",
		Theme:           "Light",
		LogLevel:        "debug",
		Confirm:         true,
	})
	if err != nil {
		t.Fatalf("buildConfig() error = %v", err)
	}

	if cfg.APIKey != "sk-123456789" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.RefreshInterval != 12 || cfg.Theme != "light" || cfg.LogLevel != "debug" {
		t.Errorf("settings = %d %q %q", cfg.RefreshInterval, cfg.Theme, cfg.LogLevel)
	}
	if cfg.Timeout != defaults.Timeout {
		t.Errorf("Timeout = %v, want default %v", cfg.Timeout, defaults.Timeout)
	}
	if defaults.APIKey != "" {
		t.Error("buildConfig modified the defaults")
	}
}

func TestBuildConfigRejects(t *testing.T) {
	valid := answers{APIKey: "key", RefreshInterval: "5", Theme: "dark", LogLevel: "info"}

	tests := []struct {
		name   string
		mutate func(*answers)
	}{
		{"missing key", func(a *answers) { a.APIKey = " " }},
		{"bad interval", func(a *answers) { a.RefreshInterval = "0" }},
		{"bad theme", func(a *answers) { a.Theme = "neon" }},
		{"bad log level", func(a *answers) { a.LogLevel = "trace" }},
		{"bad url", func(a *answers) { a.BaseURL = "ftp://x" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid
			tt.mutate(&a)
			if _, err := New(nil, "").buildConfig(a); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestInitialAnswers(t *testing.T) {
	w := New(&config.Config{APIKey: "k", RefreshInterval: 0}, "")
	a := w.initialAnswers()

	if a.RefreshInterval != "5" {
		t.Errorf("RefreshInterval = %q, want default 5", a.RefreshInterval)
	}
	if a.Theme != "dark" || a.LogLevel != "info" {
		t.Errorf("Theme %q LogLevel %q", a.Theme, a.LogLevel)
	}
	if !a.Confirm {
		t.Error("confirm should default to yes")
	}
}

func TestRunPlain(t *testing.T) {
	var out bytes.Buffer

	got, err := runPlain(context.Background(), &out, "Listing pipelines", func(context.Context) (int, error) {
		return 3, nil
	})
	if err != nil || got != 3 {
		t.Fatalf("runPlain() = %d, %v", got, err)
	}
	if !strings.Contains(out.String(), "✓ Listing pipelines") {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	_, err = runPlain(context.Background(), &out, "Deleting", func(context.Context) (string, error) {
		return "", errors.New("boom")
	})
	if err == nil || !strings.Contains(out.String(), "Deleting failed: boom") {
		t.Errorf("err = %v output = %q", err, out.String())
	}
}
