package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if p.UserConfigDir == "" {
		t.Error("UserConfigDir should not be empty")
	}

	if p.UserStateDir == "" {
		t.Error("UserStateDir should not be empty")
	}

	if !strings.Contains(p.UserConfigDir, AppName) {
		t.Errorf("UserConfigDir should contain '%s', got: %s", AppName, p.UserConfigDir)
	}

	if !strings.Contains(p.UserStateDir, AppName) {
		t.Errorf("UserStateDir should contain '%s', got: %s", AppName, p.UserStateDir)
	}
}

func TestXDGStateHome(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tmpDir)

	p, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	expected := filepath.Join(tmpDir, AppName)
	if p.UserStateDir != expected {
		t.Errorf("UserStateDir = %s, want %s", p.UserStateDir, expected)
	}
	if p.LogFile() != filepath.Join(expected, LogFileName) {
		t.Errorf("LogFile = %s", p.LogFile())
	}
}

func TestEnsureDirs(t *testing.T) {
	tmpDir := t.TempDir()
	p := &Paths{
		UserConfigDir: filepath.Join(tmpDir, "config", AppName),
		UserStateDir:  filepath.Join(tmpDir, "state", AppName),
	}

	if err := p.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs() failed: %v", err)
	}

	for _, dir := range []string{p.UserConfigDir, p.UserStateDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Errorf("directory %s was not created: %v", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", dir)
		}
		if perm := info.Mode().Perm(); perm != 0700 {
			t.Errorf("%s has permissions %o, want 0700", dir, perm)
		}
	}
}

func TestResolveConfig(t *testing.T) {
	tmpDir := t.TempDir()
	userDir := filepath.Join(tmpDir, "user")
	workDir := filepath.Join(tmpDir, "work")
	if err := os.MkdirAll(userDir, 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(workDir, 0700); err != nil {
		t.Fatal(err)
	}

	p := &Paths{UserConfigDir: userDir, WorkDir: workDir}
	t.Setenv(ConfigEnvVar, "")

	if path, source := p.ResolveConfig(""); path != "" || source != SourceNone {
		t.Errorf("expected no config, got %s (%s)", path, source)
	}

	userFile := filepath.Join(userDir, ConfigFileName)
	if err := os.WriteFile(userFile, []byte("theme: dark\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if path, source := p.ResolveConfig(""); path != userFile || source != SourceUserConfig {
		t.Errorf("expected user config, got %s (%s)", path, source)
	}

	projectFile := filepath.Join(workDir, ProjectConfigFileName)
	if err := os.WriteFile(projectFile, []byte("theme: light\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if path, source := p.ResolveConfig(""); path != projectFile || source != SourceProjectConfig {
		t.Errorf("expected project config, got %s (%s)", path, source)
	}

	t.Setenv(ConfigEnvVar, "/from/env.yaml")
	if path, source := p.ResolveConfig(""); path != "/from/env.yaml" || source != SourceEnvVar {
		t.Errorf("expected env config, got %s (%s)", path, source)
	}

	if path, source := p.ResolveConfig("/explicit.yaml"); path != "/explicit.yaml" || source != SourceCLIFlag {
		t.Errorf("expected flag config, got %s (%s)", path, source)
	}
}

func TestConfigSourceString(t *testing.T) {
	tests := []struct {
		source   ConfigSource
		expected string
	}{
		{SourceNone, "defaults"},
		{SourceUserConfig, "user config"},
		{SourceProjectConfig, "project config"},
		{SourceEnvVar, "environment variable"},
		{SourceCLIFlag, "CLI flag"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.source.String(); got != tt.expected {
				t.Errorf("String() = %s, want %s", got, tt.expected)
			}
		})
	}
}
