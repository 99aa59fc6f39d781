package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestForName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"dark", "dark"},
		{"light", "light"},
		{"MONO", "mono"},
		{"", "dark"},
		{"unknown", "dark"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ForName(tt.name).Colors.Name; got != tt.want {
				t.Errorf("ForName(%q) = %s, want %s", tt.name, got, tt.want)
			}
		})
	}
}

func TestMonoStatusesShareColor(t *testing.T) {
	c := MonoColors()
	if c.Success != c.Error || c.Error != c.Warning {
		t.Errorf("mono palette should not distinguish statuses: %v %v %v", c.Success, c.Warning, c.Error)
	}
}

func TestPipelineStatus(t *testing.T) {
	th := Default()
	tests := []struct {
		status string
		want   lipgloss.TerminalColor
	}{
		{"running", th.Colors.Success},
		{"paused", th.Colors.Warning},
		{"stopped", th.Colors.TextMuted},
		{"", th.Colors.TextMuted},
	}
	for _, tt := range tests {
		if got := th.PipelineStatus(tt.status).GetForeground(); got != tt.want {
			t.Errorf("PipelineStatus(%q) foreground = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestActivityStatus(t *testing.T) {
	th := Default()
	if icon, _ := th.ActivityStatus("error"); icon != th.Icons.Error {
		t.Errorf("error icon = %q", icon)
	}
	if icon, _ := th.ActivityStatus("whatever"); icon != th.Icons.Info {
		t.Errorf("fallback icon = %q", icon)
	}
}
