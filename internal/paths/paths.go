package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// AppName is the application name used in config paths
	AppName = "indexingco"

	// ConfigFileName is the name of the user config file
	ConfigFileName = "config.yaml"

	// ProjectConfigFileName is looked up in the working directory
	ProjectConfigFileName = ".indexingco.yaml"

	// LogFileName is the name of the log file inside the state directory
	LogFileName = "indexingco.log"

	// ConfigEnvVar overrides the config file location
	ConfigEnvVar = "INDEXINGCO_CONFIG"
)

// ConfigSource indicates where a config file came from
type ConfigSource int

const (
	SourceNone ConfigSource = iota
	SourceUserConfig
	SourceProjectConfig
	SourceEnvVar
	SourceCLIFlag
)

func (s ConfigSource) String() string {
	switch s {
	case SourceUserConfig:
		return "user config"
	case SourceProjectConfig:
		return "project config"
	case SourceEnvVar:
		return "environment variable"
	case SourceCLIFlag:
		return "CLI flag"
	default:
		return "defaults"
	}
}

// Paths provides access to all application paths following XDG Base Directory specification
type Paths struct {
	// UserConfigDir is the user's config directory (~/.config/indexingco)
	UserConfigDir string

	// UserStateDir is the user's state directory (~/.local/state/indexingco), home of the log file
	UserStateDir string

	// WorkDir is searched for a project config file
	WorkDir string

	usingFallbacks map[string]bool
}

// New creates a new Paths instance with XDG-compliant directories
func New() (*Paths, error) {
	p := &Paths{
		usingFallbacks: make(map[string]bool),
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user config directory: %w", err)
	}
	p.UserConfigDir = filepath.Join(configDir, AppName)

	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		stateDir = filepath.Join(homeDir, ".local", "state")
	}
	p.UserStateDir = filepath.Join(stateDir, AppName)

	if cwd, err := os.Getwd(); err == nil {
		p.WorkDir = cwd
	}

	return p, nil
}

// UserConfigFile returns the path to the user's main config file
func (p *Paths) UserConfigFile() string {
	return filepath.Join(p.UserConfigDir, ConfigFileName)
}

// ProjectConfigFile returns the project config path, or "" when there is no work dir
func (p *Paths) ProjectConfigFile() string {
	if p.WorkDir == "" {
		return ""
	}
	return filepath.Join(p.WorkDir, ProjectConfigFileName)
}

// LogFile returns the path of the log file
func (p *Paths) LogFile() string {
	return filepath.Join(p.UserStateDir, LogFileName)
}

// ResolveConfig picks the config file to read. Precedence: explicit flag,
// INDEXINGCO_CONFIG, project file in the working directory, user file.
// An explicit or env path is returned even if it does not exist yet.
func (p *Paths) ResolveConfig(explicit string) (string, ConfigSource) {
	if explicit != "" {
		return explicit, SourceCLIFlag
	}
	if env := os.Getenv(ConfigEnvVar); env != "" {
		return env, SourceEnvVar
	}
	if project := p.ProjectConfigFile(); project != "" && fileExists(project) {
		return project, SourceProjectConfig
	}
	if user := p.UserConfigFile(); fileExists(user) {
		return user, SourceUserConfig
	}
	return "", SourceNone
}

// UsingFallback reports whether the named directory ("config" or "state") was relocated
func (p *Paths) UsingFallback(name string) bool {
	return p.usingFallbacks[name]
}

type dirSpec struct {
	path     *string
	pathName string
	critical bool
	purpose  string
}

// EnsureDirs creates the config and state directories with permission 0700.
// The state directory falls back to the temp dir on permission errors; only
// the config directory is critical.
func (p *Paths) EnsureDirs() error {
	if p.usingFallbacks == nil {
		p.usingFallbacks = make(map[string]bool)
	}

	specs := []dirSpec{
		{&p.UserConfigDir, "config", true, "configuration"},
		{&p.UserStateDir, "state", false, "state storage"},
	}

	for _, spec := range specs {
		if err := p.ensureDir(spec); err != nil {
			if spec.critical {
				return err
			}
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	return nil
}

func (p *Paths) ensureDir(spec dirSpec) error {
	originalPath := *spec.path

	if err := os.MkdirAll(originalPath, 0700); err != nil {
		if os.IsPermission(err) {
			if !spec.critical {
				if fallbackErr := p.tryFallbackDir(spec, originalPath); fallbackErr == nil {
					return nil
				}
			}
			return p.formatPermissionError(originalPath, spec.purpose, err)
		}
		return fmt.Errorf("failed to create %s directory %s: %w", spec.purpose, originalPath, err)
	}

	return nil
}

func (p *Paths) tryFallbackDir(spec dirSpec, originalPath string) error {
	fallbackPath := filepath.Join(os.TempDir(), fmt.Sprintf("%s-%s", AppName, spec.pathName))

	if err := os.MkdirAll(fallbackPath, 0700); err != nil {
		return fmt.Errorf("fallback directory creation failed: %w", err)
	}

	*spec.path = fallbackPath
	p.usingFallbacks[spec.pathName] = true

	fmt.Fprintf(os.Stderr, "Warning: using fallback %s directory: %s (permission denied for %s)\n",
		spec.purpose, fallbackPath, originalPath)

	return nil
}

func (p *Paths) formatPermissionError(path, purpose string, originalErr error) error {
	parent := filepath.Dir(path)
	return fmt.Errorf(
		"permission denied: cannot create %s directory %s\n\n"+
			"Possible solutions:\n"+
			"  1. Fix permissions: sudo chown -R $USER %s\n"+
			"  2. Set custom location: export XDG_CONFIG_HOME=/tmp/%s-config\n"+
			"  3. Check parent directory exists and is writable: %s\n\n"+
			"Original error: %v",
		purpose, path, parent, AppName, parent, originalErr)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
