// Package config handles the XDG configuration directory, the optional
// config.yaml file and the credential file paths.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"dailytask/internal/session"
)

const (
	// AppName is the application directory name.
	AppName = "dailytask"

	// ConfigFile is the optional settings filename.
	ConfigFile = "config.yaml"

	// SessionFile stores the session credential of the HTTP backend.
	SessionFile = "session.json"

	// OAuthClientFile is the OAuth client credentials filename (google backend).
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename (google backend).
	TokenFile = "token.json"

	// LogFile receives debug logs while the terminal UI is open.
	LogFile = "dailytask.log"

	// DefaultServerURL is the task service address used when none is configured.
	DefaultServerURL = "http://localhost:4001"
)

// Backend names.
const (
	BackendHTTP   = "http"
	BackendGoogle = "google"
)

// Environment overrides.
const (
	EnvBackend   = "DAILYTASK_BACKEND"
	EnvServerURL = "DAILYTASK_SERVER_URL"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `yaml:"-"`

	// Backend selects the task service implementation ("http" or "google").
	Backend string `yaml:"backend"`

	// ServerURL is the base URL of the HTTP task service.
	ServerURL string `yaml:"server_url"`

	// RequestTimeout bounds each remote call. Zero leaves it to the transport.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// LogLevel is the logrus level used when --debug is not given.
	LogLevel string `yaml:"log_level"`

	// Debug enables debug logging.
	Debug bool `yaml:"-"`

	// Quiet suppresses informational output.
	Quiet bool `yaml:"-"`
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/dailytask or $HOME/.config/dailytask.
// Settings come from config.yaml when present, then from the environment.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{
		Dir:       dir,
		Backend:   BackendHTTP,
		ServerURL: DefaultServerURL,
	}
	if err := cfg.load(); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// load reads config.yaml if it exists.
func (c *Config) load() error {
	data, err := os.ReadFile(c.FilePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", c.FilePath(), err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", c.FilePath(), err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvBackend); v != "" {
		c.Backend = v
	}
	if v := os.Getenv(EnvServerURL); v != "" {
		c.ServerURL = v
	}
}

// Validate checks the backend name and normalizes the server URL.
func (c *Config) Validate() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	switch c.Backend {
	case "":
		c.Backend = BackendHTTP
	case BackendHTTP, BackendGoogle:
	default:
		return fmt.Errorf("unknown backend: %s", c.Backend)
	}
	c.ServerURL = strings.TrimRight(strings.TrimSpace(c.ServerURL), "/")
	if c.ServerURL == "" {
		c.ServerURL = DefaultServerURL
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("invalid request_timeout: %s", c.RequestTimeout)
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// FilePath returns the path to config.yaml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// SessionPath returns the path to the HTTP session credential file.
func (c *Config) SessionPath() string {
	return filepath.Join(c.Dir, SessionFile)
}

// LogPath returns the path to the terminal UI debug log.
func (c *Config) LogPath() string {
	return filepath.Join(c.Dir, LogFile)
}

// Session returns the credential store of the selected backend.
func (c *Config) Session() *session.Store {
	if c.Backend == BackendGoogle {
		return session.New(c.TokenPath())
	}
	return session.New(c.SessionPath())
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}
