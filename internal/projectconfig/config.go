// Package projectconfig provides the ProjectConfig struct and loader for
// .scoreboard.yaml configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up by Load.
const FileName = ".scoreboard.yaml"

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultServerHost = "127.0.0.1"
	DefaultServerPort = 3000

	DefaultPageTitle = "Brain-Score Leaderboard"

	DefaultPublishBlob = "index.html"
)

// Environment variables that override file values.
const (
	EnvDatabaseURL = "DATABASE_URL"
	EnvPort        = "SCOREBOARD_PORT"
	EnvSnapshot    = "SCOREBOARD_SNAPSHOT"
)

// ServerConfig holds dashboard server settings.
type ServerConfig struct {
	Host           string   `yaml:"host,omitempty"`
	Port           int      `yaml:"port,omitempty"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// DatabaseConfig points at the Postgres leaderboard tables.
type DatabaseConfig struct {
	DSN string `yaml:"dsn,omitempty"`
}

// SnapshotConfig points at a YAML or JSON snapshot file. It is used when no
// database DSN is configured.
type SnapshotConfig struct {
	Path string `yaml:"path,omitempty"`
}

// PageConfig holds the chrome around the leaderboard table.
type PageConfig struct {
	Title string `yaml:"title,omitempty"`
	// Intro is markdown.
	Intro string `yaml:"intro,omitempty"`
}

// PublishConfig holds the Azure Blob Storage target for `scoreboard publish`.
type PublishConfig struct {
	AccountURL string `yaml:"account_url,omitempty"`
	Container  string `yaml:"container,omitempty"`
	Blob       string `yaml:"blob,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .scoreboard.yaml.
type ProjectConfig struct {
	Server   ServerConfig   `yaml:"server,omitempty"`
	Database DatabaseConfig `yaml:"database,omitempty"`
	Snapshot SnapshotConfig `yaml:"snapshot,omitempty"`
	Page     PageConfig     `yaml:"page,omitempty"`
	Publish  PublishConfig  `yaml:"publish,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Server: ServerConfig{
			Host: DefaultServerHost,
			Port: DefaultServerPort,
		},
		Page: PageConfig{
			Title: DefaultPageTitle,
		},
		Publish: PublishConfig{
			Blob: DefaultPublishBlob,
		},
	}
}

// Load finds .scoreboard.yaml by walking up from startDir (max 10 levels),
// merges it over the defaults and then applies environment overrides.
// If no config file is found, the defaults (plus environment) are returned
// with a nil error. Real I/O errors are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	switch {
	case err == nil:
		if err := mergeFile(cfg, data); err != nil {
			return nil, err
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	applyEnv(cfg)
	return cfg, nil
}

// LoadFile reads the config at path instead of searching for one.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	cfg := New()
	if err := mergeFile(cfg, data); err != nil {
		return nil, err
	}
	applyEnv(cfg)
	return cfg, nil
}

// Marshal encodes cfg as YAML.
func Marshal(cfg *ProjectConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

func mergeFile(cfg *ProjectConfig, data []byte) error {
	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parsing %s: %w", FileName, err)
	}
	mergeConfig(cfg, &fileCfg)
	return nil
}

// findConfigFile walks up from dir looking for .scoreboard.yaml (max 10
// levels). Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) ([]byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	// Server
	if src.Server.Host != "" {
		dst.Server.Host = src.Server.Host
	}
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if len(src.Server.AllowedOrigins) > 0 {
		dst.Server.AllowedOrigins = src.Server.AllowedOrigins
	}

	if src.Database.DSN != "" {
		dst.Database.DSN = src.Database.DSN
	}
	if src.Snapshot.Path != "" {
		dst.Snapshot.Path = src.Snapshot.Path
	}

	// Page
	if src.Page.Title != "" {
		dst.Page.Title = src.Page.Title
	}
	if src.Page.Intro != "" {
		dst.Page.Intro = src.Page.Intro
	}

	// Publish
	if src.Publish.AccountURL != "" {
		dst.Publish.AccountURL = src.Publish.AccountURL
	}
	if src.Publish.Container != "" {
		dst.Publish.Container = src.Publish.Container
	}
	if src.Publish.Blob != "" {
		dst.Publish.Blob = src.Publish.Blob
	}
}

func applyEnv(cfg *ProjectConfig) {
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv(EnvSnapshot); v != "" {
		cfg.Snapshot.Path = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			cfg.Server.Port = port
		}
	}
}
