package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	// Library settings
	Library LibraryConfig `koanf:"library"`

	// Player settings
	Player PlayerConfig `koanf:"player"`

	// UI settings
	UI UIConfig `koanf:"ui"`

	// Desktop notification settings
	Notifications NotificationsConfig `koanf:"notifications"`

	// Last.fm scrobbling (enables scrobbling when configured)
	Lastfm LastfmConfig `koanf:"lastfm"`

	// Key binding overrides, action name -> key (see internal/keymap)
	Keys map[string]string `koanf:"keys"`
}

// LibraryConfig holds music library configuration.
type LibraryConfig struct {
	Roots []string `koanf:"roots"` // directories scanned for audio files
}

// PlayerConfig holds external player configuration.
type PlayerConfig struct {
	Command string `koanf:"command"` // player binary (default: "mpv")
	Volume  *int   `koanf:"volume"`  // startup volume 0-100 (default: 100)
}

// UIConfig holds appearance configuration.
type UIConfig struct {
	Icons string `koanf:"icons"` // "nerd", "unicode", or "none"
}

// NotificationsConfig holds desktop notification configuration.
type NotificationsConfig struct {
	Enabled *bool `koanf:"enabled"` // track-change notifications (default: true)
}

// LastfmConfig holds Last.fm scrobbling configuration.
type LastfmConfig struct {
	APIKey     string `koanf:"api_key"`
	APISecret  string `koanf:"api_secret"`
	SessionKey string `koanf:"session_key"`
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	configPaths := getConfigPaths()

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	// Expand ~ in library roots and drop trailing slashes
	for i, root := range cfg.Library.Roots {
		cfg.Library.Roots[i] = strings.TrimSuffix(expandPath(root), "/")
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/musium/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "musium", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// HasLibraryRoots returns true if at least one library root is configured.
func (c *Config) HasLibraryRoots() bool {
	return len(c.Library.Roots) > 0
}

// HasLastfmConfig returns true if Last.fm scrobbling is fully configured.
func (c *Config) HasLastfmConfig() bool {
	return c.Lastfm.APIKey != "" && c.Lastfm.APISecret != "" && c.Lastfm.SessionKey != ""
}

// NotificationsEnabled reports whether track-change notifications should fire.
// Defaults to true when the key is absent.
func (c *Config) NotificationsEnabled() bool {
	if c.Notifications.Enabled == nil {
		return true
	}
	return *c.Notifications.Enabled
}

// PlayerCommand returns the configured player binary with the default applied.
func (c *Config) PlayerCommand() string {
	if c.Player.Command == "" {
		return "mpv"
	}
	return c.Player.Command
}

// PlayerVolume returns the startup volume clamped to 0-100. Unset defaults
// to 100; an explicit 0 means start muted.
func (c *Config) PlayerVolume() int {
	if c.Player.Volume == nil {
		return 100
	}
	return min(max(*c.Player.Volume, 0), 100)
}
