package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user preferences loaded from the config file. Every field
// is optional; zero values fall back to the built-in defaults.
//
// The file lives at ~/.config/rosette/config.toml (or under
// $XDG_CONFIG_HOME when set):
//
//	style    = "ink"
//	width    = 1024
//	height   = 1024
//	colors   = ["#f28e2b", "#4e79a7"]
//	cache_dir = "/tmp/rosette-cache"
//	redis_url = "redis://localhost:6379/0"
type Config struct {
	Style    string   `toml:"style"`
	Width    float64  `toml:"width"`
	Height   float64  `toml:"height"`
	Colors   []string `toml:"colors"`
	CacheDir string   `toml:"cache_dir"`
	RedisURL string   `toml:"redis_url"`
	NoCache  bool     `toml:"no_cache"`
}

// ConfigPath returns the config file location.
func ConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// LoadConfig reads the user's config file. A missing file returns a zero
// Config without error; a malformed file returns the decode error.
func LoadConfig() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, nil
	}
	return loadConfigFile(path)
}

func loadConfigFile(path string) (Config, error) {
	var cfg Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Config{}, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
