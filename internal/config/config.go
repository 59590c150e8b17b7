// Package config loads and saves the psgplay player configuration, stored
// as TOML in the user's per-OS config directory.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/kirsle/configdir"

	"p6psg/internal/log"
)

type Config struct {
	Backend BackendConfig `toml:"backend"`
	UI      UIConfig      `toml:"ui"`
	General GeneralConfig `toml:"general"`
}

type BackendConfig struct {
	Name       string `toml:"name"` // "headless" or "synth"
	SampleRate int    `toml:"sample_rate"`
}

type UIConfig struct {
	Name string `toml:"name"` // "term", "trace", or "none"
}

type GeneralConfig struct {
	LogModules string `toml:"log_modules"`
}

func Default() Config {
	return Config{
		Backend: BackendConfig{Name: "synth", SampleRate: 44100},
		UI:      UIConfig{Name: "term"},
	}
}

var dir string = sync.OnceValue(func() string {
	d := configdir.LocalConfig("psgplay")
	if err := configdir.MakePath(d); err != nil {
		log.ModPlayer.Fatalf("failed to create config directory %s: %v", d, err)
	}
	return d
})()

const filename = "config.toml"

// LoadOrDefault loads the configuration from the psgplay config directory,
// falling back to defaults if it is missing or malformed.
func LoadOrDefault() Config {
	cfg := Default()
	if _, err := toml.DecodeFile(filepath.Join(dir, filename), &cfg); err != nil {
		return Default()
	}
	return cfg
}

func Save(cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, filename), buf, 0644)
}
