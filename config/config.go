package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// AudioConfig selects the engine's audio device settings
type AudioConfig struct {
	Enabled    bool `json:"enabled"`
	SampleRate int  `json:"sampleRate,omitempty"`
	BlockSize  int  `json:"blockSize,omitempty"`
}

// MirrorConfig tunes the array mirrors
type MirrorConfig struct {
	RefreshMs int `json:"refreshMs,omitempty"`
	Capacity  int `json:"capacity,omitempty"`
}

// MIDIConfig selects inputs and maps controllers to receive names
type MIDIConfig struct {
	Inputs []string          `json:"inputs,omitempty"` // port name substrings; empty = all
	CCMap  map[string]string `json:"ccMap,omitempty"`  // "CC number" -> receive name
}

// UIConfig stores UI preferences
type UIConfig struct {
	Palette string `json:"palette,omitempty"` // GPL file
	Zoom    int    `json:"zoom,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Audio  AudioConfig  `json:"audio"`
	Mirror MirrorConfig `json:"mirror,omitempty"`
	MIDI   MIDIConfig   `json:"midi,omitempty"`
	UI     UIConfig     `json:"ui,omitempty"`
	Debug  bool         `json:"debug,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 48000,
			BlockSize:  64,
		},
		Mirror: MirrorConfig{
			RefreshMs: 100,
			Capacity:  8192,
		},
		MIDI: MIDIConfig{
			CCMap: map[string]string{"1": "cutoff"},
		},
		UI: UIConfig{
			Zoom: 1,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-patchbridge"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads a config file. Missing fields keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path, creating its directory
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// normalize replaces out-of-range values with defaults
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Audio.SampleRate <= 0 {
		c.Audio.SampleRate = def.Audio.SampleRate
	}
	if c.Audio.BlockSize <= 0 {
		c.Audio.BlockSize = def.Audio.BlockSize
	}
	if c.Mirror.RefreshMs <= 0 {
		c.Mirror.RefreshMs = def.Mirror.RefreshMs
	}
	if c.Mirror.Capacity <= 0 {
		c.Mirror.Capacity = def.Mirror.Capacity
	}
	if c.UI.Zoom != 2 {
		c.UI.Zoom = 1
	}
}

// CCMap returns the controller map keyed by controller number. Entries with
// a key that isn't a number from 0 to 127 are skipped.
func (c *Config) CCMap() map[int]string {
	out := make(map[int]string, len(c.MIDI.CCMap))
	for k, name := range c.MIDI.CCMap {
		n, err := strconv.Atoi(k)
		if err != nil || n < 0 || n > 127 || name == "" {
			continue
		}
		out[n] = name
	}
	return out
}
