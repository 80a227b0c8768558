// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package engine

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Settings is the persisted configuration loaded once at startup and
// written back on request; TOML's bare key = value tables are a strict
// superset of the plain key=value line format, so this file doubles as
// the line-oriented settings file the hosting application expects.
type Settings struct {
	MasterVolume   float64 `toml:"master_volume"`
	MusicVolume    float64 `toml:"music_volume"`
	SfxVolume      float64 `toml:"sfx_volume"`
	WindowWidth    int     `toml:"window_width"`
	WindowHeight   int     `toml:"window_height"`
	Fullscreen     bool    `toml:"fullscreen"`
	ChannelCount   int     `toml:"channel_count"`
	TargetFrametime float64 `toml:"target_frametime"`
}

// DefaultSettings returns the values a fresh install starts with.
func DefaultSettings() Settings {
	return Settings{
		MasterVolume:    1,
		MusicVolume:     1,
		SfxVolume:       1,
		WindowWidth:     1280,
		WindowHeight:    720,
		Fullscreen:      false,
		ChannelCount:    2,
		TargetFrametime: 1.0 / 60.0,
	}
}

// LoadSettings reads a TOML settings file, falling back to defaults when
// the file does not exist.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return s, nil
	}
	_, err := toml.DecodeFile(path, &s)
	return s, err
}

// Save writes the settings back to path as TOML.
func (s Settings) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(s)
}
