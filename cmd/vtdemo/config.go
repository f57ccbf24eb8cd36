package main

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// demoConfig is the on-disk tunable file for vtdemo, read from
// ~/.config/vtdemo/config.toml if present. It is TOML since the tunables
// here are flat scalars a human is expected to hand-edit, and
// BurntSushi/toml is the field's conventional choice for that, per
// SPEC_FULL.md's Domain Stack.
type demoConfig struct {
	Shell           string  `toml:"shell"`
	TabInterval     int     `toml:"tab_interval"`
	BCE             bool    `toml:"bce"`
	BlinkIntervalMs int     `toml:"blink_interval_ms"`
	ActiveRedrawHz  float64 `toml:"active_redraw_hz"`
	PassiveRedrawHz float64 `toml:"passive_redraw_hz"`
}

func defaultDemoConfig() demoConfig {
	return demoConfig{
		Shell:           "",
		TabInterval:     8,
		BCE:             true,
		BlinkIntervalMs: 500,
		ActiveRedrawHz:  60,
		PassiveRedrawHz: 4,
	}
}

func configPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vtdemo.toml"
	}
	return filepath.Join(home, ".config", "vtdemo", "config.toml")
}

func loadDemoConfig() demoConfig {
	cfg := defaultDemoConfig()
	data, err := os.ReadFile(configPath())
	if err != nil {
		return cfg
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return defaultDemoConfig()
	}
	return cfg
}
