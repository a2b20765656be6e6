package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/bitsctl/internal/logging"
	"github.com/danmuck/bitsctl/internal/protocol/packet"
	"github.com/rs/zerolog"
)

const defaultInputPath = "input.txt"

type fileConfig struct {
	Input     string `toml:"input"`
	MaxDepth  int    `toml:"max_depth"`
	PrintTree bool   `toml:"print_tree"`
	LogLevel  string `toml:"log_level"`
}

type runConfig struct {
	Input     string
	Limits    packet.Limits
	PrintTree bool
	// LogLevel is applied only when LogLevelSet; otherwise the logging
	// profile and environment decide.
	LogLevel    zerolog.Level
	LogLevelSet bool
}

func defaultRunConfig() runConfig {
	return runConfig{
		Input:  defaultInputPath,
		Limits: packet.DefaultLimits(),
	}
}

func loadRunConfig(path string) (runConfig, error) {
	cfg := defaultRunConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return runConfig{}, fmt.Errorf("load bitsctl config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return runConfig{}, fmt.Errorf("load bitsctl config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("input") {
		input := strings.TrimSpace(raw.Input)
		if input != "" {
			cfg.Input = resolveRelative(path, input)
		}
	}

	if meta.IsDefined("max_depth") {
		if raw.MaxDepth <= 0 {
			return runConfig{}, fmt.Errorf("parse max_depth: must be positive, got %d", raw.MaxDepth)
		}
		cfg.Limits.MaxDepth = raw.MaxDepth
	}

	if meta.IsDefined("print_tree") {
		cfg.PrintTree = raw.PrintTree
	}

	if meta.IsDefined("log_level") {
		if err := cfg.setLogLevel(raw.LogLevel); err != nil {
			return runConfig{}, err
		}
	}

	return cfg, nil
}

func (c *runConfig) setLogLevel(raw string) error {
	lvl, ok := logging.ParseLevel(raw)
	if !ok {
		return fmt.Errorf("parse log_level: unknown level %q", raw)
	}
	c.LogLevel = lvl
	c.LogLevelSet = true
	return nil
}

// resolveRelative anchors a relative path from the config file at the
// config file's directory.
func resolveRelative(configPath string, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(configPath), p)
}
