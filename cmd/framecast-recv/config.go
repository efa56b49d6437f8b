package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/opd-ai/framecast"
)

type fileConfig struct {
	Bind          string `toml:"bind"`
	SubframeCount int    `toml:"subframe_count"`
	Timeout       string `toml:"timeout"`
	LogLevel      string `toml:"log_level"`
}

type config struct {
	Bind     string
	Options  framecast.Options
	LogLevel string
}

func defaultConfig() config {
	return config{
		Bind: ":9876",
		Options: framecast.Options{
			SubframeCount: 1,
			Timeout:       500 * time.Millisecond,
		},
		LogLevel: "info",
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, fmt.Errorf("load receiver config: %w", err)
	}

	if meta.IsDefined("bind") {
		cfg.Bind = strings.TrimSpace(raw.Bind)
	}

	if meta.IsDefined("subframe_count") {
		cfg.Options.SubframeCount = raw.SubframeCount
	}

	if meta.IsDefined("timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Timeout))
		if err != nil {
			return config{}, fmt.Errorf("parse timeout: %w", err)
		}
		cfg.Options.Timeout = d
	}

	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	return cfg, nil
}
