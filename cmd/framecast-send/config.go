package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type fileConfig struct {
	Destination   string `toml:"destination"`
	SubframeSizes []int  `toml:"subframe_sizes"`
	Frames        int    `toml:"frames"`
	Interval      string `toml:"interval"`
	LogLevel      string `toml:"log_level"`
}

type config struct {
	Destination   string
	SubframeSizes []int
	Frames        int
	Interval      time.Duration
	LogLevel      string
}

func defaultConfig() config {
	return config{
		Destination:   "127.0.0.1:9876",
		SubframeSizes: []int{2801},
		Frames:        100,
		Interval:      33 * time.Millisecond,
		LogLevel:      "info",
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
		return config{}, fmt.Errorf("load sender config: %w", err)
	}

	if meta.IsDefined("destination") {
		cfg.Destination = strings.TrimSpace(raw.Destination)
	}

	if meta.IsDefined("subframe_sizes") {
		if len(raw.SubframeSizes) == 0 {
			return config{}, fmt.Errorf("subframe_sizes must not be empty")
		}
		cfg.SubframeSizes = raw.SubframeSizes
	}

	if meta.IsDefined("frames") {
		cfg.Frames = raw.Frames
	}

	if meta.IsDefined("interval") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Interval))
		if err != nil {
			return config{}, fmt.Errorf("parse interval: %w", err)
		}
		cfg.Interval = d
	}

	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	return cfg, nil
}
