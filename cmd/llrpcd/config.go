package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/sednev/llrpc/internal/engine"
)

type fileConfig struct {
	LocalAddr         string `toml:"local_addr"`
	RemoteAddr        string `toml:"remote_addr"`
	HeartbeatInterval string `toml:"heartbeat_interval"`
	PollTimeout       string `toml:"poll_timeout"`
	TTL               int    `toml:"ttl"`
	DebugAddr         string `toml:"debug_addr"`
}

func loadConfig(path string) (engine.Config, error) {
	cfg := engine.DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return engine.Config{}, fmt.Errorf("load llrpcd config: %w", err)
	}

	if meta.IsDefined("local_addr") {
		cfg.LocalAddr = strings.TrimSpace(raw.LocalAddr)
	}

	if meta.IsDefined("remote_addr") {
		cfg.RemoteAddr = strings.TrimSpace(raw.RemoteAddr)
	}

	if meta.IsDefined("heartbeat_interval") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.HeartbeatInterval))
		if err != nil {
			return engine.Config{}, fmt.Errorf("parse heartbeat_interval: %w", err)
		}
		cfg.HeartbeatInterval = d
	}

	if meta.IsDefined("poll_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.PollTimeout))
		if err != nil {
			return engine.Config{}, fmt.Errorf("parse poll_timeout: %w", err)
		}
		cfg.PollTimeout = d
	}

	if meta.IsDefined("ttl") {
		cfg.TTL = raw.TTL
	}

	if meta.IsDefined("debug_addr") {
		cfg.DebugAddr = strings.TrimSpace(raw.DebugAddr)
	}

	return cfg, nil
}
