package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sednev/llrpc/internal/engine"
	"github.com/sednev/llrpc/internal/logging"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to TOML config file")
		localAddr  = flag.String("local", "", "local IPv4 address to bind")
		remoteAddr = flag.String("remote", "", "remote IPv4 heartbeat destination")
		interval   = flag.Duration("interval", 0, "heartbeat interval")
		debugAddr  = flag.String("debug-addr", "", "debug/metrics listen address")
	)
	flag.Parse()

	logger := logging.ConfigureRuntime()

	cfg := engine.DefaultConfig()
	if *configPath != "" {
		loaded, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "llrpcd: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	applyFlagOverrides(&cfg, *localAddr, *remoteAddr, *interval, *debugAddr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc := engine.NewService(cfg, logger)
	if err := svc.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("llrpcd failed")
		fmt.Fprintf(os.Stderr, "llrpcd: %v\n", err)
		os.Exit(1)
	}
}

func applyFlagOverrides(cfg *engine.Config, local, remote string, interval time.Duration, debugAddr string) {
	if local != "" {
		cfg.LocalAddr = local
	}
	if remote != "" {
		cfg.RemoteAddr = remote
	}
	if interval > 0 {
		cfg.HeartbeatInterval = interval
	}
	if debugAddr != "" {
		cfg.DebugAddr = debugAddr
	}
}
