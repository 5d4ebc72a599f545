package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/OCharnyshevich/minecraft-protocol/internal/config"
	"github.com/OCharnyshevich/minecraft-protocol/internal/logger"
	"github.com/OCharnyshevich/minecraft-protocol/internal/proxy"
)

func main() {
	cfg := config.DefaultConfig()

	configPath := flag.String("config", "", "config file (.yaml, .yml, .toml or .json)")
	envFile := flag.String("env", "", "optional .env file with MCPROTO_* variables")
	flag.StringVar(&cfg.Listen, "listen", cfg.Listen, "address to accept clients on")
	flag.StringVar(&cfg.Upstream, "upstream", cfg.Upstream, "offline-mode server to relay to")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "text, json or console")
	flag.StringVar(&cfg.SessionServer, "session-server", cfg.SessionServer, "session server used to name unknown players (empty: offline only)")
	flag.Parse()

	if err := resolve(cfg, *configPath, *envFile); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	px := proxy.New(cfg.Upstream, log)
	if cfg.SessionServer != "" {
		px.UseSessionServer(cfg.SessionServer)
	}
	if err := px.Start(ctx, cfg.Listen); err != nil {
		log.Error("proxy error", "error", err)
		os.Exit(1)
	}
}

func resolve(cfg *config.Config, path, envFile string) error {
	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}
	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
	return config.Resolve(cfg, path, files, explicit)
}
