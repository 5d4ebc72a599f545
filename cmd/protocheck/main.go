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
	"github.com/OCharnyshevich/minecraft-protocol/internal/schema"
	"github.com/OCharnyshevich/minecraft-protocol/pkg/protocol/registry"
)

func main() {
	cfg := config.DefaultConfig()

	configPath := flag.String("config", "", "config file (.yaml, .yml, .toml or .json)")
	envFile := flag.String("env", "", "optional .env file with MCPROTO_* variables")
	local := flag.String("protocol", "", "local protocol.json; skips the download")
	verbose := flag.Bool("v", false, "list every packet id")
	flag.StringVar(&cfg.SchemaURL, "schema-url", cfg.SchemaURL, "minecraft-data source in go-getter syntax")
	flag.StringVar(&cfg.SchemaVersion, "schema-version", cfg.SchemaVersion, "minecraft-data version directory")
	flag.StringVar(&cfg.SchemaDir, "schema-dir", cfg.SchemaDir, "download directory")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flag.Parse()

	if err := resolve(cfg, *configPath, *envFile); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console"})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	path := *local
	if path == "" {
		log.Info("start downloading schema", "source", cfg.SchemaURL, "version", cfg.SchemaVersion)
		if path, err = schema.Fetch(ctx, cfg.SchemaURL, cfg.SchemaVersion, cfg.SchemaDir); err != nil {
			log.Error("download schema", "error", err)
			os.Exit(1)
		}
		log.Info("done downloading schema", "path", path)
	}

	proto, err := schema.LoadFile(path)
	if err != nil {
		log.Error("load schema", "path", path, "error", err)
		os.Exit(1)
	}

	diffs := schema.Compare(proto, registry.Default)
	schema.WriteSummary(os.Stdout, diffs)

	failed := false
	for _, d := range diffs {
		if *verbose || !d.OK() {
			fmt.Println()
			schema.WriteEntries(os.Stdout, d)
		}
		failed = failed || !d.OK()
	}
	if failed {
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
