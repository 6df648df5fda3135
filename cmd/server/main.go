package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/agenthands/playbill/internal/cache"
	"github.com/agenthands/playbill/internal/config"
	"github.com/agenthands/playbill/internal/core"
	"github.com/agenthands/playbill/internal/driver"
	"github.com/agenthands/playbill/internal/logger"
	"github.com/agenthands/playbill/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Could not load %s: %v. Using defaults", cfgPath, err)
		cfg = config.Default()
		if err := config.ApplyEnv(cfg); err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}

	l, err := logger.New(cfg.Log.Mode)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer l.Sync()

	ctx := context.Background()
	d, err := driver.NewMemgraphDriver(cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password, driver.Options{
		MaxPoolSize:    cfg.Memgraph.MaxPoolSize,
		ConnectTimeout: time.Duration(cfg.Memgraph.ConnectTimeoutSeconds) * time.Second,
	}, l)
	if err != nil {
		l.Fatal("Failed to connect to Memgraph", "error", err)
	}
	defer d.Close(ctx)

	if cfg.Memgraph.BuildIndices {
		if err := d.BuildIndices(ctx); err != nil {
			l.Fatal("Failed to build indices", "error", err)
		}
	}

	var c cache.Cache = cache.Nop{}
	if cfg.Redis.URL != "" {
		client, err := cache.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			l.Warn("Show cache disabled", "error", err)
		} else {
			defer client.Close()
			c = cache.NewRedis(client, time.Duration(cfg.Redis.TTLSeconds)*time.Second, l)
			l.Info("Show cache enabled")
		}
	}

	archive := core.NewArchive(d, c, l, cfg.Concurrency.Validation, cfg.Limits.List)
	srv := server.NewServer(archive, l)
	r := srv.SetupRouter()

	l.Info("Starting server", "port", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		l.Fatal("Server stopped", "error", err)
	}
}
