package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"shelfmerge/internal/adapters/filestore"
	mcpadapter "shelfmerge/internal/adapters/mcp"
	"shelfmerge/internal/adapters/sqlite"
	"shelfmerge/internal/config"
	"shelfmerge/internal/domain"
	"shelfmerge/internal/logging"
	"shelfmerge/internal/ports"
)

func main() {
	cfgFlag := flag.String("config", "", "config file (default $XDG_CONFIG_HOME/shelfmerge/config.yaml)")
	storeFlag := flag.String("store", "", "collection store path (overrides config)")
	ttlFlag := flag.Duration("cache-ttl", 30*time.Second, "how long a loaded collection is reused")
	flag.Parse()

	// stdout carries the protocol; logs go to stderr as JSON
	logger := logging.New(logging.Config{Level: "info", Format: "json", Output: os.Stderr})

	v, err := config.NewViper(*cfgFlag)
	if err != nil {
		logger.Fatal().Err(err).Msg("shelfmerge-mcp")
	}
	if *storeFlag != "" {
		v.Set(config.KeyStorePath, *storeFlag)
	}
	cfg, err := config.Load(v)
	if err != nil {
		logger.Fatal().Err(err).Msg("shelfmerge-mcp")
	}
	logger = logger.Level(logging.ParseLevel(cfg.Log.Level))

	store, err := openStore(cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("store", cfg.Store.Path).Msg("shelfmerge-mcp")
	}
	defer store.Close()

	mcpServer := server.NewMCPServer(
		"shelfmerge-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	cached := mcpadapter.NewCachedStore(store, *ttlFlag)
	mcpadapter.RegisterReadTools(mcpServer, cached, domain.NewEvaluator(domain.WithIgnoredTags(cfg.IgnoredTags...)))

	logger.Info().Str("store", store.Location()).Msg("serving collection over stdio")
	if err := server.ServeStdio(mcpServer,
		server.WithStdioContextFunc(func(ctx context.Context) context.Context {
			return logging.WithLogger(ctx, &logger)
		}),
	); err != nil {
		logger.Fatal().Err(err).Msg("shelfmerge-mcp")
	}
}

func openStore(cfg *config.Config) (ports.CollectionStore, error) {
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		return sqlite.Open(cfg.Store.Path)
	case config.BackendYAML:
		return filestore.New(cfg.Store.Path, filestore.YAMLCodec{}), nil
	default:
		return filestore.New(cfg.Store.Path, filestore.JSONCodec{}), nil
	}
}
