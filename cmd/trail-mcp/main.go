package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"trail-recommender/internal/config"
	"trail-recommender/internal/fuzzy"
	"trail-recommender/internal/logging"
	"trail-recommender/internal/mcpserver"
	"trail-recommender/internal/provider"
	"trail-recommender/internal/recommend"
	"trail-recommender/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		// fallback logger
		zap.NewExample().Fatal("failed to load config", zap.Error(err))
	}
	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		zap.NewExample().Fatal("failed to init logger", zap.Error(err))
	}
	defer logger.Sync()

	system, err := fuzzy.LoadSystem(cfg.RulesPath)
	if err != nil {
		logger.Fatal("failed to load rules", zap.String("path", cfg.RulesPath), zap.Error(err))
	}
	engine, err := recommend.NewEngine(system, recommend.WithWorkers(cfg.ScoringWorkers), recommend.WithLogger(logger))
	if err != nil {
		logger.Fatal("failed to create engine", zap.Error(err))
	}

	p, err := provider.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open trail source", zap.String("source", string(cfg.Source)), zap.Error(err))
	}

	srv := mcpserver.New(nil, cfg, logger, p, engine)
	defer srv.Close()

	switch cfg.Transport {
	case config.TransportStdio:
		runStdio(ctx, srv, logger)
	case config.TransportStreamable:
		runStreamable(ctx, srv, cfg, logger)
	default:
		logger.Fatal("unknown transport", zap.String("transport", string(cfg.Transport)))
	}
}

func runStdio(ctx context.Context, srv *mcpserver.Server, logger *zap.Logger) {
	transport := &mcp.StdioTransport{}
	logger.Info("starting trail-mcp server (stdio)", zap.String("name", version.Name), zap.String("version", version.Version))
	if err := srv.Run(ctx, transport); err != nil {
		logger.Error("server exited with error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func runStreamable(ctx context.Context, srv *mcpserver.Server, cfg config.Config, logger *zap.Logger) {
	addr := fmt.Sprintf("%s:%d", cfg.HTTPAddr, cfg.HTTPPort)
	endpoint := cfg.HTTPPath

	logger.Info("starting trail-mcp server (Streamable HTTP)",
		zap.String("name", version.Name),
		zap.String("version", version.Version),
		zap.String("addr", addr),
		zap.String("endpoint", endpoint),
	)

	mux := http.NewServeMux()
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return srv.MCP() }, nil)
	mux.Handle(endpoint, handler)

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("HTTP server error", zap.Error(err))
	}
	logger.Info("server stopped")
}
