package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"trail-recommender/internal/config"
	"trail-recommender/internal/logging"
	"trail-recommender/internal/mcpserver/prompts"
	"trail-recommender/internal/mcpserver/resources"
	"trail-recommender/internal/mcpserver/tools"
	"trail-recommender/internal/provider"
	"trail-recommender/internal/recommend"
	"trail-recommender/internal/version"
)

type Server struct {
	cfg      config.Config
	logger   *zap.Logger
	provider provider.Provider
	engine   *recommend.Engine
	srv      *mcp.Server
}

func New(impl *mcp.Implementation, cfg config.Config, logger *zap.Logger, p provider.Provider, engine *recommend.Engine) *Server {
	if impl == nil {
		impl = &mcp.Implementation{Name: version.Name, Version: version.Version}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	m := mcp.NewServer(impl, nil)
	deps := tools.Dependencies{Provider: p, Engine: engine, Logger: logging.WithComponent(logger, "mcp"), Config: cfg}
	tools.Register(m, deps)
	prompts.RegisterAll(m, deps)
	resources.RegisterAll(m, deps)
	return &Server{cfg: cfg, logger: logger, provider: p, engine: engine, srv: m}
}

// MCP exposes the underlying server, e.g. for HTTP handlers.
func (s *Server) MCP() *mcp.Server { return s.srv }

// Run runs the server with the provided transport (e.g., &mcp.StdioTransport{}).
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	return s.srv.Run(ctx, transport)
}

// Close releases the trail provider.
func (s *Server) Close() error {
	return provider.Close(s.provider)
}
