package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"cluegen/internal/config"
	"cluegen/internal/store"
)

// Server exposes simulation and the clue journal to MCP clients, so tuning
// can be explored conversationally.
type Server struct {
	cfg        *config.ProjectConfig
	population *config.Population
	db         store.Store
	mcp        *sdk.Server
}

func NewServer(cfg *config.ProjectConfig, population *config.Population, db store.Store, version string) *Server {
	s := &Server{
		cfg:        cfg,
		population: population,
		db:         db,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "cluegen",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
