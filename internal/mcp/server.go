package mcp

import (
	"context"
	"log/slog"

	"github.com/rpggio/countdown/internal/domain/countdown"
	"github.com/rpggio/countdown/internal/domain/event"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// EventService defines event operations needed by MCP.
type EventService interface {
	Create(ctx context.Context, req event.CreateRequest) (*event.Event, error)
	Update(ctx context.Context, ev event.Event) (*event.Event, error)
	Remove(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*event.Event, error)
	ListSortedByDate(ctx context.Context) ([]event.Event, error)
}

// Config contains server configuration.
type Config struct {
	Events        EventService
	Engine        *countdown.Engine
	Mode          countdown.Mode // default format for countdown labels
	AuthToken     string         // bearer token required in http mode when set
	TransportMode string         // "stdio" or "http"
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Engine == nil {
		cfg.Engine = countdown.NewEngine(nil, cfg.Logger)
	}
	if cfg.Mode == "" {
		cfg.Mode = countdown.ModeNumeric
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "countdown",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	// Stdio is local only; auth applies to http when a token is configured
	if cfg.TransportMode != "stdio" && cfg.AuthToken != "" {
		server.AddReceivingMiddleware(authMiddleware(cfg.AuthToken))
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, &toolset{
		events: cfg.Events,
		engine: cfg.Engine,
		mode:   cfg.Mode,
	})

	return server
}
