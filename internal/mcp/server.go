// Package mcp exposes the prediction service as Model Context Protocol tools.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/clinical-risk-gateway/internal/domain"
)

// Default server identity, used when the configuration leaves it empty.
const (
	DefaultServerName    = "clinical-risk-gateway"
	DefaultServerVersion = "v1.0.0"
)

// Server represents the risk gateway MCP server
type Server struct {
	service   domain.PredictionService
	mcpServer *mcp.Server
	logger    *logrus.Logger
}

// NewServer creates an MCP server with the prediction tools registered.
func NewServer(cfg domain.MCPConfig, service domain.PredictionService, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	serverInfo := &mcp.Implementation{
		Name:    cfg.ServerName,
		Version: cfg.ServerVersion,
	}
	if serverInfo.Name == "" {
		serverInfo.Name = DefaultServerName
	}
	if serverInfo.Version == "" {
		serverInfo.Version = DefaultServerVersion
	}

	s := &Server{
		service:   service,
		mcpServer: mcp.NewServer(serverInfo, nil),
		logger:    logger,
	}
	s.registerTools()

	return s
}

// Start serves MCP over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("Starting risk gateway MCP server on stdio")

	if err := s.mcpServer.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}

// Connect serves one session over t. It is used to run the server over transports
// other than stdio.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.mcpServer.Connect(ctx, t, nil)
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        ToolPredictRisk,
		Description: "Run one or more clinical risk engines (QRisk3, QDiabetes, QFracture, X05) against a patient record and return the prediction envelope.",
	}, s.handlePredictRisk)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        ToolListEngines,
		Description: "List the installed risk engines with their versions and identifiers.",
	}, s.handleListEngines)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        ToolNormalizePostcode,
		Description: "Validate a UK postcode and return its canonical form.",
	}, s.handleNormalizePostcode)

	s.logger.WithField("tool_count", 3).Debug("Registered MCP tools")
}
