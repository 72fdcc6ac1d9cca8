package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ironsheep/image-alter-mcp/internal/config"
	"github.com/ironsheep/image-alter-mcp/internal/format"
	"github.com/ironsheep/image-alter-mcp/internal/processor"
	"github.com/ironsheep/image-alter-mcp/internal/transform"
)

// Name and Version identify the server during the initialize handshake.
const (
	Name    = "image-alter-mcp"
	Version = "0.1.0"
)

// Transformer runs transform requests.
type Transformer interface {
	ChangeImage(req processor.Request) (*processor.Result, error)
}

// Deps are the engine components the server exposes.
type Deps struct {
	Processor  Transformer
	Formats    *format.Registry
	Transforms *transform.Registry
	Logger     *zap.Logger
}

// Server handles MCP protocol communication
type Server struct {
	proc       Transformer
	formats    *format.Registry
	transforms *transform.Registry
	logger     *zap.Logger

	defaultQuality int
	sessionDir     string
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a server whose outputs go to a fresh session directory under
// cfg.TempDir. The directory is created on first use and removed by Close.
func New(cfg *config.Config, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		proc:           deps.Processor,
		formats:        deps.Formats,
		transforms:     deps.Transforms,
		logger:         logger.Named("server"),
		defaultQuality: cfg.DefaultQuality,
		sessionDir:     filepath.Join(cfg.TempDir, "session-"+uuid.NewString()),
	}
}

// SessionDir is where this server writes its output images.
func (s *Server) SessionDir() string {
	return s.sessionDir
}

// Close removes the session directory and everything written to it.
func (s *Server) Close() error {
	if err := os.RemoveAll(s.sessionDir); err != nil {
		return fmt.Errorf("remove session dir: %w", err)
	}
	return nil
}

// Run serves requests from stdin and writes responses to stdout until stdin
// is closed.
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve handles newline-delimited JSON-RPC requests from r, one at a time,
// writing each response to w.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Warn("failed to parse request", zap.Error(err))
			continue
		}

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				s.logger.Error("failed to encode response", zap.Error(err))
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	s.logger.Debug("request", zap.String("method", req.Method), zap.Any("id", req.ID))

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return s.errorResponse(req.ID, -32601, fmt.Sprintf("Method not found: %s", req.Method), "")
	}
}

func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    Name,
				"version": Version,
			},
		},
	}
}
