package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	imgerr "github.com/ironsheep/image-alter-mcp/internal/errors"
	"github.com/ironsheep/image-alter-mcp/internal/format"
	"github.com/ironsheep/image-alter-mcp/internal/processor"
	"github.com/ironsheep/image-alter-mcp/internal/transform"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_transform").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// argError marks a problem with the caller's arguments, reported as
// JSON-RPC "Invalid params" rather than a tool failure.
type argError struct {
	msg string
}

func (e *argError) Error() string { return e.msg }

func invalidArgs(msg string, args ...interface{}) error {
	return &argError{msg: fmt.Sprintf(msg, args...)}
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Argument errors return code -32602; failures inside the engine return
// -32000 with the engine's message as data.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		var ae *argError
		if errors.As(err, &ae) {
			return s.errorResponse(req.ID, -32602, "Invalid params", ae.msg)
		}
		msg := err.Error()
		if msg == "" {
			msg = "unknown"
		}
		s.logger.Info("tool failed",
			zap.String("tool", params.Name),
			zap.String("kind", string(imgerr.KindOf(err))),
			zap.String("error", msg))
		return s.errorResponse(req.ID, -32000, "Tool execution failed", msg)
	}

	text, err := s.marshalResult(params.Name, result)
	if err != nil {
		return s.errorResponse(req.ID, -32603, "Internal error", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": text,
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_transform":
		return s.handleImageTransform(args)
	case "image_formats":
		return s.handleImageFormats()
	case "image_transformations":
		return s.handleImageTransformations()
	default:
		return nil, invalidArgs("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
	if d, ok := data.(string); ok && d == "" {
		data = nil
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// marshalResult converts a tool result to a pretty-printed JSON string.
func (s *Server) marshalResult(tool string, v interface{}) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		s.logger.Error("failed to marshal tool result", zap.String("tool", tool), zap.Error(err))
		return "", fmt.Errorf("marshal %s result: %w", tool, err)
	}
	return string(b), nil
}

// === Transform ===

type imageTransformArgs struct {
	File    string `json:"file"`
	Format  string `json:"format"`
	Quality *int   `json:"quality"`
	Actions []any  `json:"actions"`
}

// localPath accepts a plain path or a file:// URL.
func localPath(file string) (string, error) {
	if !strings.HasPrefix(strings.ToLower(file), "file:") {
		return file, nil
	}
	u, err := url.Parse(file)
	if err != nil {
		return "", invalidArgs("invalid file URL %q: %v", file, err)
	}
	if u.Host != "" && u.Host != "localhost" {
		return "", invalidArgs("file URL %q is not local", file)
	}
	if u.Path == "" {
		return "", invalidArgs("file URL %q has no path", file)
	}
	return u.Path, nil
}

func (s *Server) handleImageTransform(args json.RawMessage) (interface{}, error) {
	var a imageTransformArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, invalidArgs("%v", err)
		}
	}
	if a.File == "" {
		return nil, invalidArgs("file is required")
	}
	path, err := localPath(a.File)
	if err != nil {
		return nil, err
	}

	outFormat := format.Unknown
	if a.Format != "" {
		outFormat = s.formats.ResolveFromPath(a.Format)
		if outFormat == format.Unknown {
			return nil, invalidArgs("can't determine output format")
		}
	}

	quality := s.defaultQuality
	if a.Quality != nil {
		quality = *a.Quality
	}

	return s.proc.ChangeImage(processor.Request{
		InputPath:       path,
		TempDir:         s.sessionDir,
		OutputFormat:    outFormat,
		Transformations: a.Actions,
		Quality:         quality,
	})
}

// === Diagnostics ===

type formatInfo struct {
	Format    format.Token `json:"format"`
	MIME      string       `json:"mime"`
	Extension string       `json:"extension"`
}

func (s *Server) handleImageFormats() (interface{}, error) {
	entries := s.formats.Entries()
	out := make([]formatInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, formatInfo{Format: e.Token, MIME: e.MIME, Extension: format.ToExtension(e.Token)})
	}
	return map[string]interface{}{"formats": out}, nil
}

func (s *Server) handleImageTransformations() (interface{}, error) {
	var descs []transform.Descriptor
	if s.transforms != nil {
		descs = s.transforms.Descriptors()
	}
	return map[string]interface{}{"transformations": descs}, nil
}
