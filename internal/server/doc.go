// Package server implements the MCP (Model Context Protocol) server for image
// transformation.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - image_transform: Run a transformation list over an image file and
//     write the result into the session directory
//   - image_formats: List supported formats
//   - image_transformations: List supported transformations
//
// A transform request looks like:
//
//	{
//	  "file": "file:///home/me/photo.jpg",
//	  "format": "png",
//	  "quality": 80,
//	  "actions": ["grayscale", {"rotate": 90}, {"scale": {"maxwidth": 400}}]
//	}
//
// and succeeds with:
//
//	{"file": "/tmp/image-alter/session-.../img.png", "format": "PNG",
//	 "width": 400, "height": 300, "orig_width": 1600, "orig_height": 1200}
//
// # Session Directory
//
// Each server writes its outputs to <temp_dir>/session-<uuid>. Outputs never
// overwrite each other within a session; Close removes the directory.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32602 for bad arguments (missing file, unknown output format)
//   - code: -32000 when the engine rejects or fails the request
//   - message: Short description
//   - data: The engine's message, e.g. "no such transformation: frobnicate"
//
// # Usage
//
//	srv := server.New(cfg, server.Deps{...})
//	defer srv.Close()
//	if err := srv.Run(); err != nil {
//	    logger.Fatal("server error", zap.Error(err))
//	}
package server
