package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name: "image_transform",
			Description: "Apply an ordered list of transformations to an image file and write the result to a temporary file. " +
				"Returns the output path with the new and original dimensions. Nothing is written if any step fails.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"file": map[string]interface{}{
						"type":        "string",
						"description": "Path or file:// URL of the input image",
					},
					"format": map[string]interface{}{
						"type":        "string",
						"description": "Output format or extension (e.g. png, JPEG). Omit to keep the input format and name.",
					},
					"quality": map[string]interface{}{
						"type":        "integer",
						"minimum":     0,
						"maximum":     100,
						"description": "0-100, worst to best. Out-of-range values are clamped. Lower values also pick faster resampling.",
					},
					"actions": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"oneOf": []interface{}{
								map[string]interface{}{"type": "string"},
								map[string]interface{}{
									"type":          "object",
									"minProperties": 1,
									"maxProperties": 1,
								},
							},
						},
						"description": "Transformations applied in order. Each is a name (\"grayscale\") or an object with one property, " +
							"the name, holding its argument ({\"rotate\": 90}). See image_transformations for the list.",
					},
				},
				"required": []string{"file"},
			},
		},
		{
			Name:        "image_formats",
			Description: "List the image formats the server can read and write, with their MIME types and file extensions.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "image_transformations",
			Description: "List every transformation accepted by image_transform and whether it requires or accepts an argument.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
