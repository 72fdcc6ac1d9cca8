package server

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/ironsheep/image-alter-mcp/internal/config"
	"github.com/ironsheep/image-alter-mcp/internal/format"
	"github.com/ironsheep/image-alter-mcp/internal/imaging"
	"github.com/ironsheep/image-alter-mcp/internal/pipeline"
	"github.com/ironsheep/image-alter-mcp/internal/processor"
	"github.com/ironsheep/image-alter-mcp/internal/transform"
)

// newTestServer wires a server over the real engine with its session
// directory under a test temp dir.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := config.Default()
	cfg.TempDir = t.TempDir()

	codec := imaging.NewCodec()
	formats := format.New(codec.Formats())
	transforms := transform.Builtin()
	proc := processor.New(codec, formats, pipeline.NewExecutor(transforms, zap.NewNop()), zap.NewNop())

	s := New(cfg, Deps{Processor: proc, Formats: formats, Transforms: transforms, Logger: zap.NewNop()})
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestNew(t *testing.T) {
	s := newTestServer(t)
	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.defaultQuality != 75 {
		t.Errorf("defaultQuality: got %d, want 75", s.defaultQuality)
	}
	if !strings.HasPrefix(filepath.Base(s.SessionDir()), "session-") {
		t.Errorf("session dir: got %s, want session-<uuid>", s.SessionDir())
	}
}

func TestNew_DistinctSessions(t *testing.T) {
	a := newTestServer(t)
	b := newTestServer(t)
	if filepath.Base(a.SessionDir()) == filepath.Base(b.SessionDir()) {
		t.Error("two servers should not share a session directory name")
	}
}

func TestClose_RemovesSessionDir(t *testing.T) {
	s := newTestServer(t)
	if err := os.MkdirAll(s.SessionDir(), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(s.SessionDir(), "img.png"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := os.Stat(s.SessionDir()); !os.IsNotExist(err) {
		t.Error("session dir should be removed")
	}
	// Closing twice is harmless.
	if err := s.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}

func TestMCPRequest_Unmarshal(t *testing.T) {
	tests := []struct {
		name       string
		json       string
		wantID     interface{}
		wantMethod string
	}{
		{
			"string id",
			`{"jsonrpc":"2.0","id":"test-1","method":"tools/list"}`,
			"test-1",
			"tools/list",
		},
		{
			"number id",
			`{"jsonrpc":"2.0","id":42,"method":"ping"}`,
			float64(42), // JSON numbers decode as float64
			"ping",
		},
		{
			"null id",
			`{"jsonrpc":"2.0","id":null,"method":"initialize"}`,
			nil,
			"initialize",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req MCPRequest
			if err := json.Unmarshal([]byte(tt.json), &req); err != nil {
				t.Fatalf("Failed to unmarshal: %v", err)
			}

			if req.ID != tt.wantID {
				t.Errorf("ID: got %v (%T), want %v (%T)", req.ID, req.ID, tt.wantID, tt.wantID)
			}
			if req.Method != tt.wantMethod {
				t.Errorf("Method: got %s, want %s", req.Method, tt.wantMethod)
			}
		})
	}
}

func TestMCPResponse_OmitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(MCPResponse{JSONRPC: "2.0", ID: 1, Result: map[string]interface{}{}})
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	if strings.Contains(string(data), `"error"`) {
		t.Errorf("success response should not carry an error: %s", data)
	}

	data, err = json.Marshal(MCPResponse{JSONRPC: "2.0", ID: 1, Error: &MCPError{Code: -32601, Message: "x"}})
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	if strings.Contains(string(data), `"result"`) || strings.Contains(string(data), `"data"`) {
		t.Errorf("error response should carry neither result nor data: %s", data)
	}
}

func TestHandleRequest_Initialize(t *testing.T) {
	s := newTestServer(t)
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "initialize"})

	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocolVersion: got %v", result["protocolVersion"])
	}
	serverInfo, ok := result["serverInfo"].(map[string]interface{})
	if !ok {
		t.Fatal("serverInfo should be a map")
	}
	if serverInfo["name"] != Name {
		t.Errorf("serverInfo.name: got %v", serverInfo["name"])
	}
}

func TestHandleRequest_Ping(t *testing.T) {
	s := newTestServer(t)
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: "ping-1", Method: "ping"})

	if resp == nil || resp.Error != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.ID != "ping-1" {
		t.Errorf("ID: got %v, want ping-1", resp.ID)
	}
}

func TestHandleRequest_NotificationsInitialized(t *testing.T) {
	s := newTestServer(t)
	if resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", Method: "notifications/initialized"}); resp != nil {
		t.Error("notifications/initialized should return nil response")
	}
}

func TestHandleRequest_MethodNotFound(t *testing.T) {
	s := newTestServer(t)
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "nonexistent/method"})

	if resp == nil || resp.Error == nil {
		t.Fatal("Expected error for unknown method")
	}
	if resp.Error.Code != -32601 {
		t.Errorf("Error code: got %d, want -32601", resp.Error.Code)
	}
}

func TestServe(t *testing.T) {
	s := newTestServer(t)
	in := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		``,
		`not json`,
		`{"jsonrpc":"2.0","id":2,"method":"ping"}`,
	}, "\n")

	var out bytes.Buffer
	if err := s.Serve(strings.NewReader(in), &out); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("responses: got %d, want 2:\n%s", len(lines), out.String())
	}
	var resp MCPResponse
	if err := json.Unmarshal([]byte(lines[1]), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.ID != float64(2) {
		t.Errorf("second response ID: got %v, want 2", resp.ID)
	}
}
