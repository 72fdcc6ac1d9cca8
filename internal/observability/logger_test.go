package observability

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ironsheep/image-alter-mcp/internal/config"
)

func TestSetupLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "alter.log")

	logger, err := SetupLogger(config.LogConfig{
		Level:   "debug",
		Format:  "json",
		Outputs: []string{path},
	})
	require.NoError(t, err)
	t.Cleanup(func() { zap.ReplaceGlobals(zap.NewNop()) })

	logger.Debug("hello", zap.String("who", "tests"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"who":"tests"`)
}

func TestSetupLogger_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alter.log")

	logger, err := SetupLogger(config.LogConfig{Level: "warn", Format: "json", Outputs: []string{path}})
	require.NoError(t, err)
	t.Cleanup(func() { zap.ReplaceGlobals(zap.NewNop()) })

	logger.Info("quiet")
	logger.Warn("loud")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "quiet")
	assert.Contains(t, string(data), "loud")
}

func TestSetupLogger_Rotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rotated.log")

	logger, err := SetupLogger(config.LogConfig{
		Level:    "info",
		Outputs:  []string{"ignored.log"},
		Rotation: config.RotationConfig{Enable: true, Filename: path},
	})
	require.NoError(t, err)
	t.Cleanup(func() { zap.ReplaceGlobals(zap.NewNop()) })

	logger.Info("rotating")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "rotating")
}

func TestSetupLogger_BadLevel(t *testing.T) {
	_, err := SetupLogger(config.LogConfig{Level: "chatty"})
	assert.Error(t, err)
}

func TestAtLeast(t *testing.T) {
	assert.Equal(t, 10, atLeast(0, 10))
	assert.Equal(t, 50, atLeast(50, 10))
}
