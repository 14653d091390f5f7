package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 500, cfg.Retrieval.ChunkSize)
	assert.Equal(t, 50, cfg.Retrieval.ChunkOverlap)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leavedesk.yaml")
	body := `
llm:
  model: gemini-2.0-flash
  timeout: 30s
server:
  addr: ":9090"
logging:
  debug_mode: true
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Model)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.True(t, cfg.Logging.DebugMode)
	assert.Equal(t, 30*time.Second, cfg.LLMTimeout())
	// Untouched sections keep defaults.
	assert.Equal(t, 3, cfg.Retrieval.TopK)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "test-key")
	t.Setenv("GEMINI_MODEL", "gemini-exp")
	t.Setenv("LEAVEDESK_ADDR", ":7000")
	t.Setenv("LEAVEDESK_DEBUG", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "test-key", cfg.LLM.APIKey)
	assert.Equal(t, "gemini-exp", cfg.LLM.Model)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.True(t, cfg.Logging.DebugMode)
	assert.NoError(t, cfg.Validate())
}

func TestValidateRequiresAPIKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LLM.APIKey = ""
	assert.Error(t, cfg.Validate())
}

func TestLLMTimeoutFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LLM.Timeout = "bogus"
	assert.Equal(t, 2*time.Minute, cfg.LLMTimeout())
}

func TestMalformedFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm: ["), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}
