package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aicommit.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
api: zhipu
timeout: 90s
ollama:
  base_url: http://gpu-box:11434
  model: qwen2
zhipu:
  api_key: abc.def
  model: glm-4-flash
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "zhipu", cfg.API)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, "http://gpu-box:11434", cfg.Ollama.BaseURL)
	assert.Equal(t, "qwen2", cfg.Ollama.Model)
	assert.Equal(t, "abc.def", cfg.Zhipu.APIKey)
	assert.Equal(t, "glm-4-flash", cfg.Zhipu.Model)
	assert.Empty(t, cfg.Zhipu.BaseURL)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, FileConfig{}, cfg)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unterminated"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestResolveString(t *testing.T) {
	assert.Equal(t, "flag", ResolveString("flag", "env", "file", "def"))
	assert.Equal(t, "env", ResolveString("", "env", "file", "def"))
	assert.Equal(t, "file", ResolveString("", "", "file", "def"))
	assert.Equal(t, "def", ResolveString("", "", "", "def"))
}

func TestResolveDuration(t *testing.T) {
	assert.Equal(t, time.Second, ResolveDuration(time.Second, time.Minute, time.Hour))
	assert.Equal(t, time.Minute, ResolveDuration(0, time.Minute, time.Hour))
	assert.Equal(t, time.Hour, ResolveDuration(0, 0, time.Hour))
}
