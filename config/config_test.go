package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
log_mode: prod
fetch_timeout: 5s
site:
  base_url: https://ana.so
  content_server_url: http://contentserver:8080
  mime_types: [application/x-stela-page, application/x-stela-forum]
sse:
  buffer_size: 10
`))
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.LogMode)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "https://ana.so", cfg.Site.BaseURL)
	assert.Equal(t, "/api/page", cfg.Site.PagePrefix)
	assert.Len(t, cfg.Site.MimeTypes, 2)
	assert.Equal(t, 10, cfg.SSE.BufferSize)
	assert.Equal(t, 30*time.Second, cfg.SSE.KeepaliveInterval)
	assert.Equal(t, "/mcp", cfg.HTTP.Endpoint)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("site: [unclosed"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(t.TempDir(), "stela.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http:\n  endpoint: /tools\n"), 0o600))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tools", cfg.HTTP.Endpoint)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
