package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Anaso-Internacia/anaso-site-api-models/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePayload(t *testing.T, payload string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "page.json")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))
	return path
}

func TestRunDecode(t *testing.T) {
	path := writePayload(t, `{"title": "a/Hejmo", "layout": "Masonry", "sections": [1]}`)

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, runDecode(&stdout, &stderr, path, false))
	assert.Contains(t, stdout.String(), `"title": "a/Hejmo"`)
	assert.Contains(t, stdout.String(), `"layout": "Unknown"`)
	assert.Contains(t, stdout.String(), `"sections": []`)
	assert.Contains(t, stderr.String(), "unknown_variant\tlayout\tMasonry\n")
	assert.Contains(t, stderr.String(), "skipped\tsections[0]\t")
}

func TestRunDecodeDump(t *testing.T) {
	path := writePayload(t, `{"title": "a/Hejmo"}`)

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, runDecode(&stdout, &stderr, path, true))
	assert.Contains(t, stdout.String(), "stela.Page")
	assert.Contains(t, stdout.String(), `"a/Hejmo"`)
	assert.Empty(t, stderr.String())
}

func TestRunDecodeFails(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, runDecode(&stdout, &stderr, writePayload(t, `["page"]`), false))
	assert.Contains(t, stderr.String(), "malformed payload")

	stderr.Reset()
	assert.Equal(t, 1, runDecode(&stdout, &stderr, filepath.Join(t.TempDir(), "missing.json"), false))
	assert.NotEmpty(t, stderr.String())
	assert.Empty(t, stdout.String())
}

func TestSelectTransport(t *testing.T) {
	transport, err := selectTransport(":8080", false)
	require.NoError(t, err)
	assert.Equal(t, transportHTTP, transport)

	transport, err = selectTransport(":8080", true)
	require.NoError(t, err)
	assert.Equal(t, transportHTTP, transport)

	transport, err = selectTransport("", true)
	require.NoError(t, err)
	assert.Equal(t, transportStdio, transport)

	_, err = selectTransport("", false)
	require.ErrorIs(t, err, errNoTransport)
}

func TestSiteSettings(t *testing.T) {
	cfg := config.Default()
	cfg.Site.BaseURL = "https://ana.so"
	cfg.Site.Groups = []string{"public"}

	settings := siteSettings(cfg)
	assert.Equal(t, "https://ana.so", settings.BaseURL)
	assert.Equal(t, "/api/page", settings.PagePrefix)
	assert.Equal(t, []string{"eo"}, settings.Env.Dimensions)
	assert.Equal(t, []string{"public"}, settings.Env.Groups)
	require.Len(t, settings.MimeTypes, 1)
	assert.Equal(t, "application/x-stela-page", string(settings.MimeTypes[0]))
}
