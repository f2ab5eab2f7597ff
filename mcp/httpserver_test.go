package mcp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMcpHTTPSSEServerRoutes(t *testing.T) {
	pages := newPageServer(t)
	s := NewMcpHTTPSSEServer(zap.NewNop(), NewServer(nil, pages.Client(), nil), nil, pages.Client(), "/mcp", nil)
	t.Cleanup(s.Close)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/mcp/sse/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var stats map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, Version, stats["serverVersion"])
	assert.Equal(t, float64(0), stats["connectedClients"])

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/mcp/sse/clients", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"connectedClients": 0, "clients": []}`, rec.Body.String())

	rec = httptest.NewRecorder()
	body := `{"url": "` + pages.URL + `/api/page/a/Hejmo"}`
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/mcp/sse/page", strings.NewReader(body)))
	assert.Contains(t, rec.Body.String(), "event: page_result\n")

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/mcp/sse/page", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/mcp/sse/document", strings.NewReader(`{"path": "/"}`)))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	assert.NotNil(t, s.GetSSEServer())
}

func TestHTTPRequestContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	ctx := httpContextFunc(req.Context(), req)
	got, ok := httpRequestFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, req, got)

	_, ok = httpRequestFromContext(t.Context())
	assert.False(t, ok)
}
