package mcp

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Anaso-Internacia/anaso-site-api-models/service"
	"github.com/go-chi/chi/v5"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// httpRequestKey is a custom context key for storing the original HTTP request
type httpRequestKey struct{}

// withHTTPRequest adds the original HTTP request to the context
func withHTTPRequest(ctx context.Context, req *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, req)
}

// httpRequestFromContext extracts the original HTTP request from the context
func httpRequestFromContext(ctx context.Context) (*http.Request, bool) {
	req, ok := ctx.Value(httpRequestKey{}).(*http.Request)
	return req, ok
}

// httpContextFunc extracts the original HTTP request and adds it to the context
func httpContextFunc(ctx context.Context, r *http.Request) context.Context {
	return withHTTPRequest(ctx, r)
}

// NewMcpHTTPServer creates a streamable HTTP transport for s at endpoint.
func NewMcpHTTPServer(s *server.MCPServer, endpoint string) *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath(endpoint),
		server.WithHTTPContextFunc(httpContextFunc),
	)
}

// McpHTTPSSEServer combines MCP HTTP server with SSE capabilities
type McpHTTPSSEServer struct {
	router    chi.Router
	sseServer *MCPSSEServer
}

// NewMcpHTTPSSEServer mounts the MCP endpoint and the SSE routes below it.
func NewMcpHTTPSSEServer(logger *zap.Logger, s *server.MCPServer, serviceInstance service.Service, httpClient *http.Client, endpoint string, config *SSEServerConfig) *McpHTTPSSEServer {
	sseServer := NewMCPSSEServer(logger, serviceInstance, httpClient, config)

	r := chi.NewRouter()
	r.Handle(endpoint, NewMcpHTTPServer(s, endpoint))

	r.Get(endpoint+"/sse", sseServer.HandleSSE)
	r.Post(endpoint+"/sse/page", sseServer.HandlePageSSE)
	r.Post(endpoint+"/sse/document", sseServer.HandleGetDocumentSSE)
	r.Get(endpoint+"/sse/clients", func(w http.ResponseWriter, r *http.Request) {
		clients := sseServer.GetConnectedClients()
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"connectedClients": len(clients),
			"clients":          clients,
		})
	})
	r.Get(endpoint+"/sse/stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, sseServer.GetStats())
	})

	return &McpHTTPSSEServer{
		router:    r,
		sseServer: sseServer,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// ServeHTTP implements http.Handler
func (s *McpHTTPSSEServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// GetSSEServer returns the underlying SSE server for direct access
func (s *McpHTTPSSEServer) GetSSEServer() *MCPSSEServer {
	return s.sseServer
}

// Close stops the SSE broadcast loop.
func (s *McpHTTPSSEServer) Close() {
	s.sseServer.Close()
}
