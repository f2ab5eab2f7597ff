package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/Anaso-Internacia/anaso-site-api-models/scrape"
	"github.com/Anaso-Internacia/anaso-site-api-models/service"
	"go.uber.org/zap"
)

var errClientGone = errors.New("sse client disconnected")

// SSEEvent represents an SSE event structure
type SSEEvent struct {
	ID        string      `json:"id"`
	Event     string      `json:"event"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

func newEvent(event string, data interface{}) SSEEvent {
	now := time.Now()
	return SSEEvent{
		ID:        fmt.Sprintf("%s_%d", event, now.UnixNano()),
		Event:     event,
		Data:      data,
		Timestamp: now,
	}
}

func writeEvent(w io.Writer, flusher http.Flusher, event SSEEvent) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if _, err := fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", event.ID, event.Event, eventJSON); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}

// SSEClient represents a connected SSE client
type SSEClient struct {
	ID      string
	Writer  http.ResponseWriter
	Flusher http.Flusher
	Done    chan struct{}

	mu       sync.Mutex // guards Writer, LastSeen and closing Done
	lastSeen time.Time
	closed   bool
}

func (c *SSEClient) send(event SSEEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errClientGone
	}
	if err := writeEvent(c.Writer, c.Flusher, event); err != nil {
		return err
	}
	c.lastSeen = time.Now()
	return nil
}

func (c *SSEClient) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.Done)
	}
}

func (c *SSEClient) LastSeen() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSeen
}

// MCPSSEServer streams page tool results and broadcasts decode activity to
// connected clients.
type MCPSSEServer struct {
	logger       *zap.Logger
	service      service.Service
	httpClient   *http.Client
	config       *SSEServerConfig
	clients      map[string]*SSEClient
	clientsMutex sync.RWMutex
	broadcast    chan SSEEvent
	done         chan struct{}
	closeOnce    sync.Once
	nextClientID int
}

// SSEServerConfig holds configuration for the SSE server
type SSEServerConfig struct {
	KeepaliveInterval time.Duration
	BufferSize        int
	ClientTimeout     time.Duration
}

// DefaultSSEServerConfig returns the default configuration for SSE server
func DefaultSSEServerConfig() *SSEServerConfig {
	return &SSEServerConfig{
		KeepaliveInterval: 30 * time.Second,
		BufferSize:        100,
		ClientTimeout:     60 * time.Second,
	}
}

// NewMCPSSEServer creates a new MCP SSE server. serviceInstance may be nil,
// in which case document streams answer 503.
func NewMCPSSEServer(logger *zap.Logger, serviceInstance service.Service, httpClient *http.Client, config *SSEServerConfig) *MCPSSEServer {
	if config == nil {
		config = DefaultSSEServerConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	sseServer := &MCPSSEServer{
		logger:     logger,
		service:    serviceInstance,
		httpClient: httpClient,
		config:     config,
		clients:    make(map[string]*SSEClient),
		broadcast:  make(chan SSEEvent, config.BufferSize),
		done:       make(chan struct{}),
	}

	go sseServer.broadcastLoop()

	return sseServer
}

// Close stops broadcasting and disconnects every client.
func (s *MCPSSEServer) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.clientsMutex.Lock()
		defer s.clientsMutex.Unlock()
		for id, client := range s.clients {
			client.close()
			delete(s.clients, id)
		}
	})
}

func (s *MCPSSEServer) broadcastLoop() {
	for {
		select {
		case <-s.done:
			return
		case event := <-s.broadcast:
			for _, client := range s.snapshot() {
				if err := client.send(event); err != nil {
					s.logger.Error("failed to send event to client", zap.String("clientID", client.ID), zap.Error(err))
					s.removeClient(client.ID)
				}
			}
		}
	}
}

func (s *MCPSSEServer) snapshot() []*SSEClient {
	s.clientsMutex.RLock()
	defer s.clientsMutex.RUnlock()
	clients := make([]*SSEClient, 0, len(s.clients))
	for _, client := range s.clients {
		clients = append(clients, client)
	}
	return clients
}

// addClient adds a new SSE client
func (s *MCPSSEServer) addClient(w http.ResponseWriter) *SSEClient {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return nil
	}

	s.clientsMutex.Lock()
	s.nextClientID++
	clientID := fmt.Sprintf("client_%d_%d", time.Now().Unix(), s.nextClientID)
	client := &SSEClient{
		ID:       clientID,
		Writer:   w,
		Flusher:  flusher,
		Done:     make(chan struct{}),
		lastSeen: time.Now(),
	}
	s.clients[clientID] = client
	s.clientsMutex.Unlock()

	connectEvent := newEvent("connected", map[string]string{"clientID": clientID, "message": "Connected to Stela page SSE server"})
	if err := client.send(connectEvent); err != nil {
		s.logger.Error("failed to send connection event", zap.String("clientID", clientID), zap.Error(err))
		s.removeClient(clientID)
		return nil
	}

	s.logger.Info("SSE client connected", zap.String("clientID", clientID))
	return client
}

// removeClient removes a client from the server
func (s *MCPSSEServer) removeClient(clientID string) {
	s.clientsMutex.Lock()
	client, exists := s.clients[clientID]
	delete(s.clients, clientID)
	s.clientsMutex.Unlock()

	if exists {
		client.close()
		s.logger.Info("SSE client disconnected", zap.String("clientID", clientID))
	}
}

// broadcastEvent sends an event to all connected clients
func (s *MCPSSEServer) broadcastEvent(event SSEEvent) {
	select {
	case s.broadcast <- event:
	default:
		s.logger.Warn("broadcast channel full, dropping event", zap.String("eventID", event.ID))
	}
}

func startStream(w http.ResponseWriter) (http.Flusher, bool) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return nil, false
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	return flusher, true
}

// HandleSSE handles SSE client connections
func (s *MCPSSEServer) HandleSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Cache-Control")

	client := s.addClient(w)
	if client == nil {
		return
	}

	ticker := time.NewTicker(s.config.KeepaliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			s.removeClient(client.ID)
			return
		case <-client.Done:
			return
		case <-ticker.C:
			keepalive := newEvent("keepalive", map[string]interface{}{"timestamp": time.Now()})
			if err := client.send(keepalive); err != nil {
				s.removeClient(client.ID)
				return
			}
		}
	}
}

// HandlePageSSE fetches and decodes a page, streaming progress to the caller
// and announcing the result to every connected client.
func (s *MCPSSEServer) HandlePageSSE(w http.ResponseWriter, r *http.Request) {
	var request struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if request.URL == "" {
		http.Error(w, "url is required", http.StatusBadRequest)
		return
	}

	flusher, ok := startStream(w)
	if !ok {
		return
	}
	send := func(event SSEEvent) {
		if err := writeEvent(w, flusher, event); err != nil {
			s.logger.Warn("failed to write page event", zap.String("event", event.Event), zap.Error(err))
		}
	}

	send(newEvent("page_start", map[string]string{"url": request.URL}))

	page, report, err := scrape.FetchPage(r.Context(), s.httpClient, request.URL)
	if err != nil {
		send(newEvent("page_error", map[string]string{"error": err.Error()}))
		return
	}
	summary := scrape.Summarize(request.URL, page)
	issues := scrape.Issues(report)

	send(newEvent("page_result", map[string]interface{}{
		"summary": summary,
		"issues":  issues,
	}))
	send(newEvent("page_complete", map[string]string{"status": "completed"}))

	s.broadcastEvent(newEvent("page_decoded", map[string]interface{}{
		"url":    request.URL,
		"issues": len(issues),
	}))
}

// HandleGetDocumentSSE handles getDocument requests via SSE
func (s *MCPSSEServer) HandleGetDocumentSSE(w http.ResponseWriter, r *http.Request) {
	if s.service == nil {
		http.Error(w, "Document service not available", http.StatusServiceUnavailable)
		return
	}

	var request struct {
		Path string `json:"path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if request.Path == "" {
		http.Error(w, "path is required", http.StatusBadRequest)
		return
	}

	flusher, ok := startStream(w)
	if !ok {
		return
	}
	send := func(event SSEEvent) {
		if err := writeEvent(w, flusher, event); err != nil {
			s.logger.Warn("failed to write document event", zap.String("event", event.Event), zap.Error(err))
		}
	}

	send(newEvent("document_start", map[string]string{"path": request.Path}))

	document, err := s.service.GetDocument(r.Context(), request.Path)
	if err != nil {
		send(newEvent("document_error", map[string]string{"error": err.Error()}))
		return
	}

	send(newEvent("document_result", map[string]interface{}{"document": document}))
	send(newEvent("document_complete", map[string]string{"status": "completed"}))

	s.broadcastEvent(newEvent("document_loaded", map[string]interface{}{
		"path":   request.Path,
		"issues": len(document.Issues),
	}))
}

// GetConnectedClients returns information about connected clients
func (s *MCPSSEServer) GetConnectedClients() []map[string]interface{} {
	clients := s.snapshot()
	out := make([]map[string]interface{}, 0, len(clients))
	for _, client := range clients {
		lastSeen := client.LastSeen()
		out = append(out, map[string]interface{}{
			"id":        client.ID,
			"lastSeen":  lastSeen,
			"connected": time.Since(lastSeen) < s.config.ClientTimeout,
		})
	}
	return out
}

// GetStats returns server statistics
func (s *MCPSSEServer) GetStats() map[string]interface{} {
	s.clientsMutex.RLock()
	defer s.clientsMutex.RUnlock()

	return map[string]interface{}{
		"connectedClients": len(s.clients),
		"bufferSize":       len(s.broadcast),
		"serverVersion":    Version,
	}
}
