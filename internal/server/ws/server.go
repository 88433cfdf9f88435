// Package ws implements the WebSocket/HTTP server editors connect to.
//
// Message flow:
//   - Incoming: WebSocket -> readPump -> dispatcher (one goroutine per
//     message, so a handler awaiting a ui/pick answer never blocks the
//     read loop)
//   - Outgoing: Event hub -> ClientSubscriber -> writePump -> WebSocket
package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prbridge/prbridge/internal/domain/ports"
	"github.com/prbridge/prbridge/internal/rpc/handler"
	"github.com/rs/zerolog/log"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 15 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 90 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512 * 1024 // 512KB

	// Send buffer size per client.
	sendBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The server binds to localhost; editor clients connect locally.
		return true
	},
}

// StatusFunc supplies the payload for GET /api/status.
type StatusFunc func() interface{}

// Server serves the WebSocket endpoint and the small HTTP API.
type Server struct {
	addr       string
	server     *http.Server
	dispatcher *handler.Dispatcher
	hub        ports.EventHub
	statusFn   StatusFunc

	mu      sync.RWMutex
	clients map[string]*Client
}

// NewServer creates a new server.
func NewServer(host string, port int, dispatcher *handler.Dispatcher, hub ports.EventHub, statusFn StatusFunc) *Server {
	addr := fmt.Sprintf("%s:%d", host, port)
	s := &Server{
		addr:       addr,
		dispatcher: dispatcher,
		hub:        hub,
		statusFn:   statusFn,
		clients:    make(map[string]*Client),
	}

	r := mux.NewRouter()
	r.HandleFunc("/ws", s.handleWebSocket)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/status", s.handleStatus).Methods(http.MethodGet)

	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
		// No ReadTimeout/WriteTimeout: they would apply to the upgraded
		// WebSocket connection too. The read/write pumps manage their
		// own deadlines.
	}

	return s
}

// Start starts the server.
func (s *Server) Start() error {
	log.Info().Str("addr", s.addr).Msg("server starting")

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	return nil
}

// Stop gracefully stops the server.
func (s *Server) Stop(ctx context.Context) error {
	log.Info().Msg("server stopping")

	s.mu.Lock()
	for _, client := range s.clients {
		client.Close()
	}
	s.clients = make(map[string]*Client)
	s.mu.Unlock()

	return s.server.Shutdown(ctx)
}

// handleWebSocket handles WebSocket upgrade requests.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to upgrade connection")
		return
	}

	client := NewClient(conn, s.handleMessage, func(id string) {
		if s.hub != nil {
			s.hub.Unsubscribe(id)
		}
		s.removeClient(id)
	})

	s.mu.Lock()
	s.clients[client.ID()] = client
	s.mu.Unlock()

	if s.hub != nil {
		s.hub.Subscribe(NewClientSubscriber(client))
	}

	log.Info().
		Str("client_id", client.ID()).
		Str("remote_addr", conn.RemoteAddr().String()).
		Msg("client connected")

	client.Start()
}

// handleMessage feeds an incoming RPC message to the dispatcher and sends
// the response, if any, back to the same client. Each message runs in its
// own goroutine; separate invocations may interleave.
func (s *Server) handleMessage(clientID string, data []byte) {
	go func() {
		ctx := context.WithValue(context.Background(), handler.ClientIDKey, clientID)

		resp, err := s.dispatcher.HandleMessage(ctx, data)
		if err != nil {
			log.Error().Err(err).Str("client_id", clientID).Msg("failed to handle message")
			return
		}
		if resp == nil {
			return
		}

		s.mu.RLock()
		client := s.clients[clientID]
		s.mu.RUnlock()

		if client != nil {
			client.Send(resp)
		}
	}()
}

// removeClient removes a client from the server.
func (s *Server) removeClient(id string) {
	s.mu.Lock()
	delete(s.clients, id)
	s.mu.Unlock()
	log.Info().Str("client_id", id).Msg("client disconnected")
}

// ClientCount returns the number of connected clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var payload interface{}
	if s.statusFn != nil {
		payload = s.statusFn()
	}

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Warn().Err(err).Msg("failed to encode status response")
	}
}
