// Package spectator serves a live websocket feed of a running match.
// Clients connect to /ws and receive every event the server is attached
// to as a JSON frame, starting mid-game wherever the match currently is.
package spectator

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/castlewars/engine/internal/game/events"
)

const writeTimeout = 5 * time.Second

// Server broadcasts match events to websocket spectators. Spectating is
// read-only; client frames are drained and discarded.
type Server struct {
	addr     string
	upgrader websocket.Upgrader
	logger   zerolog.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	httpSrv *http.Server
	ln      net.Listener
}

// NewServer creates a spectator server listening on addr once started.
func NewServer(addr string, logger zerolog.Logger) *Server {
	return &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger:  logger.With().Str("component", "SpectatorServer").Str("addr", addr).Logger(),
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Attach subscribes the server to the bus events spectators care about.
func (s *Server) Attach(bus *events.Bus) {
	bus.SubscribeAll([]string{
		events.TypeGameStarted,
		events.TypeTurnSnapshot,
		events.TypeTeamForfeited,
		events.TypeGameEnded,
	}, func(e events.Event) {
		s.Broadcast(e)
	})
}

// Start begins serving in the background. Call Shutdown to stop.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)

	s.httpSrv = &http.Server{Addr: s.addr, Handler: mux}
	ln, err := newListener(s.addr)
	if err != nil {
		return err
	}
	s.ln = ln

	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("spectator server stopped")
		}
	}()
	s.logger.Info().Msg("spectator feed listening")
	return nil
}

// Shutdown stops the server and closes every client connection.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for conn := range s.clients {
		conn.Close()
	}
	s.clients = make(map[*websocket.Conn]struct{})
	s.mu.Unlock()

	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// Addr returns the bound listen address, useful when the configured addr
// picked an ephemeral port. Valid only after Start.
func (s *Server) Addr() string {
	if s.ln == nil {
		return s.addr
	}
	return s.ln.Addr().String()
}

// ClientCount returns the number of connected spectators.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Broadcast sends one event to every connected spectator. A client that
// cannot keep up is dropped rather than allowed to stall the match.
func (s *Server) Broadcast(e events.Event) {
	data, err := json.Marshal(e)
	if err != nil {
		s.logger.Error().Err(err).Str("event_type", e.Type()).Msg("failed to encode event")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.logger.Debug().Err(err).Msg("dropping slow spectator")
			conn.Close()
			delete(s.clients, conn)
		}
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()
	s.logger.Debug().Str("remote", conn.RemoteAddr().String()).Msg("spectator connected")

	// Drain client frames so pings are answered; spectators never send
	// anything meaningful.
	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
