// Package server owns the HTTP listener and the WebSocket read/write pumps.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"skirmish/internal/config"
	"skirmish/internal/game"
	"skirmish/internal/protocol"
)

const (
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
	pingInterval = 54 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // the browser client is served from anywhere
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Server handles HTTP and WebSocket connections.
type Server struct {
	hub *game.Hub
	log *slog.Logger
}

// New creates a server with a fresh hub.
func New(cfg config.Config, log *slog.Logger) *Server {
	return &Server{
		hub: game.NewHub(cfg, log),
		log: log,
	}
}

// Handler returns the HTTP handler, exposed separately so tests can mount
// it on httptest servers.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleWebSocket)
	return mux
}

// Start listens on addr and serves until the listener fails.
func (s *Server) Start(addr string) error {
	return http.ListenAndServe(addr, s.Handler())
}

// handleWebSocket upgrades a connection and starts its pumps. Clients get
// JSON frames unless they ask for msgpack with ?codec=msgpack.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	codec := protocol.ForName(r.URL.Query().Get("codec"))
	client := game.NewClient(conn, codec)
	s.hub.Connect(client)

	go s.readPump(client)
	go s.writePump(client)
}

// readPump reads frames from the client until the connection dies, then
// triggers session cleanup.
func (s *Server) readPump(client *game.Client) {
	defer func() {
		client.Conn.Close()
		s.hub.Disconnect(client)
	}()

	client.Conn.SetReadDeadline(time.Now().Add(readTimeout))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	for {
		_, data, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				s.log.Warn("websocket read failed", "error", err)
			}
			return
		}
		s.hub.HandleMessage(client, data)
	}
}

// writePump drains the client's send channel and keeps the connection
// alive with pings.
func (s *Server) writePump(client *game.Client) {
	frameType := websocket.TextMessage
	if client.Codec.Binary() {
		frameType = websocket.BinaryMessage
	}

	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case data, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteMessage(frameType, data); err != nil {
				return
			}
		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
