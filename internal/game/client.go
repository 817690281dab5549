package game

import (
	"github.com/gorilla/websocket"

	"skirmish/internal/protocol"
)

// Client represents a connected transport-level connection. It exists from
// upgrade time; a Session is attached only once a join is processed.
type Client struct {
	Conn  *websocket.Conn
	Codec protocol.Codec
	Send  chan []byte
}

// NewClient creates a client for an upgraded connection.
func NewClient(conn *websocket.Conn, codec protocol.Codec) *Client {
	return &Client{
		Conn:  conn,
		Codec: codec,
		Send:  make(chan []byte, 256),
	}
}

// enqueue hands a frame to the write pump without blocking. A full buffer
// means the connection is stalled; the frame is dropped so one slow client
// never holds up delivery to others.
func (c *Client) enqueue(data []byte) bool {
	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}
