package game

import (
	"log/slog"
	"sync"

	"skirmish/internal/config"
	"skirmish/internal/protocol"
)

// Hub is the authoritative session table. One mutex serializes every
// mutation to session state, whether it comes from an inbound message or a
// shield regeneration timer, so health and shield updates never race.
type Hub struct {
	mu       sync.Mutex
	cfg      config.Config
	log      *slog.Logger
	sessions map[string]*Session
	conns    map[*Client]string // connection -> session id ("" before join)
	spawns   *spawnPool
}

// NewHub creates an empty hub.
func NewHub(cfg config.Config, log *slog.Logger) *Hub {
	return &Hub{
		cfg:      cfg,
		log:      log,
		sessions: make(map[string]*Session),
		conns:    make(map[*Client]string),
		spawns:   newSpawnPool(),
	}
}

// Connect registers a transport-level connection. The connection has no
// identity until its join message is processed.
func (h *Hub) Connect(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c] = ""
}

// Disconnect tears down a connection and, if it had joined, its session.
// Idempotent and safe to call concurrently with in-flight handlers.
func (h *Hub) Disconnect(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id, ok := h.conns[c]
	if !ok {
		return
	}
	delete(h.conns, c)
	close(c.Send)

	session, ok := h.sessions[id]
	if !ok {
		return
	}
	session.regenGen++ // cancel any pending shield timer
	delete(h.sessions, id)

	h.log.Info("player left", "id", id, "name", session.Name)
	h.broadcastAll(protocol.PlayerLeftMsg{
		Type:     protocol.MsgTypePlayerLeft,
		PlayerID: id,
	})
}

// HandleMessage decodes one inbound frame and dispatches it. Malformed
// frames and unknown types are dropped; nothing here is fatal.
func (h *Hub) HandleMessage(c *Client, data []byte) {
	var env protocol.Envelope
	if err := c.Codec.Unmarshal(data, &env); err != nil {
		h.log.Debug("dropping malformed message", "error", err)
		return
	}

	switch env.Type {
	case protocol.MsgTypeJoin:
		var msg protocol.JoinMsg
		if err := c.Codec.Unmarshal(data, &msg); err != nil {
			h.log.Debug("dropping malformed join", "error", err)
			return
		}
		h.handleJoin(c, msg)
	case protocol.MsgTypeMove:
		var msg protocol.MoveMsg
		if err := c.Codec.Unmarshal(data, &msg); err != nil {
			h.log.Debug("dropping malformed move", "error", err)
			return
		}
		h.handleMove(c, msg)
	case protocol.MsgTypeShoot:
		var msg protocol.ShootMsg
		if err := c.Codec.Unmarshal(data, &msg); err != nil {
			h.log.Debug("dropping malformed shoot", "error", err)
			return
		}
		h.handleShoot(c, msg)
	case protocol.MsgTypeHit:
		var msg protocol.HitMsg
		if err := c.Codec.Unmarshal(data, &msg); err != nil {
			h.log.Debug("dropping malformed hit", "error", err)
			return
		}
		h.handleHit(c, msg)
	case protocol.MsgTypeRespawn:
		h.handleRespawn(c)
	case protocol.MsgTypeLeave:
		h.Disconnect(c)
	default:
		// Unknown types are a forward-compatible no-op.
		h.log.Debug("ignoring unknown message type", "type", env.Type)
	}
}

func (h *Hub) handleJoin(c *Client, msg protocol.JoinMsg) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id, ok := h.conns[c]
	if !ok || id != "" {
		// Unknown connection or second join on the same connection.
		return
	}

	name := msg.Name
	if name == "" {
		name = "Anonymous"
	}

	session := newSession(name, h.spawns.Next(), h.cfg.MaxHealth, h.cfg.MaxShield, c)
	h.sessions[session.ID] = session
	h.conns[c] = session.ID

	h.sendTo(c, protocol.WelcomeMsg{
		Type:     protocol.MsgTypeWelcome,
		PlayerID: session.ID,
	})

	// Late joiners only learn about peers through player_joined, so replay
	// the current roster to the new connection before announcing it.
	for _, other := range h.sessions {
		if other.ID == session.ID {
			continue
		}
		h.sendTo(c, protocol.PlayerJoinedMsg{
			Type:   protocol.MsgTypePlayerJoined,
			Player: other.Info(),
		})
	}

	h.broadcastExcept(session.ID, protocol.PlayerJoinedMsg{
		Type:   protocol.MsgTypePlayerJoined,
		Player: session.Info(),
	})

	h.log.Info("player joined", "id", session.ID, "name", session.Name)
}

// sessionFor resolves the session for a connection. Returns nil for
// connections that never joined or whose session is already gone.
func (h *Hub) sessionFor(c *Client) *Session {
	id, ok := h.conns[c]
	if !ok || id == "" {
		return nil
	}
	return h.sessions[id]
}
