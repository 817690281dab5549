package game

import (
	"math"

	"skirmish/internal/protocol"
)

// handleMove applies a position report. Dead sessions and grossly
// implausible jumps are rejected; accepted moves are broadcast.
func (h *Hub) handleMove(c *Client, msg protocol.MoveMsg) {
	h.mu.Lock()
	defer h.mu.Unlock()

	session := h.sessionFor(c)
	if session == nil {
		return
	}
	if !session.Alive {
		h.log.Debug("rejecting move from dead session", "id", session.ID)
		return
	}

	if session.moveSynced {
		delta := distance(session.X, session.Y, session.Z, msg.X, msg.Y, msg.Z)
		if delta > h.cfg.MaxMoveDelta {
			h.log.Debug("rejecting implausible move",
				"id", session.ID, "delta", delta, "bound", h.cfg.MaxMoveDelta)
			return
		}
	}

	session.X = msg.X
	session.Y = msg.Y
	session.Z = msg.Z
	session.RotationX = msg.RotationX
	session.RotationY = msg.RotationY
	session.moveSynced = true

	h.broadcastAll(protocol.PlayerMovedMsg{
		Type:      protocol.MsgTypePlayerMoved,
		PlayerID:  session.ID,
		X:         session.X,
		Y:         session.Y,
		Z:         session.Z,
		RotationY: session.RotationY,
	})
}

func distance(x1, y1, z1, x2, y2, z2 float64) float64 {
	dx, dy, dz := x2-x1, y2-y1, z2-z1
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
