package game

import (
	"time"

	"skirmish/internal/protocol"
)

// Shield regeneration is the one time-driven state machine in the server.
// Each accepted damage event schedules a countdown; once it elapses with no
// further damage the shield climbs back on a periodic tick. Timers are
// tagged with the session's generation counter so a callback from a
// superseded schedule can never mutate current state, no matter how the
// timer and new damage interleave.

// scheduleRegen (re)starts the countdown for a session. Caller holds h.mu.
func (h *Hub) scheduleRegen(s *Session) {
	s.regenGen++
	gen := s.regenGen
	id := s.ID
	time.AfterFunc(h.cfg.ShieldRegenDelay, func() {
		h.startRegen(id, gen)
	})
}

// startRegen runs when a countdown elapses. It re-checks the generation
// before doing anything: new damage, death, respawn or disconnect in the
// meantime all bump the generation and make this a no-op.
func (h *Hub) startRegen(id string, gen uint64) {
	h.mu.Lock()
	session, ok := h.sessions[id]
	if !ok || session.regenGen != gen || !session.Alive || session.Shield >= h.cfg.MaxShield {
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	ticker := time.NewTicker(h.cfg.ShieldRegenInterval)
	defer ticker.Stop()

	perTick := h.cfg.ShieldRegenRate * h.cfg.ShieldRegenInterval.Seconds()
	for range ticker.C {
		if !h.applyRegenTick(id, gen, perTick) {
			return
		}
	}
}

// applyRegenTick adds one increment under the hub mutex and reports whether
// regeneration should continue.
func (h *Hub) applyRegenTick(id string, gen uint64, amount float64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	session, ok := h.sessions[id]
	if !ok || session.regenGen != gen || !session.Alive {
		return false
	}

	session.Shield += amount
	if session.Shield > h.cfg.MaxShield {
		session.Shield = h.cfg.MaxShield
	}

	h.broadcastAll(protocol.ShieldUpdateMsg{
		Type:     protocol.MsgTypeShieldUpdate,
		PlayerID: session.ID,
		Shield:   session.Shield,
	})

	return session.Shield < h.cfg.MaxShield
}
