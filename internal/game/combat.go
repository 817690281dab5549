package game

import (
	"math"
	"time"

	"skirmish/internal/protocol"
)

// handleShoot rebroadcasts a tracer to everyone else. Shots carry no
// authority; damage only ever comes from validated hit claims.
func (h *Hub) handleShoot(c *Client, msg protocol.ShootMsg) {
	h.mu.Lock()
	defer h.mu.Unlock()

	session := h.sessionFor(c)
	if session == nil || !session.Alive {
		return
	}

	h.broadcastExcept(session.ID, protocol.PlayerShotMsg{
		Type:      protocol.MsgTypePlayerShot,
		ShooterID: session.ID,
		StartX:    msg.StartX,
		StartY:    msg.StartY,
		StartZ:    msg.StartZ,
		TargetX:   msg.TargetX,
		TargetY:   msg.TargetY,
		TargetZ:   msg.TargetZ,
	})
}

// handleHit arbitrates an attacker-supplied hit claim. The client's killed
// flag is advisory only; damage and death are recomputed here. Shield
// absorbs damage first, overflow comes out of health.
func (h *Hub) handleHit(c *Client, msg protocol.HitMsg) {
	h.mu.Lock()
	defer h.mu.Unlock()

	shooter := h.sessionFor(c)
	if shooter == nil || !shooter.Alive {
		return
	}
	if msg.TargetPlayerID == shooter.ID {
		h.log.Debug("rejecting self hit", "id", shooter.ID)
		return
	}
	target, ok := h.sessions[msg.TargetPlayerID]
	if !ok {
		h.log.Debug("rejecting hit on unknown target", "target", msg.TargetPlayerID)
		return
	}
	if !target.Alive {
		// No double-kill credit.
		return
	}

	damage := h.cfg.HitDamage
	absorbed := damage
	if absorbed > target.Shield {
		absorbed = target.Shield
	}
	target.Shield -= absorbed
	// Shield is fractional but health is not; overflow rounds to the
	// nearest point so a partially regenerated shield never swallows
	// damage.
	overflow := int(math.Round(damage - absorbed))
	target.Health -= overflow
	if target.Health < 0 {
		target.Health = 0
	}

	now := time.Now()
	target.LastDamageAt = now

	if target.Health == 0 {
		target.Alive = false
		target.regenGen++ // dead sessions do not regenerate
		shooter.KillCount++

		h.log.Info("player killed",
			"victim", target.ID, "victim_name", target.Name,
			"killer", shooter.ID, "killer_name", shooter.Name)

		h.broadcastAll(protocol.PlayerDiedMsg{
			Type:     protocol.MsgTypePlayerDied,
			PlayerID: target.ID,
			KillerID: shooter.ID,
		})
		return
	}

	// The target's own client reconciles against this broadcast too.
	h.broadcastAll(protocol.PlayerHitMsg{
		Type:     protocol.MsgTypePlayerHit,
		PlayerID: target.ID,
		Health:   target.Health,
		Shield:   target.Shield,
		Damage:   damage,
	})

	h.scheduleRegen(target)
}

// handleRespawn brings a dead session back at a fresh spawn point.
func (h *Hub) handleRespawn(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	session := h.sessionFor(c)
	if session == nil {
		return
	}
	if session.Alive {
		h.log.Debug("rejecting respawn of alive session", "id", session.ID)
		return
	}

	spawn := h.spawns.Next()
	session.X = spawn.X
	session.Y = spawn.Y
	session.Z = spawn.Z
	session.Health = h.cfg.MaxHealth
	session.Shield = h.cfg.MaxShield
	session.Alive = true
	session.LastDamageAt = time.Time{}
	session.regenGen++
	session.moveSynced = false

	h.log.Info("player respawned", "id", session.ID, "name", session.Name)

	// Everyone gets the refreshed snapshot, including the respawning
	// client, which reconciles its own state from it.
	h.broadcastAll(protocol.PlayerRespawnedMsg{
		Type:   protocol.MsgTypePlayerRespawned,
		Player: session.Info(),
	})
}
