// Package protocol defines the wire messages exchanged with game clients
// and the codecs that encode them.
package protocol

// Message types for client-server communication
const (
	// Inbound (client -> server).
	MsgTypeJoin    = "join"
	MsgTypeMove    = "move"
	MsgTypeShoot   = "shoot"
	MsgTypeHit     = "hit"
	MsgTypeRespawn = "respawn"
	MsgTypeLeave   = "leave"

	// Outbound (server -> client).
	MsgTypeWelcome         = "welcome"
	MsgTypePlayerJoined    = "player_joined"
	MsgTypePlayerLeft      = "player_left"
	MsgTypePlayerMoved     = "player_moved"
	MsgTypePlayerShot      = "player_shot"
	MsgTypePlayerHit       = "player_hit"
	MsgTypePlayerDied      = "player_died"
	MsgTypePlayerRespawned = "player_respawned"
	MsgTypeShieldUpdate    = "shield_update"
)

// Envelope is the minimal decode of any inbound message, used to pick the
// concrete type before a full decode.
type Envelope struct {
	Type string `json:"type" msgpack:"type"`
}

// JoinMsg requests a new session for this connection.
type JoinMsg struct {
	Type string `json:"type" msgpack:"type"`
	Name string `json:"name" msgpack:"name"`
}

// MoveMsg reports the client's current position and view angles.
type MoveMsg struct {
	Type      string  `json:"type" msgpack:"type"`
	X         float64 `json:"x" msgpack:"x"`
	Y         float64 `json:"y" msgpack:"y"`
	Z         float64 `json:"z" msgpack:"z"`
	RotationX float64 `json:"rotation_x" msgpack:"rotation_x"`
	RotationY float64 `json:"rotation_y" msgpack:"rotation_y"`
}

// ShootMsg reports a fired shot for tracer rendering on other clients.
type ShootMsg struct {
	Type    string  `json:"type" msgpack:"type"`
	StartX  float64 `json:"start_x" msgpack:"start_x"`
	StartY  float64 `json:"start_y" msgpack:"start_y"`
	StartZ  float64 `json:"start_z" msgpack:"start_z"`
	TargetX float64 `json:"target_x" msgpack:"target_x"`
	TargetY float64 `json:"target_y" msgpack:"target_y"`
	TargetZ float64 `json:"target_z" msgpack:"target_z"`
}

// HitMsg is an attacker-submitted claim that a shot connected. The Killed
// flag is advisory telemetry; the server recomputes the outcome.
type HitMsg struct {
	Type           string `json:"type" msgpack:"type"`
	TargetPlayerID string `json:"target_player_id" msgpack:"target_player_id"`
	Killed         bool   `json:"killed" msgpack:"killed"`
}

// RespawnMsg asks the server to bring a dead session back.
type RespawnMsg struct {
	Type string `json:"type" msgpack:"type"`
}

// LeaveMsg ends the session explicitly, same as a disconnect.
type LeaveMsg struct {
	Type string `json:"type" msgpack:"type"`
}

// PlayerInfo is the session snapshot embedded in join and respawn events.
type PlayerInfo struct {
	ID   string  `json:"id" msgpack:"id"`
	Name string  `json:"name" msgpack:"name"`
	X    float64 `json:"x" msgpack:"x"`
	Y    float64 `json:"y" msgpack:"y"`
	Z    float64 `json:"z" msgpack:"z"`
}

// WelcomeMsg tells the originating connection its assigned id.
type WelcomeMsg struct {
	Type     string `json:"type" msgpack:"type"`
	PlayerID string `json:"player_id" msgpack:"player_id"`
}

// PlayerJoinedMsg announces a new session.
type PlayerJoinedMsg struct {
	Type   string     `json:"type" msgpack:"type"`
	Player PlayerInfo `json:"player" msgpack:"player"`
}

// PlayerLeftMsg announces a departed session.
type PlayerLeftMsg struct {
	Type     string `json:"type" msgpack:"type"`
	PlayerID string `json:"player_id" msgpack:"player_id"`
}

// PlayerMovedMsg announces an accepted position update.
type PlayerMovedMsg struct {
	Type      string  `json:"type" msgpack:"type"`
	PlayerID  string  `json:"player_id" msgpack:"player_id"`
	X         float64 `json:"x" msgpack:"x"`
	Y         float64 `json:"y" msgpack:"y"`
	Z         float64 `json:"z" msgpack:"z"`
	RotationY float64 `json:"rotation_y" msgpack:"rotation_y"`
}

// PlayerShotMsg rebroadcasts a shot for tracer rendering.
type PlayerShotMsg struct {
	Type      string  `json:"type" msgpack:"type"`
	ShooterID string  `json:"shooter_id" msgpack:"shooter_id"`
	StartX    float64 `json:"start_x" msgpack:"start_x"`
	StartY    float64 `json:"start_y" msgpack:"start_y"`
	StartZ    float64 `json:"start_z" msgpack:"start_z"`
	TargetX   float64 `json:"target_x" msgpack:"target_x"`
	TargetY   float64 `json:"target_y" msgpack:"target_y"`
	TargetZ   float64 `json:"target_z" msgpack:"target_z"`
}

// PlayerHitMsg carries the authoritative result of an accepted hit.
type PlayerHitMsg struct {
	Type     string  `json:"type" msgpack:"type"`
	PlayerID string  `json:"player_id" msgpack:"player_id"`
	Health   int     `json:"health" msgpack:"health"`
	Shield   float64 `json:"shield" msgpack:"shield"`
	Damage   float64 `json:"damage" msgpack:"damage"`
}

// PlayerDiedMsg announces a kill.
type PlayerDiedMsg struct {
	Type     string `json:"type" msgpack:"type"`
	PlayerID string `json:"player_id" msgpack:"player_id"`
	KillerID string `json:"killer_id" msgpack:"killer_id"`
}

// PlayerRespawnedMsg announces a respawned session with its refreshed state.
type PlayerRespawnedMsg struct {
	Type   string     `json:"type" msgpack:"type"`
	Player PlayerInfo `json:"player" msgpack:"player"`
}

// ShieldUpdateMsg announces a shield regeneration tick.
type ShieldUpdateMsg struct {
	Type     string  `json:"type" msgpack:"type"`
	PlayerID string  `json:"player_id" msgpack:"player_id"`
	Shield   float64 `json:"shield" msgpack:"shield"`
}
