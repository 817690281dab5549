package game

import (
	"time"

	"github.com/google/uuid"

	"skirmish/internal/protocol"
)

// Session is the authoritative record for one connected player. All fields
// are guarded by the hub mutex.
type Session struct {
	ID        string
	Name      string
	X         float64
	Y         float64
	Z         float64
	RotationX float64
	RotationY float64
	Health    int
	Shield    float64
	Alive     bool
	KillCount int

	// LastDamageAt gates shield regeneration.
	LastDamageAt time.Time

	// regenGen invalidates scheduled shield timers. Every damage event,
	// death, respawn and disconnect bumps it; a timer callback that finds
	// a different generation must not touch the session.
	regenGen uint64

	// moveSynced is false until the first move after (re)spawn. The client
	// picks its own spawn point locally, so the first report is adopted
	// without a plausibility check.
	moveSynced bool

	client *Client
}

func newSession(name string, spawn SpawnPoint, maxHealth int, maxShield float64, client *Client) *Session {
	return &Session{
		ID:     uuid.NewString(),
		Name:   name,
		X:      spawn.X,
		Y:      spawn.Y,
		Z:      spawn.Z,
		Health: maxHealth,
		Shield: maxShield,
		Alive:  true,
		client: client,
	}
}

// Info returns the snapshot embedded in join and respawn events.
func (s *Session) Info() protocol.PlayerInfo {
	return protocol.PlayerInfo{
		ID:   s.ID,
		Name: s.Name,
		X:    s.X,
		Y:    s.Y,
		Z:    s.Z,
	}
}
