package server

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"skirmish/internal/config"
	"skirmish/internal/protocol"
)

func testConfig() config.Config {
	return config.Config{
		Addr:                ":0",
		HitDamage:           40,
		MaxHealth:           100,
		MaxShield:           100,
		ShieldRegenDelay:    100 * time.Millisecond,
		ShieldRegenInterval: 20 * time.Millisecond,
		ShieldRegenRate:     200,
		MaxMoveDelta:        25,
	}
}

func startTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := New(testConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/" + query
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s failed: %v", wsURL, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func writeMsg(t *testing.T, conn *websocket.Conn, codec protocol.Codec, msg any) {
	t.Helper()
	data, err := codec.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	frameType := websocket.TextMessage
	if codec.Binary() {
		frameType = websocket.BinaryMessage
	}
	if err := conn.WriteMessage(frameType, data); err != nil {
		t.Fatalf("write: %v", err)
	}
}

// waitForType reads frames until one of the wanted type arrives.
func waitForType(t *testing.T, conn *websocket.Conn, codec protocol.Codec, want string) []byte {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("waiting for %q: %v", want, err)
		}
		var env protocol.Envelope
		if err := codec.Unmarshal(data, &env); err != nil {
			t.Fatalf("decode envelope: %v", err)
		}
		if env.Type == want {
			return data
		}
	}
}

func joinAs(t *testing.T, conn *websocket.Conn, codec protocol.Codec, name string) string {
	t.Helper()
	writeMsg(t, conn, codec, protocol.JoinMsg{Type: protocol.MsgTypeJoin, Name: name})
	var welcome protocol.WelcomeMsg
	if err := codec.Unmarshal(waitForType(t, conn, codec, protocol.MsgTypeWelcome), &welcome); err != nil {
		t.Fatalf("decode welcome: %v", err)
	}
	return welcome.PlayerID
}

func TestJoinAndKillOverWebSocket(t *testing.T) {
	ts := startTestServer(t)
	jsonCodec := protocol.ForName(protocol.CodecJSON)

	alice := dial(t, ts, "")
	bob := dial(t, ts, "")

	aliceID := joinAs(t, alice, jsonCodec, "Alice")
	bobID := joinAs(t, bob, jsonCodec, "Bob")

	// Alice hears about Bob joining.
	var joined protocol.PlayerJoinedMsg
	if err := jsonCodec.Unmarshal(waitForType(t, alice, jsonCodec, protocol.MsgTypePlayerJoined), &joined); err != nil {
		t.Fatalf("decode player_joined: %v", err)
	}
	if joined.Player.ID != bobID || joined.Player.Name != "Bob" {
		t.Fatalf("player_joined = %+v", joined.Player)
	}

	for i := 0; i < 5; i++ {
		writeMsg(t, bob, jsonCodec, protocol.HitMsg{
			Type:           protocol.MsgTypeHit,
			TargetPlayerID: aliceID,
			Killed:         false,
		})
	}

	// Both sides receive the authoritative death, the victim included.
	for _, conn := range []*websocket.Conn{alice, bob} {
		var died protocol.PlayerDiedMsg
		if err := jsonCodec.Unmarshal(waitForType(t, conn, jsonCodec, protocol.MsgTypePlayerDied), &died); err != nil {
			t.Fatalf("decode player_died: %v", err)
		}
		if died.PlayerID != aliceID || died.KillerID != bobID {
			t.Fatalf("player_died = %+v, want victim %s killer %s", died, aliceID, bobID)
		}
	}
}

func TestMoveReplicatesToPeers(t *testing.T) {
	ts := startTestServer(t)
	jsonCodec := protocol.ForName(protocol.CodecJSON)

	alice := dial(t, ts, "")
	bob := dial(t, ts, "")
	aliceID := joinAs(t, alice, jsonCodec, "Alice")
	joinAs(t, bob, jsonCodec, "Bob")

	writeMsg(t, alice, jsonCodec, protocol.MoveMsg{
		Type: protocol.MsgTypeMove,
		X:    100, Y: 10, Z: 100,
		RotationY: 0.7,
	})

	var moved protocol.PlayerMovedMsg
	if err := jsonCodec.Unmarshal(waitForType(t, bob, jsonCodec, protocol.MsgTypePlayerMoved), &moved); err != nil {
		t.Fatalf("decode player_moved: %v", err)
	}
	if moved.PlayerID != aliceID || moved.X != 100 || moved.RotationY != 0.7 {
		t.Fatalf("player_moved = %+v", moved)
	}
}

func TestDisconnectReplicatesPlayerLeft(t *testing.T) {
	ts := startTestServer(t)
	jsonCodec := protocol.ForName(protocol.CodecJSON)

	alice := dial(t, ts, "")
	bob := dial(t, ts, "")
	joinAs(t, alice, jsonCodec, "Alice")
	bobID := joinAs(t, bob, jsonCodec, "Bob")

	bob.Close()

	var left protocol.PlayerLeftMsg
	if err := jsonCodec.Unmarshal(waitForType(t, alice, jsonCodec, protocol.MsgTypePlayerLeft), &left); err != nil {
		t.Fatalf("decode player_left: %v", err)
	}
	if left.PlayerID != bobID {
		t.Fatalf("player_left = %+v, want %s", left, bobID)
	}
}

// A msgpack client and a JSON client share one arena; each receives
// broadcasts in its own encoding.
func TestMsgpackCodecNegotiation(t *testing.T) {
	ts := startTestServer(t)
	jsonCodec := protocol.ForName(protocol.CodecJSON)
	mpCodec := protocol.ForName(protocol.CodecMsgpack)

	alice := dial(t, ts, "")
	bob := dial(t, ts, "?codec=msgpack")

	aliceID := joinAs(t, alice, jsonCodec, "Alice")
	bobID := joinAs(t, bob, mpCodec, "Bob")

	// Bob's roster replay arrives as msgpack.
	var replay protocol.PlayerJoinedMsg
	if err := mpCodec.Unmarshal(waitForType(t, bob, mpCodec, protocol.MsgTypePlayerJoined), &replay); err != nil {
		t.Fatalf("decode msgpack roster replay: %v", err)
	}
	if replay.Player.ID != aliceID {
		t.Fatalf("roster replay = %+v, want %s", replay.Player, aliceID)
	}

	// Alice's join broadcast about Bob arrives as JSON.
	var joined protocol.PlayerJoinedMsg
	if err := jsonCodec.Unmarshal(waitForType(t, alice, jsonCodec, protocol.MsgTypePlayerJoined), &joined); err != nil {
		t.Fatalf("decode json player_joined: %v", err)
	}
	if joined.Player.ID != bobID {
		t.Fatalf("player_joined = %+v, want %s", joined.Player, bobID)
	}

	// Cross-codec combat: msgpack hit, both observe the result.
	writeMsg(t, bob, mpCodec, protocol.HitMsg{
		Type:           protocol.MsgTypeHit,
		TargetPlayerID: aliceID,
	})
	var hit protocol.PlayerHitMsg
	if err := jsonCodec.Unmarshal(waitForType(t, alice, jsonCodec, protocol.MsgTypePlayerHit), &hit); err != nil {
		t.Fatalf("decode player_hit: %v", err)
	}
	if hit.PlayerID != aliceID || hit.Shield != 60 {
		t.Fatalf("player_hit = %+v, want %s at shield 60", hit, aliceID)
	}
}

func TestShieldUpdatesReachClients(t *testing.T) {
	ts := startTestServer(t)
	jsonCodec := protocol.ForName(protocol.CodecJSON)

	alice := dial(t, ts, "")
	bob := dial(t, ts, "")
	aliceID := joinAs(t, alice, jsonCodec, "Alice")
	joinAs(t, bob, jsonCodec, "Bob")

	writeMsg(t, bob, jsonCodec, protocol.HitMsg{
		Type:           protocol.MsgTypeHit,
		TargetPlayerID: aliceID,
	})

	var update protocol.ShieldUpdateMsg
	if err := jsonCodec.Unmarshal(waitForType(t, alice, jsonCodec, protocol.MsgTypeShieldUpdate), &update); err != nil {
		t.Fatalf("decode shield_update: %v", err)
	}
	if update.PlayerID != aliceID || update.Shield <= 60 {
		t.Fatalf("shield_update = %+v, want %s climbing from 60", update, aliceID)
	}
}
