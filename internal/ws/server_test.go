package ws

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/go-logr/logr"

	"github.com/samdwyer/cavegen/internal/game"
	"github.com/samdwyer/cavegen/internal/gamedata"
	"github.com/samdwyer/cavegen/internal/level"
	"github.com/samdwyer/cavegen/internal/protocol"
	"github.com/samdwyer/cavegen/internal/spawn"
)

type envelope struct {
	Sequence uint64          `json:"seq"`
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
}

func newTestServer(t *testing.T) (*httptest.Server, *Server) {
	t.Helper()
	cfg := level.DefaultConfig()
	cfg.Width = 40
	cfg.Height = 30
	cfg.FillPercent = 45
	cfg.Seed = "stream"

	runner := level.NewRunner(cfg, logr.Discard())
	spawner := spawn.NewSpawner(gamedata.MustLoadEnemyRegistry(), logr.Discard())
	session, err := game.NewSession(context.Background(), runner, spawner, logr.Discard())
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	srv := NewServer(session, logr.Discard())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, srv
}

func dial(t *testing.T, ctx context.Context, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/stream"
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "") })
	return conn
}

func readEnvelope(t *testing.T, ctx context.Context, conn *websocket.Conn) envelope {
	t.Helper()
	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	return env
}

func send(t *testing.T, ctx context.Context, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	p, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Marshal payload: %v", err)
	}
	b, err := json.Marshal(protocol.IntentEnvelope{Type: typ, Payload: p})
	if err != nil {
		t.Fatalf("Marshal envelope: %v", err)
	}
	if err := conn.Write(ctx, websocket.MessageText, b); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
}

func TestStreamSendsSnapshotOnConnect(t *testing.T) {
	ts, _ := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn := dial(t, ctx, ts)
	env := readEnvelope(t, ctx, conn)
	if env.Type != protocol.TypeSnapshot {
		t.Fatalf("first message type = %q, want %q", env.Type, protocol.TypeSnapshot)
	}

	var snap protocol.Snapshot
	if err := json.Unmarshal(env.Payload, &snap); err != nil {
		t.Fatalf("Unmarshal snapshot: %v", err)
	}
	if snap.MapWidth != 40 || snap.MapHeight != 30 || len(snap.Rows) != 30 {
		t.Errorf("snapshot is %dx%d with %d rows, want 40x30", snap.MapWidth, snap.MapHeight, len(snap.Rows))
	}
	if len(snap.Entities) == 0 || snap.Entities[0].Kind != "player" {
		t.Error("first entity should be the player")
	}
	if snap.ProtocolVersion != protocol.Version {
		t.Errorf("ProtocolVersion = %q", snap.ProtocolVersion)
	}
}

func TestStreamMoveBroadcastsSnapshot(t *testing.T) {
	ts, _ := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn := dial(t, ctx, ts)
	hello := readEnvelope(t, ctx, conn)

	send(t, ctx, conn, protocol.TypeRequestMove, protocol.RequestMove{DX: 1})
	env := readEnvelope(t, ctx, conn)
	if env.Type != protocol.TypeSnapshot {
		t.Fatalf("reply type = %q, want %q", env.Type, protocol.TypeSnapshot)
	}
	if env.Sequence <= hello.Sequence {
		t.Errorf("sequence did not advance: %d after %d", env.Sequence, hello.Sequence)
	}
}

func TestStreamRejectsInvalidMove(t *testing.T) {
	ts, _ := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn := dial(t, ctx, ts)
	readEnvelope(t, ctx, conn)

	send(t, ctx, conn, protocol.TypeRequestMove, protocol.RequestMove{DX: 1, DY: 1})
	if env := readEnvelope(t, ctx, conn); env.Type != protocol.TypeError {
		t.Errorf("reply type = %q, want %q", env.Type, protocol.TypeError)
	}

	send(t, ctx, conn, "RequestTeleport", struct{}{})
	if env := readEnvelope(t, ctx, conn); env.Type != protocol.TypeError {
		t.Errorf("reply type = %q, want %q", env.Type, protocol.TypeError)
	}
}

func TestStreamNewLevel(t *testing.T) {
	ts, srv := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn := dial(t, ctx, ts)
	var first protocol.Snapshot
	if err := json.Unmarshal(readEnvelope(t, ctx, conn).Payload, &first); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	send(t, ctx, conn, protocol.TypeRequestNewLevel, protocol.RequestNewLevel{})
	var next protocol.Snapshot
	if err := json.Unmarshal(readEnvelope(t, ctx, conn).Payload, &next); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if next.LevelID == first.LevelID || next.Depth != first.Depth+1 {
		t.Errorf("new level snapshot = %s depth %d, after %s depth %d", next.LevelID, next.Depth, first.LevelID, first.Depth)
	}
	if srv.hub.Count() != 1 {
		t.Errorf("hub has %d clients, want 1", srv.hub.Count())
	}
}

func TestLevelOBJ(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/level.obj")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if !strings.HasPrefix(string(body), "# cave stream\no floor\n") {
		t.Errorf("unexpected OBJ header: %q", string(body[:min(len(body), 40)]))
	}
}
