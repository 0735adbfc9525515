package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/coder/websocket"
	"github.com/go-logr/logr"

	"github.com/samdwyer/cavegen/internal/export"
	"github.com/samdwyer/cavegen/internal/game"
	"github.com/samdwyer/cavegen/internal/protocol"
)

// Server shares one game session between every connected client.
type Server struct {
	hub      *Hub
	mu       sync.Mutex // Guards session
	session  *game.Session
	sequence atomic.Uint64
	log      logr.Logger
}

// NewServer wraps a running session.
func NewServer(session *game.Session, log logr.Logger) *Server {
	return &Server{
		hub:     NewHub(),
		session: session,
		log:     log,
	}
}

// Handler returns the HTTP routes: /stream for WebSocket clients, /level.obj
// for the current cave mesh and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/stream", s.handleStream)
	mux.HandleFunc("/level.obj", s.handleOBJ)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		s.log.Error(err, "websocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	s.hub.Add(conn)
	defer s.hub.Remove(conn)
	s.log.V(1).Info("client connected", "clients", s.hub.Count())

	ctx := r.Context()
	hello, err := s.envelope(protocol.TypeSnapshot, s.snapshot())
	if err == nil {
		err = conn.Write(ctx, websocket.MessageText, hello)
	}
	if err != nil {
		s.log.Error(err, "send initial snapshot")
		return
	}

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		var env protocol.IntentEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			s.log.V(1).Info("dropping malformed intent", "error", err.Error())
			continue
		}
		s.handleIntent(ctx, conn, env)
	}
}

func (s *Server) handleIntent(ctx context.Context, conn *websocket.Conn, env protocol.IntentEnvelope) {
	var cleared *protocol.LevelCleared

	s.mu.Lock()
	switch env.Type {
	case protocol.TypeRequestMove:
		var req protocol.RequestMove
		if err := json.Unmarshal(env.Payload, &req); err != nil || !req.Valid() {
			s.mu.Unlock()
			s.reply(ctx, conn, protocol.TypeError, protocol.ErrorMessage{Message: "invalid move"})
			return
		}
		prev := s.session.Level.ID.String()
		s.session.TryMove(req.DX, req.DY)
		advanced, err := s.session.Advance(ctx)
		if err != nil {
			s.mu.Unlock()
			s.reply(ctx, conn, protocol.TypeError, protocol.ErrorMessage{Message: err.Error()})
			return
		}
		if advanced {
			cleared = &protocol.LevelCleared{LevelID: prev, Depth: s.session.Depth - 1}
		}
	case protocol.TypeRequestNewLevel:
		if err := s.session.NextLevel(ctx); err != nil {
			s.mu.Unlock()
			s.reply(ctx, conn, protocol.TypeError, protocol.ErrorMessage{Message: err.Error()})
			return
		}
	default:
		s.mu.Unlock()
		s.reply(ctx, conn, protocol.TypeError, protocol.ErrorMessage{Message: fmt.Sprintf("unknown intent %q", env.Type)})
		return
	}
	snap := BuildSnapshot(s.session)
	s.mu.Unlock()

	if cleared != nil {
		s.broadcast(protocol.TypeLevelCleared, cleared)
	}
	s.broadcast(protocol.TypeSnapshot, snap)
}

func (s *Server) handleOBJ(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	lvl := s.session.Level
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "cave-"+lvl.ID.String()+".obj"))
	if err := export.WriteOBJ(w, "cave "+lvl.Seed, lvl.Mesh); err != nil {
		s.log.Error(err, "write obj", "level", lvl.ID)
	}
}

func (s *Server) snapshot() protocol.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return BuildSnapshot(s.session)
}

func (s *Server) envelope(typ string, payload any) ([]byte, error) {
	return json.Marshal(protocol.PatchEnvelope{
		Sequence: s.sequence.Add(1),
		Type:     typ,
		Payload:  payload,
	})
}

func (s *Server) broadcast(typ string, payload any) {
	b, err := s.envelope(typ, payload)
	if err != nil {
		s.log.Error(err, "marshal broadcast", "type", typ)
		return
	}
	s.hub.Broadcast(b)
}

func (s *Server) reply(ctx context.Context, conn *websocket.Conn, typ string, payload any) {
	b, err := s.envelope(typ, payload)
	if err != nil {
		s.log.Error(err, "marshal reply", "type", typ)
		return
	}
	if err := conn.Write(ctx, websocket.MessageText, b); err != nil {
		s.log.V(1).Info("reply failed", "error", err.Error())
	}
}
