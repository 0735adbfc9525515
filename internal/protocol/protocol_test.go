package protocol

import (
	"encoding/json"
	"testing"
)

func TestRequestMoveValid(t *testing.T) {
	tests := []struct {
		req  RequestMove
		want bool
	}{
		{RequestMove{DX: 1}, true},
		{RequestMove{DY: -1}, true},
		{RequestMove{}, false},
		{RequestMove{DX: 1, DY: 1}, false},
		{RequestMove{DX: 2}, false},
		{RequestMove{DY: -3}, false},
	}
	for _, tt := range tests {
		if got := tt.req.Valid(); got != tt.want {
			t.Errorf("%+v.Valid() = %v, want %v", tt.req, got, tt.want)
		}
	}
}

func TestIntentEnvelopeDecodes(t *testing.T) {
	raw := []byte(`{"type":"RequestMove","payload":{"dx":-1,"dy":0}}`)

	var env IntentEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("Unmarshal envelope: %v", err)
	}
	if env.Type != TypeRequestMove {
		t.Fatalf("Type = %q, want %q", env.Type, TypeRequestMove)
	}
	var req RequestMove
	if err := json.Unmarshal(env.Payload, &req); err != nil {
		t.Fatalf("Unmarshal payload: %v", err)
	}
	if req.DX != -1 || req.DY != 0 {
		t.Errorf("payload = %+v, want dx -1 dy 0", req)
	}
}

func TestSnapshotOmitsEmptyHP(t *testing.T) {
	b, err := json.Marshal(EntityLite{ID: "p", Kind: "player"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, ok := m["hp"]; ok {
		t.Error("nil HP should be omitted")
	}
}
