package protocol

import "encoding/json"

type IntentEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type RequestMove struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// Valid reports whether the move is a single orthogonal step.
func (r RequestMove) Valid() bool {
	if r.DX < -1 || r.DX > 1 || r.DY < -1 || r.DY > 1 {
		return false
	}
	return (r.DX == 0) != (r.DY == 0)
}

type RequestNewLevel struct {
}
