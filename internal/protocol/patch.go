// Package protocol defines the JSON messages exchanged with web clients.
package protocol

const Version = "v1"

const (
	TypeSnapshot        = "Snapshot"
	TypeLevelCleared    = "LevelCleared"
	TypeError           = "Error"
	TypeRequestMove     = "RequestMove"
	TypeRequestNewLevel = "RequestNewLevel"
)

type PatchEnvelope struct {
	Sequence uint64 `json:"seq"`
	Type     string `json:"type"`
	Payload  any    `json:"payload"`
}

type LevelCleared struct {
	LevelID string `json:"levelId"`
	Depth   int    `json:"depth"`
}

type ErrorMessage struct {
	Message string `json:"message"`
}
