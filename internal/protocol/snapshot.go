package protocol

type HP struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

type Tile struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type EntityLite struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Glyph string `json:"glyph"`
	Tile  Tile   `json:"tile"`
	World Point  `json:"world"`
	HP    *HP    `json:"hp,omitempty"`
}

type MeshStats struct {
	FloorVertices  int `json:"floorVertices"`
	FloorTriangles int `json:"floorTriangles"`
	WallVertices   int `json:"wallVertices"`
	WallTriangles  int `json:"wallTriangles"`
	Outlines       int `json:"outlines"`
}

// Snapshot is the full state of a level. Rows are listed top row first, so
// Rows[0] is grid Y = MapHeight-1.
type Snapshot struct {
	LevelID         string       `json:"levelId"`
	Seed            string       `json:"seed"`
	Depth           int          `json:"depth"`
	State           string       `json:"state"`
	MapWidth        int          `json:"mapWidth"`
	MapHeight       int          `json:"mapHeight"`
	Rows            []string     `json:"rows"`
	RoomCount       int          `json:"roomCount"`
	Entities        []EntityLite `json:"entities"`
	Mesh            MeshStats    `json:"mesh"`
	Message         string       `json:"message,omitempty"`
	ProtocolVersion string       `json:"protocolVersion"`
}
