package gamedata

import "github.com/gdamore/tcell/v2"

// EnemyDef defines a cave creature loaded from JSON.
type EnemyDef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Glyph       string `json:"glyph"`       // Single character for rendering
	Color       string `json:"color"`       // Hex color code (e.g., "#40C040")
	HP          int    `json:"hp"`          // Starting health
	Attack      int    `json:"attack"`      // Damage dealt per hit
	SpawnWeight int    `json:"spawnWeight"` // Relative spawn frequency
}

// GlyphRune returns the glyph as a rune for rendering.
func (e *EnemyDef) GlyphRune() rune {
	for _, r := range e.Glyph {
		return r
	}
	return '?'
}

// TCellColor returns the color as a tcell.Color, or white if the hex code is bad.
func (e *EnemyDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(e.Color)
	if err != nil {
		return tcell.ColorWhite
	}
	return color
}

type enemiesFile struct {
	Enemies []EnemyDef `json:"enemies"`
}

// LoadEnemies loads creature definitions from the embedded enemies.json.
func LoadEnemies() ([]EnemyDef, error) {
	file, err := Load[enemiesFile]("enemies.json")
	if err != nil {
		return nil, err
	}
	return file.Enemies, nil
}
