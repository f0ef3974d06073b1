package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is a top-down tile map. Layers are row-major, Width*Height long;
// any non-zero value marks the tile present.
type Level struct {
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	TileSize  float64 `json:"tile_size"`
	Ground    []int   `json:"ground"`
	Buildings []int   `json:"buildings"`
	Spawn     Tile    `json:"spawn"`
}

type Tile struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size returns the world extent in world units.
func (l *Level) Size() (float64, float64) {
	return float64(l.Width) * l.TileSize, float64(l.Height) * l.TileSize
}

// TileCenter returns the world position at the middle of a tile.
func (l *Level) TileCenter(t Tile) (float64, float64) {
	return (float64(t.X) + 0.5) * l.TileSize, (float64(t.Y) + 0.5) * l.TileSize
}

func (l *Level) validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", l.Width, l.Height)
	}
	if l.TileSize <= 0 {
		l.TileSize = 1
	}
	n := l.Width * l.Height
	if l.Ground != nil && len(l.Ground) != n {
		return fmt.Errorf("ground layer has %d tiles, want %d", len(l.Ground), n)
	}
	if l.Buildings != nil && len(l.Buildings) != n {
		return fmt.Errorf("buildings layer has %d tiles, want %d", len(l.Buildings), n)
	}
	if l.Spawn.X < 0 || l.Spawn.X >= l.Width || l.Spawn.Y < 0 || l.Spawn.Y >= l.Height {
		return fmt.Errorf("spawn %d,%d outside level", l.Spawn.X, l.Spawn.Y)
	}
	return nil
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.validate(); err != nil {
		return nil, fmt.Errorf("validate level: %w", err)
	}
	return &lvl, nil
}

func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Parse(data)
}

// LoadLevel prefers a file on disk and falls back to the embedded levels.
func LoadLevel(name string) (*Level, error) {
	if data, err := os.ReadFile(name); err == nil {
		return Parse(data)
	}
	return LoadLevelFromFS(name)
}
