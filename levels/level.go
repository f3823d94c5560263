// Package levels loads tile-map levels embedded as JSON. A level is a wall
// grid plus named entity markers (spawns, goal, platforms, bombs) placed in
// grid coordinates.
package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"

	"github.com/nrunner/nrunner/common"
)

//go:embed *.json
var levelsFS embed.FS

// Entity marker names used by the level scenes.
const (
	EntityStart    = "Start"
	EntityGoal     = "Goal"
	EntityBomb     = "Bomb"
	EntityPlatform = "One_way_platform"
)

// Level is a tile map. Walls is a flat row-major grid of Width*Height cells;
// any non-zero cell is solid. Entity positions and sizes are in grid units.
type Level struct {
	ID       string   `json:"id"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	TileSize int      `json:"tile_size"`
	Walls    []int    `json:"walls"`
	Entities []Entity `json:"entities,omitempty"`
}

// Entity is a named rectangular marker in grid coordinates.
type Entity struct {
	Name string `json:"name"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	W    int    `json:"w"`
	H    int    `json:"h"`
}

// Rect is an axis-aligned box in pixels, center plus full size.
type Rect struct {
	Pos  common.Vec
	Size common.Vec
}

// Load reads a level from the embedded set by file name, e.g. "ngame.json".
func Load(name string) (*Level, error) {
	data, err := fs.ReadFile(levelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level %s: %w", name, err)
	}
	return Parse(data)
}

// Parse decodes and validates level JSON.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("invalid level dimensions: %dx%d", lvl.Width, lvl.Height)
	}
	if lvl.TileSize <= 0 {
		lvl.TileSize = 16
	}
	if len(lvl.Walls) != lvl.Width*lvl.Height {
		return nil, fmt.Errorf("walls grid has %d cells, want %d", len(lvl.Walls), lvl.Width*lvl.Height)
	}
	return &lvl, nil
}

// Size returns the level extents in pixels.
func (l *Level) Size() common.Vec {
	if l == nil {
		return common.Vec{}
	}
	return common.V(float64(l.Width*l.TileSize), float64(l.Height*l.TileSize))
}

// ConvertToPixels maps a grid-space point to pixels.
func (l *Level) ConvertToPixels(v common.Vec) common.Vec {
	if l == nil {
		return common.Vec{}
	}
	return v.Scale(float64(l.TileSize))
}

// EntitiesByName returns every marker with the given name, in file order.
func (l *Level) EntitiesByName(name string) []Entity {
	if l == nil {
		return nil
	}
	var out []Entity
	for _, e := range l.Entities {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

// EntityRect returns the marker's bounds in pixels.
func (l *Level) EntityRect(e Entity) Rect {
	pos := l.ConvertToPixels(common.V(float64(e.X), float64(e.Y)))
	size := l.ConvertToPixels(common.V(float64(e.W), float64(e.H)))
	return Rect{Pos: pos.Add(size.Scale(0.5)), Size: size}
}

// WallRects merges the solid cells of the wall grid into as few rectangles as
// possible. Runs of cells extend right first, then down, so long floors and
// walls each become a single box.
func (l *Level) WallRects() []Rect {
	if l == nil || len(l.Walls) != l.Width*l.Height {
		return nil
	}

	processed := make([]bool, len(l.Walls))
	var out []Rect
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			idx := y*l.Width + x
			if processed[idx] || l.Walls[idx] == 0 {
				processed[idx] = true
				continue
			}

			w := 1
			for x+w < l.Width {
				idx2 := y*l.Width + (x + w)
				if processed[idx2] || l.Walls[idx2] == 0 {
					break
				}
				w++
			}

			h := 1
		heightLoop:
			for y+h < l.Height {
				for xi := x; xi < x+w; xi++ {
					idx2 := (y+h)*l.Width + xi
					if processed[idx2] || l.Walls[idx2] == 0 {
						break heightLoop
					}
				}
				h++
			}

			ts := float64(l.TileSize)
			size := common.V(float64(w)*ts, float64(h)*ts)
			pos := common.V(float64(x)*ts, float64(y)*ts).Add(size.Scale(0.5))
			out = append(out, Rect{Pos: pos, Size: size})

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*l.Width+xx] = true
				}
			}
		}
	}
	return out
}
