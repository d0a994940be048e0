// Package terrain loads and queries the immutable tile-based world map,
// as a plain loaded tile grid with a pure-query interface rather than a
// generated heightmap.
package terrain

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/chewxy/math32"
)

// Tile is the kind of ground at a grid cell.
type Tile uint8

const (
	Water Tile = iota
	Shallow
	Land
)

// document is the on-disk JSON shape: {width, height, tileSize, tiles[row][col]}.
type document struct {
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	TileSize float32 `json:"tileSize"`
	Tiles    [][]int `json:"tiles"`
}

// Map is the immutable tile grid of the world.
//
// Out-of-bounds reads return Land so navigation and kinematics code can
// probe freely near the edges without a bounds check at every call site.
type Map struct {
	width, height int
	tileSize      float32
	tiles         []Tile // row-major, width*height
}

// Load reads a tilemap document from r and validates its shape.
func Load(r io.Reader) (*Map, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("terrain: decode: %w", err)
	}
	if doc.Width <= 0 || doc.Height <= 0 {
		return nil, fmt.Errorf("terrain: invalid dimensions %dx%d", doc.Width, doc.Height)
	}
	if doc.TileSize <= 0 {
		return nil, fmt.Errorf("terrain: invalid tileSize %f", doc.TileSize)
	}
	if len(doc.Tiles) != doc.Height {
		return nil, fmt.Errorf("terrain: expected %d rows, got %d", doc.Height, len(doc.Tiles))
	}

	m := &Map{
		width:    doc.Width,
		height:   doc.Height,
		tileSize: doc.TileSize,
		tiles:    make([]Tile, doc.Width*doc.Height),
	}

	for row, cols := range doc.Tiles {
		if len(cols) != doc.Width {
			return nil, fmt.Errorf("terrain: row %d has %d cols, want %d", row, len(cols), doc.Width)
		}
		for col, v := range cols {
			if v < int(Water) || v > int(Land) {
				return nil, fmt.Errorf("terrain: row %d col %d has invalid tile %d", row, col, v)
			}
			m.tiles[row*doc.Width+col] = Tile(v)
		}
	}

	return m, nil
}

// LoadFile loads a tilemap from a path. The caller treats failure as
// fatal at startup.
func LoadFile(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("terrain: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

func (m *Map) Width() int          { return m.width }
func (m *Map) Height() int         { return m.height }
func (m *Map) TileSize() float32   { return m.tileSize }
func (m *Map) WorldWidth() float32  { return float32(m.width) * m.tileSize }
func (m *Map) WorldHeight() float32 { return float32(m.height) * m.tileSize }

// GetTileByGrid returns the tile at grid coordinates, or Land if out of
// bounds.
func (m *Map) GetTileByGrid(col, row int) Tile {
	if col < 0 || row < 0 || col >= m.width || row >= m.height {
		return Land
	}
	return m.tiles[row*m.width+col]
}

// GetTile returns the tile under a world-space position.
func (m *Map) GetTile(worldX, worldY float32) Tile {
	col := int(math32.Floor(worldX / m.tileSize))
	row := int(math32.Floor(worldY / m.tileSize))
	return m.GetTileByGrid(col, row)
}

func (m *Map) IsWater(worldX, worldY float32) bool {
	return m.GetTile(worldX, worldY) == Water
}

func (m *Map) IsShallow(worldX, worldY float32) bool {
	return m.GetTile(worldX, worldY) == Shallow
}

func (m *Map) IsLand(worldX, worldY float32) bool {
	return m.GetTile(worldX, worldY) == Land
}

// IsPassable is true for any tile a ship's hull may occupy (water or
// shallow, but not land).
func (m *Map) IsPassable(worldX, worldY float32) bool {
	return m.GetTile(worldX, worldY) != Land
}
