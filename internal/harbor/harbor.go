// Package harbor loads and serves the immutable harbor registry: world
// position, interaction radius, name, island reference, and the exit
// direction ships are placed along when departing. The registry is
// built once at startup from embedded or file-loaded JSON and never
// mutated afterward.
package harbor

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ironkeel/galleon-server/internal/mathf"
)

// ID identifies a harbor.
type ID uint32

// Harbor is a docking point read once from the harbors JSON at startup.
type Harbor struct {
	ID            ID          `json:"id"`
	Position      mathf.Vec2  `json:"position"`
	Radius        float32     `json:"radius"`
	Name          string      `json:"name"`
	IslandID      int         `json:"islandId"`
	ExitDirection mathf.Vec2  `json:"exitDirection"`
}

type harborDoc struct {
	ID       ID      `json:"id"`
	TileX    float32 `json:"tileX"`
	TileY    float32 `json:"tileY"`
	TileSize float32 `json:"tileSize"`
	Name     string  `json:"name"`
	IslandID int     `json:"islandId"`
	ExitDir  struct {
		X float32 `json:"x"`
		Y float32 `json:"y"`
	} `json:"exitDirection"`
	Radius float32 `json:"radius"`
}

// Registry is the immutable set of harbors loaded at startup.
type Registry struct {
	byID  map[ID]*Harbor
	order []*Harbor // stable iteration order, matches load order
}

// Load parses the harbors JSON document. tileSize converts tile-grid
// coordinates in the document to world-space pixels when a harbor entry
// omits its own tileSize.
func Load(r io.Reader, defaultTileSize float32) (*Registry, error) {
	var docs []harborDoc
	if err := json.NewDecoder(r).Decode(&docs); err != nil {
		return nil, fmt.Errorf("harbor: decode: %w", err)
	}

	reg := &Registry{byID: make(map[ID]*Harbor, len(docs))}
	for _, d := range docs {
		tileSize := d.TileSize
		if tileSize <= 0 {
			tileSize = defaultTileSize
		}
		if d.Radius <= 0 {
			return nil, fmt.Errorf("harbor: %d has non-positive radius", d.ID)
		}
		exit := mathf.Vec2{X: d.ExitDir.X, Y: d.ExitDir.Y}.Norm()
		if exit == (mathf.Vec2{}) {
			// Default to due north if the tool omitted a usable direction.
			exit = mathf.Vec2{X: 0, Y: -1}
		}
		h := &Harbor{
			ID:            d.ID,
			Position:      mathf.Vec2{X: d.TileX * tileSize, Y: d.TileY * tileSize},
			Radius:        d.Radius,
			Name:          d.Name,
			IslandID:      d.IslandID,
			ExitDirection: exit,
		}
		reg.byID[h.ID] = h
		reg.order = append(reg.order, h)
	}
	return reg, nil
}

// LoadFile loads the harbor registry from a path. The caller treats
// failure as fatal at startup.
func LoadFile(path string, defaultTileSize float32) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("harbor: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f, defaultTileSize)
}

// Get returns a harbor by id, or nil.
func (reg *Registry) Get(id ID) *Harbor {
	return reg.byID[id]
}

// All returns harbors in stable load order.
func (reg *Registry) All() []*Harbor {
	return reg.order
}

// Nearest returns the closest harbor to pos and its distance, or nil if
// the registry is empty.
func (reg *Registry) Nearest(pos mathf.Vec2) (*Harbor, float32) {
	var best *Harbor
	var bestDist float32
	for _, h := range reg.order {
		d := h.Position.Distance(pos)
		if best == nil || d < bestDist {
			best, bestDist = h, d
		}
	}
	return best, bestDist
}

// Within reports whether pos is inside a harbor's interaction radius, and
// returns that harbor.
func (reg *Registry) Within(pos mathf.Vec2) *Harbor {
	for _, h := range reg.order {
		if pos.DistanceSquared(h.Position) <= h.Radius*h.Radius {
			return h
		}
	}
	return nil
}
