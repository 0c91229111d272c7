package entity

import "math"

// TileType represents the type of a tile
type TileType int

const (
	TileEmpty TileType = iota
	TileWall
	TileSpike // kills characters that touch it
)

// Tile represents a single tile in the stage
type Tile struct {
	Type  TileType
	Solid bool
}

// Stage represents the current stage's tile data
type Stage struct {
	Width    int // tiles
	Height   int // tiles
	TileSize int // world units per tile
	Tiles    [][]Tile
	SpawnX   float64
	SpawnY   float64
}

// GetTile returns the tile at the given tile coordinates.
// Everything outside the stage is a solid wall.
func (s *Stage) GetTile(tx, ty int) Tile {
	if tx < 0 || tx >= s.Width || ty < 0 || ty >= s.Height {
		return Tile{Type: TileWall, Solid: true}
	}
	return s.Tiles[ty][tx]
}

// GetTileAt returns the tile under a world position
func (s *Stage) GetTileAt(x, y float64) Tile {
	ts := float64(s.TileSize)
	return s.GetTile(int(math.Floor(x/ts)), int(math.Floor(y/ts)))
}

// IsSolidAt checks if the tile under a world position is solid
func (s *Stage) IsSolidAt(x, y float64) bool {
	return s.GetTileAt(x, y).Solid
}

// PixelSize returns the stage size in world units
func (s *Stage) PixelSize() (w, h int) {
	return s.Width * s.TileSize, s.Height * s.TileSize
}

// TileSpan returns the inclusive tile index range covered by [lo, hi).
// Edges that only touch a tile boundary do not count as covering it.
func (s *Stage) TileSpan(lo, hi float64) (first, last int) {
	const eps = 1e-6
	ts := float64(s.TileSize)
	first = int(math.Floor((lo + eps) / ts))
	last = int(math.Floor((hi - eps) / ts))
	return first, last
}
