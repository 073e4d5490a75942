// Package tilemap holds the tile grid the game is played on and the
// generators that fill it.
package tilemap

import (
	"errors"
	"math"
)

// Tile is the content of one grid cell.
type Tile uint8

const (
	Grass Tile = iota
	Wall
)

func (t Tile) String() string {
	switch t {
	case Grass:
		return "grass"
	case Wall:
		return "wall"
	default:
		return "unknown"
	}
}

var ErrInvalidSize = errors.New("tilemap: width and height must be positive")

// Grid is a fixed-size row-major array of tiles.
type Grid struct {
	width  int
	height int
	tiles  []Tile
}

// NewGrid returns a grid of the given size filled with grass.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	return &Grid{
		width:  width,
		height: height,
		tiles:  make([]Tile, width*height),
	}, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) names a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// At returns the tile at (x, y). Cells outside the grid read as grass.
func (g *Grid) At(x, y int) Tile {
	if !g.InBounds(x, y) {
		return Grass
	}
	return g.tiles[y*g.width+x]
}

// Set writes a tile. Writes outside the grid are ignored.
func (g *Grid) Set(x, y int, t Tile) {
	if !g.InBounds(x, y) {
		return
	}
	g.tiles[y*g.width+x] = t
}

// IsBorder reports whether (x, y) lies on the outer ring.
func (g *Grid) IsBorder(x, y int) bool {
	return x == 0 || y == 0 || x == g.width-1 || y == g.height-1
}

// WallAt reports whether the world-space point (px, py) falls on a wall
// tile. Points outside the grid never hit a wall.
func (g *Grid) WallAt(px, py, tileSize float64) bool {
	tx := int(math.Floor(px / tileSize))
	ty := int(math.Floor(py / tileSize))
	return g.InBounds(tx, ty) && g.tiles[ty*g.width+tx] == Wall
}

// Count returns how many cells hold t.
func (g *Grid) Count(t Tile) int {
	n := 0
	for _, tile := range g.tiles {
		if tile == t {
			n++
		}
	}
	return n
}

// Rows returns a copy of the grid as rows of tiles.
func (g *Grid) Rows() [][]Tile {
	rows := make([][]Tile, g.height)
	for y := range rows {
		rows[y] = make([]Tile, g.width)
		copy(rows[y], g.tiles[y*g.width:(y+1)*g.width])
	}
	return rows
}

// Equal reports whether both grids have the same size and tiles.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.width != other.width || g.height != other.height {
		return false
	}
	for i := range g.tiles {
		if g.tiles[i] != other.tiles[i] {
			return false
		}
	}
	return true
}
