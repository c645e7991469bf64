// internal/level/level.go
package level

import (
	"embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"go-grid-defense/pkg/geom"
	"go-grid-defense/pkg/grid"
)

//go:embed data/default.yaml
var builtin embed.FS

var (
	ErrNotRectangular = errors.New("map rows differ in length")
	ErrEmptyMap       = errors.New("map has no cells")
	ErrBadEndpoint    = errors.New("entry/exit must be free cells inside the map")
	ErrBadTile        = errors.New("unknown map tile")
)

// Level is an authored map: static walls plus the entry and exit cells.
type Level struct {
	Name string
	// TileSize is zero when the file leaves it to the game settings.
	TileSize float64
	Entry    geom.Cell
	Exit     geom.Cell
	Walls    *grid.Grid
	// Route is the entry->exit route over the bare walls.
	Route grid.Route
}

type levelFile struct {
	Name     string   `yaml:"name"`
	TileSize float64  `yaml:"tile_size"`
	Entry    [2]int   `yaml:"entry"`
	Exit     [2]int   `yaml:"exit"`
	Map      []string `yaml:"map"`
}

// Parse decodes a YAML level. '.' is a free tile and '#' a wall.
func Parse(data []byte) (*Level, error) {
	var f levelFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("level: unmarshal: %w", err)
	}
	if len(f.Map) == 0 || len(f.Map[0]) == 0 {
		return nil, fmt.Errorf("level %q: %w", f.Name, ErrEmptyMap)
	}

	rows := make([][]int, len(f.Map))
	for y, line := range f.Map {
		if len(line) != len(f.Map[0]) {
			return nil, fmt.Errorf("level %q: row %d: %w", f.Name, y, ErrNotRectangular)
		}
		rows[y] = make([]int, len(line))
		for x, ch := range []byte(line) {
			switch ch {
			case '.':
			case '#':
				rows[y][x] = 1
			default:
				return nil, fmt.Errorf("level %q: %q at (%d,%d): %w", f.Name, ch, x, y, ErrBadTile)
			}
		}
	}
	walls, err := grid.FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("level %q: %w", f.Name, err)
	}

	lvl := &Level{
		Name:     f.Name,
		TileSize: f.TileSize,
		Entry:    geom.Cell{X: f.Entry[0], Y: f.Entry[1]},
		Exit:     geom.Cell{X: f.Exit[0], Y: f.Exit[1]},
		Walls:    walls,
	}
	if lvl.TileSize < 0 {
		return nil, fmt.Errorf("level %q: tile_size %v must not be negative", f.Name, lvl.TileSize)
	}
	for _, c := range []geom.Cell{lvl.Entry, lvl.Exit} {
		if !walls.InBounds(c) || walls.Blocked(c) {
			return nil, fmt.Errorf("level %q: %v: %w", f.Name, c, ErrBadEndpoint)
		}
	}
	lvl.Route, err = grid.FindRoute(lvl.Entry, lvl.Exit, walls)
	if err != nil {
		return nil, fmt.Errorf("level %q: entry %v to exit %v: %w", f.Name, lvl.Entry, lvl.Exit, err)
	}
	return lvl, nil
}

// Load reads and parses a level file.
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: read %s: %w", path, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("level: parse %s: %w", path, err)
	}
	return lvl, nil
}

// Default returns the level compiled into the binary.
func Default() *Level {
	data, err := builtin.ReadFile("data/default.yaml")
	if err != nil {
		panic(err)
	}
	lvl, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return lvl
}

// Width and Height are the map size in cells.
func (l *Level) Width() int  { return l.Walls.Width() }
func (l *Level) Height() int { return l.Walls.Height() }

// Reserved reports whether c may never hold a blocker.
func (l *Level) Reserved(c geom.Cell) bool {
	return c == l.Entry || c == l.Exit
}
