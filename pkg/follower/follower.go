// pkg/follower/follower.go
package follower

import (
	"errors"
	"fmt"

	"go-grid-defense/pkg/geom"
	"go-grid-defense/pkg/grid"
)

var (
	ErrInvalidSpeed    = errors.New("follower: speed must be positive")
	ErrInvalidTileSize = errors.New("follower: tile size must be positive")
)

// State is the follower's lifecycle state.
type State int

const (
	Traveling State = iota
	Finished
)

func (s State) String() string {
	switch s {
	case Traveling:
		return "traveling"
	case Finished:
		return "finished"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Follower walks a route at a constant speed, one tick at a time.
//
// segment is the index of the last waypoint reached; while traveling the
// follower heads for route[segment+1], whose world position is target.
type Follower struct {
	route    grid.Route
	segment  int
	position geom.Vec2
	target   geom.Vec2
	speed    float64
	tileSize float64
	state    State
}

// New places a follower on the first cell of route. A single-cell route
// yields a follower that is already finished.
func New(route grid.Route, speed, tileSize float64) (*Follower, error) {
	if route.Empty() {
		return nil, fmt.Errorf("follower: new: %w", grid.ErrInvalidRoute)
	}
	if speed <= 0 {
		return nil, ErrInvalidSpeed
	}
	if tileSize <= 0 {
		return nil, ErrInvalidTileSize
	}
	f := &Follower{
		route:    route,
		speed:    speed,
		tileSize: tileSize,
		position: geom.CellToWorld(route.First(), tileSize),
	}
	f.aimAt(0)
	return f, nil
}

// aimAt makes i the last reached waypoint and targets the next one, or
// finishes when i is the goal.
func (f *Follower) aimAt(i int) {
	f.segment = i
	if i < f.route.Len()-1 {
		f.target = f.waypoint(i + 1)
		f.state = Traveling
		return
	}
	f.target = f.waypoint(i)
	f.state = Finished
}

func (f *Follower) waypoint(i int) geom.Vec2 {
	return geom.CellToWorld(f.route.At(i), f.tileSize)
}

// Tick advances the follower by one simulation step.
func (f *Follower) Tick() {
	if f.state == Finished {
		return
	}
	toTarget := f.target.Sub(f.position)
	step := f.speed
	// Never step past the waypoint; a fast follower lands on it instead.
	if d := toTarget.Len(); d < step {
		step = d
	}
	f.position = f.position.Add(toTarget.Normalize().Scale(step))

	if f.position.Dist(f.target) < f.speed {
		f.aimAt(f.segment + 1)
	}
}

// Reroute switches to route without moving the follower. It resumes from
// the route cell closest to the current position (first one on ties).
func (f *Follower) Reroute(route grid.Route) error {
	if route.Empty() {
		return fmt.Errorf("follower: reroute: %w", grid.ErrInvalidRoute)
	}
	closest := 0
	best := -1.0
	for i := 0; i < route.Len(); i++ {
		d := f.position.Dist(geom.CellToWorld(route.At(i), f.tileSize))
		if best < 0 || d < best {
			best = d
			closest = i
		}
	}
	f.route = route
	f.aimAt(closest)
	return nil
}

func (f *Follower) Position() geom.Vec2 { return f.position }
func (f *Follower) Target() geom.Vec2   { return f.target }
func (f *Follower) SegmentIndex() int   { return f.segment }
func (f *Follower) Route() grid.Route   { return f.route }
func (f *Follower) Speed() float64      { return f.speed }
func (f *Follower) State() State        { return f.state }
func (f *Follower) Finished() bool      { return f.state == Finished }

// Cell returns the grid cell under the follower's position.
func (f *Follower) Cell() geom.Cell {
	return geom.WorldToCell(f.position, f.tileSize)
}

// Progress returns the fraction of waypoints passed, in [0, 1].
func (f *Follower) Progress() float64 {
	if f.route.Len() <= 1 {
		return 1
	}
	return float64(f.segment) / float64(f.route.Len()-1)
}

// RemainingDistance is the world distance still to walk: to the current
// target, then along the remaining waypoints to the goal.
func (f *Follower) RemainingDistance() float64 {
	if f.state == Finished {
		return 0
	}
	d := f.position.Dist(f.target)
	steps := f.route.Len() - 1 - (f.segment + 1)
	return d + float64(steps)*f.tileSize
}
