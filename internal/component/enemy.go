// internal/component/enemy.go
package component

// Enemy представляет вражескую сущность.
type Enemy struct {
	DefID      string
	Level      int
	Boss       bool
	Reward     int
	Dead       bool // killed by an external damage source
	ReachedEnd bool // walked off the end of its route
}
