// internal/event/types.go
package event

import (
	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/geom"
	"go-grid-defense/pkg/grid"
)

const (
	BlockerPlaced    EventType = "BlockerPlaced"    // Data: geom.Cell
	BlockerRemoved   EventType = "BlockerRemoved"   // Data: geom.Cell
	LevelReloaded    EventType = "LevelReloaded"    // Data: level name
	RouteChanged     EventType = "RouteChanged"     // Data: grid.Route
	RouteBlocked     EventType = "RouteBlocked"     // shared route search failed, stale route kept
	EnemySpawned     EventType = "EnemySpawned"     // Data: types.EntityID
	EnemyKilled      EventType = "EnemyKilled"      // Data: EnemyKilledData
	EnemyReachedGoal EventType = "EnemyReachedGoal" // Data: types.EntityID
	WaveStarted      EventType = "WaveStarted"      // Data: int wave number
	WaveEnded        EventType = "WaveEnded"        // Data: int wave number
	GameOver         EventType = "GameOver"         // нет данных
)

// EnemyKilledData is the payload of EnemyKilled.
type EnemyKilledData struct {
	ID     types.EntityID
	Reward int
	Cell   geom.Cell
}

// RouteOf extracts the route carried by a RouteChanged event.
func RouteOf(e Event) (grid.Route, bool) {
	r, ok := e.Data.(grid.Route)
	return r, ok
}

// CellOf extracts the cell carried by BlockerPlaced and BlockerRemoved.
func CellOf(e Event) (geom.Cell, bool) {
	c, ok := e.Data.(geom.Cell)
	return c, ok
}

// EntityOf extracts the enemy carried by EnemySpawned and EnemyReachedGoal.
func EntityOf(e Event) (types.EntityID, bool) {
	id, ok := e.Data.(types.EntityID)
	return id, ok
}

// KilledOf extracts the EnemyKilled payload.
func KilledOf(e Event) (EnemyKilledData, bool) {
	d, ok := e.Data.(EnemyKilledData)
	return d, ok
}
