package event

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/geom"
)

type recorder struct {
	got []EventType
}

func (r *recorder) OnEvent(e Event) { r.got = append(r.got, e.Type) }

func TestDispatchInSubscriptionOrder(t *testing.T) {
	d := NewDispatcher()
	var order []string
	d.Subscribe(WaveEnded, ListenerFunc(func(Event) { order = append(order, "first") }))
	d.Subscribe(WaveEnded, ListenerFunc(func(Event) { order = append(order, "second") }))

	d.Dispatch(Event{Type: WaveEnded})
	d.Dispatch(Event{Type: WaveStarted})
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestUnsubscribe(t *testing.T) {
	d := NewDispatcher()
	r := &recorder{}
	d.Subscribe(BlockerPlaced, r)
	d.Subscribe(BlockerRemoved, r)

	d.Dispatch(Event{Type: BlockerPlaced})
	d.Unsubscribe(BlockerPlaced, r)
	d.Dispatch(Event{Type: BlockerPlaced})
	d.Dispatch(Event{Type: BlockerRemoved})

	assert.Equal(t, []EventType{BlockerPlaced, BlockerRemoved}, r.got)
}

func TestUnsubscribeSkipsFuncListeners(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	f := ListenerFunc(func(Event) { calls++ })
	d.Subscribe(GameOver, f)
	d.Unsubscribe(GameOver, f)
	d.Dispatch(Event{Type: GameOver})
	assert.Equal(t, 1, calls)
}

func TestSubscribeDuringDispatchWaitsForNextEvent(t *testing.T) {
	d := NewDispatcher()
	late := &recorder{}
	d.Subscribe(EnemyReachedGoal, ListenerFunc(func(e Event) {
		d.Subscribe(EnemyReachedGoal, late)
		d.Dispatch(Event{Type: GameOver})
	}))
	over := &recorder{}
	d.Subscribe(GameOver, over)

	d.Dispatch(Event{Type: EnemyReachedGoal})
	assert.Empty(t, late.got)
	assert.Equal(t, []EventType{GameOver}, over.got)

	d.Dispatch(Event{Type: EnemyReachedGoal})
	assert.Equal(t, []EventType{EnemyReachedGoal}, late.got)
}

func TestPayloadAccessors(t *testing.T) {
	c, ok := CellOf(Event{Type: BlockerPlaced, Data: geom.Cell{X: 2, Y: 3}})
	assert.True(t, ok)
	assert.Equal(t, geom.Cell{X: 2, Y: 3}, c)

	id, ok := EntityOf(Event{Type: EnemyReachedGoal, Data: types.EntityID(7)})
	assert.True(t, ok)
	assert.Equal(t, types.EntityID(7), id)

	k, ok := KilledOf(Event{Type: EnemyKilled, Data: EnemyKilledData{ID: 4, Reward: 2}})
	assert.True(t, ok)
	assert.Equal(t, 2, k.Reward)

	_, ok = CellOf(Event{Type: GameOver})
	assert.False(t, ok)
	_, ok = RouteOf(Event{Type: RouteBlocked})
	assert.False(t, ok)
}
