// internal/event/event.go
package event

// EventType - тип события
type EventType string

// Event is one notification on the game bus. Data depends on Type; the
// payload of each type is listed next to its constant in types.go and can
// be read with RouteOf, CellOf, EntityOf and KilledOf.
type Event struct {
	Type EventType
	Data interface{}
}

// Listener receives the events it subscribed to. Systems (routing, wave,
// state) and the game facade all implement it.
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(Event)

func (f ListenerFunc) OnEvent(e Event) { f(e) }

// Dispatcher delivers events synchronously on the simulation goroutine.
type Dispatcher struct {
	listeners map[EventType][]Listener
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

// Subscribe adds listener for eventType. Order of subscription is the
// order of delivery.
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

// Unsubscribe removes the first matching listener. Func listeners cannot
// be compared and are never removed.
func (d *Dispatcher) Unsubscribe(eventType EventType, listener Listener) {
	if _, isFunc := listener.(ListenerFunc); isFunc {
		return
	}
	listeners := d.listeners[eventType]
	for i, l := range listeners {
		if _, isFunc := l.(ListenerFunc); isFunc {
			continue
		}
		if l == listener {
			d.listeners[eventType] = append(listeners[:i:i], listeners[i+1:]...)
			return
		}
	}
}

// Dispatch calls every listener of event.Type. A listener may dispatch
// further events or change subscriptions; the change applies from the next
// Dispatch of that type.
func (d *Dispatcher) Dispatch(event Event) {
	for _, listener := range d.listeners[event.Type] {
		listener.OnEvent(event)
	}
}
