package engine

// Event is a multi-cast event. Listeners are identified by the handle
// returned from AddListener so they can be removed again.
type Event[T any] struct {
	nextID    int
	listeners []listener[T]
}

type listener[T any] struct {
	id int
	fn func(T)
}

// AddListener registers callback and returns a func that removes it.
func (e *Event[T]) AddListener(callback func(T)) (remove func()) {
	if callback == nil {
		return func() {}
	}
	e.nextID++
	id := e.nextID
	e.listeners = append(e.listeners, listener[T]{id: id, fn: callback})
	return func() { e.removeListener(id) }
}

func (e *Event[T]) removeListener(id int) {
	for i, l := range e.listeners {
		if l.id == id {
			e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
			return
		}
	}
}

// RemoveAllListeners clears all listeners
func (e *Event[T]) RemoveAllListeners() {
	e.listeners = nil
}

// Invoke calls all registered listeners in registration order.
func (e *Event[T]) Invoke(arg T) {
	// a listener may unsubscribe while we iterate
	ls := append([]listener[T](nil), e.listeners...)
	for _, l := range ls {
		l.fn(arg)
	}
}

func (e *Event[T]) ListenerCount() int {
	return len(e.listeners)
}
