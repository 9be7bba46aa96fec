package tabula

// Listener observes a property change. It receives the value before and
// after the change.
type Listener[T any] func(oldValue, newValue T)

type listenerEntry[T any] struct {
	id uint32
	fn Listener[T]
}

// channel identifies which observer list a listener belongs to.
type channel uint8

const (
	channelInternal channel = iota // peer-state bookkeeping
	channelGUI                     // model -> render node
)

// Property is an observable value cell.
//
// Every Set notifies the internal listeners first and the GUI listeners
// second, each list in registration order. Internal listeners maintain
// derived model state (selection groups, drag cancellation) so the render
// layer never reads a stale view of it. SetSilent updates the value without
// notifying anyone; it is used when the render layer reports a change back
// into the model.
//
// Properties are not safe for concurrent use. Like the rest of the scene
// they belong to the UI goroutine.
type Property[T any] struct {
	value    T
	internal []listenerEntry[T]
	gui      []listenerEntry[T]
	nextID   uint32
}

// NewProperty creates a property holding v.
func NewProperty[T any](v T) *Property[T] {
	return &Property[T]{value: v}
}

// Get returns the current value.
func (p *Property[T]) Get() T {
	return p.value
}

// Set stores v and notifies internal listeners, then GUI listeners.
func (p *Property[T]) Set(v T) {
	old := p.value
	p.value = v
	p.notify(p.internal, old, v)
	p.notify(p.gui, old, v)
}

// SetSilent stores v without notifying any listener.
func (p *Property[T]) SetSilent(v T) {
	p.value = v
}

// notify dispatches over a snapshot so listeners may add or remove
// listeners while running.
func (p *Property[T]) notify(list []listenerEntry[T], old, v T) {
	switch len(list) {
	case 0:
		return
	case 1:
		list[0].fn(old, v)
		return
	}
	snapshot := make([]listenerEntry[T], len(list))
	copy(snapshot, list)
	for _, e := range snapshot {
		e.fn(old, v)
	}
}

// OnInternalChange registers a listener on the internal channel.
func (p *Property[T]) OnInternalChange(fn Listener[T]) ListenerHandle {
	return p.add(channelInternal, fn)
}

// OnChange registers a listener on the GUI channel.
func (p *Property[T]) OnChange(fn Listener[T]) ListenerHandle {
	return p.add(channelGUI, fn)
}

// SetGUIListenerAndInvoke registers fn on the GUI channel and immediately
// calls fn(initial, current) so the render side starts in sync.
func (p *Property[T]) SetGUIListenerAndInvoke(initial T, fn Listener[T]) ListenerHandle {
	h := p.add(channelGUI, fn)
	fn(initial, p.value)
	return h
}

// ClearGUIListeners drops every GUI listener. Internal listeners stay.
func (p *Property[T]) ClearGUIListeners() {
	clear(p.gui)
	p.gui = p.gui[:0]
}

// NumListeners returns the number of registered internal and GUI listeners.
func (p *Property[T]) NumListeners() (internal, gui int) {
	return len(p.internal), len(p.gui)
}

func (p *Property[T]) add(ch channel, fn Listener[T]) ListenerHandle {
	if fn == nil {
		panic("tabula: nil property listener")
	}
	p.nextID++
	id := p.nextID
	e := listenerEntry[T]{id: id, fn: fn}
	if ch == channelInternal {
		p.internal = append(p.internal, e)
	} else {
		p.gui = append(p.gui, e)
	}
	return ListenerHandle{remove: func() { p.remove(ch, id) }}
}

func (p *Property[T]) remove(ch channel, id uint32) {
	if ch == channelInternal {
		p.internal = removeListener(p.internal, id)
	} else {
		p.gui = removeListener(p.gui, id)
	}
}

func removeListener[T any](s []listenerEntry[T], id uint32) []listenerEntry[T] {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = listenerEntry[T]{}
			return s[:len(s)-1]
		}
	}
	return s
}

// ListenerHandle removes a registered property listener.
type ListenerHandle struct {
	remove func()
}

// Remove unregisters the listener. Calling Remove more than once, or on the
// zero handle, is a no-op.
func (h ListenerHandle) Remove() {
	if h.remove != nil {
		h.remove()
	}
}

// bindings collects listener handles so a whole binding set can be released
// together when a component leaves the render tree.
type bindings []ListenerHandle

func (b *bindings) add(h ListenerHandle) {
	*b = append(*b, h)
}

func (b *bindings) release() {
	for _, h := range *b {
		h.Remove()
	}
	*b = (*b)[:0]
}
