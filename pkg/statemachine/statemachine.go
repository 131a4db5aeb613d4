package statemachine

import (
	"fmt"
	"sync"
)

// State identifies a machine state.
type State string

// Event identifies a transition trigger.
type Event string

// Transition is one edge of the machine.
type Transition struct {
	From  State
	Event Event
	To    State
}

// T is shorthand for declaring a Transition.
func T(from State, event Event, to State) Transition {
	return Transition{From: from, Event: event, To: to}
}

// ErrNoTransition indicates the current state has no edge for an event.
type ErrNoTransition struct {
	State State
	Event Event
}

func (e *ErrNoTransition) Error() string {
	return fmt.Sprintf("statemachine: no transition from %q on %q", e.State, e.Event)
}

// Machine is a thread-safe finite state machine.
// The transition table is fixed at construction; edges are looked up in
// O(1) via a nested map keyed by state then event.
type Machine struct {
	current State
	edges   map[State]map[Event]State
	onEnter func(from, to State, event Event)
	mu      sync.RWMutex
}

// Option configures a Machine.
type Option func(*Machine)

// OnTransition registers a hook invoked after every successful
// transition, while the machine lock is held. Keep it fast and do not
// call back into the machine from it.
func OnTransition(fn func(from, to State, event Event)) Option {
	return func(m *Machine) {
		m.onEnter = fn
	}
}

// New creates a machine in the initial state with the given edges.
// Duplicate (from, event) pairs panic: the table is ambiguous.
func New(initial State, transitions []Transition, opts ...Option) *Machine {
	m := &Machine{
		current: initial,
		edges:   make(map[State]map[Event]State, len(transitions)),
	}

	for _, t := range transitions {
		byEvent, ok := m.edges[t.From]
		if !ok {
			byEvent = make(map[Event]State)
			m.edges[t.From] = byEvent
		}
		if _, dup := byEvent[t.Event]; dup {
			panic(fmt.Sprintf("statemachine: duplicate transition from %q on %q", t.From, t.Event))
		}
		byEvent[t.Event] = t.To
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Current returns the current state.
func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Is reports whether the machine is in the given state.
func (m *Machine) Is(s State) bool {
	return m.Current() == s
}

// Fire applies an event. On success it returns the new state; if the
// current state has no edge for the event it returns *ErrNoTransition
// and the state is unchanged.
func (m *Machine) Fire(event Event) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	to, ok := m.edges[m.current][event]
	if !ok {
		return m.current, &ErrNoTransition{State: m.current, Event: event}
	}

	from := m.current
	m.current = to
	if m.onEnter != nil {
		m.onEnter(from, to, event)
	}
	return to, nil
}

// CanFire reports whether an event is legal in the current state.
func (m *Machine) CanFire(event Event) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.edges[m.current][event]
	return ok
}
