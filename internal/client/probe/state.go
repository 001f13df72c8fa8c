// Package probe tracks backend availability and recovers from cold starts.
//
// Free-tier backends spin down when idle and come back after 20–40 seconds,
// answering 502/503/504 (or nothing at all) in the meantime. The prober polls
// the health endpoint on a fixed schedule tuned for that window and gates
// data operations behind the resulting availability state.
package probe

import "sync"

// Availability is the backend readiness state driving whether fetches
// proceed and whether the UI shows a warming-up notice.
type Availability int

const (
	Idle Availability = iota
	Booting
	Ready
	Error
)

func (a Availability) String() string {
	switch a {
	case Booting:
		return "booting"
	case Ready:
		return "ready"
	case Error:
		return "error"
	default:
		return "idle"
	}
}

// State is the shared, observable availability value.
type State struct {
	mu       sync.Mutex
	current  Availability
	onChange func(Availability)
}

func NewState() *State {
	return &State{current: Idle}
}

// OnChange registers a single observer invoked (synchronously) whenever the
// value actually changes. Must be called before the state is shared.
func (s *State) OnChange(fn func(Availability)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

func (s *State) Get() Availability {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *State) Set(v Availability) {
	s.mu.Lock()
	changed := s.current != v
	s.current = v
	fn := s.onChange
	s.mu.Unlock()

	if changed && fn != nil {
		fn(v)
	}
}
