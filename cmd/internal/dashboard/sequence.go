package dashboard

import (
	"sync"
	"sync/atomic"
)

// Sequencer is the optional guard against out-of-order responses. Without it
// overlapping refreshes of a view are last-response-wins: a slow request issued
// first overwrites the result of a faster one issued later. With it, only the
// response to the most recently issued request is applied.
//
// A nil *Sequencer applies everything, which is the default behavior.
type Sequencer struct {
	issued atomic.Uint64
	mu     sync.Mutex
}

func NewSequencer() *Sequencer {
	return &Sequencer{}
}

// Next numbers a new request.
func (s *Sequencer) Next() uint64 {
	if s == nil {
		return 0
	}
	return s.issued.Add(1)
}

// Apply runs apply only if seq still belongs to the latest issued request and
// reports whether it did.
func (s *Sequencer) Apply(seq uint64, apply func()) bool {
	if s == nil {
		apply()
		return true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.issued.Load() {
		return false
	}
	apply()
	return true
}
