package query

import "sync/atomic"

// Ticket identifies one issued list request.
type Ticket uint64

// Sequence tags list requests so that a response arriving after a newer
// request was issued can be recognised and dropped.
type Sequence struct {
	last atomic.Uint64
}

// Next issues a ticket newer than every earlier one.
func (s *Sequence) Next() Ticket {
	return Ticket(s.last.Add(1))
}

// Current reports whether t is the most recently issued ticket.
func (s *Sequence) Current(t Ticket) bool {
	return uint64(t) == s.last.Load()
}
