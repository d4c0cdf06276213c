package model

import (
	"fmt"
	"sort"
)

// WaitingView is the read-only face of the waiting registry given to policies.
type WaitingView interface {
	// Floors returns the floors with at least one waiter, ascending.
	Floors() []int
	// Count returns how many passengers wait on floor.
	Count(floor int) int
}

// WaitingRegistry holds the per-floor queues of passengers not yet boarded.
// Floors without waiters have no entry.
type WaitingRegistry struct {
	maxFloor int
	queues   map[int][]*Passenger
}

// NewWaitingRegistry creates an empty registry for floors 1..maxFloor.
func NewWaitingRegistry(maxFloor int) *WaitingRegistry {
	return &WaitingRegistry{maxFloor: maxFloor, queues: make(map[int][]*Passenger)}
}

// Enqueue appends p to the queue of its start floor.
func (r *WaitingRegistry) Enqueue(p *Passenger) error {
	if p == nil {
		return nil
	}
	if err := p.Validate(r.maxFloor); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	r.queues[p.StartFloor] = append(r.queues[p.StartFloor], p)
	return nil
}

// Floors returns the floors with at least one waiter, ascending.
func (r *WaitingRegistry) Floors() []int {
	floors := make([]int, 0, len(r.queues))
	for f, q := range r.queues {
		if len(q) > 0 {
			floors = append(floors, f)
		}
	}
	sort.Ints(floors)
	return floors
}

// Count returns how many passengers wait on floor.
func (r *WaitingRegistry) Count(floor int) int { return len(r.queues[floor]) }

// Queue returns a copy of the queue on floor in arrival order.
func (r *WaitingRegistry) Queue(floor int) []*Passenger {
	q := r.queues[floor]
	if len(q) == 0 {
		return nil
	}
	out := make([]*Passenger, len(q))
	copy(out, q)
	return out
}

// Len returns the total number of waiters.
func (r *WaitingRegistry) Len() int {
	n := 0
	for _, q := range r.queues {
		n += len(q)
	}
	return n
}

// BoardOnto moves waiters on the elevator's floor into it, in queue order, until
// the elevator is full or the queue is exhausted. The rest keep their order.
func (r *WaitingRegistry) BoardOnto(e *Elevator) ([]*Passenger, error) {
	queue := r.queues[e.CurrentFloor]
	if len(queue) == 0 {
		delete(r.queues, e.CurrentFloor)
		return nil, nil
	}
	boarded := make([]*Passenger, 0, e.RemainingCapacity())
	for len(queue) > 0 && !e.IsFull() {
		p := queue[0]
		if err := e.Board(p); err != nil {
			r.queues[e.CurrentFloor] = queue
			return boarded, err
		}
		queue = queue[1:]
		boarded = append(boarded, p)
	}
	if len(queue) == 0 {
		delete(r.queues, e.CurrentFloor)
	} else {
		r.queues[e.CurrentFloor] = queue
	}
	return boarded, nil
}

// Tick adds one round of wait to every waiter.
func (r *WaitingRegistry) Tick() {
	for _, q := range r.queues {
		for _, p := range q {
			p.Tick()
		}
	}
}

// Snapshot returns the queues as a fresh map of the current slices.
// The passengers themselves are shared; deep copy before handing out.
func (r *WaitingRegistry) Snapshot() map[int][]*Passenger {
	out := make(map[int][]*Passenger, len(r.queues))
	for f, q := range r.queues {
		if len(q) == 0 {
			continue
		}
		out[f] = append([]*Passenger(nil), q...)
	}
	return out
}

// View returns a WaitingView that cannot be converted back to the registry.
func (r *WaitingRegistry) View() WaitingView { return registryView{r} }

type registryView struct{ r *WaitingRegistry }

func (v registryView) Floors() []int       { return v.r.Floors() }
func (v registryView) Count(floor int) int { return v.r.Count(floor) }
