package model

import "sort"

// Arrivals maps a start floor to the passengers that appeared there in one round.
// An absent floor and an empty slice mean the same thing.
type Arrivals map[int][]*Passenger

// Add appends p under its start floor.
func (a Arrivals) Add(p *Passenger) {
	a[p.StartFloor] = append(a[p.StartFloor], p)
}

// Count returns the number of passengers across all floors.
func (a Arrivals) Count() int {
	n := 0
	for _, ps := range a {
		n += len(ps)
	}
	return n
}

// Floors returns the floors with at least one arrival, ascending.
func (a Arrivals) Floors() []int {
	floors := make([]int, 0, len(a))
	for f, ps := range a {
		if len(ps) > 0 {
			floors = append(floors, f)
		}
	}
	sort.Ints(floors)
	return floors
}
