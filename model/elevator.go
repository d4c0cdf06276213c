package model

import "fmt"

// Elevator is a capacity-bounded carrier moving between floors 1..MaxFloor.
type Elevator struct {
	ID           int `json:"id"`
	Capacity     int `json:"capacity"`
	MaxFloor     int `json:"max_floor"`
	CurrentFloor int `json:"current_floor"`
	// Passengers are kept in boarding order.
	Passengers    []*Passenger `json:"passengers,omitempty"`
	TotalBoarded  int          `json:"total_boarded"`
	TotalAlighted int          `json:"total_alighted"`
}

// ElevatorState is a value snapshot of an elevator handed to the moving algorithms.
type ElevatorState struct {
	ID       int   `json:"id"`
	Floor    int   `json:"floor"`
	Capacity int   `json:"capacity"`
	Targets  []int `json:"targets"` // onboard target floors in boarding order
}

// Empty reports whether nobody is onboard.
func (s ElevatorState) Empty() bool { return len(s.Targets) == 0 }

// NewElevator creates an empty elevator parked at floor 1.
func NewElevator(id, capacity, maxFloor int) (*Elevator, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: elevator capacity %d < 1", ErrInvalidConfiguration, capacity)
	}
	if maxFloor < 2 {
		return nil, fmt.Errorf("%w: max floor %d < 2", ErrInvalidConfiguration, maxFloor)
	}
	return &Elevator{ID: id, Capacity: capacity, MaxFloor: maxFloor, CurrentFloor: 1}, nil
}

// Move applies one round's direction, rejecting moves beyond [1, MaxFloor].
func (e *Elevator) Move(d Direction) error {
	if err := CheckDirection(d, e.CurrentFloor, e.MaxFloor); err != nil {
		return fmt.Errorf("elevator %d: %w", e.ID, err)
	}
	e.CurrentFloor += int(d)
	return nil
}

// MoveUp moves one floor up.
func (e *Elevator) MoveUp() error { return e.Move(Up) }

// MoveDown moves one floor down.
func (e *Elevator) MoveDown() error { return e.Move(Down) }

// Board appends p to the onboard list.
func (e *Elevator) Board(p *Passenger) error {
	if e.IsFull() {
		return fmt.Errorf("elevator %d boarding %v: %w (%d/%d)", e.ID, p, ErrCapacityExceeded, len(e.Passengers), e.Capacity)
	}
	e.Passengers = append(e.Passengers, p)
	e.TotalBoarded++
	return nil
}

// Remove takes p off the elevator, keeping the order of the others.
func (e *Elevator) Remove(p *Passenger) error {
	for i, q := range e.Passengers {
		if q == p {
			e.Passengers = append(e.Passengers[:i:i], e.Passengers[i+1:]...)
			e.TotalAlighted++
			return nil
		}
	}
	return fmt.Errorf("elevator %d removing %v: %w", e.ID, p, ErrNotFound)
}

// AlightAtCurrentFloor removes every passenger whose target is the current floor
// and returns them in boarding order.
func (e *Elevator) AlightAtCurrentFloor() (alighted []*Passenger) {
	if len(e.Passengers) == 0 {
		return nil
	}
	keep := make([]*Passenger, 0, len(e.Passengers))
	for _, p := range e.Passengers {
		if p.TargetFloor == e.CurrentFloor {
			alighted = append(alighted, p)
			e.TotalAlighted++
		} else {
			keep = append(keep, p)
		}
	}
	e.Passengers = keep
	return alighted
}

// RemainingCapacity returns how many more passengers can board.
func (e *Elevator) RemainingCapacity() int {
	rem := e.Capacity - len(e.Passengers)
	if rem < 0 {
		return 0
	}
	return rem
}

// IsFull reports whether the elevator is at capacity.
func (e *Elevator) IsFull() bool { return e.RemainingCapacity() == 0 }

// IsEmpty reports whether nobody is onboard.
func (e *Elevator) IsEmpty() bool { return len(e.Passengers) == 0 }

// LoadFraction returns the fraction (0..1) of capacity in use.
func (e *Elevator) LoadFraction() float64 {
	if e.Capacity <= 0 {
		return 0
	}
	return float64(len(e.Passengers)) / float64(e.Capacity)
}

// Tick adds one round of wait to everybody onboard.
func (e *Elevator) Tick() {
	for _, p := range e.Passengers {
		p.Tick()
	}
}

// State snapshots the elevator for policies and observers.
func (e *Elevator) State() ElevatorState {
	targets := make([]int, len(e.Passengers))
	for i, p := range e.Passengers {
		targets[i] = p.TargetFloor
	}
	return ElevatorState{ID: e.ID, Floor: e.CurrentFloor, Capacity: e.Capacity, Targets: targets}
}
