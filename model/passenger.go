package model

import "fmt"

// Passenger represents a single person travelling between two floors.
type Passenger struct {
	ID          int `json:"id"`
	StartFloor  int `json:"start_floor"`
	TargetFloor int `json:"target_floor"`
	WaitTime    int `json:"wait_time"` // rounds elapsed since arrival
}

// NewPassenger creates a passenger that has not waited yet.
func NewPassenger(start, target int) *Passenger {
	return &Passenger{StartFloor: start, TargetFloor: target}
}

// Tick records one more elapsed round.
func (p *Passenger) Tick() {
	p.WaitTime++
}

// AngerLevel maps the wait time onto levels 0..4 (0-2, 3-4, 5-6, 7-8, 9+ rounds).
func (p *Passenger) AngerLevel() int {
	switch {
	case p.WaitTime <= 2:
		return 0
	case p.WaitTime <= 4:
		return 1
	case p.WaitTime <= 6:
		return 2
	case p.WaitTime <= 8:
		return 3
	default:
		return 4
	}
}

// Validate checks the floor invariants against a building of maxFloor floors.
func (p *Passenger) Validate(maxFloor int) error {
	if p.StartFloor < 1 || p.StartFloor > maxFloor {
		return fmt.Errorf("start floor %d outside [1, %d]", p.StartFloor, maxFloor)
	}
	if p.TargetFloor < 1 || p.TargetFloor > maxFloor {
		return fmt.Errorf("target floor %d outside [1, %d]", p.TargetFloor, maxFloor)
	}
	if p.StartFloor == p.TargetFloor {
		return fmt.Errorf("start and target floor are both %d", p.StartFloor)
	}
	if p.WaitTime < 0 {
		return fmt.Errorf("negative wait time %d", p.WaitTime)
	}
	return nil
}

func (p *Passenger) String() string {
	return fmt.Sprintf("passenger#%d(%d->%d, waited %d)", p.ID, p.StartFloor, p.TargetFloor, p.WaitTime)
}
