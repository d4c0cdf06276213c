package sim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/Cjh327/Elevator-Simulations/model"
)

// MovingAlgorithm decides every elevator's direction for one round. The result
// has one direction per elevator, in input order, and each must keep its
// elevator inside [1, maxFloor].
type MovingAlgorithm interface {
	Decide(elevators []model.ElevatorState, waiting model.WaitingView, maxFloor int) []model.Direction
}

// Algorithm names accepted by MovingAlgorithmByName.
const (
	AlgorithmRandom       = "random"
	AlgorithmPushy        = "pushy"
	AlgorithmShortSighted = "short_sighted"
)

// AlgorithmNames lists the known moving algorithms.
var AlgorithmNames = []string{AlgorithmRandom, AlgorithmPushy, AlgorithmShortSighted}

// MovingAlgorithmByName builds a moving algorithm; rng is only used by "random".
func MovingAlgorithmByName(name string, rng *rand.Rand) (MovingAlgorithm, error) {
	switch name {
	case AlgorithmRandom:
		return NewRandomAlgorithm(rng), nil
	case AlgorithmPushy, "pushy_passenger":
		return PushyPassenger{}, nil
	case AlgorithmShortSighted, "shortsighted":
		return ShortSighted{}, nil
	}
	return nil, fmt.Errorf("%w: unknown moving algorithm %q", model.ErrInvalidConfiguration, name)
}

// RandomAlgorithm picks uniformly among the directions valid at each floor.
type RandomAlgorithm struct {
	RNG *rand.Rand
}

// NewRandomAlgorithm uses rng, or a clock-seeded source when rng is nil.
func NewRandomAlgorithm(rng *rand.Rand) *RandomAlgorithm {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RandomAlgorithm{RNG: rng}
}

func (a *RandomAlgorithm) Decide(elevators []model.ElevatorState, _ model.WaitingView, maxFloor int) []model.Direction {
	dirs := make([]model.Direction, len(elevators))
	for i, e := range elevators {
		valid := model.ValidDirections(e.Floor, maxFloor)
		dirs[i] = valid[a.RNG.Intn(len(valid))]
	}
	return dirs
}

// PushyPassenger serves the earliest boarder first. Empty elevators head for
// the lowest floor with somebody waiting.
type PushyPassenger struct{}

func (PushyPassenger) Decide(elevators []model.ElevatorState, waiting model.WaitingView, maxFloor int) []model.Direction {
	lowest := 0
	if floors := waiting.Floors(); len(floors) > 0 {
		lowest = floors[0]
	}
	dirs := make([]model.Direction, len(elevators))
	for i, e := range elevators {
		target := lowest
		if !e.Empty() {
			target = e.Targets[0]
		}
		dirs[i] = step(e.Floor, target, maxFloor)
	}
	return dirs
}

// ShortSighted always heads for the nearest useful floor: the closest waiting
// floor when empty, the closest onboard target otherwise.
type ShortSighted struct{}

func (ShortSighted) Decide(elevators []model.ElevatorState, waiting model.WaitingView, maxFloor int) []model.Direction {
	floors := waiting.Floors()
	dirs := make([]model.Direction, len(elevators))
	for i, e := range elevators {
		candidates := floors
		if !e.Empty() {
			candidates = e.Targets
		}
		dirs[i] = step(e.Floor, nearest(e.Floor, candidates), maxFloor)
	}
	return dirs
}

// nearest returns the candidate closest to floor, first one winning ties,
// or 0 when there are none.
func nearest(floor int, candidates []int) int {
	best, bestDist := 0, -1
	for _, c := range candidates {
		d := abs(c - floor)
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// step moves one floor toward target; target 0 means nowhere to go.
// A step that would leave [1, maxFloor] becomes Stay.
func step(floor, target, maxFloor int) model.Direction {
	if target <= 0 {
		return model.Stay
	}
	d := model.Toward(floor, target)
	if model.CheckDirection(d, floor, maxFloor) != nil {
		return model.Stay
	}
	return d
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
