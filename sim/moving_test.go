package sim

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/Cjh327/Elevator-Simulations/model"
)

func registryWith(maxFloor int, ps ...*model.Passenger) model.WaitingView {
	r := model.NewWaitingRegistry(maxFloor)
	for _, p := range ps {
		r.Enqueue(p)
	}
	return r.View()
}

func TestPushyPassenger(t *testing.T) {
	waiting := registryWith(6, model.NewPassenger(5, 1), model.NewPassenger(3, 6))
	elevators := []model.ElevatorState{
		// empty: lowest waiting floor is 3
		{ID: 1, Floor: 1, Capacity: 2},
		// first boarder wins
		{ID: 2, Floor: 4, Capacity: 2, Targets: []int{1, 6}},
		{ID: 3, Floor: 6, Capacity: 2, Targets: []int{6}},
		{ID: 4, Floor: 3, Capacity: 2},
	}
	got := PushyPassenger{}.Decide(elevators, waiting, 6)
	want := []model.Direction{model.Up, model.Down, model.Stay, model.Stay}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("elevator %d: expected %v, got %v", elevators[i].ID, want[i], got[i])
		}
	}

	idle := PushyPassenger{}.Decide(elevators[:1], registryWith(6), 6)
	if idle[0] != model.Stay {
		t.Errorf("Expected Stay with nobody waiting, got %v", idle[0])
	}
}

func TestShortSighted(t *testing.T) {
	waiting := registryWith(7, model.NewPassenger(2, 1), model.NewPassenger(6, 1))
	elevators := []model.ElevatorState{
		{ID: 1, Floor: 1, Capacity: 1},
		// 2 and 6 tie, lower floor wins
		{ID: 2, Floor: 4, Capacity: 1},
		{ID: 3, Floor: 5, Capacity: 3, Targets: []int{1, 7}},
		{ID: 4, Floor: 7, Capacity: 1},
	}
	got := ShortSighted{}.Decide(elevators, waiting, 7)
	want := []model.Direction{model.Up, model.Down, model.Up, model.Down}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("elevator %d: expected %v, got %v", elevators[i].ID, want[i], got[i])
		}
	}

	occupied := []struct {
		floor   int
		targets []int
		want    model.Direction
	}{
		// equidistant targets: the earlier boarder wins
		{4, []int{2, 6}, model.Down},
		{4, []int{6, 2}, model.Up},
		{5, []int{5}, model.Stay},
		{1, []int{6, 3}, model.Up},
	}
	for _, tc := range occupied {
		got := ShortSighted{}.Decide([]model.ElevatorState{{ID: 1, Floor: tc.floor, Capacity: 2, Targets: tc.targets}}, registryWith(6), 6)
		if got[0] != tc.want {
			t.Errorf("floor %d targets %v: expected %v, got %v", tc.floor, tc.targets, tc.want, got[0])
		}
	}

	idle := ShortSighted{}.Decide(elevators[:2], registryWith(7), 7)
	for i, d := range idle {
		if d != model.Stay {
			t.Errorf("elevator %d: expected Stay with nobody waiting, got %v", i+1, d)
		}
	}
}

func TestRandomAlgorithmStaysInBounds(t *testing.T) {
	alg := NewRandomAlgorithm(rand.New(rand.NewSource(3)))
	elevators := []model.ElevatorState{{ID: 1, Floor: 1}, {ID: 2, Floor: 3}, {ID: 3, Floor: 5}}
	seen := map[model.Direction]bool{}
	for i := 0; i < 500; i++ {
		dirs := alg.Decide(elevators, registryWith(5), 5)
		if len(dirs) != len(elevators) {
			t.Fatalf("Expected %d directions, got %d", len(elevators), len(dirs))
		}
		for j, d := range dirs {
			if err := model.CheckDirection(d, elevators[j].Floor, 5); err != nil {
				t.Fatalf("invalid direction: %v", err)
			}
			seen[d] = true
		}
	}
	if len(seen) != 3 {
		t.Errorf("Expected all three directions to be drawn, got %v", seen)
	}
}

func TestMovingAlgorithmByName(t *testing.T) {
	for _, name := range append([]string{"pushy_passenger", "shortsighted"}, AlgorithmNames...) {
		if _, err := MovingAlgorithmByName(name, nil); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	if _, err := MovingAlgorithmByName("elevator_magic", nil); !errors.Is(err, model.ErrInvalidConfiguration) {
		t.Errorf("Expected ErrInvalidConfiguration, got %v", err)
	}
}
