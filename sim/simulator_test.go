package sim

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/Cjh327/Elevator-Simulations/data"
	"github.com/Cjh327/Elevator-Simulations/model"
)

func sampleConfig(t *testing.T, moving MovingAlgorithm) Config {
	t.Helper()
	gen, err := NewRecordArrivals(5, data.SampleArrivals)
	if err != nil {
		t.Fatalf("NewRecordArrivals: %v", err)
	}
	return Config{NumFloors: 5, NumElevators: 2, ElevatorCapacity: 1, Arrivals: gen, Moving: moving}
}

func runSample(t *testing.T, moving MovingAlgorithm) Stats {
	t.Helper()
	s, err := NewSimulation(sampleConfig(t, moving))
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	stats, err := s.Run(10)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return stats
}

func TestSampleScenario(t *testing.T) {
	tests := []struct {
		name   string
		moving MovingAlgorithm
		want   map[string]int
	}{
		{"pushy", PushyPassenger{}, map[string]int{
			"num_iterations": 10, "total_people": 4, "people_completed": 3, "min_time": 3, "max_time": 3, "avg_time": 3,
		}},
		{"short_sighted", ShortSighted{}, map[string]int{
			"num_iterations": 10, "total_people": 4, "people_completed": 3, "min_time": 3, "max_time": 6, "avg_time": 4,
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := runSample(t, tc.moving).Map()
			for k, v := range tc.want {
				if got[k] != v {
					t.Errorf("%s: expected %d, got %d", k, v, got[k])
				}
			}
		})
	}
}

func TestRunIsRepeatable(t *testing.T) {
	s, err := NewSimulation(sampleConfig(t, ShortSighted{}))
	if err != nil {
		t.Fatal(err)
	}
	first, err := s.Run(10)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Run(10)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("Expected identical runs, got %+v and %+v", first, second)
	}
}

func TestNoCompletionsUseSentinel(t *testing.T) {
	gen, _ := NewRandomArrivals(4, 0, nil)
	s, err := NewSimulation(Config{NumFloors: 4, NumElevators: 1, ElevatorCapacity: 1, Arrivals: gen, Moving: ShortSighted{}})
	if err != nil {
		t.Fatal(err)
	}
	stats, err := s.Run(3)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalPeople != 0 || stats.PeopleCompleted != 0 || stats.MinTime != NoTime || stats.MaxTime != NoTime || stats.AvgTime != NoTime {
		t.Errorf("Expected sentinel stats, got %+v", stats)
	}
}

func TestAvgTimeFloorDivision(t *testing.T) {
	acc := newStatsAccumulator()
	acc.recordArrivals(3)
	acc.recordCompletion(2)
	acc.recordCompletion(3)
	s := acc.finalize(5)
	if s.AvgTime != 2 || s.MinTime != 2 || s.MaxTime != 3 || s.TotalTime != 5 {
		t.Errorf("Unexpected stats %+v", s)
	}
}

func TestRandomRunInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	gen, _ := NewRandomArrivals(8, 3, rng)
	s, err := NewSimulation(Config{
		NumFloors: 8, NumElevators: 3, ElevatorCapacity: 2,
		Arrivals: gen, Moving: NewRandomAlgorithm(rand.New(rand.NewSource(12))),
	})
	if err != nil {
		t.Fatal(err)
	}
	var failure string
	s.Observe(ObserverFunc(func(ev Event) {
		if m, ok := ev.(MoveEvent); ok {
			for _, mv := range m.Moves {
				if mv.To < 1 || mv.To > 8 || mv.LoadFraction > 1 {
					failure = "elevator left the building or overfilled"
				}
			}
		}
	}))
	stats, err := s.Run(50)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if failure != "" {
		t.Error(failure)
	}
	if stats.TotalPeople != 150 {
		t.Errorf("Expected 150 people, got %d", stats.TotalPeople)
	}
	if stats.PeopleCompleted > stats.TotalPeople {
		t.Errorf("completed %d > total %d", stats.PeopleCompleted, stats.TotalPeople)
	}
	if stats.PeopleCompleted > 0 && (stats.MinTime < 1 || stats.MinTime > stats.AvgTime || stats.AvgTime > stats.MaxTime || stats.MaxTime > 50) {
		t.Errorf("Inconsistent times %+v", stats)
	}
	onboard := 0
	for _, e := range s.Elevators {
		onboard += len(e.Passengers)
	}
	if stats.PeopleCompleted+onboard+s.Waiting.Len() != stats.TotalPeople {
		t.Errorf("Passengers lost: completed %d onboard %d waiting %d total %d",
			stats.PeopleCompleted, onboard, s.Waiting.Len(), stats.TotalPeople)
	}
}

func TestStageOrder(t *testing.T) {
	s, err := NewSimulation(sampleConfig(t, PushyPassenger{}))
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	boardedInRound := map[[2]int]int{}
	s.Observe(ObserverFunc(func(ev Event) {
		names = append(names, EventName(ev))
		switch e := ev.(type) {
		case BoardEvent:
			boardedInRound[[2]int{e.Round, e.ElevatorID}]++
		case DisembarkEvent:
			if e.Passenger.WaitTime == 0 {
				t.Errorf("passenger %d completed without waiting", e.Passenger.ID)
			}
			if e.Floor != e.Passenger.TargetFloor {
				t.Errorf("passenger %d left at floor %d, wanted %d", e.Passenger.ID, e.Floor, e.Passenger.TargetFloor)
			}
		}
	}))
	if _, err := s.Run(10); err != nil {
		t.Fatal(err)
	}
	for k, n := range boardedInRound {
		if n > 1 {
			t.Errorf("round %d elevator %d boarded %d over capacity", k[0], k[1], n)
		}
	}

	if names[0] != "init" || names[len(names)-1] != "done" {
		t.Fatalf("Expected init ... done, got %v", names)
	}
	rank := map[string]int{"round": 0, "arrivals": 1, "disembark": 2, "board": 3, "move": 4}
	last := -1
	for _, n := range names[1 : len(names)-1] {
		r := rank[n]
		if n == "round" {
			last = -1
		}
		if r < last {
			t.Fatalf("event %q out of order in %v", n, names)
		}
		last = r
	}
}

func TestObserversSeeCopies(t *testing.T) {
	plain := runSample(t, ShortSighted{})

	s, _ := NewSimulation(sampleConfig(t, ShortSighted{}))
	s.Observe(ObserverFunc(func(ev Event) {
		switch e := ev.(type) {
		case ArrivalsEvent:
			for _, ps := range e.Arrivals {
				for _, p := range ps {
					p.WaitTime = 100
					p.TargetFloor = 1
				}
			}
		case InitEvent:
			e.Elevators[0].Floor = 4
		}
	}))
	meddled, err := s.Run(10)
	if err != nil {
		t.Fatal(err)
	}
	if meddled != plain {
		t.Errorf("Observer changed the run: %+v vs %+v", meddled, plain)
	}
}

func TestSnapshotIsDeep(t *testing.T) {
	s, _ := NewSimulation(sampleConfig(t, PushyPassenger{}))
	if _, err := s.Run(2); err != nil {
		t.Fatal(err)
	}
	snap, err := s.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Elevators) != 2 || snap.Round != 1 {
		t.Fatalf("Unexpected snapshot %+v", snap)
	}
	snap.Elevators[0].CurrentFloor = 5
	if len(snap.Elevators[0].Passengers) > 0 {
		snap.Elevators[0].Passengers[0].WaitTime = 99
	}
	if s.Elevators[0].CurrentFloor == 5 {
		t.Errorf("Snapshot shares elevators with the engine")
	}
	for _, p := range s.Elevators[0].Passengers {
		if p.WaitTime == 99 {
			t.Errorf("Snapshot shares passengers with the engine")
		}
	}
	for floor, ps := range snap.Waiting {
		if len(ps) != s.Waiting.Count(floor) {
			t.Errorf("floor %d: snapshot has %d waiters, engine %d", floor, len(ps), s.Waiting.Count(floor))
		}
	}
}

type alwaysUp struct{}

func (alwaysUp) Decide(elevators []model.ElevatorState, _ model.WaitingView, _ int) []model.Direction {
	dirs := make([]model.Direction, len(elevators))
	for i := range dirs {
		dirs[i] = model.Up
	}
	return dirs
}

type tooFew struct{}

func (tooFew) Decide([]model.ElevatorState, model.WaitingView, int) []model.Direction {
	return []model.Direction{model.Stay}
}

func TestRunErrors(t *testing.T) {
	s, _ := NewSimulation(sampleConfig(t, alwaysUp{}))
	if _, err := s.Run(10); !errors.Is(err, model.ErrInvalidDirection) {
		t.Errorf("Expected ErrInvalidDirection past the top floor, got %v", err)
	}

	s, _ = NewSimulation(sampleConfig(t, tooFew{}))
	if _, err := s.Run(3); !errors.Is(err, model.ErrInvalidDirection) {
		t.Errorf("Expected ErrInvalidDirection for a short decision, got %v", err)
	}

	s, _ = NewSimulation(sampleConfig(t, ShortSighted{}))
	if _, err := s.Run(0); !errors.Is(err, model.ErrInvalidConfiguration) {
		t.Errorf("Expected ErrInvalidConfiguration for zero rounds, got %v", err)
	}

	bad := []Config{
		{NumFloors: 1, NumElevators: 1, ElevatorCapacity: 1},
		{NumFloors: 5, NumElevators: 0, ElevatorCapacity: 1},
		{NumFloors: 5, NumElevators: 1, ElevatorCapacity: 0},
		{NumFloors: 5, NumElevators: 1, ElevatorCapacity: 1},
	}
	for i, cfg := range bad {
		if i < 3 {
			cfg.Arrivals, cfg.Moving = sampleConfig(t, ShortSighted{}).Arrivals, ShortSighted{}
		}
		if _, err := NewSimulation(cfg); !errors.Is(err, model.ErrInvalidConfiguration) {
			t.Errorf("config %d: expected ErrInvalidConfiguration, got %v", i, err)
		}
	}
}
