package sim

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/tiendc/go-deepcopy"

	"github.com/Cjh327/Elevator-Simulations/model"
)

// Config holds construction parameters for a Simulation.
type Config struct {
	NumFloors        int
	NumElevators     int
	ElevatorCapacity int
	Arrivals         ArrivalGenerator
	Moving           MovingAlgorithm
	// Visualize is not interpreted by the engine; observers get it in InitEvent.
	Visualize bool
	Observer  Observer
	Logger    *zerolog.Logger
}

// Simulation runs a building's elevators in rounds of four ordered stages:
// arrivals, disembarking, boarding, moving.
type Simulation struct {
	NumFloors        int
	NumElevators     int
	ElevatorCapacity int
	Arrivals         ArrivalGenerator
	Moving           MovingAlgorithm
	Visualize        bool

	Elevators []*model.Elevator
	Waiting   *model.WaitingRegistry
	Round     int

	observers   []registered
	nextObsID   int
	log         zerolog.Logger
	stats       *statsAccumulator
	passengerID int
}

// Snapshot is a deep copy of the engine state, safe to hand to anyone.
type Snapshot struct {
	Round     int                        `json:"round"`
	Elevators []*model.Elevator          `json:"elevators"`
	Waiting   map[int][]*model.Passenger `json:"waiting"`
}

// NewSimulation validates cfg and builds a simulation in its initial state.
func NewSimulation(cfg Config) (*Simulation, error) {
	if cfg.NumFloors < 2 {
		return nil, fmt.Errorf("%w: num_floors %d < 2", model.ErrInvalidConfiguration, cfg.NumFloors)
	}
	if cfg.NumElevators < 1 {
		return nil, fmt.Errorf("%w: num_elevators %d < 1", model.ErrInvalidConfiguration, cfg.NumElevators)
	}
	if cfg.ElevatorCapacity < 1 {
		return nil, fmt.Errorf("%w: elevator_capacity %d < 1", model.ErrInvalidConfiguration, cfg.ElevatorCapacity)
	}
	if cfg.Arrivals == nil {
		return nil, fmt.Errorf("%w: no arrival generator", model.ErrInvalidConfiguration)
	}
	if cfg.Moving == nil {
		return nil, fmt.Errorf("%w: no moving algorithm", model.ErrInvalidConfiguration)
	}
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	s := &Simulation{
		NumFloors:        cfg.NumFloors,
		NumElevators:     cfg.NumElevators,
		ElevatorCapacity: cfg.ElevatorCapacity,
		Arrivals:         cfg.Arrivals,
		Moving:           cfg.Moving,
		Visualize:        cfg.Visualize,
		log:              log,
	}
	s.Observe(cfg.Observer)
	if err := s.reset(); err != nil {
		return nil, err
	}
	return s, nil
}

type registered struct {
	id int
	o  Observer
}

// Observe registers another observer for subsequent events and returns a
// function that unregisters it. Calling detach more than once is harmless.
func (s *Simulation) Observe(o Observer) (detach func()) {
	if o == nil {
		return func() {}
	}
	s.nextObsID++
	id := s.nextObsID
	s.observers = append(s.observers, registered{id: id, o: o})
	return func() {
		for i, r := range s.observers {
			if r.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// Observers returns how many observers are registered.
func (s *Simulation) Observers() int { return len(s.observers) }

// reset puts every elevator back at floor 1, empty, and clears waiters and counters.
func (s *Simulation) reset() error {
	s.Elevators = make([]*model.Elevator, 0, s.NumElevators)
	for i := 0; i < s.NumElevators; i++ {
		e, err := model.NewElevator(i+1, s.ElevatorCapacity, s.NumFloors)
		if err != nil {
			return err
		}
		s.Elevators = append(s.Elevators, e)
	}
	s.Waiting = model.NewWaitingRegistry(s.NumFloors)
	s.stats = newStatsAccumulator()
	s.passengerID = 0
	s.Round = 0
	return nil
}

// Run executes numRounds rounds from a fresh state and returns the statistics.
// Errors abort the run; state changed earlier in the failing round is kept.
func (s *Simulation) Run(numRounds int) (Stats, error) {
	if numRounds < 1 {
		return Stats{}, fmt.Errorf("%w: num_rounds %d < 1", model.ErrInvalidConfiguration, numRounds)
	}
	if err := s.reset(); err != nil {
		return Stats{}, err
	}
	s.log.Info().Int("rounds", numRounds).Int("floors", s.NumFloors).Int("elevators", s.NumElevators).
		Int("capacity", s.ElevatorCapacity).Str("algorithm", fmt.Sprintf("%T", s.Moving)).Msg("simulation starting")

	s.emit(InitEvent{NumFloors: s.NumFloors, Elevators: s.elevatorStates(), Visualize: s.Visualize})
	for round := 0; round < numRounds; round++ {
		s.Round = round
		if err := s.step(round); err != nil {
			return Stats{}, fmt.Errorf("round %d: %w", round, err)
		}
	}
	stats := s.stats.finalize(numRounds)
	s.emit(DoneEvent{Stats: stats})
	s.log.Info().Int("total_people", stats.TotalPeople).Int("completed", stats.PeopleCompleted).
		Int("min_time", stats.MinTime).Int("max_time", stats.MaxTime).Int("avg_time", stats.AvgTime).Msg("simulation finished")
	return stats, nil
}

// step runs the four stages of one round in order.
func (s *Simulation) step(round int) error {
	s.emit(RoundStartEvent{Round: round})
	arrived, err := s.generateArrivals(round)
	if err != nil {
		return err
	}
	alighted := s.handleLeaving(round)
	boarded, err := s.handleBoarding(round)
	if err != nil {
		return err
	}
	if err := s.moveElevators(round); err != nil {
		return err
	}
	s.log.Debug().Int("round", round).Int("arrived", arrived).Int("alighted", alighted).
		Int("boarded", boarded).Int("waiting", s.Waiting.Len()).Msg("round complete")
	return nil
}

// generateArrivals is stage 1: new passengers join their floor's queue.
func (s *Simulation) generateArrivals(round int) (int, error) {
	arrivals, err := s.Arrivals.Generate(round)
	if err != nil {
		return 0, fmt.Errorf("arrivals: %w", err)
	}
	n := 0
	for _, floor := range arrivals.Floors() {
		for _, p := range arrivals[floor] {
			if p.StartFloor != floor {
				return n, fmt.Errorf("%w: %v listed under floor %d", model.ErrMalformedInput, p, floor)
			}
			s.passengerID++
			p.ID = s.passengerID
			if err := s.Waiting.Enqueue(p); err != nil {
				return n, err
			}
			n++
		}
	}
	s.stats.recordArrivals(n)

	var snap model.Arrivals
	if err := deepcopy.Copy(&snap, arrivals); err != nil {
		return n, fmt.Errorf("snapshot arrivals: %w", err)
	}
	s.emit(ArrivalsEvent{Round: round, Arrivals: snap})
	return n, nil
}

// handleLeaving is stage 2: passengers at their target floor leave and are counted.
func (s *Simulation) handleLeaving(round int) int {
	n := 0
	for _, e := range s.Elevators {
		for _, p := range e.AlightAtCurrentFloor() {
			s.stats.recordCompletion(p.WaitTime)
			s.emit(DisembarkEvent{Round: round, ElevatorID: e.ID, Floor: e.CurrentFloor, Passenger: *p, AngerLevel: p.AngerLevel()})
			n++
		}
	}
	return n
}

// handleBoarding is stage 3: each elevator in turn takes waiters from its floor.
func (s *Simulation) handleBoarding(round int) (int, error) {
	n := 0
	for _, e := range s.Elevators {
		boarded, err := s.Waiting.BoardOnto(e)
		for _, p := range boarded {
			s.emit(BoardEvent{Round: round, ElevatorID: e.ID, Floor: e.CurrentFloor, Passenger: *p, AngerLevel: p.AngerLevel()})
		}
		n += len(boarded)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// moveElevators is stage 4: one decision for all elevators, then every
// passenger still in the building waits one more round.
func (s *Simulation) moveElevators(round int) error {
	states := s.elevatorStates()
	dirs := s.Moving.Decide(states, s.Waiting.View(), s.NumFloors)
	if len(dirs) != len(s.Elevators) {
		return fmt.Errorf("%w: %d directions for %d elevators", model.ErrInvalidDirection, len(dirs), len(s.Elevators))
	}
	for i, e := range s.Elevators {
		if err := model.CheckDirection(dirs[i], e.CurrentFloor, s.NumFloors); err != nil {
			return fmt.Errorf("elevator %d: %w", e.ID, err)
		}
	}
	moves := make([]ElevatorMove, len(s.Elevators))
	for i, e := range s.Elevators {
		from := e.CurrentFloor
		if err := e.Move(dirs[i]); err != nil {
			return err
		}
		moves[i] = ElevatorMove{ElevatorID: e.ID, From: from, To: e.CurrentFloor, Direction: dirs[i], LoadFraction: e.LoadFraction()}
	}
	s.emit(MoveEvent{Round: round, Moves: moves})

	for _, e := range s.Elevators {
		e.Tick()
	}
	s.Waiting.Tick()
	return nil
}

// Snapshot deep-copies the elevators and waiting queues.
func (s *Simulation) Snapshot() (Snapshot, error) {
	snap := Snapshot{Round: s.Round}
	if err := deepcopy.Copy(&snap.Elevators, s.Elevators); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot elevators: %w", err)
	}
	if err := deepcopy.Copy(&snap.Waiting, s.Waiting.Snapshot()); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot waiting: %w", err)
	}
	return snap, nil
}

func (s *Simulation) elevatorStates() []model.ElevatorState {
	states := make([]model.ElevatorState, len(s.Elevators))
	for i, e := range s.Elevators {
		states[i] = e.State()
	}
	return states
}

func (s *Simulation) emit(ev Event) {
	for _, r := range s.observers {
		r.o.Notify(ev)
	}
}
