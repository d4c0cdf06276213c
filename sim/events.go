package sim

import (
	"github.com/rs/zerolog"

	"github.com/Cjh327/Elevator-Simulations/model"
)

// Event is a marker for all simulation events emitted to observers.
type Event interface{ isEvent() }

// InitEvent is emitted once when a run starts from its fresh state.
type InitEvent struct {
	NumFloors int                   `json:"num_floors"`
	Elevators []model.ElevatorState `json:"elevators"`
	Visualize bool                  `json:"visualize"`
}

func (InitEvent) isEvent() {}

// RoundStartEvent opens a round.
type RoundStartEvent struct {
	Round int `json:"round"`
}

func (RoundStartEvent) isEvent() {}

// ArrivalsEvent carries a copy of the passengers generated this round.
type ArrivalsEvent struct {
	Round    int            `json:"round"`
	Arrivals model.Arrivals `json:"arrivals"`
}

func (ArrivalsEvent) isEvent() {}

// DisembarkEvent indicates a passenger reached its target floor.
type DisembarkEvent struct {
	Round      int             `json:"round"`
	ElevatorID int             `json:"elevator_id"`
	Floor      int             `json:"floor"`
	Passenger  model.Passenger `json:"passenger"`
	AngerLevel int             `json:"anger_level"`
}

func (DisembarkEvent) isEvent() {}

// BoardEvent indicates a passenger left the waiting queue for an elevator.
type BoardEvent struct {
	Round      int             `json:"round"`
	ElevatorID int             `json:"elevator_id"`
	Floor      int             `json:"floor"`
	Passenger  model.Passenger `json:"passenger"`
	AngerLevel int             `json:"anger_level"`
}

func (BoardEvent) isEvent() {}

// ElevatorMove is one elevator's applied decision.
type ElevatorMove struct {
	ElevatorID   int             `json:"elevator_id"`
	From         int             `json:"from"`
	To           int             `json:"to"`
	Direction    model.Direction `json:"direction"`
	LoadFraction float64         `json:"load_fraction"`
}

// MoveEvent batches every elevator's move for the round.
type MoveEvent struct {
	Round int            `json:"round"`
	Moves []ElevatorMove `json:"moves"`
}

func (MoveEvent) isEvent() {}

// DoneEvent signals completion and carries the finalized statistics.
type DoneEvent struct {
	Stats Stats `json:"stats"`
}

func (DoneEvent) isEvent() {}

// EventName returns the wire name used for streamed events.
func EventName(ev Event) string {
	switch ev.(type) {
	case InitEvent:
		return "init"
	case RoundStartEvent:
		return "round"
	case ArrivalsEvent:
		return "arrivals"
	case DisembarkEvent:
		return "disembark"
	case BoardEvent:
		return "board"
	case MoveEvent:
		return "move"
	case DoneEvent:
		return "done"
	}
	return "event"
}

// Observer receives engine notifications. It only ever sees copies.
type Observer interface {
	Notify(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) Notify(ev Event) { f(ev) }

// NopObserver drops every event.
type NopObserver struct{}

func (NopObserver) Notify(Event) {}

// LogObserver writes every event to a zerolog logger at debug level.
type LogObserver struct {
	Log *zerolog.Logger
}

func (o LogObserver) Notify(ev Event) {
	if o.Log == nil {
		return
	}
	switch e := ev.(type) {
	case InitEvent:
		o.Log.Debug().Int("floors", e.NumFloors).Int("elevators", len(e.Elevators)).Bool("visualize", e.Visualize).Msg("init")
	case RoundStartEvent:
		o.Log.Debug().Int("round", e.Round).Msg("round")
	case ArrivalsEvent:
		o.Log.Debug().Int("round", e.Round).Int("arrived", e.Arrivals.Count()).Msg("arrivals")
	case DisembarkEvent:
		o.Log.Debug().Int("round", e.Round).Int("elevator", e.ElevatorID).Int("floor", e.Floor).
			Int("passenger", e.Passenger.ID).Int("wait", e.Passenger.WaitTime).Int("anger", e.AngerLevel).Msg("disembark")
	case BoardEvent:
		o.Log.Debug().Int("round", e.Round).Int("elevator", e.ElevatorID).Int("floor", e.Floor).
			Int("passenger", e.Passenger.ID).Int("target", e.Passenger.TargetFloor).Msg("board")
	case MoveEvent:
		for _, m := range e.Moves {
			o.Log.Debug().Int("round", e.Round).Int("elevator", m.ElevatorID).Stringer("dir", m.Direction).
				Int("from", m.From).Int("to", m.To).Float64("load", m.LoadFraction).Msg("move")
		}
	case DoneEvent:
		o.Log.Debug().Interface("stats", e.Stats.Map()).Msg("done")
	}
}
