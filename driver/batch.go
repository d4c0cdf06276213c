package driver

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/Cjh327/Elevator-Simulations/config"
	"github.com/Cjh327/Elevator-Simulations/data"
	"github.com/Cjh327/Elevator-Simulations/model"
	"github.com/Cjh327/Elevator-Simulations/sim"
)

// Trial is one seeded run.
type Trial struct {
	Seed  int64     `json:"seed"`
	Stats sim.Stats `json:"stats"`
}

// Summary aggregates the trials of one moving algorithm.
type Summary struct {
	Algorithm       string  `json:"algorithm"`
	Trials          []Trial `json:"trials"`
	TotalPeople     int     `json:"total_people"`
	PeopleCompleted int     `json:"people_completed"`
	// Means over trials; wait means only include trials with completions.
	MeanCompleted float64 `json:"mean_completed"`
	MeanAvgTime   float64 `json:"mean_avg_time"`
	MinTime       int     `json:"min_time"`
	MaxTime       int     `json:"max_time"`
}

// Rows flattens the summary for sim reports.
func (s Summary) Rows() []sim.ReportRow {
	rows := make([]sim.ReportRow, len(s.Trials))
	for i, t := range s.Trials {
		rows[i] = sim.ReportRow{Algorithm: s.Algorithm, Trial: i + 1, Seed: t.Seed, Stats: t.Stats}
	}
	return rows
}

// BaseSeed resolves the configured seed, drawing one from the clock when unset.
func BaseSeed(cfg config.Config) int64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return time.Now().UnixNano()
}

// BuildSimulation wires the configured generator and moving algorithm.
// Both random policies get their own source derived from seed so a trial is
// reproducible.
func BuildSimulation(cfg config.Config, seed int64, log *zerolog.Logger) (*sim.Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	arrivals, err := buildArrivals(cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}
	moving, err := sim.MovingAlgorithmByName(cfg.MovingAlgorithm, rand.New(rand.NewSource(seed^0x539f0a17)))
	if err != nil {
		return nil, err
	}
	simCfg := sim.Config{
		NumFloors:        cfg.NumFloors,
		NumElevators:     cfg.NumElevators,
		ElevatorCapacity: cfg.ElevatorCapacity,
		Arrivals:         arrivals,
		Moving:           moving,
		Visualize:        cfg.Visualize,
		Logger:           log,
	}
	if log != nil {
		simCfg.Observer = sim.LogObserver{Log: log}
	}
	return sim.NewSimulation(simCfg)
}

func buildArrivals(cfg config.Config, rng *rand.Rand) (sim.ArrivalGenerator, error) {
	switch cfg.Arrivals.Kind {
	case config.ArrivalsRandom:
		return sim.NewRandomArrivals(cfg.NumFloors, cfg.Arrivals.PeoplePerRound, rng)
	case config.ArrivalsFile:
		return sim.NewFileArrivals(cfg.NumFloors, cfg.Arrivals.File)
	case config.ArrivalsSample:
		if cfg.NumFloors < data.SampleMaxFloor {
			return nil, fmt.Errorf("%w: sample arrivals need %d floors, have %d", model.ErrInvalidConfiguration, data.SampleMaxFloor, cfg.NumFloors)
		}
		return sim.NewRecordArrivals(cfg.NumFloors, data.SampleArrivals)
	}
	return nil, fmt.Errorf("%w: unknown arrivals kind %q", model.ErrInvalidConfiguration, cfg.Arrivals.Kind)
}

// Run executes cfg.Trials headless runs with seeds base, base+1, ... and
// aggregates them.
func Run(cfg config.Config, log *zerolog.Logger) (Summary, error) {
	return runTrials(cfg, BaseSeed(cfg), log)
}

// Compare runs the same seeds for every named algorithm.
func Compare(cfg config.Config, algorithms []string, log *zerolog.Logger) ([]Summary, error) {
	if len(algorithms) == 0 {
		algorithms = sim.AlgorithmNames
	}
	base := BaseSeed(cfg)
	out := make([]Summary, 0, len(algorithms))
	for _, name := range algorithms {
		c := cfg
		c.MovingAlgorithm = name
		sum, err := runTrials(c, base, log)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out = append(out, sum)
	}
	return out, nil
}

func runTrials(cfg config.Config, base int64, log *zerolog.Logger) (Summary, error) {
	if err := cfg.Validate(); err != nil {
		return Summary{}, err
	}
	sum := Summary{Algorithm: cfg.MovingAlgorithm, MinTime: sim.NoTime, MaxTime: sim.NoTime}
	withWait := 0
	for i := 0; i < cfg.Trials; i++ {
		seed := base + int64(i)
		s, err := BuildSimulation(cfg, seed, log)
		if err != nil {
			return Summary{}, err
		}
		stats, err := s.Run(cfg.NumRounds)
		if err != nil {
			return Summary{}, fmt.Errorf("trial %d (seed %d): %w", i+1, seed, err)
		}
		sum.Trials = append(sum.Trials, Trial{Seed: seed, Stats: stats})
		sum.TotalPeople += stats.TotalPeople
		sum.PeopleCompleted += stats.PeopleCompleted
		if stats.PeopleCompleted == 0 {
			continue
		}
		withWait++
		sum.MeanAvgTime += float64(stats.AvgTime)
		if sum.MinTime == sim.NoTime || stats.MinTime < sum.MinTime {
			sum.MinTime = stats.MinTime
		}
		if stats.MaxTime > sum.MaxTime {
			sum.MaxTime = stats.MaxTime
		}
	}
	sum.MeanCompleted = float64(sum.PeopleCompleted) / float64(cfg.Trials)
	if withWait > 0 {
		sum.MeanAvgTime /= float64(withWait)
	} else {
		sum.MeanAvgTime = sim.NoTime
	}
	if log != nil {
		log.Info().Str("algorithm", sum.Algorithm).Int("trials", cfg.Trials).Int64("base_seed", base).
			Float64("mean_completed", sum.MeanCompleted).Float64("mean_avg_time", sum.MeanAvgTime).Msg("batch finished")
	}
	return sum, nil
}
