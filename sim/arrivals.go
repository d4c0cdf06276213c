package sim

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/Cjh327/Elevator-Simulations/model"
)

// ArrivalGenerator produces the passengers that appear at the start of a round.
// The returned passengers are handed over to the caller.
type ArrivalGenerator interface {
	Generate(round int) (model.Arrivals, error)
}

// RandomArrivals generates a fixed number of passengers each round with
// uniformly drawn start and target floors.
type RandomArrivals struct {
	MaxFloor  int
	NumPeople int
	RNG       *rand.Rand
}

// NewRandomArrivals validates the building size and count. A nil rng is seeded
// from the clock.
func NewRandomArrivals(maxFloor, numPeople int, rng *rand.Rand) (*RandomArrivals, error) {
	if maxFloor < 2 {
		return nil, fmt.Errorf("%w: max floor %d < 2", model.ErrInvalidConfiguration, maxFloor)
	}
	if numPeople < 0 {
		return nil, fmt.Errorf("%w: people per round %d < 0", model.ErrInvalidConfiguration, numPeople)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RandomArrivals{MaxFloor: maxFloor, NumPeople: numPeople, RNG: rng}, nil
}

// Generate ignores the round number; every round looks the same.
func (g *RandomArrivals) Generate(round int) (model.Arrivals, error) {
	out := make(model.Arrivals)
	for i := 0; i < g.NumPeople; i++ {
		start := 1 + g.RNG.Intn(g.MaxFloor)
		target := 1 + g.RNG.Intn(g.MaxFloor)
		for target == start {
			start = 1 + g.RNG.Intn(g.MaxFloor)
			target = 1 + g.RNG.Intn(g.MaxFloor)
		}
		out.Add(model.NewPassenger(start, target))
	}
	return out, nil
}

// FileArrivals replays arrival records. The source is read again on every
// Generate call, so a malformed record fails every round.
type FileArrivals struct {
	MaxFloor int
	open     func() (io.ReadCloser, error)
	name     string
}

// NewFileArrivals replays the CSV file at path.
func NewFileArrivals(maxFloor int, path string) (*FileArrivals, error) {
	if maxFloor < 2 {
		return nil, fmt.Errorf("%w: max floor %d < 2", model.ErrInvalidConfiguration, maxFloor)
	}
	return &FileArrivals{
		MaxFloor: maxFloor,
		open:     func() (io.ReadCloser, error) { return os.Open(path) },
		name:     path,
	}, nil
}

// NewRecordArrivals replays records held in memory, e.g. embedded data.
func NewRecordArrivals(maxFloor int, data []byte) (*FileArrivals, error) {
	if maxFloor < 2 {
		return nil, fmt.Errorf("%w: max floor %d < 2", model.ErrInvalidConfiguration, maxFloor)
	}
	return &FileArrivals{
		MaxFloor: maxFloor,
		open:     func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
		name:     "records",
	}, nil
}

// Generate returns exactly the passengers listed for round (possibly none).
func (g *FileArrivals) Generate(round int) (model.Arrivals, error) {
	rc, err := g.open()
	if err != nil {
		return nil, fmt.Errorf("open arrivals %s: %w", g.name, err)
	}
	defer rc.Close()
	records, err := model.ReadArrivalRecords(rc)
	if err != nil {
		return nil, fmt.Errorf("arrivals %s: %w", g.name, err)
	}
	out := make(model.Arrivals)
	for _, rec := range records {
		for _, pair := range rec.Pairs {
			p := model.NewPassenger(pair.Start, pair.Target)
			if err := p.Validate(g.MaxFloor); err != nil {
				return nil, fmt.Errorf("arrivals %s round %d: %w: %v", g.name, rec.Round, model.ErrMalformedInput, err)
			}
			if rec.Round == round {
				out.Add(p)
			}
		}
	}
	return out, nil
}
