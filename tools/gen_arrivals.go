// gen_arrivals writes a random arrival record file readable by the file generator.
package main

import (
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/Cjh327/Elevator-Simulations/logger"
	"github.com/Cjh327/Elevator-Simulations/model"
	"github.com/Cjh327/Elevator-Simulations/sim"
)

func main() {
	floors := flag.Int("floors", 6, "number of floors")
	rounds := flag.Int("rounds", 15, "number of rounds to generate")
	people := flag.Int("people", 2, "passengers per round")
	seed := flag.Int64("seed", 0, "seed (0 = clock)")
	out := flag.String("out", "", "output file (stdout when empty)")
	flag.Parse()

	log := logger.Get()
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	gen, err := sim.NewRandomArrivals(*floors, *people, rand.New(rand.NewSource(*seed)))
	if err != nil {
		log.Fatal().Err(err).Msg("generator")
	}

	records := make([]model.ArrivalRecord, 0, *rounds)
	for round := 0; round < *rounds; round++ {
		arrivals, err := gen.Generate(round)
		if err != nil {
			log.Fatal().Err(err).Int("round", round).Msg("generate")
		}
		rec := model.ArrivalRecord{Round: round}
		for _, floor := range arrivals.Floors() {
			for _, p := range arrivals[floor] {
				rec.Pairs = append(rec.Pairs, model.FloorPair{Start: p.StartFloor, Target: p.TargetFloor})
			}
		}
		records = append(records, rec)
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatal().Err(err).Msg("create output")
		}
		defer f.Close()
		w = f
	}
	if err := model.WriteArrivalRecords(w, records); err != nil {
		log.Fatal().Err(err).Msg("write records")
	}
	log.Info().Int("rounds", *rounds).Int64("seed", *seed).Str("out", *out).Msg("arrivals written")
}
