package main

import (
	"flag"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Cjh327/Elevator-Simulations/config"
	"github.com/Cjh327/Elevator-Simulations/driver"
	"github.com/Cjh327/Elevator-Simulations/logger"
	"github.com/Cjh327/Elevator-Simulations/server"
	"github.com/Cjh327/Elevator-Simulations/sim"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults used when empty)")
	envPath := flag.String("env", ".env", "dotenv file with ELEVSIM_* overrides")
	algorithm := flag.String("algorithm", "", "moving algorithm: random, pushy, short_sighted")
	rounds := flag.Int("rounds", 0, "number of rounds (0 = config value)")
	trials := flag.Int("trials", 0, "number of seeded trials (0 = config value)")
	seed := flag.Int64("seed", 0, "base seed (0 = config value, then clock)")
	compare := flag.String("compare", "", "comma-separated algorithms to compare, or \"all\"")
	serve := flag.Bool("serve", false, "serve the HTTP API instead of running a batch")
	report := flag.String("report", "", "CSV report path or directory")
	verbose := flag.Bool("v", false, "debug logging, one line per simulation event")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		c, err := config.Load(*configPath)
		if err != nil {
			logger.Get().Fatal().Err(err).Msg("load config")
		}
		cfg = c
	}
	env, err := config.LoadEnv(*envPath)
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("load env")
	}
	if err := cfg.ApplyEnv(env); err != nil {
		logger.Get().Fatal().Err(err).Msg("apply env")
	}
	if err := cfg.ApplyEnv(osEnv()); err != nil {
		logger.Get().Fatal().Err(err).Msg("apply environment")
	}
	if *algorithm != "" {
		cfg.MovingAlgorithm = *algorithm
	}
	if *rounds > 0 {
		cfg.NumRounds = *rounds
	}
	if *trials > 0 {
		cfg.Trials = *trials
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *report != "" {
		cfg.ReportPath = *report
	}

	if err := cfg.Validate(); err != nil {
		logger.Get().Fatal().Err(err).Msg("invalid configuration")
	}
	level, _ := logger.ParseLevel(cfg.LogLevel)
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := logger.Setup(os.Stderr, level)

	if *serve {
		srv := server.New(cfg, log)
		log.Info().Str("listen", cfg.Listen).Msg("serving")
		if err := http.ListenAndServe(cfg.Listen, srv.Handler()); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
		return
	}

	var rows []sim.ReportRow
	if *compare != "" {
		var names []string
		if *compare != "all" {
			names = strings.Split(*compare, ",")
		}
		sums, err := driver.Compare(cfg, names, log)
		if err != nil {
			log.Fatal().Err(err).Msg("compare")
		}
		for _, s := range sums {
			rows = append(rows, s.Rows()...)
		}
	} else {
		sum, err := driver.Run(cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("run")
		}
		rows = sum.Rows()
	}

	sim.PrintConsoleReport(os.Stdout, rows)
	if _, err := sim.WriteCSVReport(cfg.ReportPath, rows); err != nil {
		log.Fatal().Err(err).Msg("write report")
	}
}

// osEnv collects ELEVSIM_* process variables; they win over the dotenv file.
func osEnv() map[string]string {
	env := map[string]string{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(k, config.EnvPrefix) {
			env[k] = v
		}
	}
	return env
}
