package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Cjh327/Elevator-Simulations/config"
	"github.com/Cjh327/Elevator-Simulations/driver"
	"github.com/Cjh327/Elevator-Simulations/model"
	"github.com/Cjh327/Elevator-Simulations/sim"
)

type Server struct {
	Cfg config.Config
	Log *zerolog.Logger
}

func New(cfg config.Config, log *zerolog.Logger) *Server {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &Server{Cfg: cfg, Log: log}
}

// Handler returns a mux with every API route registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)
	return mux
}

// Register installs the handlers on mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/config", s.handleConfig)
	mux.HandleFunc("/api/run", s.handleRun)
	mux.HandleFunc("/api/compare", s.handleCompare)
	mux.HandleFunc("/api/stream", s.handleStream)
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Cfg)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.requestConfig(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	sum, err := driver.Run(cfg, s.Log)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.requestConfig(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var names []string
	if qs := r.URL.Query().Get("algorithms"); qs != "" {
		names = strings.Split(qs, ",")
	}
	sums, err := driver.Compare(cfg, names, s.Log)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sums)
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "stream unsupported", http.StatusInternalServerError)
		return
	}
	cfg, err := s.requestConfig(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	simulation, err := driver.BuildSimulation(cfg, driver.BaseSeed(cfg), s.Log)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	var writeMu sync.Mutex
	flush := func(event string, payload any) {
		writeMu.Lock()
		defer writeMu.Unlock()
		b, err := json.Marshal(payload)
		if err != nil {
			s.Log.Error().Err(err).Str("event", event).Msg("stream: marshal failed")
			return
		}
		fmt.Fprintf(w, "event: %s\n", event)
		fmt.Fprintf(w, "data: %s\n\n", b)
		flusher.Flush()
	}

	evCh, stop, wait := sim.StartRunner(simulation, cfg.NumRounds)
	defer stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			stop()
			if _, err := wait(); err != nil {
				s.Log.Warn().Err(err).Msg("stream: run failed after disconnect")
			}
			s.Log.Info().Msg("stream: client disconnected")
			return
		case ev, ok := <-evCh:
			if !ok {
				if _, err := wait(); err != nil {
					flush("error", map[string]string{"error": err.Error()})
				}
				return
			}
			flush(sim.EventName(ev), ev)
		}
	}
}

// requestConfig overlays query parameters onto the server's base config.
func (s *Server) requestConfig(r *http.Request) (config.Config, error) {
	cfg := s.Cfg
	q := r.URL.Query()
	if v := q.Get("algorithm"); v != "" {
		cfg.MovingAlgorithm = v
	}
	ints := []struct {
		key string
		dst *int
	}{
		{"rounds", &cfg.NumRounds},
		{"trials", &cfg.Trials},
		{"floors", &cfg.NumFloors},
		{"elevators", &cfg.NumElevators},
		{"capacity", &cfg.ElevatorCapacity},
	}
	for _, p := range ints {
		qs := q.Get(p.key)
		if qs == "" {
			continue
		}
		v, err := strconv.Atoi(qs)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s=%q", model.ErrInvalidConfiguration, p.key, qs)
		}
		*p.dst = v
	}
	if qs := q.Get("seed"); qs != "" {
		v, err := strconv.ParseInt(qs, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("%w: seed=%q", model.ErrInvalidConfiguration, qs)
		}
		cfg.Seed = v
	}
	return cfg, cfg.Validate()
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, model.ErrInvalidConfiguration) || errors.Is(err, model.ErrMalformedInput) {
		status = http.StatusBadRequest
	}
	s.Log.Warn().Err(err).Int("status", status).Msg("request failed")
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
