package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Cjh327/Elevator-Simulations/logger"
	"github.com/Cjh327/Elevator-Simulations/model"
)

// Arrival generator kinds.
const (
	ArrivalsRandom = "random"
	ArrivalsFile   = "file"
	ArrivalsSample = "sample" // embedded data.SampleArrivals
)

// EnvPrefix prefixes every environment override key.
const EnvPrefix = "ELEVSIM_"

// Arrivals selects and parameterizes the arrival generator.
type Arrivals struct {
	Kind           string `yaml:"kind" json:"kind"`
	PeoplePerRound int    `yaml:"people_per_round" json:"people_per_round"`
	File           string `yaml:"file" json:"file,omitempty"`
}

// Config is the full run configuration.
type Config struct {
	NumFloors        int      `yaml:"num_floors" json:"num_floors"`
	NumElevators     int      `yaml:"num_elevators" json:"num_elevators"`
	ElevatorCapacity int      `yaml:"elevator_capacity" json:"elevator_capacity"`
	NumRounds        int      `yaml:"num_rounds" json:"num_rounds"`
	Trials           int      `yaml:"trials" json:"trials"`
	Seed             int64    `yaml:"seed" json:"seed"` // 0 = seed from the clock
	Visualize        bool     `yaml:"visualize" json:"visualize"`
	MovingAlgorithm  string   `yaml:"moving_algorithm" json:"moving_algorithm"`
	Arrivals         Arrivals `yaml:"arrivals" json:"arrivals"`
	LogLevel         string   `yaml:"log_level" json:"log_level"`
	Listen           string   `yaml:"listen" json:"listen"`
	ReportPath       string   `yaml:"report_path" json:"report_path,omitempty"`
}

// Default mirrors the classic sample run: six floors, six elevators of three.
func Default() Config {
	return Config{
		NumFloors:        6,
		NumElevators:     6,
		ElevatorCapacity: 3,
		NumRounds:        15,
		Trials:           1,
		MovingAlgorithm:  "short_sighted",
		Arrivals:         Arrivals{Kind: ArrivalsSample, PeoplePerRound: 2},
		LogLevel:         "info",
		Listen:           ":8080",
	}
}

// Load decodes a YAML file over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	c := Default()
	file, err := os.Open(path)
	if err != nil {
		return c, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	dec := yaml.NewDecoder(file)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return c, fmt.Errorf("decode config %s: %w", path, err)
	}
	return c, nil
}

// LoadEnv reads KEY=VALUE pairs from a .env file. A missing file yields an empty map.
func LoadEnv(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read env %s: %w", path, err)
	}
	return env, nil
}

// ApplyEnv overrides fields from ELEVSIM_* keys, e.g. ELEVSIM_NUM_FLOORS=8.
// Keys are applied in sorted order so the first bad key reported is stable.
func (c *Config) ApplyEnv(env map[string]string) error {
	keys := make([]string, 0, len(env))
	for key := range env {
		if strings.HasPrefix(key, EnvPrefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		name := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		if err := c.set(name, strings.TrimSpace(env[key])); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

func (c *Config) set(name, val string) error {
	atoi := func(dst *int) error {
		v, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("%w: %q is not an integer", model.ErrInvalidConfiguration, val)
		}
		*dst = v
		return nil
	}
	switch name {
	case "num_floors":
		return atoi(&c.NumFloors)
	case "num_elevators":
		return atoi(&c.NumElevators)
	case "elevator_capacity":
		return atoi(&c.ElevatorCapacity)
	case "num_rounds":
		return atoi(&c.NumRounds)
	case "trials":
		return atoi(&c.Trials)
	case "people_per_round":
		return atoi(&c.Arrivals.PeoplePerRound)
	case "seed":
		v, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %q is not an integer", model.ErrInvalidConfiguration, val)
		}
		c.Seed = v
	case "visualize":
		v, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("%w: %q is not a boolean", model.ErrInvalidConfiguration, val)
		}
		c.Visualize = v
	case "moving_algorithm":
		c.MovingAlgorithm = val
	case "arrivals_kind":
		c.Arrivals.Kind = val
	case "arrivals_file":
		c.Arrivals.File = val
	case "log_level":
		c.LogLevel = val
	case "listen":
		c.Listen = val
	case "report_path":
		c.ReportPath = val
	default:
		return fmt.Errorf("%w: unknown setting %q", model.ErrInvalidConfiguration, name)
	}
	return nil
}

// Validate checks the construction preconditions of a run.
func (c Config) Validate() error {
	var errs []error
	if c.NumFloors < 2 {
		errs = append(errs, fmt.Errorf("num_floors %d < 2", c.NumFloors))
	}
	if c.NumElevators < 1 {
		errs = append(errs, fmt.Errorf("num_elevators %d < 1", c.NumElevators))
	}
	if c.ElevatorCapacity < 1 {
		errs = append(errs, fmt.Errorf("elevator_capacity %d < 1", c.ElevatorCapacity))
	}
	if c.NumRounds < 1 {
		errs = append(errs, fmt.Errorf("num_rounds %d < 1", c.NumRounds))
	}
	if c.Trials < 1 {
		errs = append(errs, fmt.Errorf("trials %d < 1", c.Trials))
	}
	switch c.Arrivals.Kind {
	case ArrivalsRandom:
		if c.Arrivals.PeoplePerRound < 0 {
			errs = append(errs, fmt.Errorf("people_per_round %d < 0", c.Arrivals.PeoplePerRound))
		}
	case ArrivalsFile:
		if c.Arrivals.File == "" {
			errs = append(errs, errors.New("arrivals.file is required for file arrivals"))
		}
	case ArrivalsSample:
	default:
		errs = append(errs, fmt.Errorf("unknown arrivals kind %q", c.Arrivals.Kind))
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", model.ErrInvalidConfiguration, errors.Join(errs...))
	}
	return nil
}
