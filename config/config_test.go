package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Cjh327/Elevator-Simulations/model"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("Default config invalid: %v", err)
	}
	if c.NumFloors != 6 || c.NumElevators != 6 || c.ElevatorCapacity != 3 || c.NumRounds != 15 {
		t.Errorf("Unexpected defaults %+v", c)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sim.yaml")
	os.WriteFile(path, []byte(`
num_floors: 10
num_elevators: 2
elevator_capacity: 4
moving_algorithm: pushy
arrivals:
  kind: random
  people_per_round: 3
`), 0o644)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.NumFloors != 10 || c.NumElevators != 2 || c.ElevatorCapacity != 4 || c.MovingAlgorithm != "pushy" {
		t.Errorf("Unexpected config %+v", c)
	}
	if c.Arrivals.Kind != ArrivalsRandom || c.Arrivals.PeoplePerRound != 3 {
		t.Errorf("Unexpected arrivals %+v", c.Arrivals)
	}
	// untouched keys keep their defaults
	if c.NumRounds != 15 || c.Listen != ":8080" {
		t.Errorf("Defaults lost: %+v", c)
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("num_floorz: 3\n"), 0o644)
	if _, err := Load(bad); err == nil {
		t.Errorf("Expected unknown key to be rejected")
	}
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Errorf("Expected error for missing file")
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	os.WriteFile(path, []byte("ELEVSIM_NUM_FLOORS=9\nELEVSIM_VISUALIZE=true\nELEVSIM_ARRIVALS_KIND=file\nELEVSIM_ARRIVALS_FILE=in.csv\nOTHER=1\n"), 0o644)

	env, err := LoadEnv(path)
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	c := Default()
	if err := c.ApplyEnv(env); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if c.NumFloors != 9 || !c.Visualize || c.Arrivals.Kind != ArrivalsFile || c.Arrivals.File != "in.csv" {
		t.Errorf("Overrides not applied: %+v", c)
	}

	missing, err := LoadEnv(filepath.Join(dir, "nope.env"))
	if err != nil || len(missing) != 0 {
		t.Errorf("Expected empty env for missing file, got %v %v", missing, err)
	}

	for _, env := range []map[string]string{
		{"ELEVSIM_NUM_FLOORS": "many"},
		{"ELEVSIM_COLOUR": "red"},
		{"ELEVSIM_ARRIVALS": "file"},
	} {
		c := Default()
		if err := c.ApplyEnv(env); !errors.Is(err, model.ErrInvalidConfiguration) {
			t.Errorf("%v: expected ErrInvalidConfiguration, got %v", env, err)
		}
	}
}

func TestValidate(t *testing.T) {
	c := Default()
	c.NumFloors = 1
	c.NumRounds = 0
	c.Arrivals.Kind = ArrivalsFile
	err := c.Validate()
	if !errors.Is(err, model.ErrInvalidConfiguration) {
		t.Fatalf("Expected ErrInvalidConfiguration, got %v", err)
	}
	for _, want := range []string{"num_floors", "num_rounds", "arrivals.file"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected %q in %v", want, err)
		}
	}
}

func TestValidateLogLevel(t *testing.T) {
	for _, level := range []string{"", "debug", "warn", "disabled"} {
		c := Default()
		c.LogLevel = level
		if err := c.Validate(); err != nil {
			t.Errorf("log_level %q: %v", level, err)
		}
	}
	c := Default()
	c.LogLevel = "verbose"
	err := c.Validate()
	if !errors.Is(err, model.ErrInvalidConfiguration) || !strings.Contains(err.Error(), "verbose") {
		t.Errorf("Expected ErrInvalidConfiguration naming the level, got %v", err)
	}
}
