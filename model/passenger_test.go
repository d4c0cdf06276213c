package model

import (
	"errors"
	"testing"
)

func TestAngerLevel(t *testing.T) {
	expected := []int{0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4}
	p := NewPassenger(1, 2)
	for wait, level := range expected {
		p.WaitTime = wait
		if p.AngerLevel() != level {
			t.Errorf("wait %d: expected anger %d, got %d", wait, level, p.AngerLevel())
		}
	}
}

func TestPassengerValidate(t *testing.T) {
	tests := []struct {
		start, target int
		ok            bool
	}{
		{1, 5, true},
		{5, 1, true},
		{0, 2, false},
		{2, 6, false},
		{3, 3, false},
	}
	for _, tc := range tests {
		err := NewPassenger(tc.start, tc.target).Validate(5)
		if (err == nil) != tc.ok {
			t.Errorf("%d->%d: expected ok=%v, got %v", tc.start, tc.target, tc.ok, err)
		}
	}
}

func TestDirections(t *testing.T) {
	tests := []struct {
		floor int
		want  []Direction
	}{
		{1, []Direction{Stay, Up}},
		{3, []Direction{Down, Stay, Up}},
		{5, []Direction{Down, Stay}},
	}
	for _, tc := range tests {
		got := ValidDirections(tc.floor, 5)
		if len(got) != len(tc.want) {
			t.Errorf("floor %d: expected %v, got %v", tc.floor, tc.want, got)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("floor %d: expected %v, got %v", tc.floor, tc.want, got)
			}
		}
	}

	if Toward(2, 5) != Up || Toward(5, 2) != Down || Toward(3, 3) != Stay {
		t.Errorf("Toward returned wrong directions")
	}
	if err := CheckDirection(Direction(2), 3, 5); !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("Expected ErrInvalidDirection for 2, got %v", err)
	}

	var d Direction
	if err := d.UnmarshalText([]byte("down")); err != nil || d != Down {
		t.Errorf("UnmarshalText(down) = %v, %v", d, err)
	}
	if b, _ := Up.MarshalText(); string(b) != "up" {
		t.Errorf("MarshalText(Up) = %q", b)
	}
}
