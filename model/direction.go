package model

import "fmt"

// Direction is the move an elevator makes in one round.
type Direction int

const (
	Down Direction = -1
	Stay Direction = 0
	Up   Direction = 1
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Stay:
		return "stay"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// MarshalText encodes the direction by name for JSON and logs.
func (d Direction) MarshalText() ([]byte, error) {
	switch d {
	case Up, Down, Stay:
		return []byte(d.String()), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrInvalidDirection, int(d))
}

// UnmarshalText decodes a direction name.
func (d *Direction) UnmarshalText(b []byte) error {
	switch string(b) {
	case "up":
		*d = Up
	case "down":
		*d = Down
	case "stay":
		*d = Stay
	default:
		return fmt.Errorf("%w: %q", ErrInvalidDirection, string(b))
	}
	return nil
}

// Toward returns the single-floor step from floor `from` toward floor `to`.
func Toward(from, to int) Direction {
	switch {
	case to > from:
		return Up
	case to < from:
		return Down
	default:
		return Stay
	}
}

// ValidDirections lists the directions allowed at floor, in Down, Stay, Up order.
func ValidDirections(floor, maxFloor int) []Direction {
	dirs := make([]Direction, 0, 3)
	if floor > 1 {
		dirs = append(dirs, Down)
	}
	dirs = append(dirs, Stay)
	if floor < maxFloor {
		dirs = append(dirs, Up)
	}
	return dirs
}

// CheckDirection rejects a direction that would leave [1, maxFloor] from floor.
func CheckDirection(d Direction, floor, maxFloor int) error {
	switch d {
	case Stay:
		return nil
	case Up:
		if floor >= maxFloor {
			return fmt.Errorf("%w: up from top floor %d", ErrInvalidDirection, floor)
		}
		return nil
	case Down:
		if floor <= 1 {
			return fmt.Errorf("%w: down from floor %d", ErrInvalidDirection, floor)
		}
		return nil
	}
	return fmt.Errorf("%w: %d", ErrInvalidDirection, int(d))
}
