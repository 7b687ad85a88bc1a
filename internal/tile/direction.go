package tile

import (
	"fmt"
	"math/rand"
)

// Direction is an axis direction. Rockets fly along one; gravity is a pair
// of them (one vertical, one horizontal).
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("direction(%d)", uint8(d))
}

// IsVertical reports whether d is Up or Down.
func (d Direction) IsVertical() bool {
	return d == Up || d == Down
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Degrees returns the screen angle of d, counter-clockwise from the
// positive x axis.
func (d Direction) Degrees() float64 {
	switch d {
	case Up:
		return 90
	case Left:
		return 180
	case Down:
		return 270
	}
	return 0
}

// Delta returns the column and row step of one move in direction d.
func (d Direction) Delta() (dc, dr int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	}
	return 1, 0
}

// Rune returns an arrow glyph for d.
func (d Direction) Rune() rune {
	switch d {
	case Up:
		return '▲'
	case Down:
		return '▼'
	case Left:
		return '◀'
	}
	return '▶'
}

// RandomDirection draws one of the four directions.
func RandomDirection(rng *rand.Rand) Direction {
	return Direction(rng.Intn(4))
}
