// Package tile describes the pieces that live on a wezzle board: their type,
// colour, orientation and the presentation state the animation layer mutates.
package tile

import (
	"fmt"
	"strings"
)

// Type is the kind of a tile. NORMAL tiles only carry a colour; every other
// type is a multiplier or an item with a special effect when matched.
type Type uint8

const (
	Normal Type = iota
	X2
	X3
	X4
	Rocket
	Bomb
	Star
	Gravity

	// NumTypes is the number of tile types.
	NumTypes
)

var typeNames = [NumTypes]string{
	Normal:  "normal",
	X2:      "x2",
	X3:      "x3",
	X4:      "x4",
	Rocket:  "rocket",
	Bomb:    "bomb",
	Star:    "star",
	Gravity: "gravity",
}

func (t Type) String() string {
	if t < NumTypes {
		return typeNames[t]
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// IsMultiplier reports whether t is one of the score multipliers.
func (t Type) IsMultiplier() bool {
	return t == X2 || t == X3 || t == X4
}

// IsItem reports whether t is a special item (rocket, bomb, star, gravity).
func (t Type) IsItem() bool {
	return t == Rocket || t == Bomb || t == Star || t == Gravity
}

// Multiplier returns the score factor of a multiplier tile, 1 otherwise.
func (t Type) Multiplier() int {
	switch t {
	case X2:
		return 2
	case X3:
		return 3
	case X4:
		return 4
	}
	return 1
}

// ParseType resolves a type name as written in config files.
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range typeNames {
		if n == name {
			return Type(i), nil
		}
	}
	return Normal, fmt.Errorf("tile: unknown type %q", name)
}

// MarshalText implements encoding.TextMarshaler so types read well in YAML
// and JSON.
func (t Type) MarshalText() ([]byte, error) {
	if t >= NumTypes {
		return nil, fmt.Errorf("tile: invalid type %d", uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(b []byte) error {
	v, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
