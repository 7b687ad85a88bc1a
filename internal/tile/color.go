package tile

import (
	"fmt"
	"math/rand"
	"strings"
)

// Color is the colour of a tile. Only the first N colours are in play,
// where N is the board's colour count for the current level.
type Color uint8

const (
	Blue Color = iota
	Green
	Purple
	Red
	Yellow
	Black
	Brown
	White

	// MaxColors is the total number of tile colours.
	MaxColors
)

var colorNames = [MaxColors]string{
	Blue:   "blue",
	Green:  "green",
	Purple: "purple",
	Red:    "red",
	Yellow: "yellow",
	Black:  "black",
	Brown:  "brown",
	White:  "white",
}

func (c Color) String() string {
	if c < MaxColors {
		return colorNames[c]
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

// ParseColor resolves a colour name.
func ParseColor(name string) (Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range colorNames {
		if n == name {
			return Color(i), nil
		}
	}
	return Blue, fmt.Errorf("tile: unknown color %q", name)
}

// RandomColor draws uniformly from the first n colours, skipping any colour
// in exclude. If every colour in range is excluded it returns the draw
// unchanged.
func RandomColor(rng *rand.Rand, n int, exclude ...Color) Color {
	if n <= 0 || n > int(MaxColors) {
		panic(fmt.Sprintf("tile: color count %d out of range [1, %d]", n, MaxColors))
	}

	allowed := make([]Color, 0, n)
	for i := 0; i < n; i++ {
		c := Color(i)
		skip := false
		for _, e := range exclude {
			if e == c {
				skip = true
				break
			}
		}
		if !skip {
			allowed = append(allowed, c)
		}
	}
	if len(allowed) == 0 {
		return Color(rng.Intn(n))
	}
	return allowed[rng.Intn(len(allowed))]
}

var colorLetters = [MaxColors]rune{
	Blue:   'B',
	Green:  'G',
	Purple: 'P',
	Red:    'R',
	Yellow: 'Y',
	Black:  'K',
	Brown:  'N',
	White:  'W',
}

// Letter returns a single distinct letter for c, used in text dumps.
func (c Color) Letter() rune {
	if c < MaxColors {
		return colorLetters[c]
	}
	return '?'
}
