package tile

import (
	"math/rand"
	"testing"
)

func TestTypeClassification(t *testing.T) {
	tests := []struct {
		typ        Type
		multiplier bool
		item       bool
		factor     int
	}{
		{Normal, false, false, 1},
		{X2, true, false, 2},
		{X3, true, false, 3},
		{X4, true, false, 4},
		{Rocket, false, true, 1},
		{Bomb, false, true, 1},
		{Star, false, true, 1},
		{Gravity, false, true, 1},
	}

	for _, tc := range tests {
		t.Run(tc.typ.String(), func(t *testing.T) {
			if got := tc.typ.IsMultiplier(); got != tc.multiplier {
				t.Errorf("IsMultiplier() = %v, expected %v", got, tc.multiplier)
			}
			if got := tc.typ.IsItem(); got != tc.item {
				t.Errorf("IsItem() = %v, expected %v", got, tc.item)
			}
			if got := tc.typ.Multiplier(); got != tc.factor {
				t.Errorf("Multiplier() = %d, expected %d", got, tc.factor)
			}
		})
	}
}

func TestParseType(t *testing.T) {
	for typ := Normal; typ < NumTypes; typ++ {
		got, err := ParseType(typ.String())
		if err != nil {
			t.Fatalf("ParseType(%q) failed: %v", typ.String(), err)
		}
		if got != typ {
			t.Errorf("ParseType(%q) = %v", typ.String(), got)
		}
	}

	if _, err := ParseType("wezzle"); err == nil {
		t.Error("ParseType should reject unknown names")
	}
	if got, _ := ParseType(" ROCKET "); got != Rocket {
		t.Errorf("ParseType should be case and space insensitive, got %v", got)
	}
}

func TestRandomColorRespectsRangeAndExclusions(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		c := RandomColor(rng, 5, Red, Blue)
		if c >= 5 {
			t.Fatalf("RandomColor drew %v outside the first 5 colors", c)
		}
		if c == Red || c == Blue {
			t.Fatalf("RandomColor drew excluded color %v", c)
		}
	}
}

func TestRandomColorAllExcluded(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	c := RandomColor(rng, 1, Blue)
	if c != Blue {
		t.Errorf("with every color excluded the draw should fall back, got %v", c)
	}
}

func TestDirection(t *testing.T) {
	tests := []struct {
		d        Direction
		vertical bool
		opposite Direction
		degrees  float64
		dc, dr   int
	}{
		{Up, true, Down, 90, 0, -1},
		{Down, true, Up, 270, 0, 1},
		{Left, false, Right, 180, -1, 0},
		{Right, false, Left, 0, 1, 0},
	}

	for _, tc := range tests {
		if tc.d.IsVertical() != tc.vertical {
			t.Errorf("%v.IsVertical() = %v", tc.d, !tc.vertical)
		}
		if tc.d.Opposite() != tc.opposite {
			t.Errorf("%v.Opposite() = %v, expected %v", tc.d, tc.d.Opposite(), tc.opposite)
		}
		if tc.d.Degrees() != tc.degrees {
			t.Errorf("%v.Degrees() = %v, expected %v", tc.d, tc.d.Degrees(), tc.degrees)
		}
		dc, dr := tc.d.Delta()
		if dc != tc.dc || dr != tc.dr {
			t.Errorf("%v.Delta() = (%d, %d), expected (%d, %d)", tc.d, dc, dr, tc.dc, tc.dr)
		}
	}
}

func TestTilePresentationState(t *testing.T) {
	tl := New(Normal, Green, 10, 20)

	if !tl.Visible() || tl.Opacity != 100 || tl.Scale != 1 {
		t.Fatalf("new tile should be visible and opaque, got %+v", tl)
	}

	tl.SetOpacity(150)
	if tl.Opacity != 100 {
		t.Errorf("SetOpacity(150) = %d, expected 100", tl.Opacity)
	}
	tl.SetOpacity(-3)
	if tl.Opacity != 0 {
		t.Errorf("SetOpacity(-3) = %d, expected 0", tl.Opacity)
	}

	tl.SetPosition(42, 7)
	if x, y := tl.Position(); x != 42 || y != 7 {
		t.Errorf("Position() = (%d, %d), expected (42, 7)", x, y)
	}
}
