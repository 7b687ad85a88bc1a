package tile

// Tile is a single board piece. Its pixel position is owned by the animation
// layer while a refactor is running; the board reads it back on
// synchronisation to recover the tile's cell.
type Tile struct {
	Type      Type
	Color     Color
	Direction Direction // rockets only

	X, Y    int
	Opacity int // 0..100
	Scale   float64

	visible bool
}

// New creates a fully opaque, visible tile at pixel (x, y).
func New(t Type, c Color, x, y int) *Tile {
	return &Tile{
		Type:    t,
		Color:   c,
		X:       x,
		Y:       y,
		Opacity: 100,
		Scale:   1,
		visible: true,
	}
}

// Position returns the pixel position of the tile.
func (t *Tile) Position() (x, y int) {
	return t.X, t.Y
}

// SetPosition moves the tile.
func (t *Tile) SetPosition(x, y int) {
	t.X, t.Y = x, y
}

// SetOpacity clamps and sets the opacity percentage.
func (t *Tile) SetOpacity(o int) {
	if o < 0 {
		o = 0
	} else if o > 100 {
		o = 100
	}
	t.Opacity = o
}

// SetScale sets the zoom factor. Negative scales clamp to zero.
func (t *Tile) SetScale(s float64) {
	if s < 0 {
		s = 0
	}
	t.Scale = s
}

func (t *Tile) SetVisible(v bool) { t.visible = v }
func (t *Tile) Visible() bool     { return t.visible }

// Rune returns the glyph used by the terminal renderer.
func (t *Tile) Rune() rune {
	switch t.Type {
	case X2:
		return '2'
	case X3:
		return '3'
	case X4:
		return '4'
	case Rocket:
		return t.Direction.Rune()
	case Bomb:
		return '●'
	case Star:
		return '★'
	case Gravity:
		return '⇅'
	}
	return '■'
}
