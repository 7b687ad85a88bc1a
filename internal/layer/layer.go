// Package layer is the display list the board and engine draw into. Each
// drawable belongs to one layer; the renderer paints layers bottom to top
// and skips hidden ones.
package layer

import "fmt"

// Layer is a drawing depth. Higher layers paint over lower ones.
type Layer uint8

const (
	Background Layer = iota
	Tile
	Effect
	Piece
	UI

	Count // always last: number of layers
)

func (l Layer) String() string {
	switch l {
	case Background:
		return "background"
	case Tile:
		return "tile"
	case Effect:
		return "effect"
	case Piece:
		return "piece"
	case UI:
		return "ui"
	}
	return fmt.Sprintf("layer(%d)", uint8(l))
}

// Drawable is anything the display list can toggle.
type Drawable interface {
	SetVisible(v bool)
	Visible() bool
}

// List holds drawables per layer in insertion order.
type List struct {
	layers [Count][]Drawable
	hidden [Count]bool
}

// NewList creates an empty display list.
func NewList() *List {
	return &List{}
}

// Add appends d to layer l. Adding the same drawable twice is a no-op.
func (ls *List) Add(d Drawable, l Layer) {
	if ls.Contains(d, l) {
		return
	}
	ls.layers[l] = append(ls.layers[l], d)
}

// Remove drops d from layer l and reports whether it was present.
func (ls *List) Remove(d Drawable, l Layer) bool {
	items := ls.layers[l]
	for i, it := range items {
		if it == d {
			copy(items[i:], items[i+1:])
			items[len(items)-1] = nil
			ls.layers[l] = items[:len(items)-1]
			return true
		}
	}
	return false
}

// Contains reports whether d is on layer l.
func (ls *List) Contains(d Drawable, l Layer) bool {
	for _, it := range ls.layers[l] {
		if it == d {
			return true
		}
	}
	return false
}

// Show makes a layer visible.
func (ls *List) Show(l Layer) { ls.hidden[l] = false }

// Hide hides a whole layer without touching the drawables' own flags.
func (ls *List) Hide(l Layer) { ls.hidden[l] = true }

// IsHidden reports whether layer l is hidden.
func (ls *List) IsHidden(l Layer) bool { return ls.hidden[l] }

// Each calls fn for every visible drawable on every visible layer, bottom
// layer first.
func (ls *List) Each(fn func(d Drawable, l Layer)) {
	for l := Layer(0); l < Count; l++ {
		if ls.hidden[l] {
			continue
		}
		for _, d := range ls.layers[l] {
			if d.Visible() {
				fn(d, l)
			}
		}
	}
}

// Len returns the number of drawables on layer l.
func (ls *List) Len(l Layer) int {
	return len(ls.layers[l])
}

// Clear empties layer l.
func (ls *List) Clear(l Layer) {
	ls.layers[l] = nil
}
