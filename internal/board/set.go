package board

// Set is a set of cell indices in [0, cells). Iteration is always in
// ascending index order so removals and effects replay identically.
type Set struct {
	member []bool
	n      int
}

// NewSet creates an empty set for a board of the given number of cells.
func NewSet(cells int) *Set {
	return &Set{member: make([]bool, cells)}
}

// SetOf creates a set holding the given indices.
func SetOf(cells int, indices ...int) *Set {
	s := NewSet(cells)
	for _, i := range indices {
		s.Add(i)
	}
	return s
}

// Add inserts i and reports whether it was new.
func (s *Set) Add(i int) bool {
	if s.member[i] {
		return false
	}
	s.member[i] = true
	s.n++
	return true
}

// Remove deletes i.
func (s *Set) Remove(i int) {
	if s.member[i] {
		s.member[i] = false
		s.n--
	}
}

// Has reports whether i is in the set.
func (s *Set) Has(i int) bool {
	return i >= 0 && i < len(s.member) && s.member[i]
}

// Len returns the number of indices.
func (s *Set) Len() int { return s.n }

// Clear empties the set.
func (s *Set) Clear() {
	clear(s.member)
	s.n = 0
}

// AddAll inserts every index of o.
func (s *Set) AddAll(o *Set) {
	o.Each(func(i int) { s.Add(i) })
}

// RemoveAll deletes every index of o.
func (s *Set) RemoveAll(o *Set) {
	o.Each(s.Remove)
}

// Each calls fn for every index in ascending order.
func (s *Set) Each(fn func(i int)) {
	if s.n == 0 {
		return
	}
	for i, ok := range s.member {
		if ok {
			fn(i)
		}
	}
}

// Slice returns the indices in ascending order.
func (s *Set) Slice() []int {
	out := make([]int, 0, s.n)
	s.Each(func(i int) { out = append(out, i) })
	return out
}

// Clone returns an independent copy.
func (s *Set) Clone() *Set {
	c := &Set{member: make([]bool, len(s.member)), n: s.n}
	copy(c.member, s.member)
	return c
}
