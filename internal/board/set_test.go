package board

import "testing"

func TestSetOrderingAndOps(t *testing.T) {
	s := SetOf(10, 7, 2, 5, 2)

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, expected 3", s.Len())
	}
	got := s.Slice()
	want := []int{2, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Slice() = %v, expected %v", got, want)
		}
	}

	c := s.Clone()
	c.Remove(5)
	if !s.Has(5) {
		t.Error("Clone should not share storage")
	}

	s.AddAll(SetOf(10, 0, 9))
	if s.Len() != 5 || !s.Has(0) || !s.Has(9) {
		t.Errorf("AddAll gave %v", s.Slice())
	}
	s.RemoveAll(SetOf(10, 0, 2))
	if s.Len() != 3 || s.Has(2) {
		t.Errorf("RemoveAll gave %v", s.Slice())
	}
	if s.Has(-1) || s.Has(10) {
		t.Error("Has should be false outside the range")
	}

	s.Clear()
	if s.Len() != 0 || len(s.Slice()) != 0 {
		t.Error("Clear left members behind")
	}
}
