package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/cpkernel/state"
)

// ErrInvalidSize is returned when a SparseSet is built with a negative size.
var ErrInvalidSize = errors.New("domain: invalid sparse set size")

// SparseSet is a reversible set over [offset, offset+n-1].
// Values are stored shifted by -offset internally.
type SparseSet struct {
	values  []int // permutation of 0..n-1; values[:size] are the members
	indexes []int // indexes[v] is the position of v in values
	size    *state.Int
	min     *state.Int // shifted minimum, meaningful while size > 0
	max     *state.Int // shifted maximum, meaningful while size > 0
	n       int
	offset  int
}

// NewSparseSet returns the full set {offset, ..., offset+n-1} bound to m.
func NewSparseSet(m state.Manager, n, offset int) (*SparseSet, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	s := &SparseSet{
		values:  make([]int, n),
		indexes: make([]int, n),
		size:    m.MakeInt(n),
		min:     m.MakeInt(0),
		max:     m.MakeInt(n - 1),
		n:       n,
		offset:  offset,
	}
	for i := 0; i < n; i++ {
		s.values[i] = i
		s.indexes[i] = i
	}

	return s, nil
}

// Size returns the number of members.
func (s *SparseSet) Size() int { return s.size.Value() }

// IsEmpty reports whether the set has no members.
func (s *SparseSet) IsEmpty() bool { return s.size.Value() == 0 }

// Min returns the smallest member. The result is meaningless on an empty set.
func (s *SparseSet) Min() int { return s.min.Value() + s.offset }

// Max returns the largest member. The result is meaningless on an empty set.
func (s *SparseSet) Max() int { return s.max.Value() + s.offset }

// Contains reports whether v is a member.
func (s *SparseSet) Contains(v int) bool {
	return s.containsShifted(v - s.offset)
}

func (s *SparseSet) containsShifted(val int) bool {
	if val < 0 || val >= s.n {
		return false
	}

	return s.indexes[val] < s.size.Value()
}

// exchange swaps the positions of shifted values a and b.
func (s *SparseSet) exchange(a, b int) {
	ia, ib := s.indexes[a], s.indexes[b]
	s.values[ia], s.values[ib] = b, a
	s.indexes[a], s.indexes[b] = ib, ia
}

// Remove deletes v and reports whether it was a member.
func (s *SparseSet) Remove(v int) bool {
	val := v - s.offset
	if !s.containsShifted(val) {
		return false
	}
	last := s.values[s.size.Value()-1]
	s.exchange(val, last)
	s.size.Decrement()
	s.updateBoundsRemoved(val)

	return true
}

// updateBoundsRemoved rescans a bound when val was that bound.
func (s *SparseSet) updateBoundsRemoved(val int) {
	if s.IsEmpty() {
		return
	}
	if s.max.Value() == val {
		for w := val - 1; w >= s.min.Value(); w-- {
			if s.containsShifted(w) {
				s.max.SetValue(w)
				break
			}
		}
	}
	if s.min.Value() == val {
		for w := val + 1; w <= s.max.Value(); w++ {
			if s.containsShifted(w) {
				s.min.SetValue(w)
				break
			}
		}
	}
}

// RemoveAll empties the set in O(1).
func (s *SparseSet) RemoveAll() { s.size.SetValue(0) }

// RemoveAllBut reduces the set to {v} with a single swap. If v is not a
// member the set becomes empty.
func (s *SparseSet) RemoveAllBut(v int) {
	val := v - s.offset
	if !s.containsShifted(val) {
		s.RemoveAll()
		return
	}
	s.exchange(val, s.values[0])
	s.min.SetValue(val)
	s.max.SetValue(val)
	s.size.SetValue(1)
}

// RemoveBelow removes every member strictly smaller than v.
func (s *SparseSet) RemoveBelow(v int) {
	if s.IsEmpty() {
		return
	}
	if s.Max() < v {
		s.RemoveAll()
		return
	}
	for w := s.Min(); w < v; w++ {
		s.Remove(w)
	}
}

// RemoveAbove removes every member strictly greater than v.
func (s *SparseSet) RemoveAbove(v int) {
	if s.IsEmpty() {
		return
	}
	if s.Min() > v {
		s.RemoveAll()
		return
	}
	for w := s.Max(); w > v; w-- {
		s.Remove(w)
	}
}

// Fill copies the members into dst, which must hold at least Size() ints,
// and returns how many were written. Order is unspecified.
func (s *SparseSet) Fill(dst []int) int {
	size := s.size.Value()
	for i := 0; i < size; i++ {
		dst[i] = s.values[i] + s.offset
	}

	return size
}

// Values returns a fresh slice holding the members in unspecified order.
func (s *SparseSet) Values() []int {
	out := make([]int, s.size.Value())
	s.Fill(out)

	return out
}

// String renders the members in ascending order, e.g. "{1,3,4}".
func (s *SparseSet) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	if !s.IsEmpty() {
		for w := s.min.Value(); w <= s.max.Value(); w++ {
			if !s.containsShifted(w) {
				continue
			}
			if !first {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "%d", w+s.offset)
			first = false
		}
	}
	b.WriteByte('}')

	return b.String()
}
