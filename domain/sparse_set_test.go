package domain_test

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cpkernel/domain"
	"github.com/katalvlaran/cpkernel/state"
)

var strategies = []struct {
	name string
	make func() state.Manager
}{
	{"Trail", func() state.Manager { return state.NewTrail() }},
	{"Copy", func() state.Manager { return state.NewCopy() }},
}

// checkInvariants verifies the listing against containment and the bounds.
func checkInvariants(t *testing.T, s *domain.SparseSet, lo, hi int) {
	t.Helper()
	vals := s.Values()
	require.Len(t, vals, s.Size())

	sorted := slices.Clone(vals)
	slices.Sort(sorted)
	require.Equal(t, len(sorted), len(slices.Compact(slices.Clone(sorted))), "duplicate members %v", vals)

	for v := lo - 2; v <= hi+2; v++ {
		require.Equal(t, slices.Contains(vals, v), s.Contains(v), "containment of %d", v)
	}
	if s.Size() > 0 {
		require.LessOrEqual(t, s.Min(), s.Max())
		require.Equal(t, sorted[0], s.Min())
		require.Equal(t, sorted[len(sorted)-1], s.Max())
	}
}

func TestNewSparseSet_InvalidSize(t *testing.T) {
	s, err := domain.NewSparseSet(state.NewTrail(), -1, 0)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, domain.ErrInvalidSize)
}

func TestSparseSet_EmptyRange(t *testing.T) {
	s, err := domain.NewSparseSet(state.NewTrail(), 0, 5)
	require.NoError(t, err)
	assert.True(t, s.IsEmpty())
	assert.False(t, s.Contains(5))
	assert.Equal(t, "{}", s.String())
}

func TestSparseSet_RemoveAndBounds(t *testing.T) {
	for _, st := range strategies {
		t.Run(st.name, func(t *testing.T) {
			m := st.make()
			s, err := domain.NewSparseSet(m, 10, -3) // {-3..6}
			require.NoError(t, err)
			assert.Equal(t, 10, s.Size())
			assert.Equal(t, -3, s.Min())
			assert.Equal(t, 6, s.Max())

			m.Save()
			assert.True(t, s.Remove(-3))
			assert.False(t, s.Remove(-3), "already removed")
			assert.False(t, s.Remove(100), "out of range")
			assert.Equal(t, -2, s.Min())
			s.Remove(6)
			s.Remove(5)
			assert.Equal(t, 4, s.Max())
			checkInvariants(t, s, -3, 6)

			m.Restore()
			assert.Equal(t, 10, s.Size())
			assert.Equal(t, -3, s.Min())
			assert.Equal(t, 6, s.Max())
			checkInvariants(t, s, -3, 6)
		})
	}
}

func TestSparseSet_RemoveAllBut(t *testing.T) {
	for _, st := range strategies {
		t.Run(st.name, func(t *testing.T) {
			m := st.make()
			s, _ := domain.NewSparseSet(m, 8, 1)

			m.Save()
			s.Remove(4)
			m.Save()
			s.RemoveAllBut(5)
			assert.Equal(t, 1, s.Size())
			assert.True(t, s.Contains(5))
			assert.Equal(t, []int{5}, s.Values())
			assert.Equal(t, 5, s.Min())
			assert.Equal(t, 5, s.Max())
			checkInvariants(t, s, 1, 8)

			m.Restore()
			assert.Equal(t, 7, s.Size())
			assert.False(t, s.Contains(4))
			checkInvariants(t, s, 1, 8)

			m.Save()
			s.RemoveAllBut(4) // not a member: empties the set
			assert.True(t, s.IsEmpty())
			m.RestoreAll()
			assert.Equal(t, 8, s.Size())
			checkInvariants(t, s, 1, 8)
		})
	}
}

func TestSparseSet_RemoveBelowAbove(t *testing.T) {
	for _, st := range strategies {
		t.Run(st.name, func(t *testing.T) {
			m := st.make()
			s, _ := domain.NewSparseSet(m, 10, 0)

			m.Save()
			s.RemoveBelow(3)
			s.RemoveAbove(7)
			assert.Equal(t, "{3,4,5,6,7}", s.String())
			checkInvariants(t, s, 0, 9)

			s.RemoveAbove(-1)
			assert.True(t, s.IsEmpty())
			s.RemoveBelow(100) // no-op on empty set
			assert.True(t, s.IsEmpty())

			m.Restore()
			assert.Equal(t, "{0,1,2,3,4,5,6,7,8,9}", s.String())

			m.Save()
			s.RemoveBelow(10)
			assert.True(t, s.IsEmpty())
			m.Restore()
			checkInvariants(t, s, 0, 9)
		})
	}
}

func TestSparseSet_Fill(t *testing.T) {
	s, _ := domain.NewSparseSet(state.NewTrail(), 5, 10)
	s.Remove(12)
	dst := make([]int, 5)
	n := s.Fill(dst)
	assert.Equal(t, 4, n)
	got := slices.Clone(dst[:n])
	slices.Sort(got)
	assert.Equal(t, []int{10, 11, 13, 14}, got)
}

func TestSparseSet_RandomInvariants(t *testing.T) {
	const n, offset = 12, -4
	for _, st := range strategies {
		t.Run(st.name, func(t *testing.T) {
			rng := rand.New(rand.NewPCG(42, 1))
			m := st.make()
			s, err := domain.NewSparseSet(m, n, offset)
			require.NoError(t, err)

			// Full restores are observed from a listener: by then every
			// cell of the composite must already be back in place.
			m.OnRestore(func() { checkInvariants(t, s, offset, offset+n-1) })

			var history []string
			for step := 0; step < 2000; step++ {
				v := offset + rng.IntN(n)
				switch rng.IntN(7) {
				case 0:
					m.Save()
					history = append(history, s.String())
				case 1:
					if m.Level() >= 0 {
						m.Restore()
						want := history[len(history)-1]
						history = history[:len(history)-1]
						require.Equal(t, want, s.String(), "step %d", step)
					}
				case 2:
					s.Remove(v)
				case 3:
					s.RemoveBelow(v)
				case 4:
					s.RemoveAbove(v)
				case 5:
					if s.Contains(v) {
						s.RemoveAllBut(v)
						require.Equal(t, 1, s.Size())
						require.Equal(t, []int{v}, s.Values())
					}
				case 6:
					if m.Level() > 2 {
						m.RestoreUntil(1)
						history = history[:2]
					}
				}
				checkInvariants(t, s, offset, offset+n-1)
			}
		})
	}
}
