// Package queens models the N-Queens puzzle on sparse-set domains. It is
// the end-to-end workload of the CLI and of the kernel's integration tests.
//
// Queen i sits on row i; its domain holds the columns still possible.
// Placing a queen removes the attacked columns from every other domain
// and propagates newly forced queens to a fixpoint.
package queens

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/katalvlaran/cpkernel/domain"
	"github.com/katalvlaran/cpkernel/search"
	"github.com/katalvlaran/cpkernel/state"
)

// ErrInvalidSize is returned for boards smaller than one square.
var ErrInvalidSize = errors.New("queens: invalid board size")

// Model holds one domain and one propagation flag per queen.
type Model struct {
	n      int
	sm     state.Manager
	q      []*domain.SparseSet
	fixed  []*state.Bool // true once a queen's placement has been propagated
	placed *state.Int    // number of propagated queens
	queue  []int
}

// New builds an n×n board bound to sm.
func New(sm state.Manager, n int) (*Model, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	m := &Model{
		n:      n,
		sm:     sm,
		q:      make([]*domain.SparseSet, n),
		fixed:  make([]*state.Bool, n),
		placed: sm.MakeInt(0),
	}
	var err error
	for i := 0; i < n; i++ {
		if m.q[i], err = domain.NewSparseSet(sm, n, 0); err != nil {
			return nil, err
		}
		m.fixed[i] = sm.MakeBool(false)
	}

	return m, nil
}

// Size returns n.
func (m *Model) Size() int { return m.n }

// StateManager returns the manager the model is bound to.
func (m *Model) StateManager() state.Manager { return m.sm }

// Domain returns the domain of queen i.
func (m *Model) Domain(i int) *domain.SparseSet { return m.q[i] }

// Place fixes queen i on column col and propagates. It returns
// ErrInconsistency when some queen is left without a column.
func (m *Model) Place(i, col int) error {
	if !m.q[i].Contains(col) {
		return fmt.Errorf("queens: column %d unavailable for row %d: %w", col, i, search.ErrInconsistency)
	}
	m.q[i].RemoveAllBut(col)

	return m.propagate(i)
}

// propagate removes attacked columns starting from queen start and
// continues with every queen that becomes forced.
func (m *Model) propagate(start int) error {
	m.queue = append(m.queue[:0], start)
	for len(m.queue) > 0 {
		k := m.queue[len(m.queue)-1]
		m.queue = m.queue[:len(m.queue)-1]
		if m.fixed[k].Value() {
			continue
		}
		m.fixed[k].SetValue(true)
		m.placed.Increment()

		col := m.q[k].Min()
		for j := 0; j < m.n; j++ {
			if j == k {
				continue
			}
			d := j - k
			dj := m.q[j]
			dj.Remove(col)
			dj.Remove(col + d)
			dj.Remove(col - d)
			switch {
			case dj.IsEmpty():
				return fmt.Errorf("queens: row %d has no column left: %w", j, search.ErrInconsistency)
			case dj.Size() == 1 && !m.fixed[j].Value():
				m.queue = append(m.queue, j)
			}
		}
	}

	return nil
}

// Branching picks the unplaced queen with the smallest domain and tries
// its columns in ascending order.
func (m *Model) Branching() search.Branching {
	return func() []search.Alternative {
		if m.placed.Value() == m.n {
			return nil
		}
		best, bestSize := -1, m.n+1
		for i := 0; i < m.n; i++ {
			if m.fixed[i].Value() {
				continue
			}
			if s := m.q[i].Size(); s < bestSize {
				best, bestSize = i, s
			}
		}
		d := m.q[best]
		alts := make([]search.Alternative, 0, d.Size())
		for col := d.Min(); col <= d.Max(); col++ {
			if !d.Contains(col) {
				continue
			}
			alts = append(alts, func() error { return m.Place(best, col) })
		}

		return alts
	}
}

// Solution returns the column of every queen; call it from a solution
// listener, when every domain is a singleton.
func (m *Model) Solution() []int {
	sol := make([]int, m.n)
	for i, d := range m.q {
		sol[i] = d.Min()
	}

	return sol
}

// Displacement is a toy objective: the total distance of queens from the
// main diagonal. Lower is better.
func Displacement(sol []int) int {
	total := 0
	for i, c := range sol {
		if c > i {
			total += c - i
		} else {
			total += i - c
		}
	}

	return total
}

// Neighborhood returns a setup that places every queen of incumbent except
// relax randomly chosen ones.
func (m *Model) Neighborhood(rng *rand.Rand, incumbent []int, relax int) func() error {
	keep := rng.Perm(m.n)[min(relax, m.n):]

	return func() error {
		for _, i := range keep {
			if err := m.Place(i, incumbent[i]); err != nil {
				return err
			}
		}

		return nil
	}
}

// Valid reports whether sol is a full non-attacking placement.
func Valid(sol []int) bool {
	for i := range sol {
		for j := i + 1; j < len(sol); j++ {
			d := j - i
			if sol[i] == sol[j] || sol[i] == sol[j]+d || sol[i] == sol[j]-d {
				return false
			}
		}
	}

	return true
}
