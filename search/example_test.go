package search_test

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/cpkernel/search"
	"github.com/katalvlaran/cpkernel/state"
)

// ExampleDFSearch_Solve enumerates all assignments of three bits.
func ExampleDFSearch_Solve() {
	sm := state.NewTrail()
	bits := []*state.Int{sm.MakeInt(-1), sm.MakeInt(-1), sm.MakeInt(-1)}
	next := sm.MakeInt(0)

	dfs := search.NewDFSearch(sm, func() []search.Alternative {
		i := next.Value()
		if i == len(bits) {
			return nil // every bit set: solution
		}
		set := func(v int) search.Alternative {
			return func() error {
				bits[i].SetValue(v)
				next.Increment()
				return nil
			}
		}

		return search.Branch(set(0), set(1))
	})
	var leaves []string
	dfs.OnSolution(func() {
		leaves = append(leaves, fmt.Sprintf("%d%d%d", bits[0].Value(), bits[1].Value(), bits[2].Value()))
	})

	stats, _ := dfs.Solve(nil)
	fmt.Println(strings.Join(leaves, " "))
	fmt.Println(stats)

	// Output:
	// 000 001 010 011 100 101 110 111
	// nodes=14 failures=0 solutions=8 completed=true
}

// ExampleLimitedDiscrepancy keeps only paths with at most one deviation
// from the preferred (first) choice.
func ExampleLimitedDiscrepancy() {
	sm := state.NewTrail()
	bt := newBoolTree(sm, 3)
	dfs := search.NewDFSearch(sm, search.LimitedDiscrepancy(bt.branch, 1))
	var leaves []string
	dfs.OnSolution(func() { leaves = append(leaves, fmt.Sprintf("%03b", bt.mask())) })

	stats, _ := dfs.Solve(nil)
	fmt.Println(strings.Join(leaves, " "))
	fmt.Println(stats.Solutions)

	// Output:
	// 000 100 010 001
	// 4
}
