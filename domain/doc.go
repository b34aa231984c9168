// Package domain provides SparseSet, a reversible finite set of integers
// used as the domain of a bounded integer variable.
//
// What:
//
//   - SparseSet over a fixed range [offset, offset+n-1].
//   - O(1) Contains, Remove (plus bound rescans), RemoveAll, RemoveAllBut.
//   - RemoveBelow / RemoveAbove trim a bound.
//
// How:
//
// The set keeps a permutation of the range (values) and its inverse
// (indexes). The first Size() slots of values are exactly the members.
// Removing a value swaps it just past the live prefix. Only the size and
// the min/max bounds are reversible (state.Int): restoring size brings the
// swapped-out values back into the prefix, and since swaps keep values a
// permutation, the arrays themselves need no undo.
//
//	values:  [ 3 0 5 | 1 4 2 ]      size = 3  →  {3, 0, 5}
//	                 ^ removed values live past size
//
// The set never reports failure. An empty set is a valid state that
// callers interpret as infeasibility.
//
// Complexity:
//
//   - Contains, Size, Min, Max, RemoveAll, RemoveAllBut: O(1)
//   - Remove: O(1), plus O(n) worst case when a bound has to be rescanned
//   - RemoveBelow / RemoveAbove: O(k) removals
//   - Values / Fill: O(Size)
package domain
