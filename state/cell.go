package state

import (
	"fmt"
	"maps"
	"slices"
)

// Cell is a reversible value of any comparable type.
// Its changes are undone when an enclosing checkpoint is restored.
type Cell[T comparable] struct {
	m  Manager
	v  T
	tg tag
}

// NewCell returns a cell holding v, bound to m.
func NewCell[T comparable](m Manager, v T) *Cell[T] {
	c := &Cell[T]{}
	c.bind(m, v)

	return c
}

// bind attaches c to m; used by the embedding constructors.
func (c *Cell[T]) bind(m Manager, v T) {
	c.m = m
	c.v = v
	m.adopt(c, &c.tg)
}

// Value returns the current value.
func (c *Cell[T]) Value() T { return c.v }

// SetValue changes the value and returns it. Setting the current value
// is a no-op and leaves no trace in the manager.
func (c *Cell[T]) SetValue(v T) T {
	if v != c.v {
		c.m.willChange(c, &c.tg)
		c.v = v
	}

	return c.v
}

// String formats the current value.
func (c *Cell[T]) String() string { return fmt.Sprint(c.v) }

func (c *Cell[T]) snapshot() undo { return cellUndo[T]{cell: c, v: c.v} }

type cellUndo[T comparable] struct {
	cell *Cell[T]
	v    T
}

func (u cellUndo[T]) restore() { u.cell.v = u.v }

// Int is a reversible int.
type Int struct {
	Cell[int]
}

// NewInt returns a reversible int holding v, bound to m.
func NewInt(m Manager, v int) *Int {
	i := &Int{}
	i.bind(m, v)

	return i
}

// Increment adds one and returns the new value.
func (i *Int) Increment() int { return i.SetValue(i.v + 1) }

// Decrement subtracts one and returns the new value.
func (i *Int) Decrement() int { return i.SetValue(i.v - 1) }

// Bool is a reversible bool.
type Bool struct {
	Cell[bool]
}

// NewBool returns a reversible bool holding v, bound to m.
func NewBool(m Manager, v bool) *Bool {
	b := &Bool{}
	b.bind(m, v)

	return b
}

// Map is a reversible associative map. After a restore, each key put since
// the checkpoint is either absent again or mapped to its prior value,
// depending on whether it existed when the checkpoint was taken.
type Map[K comparable, V comparable] struct {
	m       Manager
	entries map[K]V
	tg      tag
}

// NewMap returns an empty reversible map bound to m.
func NewMap[K comparable, V comparable](m Manager) *Map[K, V] {
	mp := &Map[K, V]{m: m, entries: make(map[K]V)}
	m.adopt(mp, &mp.tg)

	return mp
}

// Put maps k to v. A put that changes nothing is a no-op.
func (mp *Map[K, V]) Put(k K, v V) {
	prev, ok := mp.entries[k]
	if ok && prev == v {
		return
	}
	mp.m.record(mapUndo[K, V]{mp: mp, k: k, v: prev, existed: ok}, &mp.tg)
	mp.entries[k] = v
}

// Get returns the value mapped to k and whether it exists.
func (mp *Map[K, V]) Get(k K) (V, bool) {
	v, ok := mp.entries[k]

	return v, ok
}

// Len returns the number of keys.
func (mp *Map[K, V]) Len() int { return len(mp.entries) }

// Keys returns the keys in unspecified order.
func (mp *Map[K, V]) Keys() []K { return slices.Collect(maps.Keys(mp.entries)) }

func (mp *Map[K, V]) snapshot() undo {
	return mapSnapshot[K, V]{mp: mp, entries: maps.Clone(mp.entries)}
}

// mapUndo reverts a single Put.
type mapUndo[K comparable, V comparable] struct {
	mp      *Map[K, V]
	k       K
	v       V
	existed bool
}

func (u mapUndo[K, V]) restore() {
	if u.existed {
		u.mp.entries[u.k] = u.v
		return
	}
	delete(u.mp.entries, u.k)
}

// mapSnapshot reverts the whole map (Copy strategy).
type mapSnapshot[K comparable, V comparable] struct {
	mp      *Map[K, V]
	entries map[K]V
}

// restore hands the snapshot over; its frame is discarded right after.
func (s mapSnapshot[K, V]) restore() { s.mp.entries = s.entries }
