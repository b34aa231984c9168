package state

// Trail is the undo-log strategy.
//
// Save records only the current trail length, so it does not depend on the
// number of live cells. A cell pushes the value it held before its first
// change inside the open checkpoint; later changes in the same checkpoint
// touch the live value only. The generation counter is owned by the
// instance, so independent Trails can run in separate goroutines.
//
// A value is never logged in a checkpoint opened before it was created,
// so it keeps its content when that checkpoint is restored, as under Copy.
type Trail struct {
	trail     []undo   // undo entries, oldest first
	marks     []mark   // one per open Save
	magic     int64    // generation, bumped on every Save and Restore
	saves     int64    // number of Saves so far
	listeners []func() // OnRestore callbacks, in registration order
}

// mark is an open checkpoint.
type mark struct {
	size   int   // trail length at Save
	serial int64 // value of saves after this Save
}

// NewTrail returns an empty Trail at level -1.
func NewTrail() *Trail {
	return &Trail{
		trail: make([]undo, 0, 64),
		marks: make([]mark, 0, 16),
	}
}

// Level returns the index of the innermost open checkpoint, or -1.
func (t *Trail) Level() int { return len(t.marks) - 1 }

// Save opens a checkpoint in O(1).
func (t *Trail) Save() {
	t.magic++
	t.saves++
	t.marks = append(t.marks, mark{size: len(t.trail), serial: t.saves})
}

// Restore replays the undo entries of the innermost checkpoint in LIFO order.
func (t *Trail) Restore() {
	top := len(t.marks) - 1
	if top < 0 {
		return
	}
	size := t.marks[top].size
	for i := len(t.trail) - 1; i >= size; i-- {
		t.trail[i].restore()
		t.trail[i] = nil // drop reference to the captured value
	}
	t.trail = t.trail[:size]
	t.marks = t.marks[:top]
	t.magic++
	notify(t.listeners)
}

// RestoreAll restores every open checkpoint.
func (t *Trail) RestoreAll() { t.RestoreUntil(-1) }

// RestoreUntil restores checkpoints while Level() > level.
func (t *Trail) RestoreUntil(level int) {
	for t.Level() > level {
		t.Restore()
	}
}

// WithNewState runs body inside a fresh checkpoint; see Manager.
func (t *Trail) WithNewState(body func() error) error {
	return withNewState(t, body)
}

// OnRestore registers fn; listeners accumulate.
func (t *Trail) OnRestore(fn func()) {
	if fn != nil {
		t.listeners = append(t.listeners, fn)
	}
}

// MakeInt returns a reversible int bound to t.
func (t *Trail) MakeInt(v int) *Int { return NewInt(t, v) }

// MakeBool returns a reversible bool bound to t.
func (t *Trail) MakeBool(v bool) *Bool { return NewBool(t, v) }

// TrailSize reports the number of pending undo entries. Diagnostics only.
func (t *Trail) TrailSize() int { return len(t.trail) }

// adopt records the birth of a value; checkpoints opened before it
// never log it.
func (t *Trail) adopt(_ reversible, tg *tag) { tg.birth = t.saves }

// logs reports whether the innermost checkpoint predates the value owning tg.
// Changes made while no checkpoint is open are permanent.
func (t *Trail) logs(tg *tag) bool {
	top := len(t.marks) - 1

	return top >= 0 && t.marks[top].serial > tg.birth
}

// willChange logs r once per checkpoint.
func (t *Trail) willChange(r reversible, tg *tag) {
	if !t.logs(tg) || tg.stamp == t.magic {
		return
	}
	tg.stamp = t.magic
	t.trail = append(t.trail, r.snapshot())
}

// record pushes u when the innermost checkpoint predates its value.
func (t *Trail) record(u undo, tg *tag) {
	if !t.logs(tg) {
		return
	}
	t.trail = append(t.trail, u)
}
