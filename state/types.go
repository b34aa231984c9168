package state

// Manager is the checkpoint lifecycle shared by the Trail and Copy
// strategies. Cells created through a Manager take part in all of its
// later checkpoints automatically.
//
// The interface is sealed: only this package provides implementations,
// because cells talk to their manager through unexported hooks.
type Manager interface {
	// Level returns the number of open checkpoints minus one;
	// -1 means no checkpoint is open.
	Level() int

	// Save opens a new checkpoint and increases Level by one.
	Save()

	// Restore undoes every change recorded since the matching Save and
	// decreases Level by one. It is a no-op when no checkpoint is open.
	Restore()

	// RestoreAll returns to the pristine level -1, discarding all history.
	// Save may be called again afterwards.
	RestoreAll()

	// RestoreUntil calls Restore while Level() > level. It never increases
	// the level.
	RestoreUntil(level int)

	// WithNewState saves, runs body and restores back to the level seen
	// before the save on every exit path of body, panics included.
	// It returns body's error unchanged.
	WithNewState(body func() error) error

	// OnRestore registers fn to be called after each completed Restore.
	OnRestore(fn func())

	// MakeInt returns a reversible int bound to this manager.
	MakeInt(v int) *Int

	// MakeBool returns a reversible bool bound to this manager.
	MakeBool(v bool) *Bool

	// adopt is called once for every new reversible value.
	adopt(r reversible, tg *tag)

	// willChange is called before a cell changes its value.
	willChange(r reversible, tg *tag)

	// record pushes an undo entry for the value owning tg (trail only).
	record(u undo, tg *tag)
}

// tag is the bookkeeping a Trail keeps on every value it adopts.
type tag struct {
	stamp int64 // generation of the last logged change
	birth int64 // Save count when the value was created
}

// undo restores one captured value.
type undo interface {
	restore()
}

// reversible is a value that can capture its current content.
type reversible interface {
	snapshot() undo
}

var (
	_ Manager = (*Trail)(nil)
	_ Manager = (*Copy)(nil)
)
