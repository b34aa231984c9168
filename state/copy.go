package state

// Copy is the snapshot strategy.
//
// Every value created through a Copy registers itself at construction.
// Save captures all of them into a new frame; Restore reassigns each one
// from the frame. Nothing is logged on mutation.
//
// A value created after a frame was taken is not part of that frame and
// keeps its content when the frame is restored.
//
// Registered values are never released, and every later Save captures all
// of them. Create cells before the search starts, not inside branchings or
// alternatives, or Save grows slower for the rest of the manager's life.
type Copy struct {
	values    []reversible // all registered values, in creation order
	frames    [][]undo     // one snapshot per open checkpoint
	listeners []func()
}

// NewCopy returns an empty Copy at level -1.
func NewCopy() *Copy {
	return &Copy{
		values: make([]reversible, 0, 64),
		frames: make([][]undo, 0, 16),
	}
}

// Level returns the index of the innermost open checkpoint, or -1.
func (c *Copy) Level() int { return len(c.frames) - 1 }

// Save snapshots every registered value in O(len(values)).
func (c *Copy) Save() {
	frame := make([]undo, len(c.values))
	for i, r := range c.values {
		frame[i] = r.snapshot()
	}
	c.frames = append(c.frames, frame)
}

// Restore reassigns every value captured by the innermost frame.
// Listeners run once the whole frame has been applied.
func (c *Copy) Restore() {
	top := len(c.frames) - 1
	if top < 0 {
		return
	}
	for _, u := range c.frames[top] {
		u.restore()
	}
	c.frames[top] = nil
	c.frames = c.frames[:top]
	notify(c.listeners)
}

// RestoreAll restores every open checkpoint.
func (c *Copy) RestoreAll() { c.RestoreUntil(-1) }

// RestoreUntil restores checkpoints while Level() > level.
func (c *Copy) RestoreUntil(level int) {
	for c.Level() > level {
		c.Restore()
	}
}

// WithNewState runs body inside a fresh checkpoint; see Manager.
func (c *Copy) WithNewState(body func() error) error {
	return withNewState(c, body)
}

// OnRestore registers fn; listeners accumulate.
func (c *Copy) OnRestore(fn func()) {
	if fn != nil {
		c.listeners = append(c.listeners, fn)
	}
}

// MakeInt returns a reversible int bound to c.
func (c *Copy) MakeInt(v int) *Int { return NewInt(c, v) }

// MakeBool returns a reversible bool bound to c.
func (c *Copy) MakeBool(v bool) *Bool { return NewBool(c, v) }

// Len reports the number of registered values.
func (c *Copy) Len() int { return len(c.values) }

func (c *Copy) adopt(r reversible, _ *tag) { c.values = append(c.values, r) }

func (c *Copy) willChange(reversible, *tag) {}

func (c *Copy) record(undo, *tag) {}
