// Package state implements reversible state for backtracking search:
// a checkpoint manager with two interchangeable strategies and the
// reversible cells that participate in its checkpoints.
//
// What:
//
//   - Manager: the checkpoint lifecycle (Save, Restore, RestoreAll,
//     RestoreUntil, WithNewState) plus factories for reversible cells.
//   - Trail: undo-log strategy. Save is O(1); each cell logs at most one
//     undo entry per open checkpoint, guarded by a generation stamp.
//   - Copy: snapshot strategy. Save copies every live cell; Restore
//     reassigns them all from the snapshot.
//   - Cell[T], Int, Bool, Map[K,V]: values whose changes are undone by
//     Restore. A value created while a checkpoint is open is not rolled
//     back by that checkpoint, under either strategy.
//
// Why:
//
//   - Tree search needs to undo the work of one branch before trying its
//     sibling. Cells make that undo automatic.
//   - Trail favors nodes that touch few cells; Copy favors small models
//     or nodes that touch most of them.
//
// Levels:
//
//	Level() == -1   pristine: no checkpoint open
//	Save()          Level()+1
//	Restore()       Level()-1, undoing every change since the matching Save
//
// Checkpoints nest strictly. Only the most recent open checkpoint may be
// restored, and a manager is driven by exactly one goroutine. Independent
// searches running in parallel each need their own Manager and cells.
//
// Complexity:
//
//   - Trail: Save O(1), Restore O(distinct cells changed since Save).
//   - Copy:  Save O(cells), Restore O(cells).
//   - Cell.SetValue: O(1) (Map.Put: O(1) amortized).
package state
