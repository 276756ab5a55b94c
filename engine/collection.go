package engine

// DraftState is the collection editor's position in its add/edit lifecycle.
type DraftState int

const (
	StateIdle DraftState = iota
	StateDraftingNew
	StateDraftingEdit
)

// Editor manages an ordered collection with a single staged draft shared by
// the add and edit flows. A row under edit is copied into the draft, mutated
// there, and written back over its slot on confirm; cancel never touches the
// collection. Opening a draft while one is open silently discards the old
// draft. Delete bypasses the draft machine entirely.
type Editor[T any] struct {
	rows      *[]T
	state     DraftState
	editIndex int
	draft     *T
	validate  func(*T) []Violation
	onCommit  func(row *T, added bool)
}

// NewEditor wires an editor over the owning slice. validate gates every
// confirm; onCommit (optional) observes successful commits.
func NewEditor[T any](rows *[]T, validate func(*T) []Violation, onCommit func(row *T, added bool)) *Editor[T] {
	return &Editor[T]{rows: rows, state: StateIdle, editIndex: -1, validate: validate, onCommit: onCommit}
}

func (e *Editor[T]) State() DraftState { return e.state }

// Draft returns the open draft, nil when idle.
func (e *Editor[T]) Draft() *T { return e.draft }

// Add opens an empty draft, discarding any open one.
func (e *Editor[T]) Add() *T {
	var zero T
	e.draft = &zero
	e.state = StateDraftingNew
	e.editIndex = -1
	return e.draft
}

// AddFrom opens a pre-populated draft (common defaults for new invoices).
func (e *Editor[T]) AddFrom(seed T) *T {
	e.draft = &seed
	e.state = StateDraftingNew
	e.editIndex = -1
	return e.draft
}

// Edit opens a draft copied from the row at index, discarding any open
// draft. Returns nil when the index is out of range.
func (e *Editor[T]) Edit(index int) *T {
	if index < 0 || index >= len(*e.rows) {
		return nil
	}
	copied := (*e.rows)[index]
	e.draft = &copied
	e.state = StateDraftingEdit
	e.editIndex = index
	return e.draft
}

// Confirm validates the draft and, when clean, commits it: a new row is
// appended, an edited row replaces its original slot. On violations the
// draft stays open for correction.
func (e *Editor[T]) Confirm() []Violation {
	if e.state == StateIdle || e.draft == nil {
		return []Violation{{Field: "", Message: "no draft open"}}
	}
	if e.validate != nil {
		if violations := e.validate(e.draft); len(violations) > 0 {
			return violations
		}
	}

	added := e.state == StateDraftingNew
	if added {
		*e.rows = append(*e.rows, *e.draft)
	} else {
		(*e.rows)[e.editIndex] = *e.draft
	}
	committed := e.draft

	e.draft = nil
	e.state = StateIdle
	e.editIndex = -1

	if e.onCommit != nil {
		e.onCommit(committed, added)
	}
	return nil
}

// Cancel discards the draft without touching the collection.
func (e *Editor[T]) Cancel() {
	e.draft = nil
	e.state = StateIdle
	e.editIndex = -1
}

// Delete removes the row at index immediately. No confirmation, no undo.
// An open draft editing that row is discarded; one editing a later row has
// its index shifted down.
func (e *Editor[T]) Delete(index int) bool {
	if index < 0 || index >= len(*e.rows) {
		return false
	}
	*e.rows = append((*e.rows)[:index], (*e.rows)[index+1:]...)

	if e.state == StateDraftingEdit {
		switch {
		case e.editIndex == index:
			e.Cancel()
		case e.editIndex > index:
			e.editIndex--
		}
	}
	return true
}

// Rows returns the committed collection.
func (e *Editor[T]) Rows() []T { return *e.rows }
