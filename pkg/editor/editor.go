// Package editor implements draft editing sessions over the committed values in a
// store.FieldStore. An editor is opened, mutated, and then either committed or discarded;
// the store only changes on Commit.
package editor

import (
	"errors"
	"fmt"

	"github.com/picogrid/cosim-input/pkg/models"
	"github.com/picogrid/cosim-input/pkg/store"
)

// State of an editor session
type State int

const (
	DraftOpen State = iota
	Committed
	Discarded
)

func (s State) String() string {
	switch s {
	case DraftOpen:
		return "draft-open"
	case Committed:
		return "committed"
	case Discarded:
		return "discarded"
	default:
		return "unknown"
	}
}

// List lengths an editor accepts
const (
	MinCount = models.MinRecords
	MaxCount = models.MaxRecords
)

// ErrClosed is returned by any operation on a committed or discarded editor
var ErrClosed = errors.New("editor is closed")

// RecordListEditor edits one entity kind's record list as a draft.
type RecordListEditor[T models.Record[T]] struct {
	store *store.FieldStore
	kind  store.Kind[T]
	state State

	// draft holds every entry seen in this session; only [0, count) is visible.
	// Entries beyond count survive a shrink so that growing back restores them.
	draft []T
	count int
}

// Open starts an editor session seeded from the committed values in fs
func Open[T models.Record[T]](fs *store.FieldStore, kind store.Kind[T]) *RecordListEditor[T] {
	count := store.Count(fs, kind)
	if count < MinCount {
		count = MinCount
	}
	if count > MaxCount {
		count = MaxCount
	}

	e := &RecordListEditor[T]{
		store: fs,
		kind:  kind,
		state: DraftOpen,
	}
	e.extend(count)
	e.count = count
	return e
}

// Kind returns the entity kind being edited
func (e *RecordListEditor[T]) Kind() store.Kind[T] {
	return e.kind
}

// State returns the current session state
func (e *RecordListEditor[T]) State() State {
	return e.state
}

// Len returns the visible draft length
func (e *RecordListEditor[T]) Len() int {
	return e.count
}

// Entries returns a copy of the visible draft entries
func (e *RecordListEditor[T]) Entries() []T {
	return append([]T(nil), e.draft[:e.count]...)
}

// Entry returns the draft entry at index i
func (e *RecordListEditor[T]) Entry(i int) (T, error) {
	var zero T
	if err := e.checkIndex(i); err != nil {
		return zero, err
	}
	return e.draft[i], nil
}

// Resize changes the visible draft length. Nothing is written to the store.
func (e *RecordListEditor[T]) Resize(n int) error {
	if e.state != DraftOpen {
		return ErrClosed
	}
	if err := models.CheckRecordCount(e.kind.CountKey, n); err != nil {
		return err
	}

	e.extend(n)
	e.count = n
	return nil
}

// EditField sets one field of the draft entry at index i. A rejected value leaves the
// draft unchanged.
func (e *RecordListEditor[T]) EditField(i int, field string, value interface{}) error {
	if e.state != DraftOpen {
		return ErrClosed
	}
	if err := e.checkIndex(i); err != nil {
		return err
	}

	updated, err := e.draft[i].WithField(field, value)
	if err != nil {
		return err
	}
	e.draft[i] = updated
	return nil
}

// Commit writes the visible draft into the store as the committed list. Either the
// whole list is written or nothing is.
func (e *RecordListEditor[T]) Commit() error {
	if e.state != DraftOpen {
		return ErrClosed
	}

	entries := e.Entries()
	if len(entries) < MinCount {
		return fmt.Errorf("%w: %s draft has %d entries", models.ErrInternal, e.kind.Name, len(entries))
	}
	for i, rec := range entries {
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("%w: %s entry %d failed validation: %v", models.ErrInternal, e.kind.Name, i, err)
		}
	}

	store.PutRecords(e.store, e.kind, entries)
	e.state = Committed
	return nil
}

// Discard closes the session without touching the store
func (e *RecordListEditor[T]) Discard() {
	if e.state == DraftOpen {
		e.state = Discarded
	}
}

// extend grows the draft cache to at least n entries, preferring entries still held
// in the store beyond its committed count over fresh defaults.
func (e *RecordListEditor[T]) extend(n int) {
	for i := len(e.draft); i < n; i++ {
		rec, ok := store.Record(e.store, e.kind, i)
		if !ok {
			rec = e.kind.Default()
		}
		e.draft = append(e.draft, rec)
	}
}

func (e *RecordListEditor[T]) checkIndex(i int) error {
	if i < 0 || i >= e.count {
		return models.NewValidationError("index", "%d out of range [0, %d)", i, e.count)
	}
	return nil
}
