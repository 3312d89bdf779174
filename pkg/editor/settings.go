package editor

import (
	"github.com/picogrid/cosim-input/pkg/models"
	"github.com/picogrid/cosim-input/pkg/store"
)

// SettingsEditor edits the scalar system settings as a draft
type SettingsEditor struct {
	store *store.FieldStore
	draft models.ScalarSettings
	state State
}

// OpenSettings starts a settings session seeded from the committed values in fs
func OpenSettings(fs *store.FieldStore) *SettingsEditor {
	return &SettingsEditor{
		store: fs,
		draft: store.ReadSettings(fs),
		state: DraftOpen,
	}
}

func (e *SettingsEditor) State() State { return e.state }

// Draft returns the current draft values
func (e *SettingsEditor) Draft() models.ScalarSettings {
	return e.draft
}

// EditField sets one draft setting. A rejected value leaves the draft unchanged.
func (e *SettingsEditor) EditField(field string, value interface{}) error {
	if e.state != DraftOpen {
		return ErrClosed
	}
	updated, err := e.draft.WithField(field, value)
	if err != nil {
		return err
	}
	e.draft = updated
	return nil
}

// Commit writes the draft into the store. Cross-field checks (price band) run here;
// on failure nothing is written and the editor stays open.
func (e *SettingsEditor) Commit() error {
	if e.state != DraftOpen {
		return ErrClosed
	}
	if err := e.draft.Validate(); err != nil {
		return err
	}

	store.WriteSettings(e.store, e.draft)
	e.state = Committed
	return nil
}

// Discard closes the session without touching the store
func (e *SettingsEditor) Discard() {
	if e.state == DraftOpen {
		e.state = Discarded
	}
}
