// Package session binds one FieldStore and one configuration registry to a single user
// session and serializes the actions taken on them.
//
// Sessions never share state: every Session owns its own store and registry, created
// when the session opens and dropped when it closes.
package session

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/picogrid/cosim-input/pkg/assembler"
	"github.com/picogrid/cosim-input/pkg/editor"
	"github.com/picogrid/cosim-input/pkg/models"
	"github.com/picogrid/cosim-input/pkg/registry"
	"github.com/picogrid/cosim-input/pkg/simulation"
	"github.com/picogrid/cosim-input/pkg/store"
)

// Session is one user's editing session
type Session struct {
	mu      sync.Mutex
	store   *store.FieldStore
	configs *registry.Registry
	log     zerolog.Logger
	created time.Time
}

// New creates a session with an empty store and registry
func New(log zerolog.Logger) *Session {
	fs := store.New()
	return &Session{
		store:   fs,
		configs: registry.New(),
		log:     log.With().Str("session", fs.ID().String()).Logger(),
		created: time.Now(),
	}
}

// ID returns the session id
func (s *Session) ID() uuid.UUID {
	return s.store.ID()
}

// Created returns when the session was opened
func (s *Session) Created() time.Time {
	return s.created
}

// Store returns the session's FieldStore. Multi-step edits from concurrent callers
// must go through Do.
func (s *Session) Store() *store.FieldStore {
	return s.store
}

// Configs returns the session's configuration registry
func (s *Session) Configs() *registry.Registry {
	return s.configs
}

// Do runs fn with exclusive access to the session's store
func (s *Session) Do(fn func(fs *store.FieldStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.store)
}

// Assemble returns a snapshot of the committed configuration
func (s *Session) Assemble() models.Configuration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return assembler.Assemble(s.store)
}

// Save stores the committed configuration under its config_name. It refuses with a
// ValidationError when no name has been set.
func (s *Session) Save() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := assembler.Assemble(s.store)
	name := strings.TrimSpace(cfg.System.ConfigName)
	if name == "" {
		return "", models.NewValidationError("config_name", "set a configuration name in Settings before saving")
	}

	if err := s.configs.Save(name, cfg); err != nil {
		return "", fmt.Errorf("failed to save configuration: %w", err)
	}

	s.log.Info().Str("config", name).Msg("configuration saved")
	return name, nil
}

// Load replaces the committed values with the named configuration
func (s *Session) Load(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.configs.Load(name, s.store); err != nil {
		return err
	}
	s.log.Info().Str("config", name).Msg("configuration loaded")
	return nil
}

// Delete removes the named configuration
func (s *Session) Delete(name string) error {
	if err := s.configs.Delete(name); err != nil {
		return err
	}
	s.log.Info().Str("config", name).Msg("configuration deleted")
	return nil
}

// Simulate hands the committed configuration to sim and runs it
func (s *Session) Simulate(ctx context.Context, sim simulation.Simulation, out io.Writer) error {
	cfg := s.Assemble()

	if err := sim.Configure(cfg); err != nil {
		return fmt.Errorf("failed to configure simulation: %w", err)
	}

	s.log.Info().Str("simulation", sim.Name()).Msg("running simulation")
	if err := sim.Run(ctx, out); err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	return nil
}

// ApplyRecords opens an editor on kind, resizes it to *count (or, with count nil, to
// len(edits) when that is larger), applies edits per index and commits. Any rejected
// edit discards the whole draft.
func ApplyRecords[T models.Record[T]](s *Session, kind store.Kind[T], count *int, edits []map[string]interface{}) error {
	if len(edits) > editor.MaxCount {
		return models.NewValidationError(kind.Name, "at most %d entries, got %d", editor.MaxCount, len(edits))
	}

	return s.Do(func(fs *store.FieldStore) error {
		ed := editor.Open(fs, kind)

		n := ed.Len()
		if count != nil {
			n = *count
		} else if len(edits) > n {
			n = len(edits)
		}
		if err := ed.Resize(n); err != nil {
			ed.Discard()
			return err
		}

		for i, fields := range edits {
			for _, name := range sortedKeys(fields) {
				if err := ed.EditField(i, name, fields[name]); err != nil {
					ed.Discard()
					return fmt.Errorf("%s entry %d: %w", kind.Name, i+1, err)
				}
			}
		}

		if err := ed.Commit(); err != nil {
			return err
		}
		s.log.Debug().Str("kind", kind.Name).Int("count", ed.Len()).Msg("records committed")
		return nil
	})
}

// ApplySettings edits and commits the system settings in one step
func ApplySettings(s *Session, fields map[string]interface{}) error {
	return s.Do(func(fs *store.FieldStore) error {
		ed := editor.OpenSettings(fs)
		for _, name := range sortedKeys(fields) {
			if err := ed.EditField(name, fields[name]); err != nil {
				ed.Discard()
				return err
			}
		}
		if err := ed.Commit(); err != nil {
			ed.Discard()
			return err
		}
		return nil
	})
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
