package selector

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rvasanth/distributor-console/pkg/ledger"
	"github.com/rvasanth/distributor-console/pkg/models"
)

// listPageSize bounds the one-shot counterparty fetch. The lists are small
// (one parent's children); filtering is client-side from then on.
const listPageSize = 500

// ErrUnknownEntity is returned when a selection id is not in the loaded
// list.
var ErrUnknownEntity = fmt.Errorf("selector: entity not in loaded list")

// Selector is a remote-backed, searchable single-select over the
// counterparties of one kind under one parent. Lists are fetched once per
// parent context; Search never re-queries the network.
type Selector struct {
	dir  ledger.EntityDirectory
	kind models.Role

	mu       sync.Mutex
	entities []models.Entity
	loaded   bool
	query    string
	selected *models.Entity
	onReset  []func()
}

// New creates a Selector for entities of the given kind.
func New(dir ledger.EntityDirectory, kind models.Role) *Selector {
	return &Selector{dir: dir, kind: kind}
}

// Kind returns the entity kind this selector offers.
func (s *Selector) Kind() models.Role { return s.kind }

// Load fetches the counterparty list under the given parent, replacing any
// previous list and selection. An empty result is a valid terminal state,
// not an error.
func (s *Selector) Load(ctx context.Context, parentRole models.Role, parentID string) error {
	entities, err := s.dir.ListEntities(ctx, s.kind, parentRole, parentID, listPageSize, 0)
	if err != nil {
		return err
	}

	s.Reset()

	s.mu.Lock()
	s.entities = entities
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// Loaded reports whether a list has been fetched for the current parent.
func (s *Selector) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Search sets the client-side filter and returns the filtered view. An
// empty query resets to the full list.
func (s *Selector) Search(query string) []models.Entity {
	s.mu.Lock()
	s.query = strings.TrimSpace(query)
	s.mu.Unlock()
	return s.Entities()
}

// Entities returns the current filtered view: a case-insensitive substring
// match over name and phone.
func (s *Selector) Entities() []models.Entity {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.query == "" {
		return append([]models.Entity(nil), s.entities...)
	}

	needle := strings.ToLower(s.query)
	var filtered []models.Entity
	for _, entity := range s.entities {
		if strings.Contains(strings.ToLower(entity.Name), needle) ||
			strings.Contains(strings.ToLower(entity.Phone), needle) {
			filtered = append(filtered, entity)
		}
	}
	return filtered
}

// Select picks an entity from the loaded list and re-fetches its detail
// record, because the list endpoint's balance snapshot may be minutes
// stale. Changing the selection invalidates all downstream form state via
// the reset hooks before the new selection lands.
func (s *Selector) Select(ctx context.Context, id string) (*models.Entity, error) {
	s.mu.Lock()
	var found bool
	for i := range s.entities {
		if s.entities[i].ID == id {
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		return nil, ErrUnknownEntity
	}

	detail, err := s.dir.GetEntity(ctx, s.kind, id)
	if err != nil {
		// Keep the previous selection; the caller surfaces the failure.
		return nil, err
	}

	s.notifyReset()

	s.mu.Lock()
	s.selected = detail
	s.mu.Unlock()
	return detail, nil
}

// Selected returns the detail record of the active selection, or nil.
func (s *Selector) Selected() *models.Entity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Clear resets the selection, detail and query, and fires the reset hooks
// so dependent amount/remarks fields cannot outlive the selection.
func (s *Selector) Clear() {
	s.mu.Lock()
	s.selected = nil
	s.query = ""
	s.mu.Unlock()
	s.notifyReset()
}

// Reset clears everything including the loaded list. A parent-tier change
// calls this on its children so no stale child selection survives.
func (s *Selector) Reset() {
	s.mu.Lock()
	s.entities = nil
	s.loaded = false
	s.selected = nil
	s.query = ""
	s.mu.Unlock()
	s.notifyReset()
}

// OnReset registers a hook fired whenever the selection is invalidated.
// Child selectors and workflow field resets hang off this.
func (s *Selector) OnReset(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReset = append(s.onReset, fn)
}

func (s *Selector) notifyReset() {
	s.mu.Lock()
	hooks := make([]func(), len(s.onReset))
	copy(hooks, s.onReset)
	s.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}
}
