// Package admin orchestrates the back-office CRUD workflow for one
// entity type: fetch-all, create, update, delete and toggle-active
// against the remote API, with local state reconciled by a full
// refetch after every successful mutation.
package admin

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Resource is the API-client surface the controller needs for one
// entity type. Adapters over the concrete client live in resources.go.
type Resource[ID comparable, E any, F any] interface {
	ListAll(ctx context.Context, token string) ([]E, error)
	Create(ctx context.Context, token string, form F) (E, error)
	Update(ctx context.Context, token string, id ID, form F) (E, error)
	Delete(ctx context.Context, token string, id ID) error
	ToggleActive(ctx context.Context, token string, id ID) (E, error)
}

// Mode is the editor state of the controller.
type Mode int

const (
	// ModeIdle: list loaded, no editor open.
	ModeIdle Mode = iota
	// ModeCreating: editor open with no target entity.
	ModeCreating
	// ModeEditing: editor open over one loaded entity.
	ModeEditing
)

// Controller keeps a local entity list synchronized with server
// mutations. It is driven from a single request goroutine and holds
// no locks; share one per request, not across them.
type Controller[ID comparable, E any, F any] struct {
	res    Resource[ID, E, F]
	idOf   func(E) ID
	list   []E
	loaded bool
	mode   Mode
	target *E
}

func NewController[ID comparable, E any, F any](res Resource[ID, E, F], idOf func(E) ID) *Controller[ID, E, F] {
	return &Controller[ID, E, F]{res: res, idOf: idOf}
}

func (c *Controller[ID, E, F]) List() []E  { return c.list }
func (c *Controller[ID, E, F]) Mode() Mode { return c.mode }
func (c *Controller[ID, E, F]) Loaded() bool { return c.loaded }

// Editing returns the entity under edit, or nil outside ModeEditing.
func (c *Controller[ID, E, F]) Editing() *E { return c.target }

// LoadAll replaces the local list with the server's. On failure the
// previous list (or the empty first-load list) stays in place.
func (c *Controller[ID, E, F]) LoadAll(ctx context.Context, token string) error {
	list, err := c.res.ListAll(ctx, token)
	if err != nil {
		return errors.Wrap(err, "load failed")
	}
	c.list = list
	c.loaded = true
	return nil
}

// OpenCreate opens the editor for a new entity, dropping any edit
// target regardless of the current state.
func (c *Controller[ID, E, F]) OpenCreate() {
	c.mode = ModeCreating
	c.target = nil
}

// OpenEdit opens the editor over an existing entity.
func (c *Controller[ID, E, F]) OpenEdit(entity E) {
	c.mode = ModeEditing
	c.target = &entity
}

// Cancel closes the editor without touching the server.
func (c *Controller[ID, E, F]) Cancel() {
	c.mode = ModeIdle
	c.target = nil
}

// Submit creates or updates depending on the editor state. On success
// the editor closes and the list is reloaded so it reflects server
// truth; on failure the editor stays open for a retry.
func (c *Controller[ID, E, F]) Submit(ctx context.Context, token string, form F) error {
	switch c.mode {
	case ModeCreating:
		if _, err := c.res.Create(ctx, token, form); err != nil {
			return errors.Wrap(err, "create failed")
		}
	case ModeEditing:
		if _, err := c.res.Update(ctx, token, c.idOf(*c.target), form); err != nil {
			return errors.Wrap(err, "update failed")
		}
	default:
		return errors.New("no editor open")
	}

	c.Cancel()
	if err := c.LoadAll(ctx, token); err != nil {
		// the mutation itself succeeded; a failed resync is reported
		// but must not reopen the editor
		zap.L().Warn("reload after submit failed", zap.Error(err))
	}
	return nil
}

// Remove deletes an entity after an interactive confirmation. A
// declined confirmation issues no API call and returns performed=false.
func (c *Controller[ID, E, F]) Remove(ctx context.Context, token string, id ID, confirmed bool) (performed bool, err error) {
	if !confirmed {
		return false, nil
	}
	if err := c.res.Delete(ctx, token, id); err != nil {
		return false, errors.Wrap(err, "delete failed")
	}
	if err := c.LoadAll(ctx, token); err != nil {
		zap.L().Warn("reload after delete failed", zap.Error(err))
	}
	return true, nil
}

// ToggleActive flips the entity's active flag server-side, then
// reloads the list.
func (c *Controller[ID, E, F]) ToggleActive(ctx context.Context, token string, id ID) error {
	if _, err := c.res.ToggleActive(ctx, token, id); err != nil {
		return errors.Wrap(err, "toggle failed")
	}
	if err := c.LoadAll(ctx, token); err != nil {
		zap.L().Warn("reload after toggle failed", zap.Error(err))
	}
	return nil
}

// Find returns the loaded entity with the given id.
func (c *Controller[ID, E, F]) Find(id ID) (E, bool) {
	for _, entity := range c.list {
		if c.idOf(entity) == id {
			return entity, true
		}
	}
	var zero E
	return zero, false
}
