package semantic

import (
	"log/slog"
	"semlog/app/config"

	"github.com/samber/do"
	"github.com/samber/oops"
)

var _ Lookup = (*Registry)(nil)

// Registry is a static handle -> entity table loaded from configuration.
type Registry struct {
	entities map[string]Entity
}

func New(di *do.Injector) (*Registry, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return NewRegistry(cfg.Entities)
}

func NewRegistry(entries []config.Entity) (*Registry, error) {
	r := &Registry{
		entities: make(map[string]Entity, len(entries)),
	}

	seenIDs := make(map[string]string, len(entries))
	for _, e := range entries {
		if _, ok := r.entities[e.Handle]; ok {
			return nil, oops.With("handle", e.Handle).Errorf("duplicate entity handle")
		}
		if other, ok := seenIDs[e.ID]; ok {
			return nil, oops.With("id", e.ID, "handle", e.Handle, "other_handle", other).
				Errorf("entity id is used by two handles")
		}

		seenIDs[e.ID] = e.Handle
		r.entities[e.Handle] = Entity{ID: e.ID, Class: e.Class}
	}

	slog.Debug("Entity registry loaded", "count", len(r.entities))

	return r, nil
}

func (r *Registry) Resolve(handle string) (Entity, bool) {
	e, ok := r.entities[handle]
	if !ok || !e.IsSet() {
		return Entity{}, false
	}

	return e, true
}

func (r *Registry) Len() int {
	return len(r.entities)
}
