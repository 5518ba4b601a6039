// Package bulk applies a batch of update/delete items to a sibling
// collection. The same algorithm serves columns within a board and cards
// within a column.
//
// Every item id is checked against the collection before anything is
// written. Deletions run before updates, and the survivors come back in the
// order their ids first appeared in the batch. Callers run Apply inside a
// transaction so a failure part-way leaves nothing behind.
package bulk

import (
	"context"
	"fmt"

	"github.com/phrazzld/kanban-api/internal/domain"
)

// ErrMissingID is returned for an item without a positive id.
var ErrMissingID = domain.NewValidationError("id", "each item requires an id")

// Patch is a set of optional field changes that can be merged.
type Patch[P any] interface {
	// Merge returns the receiver overlaid with next; fields set in next win.
	Merge(next P) P
}

// Item is one submitted entry of a batch.
type Item[P any] struct {
	ID     int64
	Delete bool
	Patch  P
}

// Ops are the entity-specific callbacks Apply drives.
type Ops[E any, P any] struct {
	// ID returns the entity id.
	ID func(E) int64

	// Delete removes the entity with id.
	Delete func(ctx context.Context, id int64) error

	// Update applies patch to entity, persists it and returns the stored result.
	Update func(ctx context.Context, entity E, patch P) (E, error)

	// NotFound is wrapped in the error returned for ids outside the instance.
	NotFound error
}

// Apply runs items against instance and returns the surviving entities.
func Apply[E any, P Patch[P]](ctx context.Context, instance []E, items []Item[P], ops Ops[E, P]) ([]E, error) {
	lookup := make(map[int64]E, len(instance))
	for _, e := range instance {
		lookup[ops.ID(e)] = e
	}

	var (
		order   []int64
		patches = make(map[int64]P, len(items))
		deleted = make(map[int64]bool)
	)
	for _, item := range items {
		if item.ID <= 0 {
			return nil, ErrMissingID
		}
		if _, ok := lookup[item.ID]; !ok {
			return nil, fmt.Errorf("%w: id %d", ops.NotFound, item.ID)
		}

		if existing, seen := patches[item.ID]; seen {
			patches[item.ID] = existing.Merge(item.Patch)
		} else {
			order = append(order, item.ID)
			patches[item.ID] = item.Patch
		}
		if item.Delete {
			deleted[item.ID] = true
		}
	}

	for _, id := range order {
		if !deleted[id] {
			continue
		}
		if err := ops.Delete(ctx, id); err != nil {
			return nil, fmt.Errorf("delete id %d: %w", id, err)
		}
	}

	survivors := make([]E, 0, len(order)-len(deleted))
	for _, id := range order {
		if deleted[id] {
			continue
		}
		updated, err := ops.Update(ctx, lookup[id], patches[id])
		if err != nil {
			return nil, fmt.Errorf("update id %d: %w", id, err)
		}
		survivors = append(survivors, updated)
	}

	return survivors, nil
}
