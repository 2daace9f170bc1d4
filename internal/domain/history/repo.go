package history

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no item matches the requested id. Malformed
// ids collapse to this same error so storage-implementation detail never
// leaks to callers.
var ErrNotFound = errors.New("history item not found")

type Repository interface {
	Create(ctx context.Context, item *Item) error
	GetByID(ctx context.Context, id string) (*Item, error)
	Update(ctx context.Context, id string, patch Patch) (*Item, error)
	// Delete reports whether a record was actually removed. Deleting an
	// unknown id returns false, not an error.
	Delete(ctx context.Context, id string) (bool, error)
	Search(ctx context.Context, query string, limit int) ([]*Item, error)
	List(ctx context.Context, limit, offset int) ([]*Item, int, error)
	Stats(ctx context.Context) (*Stats, error)
	Backup(ctx context.Context) ([]*Item, error)
}
