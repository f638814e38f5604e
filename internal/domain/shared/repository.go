package shared

import "github.com/google/uuid"

// Slice is a cursor-paginated query result. The repository fetches one
// row more than the requested page size; the extra row only signals that
// another page exists and is trimmed before the slice is built.
type Slice[T any] struct {
	Items      []T        `json:"items"`
	HasNext    bool       `json:"has_next"`
	NextCursor *uuid.UUID `json:"next_cursor,omitempty"`
}

// NewSlice trims an over-fetched result down to size and derives the
// next cursor from the last retained item's identifier.
func NewSlice[T any](items []T, size int, idOf func(T) uuid.UUID) Slice[T] {
	hasNext := len(items) > size
	if hasNext {
		items = items[:size]
	}

	var next *uuid.UUID
	if hasNext && len(items) > 0 {
		id := idOf(items[len(items)-1])
		next = &id
	}

	return Slice[T]{
		Items:      items,
		HasNext:    hasNext,
		NextCursor: next,
	}
}
