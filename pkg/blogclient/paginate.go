package blogclient

import (
	"context"
	"sync"
)

// FetchPage loads one window of items starting at startIndex.
type FetchPage[T any] func(ctx context.Context, startIndex, limit int) ([]T, error)

// PaginatedList accumulates pages of items the way an infinite-scroll view
// does: each LoadMore appends the next window, and hasMore is inferred from
// whether the last page came back full. Items already present (by ID) are
// skipped on append, so overlapping windows after concurrent writes never
// produce duplicates. All methods are safe for concurrent use.
type PaginatedList[T any] struct {
	mu       sync.Mutex
	items    []T
	hasMore  bool
	busy     bool
	pageSize int
	fetch    FetchPage[T]
	idOf     func(T) uint
}

// NewPaginatedList creates an empty list. idOf extracts the identity used
// for deduplication.
func NewPaginatedList[T any](pageSize int, fetch FetchPage[T], idOf func(T) uint) *PaginatedList[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &PaginatedList[T]{
		hasMore:  true,
		pageSize: pageSize,
		fetch:    fetch,
		idOf:     idOf,
	}
}

// Items returns a copy of the accumulated items.
func (l *PaginatedList[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of accumulated items.
func (l *PaginatedList[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// HasMore reports whether another page is expected.
func (l *PaginatedList[T]) HasMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hasMore
}

// Load resets the list and fetches the first page.
func (l *PaginatedList[T]) Load(ctx context.Context) error {
	l.mu.Lock()
	if l.busy {
		l.mu.Unlock()
		return ErrBusy
	}
	l.busy = true
	limit := l.pageSize
	l.mu.Unlock()

	page, err := l.fetch(ctx, 0, limit)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.busy = false
	if err != nil {
		// A failed load keeps whatever was already shown.
		return err
	}
	l.items = page
	l.hasMore = len(page) == limit
	return nil
}

// LoadMore fetches the next page and appends it. The start index is the
// current item count, so items removed or prepended locally shift the
// window accordingly. A call while another load is in flight returns nil
// without fetching; the in-flight load already covers it.
func (l *PaginatedList[T]) LoadMore(ctx context.Context) error {
	l.mu.Lock()
	if l.busy || !l.hasMore {
		l.mu.Unlock()
		return nil
	}
	l.busy = true
	start := len(l.items)
	limit := l.pageSize
	l.mu.Unlock()

	page, err := l.fetch(ctx, start, limit)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.busy = false
	if err != nil {
		return err
	}
	l.appendLocked(page)
	l.hasMore = len(page) == limit
	return nil
}

// appendLocked appends items not already present.
func (l *PaginatedList[T]) appendLocked(page []T) {
	seen := make(map[uint]struct{}, len(l.items))
	for _, item := range l.items {
		seen[l.idOf(item)] = struct{}{}
	}
	for _, item := range page {
		if _, ok := seen[l.idOf(item)]; ok {
			continue
		}
		l.items = append(l.items, item)
	}
}

// Prepend inserts an item at the front, typically after a local create.
// An item with the same ID already in the list is removed first.
func (l *PaginatedList[T]) Prepend(item T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.removeLocked(l.idOf(item))
	l.items = append([]T{item}, l.items...)
}

// ReplaceByID swaps the item with the same ID in place. It reports whether
// a matching item was found.
func (l *PaginatedList[T]) ReplaceByID(item T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.idOf(item)
	for i := range l.items {
		if l.idOf(l.items[i]) == id {
			l.items[i] = item
			return true
		}
	}
	return false
}

// RemoveByID drops the item with the given ID, typically after a confirmed
// delete. It reports whether an item was removed.
func (l *PaginatedList[T]) RemoveByID(id uint) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.removeLocked(id)
}

func (l *PaginatedList[T]) removeLocked(id uint) bool {
	for i := range l.items {
		if l.idOf(l.items[i]) == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}
