package main

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Query narrows a listing. All three predicates are ANDed together.
type Query struct {
	// Search is matched case-insensitively as a substring of any search field.
	Search string
	// FavoritesOnly excludes non-favorites when set.
	FavoritesOnly bool
	// Tag keeps only items whose tag set contains it exactly (case-sensitive).
	Tag string
}

// Collection manages the in-memory items of one kind and mirrors every
// mutation to the blob store (write-through). The in-memory slice is the
// source of truth for the life of the process.
type Collection[T Item[T]] struct {
	kind   string
	store  BlobStore
	logger *zap.Logger
	now    func() time.Time
	newID  func() string

	mu    sync.RWMutex
	items []T
}

// NewCollection creates an empty collection; call Load to pull persisted state.
func NewCollection[T Item[T]](kind string, store BlobStore, logger *zap.Logger) *Collection[T] {
	return &Collection[T]{
		kind:   kind,
		store:  store,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Load replaces the in-memory state with whatever the store holds. A blob
// that no longer parses is logged and treated as an empty collection rather
// than taking the whole application down.
func (c *Collection[T]) Load(ctx context.Context) error {
	blob, err := c.store.Load(ctx, c.kind)
	if err != nil {
		return fmt.Errorf("load %s: %w", c.kind, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(blob) == 0 {
		c.items = nil
		return nil
	}
	var items []T
	if err := json.Unmarshal(blob, &items); err != nil {
		c.logger.Warn("discarding unreadable collection",
			zap.String("kind", c.kind),
			zap.Error(err))
		c.items = nil
		return nil
	}
	c.items = items
	return nil
}

// Create validates the item, assigns a fresh id and creation metadata, and
// prepends it so new items list first among equals. On validation failure
// nothing is mutated or persisted.
func (c *Collection[T]) Create(ctx context.Context, item T) (T, error) {
	var zero T
	if err := item.Validate(); err != nil {
		return zero, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	item.Stamp(c.newID(), c.now().UTC())
	c.items = append([]T{item}, c.items...)
	if err := c.persistLocked(ctx); err != nil {
		return zero, err
	}
	return item.Clone(), nil
}

// Update overwrites the editable fields of an existing item via apply,
// keeping id and creation timestamp. The update timestamp is refreshed on
// types that track one. A validation failure leaves the item unchanged.
func (c *Collection[T]) Update(ctx context.Context, id string, apply func(T)) (T, error) {
	var zero T
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexLocked(id)
	if i < 0 {
		return zero, ErrNotFound
	}
	next := c.items[i].Clone()
	apply(next)
	if err := next.Validate(); err != nil {
		return zero, err
	}
	next.Touch(c.now().UTC())
	c.items[i] = next
	if err := c.persistLocked(ctx); err != nil {
		return zero, err
	}
	return next.Clone(), nil
}

// Delete removes the item with the given id. The collection is unchanged if
// the id is unknown.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexLocked(id)
	if i < 0 {
		return ErrNotFound
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return c.persistLocked(ctx)
}

// ToggleFavorite flips the favorite flag. Favoriting is metadata only: it
// does not refresh the update timestamp, so it never reorders listings.
func (c *Collection[T]) ToggleFavorite(ctx context.Context, id string) (T, error) {
	var zero T
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexLocked(id)
	if i < 0 {
		return zero, ErrNotFound
	}
	next := c.items[i].Clone()
	next.SetFavorite(!next.Favorite())
	c.items[i] = next
	if err := c.persistLocked(ctx); err != nil {
		return zero, err
	}
	return next.Clone(), nil
}

// Get returns a copy of the item with the given id.
func (c *Collection[T]) Get(id string) (T, error) {
	var zero T
	c.mu.RLock()
	defer c.mu.RUnlock()
	i := c.indexLocked(id)
	if i < 0 {
		return zero, ErrNotFound
	}
	return c.items[i].Clone(), nil
}

// List returns the items matching the query, newest sort key first. Items
// sharing a sort key are ordered by id ascending so the result is
// deterministic across loads.
func (c *Collection[T]) List(q Query) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	term := strings.ToLower(q.Search)
	out := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if term != "" && !matchesSearch(item, term) {
			continue
		}
		if q.FavoritesOnly && !item.Favorite() {
			continue
		}
		if q.Tag != "" && !slices.Contains(item.TagList(), q.Tag) {
			continue
		}
		out = append(out, item.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].SortKey(), out[j].SortKey()
		if a.Equal(b) {
			return out[i].ItemID() < out[j].ItemID()
		}
		return a.After(b)
	})
	return out
}

// TagIndex returns every distinct tag in the collection, sorted ascending.
// It is recomputed from current state on every call.
func (c *Collection[T]) TagIndex() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seen := make(map[string]struct{})
	for _, item := range c.items {
		for _, tag := range item.TagList() {
			seen[tag] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Len reports the number of items held.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Collection[T]) indexLocked(id string) int {
	for i, item := range c.items {
		if item.ItemID() == id {
			return i
		}
	}
	return -1
}

func (c *Collection[T]) persistLocked(ctx context.Context) error {
	items := c.items
	if items == nil {
		items = []T{}
	}
	blob, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", c.kind, err)
	}
	if err := c.store.Save(ctx, c.kind, blob); err != nil {
		return fmt.Errorf("save %s: %w", c.kind, err)
	}
	return nil
}

func matchesSearch[T Item[T]](item T, term string) bool {
	for _, field := range item.SearchText() {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
