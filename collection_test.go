package main

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newNoteCollection(t *testing.T) (*Collection[*Note], *memStore) {
	t.Helper()
	store := newMemStore()
	col := NewCollection[*Note](KindNotes, store, zap.NewNop())
	require.NoError(t, col.Load(context.Background()))
	return col, store
}

func newBookmarkCollection(t *testing.T) (*Collection[*Bookmark], *memStore) {
	t.Helper()
	store := newMemStore()
	col := NewCollection[*Bookmark](KindBookmarks, store, zap.NewNop())
	require.NoError(t, col.Load(context.Background()))
	return col, store
}

// tick replaces the collection clock with one that advances a second per call.
func tick(col *Collection[*Note]) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	col.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
}

func TestCreateAssignsIdentity(t *testing.T) {
	col, _ := newNoteCollection(t)
	ctx := context.Background()

	first, err := col.Create(ctx, &Note{Title: "one", Content: "first"})
	require.NoError(t, err)
	second, err := col.Create(ctx, &Note{Title: "two", Content: "second"})
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.NotEmpty(t, second.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, first.IsFavorite)
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)

	listed := col.List(Query{})
	require.Len(t, listed, 2)
}

func TestCreateScenarioBuyMilk(t *testing.T) {
	col, _ := newNoteCollection(t)
	ctx := context.Background()

	// seed an older note so ordering is observable
	tick(col)
	_, err := col.Create(ctx, &Note{Title: "older", Content: "background"})
	require.NoError(t, err)

	note, err := col.Create(ctx, &Note{Title: "", Content: "Buy milk", Tags: []string{"errand"}})
	require.NoError(t, err)
	assert.False(t, note.IsFavorite)
	assert.Equal(t, note.CreatedAt, note.UpdatedAt)

	listed := col.List(Query{})
	require.Len(t, listed, 2)
	assert.Equal(t, note.ID, listed[0].ID, "newest note lists first on an empty query")
}

func TestCreateRejectsBlankContent(t *testing.T) {
	col, store := newNoteCollection(t)
	ctx := context.Background()

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := col.Create(ctx, &Note{Title: "t", Content: content})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "content %q", content)
		assert.Equal(t, "content", verr.Field)
	}
	assert.Zero(t, col.Len(), "rejected drafts mutate nothing")
	assert.Nil(t, store.blob(KindNotes), "nothing persisted")
}

func TestCreateRejectsInvalidURL(t *testing.T) {
	col, store := newBookmarkCollection(t)
	ctx := context.Background()

	_, err := col.Create(ctx, &Bookmark{URL: "not a url"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "url", verr.Field)
	assert.Zero(t, col.Len())
	assert.Nil(t, store.blob(KindBookmarks))

	_, err = col.Create(ctx, &Bookmark{URL: "https://example.com/a"})
	require.NoError(t, err)
	assert.Equal(t, 1, col.Len())
}

func TestUpdatePreservesIdentityAndBumpsUpdatedAt(t *testing.T) {
	col, _ := newNoteCollection(t)
	tick(col)
	ctx := context.Background()

	created, err := col.Create(ctx, &Note{Title: "before", Content: "body"})
	require.NoError(t, err)

	updated, err := col.Update(ctx, created.ID, func(n *Note) {
		n.Title = "after"
		n.Content = "new body"
		n.Tags = []string{"x"}
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt), "updatedAt strictly increases")
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, []string{"x"}, updated.Tags)
}

func TestUpdateValidationLeavesItemUnchanged(t *testing.T) {
	col, _ := newNoteCollection(t)
	ctx := context.Background()

	created, err := col.Create(ctx, &Note{Content: "keep me"})
	require.NoError(t, err)

	_, err = col.Update(ctx, created.ID, func(n *Note) { n.Content = "  " })
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	got, err := col.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "keep me", got.Content)
	assert.Equal(t, created.UpdatedAt, got.UpdatedAt)
}

func TestUpdateUnknownID(t *testing.T) {
	col, _ := newNoteCollection(t)
	_, err := col.Update(context.Background(), "missing", func(n *Note) {})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	col, _ := newNoteCollection(t)
	ctx := context.Background()

	a, err := col.Create(ctx, &Note{Content: "a"})
	require.NoError(t, err)
	b, err := col.Create(ctx, &Note{Content: "b"})
	require.NoError(t, err)

	require.NoError(t, col.Delete(ctx, a.ID))
	assert.Equal(t, 1, col.Len())
	_, err = col.Get(a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = col.Get(b.ID)
	assert.NoError(t, err)

	// deleting an unknown id reports not found and changes nothing
	err = col.Delete(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, col.Len())
}

func TestToggleFavoriteIsIdempotentUnderDoubleApplication(t *testing.T) {
	col, _ := newNoteCollection(t)
	tick(col)
	ctx := context.Background()

	created, err := col.Create(ctx, &Note{Content: "fav me"})
	require.NoError(t, err)

	once, err := col.ToggleFavorite(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, once.IsFavorite)
	assert.Equal(t, created.UpdatedAt, once.UpdatedAt, "favoriting does not refresh updatedAt")

	twice, err := col.ToggleFavorite(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, twice.IsFavorite)

	_, err = col.ToggleFavorite(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTagIndexSortedAndDeduplicated(t *testing.T) {
	col, _ := newNoteCollection(t)
	ctx := context.Background()

	_, err := col.Create(ctx, &Note{Content: "x", Tags: []string{"b", "a"}})
	require.NoError(t, err)
	_, err = col.Create(ctx, &Note{Content: "y", Tags: []string{"a", "c"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, col.TagIndex())
}

func TestTagIndexEmptyCollection(t *testing.T) {
	col, _ := newNoteCollection(t)
	assert.Equal(t, []string{}, col.TagIndex())
}

func TestListSearchMatchesAllFields(t *testing.T) {
	col, _ := newBookmarkCollection(t)
	ctx := context.Background()

	seed := []*Bookmark{
		{URL: "https://example.com/1", Title: "Foo guide"},
		{URL: "https://example.com/2", Description: "all about FOO"},
		{URL: "https://foo.dev/3"},
		{URL: "https://example.com/4", Tags: []string{"foo-stuff"}},
		{URL: "https://example.com/5", Title: "unrelated"},
	}
	for _, b := range seed {
		_, err := col.Create(ctx, b)
		require.NoError(t, err)
	}

	got := col.List(Query{Search: "foo"})
	require.Len(t, got, 4)
	for _, b := range got {
		assert.NotEqual(t, "unrelated", b.Title)
	}

	assert.Len(t, col.List(Query{Search: ""}), 5, "empty term matches everything")
}

func TestListFilterConjunction(t *testing.T) {
	col, _ := newNoteCollection(t)
	ctx := context.Background()

	a, err := col.Create(ctx, &Note{Title: "go notes", Content: "compilers", Tags: []string{"go"}})
	require.NoError(t, err)
	_, err = col.Create(ctx, &Note{Title: "go links", Content: "reading", Tags: []string{"go"}})
	require.NoError(t, err)
	_, err = col.Create(ctx, &Note{Title: "shopping", Content: "milk", Tags: []string{"errand"}})
	require.NoError(t, err)

	_, err = col.ToggleFavorite(ctx, a.ID)
	require.NoError(t, err)

	got := col.List(Query{Search: "go", FavoritesOnly: true, Tag: "go"})
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)

	// tag filter is exact, not substring
	assert.Empty(t, col.List(Query{Tag: "g"}))
	// favorites filter alone
	assert.Len(t, col.List(Query{FavoritesOnly: true}), 1)
}

func TestListSortsByKeyDescendingWithIDTieBreak(t *testing.T) {
	col, _ := newNoteCollection(t)
	ctx := context.Background()

	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	col.now = func() time.Time { return fixed }
	ids := []string{"c", "a", "b"}
	n := 0
	col.newID = func() string { id := ids[n]; n++; return id }

	for i := range ids {
		_, err := col.Create(ctx, &Note{Content: fmt.Sprintf("note %d", i)})
		require.NoError(t, err)
	}

	got := col.List(Query{})
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, "c", got[2].ID)
}

func TestLoadCorruptBlobFallsBackToEmpty(t *testing.T) {
	store := newMemStore()
	require.NoError(t, store.Save(context.Background(), KindNotes, []byte(`{definitely not json`)))

	col := NewCollection[*Note](KindNotes, store, zap.NewNop())
	require.NoError(t, col.Load(context.Background()), "corruption is recoverable")
	assert.Zero(t, col.Len())
}

func TestPersistRoundTripIsIdempotent(t *testing.T) {
	col, store := newNoteCollection(t)
	ctx := context.Background()

	_, err := col.Create(ctx, &Note{Title: "a", Content: "alpha", Tags: []string{"x", "y"}})
	require.NoError(t, err)
	_, err = col.Create(ctx, &Note{Title: "b", Content: "beta"})
	require.NoError(t, err)
	before := append([]byte(nil), store.blob(KindNotes)...)

	reloaded := NewCollection[*Note](KindNotes, store, zap.NewNop())
	require.NoError(t, reloaded.Load(ctx))
	reloaded.mu.Lock()
	err = reloaded.persistLocked(ctx)
	reloaded.mu.Unlock()
	require.NoError(t, err)

	assert.Equal(t, before, store.blob(KindNotes), "saving back what was loaded is byte-identical")
}

func TestWriteThroughPersistsEveryMutation(t *testing.T) {
	col, store := newNoteCollection(t)
	ctx := context.Background()

	created, err := col.Create(ctx, &Note{Content: "v1"})
	require.NoError(t, err)
	afterCreate := store.blob(KindNotes)
	assert.Contains(t, string(afterCreate), "v1")

	_, err = col.Update(ctx, created.ID, func(n *Note) { n.Content = "v2" })
	require.NoError(t, err)
	assert.Contains(t, string(store.blob(KindNotes)), "v2")

	require.NoError(t, col.Delete(ctx, created.ID))
	assert.Equal(t, "[]", string(store.blob(KindNotes)))
}
