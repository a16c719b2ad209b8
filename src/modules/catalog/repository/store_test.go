package catalog

import (
	"context"
	"testing"
	"time"

	models "cinestash/src/modules/catalog/models"
	"cinestash/src/utils/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMovie(title, description string, tags ...string) *models.Movie {
	m := &models.Movie{Movie: "https://stream.example/" + title}
	m.SetTitle(title)
	m.Description = description
	m.Tags = models.Strings(tags)
	return m
}

func TestStoreCreateAndFind(t *testing.T) {
	ctx := context.Background()
	store := NewStore[models.Movie](testdb.Open(t))

	m := newMovie("Inception", "A thief who steals secrets", "Action", "Sci-Fi")
	require.NoError(t, store.Create(ctx, m))
	assert.NotEmpty(t, m.ID)

	got, err := store.FindByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "inception", got.Slug)
	assert.Equal(t, models.Strings{"Action", "Sci-Fi"}, got.Tags)

	_, err = store.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreDuplicateSlug(t *testing.T) {
	ctx := context.Background()
	store := NewStore[models.Movie](testdb.Open(t))

	require.NoError(t, store.Create(ctx, newMovie("Inception", "")))
	err := store.Create(ctx, newMovie("INCEPTION!", ""))
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestStoreListNewestUpdatedFirst(t *testing.T) {
	ctx := context.Background()
	store := NewStore[models.Movie](testdb.Open(t))

	first := newMovie("First", "")
	second := newMovie("Second", "")
	require.NoError(t, store.Create(ctx, first))
	require.NoError(t, store.Create(ctx, second))

	time.Sleep(10 * time.Millisecond)
	first.Description = "touched"
	require.NoError(t, store.Save(ctx, first))

	items, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "First", items[0].Title)
}

func TestStoreSearch(t *testing.T) {
	ctx := context.Background()
	store := NewStore[models.Series](testdb.Open(t))

	naruto := &models.Series{}
	naruto.SetTitle("Naruto Shippuden")
	naruto.Tags = models.Strings{"Animation", "Action & Adventure"}
	require.NoError(t, store.Create(ctx, naruto))

	other := &models.Series{}
	other.SetTitle("Dark")
	other.Description = "A family saga with a supernatural twist"
	other.Tags = models.Strings{"Mystery"}
	require.NoError(t, store.Create(ctx, other))

	byTitle, err := store.Search(ctx, "naruto")
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, "Naruto Shippuden", byTitle[0].Title)

	byDescription, err := store.Search(ctx, "SUPERNATURAL")
	require.NoError(t, err)
	require.Len(t, byDescription, 1)
	assert.Equal(t, "Dark", byDescription[0].Title)

	byTag, err := store.Search(ctx, "myst")
	require.NoError(t, err)
	require.Len(t, byTag, 1)

	wildcard, err := store.Search(ctx, "%")
	require.NoError(t, err)
	assert.Empty(t, wildcard)

	tagged, err := store.SearchTag(ctx, "adventure")
	require.NoError(t, err)
	require.Len(t, tagged, 1)
	assert.Equal(t, "Naruto Shippuden", tagged[0].Title)
}

func TestStoreMatchSlug(t *testing.T) {
	ctx := context.Background()
	store := NewStore[models.Movie](testdb.Open(t))

	require.NoError(t, store.Create(ctx, newMovie("The Dark Knight", "")))
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, store.Create(ctx, newMovie("The Dark Knight Rises", "")))

	got, err := store.MatchSlug(ctx, "DARK-KNIGHT")
	require.NoError(t, err)
	assert.Equal(t, "the-dark-knight", got.Slug)

	_, err = store.MatchSlug(ctx, "joker")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore[models.Movie](testdb.Open(t))

	m := newMovie("Inception", "")
	require.NoError(t, store.Create(ctx, m))
	require.NoError(t, store.Delete(ctx, m.ID))

	assert.ErrorIs(t, store.Delete(ctx, m.ID), ErrNotFound)
}

func TestStoreSlugs(t *testing.T) {
	ctx := context.Background()
	store := NewStore[models.Movie](testdb.Open(t))

	require.NoError(t, store.Create(ctx, newMovie("Inception", "")))
	require.NoError(t, store.Create(ctx, newMovie("Memento", "")))

	refs, err := store.Slugs(ctx)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	slugs := []string{refs[0].Slug, refs[1].Slug}
	assert.ElementsMatch(t, []string{"inception", "memento"}, slugs)
	assert.False(t, refs[0].UpdatedAt.IsZero())
}
