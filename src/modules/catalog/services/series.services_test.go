package catalog

import (
	"context"
	"net/http"
	"testing"

	models "cinestash/src/modules/catalog/models"
	enrichmodels "cinestash/src/modules/enrichment/models"
	"cinestash/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createSeries(t *testing.T, f *fixture, title, episodes string) *models.Series {
	t.Helper()
	s, err := f.series.Create(context.Background(), CreateInput{Title: title, Episode: episodes, Image: pngUpload()})
	require.NoError(t, err)
	return s
}

func TestSeriesCreateWithEpisodes(t *testing.T) {
	f := newFixture(t)
	s := createSeries(t, f, "Naruto Shippuden", " E1, ,E2 ")

	assert.Equal(t, "naruto-shippuden", s.Slug)
	assert.Equal(t, models.Strings{"E1", "E2"}, s.Episode)
	assert.Equal(t, models.Strings{}, s.Tags)
}

func TestSeriesAppendEpisodes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := createSeries(t, f, "Dark", "")

	_, err := f.series.AppendEpisodes(ctx, s.ID, "E1,E2")
	require.NoError(t, err)
	_, err = f.series.AppendEpisodes(ctx, s.ID, "E3")
	require.NoError(t, err)

	got, err := f.series.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Strings{"E1", "E2", "E3"}, got.Episode)

	_, err = f.series.AppendEpisodes(ctx, s.ID, " , ")
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))
	assert.EqualError(t, err, "Episode is required")

	_, err = f.series.AppendEpisodes(ctx, "missing", "")
	assert.EqualError(t, err, "Series not found")
}

func TestSeriesRemoveEpisode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := createSeries(t, f, "Dark", "E1,E2,E3")

	got, err := f.series.RemoveEpisode(ctx, s.ID, "99")
	require.NoError(t, err)
	assert.Equal(t, models.Strings{"E1", "E2", "E3"}, got.Episode)

	_, err = f.series.RemoveEpisode(ctx, s.ID, "2")
	require.NoError(t, err)
	got, err = f.series.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Strings{"E1", "E3"}, got.Episode)

	_, err = f.series.RemoveEpisode(ctx, "missing", "1")
	assert.Equal(t, http.StatusNotFound, utils.StatusOf(err))
}

func TestSeriesAutoCreateByID(t *testing.T) {
	f := newFixture(t)
	f.enricher.byID["1396"] = &enrichmodels.Result{
		ID: 1396, Name: "Breaking Bad",
		Genres: []enrichmodels.Genre{{ID: 18, Name: "Drama"}},
	}

	s, err := f.series.AutoCreate(context.Background(), AutoRequest{TMDBID: "1396"})
	require.NoError(t, err)
	assert.Equal(t, "breaking-bad", s.Slug)
	assert.Equal(t, models.Strings{"Drama"}, s.Tags)
	assert.Equal(t, models.Strings{}, s.Episode)
}

func TestUpdateTitleRegeneratesSlug(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := createSeries(t, f, "Dark", "")
	other := createSeries(t, f, "Lost", "")

	same, err := f.series.UpdateTitle(ctx, s.ID, "Dark")
	require.NoError(t, err)
	assert.Equal(t, "dark", same.Slug)

	renamed, err := f.series.UpdateTitle(ctx, s.ID, "Dark Matter")
	require.NoError(t, err)
	assert.Equal(t, "dark-matter", renamed.Slug)

	_, err = f.series.UpdateTitle(ctx, s.ID, "LOST")
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, utils.StatusOf(err))
	var se *utils.ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, other.ID, se.Existing.(*models.Series).ID)

	_, err = f.series.UpdateTitle(ctx, s.ID, "")
	assert.EqualError(t, err, "Title is required")

	_, err = f.series.UpdateTitle(ctx, "missing", "")
	assert.EqualError(t, err, "Series not found")
}

func TestUpdateImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := createSeries(t, f, "Dark", "")

	_, err := f.series.UpdateImage(ctx, "missing", nil)
	assert.Equal(t, http.StatusNotFound, utils.StatusOf(err))

	_, err = f.series.UpdateImage(ctx, s.ID, nil)
	assert.EqualError(t, err, "Image is required")

	f.media.deleteErr = errBoom
	updated, err := f.series.UpdateImage(ctx, s.ID, pngUpload())
	require.NoError(t, err, "a failed delete of the old asset does not block the update")
	assert.Equal(t, "asset-2", updated.ImageID)
	assert.Equal(t, "https://media.example/asset-2", updated.Image)

	f.media.deleteErr = nil
	_, err = f.series.UpdateImage(ctx, s.ID, pngUpload())
	require.NoError(t, err)
	assert.Equal(t, []string{"asset-2"}, f.media.deleted)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := createSeries(t, f, "Dark", "")

	_, err := f.series.Delete(ctx, "missing")
	assert.Equal(t, http.StatusNotFound, utils.StatusOf(err))
	_, deletes := f.media.calls()
	assert.Zero(t, deletes)

	f.media.deleteErr = errBoom
	_, err = f.series.Delete(ctx, s.ID)
	assert.Equal(t, http.StatusInternalServerError, utils.StatusOf(err))
	_, err = f.series.Get(ctx, s.ID)
	require.NoError(t, err, "entity survives a failed asset delete")

	f.media.deleteErr = nil
	deleted, err := f.series.Delete(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, deleted.ID)
	assert.Equal(t, []string{"asset-1"}, f.media.deleted)

	_, err = f.series.Get(ctx, s.ID)
	assert.Equal(t, http.StatusNotFound, utils.StatusOf(err))
	assert.Contains(t, f.events.types(), "deleted")
}

func TestDeleteWithoutImageSkipsMediaStore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.enricher.byTitle["Dark"] = &enrichmodels.Result{Name: "Dark"}

	s, err := f.series.AutoCreate(ctx, AutoRequest{Title: "Dark"})
	require.NoError(t, err)

	f.media.deleteErr = errBoom
	_, err = f.series.Delete(ctx, s.ID)
	require.NoError(t, err)
}

func TestWatchAndPopular(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.series.Watch(ctx, "missing")
	assert.Equal(t, http.StatusNotFound, utils.StatusOf(err))

	titles := []string{"S1", "S2", "S3", "S4", "S5", "S6", "S7", "S8", "S9", "S10", "S11", "S12"}
	for i, title := range titles {
		s := createSeries(t, f, title, "")
		for n := 0; n <= i; n++ {
			_, err := f.series.Watch(ctx, s.ID)
			require.NoError(t, err)
		}
	}

	popular, err := f.series.Popular(ctx)
	require.NoError(t, err)
	require.Len(t, popular, 10)
	for i := 1; i < len(popular); i++ {
		assert.GreaterOrEqual(t, popular[i-1].Views, popular[i].Views)
	}
	assert.Equal(t, int64(12), popular[0].Views)
	require.NotNil(t, popular[0].Series)
	assert.Equal(t, "S12", popular[0].Series.Title)
}

func TestWatchTwiceCreatesOneRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := createSeries(t, f, "Dark", "")

	_, err := f.series.Watch(ctx, s.ID)
	require.NoError(t, err)
	row, err := f.series.Watch(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), row.Views)

	var count int64
	require.NoError(t, f.db.Model(&models.PopularSeries{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestReconcilePopularity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := createSeries(t, f, "Dark", "")
	_, err := f.series.Watch(ctx, s.ID)
	require.NoError(t, err)
	_, err = f.series.Delete(ctx, s.ID)
	require.NoError(t, err)

	removed, err := f.series.ReconcilePopularity(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}

func TestLookupAndSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.series.Create(ctx, CreateInput{Title: "Naruto Shippuden", Tags: "Animation, Action", Image: pngUpload()})
	require.NoError(t, err)

	got, err := f.series.GetBySlug(ctx, "NARUTO")
	require.NoError(t, err)
	assert.Equal(t, "naruto-shippuden", got.Slug)

	_, err = f.series.GetBySlug(ctx, "bleach")
	assert.EqualError(t, err, "Series not found")

	found, err := f.series.Search(ctx, "naruto")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	tagged, err := f.series.SearchByTag(ctx, "anim")
	require.NoError(t, err)
	assert.Len(t, tagged, 1)
}
