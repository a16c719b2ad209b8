package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	enrichmodels "cinestash/src/modules/enrichment/models"
	enrichment "cinestash/src/modules/enrichment/services"
	events "cinestash/src/modules/events/services"
	media "cinestash/src/modules/media/services"
	"cinestash/src/utils/testdb"

	"gorm.io/gorm"
)

type fakeMedia struct {
	mu        sync.Mutex
	uploads   int
	deleted   []string
	uploadErr error
	deleteErr error
}

func (f *fakeMedia) Upload(_ context.Context, _ *media.Upload) (*media.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	f.uploads++
	id := fmt.Sprintf("asset-%d", f.uploads)
	return &media.Asset{URL: "https://media.example/" + id, ID: id}, nil
}

func (f *fakeMedia) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeMedia) calls() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.uploads, len(f.deleted)
}

type fakeEnricher struct {
	byTitle map[string]*enrichmodels.Result
	byID    map[string]*enrichmodels.Result
	err     error
}

func (f *fakeEnricher) SearchByTitle(_ context.Context, _ enrichmodels.Kind, title string, _ enrichmodels.SearchOptions) (*enrichmodels.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.byTitle[title]; ok {
		return r, nil
	}
	return nil, enrichment.ErrNotFound
}

func (f *fakeEnricher) FetchByID(_ context.Context, _ enrichmodels.Kind, id string, _ string) (*enrichmodels.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.byID[id]; ok {
		return r, nil
	}
	return nil, enrichment.ErrNotFound
}

func (f *fakeEnricher) Normalize(_ context.Context, kind enrichmodels.Kind, r *enrichmodels.Result, _ string) (*enrichmodels.Normalized, error) {
	n := &enrichmodels.Normalized{Description: r.Overview, Tags: []string{}}
	for _, g := range r.Genres {
		n.Tags = append(n.Tags, g.Name)
	}
	if kind == enrichmodels.KindTV {
		n.Title = r.Name
	} else {
		n.Title = r.Title
	}
	if r.PosterPath != "" {
		n.Image = "https://image.tmdb.org/t/p/w780" + r.PosterPath
	}
	return n, nil
}

type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Publish(e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []string{}
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	db       *gorm.DB
	media    *fakeMedia
	enricher *fakeEnricher
	events   *recorder
	movies   *MovieService
	series   *SeriesService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		db:       testdb.Open(t),
		media:    &fakeMedia{},
		enricher: &fakeEnricher{byTitle: map[string]*enrichmodels.Result{}, byID: map[string]*enrichmodels.Result{}},
		events:   &recorder{},
	}
	deps := Deps{Media: f.media, Enricher: f.enricher, Events: f.events}
	f.movies = NewMovieService(f.db, deps)
	f.series = NewSeriesService(f.db, deps)
	return f
}

func pngUpload() *media.Upload {
	data := []byte("\x89PNG\r\n\x1a\n")
	return &media.Upload{Filename: "poster.png", ContentType: "image/png", Size: int64(len(data)), Body: bytes.NewReader(data)}
}

var errBoom = errors.New("boom")

func textUpload() *media.Upload {
	data := []byte("plain text")
	return &media.Upload{Filename: "poster.png", ContentType: "text/plain; charset=utf-8", Size: int64(len(data)), Body: bytes.NewReader(data)}
}
