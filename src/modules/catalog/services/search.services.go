package catalog

import (
	"context"

	models "cinestash/src/modules/catalog/models"

	"golang.org/x/sync/errgroup"
)

type SearchResult struct {
	Movies []models.Movie  `json:"movies"`
	Series []models.Series `json:"series"`
}

// SearchService runs a keyword search over both kinds.
type SearchService struct {
	movies *MovieService
	series *SeriesService
}

func NewSearchService(movies *MovieService, series *SeriesService) *SearchService {
	return &SearchService{movies: movies, series: series}
}

// Search queries movies and series concurrently; either failure fails the call.
func (s *SearchService) Search(ctx context.Context, keyword string) (*SearchResult, error) {
	var result SearchResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.movies.Search(gctx, keyword)
		result.Movies = items
		return err
	})
	g.Go(func() error {
		items, err := s.series.Search(gctx, keyword)
		result.Series = items
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &result, nil
}
