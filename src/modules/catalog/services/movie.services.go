package catalog

import (
	"context"

	models "cinestash/src/modules/catalog/models"
	repo "cinestash/src/modules/catalog/repository"
	enrichmodels "cinestash/src/modules/enrichment/models"
	events "cinestash/src/modules/events/services"
	"cinestash/src/utils"

	"gorm.io/gorm"
)

type MovieService struct {
	*Service[models.Movie, *models.Movie, models.PopularMovie, *models.PopularMovie]
}

func NewMovieService(db *gorm.DB, deps Deps) *MovieService {
	return &MovieService{newService(
		repo.NewStore[models.Movie](db),
		repo.NewPopularityStore[models.Movie, *models.Movie, models.PopularMovie](db),
		enrichmodels.KindMovie,
		deps,
	)}
}

func (s *MovieService) Create(ctx context.Context, in CreateInput) (*models.Movie, error) {
	rec, err := in.record()
	if err != nil {
		return nil, err
	}
	if in.Movie == "" {
		return nil, utils.NewValidationError("Movie is required")
	}
	return s.create(ctx, &models.Movie{Record: rec, Movie: in.Movie}, in.Image)
}

// AutoCreate builds a movie from TMDB. link is stored as the movie field
// when given.
func (s *MovieService) AutoCreate(ctx context.Context, req AutoRequest, link string) (*models.Movie, error) {
	return s.autoCreate(ctx, req, func(m *models.Movie) {
		m.Movie = link
	})
}

// UpdateLink replaces the streaming link.
func (s *MovieService) UpdateLink(ctx context.Context, id, link string) (*models.Movie, error) {
	movie, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if link == "" {
		return nil, utils.NewValidationError("Movie is required")
	}
	movie.Movie = link
	if err := s.save(ctx, movie); err != nil {
		return nil, err
	}
	s.publish(events.TypeUpdated, movie.Base())
	return movie, nil
}
