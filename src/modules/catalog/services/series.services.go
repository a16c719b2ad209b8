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

type SeriesService struct {
	*Service[models.Series, *models.Series, models.PopularSeries, *models.PopularSeries]
}

func NewSeriesService(db *gorm.DB, deps Deps) *SeriesService {
	return &SeriesService{newService(
		repo.NewStore[models.Series](db),
		repo.NewPopularityStore[models.Series, *models.Series, models.PopularSeries](db),
		enrichmodels.KindTV,
		deps,
	)}
}

func (s *SeriesService) Create(ctx context.Context, in CreateInput) (*models.Series, error) {
	rec, err := in.record()
	if err != nil {
		return nil, err
	}
	series := &models.Series{Record: rec, Episode: models.Strings(utils.SplitList(in.Episode))}
	return s.create(ctx, series, in.Image)
}

func (s *SeriesService) AutoCreate(ctx context.Context, req AutoRequest) (*models.Series, error) {
	return s.autoCreate(ctx, req, nil)
}

// AppendEpisodes adds the comma-separated episodes to the end of the list.
func (s *SeriesService) AppendEpisodes(ctx context.Context, id, raw string) (*models.Series, error) {
	series, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	episodes := utils.SplitList(raw)
	if len(episodes) == 0 {
		return nil, utils.NewValidationError("Episode is required")
	}
	series.Episode = append(series.Episode, episodes...)
	if err := s.save(ctx, series); err != nil {
		return nil, err
	}
	s.publish(events.TypeUpdated, series.Base())
	return series, nil
}

// RemoveEpisode removes the episode at the 1-based position. Positions
// outside the list leave the series unchanged.
func (s *SeriesService) RemoveEpisode(ctx context.Context, id, position string) (*models.Series, error) {
	series, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !series.RemoveEpisodeAt(position) {
		return series, nil
	}
	if err := s.save(ctx, series); err != nil {
		return nil, err
	}
	s.publish(events.TypeUpdated, series.Base())
	return series, nil
}
