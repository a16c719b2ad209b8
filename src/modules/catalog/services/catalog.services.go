package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	models "cinestash/src/modules/catalog/models"
	repo "cinestash/src/modules/catalog/repository"
	enrichmodels "cinestash/src/modules/enrichment/models"
	enrichment "cinestash/src/modules/enrichment/services"
	events "cinestash/src/modules/events/services"
	media "cinestash/src/modules/media/services"
	"cinestash/src/utils"

	"go.uber.org/zap"
)

const popularLimit = 10

// Enricher is the subset of the TMDB client the catalog uses.
type Enricher interface {
	SearchByTitle(ctx context.Context, kind enrichmodels.Kind, title string, opts enrichmodels.SearchOptions) (*enrichmodels.Result, error)
	FetchByID(ctx context.Context, kind enrichmodels.Kind, id string, language string) (*enrichmodels.Result, error)
	Normalize(ctx context.Context, kind enrichmodels.Kind, r *enrichmodels.Result, language string) (*enrichmodels.Normalized, error)
}

// Publisher receives catalog change events.
type Publisher interface {
	Publish(e events.Event)
}

type noopPublisher struct{}

func (noopPublisher) Publish(events.Event) {}

// AutoRequest asks for an entity built from TMDB data.
type AutoRequest struct {
	Title    string
	TMDBID   string
	Language string
	Region   string
}

// Deps are the collaborators shared by every catalog service.
type Deps struct {
	Media    media.Store
	Enricher Enricher
	Events   Publisher
	Logger   *zap.Logger
	Now      func() time.Time
}

// Service implements the operations common to movies and series.
type Service[E any, PE models.Entity[E], P any, PP models.Popularity[P]] struct {
	entities   *repo.Store[E, PE]
	popularity *repo.PopularityStore[E, PE, P, PP]
	media      media.Store
	enricher   Enricher
	events     Publisher
	logger     *zap.Logger
	now        func() time.Time
	kind       models.Kind
	tmdbKind   enrichmodels.Kind
}

func newService[E any, PE models.Entity[E], P any, PP models.Popularity[P]](
	entities *repo.Store[E, PE],
	popularity *repo.PopularityStore[E, PE, P, PP],
	tmdbKind enrichmodels.Kind,
	deps Deps,
) *Service[E, PE, P, PP] {
	if deps.Events == nil {
		deps.Events = noopPublisher{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	kind := PE(new(E)).Kind()
	return &Service[E, PE, P, PP]{
		entities:   entities,
		popularity: popularity,
		media:      deps.Media,
		enricher:   deps.Enricher,
		events:     deps.Events,
		logger:     deps.Logger.With(zap.String("kind", string(kind))),
		now:        deps.Now,
		kind:       kind,
		tmdbKind:   tmdbKind,
	}
}

func (s *Service[E, PE, P, PP]) Kind() models.Kind {
	return s.kind
}

func (s *Service[E, PE, P, PP]) List(ctx context.Context) ([]E, error) {
	return s.entities.List(ctx)
}

func (s *Service[E, PE, P, PP]) Get(ctx context.Context, id string) (PE, error) {
	entity, err := s.entities.FindByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(err)
	}
	return entity, nil
}

// GetBySlug returns the first entity whose slug contains fragment.
func (s *Service[E, PE, P, PP]) GetBySlug(ctx context.Context, fragment string) (PE, error) {
	entity, err := s.entities.MatchSlug(ctx, fragment)
	if err != nil {
		return nil, s.lookupError(err)
	}
	return entity, nil
}

func (s *Service[E, PE, P, PP]) Search(ctx context.Context, keyword string) ([]E, error) {
	return s.entities.Search(ctx, keyword)
}

func (s *Service[E, PE, P, PP]) SearchByTag(ctx context.Context, tag string) ([]E, error) {
	return s.entities.SearchTag(ctx, tag)
}

func (s *Service[E, PE, P, PP]) Slugs(ctx context.Context) ([]repo.SlugRef, error) {
	return s.entities.Slugs(ctx)
}

// UpdateTitle renames an entity; the slug follows the new title.
func (s *Service[E, PE, P, PP]) UpdateTitle(ctx context.Context, id, title string) (PE, error) {
	entity, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if title == "" {
		return nil, utils.NewValidationError("Title is required")
	}

	rec := entity.Base()
	if rec.SetTitle(title) {
		if rec.Slug == "" {
			return nil, utils.NewValidationError("Title must contain a letter or digit")
		}
		if err := s.ensureSlugFree(ctx, rec.Slug, rec.ID); err != nil {
			return nil, err
		}
	}
	if err := s.save(ctx, entity); err != nil {
		return nil, err
	}
	s.publish(events.TypeUpdated, rec)
	return entity, nil
}

// UpdateImage swaps the entity image. A failed delete of the old asset is
// logged and the new upload still goes ahead.
func (s *Service[E, PE, P, PP]) UpdateImage(ctx context.Context, id string, upload *media.Upload) (PE, error) {
	entity, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateImage(upload); err != nil {
		return nil, err
	}

	rec := entity.Base()
	if rec.ImageID != "" {
		if err := s.media.Delete(ctx, rec.ImageID); err != nil {
			s.logger.Warn("failed to delete previous image",
				zap.String("id", rec.ID), zap.String("image_id", rec.ImageID), zap.Error(err))
		}
	}
	asset, err := s.media.Upload(ctx, upload)
	if err != nil {
		return nil, utils.NewUpstreamError("image upload failed", err)
	}
	rec.Image = asset.URL
	rec.ImageID = asset.ID

	if err := s.save(ctx, entity); err != nil {
		return nil, err
	}
	s.publish(events.TypeUpdated, rec)
	return entity, nil
}

// Delete releases the media asset and removes the entity.
func (s *Service[E, PE, P, PP]) Delete(ctx context.Context, id string) (PE, error) {
	entity, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rec := entity.Base()
	if rec.ImageID != "" {
		if err := s.media.Delete(ctx, rec.ImageID); err != nil {
			return nil, utils.NewUpstreamError("image delete failed", err)
		}
	}
	if err := s.entities.Delete(ctx, rec.ID); err != nil {
		return nil, s.lookupError(err)
	}
	s.logger.Info("deleted entity", zap.String("id", rec.ID), zap.String("slug", rec.Slug))
	s.publish(events.TypeDeleted, rec)
	return entity, nil
}

// Watch records one view of the entity.
func (s *Service[E, PE, P, PP]) Watch(ctx context.Context, id string) (PP, error) {
	entity, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	row, err := s.popularity.IncrementViews(ctx, entity.Base().ID)
	if err != nil {
		return nil, err
	}
	s.publish(events.TypeWatched, entity.Base())
	return row, nil
}

// Popular lists the most viewed entities.
func (s *Service[E, PE, P, PP]) Popular(ctx context.Context) ([]P, error) {
	return s.popularity.Top(ctx, popularLimit)
}

// ReconcilePopularity drops popularity rows left behind by deleted entities.
func (s *Service[E, PE, P, PP]) ReconcilePopularity(ctx context.Context) (int64, error) {
	return s.popularity.DeleteOrphans(ctx)
}

// autoCreate resolves a TMDB match and stores it. decorate lets the kind
// fill its own fields before persisting.
func (s *Service[E, PE, P, PP]) autoCreate(ctx context.Context, req AutoRequest, decorate func(PE)) (PE, error) {
	if s.enricher == nil {
		return nil, utils.NewUpstreamError("enrichment is not configured", nil)
	}

	var (
		result *enrichmodels.Result
		err    error
	)
	if req.TMDBID != "" {
		result, err = s.enricher.FetchByID(ctx, s.tmdbKind, req.TMDBID, req.Language)
	} else {
		if req.Title == "" {
			return nil, utils.NewValidationError("Title is required")
		}
		result, err = s.enricher.SearchByTitle(ctx, s.tmdbKind, req.Title,
			enrichmodels.SearchOptions{Language: req.Language, Region: req.Region})
	}
	if err != nil {
		if errors.Is(err, enrichment.ErrNotFound) {
			return nil, utils.NewNotFoundError(fmt.Sprintf("%s not found on TMDB", s.kind.Label()))
		}
		return nil, utils.NewUpstreamError("TMDB lookup failed", err)
	}

	normalized, err := s.enricher.Normalize(ctx, s.tmdbKind, result, req.Language)
	if err != nil {
		return nil, utils.NewUpstreamError("TMDB normalize failed", err)
	}

	entity := PE(new(E))
	rec := entity.Base()
	rec.SetTitle(normalized.Title)
	if rec.Slug == "" {
		return nil, utils.NewValidationError("TMDB title has no usable slug")
	}
	if err := s.ensureSlugFree(ctx, rec.Slug, ""); err != nil {
		return nil, err
	}
	rec.Description = normalized.Description
	rec.Image = normalized.Image
	rec.Tags = models.Strings(normalized.Tags)
	rec.ReleaseDate = normalized.ReleaseDate
	if rec.ReleaseDate == nil {
		now := s.now()
		rec.ReleaseDate = &now
	}
	if decorate != nil {
		decorate(entity)
	}

	if err := s.insert(ctx, entity); err != nil {
		return nil, err
	}
	s.logger.Info("auto-created entity",
		zap.String("id", rec.ID), zap.String("slug", rec.Slug), zap.Int("tmdb_id", result.ID))
	return entity, nil
}

// create uploads the image and persists a manually entered entity. The
// slug is checked before uploading; an upload followed by a failed insert
// leaves the asset behind.
func (s *Service[E, PE, P, PP]) create(ctx context.Context, entity PE, upload *media.Upload) (PE, error) {
	rec := entity.Base()
	if rec.Slug == "" {
		return nil, utils.NewValidationError("Title must contain a letter or digit")
	}
	if err := s.ensureSlugFree(ctx, rec.Slug, ""); err != nil {
		return nil, err
	}

	asset, err := s.media.Upload(ctx, upload)
	if err != nil {
		return nil, utils.NewUpstreamError("image upload failed", err)
	}
	rec.Image = asset.URL
	rec.ImageID = asset.ID

	if err := s.insert(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *Service[E, PE, P, PP]) insert(ctx context.Context, entity PE) error {
	if err := s.entities.Create(ctx, entity); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return s.conflict(ctx, entity.Base().Slug)
		}
		return err
	}
	s.publish(events.TypeCreated, entity.Base())
	return nil
}

func (s *Service[E, PE, P, PP]) save(ctx context.Context, entity PE) error {
	if err := s.entities.Save(ctx, entity); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return s.conflict(ctx, entity.Base().Slug)
		}
		return err
	}
	return nil
}

// ensureSlugFree fails with a conflict when another entity owns slug.
func (s *Service[E, PE, P, PP]) ensureSlugFree(ctx context.Context, slug, selfID string) error {
	existing, err := s.entities.FindBySlug(ctx, slug)
	if errors.Is(err, repo.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.Base().ID == selfID {
		return nil
	}
	return utils.NewConflictError(fmt.Sprintf("%s with slug %q already exists", s.kind.Label(), slug), existing)
}

func (s *Service[E, PE, P, PP]) conflict(ctx context.Context, slug string) error {
	existing, err := s.entities.FindBySlug(ctx, slug)
	if err != nil {
		return utils.NewConflictError(fmt.Sprintf("%s with slug %q already exists", s.kind.Label(), slug), nil)
	}
	return utils.NewConflictError(fmt.Sprintf("%s with slug %q already exists", s.kind.Label(), slug), existing)
}

func (s *Service[E, PE, P, PP]) lookupError(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return utils.NewNotFoundError(s.kind.Label() + " not found")
	}
	return err
}

func (s *Service[E, PE, P, PP]) publish(eventType string, rec *models.Record) {
	s.events.Publish(events.Event{
		Type: eventType,
		Kind: string(s.kind),
		ID:   rec.ID,
		Slug: rec.Slug,
		At:   s.now().UTC(),
	})
}

func validateImage(upload *media.Upload) error {
	if upload == nil {
		return utils.NewValidationError("Image is required")
	}
	if !upload.IsImage() {
		return utils.NewValidationError("Image must be an image file, got " + upload.ContentType)
	}
	return nil
}
