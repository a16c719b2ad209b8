package catalog

import (
	"context"
	"errors"
	"time"

	models "cinestash/src/modules/catalog/models"
	"cinestash/src/utils"

	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate slug")
)

const (
	keywordClause = `LOWER(title) LIKE ? ESCAPE '\' OR LOWER(COALESCE(description, '')) LIKE ? ESCAPE '\' OR LOWER(CAST(tags AS TEXT)) LIKE ? ESCAPE '\'`
	tagClause     = `LOWER(CAST(tags AS TEXT)) LIKE ? ESCAPE '\'`
	slugClause    = `LOWER(slug) LIKE ? ESCAPE '\'`
)

// SlugRef is the projection used to build the sitemap.
type SlugRef struct {
	Slug      string
	UpdatedAt time.Time
}

// Store persists one kind of catalog entity.
type Store[E any, PE models.Entity[E]] struct {
	db *gorm.DB
}

func NewStore[E any, PE models.Entity[E]](db *gorm.DB) *Store[E, PE] {
	return &Store[E, PE]{db: db}
}

// List returns every entity, newest-updated first.
func (s *Store[E, PE]) List(ctx context.Context) ([]E, error) {
	items := []E{}
	err := s.db.WithContext(ctx).Order("updated_at DESC").Find(&items).Error
	return items, err
}

func (s *Store[E, PE]) FindByID(ctx context.Context, id string) (PE, error) {
	return s.take(s.db.WithContext(ctx).Where("id = ?", id))
}

// FindBySlug matches the slug exactly.
func (s *Store[E, PE]) FindBySlug(ctx context.Context, slug string) (PE, error) {
	return s.take(s.db.WithContext(ctx).Where("slug = ?", slug))
}

// MatchSlug returns the oldest entity whose slug contains fragment,
// ignoring case.
func (s *Store[E, PE]) MatchSlug(ctx context.Context, fragment string) (PE, error) {
	return s.take(s.db.WithContext(ctx).
		Where(slugClause, utils.ContainsPattern(fragment)).
		Order("created_at ASC"))
}

// Search matches keyword against title, description and tags.
func (s *Store[E, PE]) Search(ctx context.Context, keyword string) ([]E, error) {
	pattern := utils.ContainsPattern(keyword)
	items := []E{}
	err := s.db.WithContext(ctx).Where(keywordClause, pattern, pattern, pattern).Find(&items).Error
	return items, err
}

func (s *Store[E, PE]) SearchTag(ctx context.Context, tag string) ([]E, error) {
	items := []E{}
	err := s.db.WithContext(ctx).Where(tagClause, utils.ContainsPattern(tag)).Find(&items).Error
	return items, err
}

func (s *Store[E, PE]) Create(ctx context.Context, entity PE) error {
	return translate(s.db.WithContext(ctx).Create(entity).Error)
}

func (s *Store[E, PE]) Save(ctx context.Context, entity PE) error {
	return translate(s.db.WithContext(ctx).Save(entity).Error)
}

func (s *Store[E, PE]) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(PE(new(E)))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store[E, PE]) Slugs(ctx context.Context) ([]SlugRef, error) {
	refs := []SlugRef{}
	err := s.db.WithContext(ctx).Model(PE(new(E))).
		Select("slug", "updated_at").
		Order("updated_at DESC").
		Find(&refs).Error
	return refs, err
}

func (s *Store[E, PE]) take(q *gorm.DB) (PE, error) {
	var item E
	if err := q.Take(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return PE(&item), nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}
