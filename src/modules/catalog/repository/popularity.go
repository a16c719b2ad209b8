package catalog

import (
	"context"
	"errors"
	"time"

	models "cinestash/src/modules/catalog/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PopularityStore keeps the view/like/rating counters for one entity kind.
type PopularityStore[E any, PE models.Entity[E], P any, PP models.Popularity[P]] struct {
	db *gorm.DB
}

func NewPopularityStore[E any, PE models.Entity[E], P any, PP models.Popularity[P]](db *gorm.DB) *PopularityStore[E, PE, P, PP] {
	return &PopularityStore[E, PE, P, PP]{db: db}
}

// IncrementViews creates the record for entityID on first use and adds one
// view otherwise, in a single upsert.
func (s *PopularityStore[E, PE, P, PP]) IncrementViews(ctx context.Context, entityID string) (PP, error) {
	row := PP(new(P))
	row.SetRef(entityID)
	row.Stats().Views = 1

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: row.RefColumn()}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"views":      gorm.Expr(row.TableName() + ".views + 1"),
			"updated_at": time.Now(),
		}),
	}).Create(row).Error
	if err != nil {
		return nil, err
	}
	return s.Find(ctx, entityID)
}

func (s *PopularityStore[E, PE, P, PP]) Find(ctx context.Context, entityID string) (PP, error) {
	var row P
	err := s.db.WithContext(ctx).
		Where(PP(&row).RefColumn()+" = ?", entityID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return PP(&row), nil
}

// Top returns up to limit records by views, each joined with its entity.
func (s *PopularityStore[E, PE, P, PP]) Top(ctx context.Context, limit int) ([]P, error) {
	rows := []P{}
	err := s.db.WithContext(ctx).
		Preload(PP(new(P)).Association()).
		Order("views DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// DeleteOrphans removes records whose entity no longer exists.
func (s *PopularityStore[E, PE, P, PP]) DeleteOrphans(ctx context.Context) (int64, error) {
	db := s.db.WithContext(ctx)
	existing := s.db.Model(PE(new(E))).Select("id")
	res := db.Where(PP(new(P)).RefColumn()+" NOT IN (?)", existing).Delete(PP(new(P)))
	return res.RowsAffected, res.Error
}
