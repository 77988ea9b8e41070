package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kunstwinkel/zoeker/internal/domain"
)

// productUpdateColumns is the ON CONFLICT update set: every scalar plus
// the embedding, but not created_at. GORM refreshes updated_at itself.
var productUpdateColumns = []string{
	"title", "full_title", "description", "content", "url", "visible",
	"price", "old_price", "artist", "dimensions", "stock", "stock_sold",
	"product_type", "image", "embedding", "updated_at",
}

// UpsertProduct writes one product row and its join rows. The row upsert
// is last-writer-wins keyed by the upstream identifier; join rows are
// insert-if-absent and never removed here.
func (s *Store) UpsertProduct(ctx context.Context, p domain.Product, categoryIDs, tagIDs []string) error {
	row := rowFromProduct(p)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(productUpdateColumns),
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("product row: %w", err)
		}

		for _, cid := range categoryIDs {
			join := categoryProductRow{CategoryID: cid, ProductID: p.ID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&join).Error; err != nil {
				return fmt.Errorf("category join %s: %w", cid, err)
			}
		}

		for _, tid := range tagIDs {
			join := tagProductRow{TagID: tid, ProductID: p.ID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&join).Error; err != nil {
				return fmt.Errorf("tag join %s: %w", tid, err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("upsert product %s: %v: %w", p.ID, err, domain.ErrStoreUnavailable)
	}
	return nil
}

// UpsertCategory inserts or updates one category.
func (s *Store) UpsertCategory(ctx context.Context, id, name string) error {
	row := categoryRow{ID: id, Name: name}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert category %s: %v: %w", id, err, domain.ErrStoreUnavailable)
	}
	return nil
}

// UpsertTag inserts or updates one tag. Tags are upserted regardless of
// visibility because join rows reference them.
func (s *Store) UpsertTag(ctx context.Context, id, name string, visible bool) error {
	row := tagRow{ID: id, Name: name, Visible: visible}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "visible"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert tag %s: %v: %w", id, err, domain.ErrStoreUnavailable)
	}
	return nil
}
